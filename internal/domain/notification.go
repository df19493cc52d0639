package domain

import "time"

type NotificationCategory string

const (
	NotificationNeedsReconnection NotificationCategory = "needs_reconnection"
	NotificationRoasBelowFloor    NotificationCategory = "roas_below_floor"
	NotificationBudgetThreshold   NotificationCategory = "budget_threshold"
)

type Notification struct {
	ID        string               `json:"id"`
	UserID    string               `json:"user_id"`
	Category  NotificationCategory `json:"category"`
	Message   string               `json:"message"`
	CreatedAt time.Time            `json:"created_at"`
}
