package domain

import (
	"strings"
	"time"
)

type EntityStatus string

const (
	EntityStatusActive   EntityStatus = "active"
	EntityStatusPaused   EntityStatus = "paused"
	EntityStatusArchived EntityStatus = "archived"
	EntityStatusOther    EntityStatus = "other"
)

// NormalizeStatus converte o status retornado pela plataforma para o enum local
func NormalizeStatus(remote string) EntityStatus {
	switch strings.ToUpper(strings.TrimSpace(remote)) {
	case "ACTIVE":
		return EntityStatusActive
	case "PAUSED", "CAMPAIGN_PAUSED", "ADSET_PAUSED":
		return EntityStatusPaused
	case "ARCHIVED", "DELETED":
		return EntityStatusArchived
	default:
		return EntityStatusOther
	}
}

type Campaign struct {
	ID           string       `json:"id"`
	RemoteID     string       `json:"remote_id"`
	OwnerID      string       `json:"owner_id"`
	AccountID    string       `json:"account_id"`
	Name         string       `json:"name"`
	Status       EntityStatus `json:"status"`
	LastSyncedAt time.Time    `json:"last_synced_at"`
}

type AdSet struct {
	ID           string       `json:"id"`
	RemoteID     string       `json:"remote_id"`
	CampaignID   string       `json:"campaign_id"`
	Name         string       `json:"name"`
	DailyBudget  *float64     `json:"daily_budget"`
	Status       EntityStatus `json:"status"`
	LastSyncedAt time.Time    `json:"last_synced_at"`
}

type Ad struct {
	ID           string       `json:"id"`
	RemoteID     string       `json:"remote_id"`
	AdSetID      string       `json:"ad_set_id"`
	Name         string       `json:"name"`
	CreativeURL  *string      `json:"creative_url"`
	Status       EntityStatus `json:"status"`
	LastSyncedAt time.Time    `json:"last_synced_at"`
}

// Objetos da plataforma já normalizados, antes de receberem identidade local

type RemoteCampaign struct {
	RemoteID string
	Name     string
	Status   EntityStatus
}

type RemoteAdSet struct {
	RemoteID    string
	Name        string
	DailyBudget *float64
	Status      EntityStatus
}

type RemoteAd struct {
	RemoteID    string
	Name        string
	CreativeURL *string
	Status      EntityStatus
}
