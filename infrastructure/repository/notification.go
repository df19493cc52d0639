package repository

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/ads-sync-engine/infrastructure/database/postgres"
	"github.com/vfg2006/ads-sync-engine/internal/domain"
	"github.com/vfg2006/ads-sync-engine/pkg/utils"
)

const notificationsTable = "notifications"

type NotificationRepository interface {
	Save(ctx context.Context, notification domain.Notification) error
}

type notificationRepository struct {
	conn *postgres.Connection
}

func NewNotificationRepository(conn *postgres.Connection) NotificationRepository {
	return &notificationRepository{
		conn: conn,
	}
}

func (r *notificationRepository) Save(ctx context.Context, notification domain.Notification) error {
	if notification.ID == "" {
		id, err := utils.GenerateID()
		if err != nil {
			return fmt.Errorf("erro ao gerar id da notificação: %w", err)
		}
		notification.ID = id
	}

	query, args, err := buildNotificationInsert(notification)
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if _, err := r.conn.ExecContext(ctx, query, args...); err != nil {
		return postgres.WrapError(err)
	}

	return nil
}

func buildNotificationInsert(notification domain.Notification) (string, []any, error) {
	return squirrel.StatementBuilder.
		Insert(notificationsTable).
		Columns("id", "user_id", "category", "message", "created_at").
		Values(
			notification.ID,
			notification.UserID,
			notification.Category,
			notification.Message,
			notification.CreatedAt,
		).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
}
