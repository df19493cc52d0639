package repository

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/ads-sync-engine/infrastructure/database/postgres"
	"github.com/vfg2006/ads-sync-engine/internal/domain"
)

const adSetsTable = "ad_sets"

type AdSetRepository interface {
	Upsert(ctx context.Context, adSet *domain.AdSet) (string, error)
}

type adSetRepository struct {
	conn *postgres.Connection
}

func NewAdSetRepository(conn *postgres.Connection) AdSetRepository {
	return &adSetRepository{
		conn: conn,
	}
}

func (r *adSetRepository) Upsert(ctx context.Context, adSet *domain.AdSet) (string, error) {
	query, args, err := buildAdSetUpsert(adSet)
	if err != nil {
		return "", fmt.Errorf("erro ao construir a query: %w", err)
	}

	var id string
	if err := r.conn.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		return "", postgres.WrapError(err)
	}

	return id, nil
}

func buildAdSetUpsert(adSet *domain.AdSet) (string, []any, error) {
	return squirrel.StatementBuilder.
		Insert(adSetsTable).
		Columns("id", "remote_id", "campaign_id", "name", "daily_budget", "status", "last_synced_at", "created_at", "updated_at").
		Values(
			adSet.ID,
			adSet.RemoteID,
			adSet.CampaignID,
			adSet.Name,
			adSet.DailyBudget,
			adSet.Status,
			adSet.LastSyncedAt,
			squirrel.Expr("NOW()"),
			squirrel.Expr("NOW()"),
		).
		Suffix(`ON CONFLICT (remote_id) DO UPDATE SET
			campaign_id = EXCLUDED.campaign_id,
			name = EXCLUDED.name,
			daily_budget = EXCLUDED.daily_budget,
			status = EXCLUDED.status,
			last_synced_at = EXCLUDED.last_synced_at,
			updated_at = NOW()
			RETURNING id`).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
}
