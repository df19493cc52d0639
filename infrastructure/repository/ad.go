package repository

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/ads-sync-engine/infrastructure/database/postgres"
	"github.com/vfg2006/ads-sync-engine/internal/domain"
)

const adsTable = "ads"

type AdRepository interface {
	Upsert(ctx context.Context, ad *domain.Ad) (string, error)
}

type adRepository struct {
	conn *postgres.Connection
}

func NewAdRepository(conn *postgres.Connection) AdRepository {
	return &adRepository{
		conn: conn,
	}
}

func (r *adRepository) Upsert(ctx context.Context, ad *domain.Ad) (string, error) {
	query, args, err := buildAdUpsert(ad)
	if err != nil {
		return "", fmt.Errorf("erro ao construir a query: %w", err)
	}

	var id string
	if err := r.conn.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		return "", postgres.WrapError(err)
	}

	return id, nil
}

func buildAdUpsert(ad *domain.Ad) (string, []any, error) {
	return squirrel.StatementBuilder.
		Insert(adsTable).
		Columns("id", "remote_id", "ad_set_id", "name", "creative_url", "status", "last_synced_at", "created_at", "updated_at").
		Values(
			ad.ID,
			ad.RemoteID,
			ad.AdSetID,
			ad.Name,
			ad.CreativeURL,
			ad.Status,
			ad.LastSyncedAt,
			squirrel.Expr("NOW()"),
			squirrel.Expr("NOW()"),
		).
		Suffix(`ON CONFLICT (remote_id) DO UPDATE SET
			ad_set_id = EXCLUDED.ad_set_id,
			name = EXCLUDED.name,
			creative_url = EXCLUDED.creative_url,
			status = EXCLUDED.status,
			last_synced_at = EXCLUDED.last_synced_at,
			updated_at = NOW()
			RETURNING id`).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
}
