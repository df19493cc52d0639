package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/ads-sync-engine/infrastructure/database/postgres"
	"github.com/vfg2006/ads-sync-engine/internal/domain"
)

const campaignsTable = "campaigns"

type CampaignRepository interface {
	GetByRemoteID(ctx context.Context, remoteID string) (*domain.Campaign, error)
	Upsert(ctx context.Context, campaign *domain.Campaign) (string, error)
}

type campaignRepository struct {
	conn *postgres.Connection
}

func NewCampaignRepository(conn *postgres.Connection) CampaignRepository {
	return &campaignRepository{
		conn: conn,
	}
}

func (r *campaignRepository) GetByRemoteID(ctx context.Context, remoteID string) (*domain.Campaign, error) {
	query, args, err := squirrel.
		Select("id, remote_id, owner_id, account_id, name, status, last_synced_at").
		From(campaignsTable).
		Where(squirrel.Eq{"remote_id": remoteID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	campaign := &domain.Campaign{}
	err = r.conn.QueryRowContext(ctx, query, args...).Scan(
		&campaign.ID,
		&campaign.RemoteID,
		&campaign.OwnerID,
		&campaign.AccountID,
		&campaign.Name,
		&campaign.Status,
		&campaign.LastSyncedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, postgres.WrapError(err)
	}

	return campaign, nil
}

// Upsert cria ou atualiza pela remote_id e retorna o id local persistido.
// O dono só é gravado na criação.
func (r *campaignRepository) Upsert(ctx context.Context, campaign *domain.Campaign) (string, error) {
	query, args, err := buildCampaignUpsert(campaign)
	if err != nil {
		return "", fmt.Errorf("erro ao construir a query: %w", err)
	}

	var id string
	if err := r.conn.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		return "", postgres.WrapError(err)
	}

	return id, nil
}

func buildCampaignUpsert(campaign *domain.Campaign) (string, []any, error) {
	return squirrel.StatementBuilder.
		Insert(campaignsTable).
		Columns("id", "remote_id", "owner_id", "account_id", "name", "status", "last_synced_at", "created_at", "updated_at").
		Values(
			campaign.ID,
			campaign.RemoteID,
			campaign.OwnerID,
			campaign.AccountID,
			campaign.Name,
			campaign.Status,
			campaign.LastSyncedAt,
			squirrel.Expr("NOW()"),
			squirrel.Expr("NOW()"),
		).
		Suffix(`ON CONFLICT (remote_id) DO UPDATE SET
			name = EXCLUDED.name,
			status = EXCLUDED.status,
			last_synced_at = EXCLUDED.last_synced_at,
			updated_at = NOW()
			RETURNING id`).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
}
