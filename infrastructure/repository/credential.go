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

const credentialsTable = "ad_account_credentials"

type CredentialRepository interface {
	GetCredential(ctx context.Context, ownerID string) (*domain.Credential, error)
	ListOwnerIDs(ctx context.Context) ([]string, error)
	SaveCredential(ctx context.Context, credential *domain.Credential) error
}

type credentialRepository struct {
	conn postgres.Queryer
}

func NewCredentialRepository(conn postgres.Queryer) CredentialRepository {
	return &credentialRepository{
		conn: conn,
	}
}

func (r *credentialRepository) GetCredential(ctx context.Context, ownerID string) (*domain.Credential, error) {
	query, args, err := squirrel.
		Select("owner_id, remote_account_id, client_id, encrypted_token, expires_at").
		From(credentialsTable).
		Where(squirrel.Eq{"owner_id": ownerID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var (
		credential domain.Credential
		clientID   sql.NullString
	)
	err = r.conn.QueryRowContext(ctx, query, args...).Scan(
		&credential.OwnerID,
		&credential.RemoteAccountID,
		&clientID,
		&credential.EncryptedToken,
		&credential.ExpiresAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, postgres.WrapError(err)
	}

	if clientID.Valid && clientID.String != "" {
		credential.ClientID = &clientID.String
	}

	return &credential, nil
}

func (r *credentialRepository) ListOwnerIDs(ctx context.Context) ([]string, error) {
	query, args, err := squirrel.
		Select("owner_id").
		From(credentialsTable).
		OrderBy("owner_id ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, postgres.WrapError(err)
	}
	defer rows.Close()

	ownerIDs := make([]string, 0)
	for rows.Next() {
		var ownerID string
		if err := rows.Scan(&ownerID); err != nil {
			return nil, fmt.Errorf("erro ao escanear owner_id: %w", err)
		}
		ownerIDs = append(ownerIDs, ownerID)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return ownerIDs, nil
}

// SaveCredential grava a credencial já criptografada. Usado pelo seed da migração.
func (r *credentialRepository) SaveCredential(ctx context.Context, credential *domain.Credential) error {
	query, args, err := buildCredentialUpsert(credential)
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if _, err := r.conn.ExecContext(ctx, query, args...); err != nil {
		return postgres.WrapError(err)
	}

	return nil
}

func buildCredentialUpsert(credential *domain.Credential) (string, []any, error) {
	return squirrel.StatementBuilder.
		Insert(credentialsTable).
		Columns("owner_id", "remote_account_id", "client_id", "encrypted_token", "expires_at", "created_at", "updated_at").
		Values(
			credential.OwnerID,
			credential.RemoteAccountID,
			credential.ClientID,
			credential.EncryptedToken,
			credential.ExpiresAt,
			squirrel.Expr("NOW()"),
			squirrel.Expr("NOW()"),
		).
		Suffix(`ON CONFLICT (owner_id) DO UPDATE SET
			remote_account_id = EXCLUDED.remote_account_id,
			client_id = EXCLUDED.client_id,
			encrypted_token = EXCLUDED.encrypted_token,
			expires_at = EXCLUDED.expires_at,
			updated_at = NOW()`).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
}
