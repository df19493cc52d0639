package main

import (
	"context"
	"database/sql"
	_ "embed"
	"os"
	"time"

	_ "github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ads-sync-engine/infrastructure/database/postgres"
	"github.com/vfg2006/ads-sync-engine/infrastructure/repository"
	"github.com/vfg2006/ads-sync-engine/internal/config"
	"github.com/vfg2006/ads-sync-engine/internal/domain"
	"github.com/vfg2006/ads-sync-engine/pkg/secret"
)

//go:embed schema.sql
var schema string

const defaultTokenLifetime = 60 * 24 * time.Hour

// seedCredential vem das variáveis SEED_*. Vazio quando não há dono para semear.
type seedCredential struct {
	OwnerID         string
	RemoteAccountID string
	ClientID        string
	AccessToken     secret.Token
	ExpiresAt       time.Time
}

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	logrus.Info("Iniciando script de migração...")

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao carregar configuração")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	conn, err := postgres.NewConnection(ctx, cfg.Database)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}
	defer conn.Close()

	startTime := time.Now()
	if _, err := conn.ExecContext(ctx, schema); err != nil {
		logrus.WithError(postgres.WrapError(err)).Fatal("Erro ao aplicar o schema")
	}
	logrus.Infof("Schema aplicado em %v", time.Since(startTime))

	seed, err := seedFromEnv(time.Now())
	if err != nil {
		logrus.WithError(err).Fatal("Variáveis SEED_* inválidas")
	}

	if seed == nil {
		logrus.Info("Nenhuma credencial para semear, SEED_OWNER_ID vazio")
		return
	}

	box, err := secret.NewBox(cfg.Crypto.CredentialKey)
	if err != nil {
		logrus.WithError(err).Fatal("Chave de criptografia das credenciais inválida")
	}

	err = conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		return insertCredential(ctx, repository.NewCredentialRepository(tx), box, *seed)
	})
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao semear credencial")
	}

	logrus.WithFields(logrus.Fields{
		"owner_id":   seed.OwnerID,
		"account_id": seed.RemoteAccountID,
		"expires_at": seed.ExpiresAt.Format(time.RFC3339),
	}).Info("Credencial semeada com sucesso")
}

func seedFromEnv(now time.Time) (*seedCredential, error) {
	ownerID := os.Getenv("SEED_OWNER_ID")
	if ownerID == "" {
		return nil, nil
	}

	seed := &seedCredential{
		OwnerID:         ownerID,
		RemoteAccountID: os.Getenv("SEED_REMOTE_ACCOUNT_ID"),
		ClientID:        os.Getenv("SEED_CLIENT_ID"),
		AccessToken:     secret.Token(os.Getenv("SEED_ACCESS_TOKEN")),
		ExpiresAt:       now.Add(defaultTokenLifetime),
	}

	if seed.AccessToken.IsEmpty() {
		return nil, errors.New("SEED_ACCESS_TOKEN é obrigatório junto com SEED_OWNER_ID")
	}

	if raw := os.Getenv("SEED_TOKEN_EXPIRES_AT"); raw != "" {
		expiresAt, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return nil, errors.Wrap(err, "SEED_TOKEN_EXPIRES_AT deve estar em RFC3339")
		}
		seed.ExpiresAt = expiresAt
	}

	return seed, nil
}

type credentialSaver interface {
	SaveCredential(ctx context.Context, credential *domain.Credential) error
}

type sealer interface {
	Seal(token secret.Token) ([]byte, error)
}

func insertCredential(ctx context.Context, repo credentialSaver, box sealer, seed seedCredential) error {
	sealed, err := box.Seal(seed.AccessToken)
	if err != nil {
		return errors.Wrap(err, "erro ao criptografar token")
	}

	credential := &domain.Credential{
		OwnerID:         seed.OwnerID,
		RemoteAccountID: seed.RemoteAccountID,
		EncryptedToken:  sealed,
		ExpiresAt:       seed.ExpiresAt,
	}

	if seed.ClientID != "" {
		clientID := seed.ClientID
		credential.ClientID = &clientID
	}

	return repo.SaveCredential(ctx, credential)
}
