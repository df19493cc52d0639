package syncing

//go:generate mockgen -source=interfaces.go -destination=mocks/mock_interfaces.go -package=mocks

import (
	"context"

	"github.com/vfg2006/ads-sync-engine/internal/domain"
	"github.com/vfg2006/ads-sync-engine/pkg/secret"
)

// AdsAPI é a visão da plataforma de anúncios para uma única conta já autenticada
type AdsAPI interface {
	ListCampaigns(ctx context.Context, accountID string) ([]domain.RemoteCampaign, error)
	ListAdSets(ctx context.Context, campaignRemoteID string) ([]domain.RemoteAdSet, error)
	ListAds(ctx context.Context, adSetRemoteID string) ([]domain.RemoteAd, error)
	// GetInsights retorna nil quando a plataforma não tem dados para o período
	GetInsights(ctx context.Context, adRemoteID string, dateRange domain.DateRange) (*domain.RawInsight, error)
	// GetDailyInsights retorna uma linha por dia com dados
	GetDailyInsights(ctx context.Context, adRemoteID string, dateRange domain.DateRange) ([]domain.RawInsight, error)
}

// AdsSource cria sessões da plataforma presas ao token de uma conta
type AdsSource interface {
	ForAccount(account domain.SyncAccount) AdsAPI
}

type CredentialStore interface {
	// GetCredential retorna nil, nil quando o dono não tem credencial
	GetCredential(ctx context.Context, ownerID string) (*domain.Credential, error)
	ListOwnerIDs(ctx context.Context) ([]string, error)
}

// Decrypter abre o token criptografado de uma credencial
type Decrypter interface {
	Open(sealed []byte) (secret.Token, error)
}

// Notifier nunca bloqueia quem chama
type Notifier interface {
	Raise(notification domain.Notification)
}

type OwnerResolver interface {
	ResolveOwner(ctx context.Context, account domain.SyncAccount, campaign domain.RemoteCampaign) (string, error)
}

type Reconciler interface {
	ReconcileAccount(ctx context.Context, api AdsAPI, account domain.SyncAccount, dateRange domain.DateRange) (*domain.RunResult, error)
}
