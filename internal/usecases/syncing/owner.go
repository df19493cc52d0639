package syncing

import (
	"context"
	"fmt"

	"github.com/vfg2006/ads-sync-engine/internal/config"
	"github.com/vfg2006/ads-sync-engine/internal/domain"
)

type ownerResolver struct {
	defaultOwnerID string
}

// NewOwnerResolver define o dono de campanhas novas: primeiro o cliente vinculado à
// credencial, depois SYNC_DEFAULT_CAMPAIGN_OWNER_ID. Sem nenhum dos dois a campanha
// não é criada.
func NewOwnerResolver(cfg *config.Config) OwnerResolver {
	return &ownerResolver{
		defaultOwnerID: cfg.Sync.DefaultCampaignOwnerID,
	}
}

func (r *ownerResolver) ResolveOwner(_ context.Context, account domain.SyncAccount, campaign domain.RemoteCampaign) (string, error) {
	if account.ClientID != nil && *account.ClientID != "" {
		return *account.ClientID, nil
	}

	if r.defaultOwnerID != "" {
		return r.defaultOwnerID, nil
	}

	return "", fmt.Errorf("%w: campanha %s da conta %s", ErrOwnerUnresolved, campaign.RemoteID, account.RemoteAccountID)
}
