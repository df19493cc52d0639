package metaclient

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	metadomain "github.com/vfg2006/ads-sync-engine/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/ads-sync-engine/pkg/secret"
)

// ListCampaigns lista todas as campanhas da conta, percorrendo a paginação
func (c *MetaClient) ListCampaigns(ctx context.Context, token secret.Token, accountID string) ([]metadomain.Campaign, error) {
	accountID = strings.TrimPrefix(accountID, "act_")
	if accountID == "" {
		return nil, fmt.Errorf("id da conta de anúncios é obrigatório")
	}

	params := url.Values{}
	params.Add("fields", "id,name,status,effective_status")
	params.Add("limit", strconv.Itoa(c.pageLimit))

	return list[metadomain.Campaign](ctx, c, token, "list_campaigns", c.edgeURL("act_"+accountID, "campaigns", params))
}

// ListAdSets lista os conjuntos de anúncios de uma campanha
func (c *MetaClient) ListAdSets(ctx context.Context, token secret.Token, campaignID string) ([]metadomain.AdSet, error) {
	params := url.Values{}
	params.Add("fields", "id,name,status,campaign_id,daily_budget")
	params.Add("limit", strconv.Itoa(c.pageLimit))

	return list[metadomain.AdSet](ctx, c, token, "list_ad_sets", c.edgeURL(campaignID, "adsets", params))
}

// ListAds lista os anúncios de um conjunto, com a referência do criativo
func (c *MetaClient) ListAds(ctx context.Context, token secret.Token, adSetID string) ([]metadomain.Ad, error) {
	params := url.Values{}
	params.Add("fields", "id,name,status,adset_id,creative{id,thumbnail_url,image_url}")
	params.Add("limit", strconv.Itoa(c.pageLimit))

	return list[metadomain.Ad](ctx, c, token, "list_ads", c.edgeURL(adSetID, "ads", params))
}
