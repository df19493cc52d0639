package meta

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	metadomain "github.com/vfg2006/ads-sync-engine/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/ads-sync-engine/internal/domain"
	"github.com/vfg2006/ads-sync-engine/pkg/secret"
)

type fakeClient struct {
	token     secret.Token
	campaigns []metadomain.Campaign
	adSets    []metadomain.AdSet
	ads       []metadomain.Ad
	insight   *metadomain.Insight
	dailyRows []metadomain.Insight
}

func (f *fakeClient) ListCampaigns(ctx context.Context, token secret.Token, accountID string) ([]metadomain.Campaign, error) {
	f.token = token
	return f.campaigns, nil
}

func (f *fakeClient) ListAdSets(ctx context.Context, token secret.Token, campaignID string) ([]metadomain.AdSet, error) {
	return f.adSets, nil
}

func (f *fakeClient) ListAds(ctx context.Context, token secret.Token, adSetID string) ([]metadomain.Ad, error) {
	return f.ads, nil
}

func (f *fakeClient) GetInsights(ctx context.Context, token secret.Token, adID string, dateRange domain.DateRange) (*metadomain.Insight, error) {
	return f.insight, nil
}

func (f *fakeClient) GetDailyInsights(ctx context.Context, token secret.Token, adID string, dateRange domain.DateRange) ([]metadomain.Insight, error) {
	return f.dailyRows, nil
}

func TestMetaIntegrator_ForAccount(t *testing.T) {
	client := &fakeClient{
		campaigns: []metadomain.Campaign{
			{ID: "c1", Name: "Black Friday", Status: "ACTIVE", EffectiveStatus: "PAUSED"},
			{ID: "c2", Name: "Antiga", Status: "DELETED"},
		},
		adSets: []metadomain.AdSet{
			{ID: "as1", Name: "Conjunto", Status: "ACTIVE", DailyBudget: "5000"},
			{ID: "as2", Name: "CBO", Status: "WITH_ISSUES"},
		},
		ads: []metadomain.Ad{
			{ID: "ad1", Name: "Vídeo", Status: "ACTIVE", Creative: &metadomain.Creative{ThumbnailURL: "https://cdn/thumb.jpg"}},
			{ID: "ad2", Name: "Sem criativo", Status: "ARCHIVED"},
		},
	}

	api := New(client).ForAccount(domain.SyncAccount{OwnerID: "owner", Token: secret.Token("tok")})
	ctx := context.Background()

	campaigns, err := api.ListCampaigns(ctx, "123")
	require.NoError(t, err)
	assert.Equal(t, "tok", client.token.Reveal())
	assert.Equal(t, domain.EntityStatusPaused, campaigns[0].Status)
	assert.Equal(t, domain.EntityStatusArchived, campaigns[1].Status)

	adSets, err := api.ListAdSets(ctx, "c1")
	require.NoError(t, err)
	require.NotNil(t, adSets[0].DailyBudget)
	assert.Equal(t, 50.0, *adSets[0].DailyBudget)
	assert.Nil(t, adSets[1].DailyBudget)
	assert.Equal(t, domain.EntityStatusOther, adSets[1].Status)

	ads, err := api.ListAds(ctx, "as1")
	require.NoError(t, err)
	require.NotNil(t, ads[0].CreativeURL)
	assert.Equal(t, "https://cdn/thumb.jpg", *ads[0].CreativeURL)
	assert.Nil(t, ads[1].CreativeURL)
}

func TestMetaIntegrator_GetInsights(t *testing.T) {
	client := &fakeClient{}
	api := New(client).ForAccount(domain.SyncAccount{Token: secret.Token("tok")})

	insight, err := api.GetInsights(context.Background(), "ad1", domain.DateRange{})
	require.NoError(t, err)
	assert.Nil(t, insight)

	client.insight = &metadomain.Insight{
		DateStart: "2024-01-01",
		Spend:     "100",
		Actions:   []metadomain.Action{{ActionType: "purchase", Value: "1"}},
	}

	insight, err = api.GetInsights(context.Background(), "ad1", domain.DateRange{})
	require.NoError(t, err)
	require.NotNil(t, insight)
	assert.Equal(t, "ad1", insight.AdRemoteID)
	assert.Equal(t, domain.ActionType("purchase"), insight.Actions[0].Type)
}
