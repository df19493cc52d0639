package syncing_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/ads-sync-engine/internal/config"
	"github.com/vfg2006/ads-sync-engine/internal/domain"
	"github.com/vfg2006/ads-sync-engine/internal/usecases/syncing"
	"github.com/vfg2006/ads-sync-engine/internal/usecases/syncing/mocks"
	"go.uber.org/mock/gomock"
)

// fakeStore simula as tabelas com as mesmas chaves únicas do banco
type fakeStore struct {
	mu        sync.Mutex
	campaigns map[string]domain.Campaign
	adSets    map[string]domain.AdSet
	ads       map[string]domain.Ad
	metrics   map[string]domain.Metric

	failMetrics bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		campaigns: make(map[string]domain.Campaign),
		adSets:    make(map[string]domain.AdSet),
		ads:       make(map[string]domain.Ad),
		metrics:   make(map[string]domain.Metric),
	}
}

func metricKey(adID string, date time.Time) string {
	return adID + "|" + date.Format(time.DateOnly)
}

type campaignTable struct{ *fakeStore }

func (s campaignTable) GetByRemoteID(_ context.Context, remoteID string) (*domain.Campaign, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	campaign, ok := s.campaigns[remoteID]
	if !ok {
		return nil, nil
	}
	return &campaign, nil
}

func (s campaignTable) Upsert(_ context.Context, campaign *domain.Campaign) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *campaign
	if existing, ok := s.campaigns[campaign.RemoteID]; ok {
		stored.ID = existing.ID
		stored.OwnerID = existing.OwnerID
	}
	s.campaigns[campaign.RemoteID] = stored
	return stored.ID, nil
}

type adSetTable struct{ *fakeStore }

func (s adSetTable) Upsert(_ context.Context, adSet *domain.AdSet) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *adSet
	if existing, ok := s.adSets[adSet.RemoteID]; ok {
		stored.ID = existing.ID
	}
	s.adSets[adSet.RemoteID] = stored
	return stored.ID, nil
}

type adTable struct{ *fakeStore }

func (s adTable) Upsert(_ context.Context, ad *domain.Ad) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *ad
	if existing, ok := s.ads[ad.RemoteID]; ok {
		stored.ID = existing.ID
	}
	s.ads[ad.RemoteID] = stored
	return stored.ID, nil
}

type metricTable struct{ *fakeStore }

func (s metricTable) Upsert(_ context.Context, metric *domain.Metric) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failMetrics {
		return errors.New("conexão recusada")
	}

	s.metrics[metricKey(metric.AdID, metric.Date)] = *metric
	return nil
}

func (s *fakeStore) adID(remoteID string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ads[remoteID].ID
}

type engineDeps struct {
	api      *mocks.MockAdsAPI
	owners   *mocks.MockOwnerResolver
	notifier *mocks.MockNotifier
	store    *fakeStore
	sleeps   *[]time.Duration
}

func testConfig() *config.Config {
	return &config.Config{
		Sync: config.Sync{
			AdBatchSize:    10,
			AdBatchPause:   time.Second,
			DailyBreakdown: true,
		},
		Alerts: config.Alerts{
			RoasFloor:           1.0,
			SpendBudgetFraction: 0.9,
		},
	}
}

func newTestEngine(deps engineDeps, cfg *config.Config) *syncing.Engine {
	clock := func() time.Time { return time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC) }
	sleeper := func(_ context.Context, d time.Duration) error {
		*deps.sleeps = append(*deps.sleeps, d)
		return nil
	}

	return syncing.NewEngine(
		campaignTable{deps.store},
		adSetTable{deps.store},
		adTable{deps.store},
		metricTable{deps.store},
		deps.owners,
		deps.notifier,
		cfg,
		syncing.WithSleeper(sleeper),
		syncing.WithClock(clock),
	)
}

func purchaseInsight(adID, date string) domain.RawInsight {
	return domain.RawInsight{
		AdRemoteID:   adID,
		DateStart:    date,
		DateStop:     date,
		Spend:        "100",
		Impressions:  "1000",
		Clicks:       "10",
		Reach:        "800",
		Actions:      []domain.ActionRecord{{Type: "purchase", Value: "1"}},
		ActionValues: []domain.ActionRecord{{Type: "purchase", Value: "300"}},
	}
}

func TestEngine_ReconcileAccount(t *testing.T) {
	account := domain.SyncAccount{OwnerID: "owner-1", RemoteAccountID: "act_123"}
	dateRange := domain.DateRange{
		Since: time.Date(2024, 3, 3, 0, 0, 0, 0, time.UTC),
		Until: time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC),
	}

	tests := []struct {
		name     string
		cfg      func(cfg *config.Config)
		setup    func(deps engineDeps)
		validate func(t *testing.T, deps engineDeps, result *domain.RunResult, err error)
	}{
		{
			name: "Duas campanhas com um anúncio cada - deve calcular as métricas do anúncio A",
			setup: func(deps engineDeps) {
				deps.api.EXPECT().ListCampaigns(gomock.Any(), "act_123").Return([]domain.RemoteCampaign{
					{RemoteID: "c1", Name: "Campanha 1", Status: domain.EntityStatusActive},
					{RemoteID: "c2", Name: "Campanha 2", Status: domain.EntityStatusPaused},
				}, nil)
				deps.owners.EXPECT().ResolveOwner(gomock.Any(), account, gomock.Any()).Return("client-1", nil).Times(2)

				deps.api.EXPECT().ListAdSets(gomock.Any(), "c1").Return([]domain.RemoteAdSet{{RemoteID: "s1", Name: "Conjunto 1"}}, nil)
				deps.api.EXPECT().ListAdSets(gomock.Any(), "c2").Return([]domain.RemoteAdSet{{RemoteID: "s2", Name: "Conjunto 2"}}, nil)
				deps.api.EXPECT().ListAds(gomock.Any(), "s1").Return([]domain.RemoteAd{{RemoteID: "a1", Name: "Anúncio A"}}, nil)
				deps.api.EXPECT().ListAds(gomock.Any(), "s2").Return([]domain.RemoteAd{{RemoteID: "a2", Name: "Anúncio B"}}, nil)

				deps.api.EXPECT().GetDailyInsights(gomock.Any(), "a1", dateRange).
					Return([]domain.RawInsight{purchaseInsight("a1", "2024-03-09")}, nil)
				deps.api.EXPECT().GetDailyInsights(gomock.Any(), "a2", dateRange).Return(nil, nil)
			},
			validate: func(t *testing.T, deps engineDeps, result *domain.RunResult, err error) {
				require.NoError(t, err)
				assert.False(t, result.Failed())
				assert.Equal(t, 2, result.CampaignsProcessed)
				assert.Equal(t, 2, result.AdSetsProcessed)
				assert.Equal(t, 2, result.AdsProcessed)
				assert.Equal(t, 1, result.MetricsStored)

				metric, ok := deps.store.metrics[metricKey(deps.store.adID("a1"), time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC))]
				require.True(t, ok)
				assert.Equal(t, 1.0, metric.CTR)
				assert.Equal(t, 10.0, metric.CPC)
				assert.Equal(t, 100.0, metric.CPM)
				assert.Equal(t, 3.0, metric.ROAS)
				assert.Equal(t, 100.0, metric.CPA)
				assert.Equal(t, int64(1), metric.Purchases)

				assert.Equal(t, "client-1", deps.store.campaigns["c1"].OwnerID)
				assert.Equal(t, deps.store.campaigns["c1"].ID, deps.store.adSets["s1"].CampaignID)
				assert.Equal(t, deps.store.adSets["s2"].ID, deps.store.ads["a2"].AdSetID)
			},
		},
		{
			name: "Um de três conjuntos falha - deve processar os outros dois e registrar um único erro",
			setup: func(deps engineDeps) {
				deps.api.EXPECT().ListCampaigns(gomock.Any(), "act_123").Return([]domain.RemoteCampaign{{RemoteID: "c1", Name: "Campanha 1"}}, nil)
				deps.owners.EXPECT().ResolveOwner(gomock.Any(), gomock.Any(), gomock.Any()).Return("client-1", nil)
				deps.api.EXPECT().ListAdSets(gomock.Any(), "c1").Return([]domain.RemoteAdSet{
					{RemoteID: "s1"}, {RemoteID: "s2"}, {RemoteID: "s3"},
				}, nil)

				deps.api.EXPECT().ListAds(gomock.Any(), "s1").Return([]domain.RemoteAd{{RemoteID: "a1"}}, nil)
				deps.api.EXPECT().ListAds(gomock.Any(), "s2").Return(nil, errors.New("erro 500 da plataforma"))
				deps.api.EXPECT().ListAds(gomock.Any(), "s3").Return([]domain.RemoteAd{{RemoteID: "a3"}}, nil)

				deps.api.EXPECT().GetDailyInsights(gomock.Any(), "a1", dateRange).
					Return([]domain.RawInsight{purchaseInsight("a1", "2024-03-08")}, nil)
				deps.api.EXPECT().GetDailyInsights(gomock.Any(), "a3", dateRange).
					Return([]domain.RawInsight{purchaseInsight("a3", "2024-03-08")}, nil)
			},
			validate: func(t *testing.T, deps engineDeps, result *domain.RunResult, err error) {
				require.NoError(t, err)
				assert.True(t, result.Failed())
				require.Len(t, result.Errors, 1)
				assert.Equal(t, domain.NodeLevelAdSet, result.Errors[0].Level)
				assert.Equal(t, "s2", result.Errors[0].RemoteID)
				assert.Equal(t, "act_123", result.Errors[0].AccountID)
				assert.Contains(t, result.Errors[0].String(), "ad_set s2")

				assert.Equal(t, 2, result.AdsProcessed)
				assert.Equal(t, 2, result.MetricsStored)
			},
		},
		{
			name: "Falha ao listar campanhas - deve abortar a conta com AccountFetchError",
			setup: func(deps engineDeps) {
				deps.api.EXPECT().ListCampaigns(gomock.Any(), "act_123").
					Return(nil, fmt.Errorf("listar campanhas: %w", domain.ErrRemoteAuth))
			},
			validate: func(t *testing.T, deps engineDeps, result *domain.RunResult, err error) {
				assert.Nil(t, result)

				var fetchErr *syncing.AccountFetchError
				require.ErrorAs(t, err, &fetchErr)
				assert.Equal(t, "act_123", fetchErr.AccountID)
				assert.ErrorIs(t, err, domain.ErrRemoteAuth)
				assert.Empty(t, deps.store.campaigns)
			},
		},
		{
			name: "Dono não resolvido - deve pular a campanha nova e seguir com as demais",
			setup: func(deps engineDeps) {
				deps.store.campaigns["c2"] = domain.Campaign{ID: "local-c2", RemoteID: "c2", OwnerID: "client-9"}

				deps.api.EXPECT().ListCampaigns(gomock.Any(), "act_123").Return([]domain.RemoteCampaign{
					{RemoteID: "c1", Name: "Nova"},
					{RemoteID: "c2", Name: "Conhecida"},
				}, nil)
				deps.owners.EXPECT().ResolveOwner(gomock.Any(), gomock.Any(), gomock.Any()).Return("", syncing.ErrOwnerUnresolved)
				deps.api.EXPECT().ListAdSets(gomock.Any(), "c2").Return(nil, nil)
			},
			validate: func(t *testing.T, deps engineDeps, result *domain.RunResult, err error) {
				require.NoError(t, err)
				require.Len(t, result.Errors, 1)
				assert.Equal(t, domain.NodeLevelCampaign, result.Errors[0].Level)
				assert.Equal(t, "c1", result.Errors[0].RemoteID)
				assert.Equal(t, 1, result.CampaignsProcessed)

				_, created := deps.store.campaigns["c1"]
				assert.False(t, created)
				assert.Equal(t, "Conhecida", deps.store.campaigns["c2"].Name)
				assert.Equal(t, "client-9", deps.store.campaigns["c2"].OwnerID)
			},
		},
		{
			name: "Gasto acima do orçamento e ROAS baixo - deve disparar as duas notificações",
			setup: func(deps engineDeps) {
				budget := 50.0

				deps.api.EXPECT().ListCampaigns(gomock.Any(), "act_123").Return([]domain.RemoteCampaign{{RemoteID: "c1"}}, nil)
				deps.owners.EXPECT().ResolveOwner(gomock.Any(), gomock.Any(), gomock.Any()).Return("client-1", nil)
				deps.api.EXPECT().ListAdSets(gomock.Any(), "c1").Return([]domain.RemoteAdSet{{RemoteID: "s1", Name: "Conjunto", DailyBudget: &budget}}, nil)
				deps.api.EXPECT().ListAds(gomock.Any(), "s1").Return([]domain.RemoteAd{{RemoteID: "a1", Name: "Anúncio"}}, nil)
				deps.api.EXPECT().GetDailyInsights(gomock.Any(), "a1", dateRange).Return([]domain.RawInsight{{
					AdRemoteID:  "a1",
					DateStart:   "2024-03-09",
					Spend:       "100",
					Impressions: "1000",
					Clicks:      "10",
				}}, nil)

				deps.notifier.EXPECT().Raise(gomock.Any()).Do(func(n domain.Notification) {
					assert.Equal(t, "client-1", n.UserID)
					assert.Equal(t, domain.NotificationRoasBelowFloor, n.Category)
				})
				deps.notifier.EXPECT().Raise(gomock.Any()).Do(func(n domain.Notification) {
					assert.Equal(t, "client-1", n.UserID)
					assert.Equal(t, domain.NotificationBudgetThreshold, n.Category)
					assert.Contains(t, n.Message, "Conjunto")
				})
			},
			validate: func(t *testing.T, deps engineDeps, result *domain.RunResult, err error) {
				require.NoError(t, err)
				assert.Equal(t, 1, result.MetricsStored)
			},
		},
		{
			name: "Campanha conhecida de outro cliente - deve notificar o dono da campanha e não o da conta",
			setup: func(deps engineDeps) {
				deps.store.campaigns["c1"] = domain.Campaign{ID: "local-c1", RemoteID: "c1", OwnerID: "client-9"}

				deps.api.EXPECT().ListCampaigns(gomock.Any(), "act_123").Return([]domain.RemoteCampaign{{RemoteID: "c1"}}, nil)
				deps.api.EXPECT().ListAdSets(gomock.Any(), "c1").Return([]domain.RemoteAdSet{{RemoteID: "s1"}}, nil)
				deps.api.EXPECT().ListAds(gomock.Any(), "s1").Return([]domain.RemoteAd{{RemoteID: "a1"}}, nil)
				deps.api.EXPECT().GetDailyInsights(gomock.Any(), "a1", dateRange).Return([]domain.RawInsight{{
					AdRemoteID: "a1",
					DateStart:  "2024-03-09",
					Spend:      "10",
				}}, nil)

				deps.notifier.EXPECT().Raise(gomock.Any()).Do(func(n domain.Notification) {
					assert.Equal(t, "client-9", n.UserID)
					assert.Equal(t, domain.NotificationRoasBelowFloor, n.Category)
				})
			},
			validate: func(t *testing.T, deps engineDeps, result *domain.RunResult, err error) {
				require.NoError(t, err)
				assert.Equal(t, 1, result.MetricsStored)
			},
		},
		{
			name: "Falha ao gravar métrica - deve registrar erro no nível de métrica",
			setup: func(deps engineDeps) {
				deps.store.failMetrics = true

				deps.api.EXPECT().ListCampaigns(gomock.Any(), "act_123").Return([]domain.RemoteCampaign{{RemoteID: "c1"}}, nil)
				deps.owners.EXPECT().ResolveOwner(gomock.Any(), gomock.Any(), gomock.Any()).Return("client-1", nil)
				deps.api.EXPECT().ListAdSets(gomock.Any(), "c1").Return([]domain.RemoteAdSet{{RemoteID: "s1"}}, nil)
				deps.api.EXPECT().ListAds(gomock.Any(), "s1").Return([]domain.RemoteAd{{RemoteID: "a1"}}, nil)
				deps.api.EXPECT().GetDailyInsights(gomock.Any(), "a1", dateRange).
					Return([]domain.RawInsight{purchaseInsight("a1", "2024-03-09")}, nil)
			},
			validate: func(t *testing.T, deps engineDeps, result *domain.RunResult, err error) {
				require.NoError(t, err)
				require.Len(t, result.Errors, 1)
				assert.Equal(t, domain.NodeLevelMetric, result.Errors[0].Level)
				assert.Equal(t, "a1", result.Errors[0].RemoteID)
				assert.Equal(t, 0, result.MetricsStored)
				assert.Equal(t, 1, result.AdsProcessed)
			},
		},
		{
			name: "Doze anúncios em lotes de cinco - deve pausar entre os lotes",
			cfg: func(cfg *config.Config) {
				cfg.Sync.AdBatchSize = 5
			},
			setup: func(deps engineDeps) {
				ads := make([]domain.RemoteAd, 0, 12)
				for i := range 12 {
					ads = append(ads, domain.RemoteAd{RemoteID: fmt.Sprintf("a%d", i)})
				}

				deps.api.EXPECT().ListCampaigns(gomock.Any(), "act_123").Return([]domain.RemoteCampaign{{RemoteID: "c1"}}, nil)
				deps.owners.EXPECT().ResolveOwner(gomock.Any(), gomock.Any(), gomock.Any()).Return("client-1", nil)
				deps.api.EXPECT().ListAdSets(gomock.Any(), "c1").Return([]domain.RemoteAdSet{{RemoteID: "s1"}}, nil)
				deps.api.EXPECT().ListAds(gomock.Any(), "s1").Return(ads, nil)
				deps.api.EXPECT().GetDailyInsights(gomock.Any(), gomock.Any(), dateRange).Return(nil, nil).Times(12)
			},
			validate: func(t *testing.T, deps engineDeps, result *domain.RunResult, err error) {
				require.NoError(t, err)
				assert.Equal(t, 12, result.AdsProcessed)
				assert.Equal(t, []time.Duration{time.Second, time.Second}, *deps.sleeps)
			},
		},
		{
			name: "Modo agregado - deve gravar a métrica na data final do período",
			cfg: func(cfg *config.Config) {
				cfg.Sync.DailyBreakdown = false
			},
			setup: func(deps engineDeps) {
				deps.api.EXPECT().ListCampaigns(gomock.Any(), "act_123").Return([]domain.RemoteCampaign{{RemoteID: "c1"}}, nil)
				deps.owners.EXPECT().ResolveOwner(gomock.Any(), gomock.Any(), gomock.Any()).Return("client-1", nil)
				deps.api.EXPECT().ListAdSets(gomock.Any(), "c1").Return([]domain.RemoteAdSet{{RemoteID: "s1"}}, nil)
				deps.api.EXPECT().ListAds(gomock.Any(), "s1").Return([]domain.RemoteAd{{RemoteID: "a1"}, {RemoteID: "a2"}}, nil)

				insight := purchaseInsight("a1", "2024-03-03")
				deps.api.EXPECT().GetInsights(gomock.Any(), "a1", dateRange).Return(&insight, nil)
				deps.api.EXPECT().GetInsights(gomock.Any(), "a2", dateRange).Return(nil, nil)
			},
			validate: func(t *testing.T, deps engineDeps, result *domain.RunResult, err error) {
				require.NoError(t, err)
				assert.Equal(t, 1, result.MetricsStored)

				_, ok := deps.store.metrics[metricKey(deps.store.adID("a1"), dateRange.Until)]
				assert.True(t, ok)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)

			deps := engineDeps{
				api:      mocks.NewMockAdsAPI(ctrl),
				owners:   mocks.NewMockOwnerResolver(ctrl),
				notifier: mocks.NewMockNotifier(ctrl),
				store:    newFakeStore(),
				sleeps:   &[]time.Duration{},
			}

			cfg := testConfig()
			if tt.cfg != nil {
				tt.cfg(cfg)
			}

			tt.setup(deps)

			engine := newTestEngine(deps, cfg)
			result, err := engine.ReconcileAccount(context.Background(), deps.api, account, dateRange)

			tt.validate(t, deps, result, err)
		})
	}
}

func TestEngine_ReconcileAccount_Canceled(t *testing.T) {
	account := domain.SyncAccount{OwnerID: "owner-1", RemoteAccountID: "act_123"}
	dateRange := domain.TrailingWindow(time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC), 1)

	tests := []struct {
		name     string
		cfg      func(cfg *config.Config)
		setup    func(deps engineDeps, cancel context.CancelFunc)
		sleeper  func(cancel context.CancelFunc) syncing.Sleeper
		validate func(t *testing.T, result *domain.RunResult, err error)
	}{
		{
			name: "Cancelado ao listar anúncios da primeira campanha - não visita conjuntos, campanhas e métricas restantes",
			setup: func(deps engineDeps, cancel context.CancelFunc) {
				deps.api.EXPECT().ListCampaigns(gomock.Any(), "act_123").Return([]domain.RemoteCampaign{
					{RemoteID: "c1"}, {RemoteID: "c2"},
				}, nil)
				deps.owners.EXPECT().ResolveOwner(gomock.Any(), gomock.Any(), gomock.Any()).Return("client-1", nil)
				deps.api.EXPECT().ListAdSets(gomock.Any(), "c1").Return([]domain.RemoteAdSet{
					{RemoteID: "s1"}, {RemoteID: "s2"},
				}, nil)
				deps.api.EXPECT().ListAds(gomock.Any(), "s1").DoAndReturn(func(_ context.Context, _ string) ([]domain.RemoteAd, error) {
					cancel()
					return []domain.RemoteAd{{RemoteID: "a1"}, {RemoteID: "a2"}}, nil
				})
			},
			validate: func(t *testing.T, result *domain.RunResult, err error) {
				require.NoError(t, err)
				require.Len(t, result.Errors, 1)
				assert.Equal(t, domain.NodeLevelAccount, result.Errors[0].Level)
				assert.Equal(t, "act_123", result.Errors[0].RemoteID)
				assert.Contains(t, result.Errors[0].Message, context.Canceled.Error())

				assert.Equal(t, 1, result.CampaignsProcessed)
				assert.Equal(t, 1, result.AdSetsProcessed)
				assert.Equal(t, 0, result.AdsProcessed)
				assert.Equal(t, 0, result.MetricsStored)
			},
		},
		{
			name: "Cancelado ao listar conjuntos da última campanha - não busca métricas",
			setup: func(deps engineDeps, cancel context.CancelFunc) {
				deps.api.EXPECT().ListCampaigns(gomock.Any(), "act_123").Return([]domain.RemoteCampaign{{RemoteID: "c1"}}, nil)
				deps.owners.EXPECT().ResolveOwner(gomock.Any(), gomock.Any(), gomock.Any()).Return("client-1", nil)
				deps.api.EXPECT().ListAdSets(gomock.Any(), "c1").DoAndReturn(func(_ context.Context, _ string) ([]domain.RemoteAdSet, error) {
					cancel()
					return []domain.RemoteAdSet{{RemoteID: "s1"}}, nil
				})
			},
			validate: func(t *testing.T, result *domain.RunResult, err error) {
				require.NoError(t, err)
				require.Len(t, result.Errors, 1)
				assert.Equal(t, domain.NodeLevelAccount, result.Errors[0].Level)

				assert.Equal(t, 1, result.CampaignsProcessed)
				assert.Equal(t, 0, result.AdSetsProcessed)
				assert.Equal(t, 0, result.MetricsStored)
			},
		},
		{
			name: "Cancelado na pausa entre lotes - mantém o primeiro lote e não busca o segundo",
			cfg: func(cfg *config.Config) {
				cfg.Sync.AdBatchSize = 1
			},
			setup: func(deps engineDeps, cancel context.CancelFunc) {
				deps.api.EXPECT().ListCampaigns(gomock.Any(), "act_123").Return([]domain.RemoteCampaign{{RemoteID: "c1"}}, nil)
				deps.owners.EXPECT().ResolveOwner(gomock.Any(), gomock.Any(), gomock.Any()).Return("client-1", nil)
				deps.api.EXPECT().ListAdSets(gomock.Any(), "c1").Return([]domain.RemoteAdSet{{RemoteID: "s1"}}, nil)
				deps.api.EXPECT().ListAds(gomock.Any(), "s1").Return([]domain.RemoteAd{{RemoteID: "a1"}, {RemoteID: "a2"}}, nil)
				deps.api.EXPECT().GetDailyInsights(gomock.Any(), "a1", dateRange).
					Return([]domain.RawInsight{purchaseInsight("a1", "2024-03-09")}, nil)
			},
			sleeper: func(cancel context.CancelFunc) syncing.Sleeper {
				return func(ctx context.Context, _ time.Duration) error {
					cancel()
					return ctx.Err()
				}
			},
			validate: func(t *testing.T, result *domain.RunResult, err error) {
				require.NoError(t, err)
				require.Len(t, result.Errors, 1)
				assert.Equal(t, domain.NodeLevelAccount, result.Errors[0].Level)
				assert.Contains(t, result.Errors[0].Message, context.Canceled.Error())

				assert.Equal(t, 2, result.AdsProcessed)
				assert.Equal(t, 1, result.MetricsStored)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)

			deps := engineDeps{
				api:      mocks.NewMockAdsAPI(ctrl),
				owners:   mocks.NewMockOwnerResolver(ctrl),
				notifier: mocks.NewMockNotifier(ctrl),
				store:    newFakeStore(),
				sleeps:   &[]time.Duration{},
			}

			cfg := testConfig()
			if tt.cfg != nil {
				tt.cfg(cfg)
			}

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			tt.setup(deps, cancel)

			opts := make([]syncing.EngineOption, 0)
			if tt.sleeper != nil {
				opts = append(opts, syncing.WithSleeper(tt.sleeper(cancel)))
			}

			engine := syncing.NewEngine(
				campaignTable{deps.store},
				adSetTable{deps.store},
				adTable{deps.store},
				metricTable{deps.store},
				deps.owners,
				deps.notifier,
				cfg,
				opts...,
			)
			result, err := engine.ReconcileAccount(ctx, deps.api, account, dateRange)

			tt.validate(t, result, err)
		})
	}
}

func TestEngine_ReconcileAccountTwiceIsIdempotent(t *testing.T) {
	ctrl := gomock.NewController(t)

	deps := engineDeps{
		api:      mocks.NewMockAdsAPI(ctrl),
		owners:   mocks.NewMockOwnerResolver(ctrl),
		notifier: mocks.NewMockNotifier(ctrl),
		store:    newFakeStore(),
		sleeps:   &[]time.Duration{},
	}

	account := domain.SyncAccount{OwnerID: "owner-1", RemoteAccountID: "act_123"}
	dateRange := domain.TrailingWindow(time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC), 1)

	deps.api.EXPECT().ListCampaigns(gomock.Any(), "act_123").Return([]domain.RemoteCampaign{
		{RemoteID: "c1", Name: "Black Friday", Status: domain.EntityStatusActive},
	}, nil)
	deps.api.EXPECT().ListCampaigns(gomock.Any(), "act_123").Return([]domain.RemoteCampaign{
		{RemoteID: "c1", Name: "Black Friday - Final", Status: domain.EntityStatusPaused},
	}, nil)
	deps.owners.EXPECT().ResolveOwner(gomock.Any(), gomock.Any(), gomock.Any()).Return("client-1", nil).Times(1)
	deps.api.EXPECT().ListAdSets(gomock.Any(), "c1").Return([]domain.RemoteAdSet{{RemoteID: "s1"}}, nil).Times(2)
	deps.api.EXPECT().ListAds(gomock.Any(), "s1").Return([]domain.RemoteAd{{RemoteID: "a1"}}, nil).Times(2)
	deps.api.EXPECT().GetDailyInsights(gomock.Any(), "a1", dateRange).
		Return([]domain.RawInsight{purchaseInsight("a1", "2024-03-09")}, nil).Times(2)

	engine := newTestEngine(deps, testConfig())

	_, err := engine.ReconcileAccount(context.Background(), deps.api, account, dateRange)
	require.NoError(t, err)
	first := deps.store.campaigns["c1"]
	firstMetric := deps.store.metrics[metricKey(deps.store.adID("a1"), dateRange.Until)]

	_, err = engine.ReconcileAccount(context.Background(), deps.api, account, dateRange)
	require.NoError(t, err)

	assert.Len(t, deps.store.campaigns, 1)
	assert.Len(t, deps.store.adSets, 1)
	assert.Len(t, deps.store.ads, 1)
	assert.Len(t, deps.store.metrics, 1)

	second := deps.store.campaigns["c1"]
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "Black Friday - Final", second.Name)
	assert.Equal(t, domain.EntityStatusPaused, second.Status)
	assert.Equal(t, "client-1", second.OwnerID)

	secondMetric := deps.store.metrics[metricKey(deps.store.adID("a1"), dateRange.Until)]
	assert.Equal(t, firstMetric, secondMetric)
}
