package syncing

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sourcegraph/conc/pool"
	"github.com/vfg2006/ads-sync-engine/infrastructure/repository"
	"github.com/vfg2006/ads-sync-engine/internal/config"
	"github.com/vfg2006/ads-sync-engine/internal/domain"
	"github.com/vfg2006/ads-sync-engine/internal/telemetry"
	"github.com/vfg2006/ads-sync-engine/internal/usecases/metrics"
	"github.com/vfg2006/ads-sync-engine/pkg/log"
	"github.com/vfg2006/ads-sync-engine/pkg/utils"
)

// Sleeper aguarda a duração informada ou o cancelamento do contexto
type Sleeper func(ctx context.Context, d time.Duration) error

// Engine espelha a hierarquia campanha > conjunto > anúncio > métrica de uma conta
// no banco local. Falhas de um nó não interrompem os irmãos.
type Engine struct {
	campaignRepo repository.CampaignRepository
	adSetRepo    repository.AdSetRepository
	adRepo       repository.AdRepository
	metricRepo   repository.MetricRepository
	owners       OwnerResolver
	notifier     Notifier

	batchSize      int
	batchPause     time.Duration
	dailyBreakdown bool
	roasFloor      float64
	budgetFraction float64

	sleep Sleeper
	now   func() time.Time
}

type EngineOption func(*Engine)

func WithSleeper(sleeper Sleeper) EngineOption {
	return func(e *Engine) {
		e.sleep = sleeper
	}
}

func WithClock(now func() time.Time) EngineOption {
	return func(e *Engine) {
		e.now = now
	}
}

func NewEngine(
	campaignRepo repository.CampaignRepository,
	adSetRepo repository.AdSetRepository,
	adRepo repository.AdRepository,
	metricRepo repository.MetricRepository,
	owners OwnerResolver,
	notifier Notifier,
	cfg *config.Config,
	opts ...EngineOption,
) *Engine {
	e := &Engine{
		campaignRepo:   campaignRepo,
		adSetRepo:      adSetRepo,
		adRepo:         adRepo,
		metricRepo:     metricRepo,
		owners:         owners,
		notifier:       notifier,
		batchSize:      cfg.Sync.AdBatchSize,
		batchPause:     cfg.Sync.AdBatchPause,
		dailyBreakdown: cfg.Sync.DailyBreakdown,
		roasFloor:      cfg.Alerts.RoasFloor,
		budgetFraction: cfg.Alerts.SpendBudgetFraction,
		sleep:          sleepContext,
		now:            time.Now,
	}

	for _, opt := range opts {
		opt(e)
	}

	if e.batchSize < 1 {
		e.batchSize = 1
	}

	return e
}

// adTarget é um anúncio já persistido, pronto para receber métricas.
// ownerID é o dono da campanha, destinatário dos alertas do anúncio.
type adTarget struct {
	ad      domain.Ad
	adSet   domain.AdSet
	ownerID string
}

// collector acumula o resultado da conta a partir das goroutines de métricas
type collector struct {
	mu     sync.Mutex
	result *domain.RunResult
}

func (c *collector) addError(level domain.NodeLevel, accountID, remoteID string, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.result.AddError(level, accountID, remoteID, err)
	telemetry.SyncNodeErrorsTotal.WithLabelValues(string(level)).Inc()
}

func (c *collector) addMetric() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.result.MetricsStored++
	telemetry.SyncMetricsStoredTotal.Inc()
}

func (e *Engine) ReconcileAccount(ctx context.Context, api AdsAPI, account domain.SyncAccount, dateRange domain.DateRange) (*domain.RunResult, error) {
	logger := log.ForContext(ctx).WithFields(log.Fields{
		"owner_id":   account.OwnerID,
		"account_id": account.RemoteAccountID,
	})

	campaigns, err := api.ListCampaigns(ctx, account.RemoteAccountID)
	if err != nil {
		return nil, &AccountFetchError{AccountID: account.RemoteAccountID, Err: err}
	}

	logger.Infof("sync: %d campanhas encontradas para %s", len(campaigns), dateRange)

	acc := &collector{result: &domain.RunResult{DateRange: dateRange}}
	targets := make([]adTarget, 0)

	for _, remoteCampaign := range campaigns {
		if err := ctx.Err(); err != nil {
			acc.addError(domain.NodeLevelAccount, account.RemoteAccountID, account.RemoteAccountID, err)
			return acc.result, nil
		}

		campaign, ok := e.reconcileCampaign(ctx, account, remoteCampaign, acc)
		if !ok {
			continue
		}

		targets = append(targets, e.reconcileAdSets(ctx, api, account, campaign, acc)...)
	}

	// cancelado dentro de um conjunto ou anúncio: não busca métricas
	if err := ctx.Err(); err != nil {
		acc.addError(domain.NodeLevelAccount, account.RemoteAccountID, account.RemoteAccountID, err)
		return acc.result, nil
	}

	e.syncMetrics(ctx, api, account, targets, dateRange, acc)

	logger.WithFields(log.Fields{
		"campaigns": acc.result.CampaignsProcessed,
		"ad_sets":   acc.result.AdSetsProcessed,
		"ads":       acc.result.AdsProcessed,
		"metrics":   acc.result.MetricsStored,
		"errors":    len(acc.result.Errors),
	}).Info("sync: conta reconciliada")

	return acc.result, nil
}

func (e *Engine) reconcileCampaign(ctx context.Context, account domain.SyncAccount, remote domain.RemoteCampaign, acc *collector) (*domain.Campaign, bool) {
	existing, err := e.campaignRepo.GetByRemoteID(ctx, remote.RemoteID)
	if err != nil {
		acc.addError(domain.NodeLevelCampaign, account.RemoteAccountID, remote.RemoteID, fmt.Errorf("erro ao buscar campanha: %w", err))
		return nil, false
	}

	campaign := &domain.Campaign{
		RemoteID:     remote.RemoteID,
		AccountID:    account.RemoteAccountID,
		Name:         remote.Name,
		Status:       remote.Status,
		LastSyncedAt: e.now(),
	}

	if existing != nil {
		campaign.ID = existing.ID
		campaign.OwnerID = existing.OwnerID
	} else {
		ownerID, err := e.owners.ResolveOwner(ctx, account, remote)
		if err != nil {
			acc.addError(domain.NodeLevelCampaign, account.RemoteAccountID, remote.RemoteID, err)
			return nil, false
		}

		id, err := utils.GenerateID()
		if err != nil {
			acc.addError(domain.NodeLevelCampaign, account.RemoteAccountID, remote.RemoteID, fmt.Errorf("erro ao gerar id da campanha: %w", err))
			return nil, false
		}

		campaign.ID = id
		campaign.OwnerID = ownerID
	}

	campaign.ID, err = e.campaignRepo.Upsert(ctx, campaign)
	if err != nil {
		acc.addError(domain.NodeLevelCampaign, account.RemoteAccountID, remote.RemoteID, fmt.Errorf("erro ao salvar campanha: %w", err))
		return nil, false
	}

	acc.result.CampaignsProcessed++
	return campaign, true
}

func (e *Engine) reconcileAdSets(ctx context.Context, api AdsAPI, account domain.SyncAccount, campaign *domain.Campaign, acc *collector) []adTarget {
	remoteAdSets, err := api.ListAdSets(ctx, campaign.RemoteID)
	if err != nil {
		acc.addError(domain.NodeLevelCampaign, account.RemoteAccountID, campaign.RemoteID, fmt.Errorf("erro ao listar conjuntos de anúncios: %w", err))
		return nil
	}

	targets := make([]adTarget, 0)
	for _, remote := range remoteAdSets {
		if ctx.Err() != nil {
			return targets
		}

		id, err := utils.GenerateID()
		if err != nil {
			acc.addError(domain.NodeLevelAdSet, account.RemoteAccountID, remote.RemoteID, fmt.Errorf("erro ao gerar id do conjunto: %w", err))
			continue
		}

		adSet := domain.AdSet{
			ID:           id,
			RemoteID:     remote.RemoteID,
			CampaignID:   campaign.ID,
			Name:         remote.Name,
			DailyBudget:  remote.DailyBudget,
			Status:       remote.Status,
			LastSyncedAt: e.now(),
		}

		adSet.ID, err = e.adSetRepo.Upsert(ctx, &adSet)
		if err != nil {
			acc.addError(domain.NodeLevelAdSet, account.RemoteAccountID, remote.RemoteID, fmt.Errorf("erro ao salvar conjunto de anúncios: %w", err))
			continue
		}
		acc.result.AdSetsProcessed++

		targets = append(targets, e.reconcileAds(ctx, api, account, campaign.OwnerID, adSet, acc)...)
	}

	return targets
}

func (e *Engine) reconcileAds(ctx context.Context, api AdsAPI, account domain.SyncAccount, ownerID string, adSet domain.AdSet, acc *collector) []adTarget {
	remoteAds, err := api.ListAds(ctx, adSet.RemoteID)
	if err != nil {
		acc.addError(domain.NodeLevelAdSet, account.RemoteAccountID, adSet.RemoteID, fmt.Errorf("erro ao listar anúncios: %w", err))
		return nil
	}

	targets := make([]adTarget, 0, len(remoteAds))
	for _, remote := range remoteAds {
		if ctx.Err() != nil {
			return targets
		}

		id, err := utils.GenerateID()
		if err != nil {
			acc.addError(domain.NodeLevelAd, account.RemoteAccountID, remote.RemoteID, fmt.Errorf("erro ao gerar id do anúncio: %w", err))
			continue
		}

		ad := domain.Ad{
			ID:           id,
			RemoteID:     remote.RemoteID,
			AdSetID:      adSet.ID,
			Name:         remote.Name,
			CreativeURL:  remote.CreativeURL,
			Status:       remote.Status,
			LastSyncedAt: e.now(),
		}

		ad.ID, err = e.adRepo.Upsert(ctx, &ad)
		if err != nil {
			acc.addError(domain.NodeLevelAd, account.RemoteAccountID, remote.RemoteID, fmt.Errorf("erro ao salvar anúncio: %w", err))
			continue
		}
		acc.result.AdsProcessed++

		targets = append(targets, adTarget{ad: ad, adSet: adSet, ownerID: ownerID})
	}

	return targets
}

// syncMetrics processa os anúncios em lotes concorrentes com pausa entre lotes
// para respeitar o limite de chamadas da plataforma
func (e *Engine) syncMetrics(ctx context.Context, api AdsAPI, account domain.SyncAccount, targets []adTarget, dateRange domain.DateRange, acc *collector) {
	for start := 0; start < len(targets); start += e.batchSize {
		if start > 0 && e.batchPause > 0 {
			if err := e.sleep(ctx, e.batchPause); err != nil {
				acc.addError(domain.NodeLevelAccount, account.RemoteAccountID, account.RemoteAccountID, err)
				return
			}
		}

		end := min(start+e.batchSize, len(targets))

		p := pool.New().WithMaxGoroutines(e.batchSize)
		for _, target := range targets[start:end] {
			p.Go(func() {
				e.syncAdMetrics(ctx, api, account, target, dateRange, acc)
			})
		}
		p.Wait()
	}
}

func (e *Engine) syncAdMetrics(ctx context.Context, api AdsAPI, account domain.SyncAccount, target adTarget, dateRange domain.DateRange, acc *collector) {
	insights, err := e.fetchInsights(ctx, api, target.ad.RemoteID, dateRange)
	if err != nil {
		acc.addError(domain.NodeLevelAd, account.RemoteAccountID, target.ad.RemoteID, fmt.Errorf("erro ao buscar insights: %w", err))
		return
	}

	daysCovered := 1
	if !e.dailyBreakdown {
		daysCovered = dateRange.Days()
	}

	for _, insight := range insights {
		metric := metrics.Calculate(insight)
		metric.AdID = target.ad.ID
		if !e.dailyBreakdown || metric.Date.IsZero() {
			metric.Date = utils.TruncateToDay(dateRange.Until)
		}

		if err := e.metricRepo.Upsert(ctx, &metric); err != nil {
			acc.addError(domain.NodeLevelMetric, account.RemoteAccountID, target.ad.RemoteID, fmt.Errorf("erro ao salvar métrica de %s: %w", metric.Date.Format(time.DateOnly), err))
			continue
		}
		acc.addMetric()

		e.evaluateThresholds(target, metric, daysCovered)
	}
}

func (e *Engine) fetchInsights(ctx context.Context, api AdsAPI, adRemoteID string, dateRange domain.DateRange) ([]domain.RawInsight, error) {
	if e.dailyBreakdown {
		return api.GetDailyInsights(ctx, adRemoteID, dateRange)
	}

	insight, err := api.GetInsights(ctx, adRemoteID, dateRange)
	if err != nil || insight == nil {
		return nil, err
	}

	return []domain.RawInsight{*insight}, nil
}

func (e *Engine) evaluateThresholds(target adTarget, metric domain.Metric, daysCovered int) {
	if metric.Spend > 0 && metric.ROAS < e.roasFloor {
		message := fmt.Sprintf("O anúncio %s teve ROAS de %.2f em %s, abaixo do mínimo de %.2f",
			target.ad.Name, metric.ROAS, metric.Date.Format(time.DateOnly), e.roasFloor)
		e.raise(target.ownerID, domain.NotificationRoasBelowFloor, message)
	}

	if target.adSet.DailyBudget == nil || *target.adSet.DailyBudget <= 0 {
		return
	}

	limit := *target.adSet.DailyBudget * e.budgetFraction * float64(daysCovered)
	if metric.Spend > limit {
		message := fmt.Sprintf("O conjunto %s gastou %.2f em %s, acima de %.0f%% do orçamento diário de %.2f",
			target.adSet.Name, metric.Spend, metric.Date.Format(time.DateOnly), e.budgetFraction*100, *target.adSet.DailyBudget)
		e.raise(target.ownerID, domain.NotificationBudgetThreshold, message)
	}
}

func (e *Engine) raise(ownerID string, category domain.NotificationCategory, message string) {
	e.notifier.Raise(domain.Notification{
		UserID:    ownerID,
		Category:  category,
		Message:   message,
		CreatedAt: e.now(),
	})
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
