package syncing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sourcegraph/conc/pool"
	"github.com/vfg2006/ads-sync-engine/internal/config"
	"github.com/vfg2006/ads-sync-engine/internal/domain"
	"github.com/vfg2006/ads-sync-engine/internal/telemetry"
	"github.com/vfg2006/ads-sync-engine/pkg/log"
)

const (
	scopeOwner = "owner"
	scopeAll   = "all"
)

// Orchestrator escolhe as contas elegíveis e dispara a reconciliação de cada uma
type Orchestrator struct {
	credentials CredentialStore
	decrypter   Decrypter
	source      AdsSource
	reconciler  Reconciler
	notifier    Notifier

	lookbackDays  int
	maxConcurrent int

	now func() time.Time
}

type OrchestratorOption func(*Orchestrator)

func WithOrchestratorClock(now func() time.Time) OrchestratorOption {
	return func(o *Orchestrator) {
		o.now = now
	}
}

func NewOrchestrator(
	credentials CredentialStore,
	decrypter Decrypter,
	source AdsSource,
	reconciler Reconciler,
	notifier Notifier,
	cfg *config.Config,
	opts ...OrchestratorOption,
) *Orchestrator {
	o := &Orchestrator{
		credentials:   credentials,
		decrypter:     decrypter,
		source:        source,
		reconciler:    reconciler,
		notifier:      notifier,
		lookbackDays:  cfg.Sync.LookbackDays,
		maxConcurrent: cfg.Sync.MaxConcurrentAccounts,
		now:           time.Now,
	}

	for _, opt := range opts {
		opt(o)
	}

	if o.maxConcurrent < 1 {
		o.maxConcurrent = 1
	}

	return o
}

// RunSync sincroniza a conta de um único dono. Sem período usa a janela de SYNC_LOOKBACK_DAYS.
func (o *Orchestrator) RunSync(ctx context.Context, ownerID string, dateRange *domain.DateRange) (*domain.RunResult, error) {
	ctx = withCorrelationID(ctx)

	result, err := o.newRun(dateRange)
	if err != nil {
		return nil, err
	}

	logger := log.ForContext(ctx).WithFields(log.Fields{
		"run_id":   result.RunID,
		"owner_id": ownerID,
	})
	logger.Infof("sync: iniciando sincronização do dono para %s", result.DateRange)

	result.States = append(result.States, domain.RunStateFetchingAccounts)

	credential, err := o.credentials.GetCredential(ctx, ownerID)
	if err != nil {
		return nil, errors.Wrapf(err, "erro ao buscar credencial do dono %s", ownerID)
	}

	if credential == nil {
		return nil, fmt.Errorf("%w: %s", ErrCredentialNotFound, ownerID)
	}

	accountResult := o.syncCredential(ctx, *credential, result.DateRange)
	o.finish(ctx, result, []*domain.RunResult{accountResult}, scopeOwner)

	return result, nil
}

// RunSyncAllAccounts sincroniza todas as contas com credencial, respeitando SYNC_MAX_CONCURRENT_ACCOUNTS
func (o *Orchestrator) RunSyncAllAccounts(ctx context.Context, dateRange *domain.DateRange) (*domain.RunResult, error) {
	ctx = withCorrelationID(ctx)

	result, err := o.newRun(dateRange)
	if err != nil {
		return nil, err
	}

	logger := log.ForContext(ctx).WithField("run_id", result.RunID)
	logger.Infof("sync: iniciando sincronização de todas as contas para %s", result.DateRange)

	result.States = append(result.States, domain.RunStateFetchingAccounts)

	ownerIDs, err := o.credentials.ListOwnerIDs(ctx)
	if err != nil {
		telemetry.SyncRunsTotal.WithLabelValues(scopeAll, "failed").Inc()
		return nil, errors.Wrap(err, "erro ao listar contas para sincronização")
	}

	logger.Infof("sync: %d contas encontradas", len(ownerIDs))

	p := pool.NewWithResults[*domain.RunResult]().WithMaxGoroutines(o.maxConcurrent)
	for _, ownerID := range ownerIDs {
		p.Go(func() *domain.RunResult {
			return o.syncOwner(ctx, ownerID, result.DateRange)
		})
	}

	o.finish(ctx, result, p.Wait(), scopeAll)

	return result, nil
}

func (o *Orchestrator) newRun(dateRange *domain.DateRange) (*domain.RunResult, error) {
	resolved := domain.TrailingWindow(o.now(), o.lookbackDays)
	if dateRange != nil {
		if err := dateRange.Validate(); err != nil {
			return nil, err
		}
		resolved = *dateRange
	}

	return &domain.RunResult{
		RunID:     uuid.New().String(),
		DateRange: resolved,
		Status:    domain.RunStateInitialized,
		States:    []domain.RunState{domain.RunStateInitialized},
		Errors:    make([]domain.NodeError, 0),
		StartedAt: o.now(),
	}, nil
}

func (o *Orchestrator) syncOwner(ctx context.Context, ownerID string, dateRange domain.DateRange) *domain.RunResult {
	credential, err := o.credentials.GetCredential(ctx, ownerID)
	if err != nil {
		res := &domain.RunResult{}
		res.AddError(domain.NodeLevelAccount, "", ownerID, fmt.Errorf("erro ao buscar credencial: %w", err))
		telemetry.SyncNodeErrorsTotal.WithLabelValues(string(domain.NodeLevelAccount)).Inc()
		return res
	}

	if credential == nil {
		log.ForContext(ctx).WithField("owner_id", ownerID).Warn("sync: credencial removida durante a execução, ignorando")
		return &domain.RunResult{AccountsSkipped: 1}
	}

	return o.syncCredential(ctx, *credential, dateRange)
}

// syncCredential valida a credencial e reconcilia a conta. O token aberto vive só nesta chamada.
func (o *Orchestrator) syncCredential(ctx context.Context, credential domain.Credential, dateRange domain.DateRange) *domain.RunResult {
	res := &domain.RunResult{}
	logger := log.ForContext(ctx).WithFields(log.Fields{
		"owner_id":   credential.OwnerID,
		"account_id": credential.RemoteAccountID,
	})

	if credential.RemoteAccountID == "" {
		logger.Warn("sync: dono sem conta de anúncios vinculada, ignorando")
		res.AccountsSkipped++
		return res
	}

	if credential.IsExpired(o.now()) {
		logger.Warnf("sync: credencial expirada em %s, conta precisa ser reconectada", credential.ExpiresAt.Format(time.RFC3339))
		o.needsReconnection(res, credential)
		res.AccountsSkipped++
		return res
	}

	token, err := o.decrypter.Open(credential.EncryptedToken)
	if err != nil {
		o.accountError(res, credential, fmt.Errorf("erro ao abrir credencial: %w", err))
		return res
	}

	account := domain.SyncAccount{
		OwnerID:         credential.OwnerID,
		RemoteAccountID: credential.RemoteAccountID,
		ClientID:        credential.ClientID,
		Token:           token,
	}

	res.States = append(res.States, domain.RunStateReconcilingAccount)

	accountResult, err := o.reconciler.ReconcileAccount(ctx, o.source.ForAccount(account), account, dateRange)
	if err != nil {
		logger.WithError(err).Error("sync: falha ao reconciliar conta")
		o.accountError(res, credential, err)

		if errors.Is(err, domain.ErrRemoteAuth) {
			o.needsReconnection(res, credential)
		}
		return res
	}

	res.Merge(accountResult)
	res.AccountsProcessed++
	return res
}

func (o *Orchestrator) accountError(res *domain.RunResult, credential domain.Credential, err error) {
	res.AddError(domain.NodeLevelAccount, credential.RemoteAccountID, credential.RemoteAccountID, err)
	telemetry.SyncNodeErrorsTotal.WithLabelValues(string(domain.NodeLevelAccount)).Inc()
}

func (o *Orchestrator) needsReconnection(res *domain.RunResult, credential domain.Credential) {
	res.NeedsReconnection = append(res.NeedsReconnection, credential.OwnerID)

	o.notifier.Raise(domain.Notification{
		UserID:    credential.OwnerID,
		Category:  domain.NotificationNeedsReconnection,
		Message:   fmt.Sprintf("A conta de anúncios %s precisa ser reconectada para voltar a sincronizar", credential.RemoteAccountID),
		CreatedAt: o.now(),
	})
}

func (o *Orchestrator) finish(ctx context.Context, result *domain.RunResult, accountResults []*domain.RunResult, scope string) {
	for _, accountResult := range accountResults {
		if accountResult == nil {
			continue
		}
		result.States = append(result.States, accountResult.States...)
	}

	result.States = append(result.States, domain.RunStateAggregating)
	for _, accountResult := range accountResults {
		result.Merge(accountResult)
	}

	result.Status = domain.RunStateCompleted
	if result.Failed() {
		result.Status = domain.RunStateCompletedWithErrors
	}
	result.States = append(result.States, result.Status)
	result.FinishedAt = o.now()

	telemetry.SyncRunsTotal.WithLabelValues(scope, string(result.Status)).Inc()
	telemetry.SyncRunDuration.WithLabelValues(scope).Observe(result.FinishedAt.Sub(result.StartedAt).Seconds())

	log.ForContext(ctx).WithFields(log.Fields{
		"run_id":             result.RunID,
		"status":             result.Status,
		"accounts_processed": result.AccountsProcessed,
		"accounts_skipped":   result.AccountsSkipped,
		"metrics":            result.MetricsStored,
		"errors":             len(result.Errors),
	}).Info("sync: execução finalizada")

	for _, nodeErr := range result.Errors {
		log.ForContext(ctx).WithField("run_id", result.RunID).Warnf("sync: falha parcial em %s", nodeErr)
	}
}

func withCorrelationID(ctx context.Context) context.Context {
	if log.GetCorrelationID(ctx) != "" {
		return ctx
	}

	ctx, _ = log.WithCorrelationID(ctx)
	return ctx
}
