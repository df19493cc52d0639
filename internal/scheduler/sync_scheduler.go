package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ads-sync-engine/internal/config"
	"github.com/vfg2006/ads-sync-engine/internal/domain"
)

// SyncRunner é implementado pelo syncing.Orchestrator
type SyncRunner interface {
	RunSyncAllAccounts(ctx context.Context, dateRange *domain.DateRange) (*domain.RunResult, error)
}

// SyncScheduler agenda a sincronização de todas as contas e garante uma execução por vez
type SyncScheduler struct {
	scheduler    *gocron.Scheduler
	runner       SyncRunner
	cronSchedule string
	lookbackDays int
	enabled      bool

	baseCtx             context.Context
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastResult          *domain.RunResult
	lastError           string
}

func NewSyncScheduler(runner SyncRunner, cfg *config.Config) *SyncScheduler {
	logrus.WithFields(logrus.Fields{
		"cron_schedule":           cfg.Sync.CronSchedule,
		"lookback_days":           cfg.Sync.LookbackDays,
		"max_concurrent_accounts": cfg.Sync.MaxConcurrentAccounts,
		"sync_enabled":            cfg.Sync.Enabled,
	}).Info("Configuração do agendador de sincronização carregada")

	return &SyncScheduler{
		scheduler:    gocron.NewScheduler(time.Local),
		runner:       runner,
		cronSchedule: cfg.Sync.CronSchedule,
		lookbackDays: cfg.Sync.LookbackDays,
		enabled:      cfg.Sync.Enabled,
		baseCtx:      context.Background(),
	}
}

// Start agenda o job no SYNC_CRON. O agendador para quando o contexto é cancelado.
func (s *SyncScheduler) Start(ctx context.Context) error {
	s.syncMutex.Lock()
	s.baseCtx = ctx
	s.syncMutex.Unlock()

	if !s.enabled {
		logrus.Info("Sincronização agendada desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.cronSchedule).Info("Iniciando agendador de sincronização")

	_, err := s.scheduler.Cron(s.cronSchedule).Do(func() {
		s.runSync(ctx, nil)
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar sincronização: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de sincronização")
		s.scheduler.Stop()
	}()

	return nil
}

// TriggerManualSync dispara uma execução em segundo plano. Retorna false se já houver uma em andamento.
func (s *SyncScheduler) TriggerManualSync(dateRange *domain.DateRange) bool {
	s.syncMutex.Lock()
	running := s.syncRunning
	ctx := s.baseCtx
	s.syncMutex.Unlock()

	if running {
		logrus.Info("Sincronização já em andamento, ignorando solicitação manual")
		return false
	}

	logrus.Info("Iniciando sincronização manual")
	go s.runSync(ctx, dateRange)
	return true
}

func (s *SyncScheduler) runSync(ctx context.Context, dateRange *domain.DateRange) {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Sincronização já em andamento, ignorando")
		return
	}
	s.syncRunning = true
	s.lastSyncStartedAt = time.Now()
	s.syncMutex.Unlock()

	result, err := s.runner.RunSyncAllAccounts(ctx, dateRange)

	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	s.syncRunning = false
	s.lastSyncCompletedAt = time.Now()

	if err != nil {
		s.lastError = err.Error()
		logrus.WithError(err).Error("Erro ao executar sincronização de todas as contas")
		return
	}

	s.lastError = ""
	s.lastResult = result

	logrus.WithFields(logrus.Fields{
		"run_id":   result.RunID,
		"status":   result.Status,
		"duration": s.lastSyncCompletedAt.Sub(s.lastSyncStartedAt).String(),
	}).Info("Sincronização agendada concluída")
}

// GetStatus retorna o estado atual do agendador e o resumo da última execução
func (s *SyncScheduler) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	status := map[string]any{
		"sync_enabled":           s.enabled,
		"sync_cron":              s.cronSchedule,
		"sync_lookback_days":     s.lookbackDays,
		"sync_running":           s.syncRunning,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
	}

	if s.lastError != "" {
		status["last_error"] = s.lastError
	}

	if s.lastResult != nil {
		status["last_result"] = map[string]any{
			"run_id":             s.lastResult.RunID,
			"status":             s.lastResult.Status,
			"date_range":         s.lastResult.DateRange.String(),
			"accounts_processed": s.lastResult.AccountsProcessed,
			"accounts_skipped":   s.lastResult.AccountsSkipped,
			"metrics_stored":     s.lastResult.MetricsStored,
			"errors":             len(s.lastResult.Errors),
			"needs_reconnection": s.lastResult.NeedsReconnection,
		}
	}

	return status
}
