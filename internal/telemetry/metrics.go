package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SyncRunsTotal conta execuções de sincronização pelo status final
	SyncRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ads_sync_runs_total",
			Help: "Total de execuções de sincronização por status final",
		},
		[]string{"scope", "status"},
	)

	SyncRunDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ads_sync_run_duration_seconds",
			Help:    "Duração das execuções de sincronização",
			Buckets: []float64{1, 5, 15, 30, 60, 120, 300, 600, 1800},
		},
		[]string{"scope"},
	)

	// SyncNodeErrorsTotal conta falhas isoladas por nível da hierarquia
	SyncNodeErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ads_sync_node_errors_total",
			Help: "Total de falhas por nível da hierarquia (account, campaign, ad_set, ad, metric)",
		},
		[]string{"level"},
	)

	SyncMetricsStoredTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ads_sync_metrics_stored_total",
			Help: "Total de métricas diárias gravadas",
		},
	)

	MetaRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "meta_api_requests_total",
			Help: "Total de tentativas de requisição à Graph API por operação e resultado",
		},
		[]string{"operation", "outcome"},
	)

	MetaRetriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "meta_api_retries_total",
			Help: "Total de novas tentativas por motivo",
		},
		[]string{"reason"},
	)

	NotificationsDroppedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ads_sync_notifications_dropped_total",
			Help: "Notificações descartadas por fila cheia ou falha ao gravar",
		},
	)
)
