package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/ads-sync-engine/internal/domain"
	"github.com/vfg2006/ads-sync-engine/internal/usecases/syncing"
	"github.com/vfg2006/ads-sync-engine/pkg/apiErrors"
	"github.com/vfg2006/ads-sync-engine/pkg/log"
)

// SyncTrigger dispara a sincronização completa em segundo plano
type SyncTrigger interface {
	TriggerManualSync(dateRange *domain.DateRange) bool
	GetStatus() map[string]any
}

// OwnerSyncer sincroniza a conta de um único dono de forma síncrona
type OwnerSyncer interface {
	RunSync(ctx context.Context, ownerID string, dateRange *domain.DateRange) (*domain.RunResult, error)
}

func parseDateRange(w http.ResponseWriter, r *http.Request) (*domain.DateRange, bool) {
	query := r.URL.Query()

	dateRange, err := domain.ParseDateRange(query.Get("since"), query.Get("until"))
	if err != nil {
		apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Período inválido, use since e until no formato YYYY-MM-DD", err.Error())
		return nil, false
	}

	return dateRange, true
}

// RunAllAccountsSync agenda a sincronização de todas as contas e responde imediatamente
func RunAllAccountsSync(trigger SyncTrigger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.ForContext(r.Context()).Info("INIT - RunAllAccountsSync")

		dateRange, ok := parseDateRange(w, r)
		if !ok {
			return
		}

		if !trigger.TriggerManualSync(dateRange) {
			apiErrors.WriteError(w, apiErrors.ErrSyncAlreadyRunning, "Já existe uma sincronização em andamento", nil)
			return
		}

		writeJSON(w, http.StatusAccepted, map[string]any{
			"message": "Sincronização iniciada com sucesso",
		})
	}
}

// RunOwnerSync sincroniza um dono e devolve o resultado da execução
func RunOwnerSync(service OwnerSyncer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())
		logger.Info("INIT - RunOwnerSync")

		ownerID := httprouter.ParamsFromContext(r.Context()).ByName("owner_id")
		if ownerID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "owner_id é obrigatório", nil)
			return
		}

		dateRange, ok := parseDateRange(w, r)
		if !ok {
			return
		}

		result, err := service.RunSync(r.Context(), ownerID, dateRange)
		if err != nil {
			switch {
			case errors.Is(err, syncing.ErrCredentialNotFound):
				apiErrors.WriteError(w, apiErrors.ErrCredentialNotFound, "Dono não possui conta de anúncios conectada", nil)
			case errors.Is(err, domain.ErrInvalidDateRange):
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Período inválido", err.Error())
			default:
				logger.WithError(err).Error("erro ao sincronizar dono")
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao sincronizar conta", nil)
			}
			return
		}

		writeJSON(w, http.StatusOK, result)
	}
}

// GetSyncStatus retorna o estado do agendador e o resultado da última execução
func GetSyncStatus(trigger SyncTrigger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, trigger.GetStatus())
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.L.WithError(err).Error("erro ao codificar resposta")
	}
}
