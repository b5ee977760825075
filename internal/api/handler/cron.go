package handler

import (
	"net/http"

	"github.com/vfg2006/sales-dashboard-api/pkg/apiErrors"
	"github.com/vfg2006/sales-dashboard-api/pkg/log"
	"github.com/vfg2006/sales-dashboard-api/pkg/middleware"
)

// RefreshScheduler agendador da atualização das vendas
type RefreshScheduler interface {
	TriggerManualSync()
	GetStatus() map[string]any
}

// RunRefreshSync dispara a atualização agendada sem aguardar o resultado
func RunRefreshSync(scheduler RefreshScheduler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if scheduler == nil {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Agendador de atualização não disponível", nil)
			return
		}

		if claims, ok := middleware.UserFromContext(r.Context()); ok {
			log.ForContext(r.Context()).WithField("username", claims.Username).Info("Execução manual do agendador solicitada")
		}

		scheduler.TriggerManualSync()

		writeJSON(w, http.StatusAccepted, map[string]string{
			"message": "Atualização das vendas iniciada",
		})
	}
}

// GetCronStatus retorna o status do agendador
func GetCronStatus(scheduler RefreshScheduler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if scheduler == nil {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Agendador de atualização não disponível", nil)
			return
		}

		writeJSON(w, http.StatusOK, scheduler.GetStatus())
	}
}
