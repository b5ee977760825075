package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/dashboarding"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/normalizing"
	"github.com/vfg2006/sales-dashboard-api/pkg/apiErrors"
	"github.com/vfg2006/sales-dashboard-api/pkg/log"
	"github.com/vfg2006/sales-dashboard-api/pkg/middleware"
)

// RefreshResponse resultado de uma atualização manual
type RefreshResponse struct {
	*domain.Snapshot
	SalesCount int `json:"sales_count"`
}

func GetDashboard(service dashboarding.Dashboarder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filters, details := parseFilters(r)
		if details != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Filtros inválidos", details)
			return
		}

		log.ForContext(r.Context()).WithFields(log.Fields{
			"states":         filters.States,
			"customer_types": filters.CustomerTypes,
			"products":       filters.Products,
		}).Debug("dashboard: calculando agregações")

		resp, err := service.GetDashboard(r.Context(), filters)
		if err != nil {
			handleDashboardError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, resp)
	}
}

func GetSales(service dashboarding.Dashboarder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filters, details := parseFilters(r)
		if details != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Filtros inválidos", details)
			return
		}

		resp, err := service.GetSales(r.Context(), filters)
		if err != nil {
			handleDashboardError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, resp)
	}
}

func GetFilterOptions(service dashboarding.Dashboarder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp, err := service.GetFilterOptions(r.Context())
		if err != nil {
			handleDashboardError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, resp)
	}
}

func GetReport(service dashboarding.Dashboarder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp, err := service.GetReport(r.Context())
		if err != nil {
			handleDashboardError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, resp)
	}
}

func RefreshDashboard(service dashboarding.Dashboarder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if claims, ok := middleware.UserFromContext(r.Context()); ok {
			log.ForContext(r.Context()).WithField("username", claims.Username).Info("Atualização manual das vendas solicitada")
		}

		snapshot, err := service.Refresh(r.Context())
		if err != nil {
			handleDashboardError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, RefreshResponse{
			Snapshot:   snapshot,
			SalesCount: len(snapshot.Sales),
		})
	}
}

// handleDashboardError converte os erros do serviço em respostas da API
func handleDashboardError(w http.ResponseWriter, r *http.Request, err error) {
	logger := log.ForContext(r.Context()).WithError(err)

	var missingColumn *normalizing.MissingColumnError
	var refreshErr *dashboarding.RefreshError

	switch {
	case errors.Is(err, dashboarding.ErrInvalidFilters):
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, err.Error(), nil)
	case errors.Is(err, dashboarding.ErrNoData):
		apiErrors.WriteError(w, apiErrors.ErrNoData, "Nenhuma tabela de vendas carregada", nil)
	case errors.As(err, &missingColumn):
		logger.Error("Origem sem coluna obrigatória")
		apiErrors.WriteError(w, apiErrors.ErrMissingColumn, "Coluna obrigatória ausente na origem dos dados", map[string]string{
			"column": missingColumn.Column,
		})
	case normalizing.IsDataQualityError(err):
		logger.Error("Registro inválido na origem")
		apiErrors.WriteError(w, apiErrors.ErrDataQuality, err.Error(), nil)
	case errors.As(err, &refreshErr) && refreshErr.Stage == dashboarding.StageFetch,
		errors.Is(err, context.DeadlineExceeded):
		logger.Error("Erro ao buscar vendas na origem")
		apiErrors.WriteError(w, apiErrors.ErrExternalService, "Não foi possível buscar as vendas na origem", nil)
	default:
		logger.Error("Erro inesperado no dashboard")
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro interno no servidor", nil)
	}
}
