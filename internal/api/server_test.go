package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/sales-dashboard-api/internal/config"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/authenticating"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/dashboarding/mocks"
	"github.com/vfg2006/sales-dashboard-api/pkg/metrics"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
)

func TestServer_Handler(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("vinho123"), bcrypt.MinCost)
	require.NoError(t, err)

	authService, err := authenticating.NewService([]*domain.User{
		{Username: "rico", Name: "Ricardo", PasswordHash: string(hash)},
	}, "segredo", time.Hour)
	require.NoError(t, err)

	login, err := authService.Login("rico", "vinho123")
	require.NoError(t, err)

	ctrl := gomock.NewController(t)
	dashboarder := mocks.NewMockDashboarder(ctrl)
	dashboarder.EXPECT().GetFilterOptions(gomock.Any()).Return(&domain.FilterOptions{States: []string{"RS"}}, nil)

	reg := prometheus.NewRegistry()
	metrics.NewDashboardMetrics(reg).SetCanonicalRows(42)

	cfg := &config.Config{
		Server: config.Server{Port: "0", AllowedOrigins: []string{"http://localhost:3000"}},
	}

	srv, err := New(cfg, dashboarder, authService, nil, reg)
	require.NoError(t, err)

	tests := []struct {
		name       string
		method     string
		path       string
		token      string
		wantStatus int
		wantBody   string
	}{
		{name: "healthcheck público", method: http.MethodGet, path: "/healthcheck", wantStatus: http.StatusOK},
		{name: "métricas públicas", method: http.MethodGet, path: "/metrics", wantStatus: http.StatusOK, wantBody: "sales_dashboard_canonical_rows 42"},
		{name: "filtros sem token", method: http.MethodGet, path: "/v1/filters", wantStatus: http.StatusUnauthorized},
		{name: "filtros com token", method: http.MethodGet, path: "/v1/filters", token: login.Token, wantStatus: http.StatusOK, wantBody: `"states":["RS"]`},
		{name: "preflight CORS", method: http.MethodOptions, path: "/v1/dashboard", wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			req.Header.Set("Origin", "http://localhost:3000")
			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}
			rec := httptest.NewRecorder()

			srv.Handler().ServeHTTP(rec, req)

			require.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
			if tt.wantBody != "" {
				assert.Contains(t, rec.Body.String(), tt.wantBody)
			}
		})
	}
}
