package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/authenticating"
	"github.com/vfg2006/sales-dashboard-api/pkg/apiErrors"
	"github.com/vfg2006/sales-dashboard-api/pkg/log"
	"golang.org/x/crypto/bcrypt"
)

func newAuthService(t *testing.T) *authenticating.Service {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("vinho123"), bcrypt.MinCost)
	require.NoError(t, err)

	service, err := authenticating.NewService([]*domain.User{
		{Username: "rico", Name: "Ricardo", PasswordHash: string(hash)},
	}, "segredo", time.Hour)
	require.NoError(t, err)
	return service
}

func TestAuthMiddleware(t *testing.T) {
	authService := newAuthService(t)
	login, err := authService.Login("rico", "vinho123")
	require.NoError(t, err)

	var gotUser *domain.Claims
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser, _ = UserFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})
	handler := AuthMiddleware(authService)(next)

	tests := []struct {
		name       string
		path       string
		header     string
		wantStatus int
		wantUser   bool
	}{
		{name: "rota pública sem token", path: "/healthcheck", wantStatus: http.StatusNoContent},
		{name: "login sem token", path: "/v1/login", wantStatus: http.StatusNoContent},
		{name: "sem cabeçalho", path: "/v1/dashboard", wantStatus: http.StatusUnauthorized},
		{name: "sem prefixo Bearer", path: "/v1/dashboard", header: login.Token, wantStatus: http.StatusUnauthorized},
		{name: "token inválido", path: "/v1/dashboard", header: "Bearer abc", wantStatus: http.StatusUnauthorized},
		{name: "token válido", path: "/v1/dashboard", header: "Bearer " + login.Token, wantStatus: http.StatusNoContent, wantUser: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotUser = nil
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantUser {
				require.NotNil(t, gotUser)
				assert.Equal(t, "rico", gotUser.Username)
			} else {
				assert.Nil(t, gotUser)
			}
			if rec.Code == http.StatusUnauthorized {
				assert.Contains(t, rec.Body.String(), apiErrors.ErrInvalidToken)
			}
		})
	}
}

func TestCors(t *testing.T) {
	handler := Cors([]string{"http://localhost:3000"})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	t.Run("origem permitida", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/dashboard", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, http.StatusTeapot, rec.Code)
	})

	t.Run("origem não permitida", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/dashboard", nil)
		req.Header.Set("Origin", "http://evil.example")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("preflight", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/v1/dashboard", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestLoggingMiddleware(t *testing.T) {
	var correlationID string
	handler := LoggingMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		correlationID = log.GetCorrelationID(r.Context())
		w.WriteHeader(http.StatusAccepted)
	}))

	req := httptest.NewRequest(http.MethodGet, "/v1/dashboard", nil)
	req.Header.Set(CorrelationIDHeader, "req-42")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, "req-42", rec.Header().Get(CorrelationIDHeader))
	assert.Equal(t, "req-42", correlationID)
}

func TestLogPanicMiddleware(t *testing.T) {
	handler := LogPanicMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("falhou")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/sales", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), apiErrors.ErrInternalServer)
}
