package handler

import (
	"errors"
	"net/http"

	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/authenticating"
	"github.com/vfg2006/sales-dashboard-api/pkg/apiErrors"
	"github.com/vfg2006/sales-dashboard-api/pkg/log"
	"github.com/vfg2006/sales-dashboard-api/pkg/middleware"
)

func Login(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req domain.LoginRequest

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		if details := validateStruct(req); details != nil {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Usuário e senha são obrigatórios", details)
			return
		}

		resp, err := service.Login(req.Username, req.Password)
		if err != nil {
			handleAuthError(w, r, err)
			return
		}

		log.ForContext(r.Context()).WithField("username", resp.User.Username).Info("Login realizado")

		writeJSON(w, http.StatusOK, resp)
	}
}

// GetMe retorna as informações do usuário logado
func GetMe(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.UserFromContext(r.Context())
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		user, err := service.GetUser(claims.Username)
		if err != nil {
			handleAuthError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, user)
	}
}

func handleAuthError(w http.ResponseWriter, r *http.Request, err error) {
	var authErr *authenticating.AuthError
	if errors.As(err, &authErr) && authErr.Code != "" {
		message := authErr.Details
		if message == "" {
			message = authErr.Err.Error()
		}
		apiErrors.WriteError(w, authErr.Code, message, nil)
		return
	}

	log.ForContext(r.Context()).WithError(err).Error("Erro inesperado na autenticação")
	apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro interno ao autenticar", nil)
}
