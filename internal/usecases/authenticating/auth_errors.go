package authenticating

import (
	"errors"
	"fmt"
)

// Tipos de erros de autenticação personalizados
var (
	ErrInvalidCredentials  = errors.New("credenciais inválidas")
	ErrUserNotFound        = errors.New("usuário não encontrado")
	ErrInvalidToken        = errors.New("token inválido")
	ErrExpiredToken        = errors.New("token expirado")
	ErrMissingRequiredData = errors.New("dados obrigatórios ausentes")

	// Erros de configuração
	ErrInvalidUserEntry = errors.New("usuário mal configurado")
	ErrMissingSecretKey = errors.New("chave secreta não configurada")
)

// AuthError é um erro com contexto adicional para autenticação
type AuthError struct {
	Err      error  // Erro base
	Code     string // Código de erro para API
	Username string // Usuário envolvido (quando aplicável)
	Details  string // Detalhes adicionais
}

// Error implementa a interface error
func (e *AuthError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

// Unwrap retorna o erro subjacente
func (e *AuthError) Unwrap() error {
	return e.Err
}

// IsCredentialsError verifica se o erro está relacionado a credenciais inválidas
func IsCredentialsError(err error) bool {
	return errors.Is(err, ErrInvalidCredentials) || errors.Is(err, ErrMissingRequiredData)
}

// IsTokenError verifica se o erro está relacionado ao token
func IsTokenError(err error) bool {
	return errors.Is(err, ErrInvalidToken) || errors.Is(err, ErrExpiredToken)
}

// NewAuthError cria um novo erro de autenticação
func NewAuthError(baseErr error, code string, details string) *AuthError {
	return &AuthError{
		Err:     baseErr,
		Code:    code,
		Details: details,
	}
}

// NewUserAuthError cria um novo erro de autenticação com contexto de usuário
func NewUserAuthError(baseErr error, code string, username string, details string) *AuthError {
	return &AuthError{
		Err:      baseErr,
		Code:     code,
		Username: username,
		Details:  details,
	}
}
