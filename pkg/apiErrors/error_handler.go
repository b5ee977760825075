package apiErrors

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Códigos de erro da API
const (
	// Erros de autenticação
	ErrInvalidCredentials = "AUTH_001" // Credenciais inválidas
	ErrUserNotFound       = "AUTH_003" // Usuário não encontrado
	ErrInvalidToken       = "AUTH_006" // Token inválido
	ErrExpiredToken       = "AUTH_007" // Token expirado

	// Erros de validação
	ErrInvalidRequest      = "VAL_001" // Requisição inválida
	ErrMissingRequiredData = "VAL_002" // Dados obrigatórios ausentes
	ErrInvalidFormat       = "VAL_003" // Formato de dados inválido

	// Erros de rota
	ErrNotFound         = "RTE_001" // Rota não encontrada
	ErrMethodNotAllowed = "RTE_002" // Método não permitido

	// Erros dos dados de venda
	ErrNoData        = "DATA_001" // Nenhuma tabela de vendas carregada
	ErrMissingColumn = "DATA_002" // Coluna obrigatória ausente na origem
	ErrDataQuality   = "DATA_003" // Data ou valor inválido na origem

	// Erros do servidor
	ErrInternalServer  = "SRV_001" // Erro interno do servidor
	ErrExternalService = "SRV_003" // Erro na origem dos dados
)

// Mapeamento de códigos de erro para status HTTP
var httpStatusMap = map[string]int{
	ErrInvalidCredentials:  http.StatusUnauthorized,
	ErrUserNotFound:        http.StatusNotFound,
	ErrInvalidToken:        http.StatusUnauthorized,
	ErrExpiredToken:        http.StatusUnauthorized,
	ErrInvalidRequest:      http.StatusBadRequest,
	ErrMissingRequiredData: http.StatusBadRequest,
	ErrInvalidFormat:       http.StatusBadRequest,
	ErrNotFound:            http.StatusNotFound,
	ErrMethodNotAllowed:    http.StatusMethodNotAllowed,
	ErrNoData:              http.StatusServiceUnavailable,
	ErrMissingColumn:       http.StatusUnprocessableEntity,
	ErrDataQuality:         http.StatusUnprocessableEntity,
	ErrInternalServer:      http.StatusInternalServerError,
	ErrExternalService:     http.StatusBadGateway,
}

// APIError representa um erro de API padronizado
type APIError struct {
	Code    string `json:"code"`              // Código de erro para o cliente
	Message string `json:"message,omitempty"` // Mensagem descritiva (opcional)
	Details any    `json:"details,omitempty"` // Detalhes adicionais (opcional)
}

// StatusCode status HTTP do código de erro
func StatusCode(code string) int {
	status, exists := httpStatusMap[code]
	if !exists {
		return http.StatusInternalServerError
	}
	return status
}

// WriteError escreve o erro padronizado para a resposta HTTP
func WriteError(w http.ResponseWriter, code string, message string, details any) {
	apiErr := APIError{
		Code:    code,
		Message: message,
		Details: details,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(StatusCode(code))
	json.NewEncoder(w).Encode(apiErr)
}

// FromError cria um erro de API a partir de um erro Go
func FromError(err error, code string) APIError {
	if err == nil {
		return APIError{
			Code:    ErrInternalServer,
			Message: "Erro desconhecido",
		}
	}

	return APIError{
		Code:    code,
		Message: err.Error(),
	}
}
