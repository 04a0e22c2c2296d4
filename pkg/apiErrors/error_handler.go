package apiErrors

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	// Erros de autenticação
	ErrInvalidCredentials    = "AUTH_001" // Credenciais inválidas
	ErrUserDisabled          = "AUTH_002" // Usuário desativado
	ErrUserNotFound          = "AUTH_003" // Usuário não encontrado
	ErrInvalidToken          = "AUTH_006" // Token inválido
	ErrExpiredToken          = "AUTH_007" // Token expirado
	ErrInsufficientPrivilege = "AUTH_008" // Privilégios insuficientes
	ErrUserAlreadyExists     = "AUTH_009" // Usuário já existe

	// Erros de validação
	ErrInvalidRequest           = "VAL_001" // Requisição inválida
	ErrMissingRequiredData      = "VAL_002" // Dados obrigatórios ausentes
	ErrInvalidFormat            = "VAL_003" // Formato de dados inválido
	ErrEndpointNotConfigured    = "VAL_004" // Endpoint de webhook não configurado
	ErrNoDataToExport           = "VAL_005" // Sem dados para exportar
	ErrInvalidReportType        = "VAL_006" // Tipo de relatório desconhecido
	ErrUnsupportedExportFormat  = "VAL_007" // Formato de exportação não suportado
	ErrInvalidDashboardCardList = "VAL_008" // Ordem de cards inválida

	// Erros de dados
	ErrRecordNotFound = "DATA_001" // Registro não encontrado

	// Erros do servidor
	ErrInternalServer    = "SRV_001" // Erro interno do servidor
	ErrDatabaseOperation = "SRV_002" // Erro de operação de banco de dados
	ErrExternalService   = "SRV_003" // Erro em serviço externo
	ErrCommunication     = "SRV_004" // Erro de comunicação
	ErrStatsUnavailable  = "SRV_005" // Estatísticas ainda não carregadas
)

var httpStatusMap = map[string]int{
	ErrInvalidCredentials:       http.StatusUnauthorized,
	ErrUserDisabled:             http.StatusForbidden,
	ErrUserNotFound:             http.StatusNotFound,
	ErrInvalidToken:             http.StatusUnauthorized,
	ErrExpiredToken:             http.StatusUnauthorized,
	ErrInsufficientPrivilege:    http.StatusForbidden,
	ErrUserAlreadyExists:        http.StatusBadRequest,
	ErrInvalidRequest:           http.StatusBadRequest,
	ErrMissingRequiredData:      http.StatusBadRequest,
	ErrInvalidFormat:            http.StatusBadRequest,
	ErrEndpointNotConfigured:    http.StatusUnprocessableEntity,
	ErrNoDataToExport:           http.StatusUnprocessableEntity,
	ErrInvalidReportType:        http.StatusBadRequest,
	ErrUnsupportedExportFormat:  http.StatusBadRequest,
	ErrInvalidDashboardCardList: http.StatusBadRequest,
	ErrRecordNotFound:           http.StatusNotFound,
	ErrInternalServer:           http.StatusInternalServerError,
	ErrDatabaseOperation:        http.StatusInternalServerError,
	ErrExternalService:          http.StatusBadGateway,
	ErrCommunication:            http.StatusServiceUnavailable,
	ErrStatsUnavailable:         http.StatusServiceUnavailable,
}

// APIError representa um erro de API padronizado
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message,omitempty"`
	Details any    `json:"details,omitempty"`
}

// StatusFor retorna o status HTTP associado ao código
func StatusFor(code string) int {
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
	w.WriteHeader(StatusFor(code))
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
