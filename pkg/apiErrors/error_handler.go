package apiErrors

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/vfg2006/business-reports-api/internal/analytics"
	"github.com/vfg2006/business-reports-api/internal/export"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	// Erros de validação (2000-2999)
	ErrInvalidRequest      = "VAL_001" // Requisição inválida
	ErrMissingRequiredData = "VAL_002" // Dados obrigatórios ausentes
	ErrInvalidFormat       = "VAL_003" // Formato de dados inválido
	ErrRouteNotFound       = "VAL_004" // Rota inexistente
	ErrMethodNotAllowed    = "VAL_005" // Método não suportado na rota

	// Erros de relatório (3000-3999)
	ErrInvalidSection         = "RPT_001" // Seção de relatório inexistente
	ErrMissingOrganization    = "RPT_002" // Organização não informada
	ErrUnsupportedGranularity = "RPT_003" // Granularidade não suportada
	ErrInvalidPeriodCount     = "RPT_004" // Quantidade de períodos inválida
	ErrShapeMismatch          = "RPT_005" // Séries com tamanhos diferentes

	// Erros de exportação (4000-4999)
	ErrUnsupportedExportFormat = "EXP_001" // Formato de exportação não suportado
	ErrExportFailed            = "EXP_002" // Falha ao gerar o arquivo

	// Erros do servidor (5000-5999)
	ErrInternalServer    = "SRV_001" // Erro interno do servidor
	ErrDatabaseOperation = "SRV_002" // Erro de operação de banco de dados
	ErrExternalService   = "SRV_003" // Erro em serviço externo
	ErrCommunication     = "SRV_004" // Erro de comunicação
)

// Mapeamento de códigos de erro para status HTTP
var httpStatusMap = map[string]int{
	ErrInvalidRequest:          http.StatusBadRequest,
	ErrMissingRequiredData:     http.StatusBadRequest,
	ErrInvalidFormat:           http.StatusBadRequest,
	ErrRouteNotFound:           http.StatusNotFound,
	ErrMethodNotAllowed:        http.StatusMethodNotAllowed,
	ErrInvalidSection:          http.StatusNotFound,
	ErrMissingOrganization:     http.StatusBadRequest,
	ErrUnsupportedGranularity:  http.StatusBadRequest,
	ErrInvalidPeriodCount:      http.StatusBadRequest,
	ErrShapeMismatch:           http.StatusInternalServerError,
	ErrUnsupportedExportFormat: http.StatusBadRequest,
	ErrExportFailed:            http.StatusInternalServerError,
	ErrInternalServer:          http.StatusInternalServerError,
	ErrDatabaseOperation:       http.StatusInternalServerError,
	ErrExternalService:         http.StatusBadGateway,
	ErrCommunication:           http.StatusServiceUnavailable,
}

// APIError representa um erro de API padronizado
type APIError struct {
	Code    string `json:"code"`              // Código de erro para o cliente
	Message string `json:"message,omitempty"` // Mensagem descritiva (opcional)
	Details any    `json:"details,omitempty"` // Detalhes adicionais (opcional)
}

// StatusFor retorna o status HTTP de um código de erro
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

// CodeFor classifica os erros do motor de relatórios.
// Erros desconhecidos são tratados como falha de banco.
func CodeFor(err error) string {
	switch {
	case errors.Is(err, analytics.ErrUnsupportedGranularity):
		return ErrUnsupportedGranularity
	case errors.Is(err, analytics.ErrInvalidPeriodCount):
		return ErrInvalidPeriodCount
	case errors.Is(err, analytics.ErrShapeMismatch), errors.Is(err, analytics.ErrDuplicateSeries):
		return ErrShapeMismatch
	case errors.Is(err, export.ErrUnsupportedFormat):
		return ErrUnsupportedExportFormat
	default:
		return ErrDatabaseOperation
	}
}
