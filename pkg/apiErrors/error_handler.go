package apiErrors

import (
	"errors"
	"net/http"

	jsoniter "github.com/json-iterator/go"
)

const (
	// Erros de autenticação
	ErrInvalidCredentials    = "AUTH_001" // Funcionário ou PIN inválido
	ErrInvalidToken          = "AUTH_006" // Sessão ausente ou inválida
	ErrExpiredToken          = "AUTH_007" // Sessão expirada
	ErrInsufficientPrivilege = "AUTH_008" // Operação exclusiva de gerente

	// Erros de validação
	ErrInvalidRequest      = "VAL_001" // Corpo ou parâmetro malformado
	ErrMissingRequiredData = "VAL_002" // Campos obrigatórios ausentes ou inválidos
	ErrInvalidFormat       = "VAL_003" // Formato de dados inválido
	ErrUnsupportedUpload   = "VAL_004" // Tipo de arquivo não suportado
	ErrUploadTooLarge      = "VAL_005" // Arquivo acima do limite

	// Recursos
	ErrNotFound = "RES_001" // Registro não encontrado

	// Conflitos
	ErrConflict          = "CON_001" // Conflito genérico de estado
	ErrInsufficientStock = "CON_002" // Estoque insuficiente para a baixa
	ErrAlreadyProcessed  = "CON_003" // Devolução já aprovada, pedido já devolvido ou quantidade já devolvida
	ErrDuplicate         = "CON_004" // Registro duplicado
	ErrInUse             = "CON_005" // Registro referenciado por outros

	ErrRateLimited = "RATE_001" // Limite de requisições atingido

	// Erros do servidor
	ErrInternalServer    = "SRV_001" // Erro interno do servidor
	ErrDatabaseOperation = "SRV_002" // Erro de operação de banco de dados
)

var httpStatusMap = map[string]int{
	ErrInvalidCredentials:    http.StatusUnauthorized,
	ErrInvalidToken:          http.StatusUnauthorized,
	ErrExpiredToken:          http.StatusUnauthorized,
	ErrInsufficientPrivilege: http.StatusForbidden,
	ErrInvalidRequest:        http.StatusBadRequest,
	ErrMissingRequiredData:   http.StatusBadRequest,
	ErrInvalidFormat:         http.StatusBadRequest,
	ErrUnsupportedUpload:     http.StatusBadRequest,
	ErrUploadTooLarge:        http.StatusRequestEntityTooLarge,
	ErrNotFound:              http.StatusNotFound,
	ErrConflict:              http.StatusConflict,
	ErrInsufficientStock:     http.StatusConflict,
	ErrAlreadyProcessed:      http.StatusConflict,
	ErrDuplicate:             http.StatusConflict,
	ErrInUse:                 http.StatusConflict,
	ErrRateLimited:           http.StatusTooManyRequests,
	ErrInternalServer:        http.StatusInternalServerError,
	ErrDatabaseOperation:     http.StatusInternalServerError,
}

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// APIError representa um erro de API padronizado
type APIError struct {
	Code    string `json:"code"`              // Código de erro para o cliente
	Message string `json:"message,omitempty"` // Mensagem descritiva (opcional)
	Details any    `json:"details,omitempty"` // Detalhes adicionais (opcional)
}

// Coded é implementado pelos erros dos casos de uso que já carregam o código da API
type Coded interface {
	error
	ErrorCode() string
	ErrorDetails() any
}

// StatusFor retorna o status HTTP do código, 500 para códigos desconhecidos
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
	_ = json.NewEncoder(w).Encode(apiErr)
}

// WriteFromError escreve erros codificados com seu próprio código e mensagem;
// qualquer outro erro vira SRV_001 com a mensagem genérica informada. Erros
// 5xx nunca expõem a causa interna.
func WriteFromError(w http.ResponseWriter, err error, fallbackMessage string) {
	var coded Coded
	if errors.As(err, &coded) {
		if StatusFor(coded.ErrorCode()) >= http.StatusInternalServerError {
			WriteError(w, coded.ErrorCode(), fallbackMessage, nil)
			return
		}
		WriteError(w, coded.ErrorCode(), coded.Error(), coded.ErrorDetails())
		return
	}

	WriteError(w, ErrInternalServer, fallbackMessage, nil)
}
