package authenticating

import (
	"errors"
	"fmt"
)

// Tipos de erros de autenticação personalizados
var (
	// Erros de autenticação
	ErrInvalidCredentials = errors.New("funcionário ou PIN inválido")
	ErrEmployeeNotFound   = errors.New("funcionário não encontrado")
	ErrInvalidToken       = errors.New("sessão inválida")
	ErrExpiredToken       = errors.New("sessão expirada")
	ErrEmployeeExists     = errors.New("já existe um funcionário com este nome")

	// Erros de validação
	ErrMissingRequiredData = errors.New("dados obrigatórios ausentes")

	// Erros de banco de dados
	ErrDatabaseOperation = errors.New("erro ao realizar operação no banco de dados")
)

// AuthError é um erro com contexto adicional para autenticação
type AuthError struct {
	Err        error  // Erro base
	Code       string // Código de erro para API
	EmployeeID int64  // Funcionário envolvido (quando aplicável)
	Details    any    // Detalhes adicionais
}

func (e *AuthError) Error() string {
	if msg, ok := e.Details.(string); ok && msg != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), msg)
	}
	return e.Err.Error()
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

func (e *AuthError) ErrorCode() string {
	return e.Code
}

// ErrorDetails só expõe detalhes estruturados; mensagens internas ficam no log
func (e *AuthError) ErrorDetails() any {
	if _, ok := e.Details.(string); ok {
		return nil
	}
	return e.Details
}

// IsCredentialsError verifica se o erro está relacionado a credenciais inválidas
func IsCredentialsError(err error) bool {
	return errors.Is(err, ErrInvalidCredentials) || errors.Is(err, ErrEmployeeNotFound)
}

// IsSessionError verifica se o erro está relacionado ao token de sessão
func IsSessionError(err error) bool {
	return errors.Is(err, ErrInvalidToken) || errors.Is(err, ErrExpiredToken)
}

func NewAuthError(baseErr error, code string, details any) *AuthError {
	return &AuthError{
		Err:     baseErr,
		Code:    code,
		Details: details,
	}
}

// NewEmployeeAuthError cria um novo erro de autenticação com contexto do funcionário
func NewEmployeeAuthError(baseErr error, code string, employeeID int64, details any) *AuthError {
	return &AuthError{
		Err:        baseErr,
		Code:       code,
		EmployeeID: employeeID,
		Details:    details,
	}
}
