package auditing

import (
	"errors"
)

var ErrInvalidContext = errors.New("contexto de atividade inválido")

type AuditingError struct {
	Err     error
	Code    string
	Details any
}

func (e *AuditingError) Error() string {
	return e.Err.Error()
}

func (e *AuditingError) Unwrap() error {
	return e.Err
}

func (e *AuditingError) ErrorCode() string {
	return e.Code
}

func (e *AuditingError) ErrorDetails() any {
	return e.Details
}

func NewAuditingError(baseErr error, code string, details any) *AuditingError {
	return &AuditingError{
		Err:     baseErr,
		Code:    code,
		Details: details,
	}
}
