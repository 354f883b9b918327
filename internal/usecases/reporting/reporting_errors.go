package reporting

import (
	"errors"
)

var (
	ErrInvalidContext = errors.New("contexto de relatório inválido")
	ErrInvalidPeriod  = errors.New("período de relatório inválido")
)

type ReportingError struct {
	Err     error
	Code    string
	Details any
}

func (e *ReportingError) Error() string {
	return e.Err.Error()
}

func (e *ReportingError) Unwrap() error {
	return e.Err
}

func (e *ReportingError) ErrorCode() string {
	return e.Code
}

func (e *ReportingError) ErrorDetails() any {
	return e.Details
}

func NewReportingError(baseErr error, code string, details any) *ReportingError {
	return &ReportingError{
		Err:     baseErr,
		Code:    code,
		Details: details,
	}
}
