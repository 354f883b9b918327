package selling

import (
	"errors"
)

var (
	ErrSaleNotFound      = errors.New("venda não encontrada")
	ErrInvalidSale       = errors.New("dados da venda inválidos")
	ErrInvalidStoreType  = errors.New("canal da venda inválido")
	ErrInsufficientStock = errors.New("estoque insuficiente para a venda")
)

// SellingError carrega o código da API e detalhes para o cliente
type SellingError struct {
	Err     error
	Code    string
	Details any
}

func (e *SellingError) Error() string {
	return e.Err.Error()
}

func (e *SellingError) Unwrap() error {
	return e.Err
}

func (e *SellingError) ErrorCode() string {
	return e.Code
}

func (e *SellingError) ErrorDetails() any {
	return e.Details
}

func NewSellingError(baseErr error, code string, details any) *SellingError {
	return &SellingError{
		Err:     baseErr,
		Code:    code,
		Details: details,
	}
}
