package ordering

import (
	"errors"
)

var (
	ErrOrderNotFound       = errors.New("pedido não encontrado")
	ErrInvalidOrder        = errors.New("dados do pedido inválidos")
	ErrInvalidStatus       = errors.New("status de pedido inválido")
	ErrReturnedViaApproval = errors.New("o status returned só é atingido pela aprovação de um reembolso")
	ErrOrderReturned       = errors.New("pedido já devolvido não pode mudar de status")
	ErrInsufficientStock   = errors.New("estoque insuficiente para entregar o pedido")
)

type OrderingError struct {
	Err     error
	Code    string
	Details any
}

func (e *OrderingError) Error() string {
	return e.Err.Error()
}

func (e *OrderingError) Unwrap() error {
	return e.Err
}

func (e *OrderingError) ErrorCode() string {
	return e.Code
}

func (e *OrderingError) ErrorDetails() any {
	return e.Details
}

func NewOrderingError(baseErr error, code string, details any) *OrderingError {
	return &OrderingError{
		Err:     baseErr,
		Code:    code,
		Details: details,
	}
}
