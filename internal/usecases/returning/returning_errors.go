package returning

import (
	"errors"
)

var (
	ErrReturnNotFound     = errors.New("devolução não encontrada")
	ErrInvalidReturn      = errors.New("dados da devolução inválidos")
	ErrSourceNotFound     = errors.New("venda ou pedido de origem não encontrado")
	ErrOrderNotDelivered  = errors.New("só pedidos entregues aceitam devolução")
	ErrNothingToReturn    = errors.New("todos os itens já foram devolvidos")
	ErrQuantityExceeded   = errors.New("quantidade acima do que ainda pode ser devolvido")
	ErrAlreadyApproved    = errors.New("devolução já aprovada")
	ErrItemNotInSource    = errors.New("item não pertence à venda ou pedido de origem")
	ErrInvalidStatusQuery = errors.New("status de devolução inválido")
)

type ReturningError struct {
	Err     error
	Code    string
	Details any
}

func (e *ReturningError) Error() string {
	return e.Err.Error()
}

func (e *ReturningError) Unwrap() error {
	return e.Err
}

func (e *ReturningError) ErrorCode() string {
	return e.Code
}

func (e *ReturningError) ErrorDetails() any {
	return e.Details
}

func NewReturningError(baseErr error, code string, details any) *ReturningError {
	return &ReturningError{
		Err:     baseErr,
		Code:    code,
		Details: details,
	}
}
