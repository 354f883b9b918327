package cataloging

import (
	"errors"
	"fmt"
)

var (
	ErrProductNotFound  = errors.New("produto não encontrado")
	ErrInvalidProduct   = errors.New("dados do produto inválidos")
	ErrDuplicateCode    = errors.New("já existe um produto com este código")
	ErrProductInUse     = errors.New("produto possui vendas ou pedidos e não pode ser excluído")
	ErrMissingPrice     = errors.New("produto sem preço para o canal")
	ErrInvalidLineItem  = errors.New("item inválido")
	ErrUnsupportedImage = errors.New("imagem em formato não suportado")
	ErrImageTooLarge    = errors.New("imagem acima do tamanho máximo")
)

// CatalogingError carrega o código da API e detalhes para o cliente
type CatalogingError struct {
	Err     error
	Code    string
	Details any
}

func (e *CatalogingError) Error() string {
	if msg, ok := e.Details.(string); ok && msg != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), msg)
	}
	return e.Err.Error()
}

func (e *CatalogingError) Unwrap() error {
	return e.Err
}

func (e *CatalogingError) ErrorCode() string {
	return e.Code
}

func (e *CatalogingError) ErrorDetails() any {
	return e.Details
}

func NewCatalogingError(baseErr error, code string, details any) *CatalogingError {
	return &CatalogingError{
		Err:     baseErr,
		Code:    code,
		Details: details,
	}
}
