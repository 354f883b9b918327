package repository

import (
	"database/sql"
	"fmt"

	"github.com/lib/pq"
	"github.com/pkg/errors"
)

var (
	ErrNotFound          = errors.New("registro não encontrado")
	ErrDuplicate         = errors.New("registro duplicado")
	ErrReferenced        = errors.New("registro referenciado por outros registros")
	ErrInsufficientStock = errors.New("estoque insuficiente")
)

const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
)

// StockError descreve a variante que não tinha estoque para a baixa
type StockError struct {
	ProductID int64
	ColorName string
	SizeLabel string
	Requested int
	Available int
}

func (e *StockError) Error() string {
	return fmt.Sprintf("%s: produto %d %s/%s (solicitado %d, disponível %d)",
		ErrInsufficientStock, e.ProductID, e.ColorName, e.SizeLabel, e.Requested, e.Available)
}

func (e *StockError) Unwrap() error {
	return ErrInsufficientStock
}

// wrapError traduz erros do driver para os erros do pacote e adiciona contexto
func wrapError(err error, message string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case pqUniqueViolation:
			return errors.Wrapf(ErrDuplicate, "%s (%s)", message, pqErr.Constraint)
		case pqForeignKeyViolation:
			return errors.Wrapf(ErrReferenced, "%s (%s)", message, pqErr.Constraint)
		}
	}

	return errors.Wrap(err, message)
}

// Details expõe os dados da variante para a resposta da API
func (e *StockError) Details() map[string]any {
	return map[string]any{
		"product_id": e.ProductID,
		"color_name": e.ColorName,
		"size_label": e.SizeLabel,
		"requested":  e.Requested,
		"available":  e.Available,
	}
}
