package repository

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/laroza/pos-api/infrastructure/database/postgres"
	"github.com/pkg/errors"
)

const (
	documentCountersTable = "document_counters"
)

// DocumentNumberRepository emite valores sequenciais para faturas e pedidos
type DocumentNumberRepository interface {
	// Ensure cria o contador com o valor inicial caso ainda não exista
	Ensure(ctx context.Context, name string, seed int64) error
	// Next incrementa e retorna o contador. Deve rodar na mesma transação
	// que grava o documento para que números não sejam reaproveitados.
	Next(ctx context.Context, q postgres.Queryer, name string) (int64, error)
}

type documentNumberRepository struct {
	conn *postgres.Connection
}

func NewDocumentNumberRepository(conn *postgres.Connection) DocumentNumberRepository {
	return &documentNumberRepository{
		conn: conn,
	}
}

func (r *documentNumberRepository) Ensure(ctx context.Context, name string, seed int64) error {
	queryBuilder := squirrel.
		Insert(documentCountersTable).
		Columns("name", "last_value").
		Values(name, seed).
		Suffix("ON CONFLICT (name) DO NOTHING").
		PlaceholderFormat(squirrel.Dollar)

	sqlQuery, args, err := queryBuilder.ToSql()
	if err != nil {
		return errors.Wrap(err, "erro ao construir a query")
	}

	if _, err := r.conn.ExecContext(ctx, sqlQuery, args...); err != nil {
		return wrapError(err, "erro ao inicializar contador "+name)
	}

	return nil
}

func (r *documentNumberRepository) Next(ctx context.Context, q postgres.Queryer, name string) (int64, error) {
	queryBuilder := squirrel.
		Update(documentCountersTable).
		Set("last_value", squirrel.Expr("last_value + 1")).
		Where(squirrel.Eq{"name": name}).
		Suffix("RETURNING last_value").
		PlaceholderFormat(squirrel.Dollar)

	sqlQuery, args, err := queryBuilder.ToSql()
	if err != nil {
		return 0, errors.Wrap(err, "erro ao construir a query")
	}

	var value int64
	if err := q.QueryRowContext(ctx, sqlQuery, args...).Scan(&value); err != nil {
		return 0, wrapError(err, "erro ao incrementar contador "+name)
	}

	return value, nil
}
