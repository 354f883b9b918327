// Package migration aplica o schema do banco de dados
package migration

import (
	"context"
	_ "embed"

	"github.com/laroza/pos-api/infrastructure/database/postgres"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

//go:embed schema.sql
var schema string

// Apply cria as tabelas que ainda não existem. Pode rodar em todo start.
func Apply(ctx context.Context, q postgres.Queryer) error {
	if _, err := q.ExecContext(ctx, schema); err != nil {
		return errors.Wrap(err, "erro ao aplicar schema")
	}

	logrus.Info("Schema do banco de dados aplicado")
	return nil
}
