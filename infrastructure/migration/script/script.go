package main

import (
	"context"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/laroza/pos-api/infrastructure/database/postgres"
	"github.com/laroza/pos-api/infrastructure/migration"
	"github.com/laroza/pos-api/internal/config"
	"github.com/laroza/pos-api/internal/domain"
	"github.com/sirupsen/logrus"
)

type seedEmployee struct {
	Name string
	Role domain.EmployeeRole
}

// Equipe inicial da loja; o PIN é definido depois por um gerente
var employees = []seedEmployee{
	{"Abdulrahman", domain.RoleManager},
	{"Heba", domain.RoleStaff},
	{"Hadeel", domain.RoleStaff},
}

func insertEmployees(ctx context.Context, tx postgres.Queryer) (int64, error) {
	queryBuilder := squirrel.
		Insert("employees").
		Columns("name", "role").
		Suffix("ON CONFLICT (name) DO NOTHING").
		PlaceholderFormat(squirrel.Dollar)

	for _, e := range employees {
		queryBuilder = queryBuilder.Values(e.Name, string(e.Role))
	}

	query, args, err := queryBuilder.ToSql()
	if err != nil {
		return 0, err
	}

	result, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, TimestampFormat: time.RFC3339})
	logrus.Info("Iniciando script de migração...")

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	conn, err := postgres.NewConnection(ctx, cfg.Database)
	if err != nil {
		logrus.WithError(err).Fatal("ERRO ao conectar ao banco de dados")
	}
	defer conn.Close()
	logrus.Info("Conexão com o banco de dados estabelecida com sucesso")

	if err := migration.Apply(ctx, conn); err != nil {
		logrus.WithError(err).Fatal("ERRO ao aplicar schema")
	}

	startTime := time.Now()
	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		logrus.WithError(err).Fatal("ERRO ao iniciar transação")
	}

	inserted, err := insertEmployees(ctx, tx)
	if err != nil {
		_ = tx.Rollback()
		logrus.WithError(err).Fatal("ERRO ao inserir funcionários")
	}

	if err := tx.Commit(); err != nil {
		logrus.WithError(err).Fatal("ERRO ao confirmar transação")
	}

	logrus.WithFields(logrus.Fields{
		"inserted": inserted,
		"total":    len(employees),
		"elapsed":  time.Since(startTime).String(),
	}).Info("Carga inicial concluída")
}
