package main

import (
	"context"

	"github.com/laroza/pos-api/infrastructure/database/postgres"
	"github.com/laroza/pos-api/infrastructure/migration"
	"github.com/laroza/pos-api/infrastructure/repository"
	"github.com/laroza/pos-api/infrastructure/storage"
	"github.com/laroza/pos-api/internal/api"
	"github.com/laroza/pos-api/internal/api/handler"
	"github.com/laroza/pos-api/internal/config"
	"github.com/laroza/pos-api/internal/domain"
	"github.com/laroza/pos-api/internal/scheduler"
	"github.com/laroza/pos-api/internal/usecases/auditing"
	"github.com/laroza/pos-api/internal/usecases/authenticating"
	"github.com/laroza/pos-api/internal/usecases/cataloging"
	"github.com/laroza/pos-api/internal/usecases/ordering"
	"github.com/laroza/pos-api/internal/usecases/reporting"
	"github.com/laroza/pos-api/internal/usecases/returning"
	"github.com/laroza/pos-api/internal/usecases/selling"
	"github.com/laroza/pos-api/pkg/log"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	log.Setup(cfg.App.LogLevel)
	logrus.Infof("Nível de log configurado para: %s", logrus.GetLevel())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg)
	defer pgConn.Close()

	if cfg.Database.AutoMigrate {
		if err := migration.Apply(ctx, pgConn); err != nil {
			logrus.WithError(err).Fatal("Erro ao aplicar migração")
		}
	}

	productRepo := repository.NewProductRepository(pgConn)
	inventoryRepo := repository.NewInventoryRepository(pgConn)
	saleRepo := repository.NewSaleRepository(pgConn)
	orderRepo := repository.NewOrderRepository(pgConn)
	returnRepo := repository.NewReturnRepository(pgConn)
	activityRepo := repository.NewActivityRepository(pgConn)
	employeeRepo := repository.NewEmployeeRepository(pgConn)
	reportRepo := repository.NewReportRepository(pgConn)
	numberRepo := repository.NewDocumentNumberRepository(pgConn)

	ensureCounters(ctx, numberRepo, cfg.Numbering)

	images, err := storage.NewLocalImageStore(afero.NewOsFs(), cfg.Uploads)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao preparar armazenamento de imagens")
	}

	authenticator := authenticating.NewService(employeeRepo, cfg)
	catalog := cataloging.NewService(pgConn, productRepo, activityRepo, images)
	seller := selling.NewService(pgConn, saleRepo, inventoryRepo, numberRepo, activityRepo, catalog, cfg)
	orderer := ordering.NewService(pgConn, orderRepo, inventoryRepo, numberRepo, activityRepo, catalog, cfg)
	returner := returning.NewService(pgConn, returnRepo, saleRepo, orderRepo, inventoryRepo, activityRepo)
	reporter := reporting.NewService(reportRepo, cfg)
	auditor := auditing.NewService(activityRepo, pgConn)

	lowStockAlertService := scheduler.NewLowStockAlertService(inventoryRepo, auditor, cfg)
	if err := lowStockAlertService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador do alerta de estoque baixo")
	} else {
		logrus.Info("Agendador do alerta de estoque baixo iniciado com sucesso")
	}

	server, err := api.New(cfg, api.Services{
		Authenticator: authenticator,
		Catalog:       catalog,
		Seller:        seller,
		Orderer:       orderer,
		Returner:      returner,
		Reporter:      reporter,
		Auditor:       auditor,
		CronJobs:      handler.CronJobServices{LowStockAlert: lowStockAlertService},
		Uploads:       images.Handler(),
	})
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, cfg *config.Config) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, cfg.Database)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}

// ensureCounters cria os contadores de fatura e pedido na primeira execução,
// para que o primeiro número emitido seja a base configurada
func ensureCounters(ctx context.Context, numbers repository.DocumentNumberRepository, cfg config.Numbering) {
	counters := map[string]domain.NumberingScheme{
		domain.CounterInvoice: cfg.InvoiceScheme(),
		domain.CounterOrder:   cfg.OrderScheme(),
	}

	for name, scheme := range counters {
		if err := numbers.Ensure(ctx, name, scheme.Seed()); err != nil {
			logrus.WithError(err).WithField("counter", name).Fatal("Erro ao preparar contador de documentos")
		}
	}
}
