package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/justinas/alice"
	"github.com/laroza/pos-api/internal/api/handler"
	"github.com/laroza/pos-api/internal/api/handler/router"
	"github.com/laroza/pos-api/internal/config"
	"github.com/laroza/pos-api/internal/usecases/auditing"
	"github.com/laroza/pos-api/internal/usecases/authenticating"
	"github.com/laroza/pos-api/internal/usecases/cataloging"
	"github.com/laroza/pos-api/internal/usecases/ordering"
	"github.com/laroza/pos-api/internal/usecases/reporting"
	"github.com/laroza/pos-api/internal/usecases/returning"
	"github.com/laroza/pos-api/internal/usecases/selling"
	"github.com/laroza/pos-api/pkg/middleware"
	"github.com/sirupsen/logrus"
)

const shutdownTimeout = 15 * time.Second

// Services agrupa os casos de uso expostos pela API
type Services struct {
	Authenticator authenticating.Authenticator
	Catalog       cataloging.Cataloger
	Seller        selling.Seller
	Orderer       ordering.Orderer
	Returner      returning.Returner
	Reporter      reporting.Reporter
	Auditor       auditing.Auditor
	CronJobs      handler.CronJobServices
	// Uploads serve os arquivos gravados pelo armazenamento de imagens
	Uploads http.Handler
}

type Server struct {
	httpServer *http.Server
}

func New(cfg *config.Config, services Services) (*Server, error) {
	rt := router.New(
		router.WithRoutes(handler.Healthcheck()...),
		router.WithRoutes(handler.Uploads(cfg.Uploads.URLPrefix, services.Uploads)...),
		router.WithRoutes(handler.Employees(services.Authenticator)...),
		router.WithRoutes(handler.Products(services.Catalog, cfg.Uploads.MaxBytes)...),
		router.WithRoutes(handler.Sales(services.Seller)...),
		router.WithRoutes(handler.Orders(services.Orderer)...),
		router.WithRoutes(handler.Returns(services.Returner)...),
		router.WithRoutes(handler.Activities(services.Auditor)...),
		router.WithRoutes(handler.Reports(services.Reporter)...),
		router.WithRoutes(handler.CronJobs(services.CronJobs)...),
	)

	rateLimit, err := middleware.RateLimit(cfg.RateLimit)
	if err != nil {
		return nil, fmt.Errorf("erro ao configurar limite de requisições: %w", err)
	}

	middlewares := []alice.Constructor{
		middleware.LogPanicMiddleware(),
		middleware.LoggingMiddleware(),
		middleware.Cors(cfg.Server.AllowedOrigins),
		rateLimit,
		middleware.AuthMiddleware(services.Authenticator),
	}

	srv := &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
			Handler:           alice.New(middlewares...).Then(rt),
			ReadHeaderTimeout: 2 * time.Second,
		},
	}

	return srv, nil
}

// Handler expõe a cadeia completa de middlewares e rotas
func (s Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Run atende requisições até receber SIGINT/SIGTERM ou até ctx ser cancelado
func (s Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		logrus.WithField("address", s.httpServer.Addr).Info("Servidor iniciando")

		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(done)

	select {
	case <-done:
		logrus.Info("Sinal de interrupção recebido")
	case <-ctx.Done():
		logrus.Info("Contexto de aplicação cancelado")
	case err := <-errCh:
		logrus.WithError(err).Error("Erro durante a execução do servidor")
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	logrus.WithField("timeout", shutdownTimeout.String()).Info("Iniciando desligamento gracioso do servidor")

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("Erro durante o desligamento do servidor")
		return err
	}

	logrus.Info("Servidor desligado com sucesso")
	return nil
}
