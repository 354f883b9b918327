package middleware

import (
	"net/http"

	"github.com/laroza/pos-api/internal/config"
	"github.com/laroza/pos-api/pkg/apiErrors"
	"github.com/laroza/pos-api/pkg/log"
	"github.com/pkg/errors"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/middleware/stdlib"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// RateLimit limita requisições por IP do cliente com contadores em memória.
// Desabilitado, devolve um middleware que só repassa a requisição.
func RateLimit(cfg config.RateLimit) (func(http.Handler) http.Handler, error) {
	if !cfg.Enabled {
		return func(next http.Handler) http.Handler { return next }, nil
	}

	rate, err := limiter.NewRateFromFormatted(cfg.Rate)
	if err != nil {
		return nil, errors.Wrapf(err, "RATE_LIMIT inválido %q", cfg.Rate)
	}

	instance := limiter.New(memory.NewStore(), rate)
	mw := stdlib.NewMiddleware(instance,
		stdlib.WithLimitReachedHandler(func(w http.ResponseWriter, r *http.Request) {
			log.ForContext(r.Context()).WithField("remote_addr", r.RemoteAddr).Warn("Limite de requisições atingido")
			apiErrors.WriteError(w, apiErrors.ErrRateLimited, "Muitas requisições, tente novamente em instantes", nil)
		}),
		stdlib.WithErrorHandler(func(w http.ResponseWriter, r *http.Request, err error) {
			log.ForContext(r.Context()).WithError(err).Error("Falha no limitador de requisições")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro interno no servidor", nil)
		}),
	)

	return mw.Handler, nil
}
