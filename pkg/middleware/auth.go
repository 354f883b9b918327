package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/laroza/pos-api/internal/domain"
	"github.com/laroza/pos-api/internal/usecases/authenticating"
	"github.com/laroza/pos-api/pkg/apiErrors"
	"github.com/laroza/pos-api/pkg/log"
)

type contextKey string

const (
	ContextKeyClaims contextKey = "claims"
)

// publicRoute indica se a rota dispensa sessão. A lista de funcionários e a
// abertura de sessão precisam ser públicas para a tela de seleção.
func publicRoute(r *http.Request) bool {
	path := r.URL.Path
	switch {
	case r.Method == http.MethodOptions:
		return true
	case path == "/healthcheck":
		return true
	case path == "/api/employees" && r.Method == http.MethodGet:
		return true
	case path == "/api/session" && r.Method == http.MethodPost:
		return true
	case strings.HasPrefix(path, "/uploads/"):
		return true
	}
	return false
}

func AuthMiddleware(authService authenticating.Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if publicRoute(r) {
				next.ServeHTTP(w, r)
				return
			}

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Sessão obrigatória", nil)
				return
			}

			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			if tokenString == authHeader {
				apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Token Bearer obrigatório", nil)
				return
			}

			claims, err := authService.ValidateToken(tokenString)
			if err != nil {
				log.ForContext(r.Context()).WithError(err).Debug("Sessão recusada")
				apiErrors.WriteFromError(w, err, "Sessão inválida")
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyClaims, claims)
			ctx = log.WithEmployee(ctx, claims.EmployeeID, claims.EmployeeName, string(claims.Context))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ClaimsFromContext retorna as claims da sessão colocadas pelo AuthMiddleware
func ClaimsFromContext(ctx context.Context) (*domain.Claims, bool) {
	claims, ok := ctx.Value(ContextKeyClaims).(*domain.Claims)
	return claims, ok && claims != nil
}

// WithClaims coloca as claims no contexto, usado por testes de handlers
func WithClaims(ctx context.Context, claims *domain.Claims) context.Context {
	return context.WithValue(ctx, ContextKeyClaims, claims)
}
