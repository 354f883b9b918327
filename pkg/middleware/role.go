package middleware

import (
	"net/http"
	"slices"

	"github.com/laroza/pos-api/internal/domain"
	"github.com/laroza/pos-api/pkg/apiErrors"
	"github.com/laroza/pos-api/pkg/log"
)

// RoleMiddleware restringe a rota aos papéis informados
func RoleMiddleware(allowedRoles ...domain.EmployeeRole) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFromContext(r.Context())
			if !ok {
				log.ForContext(r.Context()).Warn("Tentativa de acesso sem sessão")
				apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Funcionário não autenticado", nil)
				return
			}

			if !slices.Contains(allowedRoles, claims.EmployeeRole) {
				log.ForContext(r.Context()).WithFields(log.Fields{
					"employee_role": claims.EmployeeRole,
					"path":          r.URL.Path,
				}).Warn("Acesso negado")
				apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, "Operação exclusiva de gerente", nil)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// ManagerOnly libera a rota apenas para gerentes
func ManagerOnly() func(http.Handler) http.Handler {
	return RoleMiddleware(domain.RoleManager)
}
