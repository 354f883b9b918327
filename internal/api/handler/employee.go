package handler

import (
	"net/http"

	"github.com/laroza/pos-api/internal/domain"
	"github.com/laroza/pos-api/internal/usecases/authenticating"
	"github.com/laroza/pos-api/pkg/apiErrors"
	"github.com/laroza/pos-api/pkg/middleware"
	"github.com/laroza/pos-api/pkg/utils"
)

// ListEmployees é pública: a tela de entrada escolhe o funcionário da lista
func ListEmployees(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		employees, err := service.ListEmployees(r.Context())
		if err != nil {
			writeError(w, r, err, "Erro ao listar funcionários")
			return
		}

		utils.WriteJSON(w, http.StatusOK, employees)
	}
}

func CreateEmployee(service authenticating.Authenticator) http.HandlerFunc {
	return withActor(func(w http.ResponseWriter, r *http.Request, actor domain.Actor) {
		var req domain.CreateEmployeeRequest
		if !decodeBody(w, r, &req) {
			return
		}

		employee, err := service.CreateEmployee(r.Context(), actor, &req)
		if err != nil {
			writeError(w, r, err, "Erro ao criar funcionário")
			return
		}

		utils.WriteJSON(w, http.StatusCreated, employee)
	})
}

// StartSession abre a sessão do funcionário no contexto escolhido
func StartSession(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req domain.StartSessionRequest
		if !decodeBody(w, r, &req) {
			return
		}

		session, err := service.StartSession(r.Context(), &req)
		if err != nil {
			writeError(w, r, err, "Erro ao iniciar sessão")
			return
		}

		utils.WriteJSON(w, http.StatusOK, session)
	}
}

// GetSession devolve os dados da sessão atual
func GetSession() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Sessão não encontrada", nil)
			return
		}

		utils.WriteJSON(w, http.StatusOK, claims)
	}
}
