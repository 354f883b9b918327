package handler

import (
	"net/http"

	"github.com/laroza/pos-api/internal/domain"
	"github.com/laroza/pos-api/internal/usecases/returning"
	"github.com/laroza/pos-api/pkg/utils"
)

func ListReturns(service returning.Returner) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, ok := queryLimit(w, r, defaultListLimit)
		if !ok {
			return
		}

		returns, err := service.ListReturns(r.Context(), domain.ReturnFilter{
			Status: domain.ReturnStatus(r.URL.Query().Get("status")),
			Limit:  limit,
		})
		if err != nil {
			writeError(w, r, err, "Erro ao listar devoluções")
			return
		}

		utils.WriteJSON(w, http.StatusOK, returns)
	}
}

func GetReturn(service returning.Returner) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}

		ret, err := service.GetReturn(r.Context(), id)
		if err != nil {
			writeError(w, r, err, "Erro ao buscar devolução")
			return
		}

		utils.WriteJSON(w, http.StatusOK, ret)
	}
}

// CreateReturn abre uma devolução ou troca pendente de aprovação
func CreateReturn(service returning.Returner) http.HandlerFunc {
	return withActor(func(w http.ResponseWriter, r *http.Request, actor domain.Actor) {
		var req domain.CreateReturnRequest
		if !decodeBody(w, r, &req) {
			return
		}

		ret, err := service.CreateReturn(r.Context(), actor, &req)
		if err != nil {
			writeError(w, r, err, "Erro ao registrar devolução")
			return
		}

		utils.WriteJSON(w, http.StatusCreated, ret)
	})
}

// ApproveReturn devolve os itens ao estoque. Exclusivo de gerente.
func ApproveReturn(service returning.Returner) http.HandlerFunc {
	return withActor(func(w http.ResponseWriter, r *http.Request, actor domain.Actor) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}

		ret, err := service.ApproveReturn(r.Context(), actor, id)
		if err != nil {
			writeError(w, r, err, "Erro ao aprovar devolução")
			return
		}

		utils.WriteJSON(w, http.StatusOK, ret)
	})
}
