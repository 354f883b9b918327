package handler

import (
	"net/http"

	"github.com/laroza/pos-api/internal/domain"
	"github.com/laroza/pos-api/internal/usecases/auditing"
	"github.com/laroza/pos-api/pkg/utils"
)

// ListActivities retorna o histórico de operações, mais recentes primeiro
func ListActivities(service auditing.Auditor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, ok := queryLimit(w, r, defaultActivityLimit)
		if !ok {
			return
		}

		activities, err := service.ListActivities(r.Context(), domain.ActivityFilter{
			Context: domain.Context(r.URL.Query().Get("context")),
			Limit:   limit,
		})
		if err != nil {
			writeError(w, r, err, "Erro ao listar atividades")
			return
		}

		utils.WriteJSON(w, http.StatusOK, activities)
	}
}
