package handler

import (
	"net/http"

	"github.com/laroza/pos-api/internal/domain"
	"github.com/laroza/pos-api/internal/usecases/selling"
	"github.com/laroza/pos-api/pkg/apiErrors"
	"github.com/laroza/pos-api/pkg/utils"
)

// ListSales lista vendas da mais recente para a mais antiga
func ListSales(service selling.Seller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()

		from, to, err := utils.ParseDateRange(query.Get("from"), query.Get("to"))
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
			return
		}

		limit, ok := queryLimit(w, r, defaultListLimit)
		if !ok {
			return
		}

		sales, err := service.ListSales(r.Context(), domain.SaleFilter{
			StoreType: domain.Context(query.Get("store_type")),
			From:      from,
			To:        to,
			Limit:     limit,
		})
		if err != nil {
			writeError(w, r, err, "Erro ao listar vendas")
			return
		}

		utils.WriteJSON(w, http.StatusOK, sales)
	}
}

func GetSale(service selling.Seller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}

		sale, err := service.GetSale(r.Context(), id)
		if err != nil {
			writeError(w, r, err, "Erro ao buscar venda")
			return
		}

		utils.WriteJSON(w, http.StatusOK, sale)
	}
}

// CreateSale registra a venda e dá baixa no estoque
func CreateSale(service selling.Seller) http.HandlerFunc {
	return withActor(func(w http.ResponseWriter, r *http.Request, actor domain.Actor) {
		var req domain.CreateSaleRequest
		if !decodeBody(w, r, &req) {
			return
		}

		sale, err := service.CreateSale(r.Context(), actor, &req)
		if err != nil {
			writeError(w, r, err, "Erro ao registrar venda")
			return
		}

		utils.WriteJSON(w, http.StatusCreated, sale)
	})
}
