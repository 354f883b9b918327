package handler

import (
	"net/http"

	"github.com/laroza/pos-api/internal/domain"
	"github.com/laroza/pos-api/internal/usecases/ordering"
	"github.com/laroza/pos-api/pkg/utils"
)

func ListOrders(service ordering.Orderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, ok := queryLimit(w, r, defaultListLimit)
		if !ok {
			return
		}

		orders, err := service.ListOrders(r.Context(), domain.OrderFilter{
			Status: domain.OrderStatus(r.URL.Query().Get("status")),
			Limit:  limit,
		})
		if err != nil {
			writeError(w, r, err, "Erro ao listar pedidos")
			return
		}

		utils.WriteJSON(w, http.StatusOK, orders)
	}
}

func GetOrder(service ordering.Orderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}

		order, err := service.GetOrder(r.Context(), id)
		if err != nil {
			writeError(w, r, err, "Erro ao buscar pedido")
			return
		}

		utils.WriteJSON(w, http.StatusOK, order)
	}
}

// CreateOrder cria o pedido online como pendente, sem mexer no estoque
func CreateOrder(service ordering.Orderer) http.HandlerFunc {
	return withActor(func(w http.ResponseWriter, r *http.Request, actor domain.Actor) {
		var req domain.CreateOrderRequest
		if !decodeBody(w, r, &req) {
			return
		}

		order, err := service.CreateOrder(r.Context(), actor, &req)
		if err != nil {
			writeError(w, r, err, "Erro ao criar pedido")
			return
		}

		utils.WriteJSON(w, http.StatusCreated, order)
	})
}

// UpdateOrderStatus atende PATCH e PUT em /api/orders/:id/status
func UpdateOrderStatus(service ordering.Orderer) http.HandlerFunc {
	return withActor(func(w http.ResponseWriter, r *http.Request, actor domain.Actor) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}

		var req domain.UpdateOrderStatusRequest
		if !decodeBody(w, r, &req) {
			return
		}

		order, err := service.UpdateStatus(r.Context(), actor, id, &req)
		if err != nil {
			writeError(w, r, err, "Erro ao atualizar status do pedido")
			return
		}

		utils.WriteJSON(w, http.StatusOK, order)
	})
}
