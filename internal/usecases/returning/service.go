package returning

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/laroza/pos-api/infrastructure/database/postgres"
	"github.com/laroza/pos-api/infrastructure/repository"
	"github.com/laroza/pos-api/internal/domain"
	"github.com/laroza/pos-api/pkg/apiErrors"
	"github.com/laroza/pos-api/pkg/log"
	"github.com/laroza/pos-api/pkg/validation"
	"github.com/pkg/errors"
)

type Returner interface {
	CreateReturn(ctx context.Context, actor domain.Actor, req *domain.CreateReturnRequest) (*domain.ReturnExchange, error)
	ListReturns(ctx context.Context, filter domain.ReturnFilter) ([]*domain.ReturnExchange, error)
	GetReturn(ctx context.Context, id int64) (*domain.ReturnExchange, error)
	ApproveReturn(ctx context.Context, actor domain.Actor, id int64) (*domain.ReturnExchange, error)
}

type Service struct {
	tx         postgres.Transactor
	returns    repository.ReturnRepository
	sales      repository.SaleRepository
	orders     repository.OrderRepository
	inventory  repository.InventoryRepository
	activities repository.ActivityRepository
	now        func() time.Time
}

func NewService(
	tx postgres.Transactor,
	returns repository.ReturnRepository,
	sales repository.SaleRepository,
	orders repository.OrderRepository,
	inventory repository.InventoryRepository,
	activities repository.ActivityRepository,
) Returner {
	return &Service{
		tx:         tx,
		returns:    returns,
		sales:      sales,
		orders:     orders,
		inventory:  inventory,
		activities: activities,
		now:        time.Now,
	}
}

// source é a venda ou pedido travado durante a criação da devolução
type source struct {
	kind    domain.ReturnSource
	id      int64
	number  string
	channel domain.Context
	items   []domain.LineItem
}

// CreateReturn registra a devolução como pendente. Sem itens no pedido, tudo o
// que ainda não foi devolvido entra. O estoque só volta na aprovação.
func (s *Service) CreateReturn(ctx context.Context, actor domain.Actor, req *domain.CreateReturnRequest) (*domain.ReturnExchange, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	ret := &domain.ReturnExchange{
		Type:         req.Type,
		ExchangeMode: req.ExchangeMode,
		SaleID:       req.SaleID,
		OrderID:      req.OrderID,
		Status:       domain.ReturnPending,
		EmployeeID:   actor.EmployeeID,
		EmployeeName: actor.EmployeeName,
		Notes:        req.Notes,
	}

	err := s.tx.RunInTransaction(ctx, func(tx *sql.Tx) error {
		src, err := s.lockSource(ctx, tx, req)
		if err != nil {
			return err
		}

		returned, err := s.returns.ReturnedQuantities(ctx, tx, src.kind, src.id)
		if err != nil {
			return err
		}

		items, err := selectItems(src, returned, req.Items)
		if err != nil {
			return err
		}
		ret.Items = items

		if err := s.returns.Create(ctx, tx, ret); err != nil {
			return err
		}

		activity := domain.NewActivity(domain.ActivityReturnCreated, actor, src.channel,
			fmt.Sprintf("Devolução (%s) registrada para %s", ret.Type, src.number),
			map[string]any{
				"return_id": ret.ID,
				"type":      ret.Type,
				"source":    src.kind,
				"source_id": src.id,
				"items":     len(items),
			})
		return s.activities.Create(ctx, tx, activity)
	})
	if err != nil {
		return nil, mapError(err)
	}

	log.ForContext(ctx).WithFields(log.Fields{
		"return_id": ret.ID,
		"type":      ret.Type,
	}).Info("Devolução registrada")

	return ret, nil
}

func validateRequest(req *domain.CreateReturnRequest) error {
	if err := validation.Struct(req); err != nil {
		return NewReturningError(ErrInvalidReturn, apiErrors.ErrMissingRequiredData, err)
	}

	var invalid validation.Errors
	if (req.SaleID == nil) == (req.OrderID == nil) {
		invalid = append(invalid, validation.FieldError{Field: "sale_id", Rule: "required_without", Param: "order_id"})
	}
	if req.Type == domain.ReturnTypeExchange && req.ExchangeMode == nil {
		invalid = append(invalid, validation.FieldError{Field: "exchange_mode", Rule: "required_if", Param: "type exchange"})
	}
	if req.Type == domain.ReturnTypeRefund && req.ExchangeMode != nil {
		invalid = append(invalid, validation.FieldError{Field: "exchange_mode", Rule: "excluded_if", Param: "type refund"})
	}
	if len(invalid) > 0 {
		return NewReturningError(ErrInvalidReturn, apiErrors.ErrMissingRequiredData, invalid)
	}

	return nil
}

func (s *Service) lockSource(ctx context.Context, tx *sql.Tx, req *domain.CreateReturnRequest) (*source, error) {
	if req.OrderID != nil {
		order, err := s.orders.GetForUpdate(ctx, tx, *req.OrderID)
		if err != nil {
			return nil, err
		}
		if order.Status != domain.OrderDelivered {
			return nil, NewReturningError(ErrOrderNotDelivered, apiErrors.ErrConflict,
				map[string]any{"order_id": order.ID, "status": order.Status})
		}
		return &source{
			kind:    domain.SourceOrder,
			id:      order.ID,
			number:  order.OrderNumber,
			channel: domain.ContextOnline,
			items:   order.Items,
		}, nil
	}

	sale, err := s.sales.GetForUpdate(ctx, tx, *req.SaleID)
	if err != nil {
		return nil, err
	}
	return &source{
		kind:    domain.SourceSale,
		id:      sale.ID,
		number:  sale.InvoiceNumber,
		channel: sale.StoreType,
		items:   sale.Items,
	}, nil
}

// selectItems copia as linhas de origem para a devolução, limitando cada uma ao
// vendido menos o que já consta em outras devoluções
func selectItems(src *source, returned map[int64]int, requested []domain.ReturnItemRequest) ([]domain.ReturnItem, error) {
	byID := make(map[int64]domain.LineItem, len(src.items))
	for _, item := range src.items {
		byID[item.ID] = item
	}

	remaining := func(item domain.LineItem) int {
		return item.Quantity - returned[item.ID]
	}

	var items []domain.ReturnItem
	if len(requested) == 0 {
		for _, item := range src.items {
			if left := remaining(item); left > 0 {
				items = append(items, snapshot(item, left))
			}
		}
		if len(items) == 0 {
			return nil, NewReturningError(ErrNothingToReturn, apiErrors.ErrAlreadyProcessed,
				map[string]any{"source": src.kind, "source_id": src.id})
		}
		return items, nil
	}

	// o mesmo item pode vir em mais de uma linha do pedido
	wanted := make(map[int64]int, len(requested))
	for i, req := range requested {
		item, ok := byID[req.ItemID]
		if !ok {
			return nil, NewReturningError(ErrItemNotInSource, apiErrors.ErrMissingRequiredData,
				validation.Errors{{Field: fmt.Sprintf("items[%d].item_id", i), Rule: "oneof", Param: "source items"}})
		}

		wanted[req.ItemID] += req.Quantity
		if left := remaining(item); wanted[req.ItemID] > left {
			return nil, NewReturningError(ErrQuantityExceeded, apiErrors.ErrAlreadyProcessed, map[string]any{
				"item_id":    req.ItemID,
				"requested":  wanted[req.ItemID],
				"returnable": max(left, 0),
			})
		}

		items = append(items, snapshot(item, req.Quantity))
	}

	return items, nil
}

func snapshot(item domain.LineItem, quantity int) domain.ReturnItem {
	return domain.ReturnItem{
		SourceItemID: item.ID,
		ProductID:    item.ProductID,
		ColorName:    item.ColorName,
		SizeLabel:    item.SizeLabel,
		Quantity:     quantity,
	}
}

func (s *Service) ListReturns(ctx context.Context, filter domain.ReturnFilter) ([]*domain.ReturnExchange, error) {
	if filter.Status != "" && filter.Status != domain.ReturnPending && filter.Status != domain.ReturnApproved {
		return nil, NewReturningError(ErrInvalidStatusQuery, apiErrors.ErrInvalidRequest, map[string]any{"status": filter.Status})
	}

	returns, err := s.returns.List(ctx, filter)
	if err != nil {
		return nil, NewReturningError(err, apiErrors.ErrDatabaseOperation, nil)
	}
	return returns, nil
}

func (s *Service) GetReturn(ctx context.Context, id int64) (*domain.ReturnExchange, error) {
	ret, err := s.returns.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, NewReturningError(ErrReturnNotFound, apiErrors.ErrNotFound, map[string]any{"return_id": id})
		}
		return nil, NewReturningError(err, apiErrors.ErrDatabaseOperation, nil)
	}
	return ret, nil
}

// ApproveReturn devolve ao estoque exatamente as linhas da devolução. Reembolso
// que completa o pedido leva o pedido para returned. Uma segunda aprovação é recusada.
func (s *Service) ApproveReturn(ctx context.Context, actor domain.Actor, id int64) (*domain.ReturnExchange, error) {
	var ret *domain.ReturnExchange

	err := s.tx.RunInTransaction(ctx, func(tx *sql.Tx) error {
		var err error
		ret, err = s.returns.GetForUpdate(ctx, tx, id)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return NewReturningError(ErrReturnNotFound, apiErrors.ErrNotFound, map[string]any{"return_id": id})
			}
			return err
		}
		if ret.Status == domain.ReturnApproved {
			return NewReturningError(ErrAlreadyApproved, apiErrors.ErrAlreadyProcessed, map[string]any{"return_id": id})
		}

		for _, movement := range domain.MovementsFromReturnItems(ret.Items) {
			if err := s.inventory.Increment(ctx, tx, movement); err != nil {
				return err
			}
		}

		approvedAt := s.now()
		if err := s.returns.Approve(ctx, tx, id, actor.EmployeeID, approvedAt); err != nil {
			return err
		}
		ret.Status = domain.ReturnApproved
		ret.ApprovedBy = &actor.EmployeeID
		ret.ApprovedAt = &approvedAt

		channel := domain.Context("")
		orderReturned := false
		if ret.OrderID != nil {
			channel = domain.ContextOnline
			if ret.Type == domain.ReturnTypeRefund {
				orderReturned, err = s.closeRefundedOrder(ctx, tx, *ret.OrderID)
				if err != nil {
					return err
				}
			}
		}

		kind, sourceID := ret.Source()
		activity := domain.NewActivity(domain.ActivityReturnApproved, actor, channel,
			fmt.Sprintf("Devolução #%d aprovada", ret.ID),
			map[string]any{
				"return_id":      ret.ID,
				"type":           ret.Type,
				"source":         kind,
				"source_id":      sourceID,
				"items":          len(ret.Items),
				"order_returned": orderReturned,
			})
		return s.activities.Create(ctx, tx, activity)
	})
	if err != nil {
		return nil, mapError(err)
	}

	log.ForContext(ctx).WithFields(log.Fields{
		"return_id":   ret.ID,
		"approved_by": actor.EmployeeID,
	}).Info("Devolução aprovada")

	return ret, nil
}

// closeRefundedOrder leva o pedido para returned só quando os reembolsos
// aprovados cobrem todas as unidades de todas as linhas. Reembolso parcial deixa
// o pedido entregue, aceitando devolução do restante.
func (s *Service) closeRefundedOrder(ctx context.Context, tx *sql.Tx, orderID int64) (bool, error) {
	order, err := s.orders.GetForUpdate(ctx, tx, orderID)
	if err != nil {
		return false, err
	}

	refunded, err := s.returns.RefundedQuantities(ctx, tx, orderID)
	if err != nil {
		return false, err
	}
	for _, item := range order.Items {
		if refunded[item.ID] < item.Quantity {
			return false, nil
		}
	}

	order.Status = domain.OrderReturned
	if err := s.orders.UpdateStatus(ctx, tx, order); err != nil {
		return false, err
	}
	return true, nil
}

func mapError(err error) error {
	var returningErr *ReturningError
	switch {
	case errors.As(err, &returningErr):
		return returningErr
	case errors.Is(err, repository.ErrNotFound):
		return NewReturningError(ErrSourceNotFound, apiErrors.ErrNotFound, nil)
	default:
		return NewReturningError(err, apiErrors.ErrDatabaseOperation, nil)
	}
}
