package ordering

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/laroza/pos-api/infrastructure/database/postgres"
	"github.com/laroza/pos-api/infrastructure/repository"
	"github.com/laroza/pos-api/internal/config"
	"github.com/laroza/pos-api/internal/domain"
	"github.com/laroza/pos-api/internal/usecases/cataloging"
	"github.com/laroza/pos-api/pkg/apiErrors"
	"github.com/laroza/pos-api/pkg/log"
	"github.com/laroza/pos-api/pkg/validation"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

type Orderer interface {
	CreateOrder(ctx context.Context, actor domain.Actor, req *domain.CreateOrderRequest) (*domain.Order, error)
	ListOrders(ctx context.Context, filter domain.OrderFilter) ([]*domain.Order, error)
	GetOrder(ctx context.Context, id int64) (*domain.Order, error)
	UpdateStatus(ctx context.Context, actor domain.Actor, id int64, req *domain.UpdateOrderStatusRequest) (*domain.Order, error)
}

type Service struct {
	tx            postgres.Transactor
	orders        repository.OrderRepository
	inventory     repository.InventoryRepository
	numbers       repository.DocumentNumberRepository
	activities    repository.ActivityRepository
	catalog       cataloging.Cataloger
	scheme        domain.NumberingScheme
	allowOversell bool
	now           func() time.Time
}

func NewService(
	tx postgres.Transactor,
	orders repository.OrderRepository,
	inventory repository.InventoryRepository,
	numbers repository.DocumentNumberRepository,
	activities repository.ActivityRepository,
	catalog cataloging.Cataloger,
	cfg *config.Config,
) Orderer {
	return &Service{
		tx:            tx,
		orders:        orders,
		inventory:     inventory,
		numbers:       numbers,
		activities:    activities,
		catalog:       catalog,
		scheme:        cfg.Numbering.OrderScheme(),
		allowOversell: cfg.Sales.AllowOversell,
		now:           time.Now,
	}
}

// CreateOrder registra o pedido online como pendente. O estoque só é baixado na entrega.
func (s *Service) CreateOrder(ctx context.Context, actor domain.Actor, req *domain.CreateOrderRequest) (*domain.Order, error) {
	if err := validation.Struct(req); err != nil {
		return nil, NewOrderingError(ErrInvalidOrder, apiErrors.ErrMissingRequiredData, err)
	}

	items, err := s.catalog.ResolveLineItems(ctx, domain.ContextOnline, req.Items)
	if err != nil {
		return nil, err
	}

	order := &domain.Order{
		CustomerName:   req.CustomerName,
		Phone:          req.Phone,
		Region:         req.Region,
		Address:        req.Address,
		TrackingNumber: req.TrackingNumber,
		PaymentMethod:  req.PaymentMethod,
		Status:         domain.OrderPending,
		TotalAmount:    domain.ComputeTotals(items, false, decimal.Zero).Total,
		EmployeeID:     actor.EmployeeID,
		EmployeeName:   actor.EmployeeName,
		Items:          items,
	}

	err = s.tx.RunInTransaction(ctx, func(tx *sql.Tx) error {
		number, err := s.numbers.Next(ctx, tx, domain.CounterOrder)
		if err != nil {
			return err
		}
		order.OrderNumber = s.scheme.Format(number)

		if err := s.orders.Create(ctx, tx, order); err != nil {
			return err
		}

		activity := domain.NewActivity(domain.ActivityOrderCreated, actor, domain.ContextOnline,
			fmt.Sprintf("Pedido %s criado para %s", order.OrderNumber, order.CustomerName),
			map[string]any{
				"order_id":     order.ID,
				"order_number": order.OrderNumber,
				"total_amount": order.TotalAmount.StringFixed(2),
			})
		return s.activities.Create(ctx, tx, activity)
	})
	if err != nil {
		return nil, NewOrderingError(err, apiErrors.ErrDatabaseOperation, nil)
	}

	log.ForContext(ctx).WithFields(log.Fields{
		"order_number": order.OrderNumber,
		"total_amount": order.TotalAmount.StringFixed(2),
	}).Info("Pedido criado")

	return order, nil
}

func (s *Service) ListOrders(ctx context.Context, filter domain.OrderFilter) ([]*domain.Order, error) {
	if filter.Status != "" && !filter.Status.IsKnown() {
		return nil, NewOrderingError(ErrInvalidStatus, apiErrors.ErrInvalidRequest, map[string]any{"status": filter.Status})
	}

	orders, err := s.orders.List(ctx, filter)
	if err != nil {
		return nil, NewOrderingError(err, apiErrors.ErrDatabaseOperation, nil)
	}
	return orders, nil
}

func (s *Service) GetOrder(ctx context.Context, id int64) (*domain.Order, error) {
	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, NewOrderingError(ErrOrderNotFound, apiErrors.ErrNotFound, map[string]any{"order_id": id})
		}
		return nil, NewOrderingError(err, apiErrors.ErrDatabaseOperation, nil)
	}
	return order, nil
}

// UpdateStatus aplica qualquer status conhecido, exceto returned. A primeira
// entrada em delivered baixa o estoque das linhas e marca stock_deducted, com a
// linha do pedido travada até o fim da transação.
func (s *Service) UpdateStatus(ctx context.Context, actor domain.Actor, id int64, req *domain.UpdateOrderStatusRequest) (*domain.Order, error) {
	if err := validation.Struct(req); err != nil {
		return nil, NewOrderingError(ErrInvalidStatus, apiErrors.ErrMissingRequiredData, err)
	}
	if req.Status == domain.OrderReturned {
		return nil, NewOrderingError(ErrReturnedViaApproval, apiErrors.ErrInvalidRequest, nil)
	}

	var (
		order    *domain.Order
		previous domain.OrderStatus
		deducted bool
	)
	err := s.tx.RunInTransaction(ctx, func(tx *sql.Tx) error {
		var err error
		order, err = s.orders.GetForUpdate(ctx, tx, id)
		if err != nil {
			return err
		}
		if order.Status == domain.OrderReturned {
			return ErrOrderReturned
		}

		previous = order.Status
		order.Status = req.Status
		if req.TrackingNumber != nil {
			order.TrackingNumber = req.TrackingNumber
		}

		if req.Status == domain.OrderDelivered && !order.StockDeducted {
			for _, movement := range domain.MovementsFromLineItems(order.Items) {
				if err := s.inventory.Decrement(ctx, tx, movement, s.allowOversell); err != nil {
					return err
				}
			}
			deliveredAt := s.now()
			order.StockDeducted = true
			order.DeliveredAt = &deliveredAt
			deducted = true
		}

		if err := s.orders.UpdateStatus(ctx, tx, order); err != nil {
			return err
		}

		activity := domain.NewActivity(domain.ActivityStatusUpdated, actor, domain.ContextOnline,
			fmt.Sprintf("Pedido %s: %s -> %s", order.OrderNumber, previous, order.Status),
			map[string]any{
				"order_id":        order.ID,
				"order_number":    order.OrderNumber,
				"previous_status": previous,
				"status":          order.Status,
				"stock_deducted":  deducted,
			})
		return s.activities.Create(ctx, tx, activity)
	})
	if err != nil {
		return nil, mapStatusError(ctx, id, err)
	}

	log.ForContext(ctx).WithFields(log.Fields{
		"order_number":   order.OrderNumber,
		"status":         order.Status,
		"stock_deducted": deducted,
	}).Info("Status do pedido atualizado")

	return order, nil
}

func mapStatusError(ctx context.Context, id int64, err error) error {
	var stockErr *repository.StockError
	switch {
	case errors.As(err, &stockErr):
		log.ForContext(ctx).WithFields(log.Fields{
			"order_id":   id,
			"product_id": stockErr.ProductID,
			"available":  stockErr.Available,
		}).Warn("Entrega recusada por falta de estoque")
		return NewOrderingError(ErrInsufficientStock, apiErrors.ErrInsufficientStock, stockErr.Details())
	case errors.Is(err, repository.ErrNotFound):
		return NewOrderingError(ErrOrderNotFound, apiErrors.ErrNotFound, map[string]any{"order_id": id})
	case errors.Is(err, ErrOrderReturned):
		return NewOrderingError(ErrOrderReturned, apiErrors.ErrAlreadyProcessed, map[string]any{"order_id": id})
	default:
		return NewOrderingError(err, apiErrors.ErrDatabaseOperation, nil)
	}
}
