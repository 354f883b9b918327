package repository

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/laroza/pos-api/infrastructure/database/postgres"
	"github.com/laroza/pos-api/internal/domain"
	"github.com/pkg/errors"
)

const (
	ordersTable = "orders"
)

type OrderRepository interface {
	Create(ctx context.Context, q postgres.Queryer, order *domain.Order) error
	List(ctx context.Context, filter domain.OrderFilter) ([]*domain.Order, error)
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	GetForUpdate(ctx context.Context, q postgres.Queryer, id int64) (*domain.Order, error)
	// UpdateStatus grava status, rastreio, baixa de estoque e data de entrega
	UpdateStatus(ctx context.Context, q postgres.Queryer, order *domain.Order) error
}

type orderRepository struct {
	conn *postgres.Connection
}

func NewOrderRepository(conn *postgres.Connection) OrderRepository {
	return &orderRepository{
		conn: conn,
	}
}

func (r *orderRepository) selectOrders() squirrel.SelectBuilder {
	return squirrel.
		Select(
			"o.id", "o.order_number", "o.customer_name", "o.phone", "o.region", "o.address",
			"o.tracking_number", "o.payment_method", "o.status", "o.stock_deducted", "o.total_amount",
			"o.employee_id", "e.name", "o.created_at", "o.updated_at", "o.delivered_at",
		).
		From("orders o").
		Join("employees e ON e.id = o.employee_id").
		PlaceholderFormat(squirrel.Dollar)
}

func (r *orderRepository) Create(ctx context.Context, q postgres.Queryer, order *domain.Order) error {
	sqlQuery, args, err := squirrel.
		Insert(ordersTable).
		Columns("order_number", "customer_name", "phone", "region", "address", "tracking_number",
			"payment_method", "status", "total_amount", "employee_id").
		Values(order.OrderNumber, order.CustomerName, order.Phone, order.Region, order.Address, order.TrackingNumber,
			order.PaymentMethod, order.Status, order.TotalAmount, order.EmployeeID).
		Suffix("RETURNING id, created_at, updated_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return errors.Wrap(err, "erro ao construir a query")
	}

	err = q.QueryRowContext(ctx, sqlQuery, args...).Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return wrapError(err, "erro ao criar pedido")
	}

	return orderItems.insert(ctx, q, order.ID, order.Items)
}

func (r *orderRepository) List(ctx context.Context, filter domain.OrderFilter) ([]*domain.Order, error) {
	queryBuilder := r.selectOrders().OrderBy("o.created_at DESC", "o.id DESC")

	if filter.Status != "" {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"o.status": filter.Status})
	}
	if filter.Limit > 0 {
		queryBuilder = queryBuilder.Limit(uint64(filter.Limit))
	}

	sqlQuery, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir a query")
	}

	rows, err := r.conn.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, wrapError(err, "erro ao listar pedidos")
	}
	defer rows.Close()

	orders := make([]*domain.Order, 0)
	ids := make([]int64, 0)
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, errors.Wrap(err, "erro ao ler pedido")
		}
		orders = append(orders, order)
		ids = append(ids, order.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "erro ao iterar pedidos")
	}

	items, err := orderItems.load(ctx, r.conn, ids)
	if err != nil {
		return nil, err
	}
	for _, order := range orders {
		order.Items = itemsOrEmpty(items[order.ID])
	}

	return orders, nil
}

func (r *orderRepository) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	return r.get(ctx, r.conn, id, false)
}

func (r *orderRepository) GetForUpdate(ctx context.Context, q postgres.Queryer, id int64) (*domain.Order, error) {
	return r.get(ctx, q, id, true)
}

func (r *orderRepository) get(ctx context.Context, q postgres.Queryer, id int64, lock bool) (*domain.Order, error) {
	queryBuilder := r.selectOrders().Where(squirrel.Eq{"o.id": id})
	if lock {
		queryBuilder = queryBuilder.Suffix("FOR UPDATE OF o")
	}

	sqlQuery, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir a query")
	}

	order, err := scanOrder(q.QueryRowContext(ctx, sqlQuery, args...))
	if err != nil {
		return nil, wrapError(err, "erro ao buscar pedido")
	}

	items, err := orderItems.load(ctx, q, []int64{id})
	if err != nil {
		return nil, err
	}
	order.Items = itemsOrEmpty(items[id])

	return order, nil
}

func (r *orderRepository) UpdateStatus(ctx context.Context, q postgres.Queryer, order *domain.Order) error {
	sqlQuery, args, err := squirrel.
		Update(ordersTable).
		Set("status", order.Status).
		Set("tracking_number", order.TrackingNumber).
		Set("stock_deducted", order.StockDeducted).
		Set("delivered_at", order.DeliveredAt).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": order.ID}).
		Suffix("RETURNING updated_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return errors.Wrap(err, "erro ao construir a query")
	}

	if err := q.QueryRowContext(ctx, sqlQuery, args...).Scan(&order.UpdatedAt); err != nil {
		return wrapError(err, "erro ao atualizar status do pedido")
	}

	return nil
}

func scanOrder(row rowScanner) (*domain.Order, error) {
	var o domain.Order
	err := row.Scan(
		&o.ID, &o.OrderNumber, &o.CustomerName, &o.Phone, &o.Region, &o.Address,
		&o.TrackingNumber, &o.PaymentMethod, &o.Status, &o.StockDeducted, &o.TotalAmount,
		&o.EmployeeID, &o.EmployeeName, &o.CreatedAt, &o.UpdatedAt, &o.DeliveredAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}
