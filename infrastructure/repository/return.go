package repository

import (
	"context"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/laroza/pos-api/infrastructure/database/postgres"
	"github.com/laroza/pos-api/internal/domain"
	"github.com/lib/pq"
	"github.com/pkg/errors"
)

const (
	returnsTable     = "returns_exchanges"
	returnItemsTable = "return_items"
)

type ReturnRepository interface {
	Create(ctx context.Context, q postgres.Queryer, exchange *domain.ReturnExchange) error
	List(ctx context.Context, filter domain.ReturnFilter) ([]*domain.ReturnExchange, error)
	GetByID(ctx context.Context, id int64) (*domain.ReturnExchange, error)
	GetForUpdate(ctx context.Context, q postgres.Queryer, id int64) (*domain.ReturnExchange, error)
	// Approve marca uma devolução pendente como aprovada
	Approve(ctx context.Context, q postgres.Queryer, id int64, approvedBy int64, at time.Time) error
	// ReturnedQuantities soma, por item de origem, as quantidades já incluídas
	// em devoluções da venda ou do pedido
	ReturnedQuantities(ctx context.Context, q postgres.Queryer, source domain.ReturnSource, sourceID int64) (map[int64]int, error)
	// RefundedQuantities soma, por item do pedido, só as quantidades de
	// reembolsos já aprovados
	RefundedQuantities(ctx context.Context, q postgres.Queryer, orderID int64) (map[int64]int, error)
}

type returnRepository struct {
	conn *postgres.Connection
}

func NewReturnRepository(conn *postgres.Connection) ReturnRepository {
	return &returnRepository{
		conn: conn,
	}
}

func (r *returnRepository) selectReturns() squirrel.SelectBuilder {
	return squirrel.
		Select(
			"r.id", "r.type", "r.exchange_mode", "r.sale_id", "r.order_id", "r.status",
			"r.employee_id", "e.name", "r.approved_by", "r.approved_at", "r.notes", "r.created_at",
		).
		From("returns_exchanges r").
		Join("employees e ON e.id = r.employee_id").
		PlaceholderFormat(squirrel.Dollar)
}

func (r *returnRepository) Create(ctx context.Context, q postgres.Queryer, exchange *domain.ReturnExchange) error {
	sqlQuery, args, err := squirrel.
		Insert(returnsTable).
		Columns("type", "exchange_mode", "sale_id", "order_id", "status", "employee_id", "notes").
		Values(exchange.Type, exchange.ExchangeMode, exchange.SaleID, exchange.OrderID, exchange.Status, exchange.EmployeeID, exchange.Notes).
		Suffix("RETURNING id, created_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return errors.Wrap(err, "erro ao construir a query")
	}

	if err := q.QueryRowContext(ctx, sqlQuery, args...).Scan(&exchange.ID, &exchange.CreatedAt); err != nil {
		return wrapError(err, "erro ao registrar devolução")
	}

	for i := range exchange.Items {
		item := &exchange.Items[i]
		item.ReturnID = exchange.ID

		itemQuery, itemArgs, err := squirrel.
			Insert(returnItemsTable).
			Columns("return_id", "source_item_id", "product_id", "color_name", "size_label", "quantity").
			Values(exchange.ID, item.SourceItemID, item.ProductID, item.ColorName, item.SizeLabel, item.Quantity).
			Suffix("RETURNING id").
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return errors.Wrap(err, "erro ao construir a query")
		}

		if err := q.QueryRowContext(ctx, itemQuery, itemArgs...).Scan(&item.ID); err != nil {
			return wrapError(err, "erro ao inserir item da devolução")
		}
	}

	return nil
}

func (r *returnRepository) List(ctx context.Context, filter domain.ReturnFilter) ([]*domain.ReturnExchange, error) {
	queryBuilder := r.selectReturns().OrderBy("r.created_at DESC", "r.id DESC")

	if filter.Status != "" {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"r.status": filter.Status})
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
		return nil, wrapError(err, "erro ao listar devoluções")
	}
	defer rows.Close()

	returns := make([]*domain.ReturnExchange, 0)
	ids := make([]int64, 0)
	for rows.Next() {
		ret, err := scanReturn(rows)
		if err != nil {
			return nil, errors.Wrap(err, "erro ao ler devolução")
		}
		returns = append(returns, ret)
		ids = append(ids, ret.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "erro ao iterar devoluções")
	}

	items, err := r.loadItems(ctx, r.conn, ids)
	if err != nil {
		return nil, err
	}
	for _, ret := range returns {
		ret.Items = returnItemsOrEmpty(items[ret.ID])
	}

	return returns, nil
}

func (r *returnRepository) GetByID(ctx context.Context, id int64) (*domain.ReturnExchange, error) {
	return r.get(ctx, r.conn, id, false)
}

func (r *returnRepository) GetForUpdate(ctx context.Context, q postgres.Queryer, id int64) (*domain.ReturnExchange, error) {
	return r.get(ctx, q, id, true)
}

func (r *returnRepository) get(ctx context.Context, q postgres.Queryer, id int64, lock bool) (*domain.ReturnExchange, error) {
	queryBuilder := r.selectReturns().Where(squirrel.Eq{"r.id": id})
	if lock {
		queryBuilder = queryBuilder.Suffix("FOR UPDATE OF r")
	}

	sqlQuery, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir a query")
	}

	ret, err := scanReturn(q.QueryRowContext(ctx, sqlQuery, args...))
	if err != nil {
		return nil, wrapError(err, "erro ao buscar devolução")
	}

	items, err := r.loadItems(ctx, q, []int64{id})
	if err != nil {
		return nil, err
	}
	ret.Items = returnItemsOrEmpty(items[id])

	return ret, nil
}

func (r *returnRepository) loadItems(ctx context.Context, q postgres.Queryer, ids []int64) (map[int64][]domain.ReturnItem, error) {
	result := make(map[int64][]domain.ReturnItem, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	sqlQuery, args, err := squirrel.
		Select("id", "return_id", "source_item_id", "product_id", "color_name", "size_label", "quantity").
		From(returnItemsTable).
		Where(squirrel.Expr("return_id = ANY(?)", pq.Array(ids))).
		OrderBy("id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir a query")
	}

	rows, err := q.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, wrapError(err, "erro ao carregar itens da devolução")
	}
	defer rows.Close()

	for rows.Next() {
		var item domain.ReturnItem
		err := rows.Scan(&item.ID, &item.ReturnID, &item.SourceItemID, &item.ProductID,
			&item.ColorName, &item.SizeLabel, &item.Quantity)
		if err != nil {
			return nil, errors.Wrap(err, "erro ao ler item da devolução")
		}
		result[item.ReturnID] = append(result[item.ReturnID], item)
	}

	return result, rows.Err()
}

func (r *returnRepository) Approve(ctx context.Context, q postgres.Queryer, id int64, approvedBy int64, at time.Time) error {
	sqlQuery, args, err := squirrel.
		Update(returnsTable).
		Set("status", domain.ReturnApproved).
		Set("approved_by", approvedBy).
		Set("approved_at", at).
		Where(squirrel.Eq{"id": id, "status": domain.ReturnPending}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return errors.Wrap(err, "erro ao construir a query")
	}

	result, err := q.ExecContext(ctx, sqlQuery, args...)
	if err != nil {
		return wrapError(err, "erro ao aprovar devolução")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "erro ao verificar linhas afetadas")
	}
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *returnRepository) ReturnedQuantities(ctx context.Context, q postgres.Queryer, source domain.ReturnSource, sourceID int64) (map[int64]int, error) {
	sourceColumn := "r.sale_id"
	if source == domain.SourceOrder {
		sourceColumn = "r.order_id"
	}

	return sumReturnItems(ctx, q, squirrel.Eq{sourceColumn: sourceID})
}

func (r *returnRepository) RefundedQuantities(ctx context.Context, q postgres.Queryer, orderID int64) (map[int64]int, error) {
	return sumReturnItems(ctx, q, squirrel.Eq{
		"r.order_id": orderID,
		"r.type":     domain.ReturnTypeRefund,
		"r.status":   domain.ReturnApproved,
	})
}

func sumReturnItems(ctx context.Context, q postgres.Queryer, where squirrel.Sqlizer) (map[int64]int, error) {
	sqlQuery, args, err := squirrel.
		Select("ri.source_item_id", "SUM(ri.quantity)").
		From("return_items ri").
		Join("returns_exchanges r ON r.id = ri.return_id").
		Where(where).
		GroupBy("ri.source_item_id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir a query")
	}

	rows, err := q.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, wrapError(err, "erro ao somar quantidades devolvidas")
	}
	defer rows.Close()

	quantities := make(map[int64]int)
	for rows.Next() {
		var (
			itemID   int64
			quantity int
		)
		if err := rows.Scan(&itemID, &quantity); err != nil {
			return nil, errors.Wrap(err, "erro ao ler quantidade devolvida")
		}
		quantities[itemID] = quantity
	}

	return quantities, rows.Err()
}

func scanReturn(row rowScanner) (*domain.ReturnExchange, error) {
	var r domain.ReturnExchange
	err := row.Scan(
		&r.ID, &r.Type, &r.ExchangeMode, &r.SaleID, &r.OrderID, &r.Status,
		&r.EmployeeID, &r.EmployeeName, &r.ApprovedBy, &r.ApprovedAt, &r.Notes, &r.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func returnItemsOrEmpty(items []domain.ReturnItem) []domain.ReturnItem {
	if items == nil {
		return make([]domain.ReturnItem, 0)
	}
	return items
}
