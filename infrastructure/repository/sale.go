package repository

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/laroza/pos-api/infrastructure/database/postgres"
	"github.com/laroza/pos-api/internal/domain"
	"github.com/pkg/errors"
)

const (
	salesTable = "sales"
)

type SaleRepository interface {
	Create(ctx context.Context, q postgres.Queryer, sale *domain.Sale) error
	List(ctx context.Context, filter domain.SaleFilter) ([]*domain.Sale, error)
	GetByID(ctx context.Context, id int64) (*domain.Sale, error)
	// GetForUpdate bloqueia a venda até o fim da transação
	GetForUpdate(ctx context.Context, q postgres.Queryer, id int64) (*domain.Sale, error)
}

type saleRepository struct {
	conn *postgres.Connection
}

func NewSaleRepository(conn *postgres.Connection) SaleRepository {
	return &saleRepository{
		conn: conn,
	}
}

func (r *saleRepository) selectSales() squirrel.SelectBuilder {
	return squirrel.
		Select(
			"s.id", "s.invoice_number", "s.employee_id", "e.name", "s.store_type",
			"s.customer_name", "s.customer_phone", "s.payment_method", "s.tax_applied",
			"s.subtotal", "s.tax_amount", "s.total_amount", "s.created_at",
		).
		From("sales s").
		Join("employees e ON e.id = s.employee_id").
		PlaceholderFormat(squirrel.Dollar)
}

func (r *saleRepository) Create(ctx context.Context, q postgres.Queryer, sale *domain.Sale) error {
	sqlQuery, args, err := squirrel.
		Insert(salesTable).
		Columns("invoice_number", "employee_id", "store_type", "customer_name", "customer_phone",
			"payment_method", "tax_applied", "subtotal", "tax_amount", "total_amount").
		Values(sale.InvoiceNumber, sale.EmployeeID, sale.StoreType, sale.CustomerName, sale.CustomerPhone,
			sale.PaymentMethod, sale.TaxApplied, sale.Subtotal, sale.TaxAmount, sale.TotalAmount).
		Suffix("RETURNING id, created_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return errors.Wrap(err, "erro ao construir a query")
	}

	if err := q.QueryRowContext(ctx, sqlQuery, args...).Scan(&sale.ID, &sale.CreatedAt); err != nil {
		return wrapError(err, "erro ao registrar venda")
	}

	return saleItems.insert(ctx, q, sale.ID, sale.Items)
}

func (r *saleRepository) List(ctx context.Context, filter domain.SaleFilter) ([]*domain.Sale, error) {
	queryBuilder := r.selectSales().OrderBy("s.created_at DESC", "s.id DESC")

	if filter.StoreType.IsChannel() {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"s.store_type": filter.StoreType})
	}
	if filter.From != nil {
		queryBuilder = queryBuilder.Where(squirrel.GtOrEq{"s.created_at": *filter.From})
	}
	if filter.To != nil {
		queryBuilder = queryBuilder.Where(squirrel.Lt{"s.created_at": *filter.To})
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
		return nil, wrapError(err, "erro ao listar vendas")
	}
	defer rows.Close()

	sales := make([]*domain.Sale, 0)
	ids := make([]int64, 0)
	for rows.Next() {
		sale, err := scanSale(rows)
		if err != nil {
			return nil, errors.Wrap(err, "erro ao ler venda")
		}
		sales = append(sales, sale)
		ids = append(ids, sale.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "erro ao iterar vendas")
	}

	items, err := saleItems.load(ctx, r.conn, ids)
	if err != nil {
		return nil, err
	}
	for _, sale := range sales {
		sale.Items = itemsOrEmpty(items[sale.ID])
	}

	return sales, nil
}

func (r *saleRepository) GetByID(ctx context.Context, id int64) (*domain.Sale, error) {
	return r.get(ctx, r.conn, id, false)
}

func (r *saleRepository) GetForUpdate(ctx context.Context, q postgres.Queryer, id int64) (*domain.Sale, error) {
	return r.get(ctx, q, id, true)
}

func (r *saleRepository) get(ctx context.Context, q postgres.Queryer, id int64, lock bool) (*domain.Sale, error) {
	queryBuilder := r.selectSales().Where(squirrel.Eq{"s.id": id})
	if lock {
		queryBuilder = queryBuilder.Suffix("FOR UPDATE OF s")
	}

	sqlQuery, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir a query")
	}

	sale, err := scanSale(q.QueryRowContext(ctx, sqlQuery, args...))
	if err != nil {
		return nil, wrapError(err, "erro ao buscar venda")
	}

	items, err := saleItems.load(ctx, q, []int64{id})
	if err != nil {
		return nil, err
	}
	sale.Items = itemsOrEmpty(items[id])

	return sale, nil
}

func scanSale(row rowScanner) (*domain.Sale, error) {
	var s domain.Sale
	err := row.Scan(
		&s.ID, &s.InvoiceNumber, &s.EmployeeID, &s.EmployeeName, &s.StoreType,
		&s.CustomerName, &s.CustomerPhone, &s.PaymentMethod, &s.TaxApplied,
		&s.Subtotal, &s.TaxAmount, &s.TotalAmount, &s.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
