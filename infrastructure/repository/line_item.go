package repository

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/laroza/pos-api/infrastructure/database/postgres"
	"github.com/laroza/pos-api/internal/domain"
	"github.com/lib/pq"
	"github.com/pkg/errors"
)

// rowScanner é satisfeito por *sql.Row e *sql.Rows
type rowScanner interface {
	Scan(dest ...any) error
}

// lineItemTable descreve uma tabela de linhas (sale_items, order_items) e a
// coluna que aponta para o documento pai
type lineItemTable struct {
	name      string
	parentKey string
}

var (
	saleItems  = lineItemTable{name: "sale_items", parentKey: "sale_id"}
	orderItems = lineItemTable{name: "order_items", parentKey: "order_id"}
)

func (t lineItemTable) insert(ctx context.Context, q postgres.Queryer, parentID int64, items []domain.LineItem) error {
	for i := range items {
		item := &items[i]

		sqlQuery, args, err := squirrel.
			Insert(t.name).
			Columns(t.parentKey, "product_id", "color_name", "size_label", "quantity", "unit_price").
			Values(parentID, item.ProductID, item.ColorName, item.SizeLabel, item.Quantity, item.UnitPrice).
			Suffix("RETURNING id").
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return errors.Wrap(err, "erro ao construir a query")
		}

		if err := q.QueryRowContext(ctx, sqlQuery, args...).Scan(&item.ID); err != nil {
			return wrapError(err, "erro ao inserir item em "+t.name)
		}
	}

	return nil
}

// load carrega as linhas de vários documentos, agrupadas pelo id do pai
func (t lineItemTable) load(ctx context.Context, q postgres.Queryer, parentIDs []int64) (map[int64][]domain.LineItem, error) {
	result := make(map[int64][]domain.LineItem, len(parentIDs))
	if len(parentIDs) == 0 {
		return result, nil
	}

	sqlQuery, args, err := squirrel.
		Select("i.id", "i."+t.parentKey, "i.product_id", "p.product_code", "i.color_name", "i.size_label", "i.quantity", "i.unit_price").
		From(t.name + " i").
		Join("products p ON p.id = i.product_id").
		Where(squirrel.Expr("i."+t.parentKey+" = ANY(?)", pq.Array(parentIDs))).
		OrderBy("i.id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir a query")
	}

	rows, err := q.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, wrapError(err, "erro ao carregar itens de "+t.name)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			item     domain.LineItem
			parentID int64
		)
		err := rows.Scan(&item.ID, &parentID, &item.ProductID, &item.ProductCode,
			&item.ColorName, &item.SizeLabel, &item.Quantity, &item.UnitPrice)
		if err != nil {
			return nil, errors.Wrap(err, "erro ao ler item")
		}
		result[parentID] = append(result[parentID], item)
	}

	return result, rows.Err()
}

func itemsOrEmpty(items []domain.LineItem) []domain.LineItem {
	if items == nil {
		return make([]domain.LineItem, 0)
	}
	return items
}
