package repository

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/laroza/pos-api/infrastructure/database/postgres"
	"github.com/laroza/pos-api/internal/domain"
	"github.com/pkg/errors"
)

const (
	productColorsTable = "product_colors"
	productSizesTable  = "product_sizes"
)

// InventoryRepository ajusta o estoque das variantes (produto, cor, tamanho)
type InventoryRepository interface {
	Decrement(ctx context.Context, q postgres.Queryer, movement domain.StockMovement, allowOversell bool) error
	Increment(ctx context.Context, q postgres.Queryer, movement domain.StockMovement) error
	LowStock(ctx context.Context, threshold int, limit int) ([]domain.LowStockVariant, error)
}

type inventoryRepository struct {
	conn *postgres.Connection
}

func NewInventoryRepository(conn *postgres.Connection) InventoryRepository {
	return &inventoryRepository{
		conn: conn,
	}
}

func colorIDSubquery(productID int64, colorName string) squirrel.Sqlizer {
	return squirrel.Expr(
		"color_id = (SELECT id FROM product_colors WHERE product_id = ? AND color_name = ?)",
		productID, colorName,
	)
}

// Decrement baixa o estoque da variante. Sem oversell a baixa só acontece se
// houver quantidade suficiente; com oversell o estoque é limitado a zero.
func (r *inventoryRepository) Decrement(ctx context.Context, q postgres.Queryer, movement domain.StockMovement, allowOversell bool) error {
	queryBuilder := squirrel.
		Update(productSizesTable).
		Where(squirrel.Eq{"size_label": movement.SizeLabel}).
		Where(colorIDSubquery(movement.ProductID, movement.ColorName)).
		PlaceholderFormat(squirrel.Dollar)

	if allowOversell {
		queryBuilder = queryBuilder.Set("quantity", squirrel.Expr("GREATEST(quantity - ?, 0)", movement.Quantity))
	} else {
		queryBuilder = queryBuilder.
			Set("quantity", squirrel.Expr("quantity - ?", movement.Quantity)).
			Where(squirrel.GtOrEq{"quantity": movement.Quantity})
	}

	sqlQuery, args, err := queryBuilder.ToSql()
	if err != nil {
		return errors.Wrap(err, "erro ao construir a query")
	}

	result, err := q.ExecContext(ctx, sqlQuery, args...)
	if err != nil {
		return wrapError(err, "erro ao baixar estoque")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "erro ao verificar linhas afetadas")
	}
	if affected > 0 || allowOversell {
		return nil
	}

	available, err := r.available(ctx, q, movement)
	if err != nil {
		return err
	}

	return &StockError{
		ProductID: movement.ProductID,
		ColorName: movement.ColorName,
		SizeLabel: movement.SizeLabel,
		Requested: movement.Quantity,
		Available: available,
	}
}

func (r *inventoryRepository) available(ctx context.Context, q postgres.Queryer, movement domain.StockMovement) (int, error) {
	sqlQuery, args, err := squirrel.
		Select("COALESCE(SUM(quantity), 0)").
		From(productSizesTable).
		Where(squirrel.Eq{"size_label": movement.SizeLabel}).
		Where(colorIDSubquery(movement.ProductID, movement.ColorName)).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, errors.Wrap(err, "erro ao construir a query")
	}

	var available int
	if err := q.QueryRowContext(ctx, sqlQuery, args...).Scan(&available); err != nil {
		return 0, wrapError(err, "erro ao consultar estoque")
	}

	return available, nil
}

// Increment devolve unidades ao estoque, criando a cor e o tamanho se a
// variante tiver sido removida do catálogo depois da venda
func (r *inventoryRepository) Increment(ctx context.Context, q postgres.Queryer, movement domain.StockMovement) error {
	colorQuery, colorArgs, err := squirrel.
		Insert(productColorsTable).
		Columns("product_id", "color_name").
		Values(movement.ProductID, movement.ColorName).
		Suffix("ON CONFLICT (product_id, color_name) DO UPDATE SET color_name = EXCLUDED.color_name RETURNING id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return errors.Wrap(err, "erro ao construir a query")
	}

	var colorID int64
	if err := q.QueryRowContext(ctx, colorQuery, colorArgs...).Scan(&colorID); err != nil {
		return wrapError(err, "erro ao garantir cor do produto")
	}

	sizeQuery, sizeArgs, err := squirrel.
		Insert(productSizesTable).
		Columns("color_id", "size_label", "quantity").
		Values(colorID, movement.SizeLabel, movement.Quantity).
		Suffix("ON CONFLICT (color_id, size_label) DO UPDATE SET quantity = product_sizes.quantity + EXCLUDED.quantity").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return errors.Wrap(err, "erro ao construir a query")
	}

	if _, err := q.ExecContext(ctx, sizeQuery, sizeArgs...); err != nil {
		return wrapError(err, "erro ao repor estoque")
	}

	return nil
}

func (r *inventoryRepository) LowStock(ctx context.Context, threshold int, limit int) ([]domain.LowStockVariant, error) {
	queryBuilder := squirrel.
		Select("p.id", "p.product_code", "pc.color_name", "ps.size_label", "ps.quantity").
		From("product_sizes ps").
		Join("product_colors pc ON pc.id = ps.color_id").
		Join("products p ON p.id = pc.product_id").
		Where(squirrel.Lt{"ps.quantity": threshold}).
		OrderBy("ps.quantity ASC", "p.product_code ASC", "pc.color_name ASC", "ps.size_label ASC").
		PlaceholderFormat(squirrel.Dollar)

	if limit > 0 {
		queryBuilder = queryBuilder.Limit(uint64(limit))
	}

	sqlQuery, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir a query")
	}

	rows, err := r.conn.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, wrapError(err, "erro ao listar estoque baixo")
	}
	defer rows.Close()

	variants := make([]domain.LowStockVariant, 0)
	for rows.Next() {
		var v domain.LowStockVariant
		if err := rows.Scan(&v.ProductID, &v.ProductCode, &v.ColorName, &v.SizeLabel, &v.Quantity); err != nil {
			return nil, errors.Wrap(err, "erro ao ler estoque baixo")
		}
		variants = append(variants, v)
	}

	return variants, rows.Err()
}
