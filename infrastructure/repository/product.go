package repository

import (
	"context"
	"database/sql"

	"github.com/Masterminds/squirrel"
	"github.com/laroza/pos-api/infrastructure/database/postgres"
	"github.com/laroza/pos-api/internal/domain"
	"github.com/lib/pq"
	"github.com/pkg/errors"
)

const (
	productsTable = "products"
)

var productColumns = []string{
	"id", "product_code", "model_no", "brand", "product_type",
	"store_price", "online_price", "specs", "main_image_url",
	"created_at", "updated_at",
}

type ProductRepository interface {
	List(ctx context.Context, filter domain.ProductFilter) ([]*domain.Product, error)
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	Create(ctx context.Context, q postgres.Queryer, product *domain.Product) error
	Update(ctx context.Context, q postgres.Queryer, product *domain.Product) error
	Delete(ctx context.Context, q postgres.Queryer, id int64) error
}

type productRepository struct {
	conn *postgres.Connection
}

func NewProductRepository(conn *postgres.Connection) ProductRepository {
	return &productRepository{
		conn: conn,
	}
}

func (r *productRepository) List(ctx context.Context, filter domain.ProductFilter) ([]*domain.Product, error) {
	queryBuilder := squirrel.
		Select(productColumns...).
		From(productsTable).
		OrderBy("created_at DESC", "id DESC").
		PlaceholderFormat(squirrel.Dollar)

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		queryBuilder = queryBuilder.Where(squirrel.Or{
			squirrel.ILike{"product_code": pattern},
			squirrel.ILike{"model_no": pattern},
			squirrel.ILike{"brand": pattern},
			squirrel.ILike{"product_type": pattern},
		})
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
		return nil, wrapError(err, "erro ao listar produtos")
	}
	defer rows.Close()

	products := make([]*domain.Product, 0)
	ids := make([]int64, 0)
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, errors.Wrap(err, "erro ao ler produto")
		}
		products = append(products, product)
		ids = append(ids, product.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "erro ao iterar produtos")
	}

	variants, err := r.loadVariants(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, product := range products {
		product.Colors = variants[product.ID]
	}

	return products, nil
}

func (r *productRepository) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	sqlQuery, args, err := squirrel.
		Select(productColumns...).
		From(productsTable).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir a query")
	}

	product, err := scanProduct(r.conn.QueryRowContext(ctx, sqlQuery, args...))
	if err != nil {
		return nil, wrapError(err, "erro ao buscar produto")
	}

	variants, err := r.loadVariants(ctx, []int64{id})
	if err != nil {
		return nil, err
	}
	product.Colors = variants[id]

	return product, nil
}

// loadVariants carrega cores e tamanhos de vários produtos numa única query
func (r *productRepository) loadVariants(ctx context.Context, ids []int64) (map[int64][]domain.ProductColor, error) {
	result := make(map[int64][]domain.ProductColor, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	sqlQuery, args, err := squirrel.
		Select("pc.id", "pc.product_id", "pc.color_name", "pc.color_swatch_url", "ps.id", "ps.size_label", "ps.quantity").
		From("product_colors pc").
		LeftJoin("product_sizes ps ON ps.color_id = pc.id").
		Where(squirrel.Expr("pc.product_id = ANY(?)", pq.Array(ids))).
		OrderBy("pc.product_id", "pc.id", "ps.id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir a query")
	}

	rows, err := r.conn.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, wrapError(err, "erro ao carregar variantes")
	}
	defer rows.Close()

	for rows.Next() {
		var (
			color     domain.ProductColor
			sizeID    sql.NullInt64
			sizeLabel sql.NullString
			quantity  sql.NullInt64
		)
		if err := rows.Scan(&color.ID, &color.ProductID, &color.ColorName, &color.ColorSwatchURL, &sizeID, &sizeLabel, &quantity); err != nil {
			return nil, errors.Wrap(err, "erro ao ler variante")
		}

		colors := result[color.ProductID]
		if n := len(colors); n == 0 || colors[n-1].ID != color.ID {
			color.Sizes = make([]domain.ProductSize, 0)
			colors = append(colors, color)
		}
		if sizeID.Valid {
			last := &colors[len(colors)-1]
			last.Sizes = append(last.Sizes, domain.ProductSize{
				ID:        sizeID.Int64,
				ColorID:   color.ID,
				SizeLabel: sizeLabel.String,
				Quantity:  int(quantity.Int64),
			})
		}
		result[color.ProductID] = colors
	}

	return result, rows.Err()
}

func (r *productRepository) Create(ctx context.Context, q postgres.Queryer, product *domain.Product) error {
	sqlQuery, args, err := squirrel.
		Insert(productsTable).
		Columns("product_code", "model_no", "brand", "product_type", "store_price", "online_price", "specs", "main_image_url").
		Values(product.ProductCode, product.ModelNo, product.Brand, product.ProductType,
			product.StorePrice, product.OnlinePrice, product.Specs, product.MainImageURL).
		Suffix("RETURNING id, created_at, updated_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return errors.Wrap(err, "erro ao construir a query")
	}

	err = q.QueryRowContext(ctx, sqlQuery, args...).Scan(&product.ID, &product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		return wrapError(err, "erro ao criar produto")
	}

	return r.insertVariants(ctx, q, product)
}

// Update grava os campos do produto e substitui todas as variantes
func (r *productRepository) Update(ctx context.Context, q postgres.Queryer, product *domain.Product) error {
	sqlQuery, args, err := squirrel.
		Update(productsTable).
		Set("product_code", product.ProductCode).
		Set("model_no", product.ModelNo).
		Set("brand", product.Brand).
		Set("product_type", product.ProductType).
		Set("store_price", product.StorePrice).
		Set("online_price", product.OnlinePrice).
		Set("specs", product.Specs).
		Set("main_image_url", product.MainImageURL).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": product.ID}).
		Suffix("RETURNING created_at, updated_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return errors.Wrap(err, "erro ao construir a query")
	}

	err = q.QueryRowContext(ctx, sqlQuery, args...).Scan(&product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		return wrapError(err, "erro ao atualizar produto")
	}

	deleteQuery, deleteArgs, err := squirrel.
		Delete(productColorsTable).
		Where(squirrel.Eq{"product_id": product.ID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return errors.Wrap(err, "erro ao construir a query")
	}

	if _, err := q.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return wrapError(err, "erro ao remover variantes")
	}

	return r.insertVariants(ctx, q, product)
}

func (r *productRepository) insertVariants(ctx context.Context, q postgres.Queryer, product *domain.Product) error {
	for i := range product.Colors {
		color := &product.Colors[i]
		color.ProductID = product.ID

		colorQuery, colorArgs, err := squirrel.
			Insert(productColorsTable).
			Columns("product_id", "color_name", "color_swatch_url").
			Values(product.ID, color.ColorName, color.ColorSwatchURL).
			Suffix("RETURNING id").
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return errors.Wrap(err, "erro ao construir a query")
		}

		if err := q.QueryRowContext(ctx, colorQuery, colorArgs...).Scan(&color.ID); err != nil {
			return wrapError(err, "erro ao inserir cor "+color.ColorName)
		}

		for j := range color.Sizes {
			size := &color.Sizes[j]
			size.ColorID = color.ID

			sizeQuery, sizeArgs, err := squirrel.
				Insert(productSizesTable).
				Columns("color_id", "size_label", "quantity").
				Values(color.ID, size.SizeLabel, size.Quantity).
				Suffix("RETURNING id").
				PlaceholderFormat(squirrel.Dollar).
				ToSql()
			if err != nil {
				return errors.Wrap(err, "erro ao construir a query")
			}

			if err := q.QueryRowContext(ctx, sizeQuery, sizeArgs...).Scan(&size.ID); err != nil {
				return wrapError(err, "erro ao inserir tamanho "+size.SizeLabel)
			}
		}
	}

	return nil
}

func (r *productRepository) Delete(ctx context.Context, q postgres.Queryer, id int64) error {
	sqlQuery, args, err := squirrel.
		Delete(productsTable).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return errors.Wrap(err, "erro ao construir a query")
	}

	result, err := q.ExecContext(ctx, sqlQuery, args...)
	if err != nil {
		return wrapError(err, "erro ao excluir produto")
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

func scanProduct(row rowScanner) (*domain.Product, error) {
	var p domain.Product
	err := row.Scan(
		&p.ID, &p.ProductCode, &p.ModelNo, &p.Brand, &p.ProductType,
		&p.StorePrice, &p.OnlinePrice, &p.Specs, &p.MainImageURL,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.Colors = make([]domain.ProductColor, 0)
	return &p, nil
}
