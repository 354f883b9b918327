package repository

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/laroza/pos-api/infrastructure/database/postgres"
	"github.com/laroza/pos-api/internal/domain"
	"github.com/pkg/errors"
)

// ReportRepository agrega vendas e pedidos por contexto. O canal boutique lê as
// vendas de balcão; o online lê os pedidos que contam como receita e as vendas
// registradas com store_type online; all junta os dois num único agregado.
type ReportRepository interface {
	CountProducts(ctx context.Context) (int, error)
	CountPendingOrders(ctx context.Context) (int, error)
	CountLowStockVariants(ctx context.Context, threshold int) (int, error)
	ChannelSummary(ctx context.Context, channel domain.Context, rng domain.ReportRange) (domain.ChannelSummary, error)
	PaymentBreakdown(ctx context.Context, channel domain.Context, rng domain.ReportRange) ([]domain.PaymentTotal, error)
	TopProducts(ctx context.Context, channel domain.Context, rng domain.ReportRange, limit int) ([]domain.TopProduct, error)
}

type reportRepository struct {
	conn *postgres.Connection
}

func NewReportRepository(conn *postgres.Connection) ReportRepository {
	return &reportRepository{
		conn: conn,
	}
}

// documentSource é uma tabela de documentos (com seus itens) que alimenta um canal
type documentSource struct {
	header string
	items  lineItemTable
	filter squirrel.Sqlizer
}

var (
	boutiqueSales = documentSource{
		header: salesTable,
		items:  saleItems,
		filter: squirrel.Eq{"h.store_type": domain.ContextBoutique},
	}
	onlineSales = documentSource{
		header: salesTable,
		items:  saleItems,
		filter: squirrel.Eq{"h.store_type": domain.ContextOnline},
	}
	// pedidos cancelados ou devolvidos não contam como receita
	revenueOrders = documentSource{
		header: ordersTable,
		items:  orderItems,
		filter: squirrel.NotEq{"h.status": []string{string(domain.OrderCancelled), string(domain.OrderReturned)}},
	}
)

func sourcesFor(channel domain.Context) ([]documentSource, error) {
	switch channel {
	case domain.ContextBoutique:
		return []documentSource{boutiqueSales}, nil
	case domain.ContextOnline:
		return []documentSource{revenueOrders, onlineSales}, nil
	case domain.ContextAll, "":
		return []documentSource{boutiqueSales, revenueOrders, onlineSales}, nil
	default:
		return nil, fmt.Errorf("canal inválido para relatório: %q", channel)
	}
}

func (s documentSource) where(b squirrel.SelectBuilder, rng domain.ReportRange) squirrel.SelectBuilder {
	b = b.Where(s.filter)
	if rng.From != nil {
		b = b.Where(squirrel.GtOrEq{"h.created_at": *rng.From})
	}
	if rng.To != nil {
		b = b.Where(squirrel.Lt{"h.created_at": *rng.To})
	}
	return b
}

func (s documentSource) headerRows(rng domain.ReportRange) squirrel.SelectBuilder {
	return s.where(squirrel.Select("h.total_amount", "h.payment_method").From(s.header+" h"), rng)
}

func (s documentSource) itemRows(rng domain.ReportRange) squirrel.SelectBuilder {
	return s.where(
		squirrel.Select("i.product_id", "i.quantity", "i.unit_price").
			From(s.items.name+" i").
			Join(fmt.Sprintf("%s h ON h.id = i.%s", s.header, s.items.parentKey)),
		rng,
	)
}

// unionAll junta os selects com UNION ALL para servir de subquery no FROM
func unionAll(selects []squirrel.SelectBuilder) squirrel.SelectBuilder {
	union := selects[0]
	for _, next := range selects[1:] {
		union = union.SuffixExpr(squirrel.ConcatExpr("UNION ALL ", next))
	}
	return union
}

func channelHeaders(channel domain.Context, rng domain.ReportRange) (squirrel.SelectBuilder, error) {
	sources, err := sourcesFor(channel)
	if err != nil {
		return squirrel.SelectBuilder{}, err
	}
	selects := make([]squirrel.SelectBuilder, 0, len(sources))
	for _, source := range sources {
		selects = append(selects, source.headerRows(rng))
	}
	return unionAll(selects), nil
}

func channelItems(channel domain.Context, rng domain.ReportRange) (squirrel.SelectBuilder, error) {
	sources, err := sourcesFor(channel)
	if err != nil {
		return squirrel.SelectBuilder{}, err
	}
	selects := make([]squirrel.SelectBuilder, 0, len(sources))
	for _, source := range sources {
		selects = append(selects, source.itemRows(rng))
	}
	return unionAll(selects), nil
}

func (r *reportRepository) count(ctx context.Context, b squirrel.SelectBuilder, message string) (int, error) {
	sqlQuery, args, err := b.PlaceholderFormat(squirrel.Dollar).ToSql()
	if err != nil {
		return 0, errors.Wrap(err, "erro ao construir a query")
	}

	var total int
	if err := r.conn.QueryRowContext(ctx, sqlQuery, args...).Scan(&total); err != nil {
		return 0, wrapError(err, message)
	}

	return total, nil
}

func (r *reportRepository) CountProducts(ctx context.Context) (int, error) {
	return r.count(ctx, squirrel.Select("COUNT(*)").From(productsTable), "erro ao contar produtos")
}

func (r *reportRepository) CountPendingOrders(ctx context.Context) (int, error) {
	b := squirrel.Select("COUNT(*)").From(ordersTable).Where(squirrel.Eq{"status": domain.OrderPending})
	return r.count(ctx, b, "erro ao contar pedidos pendentes")
}

func (r *reportRepository) CountLowStockVariants(ctx context.Context, threshold int) (int, error) {
	b := squirrel.Select("COUNT(*)").From(productSizesTable).Where(squirrel.Lt{"quantity": threshold})
	return r.count(ctx, b, "erro ao contar variantes com estoque baixo")
}

func (r *reportRepository) ChannelSummary(ctx context.Context, channel domain.Context, rng domain.ReportRange) (domain.ChannelSummary, error) {
	var summary domain.ChannelSummary

	headers, err := channelHeaders(channel, rng)
	if err != nil {
		return summary, err
	}
	items, err := channelItems(channel, rng)
	if err != nil {
		return summary, err
	}

	headerQuery, headerArgs, err := squirrel.
		Select("COUNT(*)", "COALESCE(SUM(d.total_amount), 0)").
		FromSelect(headers, "d").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return summary, errors.Wrap(err, "erro ao construir a query")
	}

	err = r.conn.QueryRowContext(ctx, headerQuery, headerArgs...).Scan(&summary.TransactionCount, &summary.Revenue)
	if err != nil {
		return summary, wrapError(err, "erro ao resumir canal "+string(channel))
	}

	itemsQuery, itemsArgs, err := squirrel.
		Select("COALESCE(SUM(d.quantity), 0)").
		FromSelect(items, "d").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return summary, errors.Wrap(err, "erro ao construir a query")
	}

	if err := r.conn.QueryRowContext(ctx, itemsQuery, itemsArgs...).Scan(&summary.ItemsSold); err != nil {
		return summary, wrapError(err, "erro ao somar itens do canal "+string(channel))
	}

	return summary, nil
}

func (r *reportRepository) PaymentBreakdown(ctx context.Context, channel domain.Context, rng domain.ReportRange) ([]domain.PaymentTotal, error) {
	headers, err := channelHeaders(channel, rng)
	if err != nil {
		return nil, err
	}

	sqlQuery, args, err := squirrel.
		Select("d.payment_method", "COUNT(*)", "COALESCE(SUM(d.total_amount), 0)").
		FromSelect(headers, "d").
		GroupBy("d.payment_method").
		OrderBy("SUM(d.total_amount) DESC", "d.payment_method").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir a query")
	}

	rows, err := r.conn.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, wrapError(err, "erro ao agrupar por forma de pagamento")
	}
	defer rows.Close()

	totals := make([]domain.PaymentTotal, 0)
	for rows.Next() {
		var total domain.PaymentTotal
		if err := rows.Scan(&total.Method, &total.Count, &total.Revenue); err != nil {
			return nil, errors.Wrap(err, "erro ao ler total por pagamento")
		}
		totals = append(totals, total)
	}

	return totals, rows.Err()
}

// TopProducts agrega as linhas de todas as fontes do canal antes de ordenar e
// cortar, então um produto vendido nos dois canais soma as duas quantidades
func (r *reportRepository) TopProducts(ctx context.Context, channel domain.Context, rng domain.ReportRange, limit int) ([]domain.TopProduct, error) {
	items, err := channelItems(channel, rng)
	if err != nil {
		return nil, err
	}

	queryBuilder := squirrel.
		Select("p.id", "p.product_code", "p.brand", "p.model_no",
			"SUM(d.quantity)", "SUM(d.quantity * d.unit_price)").
		FromSelect(items, "d").
		Join("products p ON p.id = d.product_id").
		GroupBy("p.id", "p.product_code", "p.brand", "p.model_no").
		OrderBy("SUM(d.quantity) DESC", "SUM(d.quantity * d.unit_price) DESC", "p.id ASC")
	if limit > 0 {
		queryBuilder = queryBuilder.Limit(uint64(limit))
	}

	sqlQuery, args, err := queryBuilder.PlaceholderFormat(squirrel.Dollar).ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir a query")
	}

	rows, err := r.conn.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, wrapError(err, "erro ao listar produtos mais vendidos")
	}
	defer rows.Close()

	products := make([]domain.TopProduct, 0)
	for rows.Next() {
		var p domain.TopProduct
		if err := rows.Scan(&p.ProductID, &p.ProductCode, &p.Brand, &p.ModelNo, &p.QuantitySold, &p.Revenue); err != nil {
			return nil, errors.Wrap(err, "erro ao ler produto mais vendido")
		}
		products = append(products, p)
	}

	return products, rows.Err()
}
