package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type ReportPeriod string

const (
	PeriodDaily   ReportPeriod = "daily"
	PeriodWeekly  ReportPeriod = "weekly"
	PeriodMonthly ReportPeriod = "monthly"
)

// Range retorna o intervalo [início, fim) do período que contém a data.
// Semanas começam na data informada; meses no primeiro dia do mês.
func (p ReportPeriod) Range(date time.Time) (time.Time, time.Time, bool) {
	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	switch p {
	case PeriodDaily:
		return start, start.AddDate(0, 0, 1), true
	case PeriodWeekly:
		return start, start.AddDate(0, 0, 7), true
	case PeriodMonthly:
		first := time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, date.Location())
		return first, first.AddDate(0, 1, 0), true
	default:
		return time.Time{}, time.Time{}, false
	}
}

type DashboardStats struct {
	Context           Context         `json:"context"`
	TotalProducts     int             `json:"total_products"`
	TodayTransactions int             `json:"today_transactions"`
	TodayRevenue      decimal.Decimal `json:"today_revenue"`
	PendingOrders     int             `json:"pending_orders"`
	LowStockVariants  int             `json:"low_stock_variants"`
}

type TopProduct struct {
	ProductID    int64           `json:"product_id"`
	ProductCode  string          `json:"product_code"`
	Brand        *string         `json:"brand"`
	ModelNo      *string         `json:"model_no"`
	QuantitySold int             `json:"quantity_sold"`
	Revenue      decimal.Decimal `json:"revenue"`
}

type PaymentTotal struct {
	Method  PaymentMethod   `json:"method"`
	Count   int             `json:"count"`
	Revenue decimal.Decimal `json:"revenue"`
}

// ChannelSummary é o agregado de um canal num intervalo
type ChannelSummary struct {
	TransactionCount int
	Revenue          decimal.Decimal
	ItemsSold        int
}

type SalesReport struct {
	Context           Context         `json:"context"`
	Period            ReportPeriod    `json:"period"`
	From              time.Time       `json:"from"`
	To                time.Time       `json:"to"`
	TransactionCount  int             `json:"transaction_count"`
	Revenue           decimal.Decimal `json:"revenue"`
	AverageOrderValue decimal.Decimal `json:"average_order_value"`
	ItemsSold         int             `json:"items_sold"`
	PaymentBreakdown  []PaymentTotal  `json:"payment_breakdown"`
	TopProducts       []TopProduct    `json:"top_products"`
}

type ReportRange struct {
	From *time.Time
	To   *time.Time
}

type TopProductsFilter struct {
	Context Context
	ReportRange
	Limit int
}

// AverageOrderValue é receita / transações, zero quando não há transações
func AverageOrderValue(revenue decimal.Decimal, count int) decimal.Decimal {
	if count == 0 {
		return decimal.Zero
	}
	return revenue.Div(decimal.NewFromInt(int64(count))).Round(2)
}
