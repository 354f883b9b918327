package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentMethod string

const (
	PaymentCash PaymentMethod = "cash"
	PaymentVisa PaymentMethod = "visa"
	PaymentCOD  PaymentMethod = "cod"
	PaymentBank PaymentMethod = "bank"
)

// LineItem é uma linha de venda ou de pedido
type LineItem struct {
	ID          int64           `json:"id"`
	ProductID   int64           `json:"product_id"`
	ProductCode string          `json:"product_code,omitempty"`
	ColorName   string          `json:"color_name"`
	SizeLabel   string          `json:"size_label"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

func (li LineItem) Total() decimal.Decimal {
	return li.UnitPrice.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

type Sale struct {
	ID            int64           `json:"id"`
	InvoiceNumber string          `json:"invoice_number"`
	EmployeeID    int64           `json:"employee_id"`
	EmployeeName  string          `json:"employee_name,omitempty"`
	StoreType     Context         `json:"store_type"`
	CustomerName  *string         `json:"customer_name"`
	CustomerPhone *string         `json:"customer_phone"`
	PaymentMethod PaymentMethod   `json:"payment_method"`
	TaxApplied    bool            `json:"tax_applied"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	TaxAmount     decimal.Decimal `json:"tax_amount"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	Items         []LineItem      `json:"items"`
	CreatedAt     time.Time       `json:"created_at"`
}

type LineItemRequest struct {
	ProductID int64            `json:"product_id" validate:"required,gt=0"`
	ColorName string           `json:"color_name" validate:"required"`
	SizeLabel string           `json:"size_label" validate:"required"`
	Quantity  int              `json:"quantity" validate:"required,gt=0"`
	UnitPrice *decimal.Decimal `json:"unit_price"`
}

type CreateSaleRequest struct {
	StoreType     Context           `json:"store_type" validate:"omitempty,oneof=boutique online"`
	CustomerName  *string           `json:"customer_name"`
	CustomerPhone *string           `json:"customer_phone"`
	PaymentMethod PaymentMethod     `json:"payment_method" validate:"required,oneof=cash visa cod bank"`
	TaxApplied    bool              `json:"tax_applied"`
	Items         []LineItemRequest `json:"items" validate:"required,min=1,dive"`
}

type SaleFilter struct {
	StoreType Context
	From      *time.Time
	To        *time.Time
	Limit     int
}

type Totals struct {
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
}

// ComputeTotals soma as linhas e aplica o imposto sobre o subtotal, arredondado em 2 casas
func ComputeTotals(items []LineItem, taxApplied bool, taxRate decimal.Decimal) Totals {
	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.Total())
	}

	tax := decimal.Zero
	if taxApplied {
		tax = subtotal.Mul(taxRate).Round(2)
	}

	return Totals{
		Subtotal: subtotal.Round(2),
		Tax:      tax,
		Total:    subtotal.Add(tax).Round(2),
	}
}
