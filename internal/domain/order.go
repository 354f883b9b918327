package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderPending        OrderStatus = "pending"
	OrderOutForDelivery OrderStatus = "out_for_delivery"
	OrderDelivered      OrderStatus = "delivered"
	OrderCancelled      OrderStatus = "cancelled"
	// OrderReturned só é atingido pela aprovação de um reembolso
	OrderReturned OrderStatus = "returned"
)

func (s OrderStatus) IsKnown() bool {
	switch s {
	case OrderPending, OrderOutForDelivery, OrderDelivered, OrderCancelled, OrderReturned:
		return true
	}
	return false
}

// CountsAsRevenue indica se pedidos neste status entram nos relatórios
func (s OrderStatus) CountsAsRevenue() bool {
	return s != OrderCancelled && s != OrderReturned
}

type Order struct {
	ID             int64           `json:"id"`
	OrderNumber    string          `json:"order_number"`
	CustomerName   string          `json:"customer_name"`
	Phone          string          `json:"phone"`
	Region         string          `json:"region"`
	Address        string          `json:"address"`
	TrackingNumber *string         `json:"tracking_number"`
	PaymentMethod  PaymentMethod   `json:"payment_method"`
	Status         OrderStatus     `json:"status"`
	StockDeducted  bool            `json:"stock_deducted"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
	EmployeeID     int64           `json:"employee_id"`
	EmployeeName   string          `json:"employee_name,omitempty"`
	Items          []LineItem      `json:"items"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
	DeliveredAt    *time.Time      `json:"delivered_at"`
}

type CreateOrderRequest struct {
	CustomerName   string            `json:"customer_name" validate:"required"`
	Phone          string            `json:"phone" validate:"required"`
	Region         string            `json:"region" validate:"required"`
	Address        string            `json:"address" validate:"required"`
	TrackingNumber *string           `json:"tracking_number"`
	PaymentMethod  PaymentMethod     `json:"payment_method" validate:"required,oneof=cod bank"`
	Items          []LineItemRequest `json:"items" validate:"required,min=1,dive"`
}

type UpdateOrderStatusRequest struct {
	Status         OrderStatus `json:"status" validate:"required,oneof=pending out_for_delivery delivered cancelled returned"`
	TrackingNumber *string     `json:"tracking_number"`
}

type OrderFilter struct {
	Status OrderStatus
	Limit  int
}
