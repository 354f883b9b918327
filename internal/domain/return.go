package domain

import "time"

type ReturnType string

const (
	ReturnTypeRefund   ReturnType = "refund"
	ReturnTypeExchange ReturnType = "exchange"
)

type ExchangeMode string

const (
	ExchangeColorToColor ExchangeMode = "color_to_color"
	ExchangeSizeToSize   ExchangeMode = "size_to_size"
	ExchangeModelToModel ExchangeMode = "model_to_model"
)

type ReturnStatus string

const (
	ReturnPending  ReturnStatus = "pending"
	ReturnApproved ReturnStatus = "approved"
)

type ReturnExchange struct {
	ID           int64         `json:"id"`
	Type         ReturnType    `json:"type"`
	ExchangeMode *ExchangeMode `json:"exchange_mode"`
	SaleID       *int64        `json:"sale_id"`
	OrderID      *int64        `json:"order_id"`
	Status       ReturnStatus  `json:"status"`
	EmployeeID   int64         `json:"employee_id"`
	EmployeeName string        `json:"employee_name,omitempty"`
	ApprovedBy   *int64        `json:"approved_by"`
	ApprovedAt   *time.Time    `json:"approved_at"`
	Notes        *string       `json:"notes"`
	Items        []ReturnItem  `json:"items"`
	CreatedAt    time.Time     `json:"created_at"`
}

// ReturnItem guarda a cópia da linha devolvida no momento da criação
type ReturnItem struct {
	ID           int64  `json:"id"`
	ReturnID     int64  `json:"return_id"`
	SourceItemID int64  `json:"source_item_id"`
	ProductID    int64  `json:"product_id"`
	ColorName    string `json:"color_name"`
	SizeLabel    string `json:"size_label"`
	Quantity     int    `json:"quantity"`
}

// Source descreve a venda ou pedido de origem da devolução
type ReturnSource string

const (
	SourceSale  ReturnSource = "sale"
	SourceOrder ReturnSource = "order"
)

func (r *ReturnExchange) Source() (ReturnSource, int64) {
	if r.OrderID != nil {
		return SourceOrder, *r.OrderID
	}
	if r.SaleID != nil {
		return SourceSale, *r.SaleID
	}
	return "", 0
}

type ReturnItemRequest struct {
	ItemID   int64 `json:"item_id" validate:"required,gt=0"`
	Quantity int   `json:"quantity" validate:"required,gt=0"`
}

type CreateReturnRequest struct {
	Type         ReturnType          `json:"type" validate:"required,oneof=refund exchange"`
	ExchangeMode *ExchangeMode       `json:"exchange_mode" validate:"omitempty,oneof=color_to_color size_to_size model_to_model"`
	SaleID       *int64              `json:"sale_id" validate:"omitempty,gt=0"`
	OrderID      *int64              `json:"order_id" validate:"omitempty,gt=0"`
	Items        []ReturnItemRequest `json:"items" validate:"omitempty,dive"`
	Notes        *string             `json:"notes"`
}

type ReturnFilter struct {
	Status ReturnStatus
	Limit  int
}
