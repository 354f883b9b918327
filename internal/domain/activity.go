package domain

import "time"

type ActivityType string

const (
	ActivityProductAdded   ActivityType = "product_added"
	ActivityProductUpdated ActivityType = "product_updated"
	ActivityProductDeleted ActivityType = "product_deleted"
	ActivitySaleMade       ActivityType = "sale_made"
	ActivityOrderCreated   ActivityType = "order_created"
	ActivityStatusUpdated  ActivityType = "status_updated"
	ActivityReturnCreated  ActivityType = "return_created"
	ActivityReturnApproved ActivityType = "return_approved"
	ActivityLowStockAlert  ActivityType = "low_stock_alert"
)

// Activity é uma entrada do histórico de operações. Só é inserida, nunca alterada.
type Activity struct {
	ID           int64          `json:"id"`
	Type         ActivityType   `json:"type"`
	Description  string         `json:"description"`
	EmployeeName string         `json:"employee_name"`
	Context      Context        `json:"context"`
	Metadata     map[string]any `json:"metadata"`
	CreatedAt    time.Time      `json:"created_at"`
}

func NewActivity(kind ActivityType, actor Actor, ctx Context, description string, metadata map[string]any) *Activity {
	if !ctx.IsChannel() {
		ctx = actor.Context
	}
	return &Activity{
		Type:         kind,
		Description:  description,
		EmployeeName: actor.EmployeeName,
		Context:      ctx,
		Metadata:     metadata,
	}
}

type ActivityFilter struct {
	Context Context
	Limit   int
}
