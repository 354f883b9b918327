package domain

// StockMovement é um ajuste de estoque numa variante
type StockMovement struct {
	ProductID int64
	ColorName string
	SizeLabel string
	Quantity  int
}

func MovementsFromLineItems(items []LineItem) []StockMovement {
	movements := make([]StockMovement, 0, len(items))
	for _, item := range items {
		movements = append(movements, StockMovement{
			ProductID: item.ProductID,
			ColorName: item.ColorName,
			SizeLabel: item.SizeLabel,
			Quantity:  item.Quantity,
		})
	}
	return movements
}

func MovementsFromReturnItems(items []ReturnItem) []StockMovement {
	movements := make([]StockMovement, 0, len(items))
	for _, item := range items {
		movements = append(movements, StockMovement{
			ProductID: item.ProductID,
			ColorName: item.ColorName,
			SizeLabel: item.SizeLabel,
			Quantity:  item.Quantity,
		})
	}
	return movements
}

type LowStockVariant struct {
	ProductID   int64  `json:"product_id"`
	ProductCode string `json:"product_code"`
	ColorName   string `json:"color_name"`
	SizeLabel   string `json:"size_label"`
	Quantity    int    `json:"quantity"`
}
