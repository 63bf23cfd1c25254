package dto

import "time"

// StockAdjustmentRequest body para POST /api/stock/adjustments.
type StockAdjustmentRequest struct {
	ProductID string `json:"product_id"`
	Delta     int    `json:"delta"`
	Note      string `json:"note"`
}

// StockMovementResponse salida de un movimiento del libro de stock.
type StockMovementResponse struct {
	ID          string    `json:"id"`
	Timestamp   time.Time `json:"timestamp"`
	ProductID   string    `json:"product_id"`
	ProductName string    `json:"product_name"`
	Kind        string    `json:"kind"`
	Quantity    int       `json:"quantity"`
	Reason      string    `json:"reason"`
	Note        string    `json:"note,omitempty"`
	ActorID     string    `json:"actor_id,omitempty"`
	SaleID      string    `json:"sale_id,omitempty"`
	StockBefore int       `json:"stock_before"`
	StockAfter  int       `json:"stock_after"`
}

// ReplenishmentSuggestionDTO sugerencia de reposición para un producto en o bajo su stock mínimo.
type ReplenishmentSuggestionDTO struct {
	ProductID         string `json:"product_id"`
	ScanCode          string `json:"scan_code"`
	ProductName       string `json:"product_name"`
	Group             string `json:"group"`
	CurrentStock      int    `json:"current_stock"`
	StockMinimum      int    `json:"stock_minimum"`
	IdealStock        int    `json:"ideal_stock"`         // StockMinimum * 1.5, redondeado hacia arriba
	SuggestedOrderQty int    `json:"suggested_order_qty"` // IdealStock - CurrentStock
	Priority          int    `json:"priority"`            // 1 = más urgente
}

// MovementFilterRequest parámetros de GET /api/stock/movements.
type MovementFilterRequest struct {
	ProductID string `query:"product_id"`
	SaleID    string `query:"sale_id"`
}
