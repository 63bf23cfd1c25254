package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CheckoutRequest body para POST /api/sales (confirma el carrito activo).
type CheckoutRequest struct {
	ClientID        string          `json:"client_id"`
	PaymentMethod   string          `json:"payment_method"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
}

// SaleLineResponse línea de una venta.
type SaleLineResponse struct {
	ProductID    string          `json:"product_id"`
	ProductName  string          `json:"product_name"`
	Quantity     int             `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	LineSubtotal decimal.Decimal `json:"line_subtotal"`
}

// SaleResponse salida de una venta.
type SaleResponse struct {
	ID              string             `json:"id"`
	Timestamp       time.Time          `json:"timestamp"`
	ClientID        string             `json:"client_id"`
	ClientName      string             `json:"client_name"`
	PaymentMethod   string             `json:"payment_method"`
	PaymentLabel    string             `json:"payment_label"`
	Lines           []SaleLineResponse `json:"lines"`
	ItemCount       int                `json:"item_count"`
	Subtotal        decimal.Decimal    `json:"subtotal"`
	DiscountPercent decimal.Decimal    `json:"discount_percent"`
	DiscountAmount  decimal.Decimal    `json:"discount_amount"`
	Total           decimal.Decimal    `json:"total"`
	TotalDisplay    string             `json:"total_display"`
	CashierID       string             `json:"cashier_id"`
}

// SaleListResponse lista de ventas de un período.
type SaleListResponse struct {
	Items []SaleResponse `json:"items"`
	Total int            `json:"total"`
	Page  *PageResponse  `json:"page,omitempty"`
}

// SaleListRequest parámetros de GET /api/sales.
type SaleListRequest struct {
	From   string `query:"from"` // YYYY-MM-DD, inclusive
	To     string `query:"to"`   // YYYY-MM-DD, inclusive
	Limit  int    `query:"limit"`
	Offset int    `query:"offset"`
}

// PartialCommitResponse cuerpo de error cuando la venta quedó registrada con inconsistencias.
type PartialCommitResponse struct {
	Code              string        `json:"code"`
	Message           string        `json:"message"`
	SaleID            string        `json:"sale_id"`
	Stage             string        `json:"stage"`
	MissingProductIDs []string      `json:"missing_product_ids,omitempty"`
	Sale              *SaleResponse `json:"sale,omitempty"`
}

// PaymentMethodResponse forma de pago disponible.
type PaymentMethodResponse struct {
	Code  string `json:"code"`
	Label string `json:"label"`
}
