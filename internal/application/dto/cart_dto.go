package dto

import "github.com/shopspring/decimal"

// AddCartLineRequest body para POST /api/cart/lines. Acepta product_id o scan_code.
type AddCartLineRequest struct {
	ProductID string `json:"product_id"`
	ScanCode  string `json:"scan_code"`
	Quantity  int    `json:"quantity"`
}

// UpdateCartLineRequest body para PUT /api/cart/lines/{product_id}.
type UpdateCartLineRequest struct {
	Quantity int `json:"quantity"`
}

// CartLineResponse línea del carrito.
type CartLineResponse struct {
	ProductID      string          `json:"product_id"`
	ProductName    string          `json:"product_name"`
	UnitPriceAtAdd decimal.Decimal `json:"unit_price_at_add"`
	Quantity       int             `json:"quantity"`
	LineSubtotal   decimal.Decimal `json:"line_subtotal"`
}

// CartResponse carrito con totales. Los montos son exactos; *_display va redondeado en pt-BR.
type CartResponse struct {
	Lines           []CartLineResponse `json:"lines"`
	ItemCount       int                `json:"item_count"`
	DiscountPercent decimal.Decimal    `json:"discount_percent"`
	Subtotal        decimal.Decimal    `json:"subtotal"`
	DiscountAmount  decimal.Decimal    `json:"discount_amount"`
	Total           decimal.Decimal    `json:"total"`
	TotalDisplay    string             `json:"total_display"`
}

// CartTotalsResponse totales del carrito para un descuento dado.
type CartTotalsResponse struct {
	ItemCount             int             `json:"item_count"`
	DiscountPercent       decimal.Decimal `json:"discount_percent"`
	Subtotal              decimal.Decimal `json:"subtotal"`
	DiscountAmount        decimal.Decimal `json:"discount_amount"`
	Total                 decimal.Decimal `json:"total"`
	SubtotalDisplay       string          `json:"subtotal_display"`
	DiscountAmountDisplay string          `json:"discount_amount_display"`
	TotalDisplay          string          `json:"total_display"`
}
