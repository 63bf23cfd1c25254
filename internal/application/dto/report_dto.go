package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReportPeriodRequest parámetros de GET /api/reports/sales.
type ReportPeriodRequest struct {
	From string `query:"from"` // YYYY-MM-DD, inclusive; vacío = sin límite
	To   string `query:"to"`   // YYYY-MM-DD, inclusive; vacío = sin límite
}

// PaymentSummaryDTO ventas agregadas por forma de pago.
type PaymentSummaryDTO struct {
	Code  string          `json:"code"`
	Label string          `json:"label"`
	Count int             `json:"count"`
	Value decimal.Decimal `json:"value"`
}

// BestSellerDTO producto más vendido del período.
type BestSellerDTO struct {
	Rank        int             `json:"rank"`
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	Value       decimal.Decimal `json:"value"`
}

// SalesReportDTO resumen de ventas de un período.
type SalesReportDTO struct {
	From            *time.Time          `json:"from,omitempty"`
	To              *time.Time          `json:"to,omitempty"` // exclusivo
	SaleCount       int                 `json:"sale_count"`
	ItemsSold       int                 `json:"items_sold"`
	TotalValue      decimal.Decimal     `json:"total_value"`
	TotalDiscount   decimal.Decimal     `json:"total_discount"`
	AverageTicket   decimal.Decimal     `json:"average_ticket"`
	ByPaymentMethod []PaymentSummaryDTO `json:"by_payment_method"`
	BestSellers     []BestSellerDTO     `json:"best_sellers"`
}

// StockItemDTO producto en un listado del reporte de stock.
type StockItemDTO struct {
	ProductID    string          `json:"product_id"`
	ScanCode     string          `json:"scan_code"`
	Name         string          `json:"name"`
	Group        string          `json:"group"`
	Stock        int             `json:"stock"`
	StockMinimum int             `json:"stock_minimum"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	StockValue   decimal.Decimal `json:"stock_value"`
}

// StockReportDTO situación del inventario.
type StockReportDTO struct {
	GeneratedAt  time.Time       `json:"generated_at"`
	ProductCount int             `json:"product_count"`
	TotalUnits   int             `json:"total_units"`
	StockValue   decimal.Decimal `json:"stock_value"`
	Items        []StockItemDTO  `json:"items"`
	LowStock     []StockItemDTO  `json:"low_stock"`
	OutOfStock   []StockItemDTO  `json:"out_of_stock"`
}
