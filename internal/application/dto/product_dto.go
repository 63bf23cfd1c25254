package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto. InitialStock entra por el libro de stock.
type CreateProductRequest struct {
	ScanCode     string          `json:"scan_code"`
	Name         string          `json:"name"`
	Group        string          `json:"group"`
	Brand        string          `json:"brand"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	InitialStock int             `json:"initial_stock"`
	StockMinimum int             `json:"stock_minimum"`
	PhotoRef     string          `json:"photo_ref"`
}

// UpdateProductRequest entrada para actualizar un producto (sin stock).
type UpdateProductRequest struct {
	ScanCode     *string          `json:"scan_code"`
	Name         *string          `json:"name"`
	Group        *string          `json:"group"`
	Brand        *string          `json:"brand"`
	UnitPrice    *decimal.Decimal `json:"unit_price"`
	StockMinimum *int             `json:"stock_minimum"`
	PhotoRef     *string          `json:"photo_ref"`
}

// ProductFilter filtros del listado de productos.
type ProductFilter struct {
	Group       string `query:"group"`
	Query       string `query:"q"`
	InStockOnly bool   `query:"in_stock"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID            string          `json:"id"`
	ScanCode      string          `json:"scan_code"`
	Name          string          `json:"name"`
	Group         string          `json:"group"`
	Brand         string          `json:"brand"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	StockQuantity int             `json:"stock_quantity"`
	StockMinimum  int             `json:"stock_minimum"`
	LowStock      bool            `json:"low_stock"`
	PhotoRef      string          `json:"photo_ref,omitempty"`
	Revision      int64           `json:"revision"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ProductListResponse lista de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Total int               `json:"total"`
}
