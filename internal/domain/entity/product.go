package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo de la tienda.
// StockQuantity nunca es negativo y solo cambia a través del libro de stock.
// Revision se incrementa en cada escritura y sirve como token de concurrencia optimista.
type Product struct {
	ID            string
	ScanCode      string // código de barras; único cuando no está vacío
	Name          string
	Group         string
	Brand         string
	UnitPrice     decimal.Decimal
	StockQuantity int
	StockMinimum  int
	PhotoRef      string
	Revision      int64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsLowStock indica si el stock está en o por debajo del mínimo configurado.
func (p *Product) IsLowStock() bool {
	return p.StockQuantity <= p.StockMinimum
}

// StockValue es el valor del stock a precio de venta.
func (p *Product) StockValue() decimal.Decimal {
	return p.UnitPrice.Mul(decimal.NewFromInt(int64(p.StockQuantity)))
}
