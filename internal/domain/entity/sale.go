package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale es una venta confirmada. Se escribe una sola vez; no hay edición ni borrado.
// Los nombres de cliente y producto son copias al momento de la venta.
type Sale struct {
	ID              string
	Timestamp       time.Time
	ClientID        string
	ClientName      string
	PaymentMethod   string // código, ver PaymentMethods
	PaymentLabel    string
	Lines           []SaleLine
	Subtotal        decimal.Decimal
	DiscountPercent decimal.Decimal
	DiscountAmount  decimal.Decimal
	Total           decimal.Decimal
	CashierID       string
}

// SaleLine es una línea de la venta.
type SaleLine struct {
	ProductID    string
	ProductName  string
	Quantity     int
	UnitPrice    decimal.Decimal
	LineSubtotal decimal.Decimal
}

// ItemCount suma las unidades vendidas.
func (s *Sale) ItemCount() int {
	n := 0
	for _, l := range s.Lines {
		n += l.Quantity
	}
	return n
}
