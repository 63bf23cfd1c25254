// Package checkout contiene el cálculo puro de totales de una venta.
package checkout

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/orion-pdv/internal/domain"
	"github.com/jhoicas/orion-pdv/internal/domain/entity"
)

var hundred = decimal.NewFromInt(100)

// Totals resultado del cálculo. Los montos son exactos; el redondeo es solo de presentación.
type Totals struct {
	Subtotal       decimal.Decimal
	DiscountAmount decimal.Decimal
	Total          decimal.Decimal
}

// ComputeTotals calcula subtotal, descuento y total de las líneas.
// Subtotal = Σ LineSubtotal; Descuento = Subtotal * pct / 100; Total = Subtotal - Descuento.
// Devuelve domain.ErrInvalidDiscount si pct está fuera de [0, 100].
func ComputeTotals(lines []entity.CartLine, discountPercent decimal.Decimal) (Totals, error) {
	if discountPercent.IsNegative() || discountPercent.GreaterThan(hundred) {
		return Totals{}, domain.ErrInvalidDiscount
	}
	subtotal := decimal.Zero
	for _, l := range lines {
		subtotal = subtotal.Add(l.LineSubtotal)
	}
	discount := subtotal.Mul(discountPercent).Div(hundred)
	return Totals{
		Subtotal:       subtotal,
		DiscountAmount: discount,
		Total:          subtotal.Sub(discount),
	}, nil
}
