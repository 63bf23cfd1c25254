package entity

import "github.com/shopspring/decimal"

// CartLine es una línea del carrito pendiente.
// UnitPriceAtAdd se congela en el primer agregado y no sigue cambios posteriores del catálogo.
type CartLine struct {
	ProductID      string
	ProductName    string
	UnitPriceAtAdd decimal.Decimal
	Quantity       int
	LineSubtotal   decimal.Decimal
}

// NewCartLine crea una línea tomando nombre y precio actuales del producto.
func NewCartLine(p *Product, quantity int) CartLine {
	return CartLine{
		ProductID:      p.ID,
		ProductName:    p.Name,
		UnitPriceAtAdd: p.UnitPrice,
		Quantity:       quantity,
		LineSubtotal:   p.UnitPrice.Mul(decimal.NewFromInt(int64(quantity))),
	}
}

// WithQuantity devuelve una copia con la cantidad y el subtotal recalculados.
func (l CartLine) WithQuantity(quantity int) CartLine {
	l.Quantity = quantity
	l.LineSubtotal = l.UnitPriceAtAdd.Mul(decimal.NewFromInt(int64(quantity)))
	return l
}
