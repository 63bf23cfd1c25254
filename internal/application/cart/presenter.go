package cart

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/orion-pdv/internal/application/dto"
	"github.com/jhoicas/orion-pdv/internal/domain/checkout"
	"github.com/jhoicas/orion-pdv/internal/domain/entity"
	"github.com/jhoicas/orion-pdv/pkg/money"
)

// ToCartResponse arma la vista del carrito con sus totales.
func ToCartResponse(lines []entity.CartLine, discountPercent decimal.Decimal, totals checkout.Totals) *dto.CartResponse {
	out := &dto.CartResponse{
		Lines:           make([]dto.CartLineResponse, 0, len(lines)),
		DiscountPercent: discountPercent,
		Subtotal:        totals.Subtotal,
		DiscountAmount:  totals.DiscountAmount,
		Total:           totals.Total,
		TotalDisplay:    money.BRL(totals.Total),
	}
	for _, l := range lines {
		out.ItemCount += l.Quantity
		out.Lines = append(out.Lines, ToLineResponse(l))
	}
	return out
}

// ToLineResponse convierte una línea a su DTO.
func ToLineResponse(l entity.CartLine) dto.CartLineResponse {
	return dto.CartLineResponse{
		ProductID:      l.ProductID,
		ProductName:    l.ProductName,
		UnitPriceAtAdd: l.UnitPriceAtAdd,
		Quantity:       l.Quantity,
		LineSubtotal:   l.LineSubtotal,
	}
}
