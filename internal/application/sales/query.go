package sales

import (
	"context"
	"time"

	"github.com/jhoicas/orion-pdv/internal/application/dto"
	"github.com/jhoicas/orion-pdv/internal/domain/entity"
	"github.com/jhoicas/orion-pdv/internal/domain/repository"
	"github.com/jhoicas/orion-pdv/pkg/money"
)

// QueryUseCase consultas de solo lectura sobre ventas.
type QueryUseCase struct {
	sales repository.SaleRepository
}

// NewQueryUseCase construye el caso de uso.
func NewQueryUseCase(sales repository.SaleRepository) *QueryUseCase {
	return &QueryUseCase{sales: sales}
}

// GetSale obtiene una venta; (nil, nil) si no existe.
func (uc *QueryUseCase) GetSale(ctx context.Context, id string) (*dto.SaleResponse, error) {
	s, err := uc.sales.GetByID(ctx, id)
	if err != nil || s == nil {
		return nil, err
	}
	return ToSaleResponse(s), nil
}

// ListSales lista las ventas en [from, to). Fechas nil = sin límite.
func (uc *QueryUseCase) ListSales(ctx context.Context, from, to *time.Time) (*dto.SaleListResponse, error) {
	list, err := uc.sales.List(ctx, repository.SaleFilter{From: from, To: to})
	if err != nil {
		return nil, err
	}
	out := &dto.SaleListResponse{Items: make([]dto.SaleResponse, 0, len(list))}
	for _, s := range list {
		out.Items = append(out.Items, *ToSaleResponse(s))
	}
	out.Total = len(out.Items)
	return out, nil
}

// ToSaleResponse convierte la entidad a su DTO.
func ToSaleResponse(s *entity.Sale) *dto.SaleResponse {
	if s == nil {
		return nil
	}
	out := &dto.SaleResponse{
		ID:              s.ID,
		Timestamp:       s.Timestamp,
		ClientID:        s.ClientID,
		ClientName:      s.ClientName,
		PaymentMethod:   s.PaymentMethod,
		PaymentLabel:    s.PaymentLabel,
		Lines:           make([]dto.SaleLineResponse, 0, len(s.Lines)),
		ItemCount:       s.ItemCount(),
		Subtotal:        s.Subtotal,
		DiscountPercent: s.DiscountPercent,
		DiscountAmount:  s.DiscountAmount,
		Total:           s.Total,
		TotalDisplay:    money.BRL(s.Total),
		CashierID:       s.CashierID,
	}
	for _, l := range s.Lines {
		out.Lines = append(out.Lines, dto.SaleLineResponse{
			ProductID:    l.ProductID,
			ProductName:  l.ProductName,
			Quantity:     l.Quantity,
			UnitPrice:    l.UnitPrice,
			LineSubtotal: l.LineSubtotal,
		})
	}
	return out
}
