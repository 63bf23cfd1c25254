package inventory

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/orion-pdv/internal/application/dto"
	"github.com/jhoicas/orion-pdv/internal/domain/repository"
)

// ReplenishmentUseCase genera la lista de reposición con los productos en o bajo el stock mínimo.
type ReplenishmentUseCase struct {
	products repository.ProductRepository
}

// NewReplenishmentUseCase construye el caso de uso de reposición.
func NewReplenishmentUseCase(products repository.ProductRepository) *ReplenishmentUseCase {
	return &ReplenishmentUseCase{products: products}
}

// GenerateReplenishmentList devuelve los productos con stock <= mínimo, con la cantidad
// sugerida para llegar a 1.5 veces el mínimo. Orden: menor stock primero, luego mayor déficit.
func (uc *ReplenishmentUseCase) GenerateReplenishmentList(ctx context.Context) ([]dto.ReplenishmentSuggestionDTO, error) {
	list, err := uc.products.List(ctx)
	if err != nil {
		return nil, err
	}
	factor := decimal.NewFromFloat(1.5)

	suggestions := make([]dto.ReplenishmentSuggestionDTO, 0)
	for _, p := range list {
		if !p.IsLowStock() {
			continue
		}
		ideal := int(decimal.NewFromInt(int64(p.StockMinimum)).Mul(factor).Ceil().IntPart())
		suggested := ideal - p.StockQuantity
		if suggested < 0 {
			suggested = 0
		}
		suggestions = append(suggestions, dto.ReplenishmentSuggestionDTO{
			ProductID:         p.ID,
			ScanCode:          p.ScanCode,
			ProductName:       p.Name,
			Group:             p.Group,
			CurrentStock:      p.StockQuantity,
			StockMinimum:      p.StockMinimum,
			IdealStock:        ideal,
			SuggestedOrderQty: suggested,
		})
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		a, b := suggestions[i], suggestions[j]
		if a.CurrentStock != b.CurrentStock {
			return a.CurrentStock < b.CurrentStock
		}
		return a.StockMinimum-a.CurrentStock > b.StockMinimum-b.CurrentStock
	})
	for i := range suggestions {
		suggestions[i].Priority = i + 1
	}
	return suggestions, nil
}
