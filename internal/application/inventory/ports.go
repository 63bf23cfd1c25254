package inventory

import (
	"context"

	"github.com/jhoicas/orion-pdv/internal/domain/entity"
)

// Metrics puerto de métricas del libro de stock. Puede ser nil.
type Metrics interface {
	StockMovementRecorded(kind, reason string, quantity int)
}

// Adjuster es el punto único de mutación de stock; lo consumen ventas y catálogo.
type Adjuster interface {
	AdjustStock(ctx context.Context, in AdjustStockInput) (*entity.Product, *entity.StockMovement, error)
}

type noopMetrics struct{}

func (noopMetrics) StockMovementRecorded(string, string, int) {}
