package repository

import (
	"context"

	"github.com/jhoicas/orion-pdv/internal/domain/entity"
)

// MovementFilter filtros opcionales para listar movimientos.
type MovementFilter struct {
	ProductID string
	SaleID    string
}

// StockMovementRepository define el puerto de persistencia para el libro de stock (solo inserción).
type StockMovementRepository interface {
	Create(ctx context.Context, movement *entity.StockMovement) error
	List(ctx context.Context, filter MovementFilter) ([]*entity.StockMovement, error)
}
