package storage

import (
	"context"

	"github.com/jhoicas/orion-pdv/internal/domain/entity"
	"github.com/jhoicas/orion-pdv/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo implementación del libro de stock (solo inserción).
type StockMovementRepo struct {
	s Store
}

// NewStockMovementRepository construye el adaptador de persistencia para movimientos.
func NewStockMovementRepository(s Store) *StockMovementRepo {
	return &StockMovementRepo{s: s}
}

func (r *StockMovementRepo) Create(ctx context.Context, movement *entity.StockMovement) error {
	return insertJSON(ctx, r.s, EntityStockMovement, movement.ID, movement)
}

func (r *StockMovementRepo) List(ctx context.Context, filter repository.MovementFilter) ([]*entity.StockMovement, error) {
	all, err := listJSON[entity.StockMovement](ctx, r.s, EntityStockMovement)
	if err != nil {
		return nil, err
	}
	out := all[:0]
	for _, m := range all {
		if filter.ProductID != "" && m.ProductID != filter.ProductID {
			continue
		}
		if filter.SaleID != "" && m.SaleID != filter.SaleID {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}
