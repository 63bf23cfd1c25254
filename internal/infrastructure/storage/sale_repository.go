package storage

import (
	"context"

	"github.com/jhoicas/orion-pdv/internal/domain/entity"
	"github.com/jhoicas/orion-pdv/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación del puerto SaleRepository. Las ventas se escriben una sola vez.
type SaleRepo struct {
	s Store
}

// NewSaleRepository construye el adaptador de persistencia para ventas.
func NewSaleRepository(s Store) *SaleRepo {
	return &SaleRepo{s: s}
}

// Create persiste la venta; un id repetido devuelve domain.ErrDuplicate.
func (r *SaleRepo) Create(ctx context.Context, sale *entity.Sale) error {
	return insertJSON(ctx, r.s, EntitySale, sale.ID, sale)
}

func (r *SaleRepo) GetByID(ctx context.Context, id string) (*entity.Sale, error) {
	s, _, err := getJSON[entity.Sale](ctx, r.s, EntitySale, id)
	return s, err
}

// List devuelve las ventas en orden de registro aplicando el filtro.
func (r *SaleRepo) List(ctx context.Context, filter repository.SaleFilter) ([]*entity.Sale, error) {
	all, err := listJSON[entity.Sale](ctx, r.s, EntitySale)
	if err != nil {
		return nil, err
	}
	out := all[:0]
	for _, s := range all {
		if filter.From != nil && s.Timestamp.Before(*filter.From) {
			continue
		}
		if filter.To != nil && !s.Timestamp.Before(*filter.To) {
			continue
		}
		if filter.ClientID != "" && s.ClientID != filter.ClientID {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}
