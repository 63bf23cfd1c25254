package storage

import (
	"context"

	"github.com/jhoicas/orion-pdv/internal/domain/entity"
	"github.com/jhoicas/orion-pdv/internal/domain/repository"
)

var _ repository.CartRepository = (*CartRepo)(nil)

// Una terminal, un carrito.
const cartKey = "current"

type cartRecord struct {
	Lines []entity.CartLine
}

// CartRepo persiste el carrito activo bajo una clave fija.
type CartRepo struct {
	s Store
}

// NewCartRepository construye el adaptador de persistencia del carrito.
func NewCartRepository(s Store) *CartRepo {
	return &CartRepo{s: s}
}

// Load devuelve las líneas guardadas; vacío si nunca se guardó.
func (r *CartRepo) Load(ctx context.Context) ([]entity.CartLine, error) {
	rec, _, err := getJSON[cartRecord](ctx, r.s, EntityCart, cartKey)
	if err != nil || rec == nil {
		return nil, err
	}
	return rec.Lines, nil
}

func (r *CartRepo) Save(ctx context.Context, lines []entity.CartLine) error {
	return putJSON(ctx, r.s, EntityCart, cartKey, cartRecord{Lines: lines})
}
