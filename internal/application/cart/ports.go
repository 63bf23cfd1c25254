package cart

import (
	"context"

	"github.com/jhoicas/orion-pdv/internal/domain/entity"
)

// ProductLookup lectura de productos del catálogo; (nil, nil) si no existe.
type ProductLookup interface {
	GetByID(ctx context.Context, id string) (*entity.Product, error)
}
