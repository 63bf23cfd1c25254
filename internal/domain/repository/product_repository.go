package repository

import (
	"context"

	"github.com/jhoicas/orion-pdv/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// Los Get devuelven (nil, nil) cuando el producto no existe.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetByScanCode(ctx context.Context, code string) (*entity.Product, error)
	List(ctx context.Context) ([]*entity.Product, error)
	// Update escribe el producto solo si la revisión almacenada coincide con product.Revision
	// (domain.ErrConflict si no); en éxito incrementa product.Revision.
	Update(ctx context.Context, product *entity.Product) error
}
