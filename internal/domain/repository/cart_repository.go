package repository

import (
	"context"

	"github.com/jhoicas/orion-pdv/internal/domain/entity"
)

// CartRepository persiste el carrito activo de la terminal.
type CartRepository interface {
	Load(ctx context.Context) ([]entity.CartLine, error)
	Save(ctx context.Context, lines []entity.CartLine) error
}
