package repository

import (
	"context"
	"time"

	"github.com/jhoicas/orion-pdv/internal/domain/entity"
)

// SaleFilter filtros opcionales para listar ventas. From inclusive, To exclusivo.
type SaleFilter struct {
	From     *time.Time
	To       *time.Time
	ClientID string
}

// SaleRepository define el puerto de persistencia para Sale. Sin Update ni Delete.
type SaleRepository interface {
	Create(ctx context.Context, sale *entity.Sale) error
	GetByID(ctx context.Context, id string) (*entity.Sale, error)
	List(ctx context.Context, filter SaleFilter) ([]*entity.Sale, error)
}
