package repository

import (
	"context"

	"github.com/jhoicas/orion-pdv/internal/domain/entity"
)

// SettingsRepository persiste los datos de la tienda. Get devuelve (nil, nil) si no hay datos.
type SettingsRepository interface {
	Get(ctx context.Context) (*entity.StoreSettings, error)
	Save(ctx context.Context, settings *entity.StoreSettings) error
}
