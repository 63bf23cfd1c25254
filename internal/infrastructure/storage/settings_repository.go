package storage

import (
	"context"

	"github.com/jhoicas/orion-pdv/internal/domain/entity"
	"github.com/jhoicas/orion-pdv/internal/domain/repository"
)

var _ repository.SettingsRepository = (*SettingsRepo)(nil)

const settingsKey = "store"

// SettingsRepo persiste los datos de la tienda.
type SettingsRepo struct {
	s Store
}

// NewSettingsRepository construye el adaptador de persistencia de configuración.
func NewSettingsRepository(s Store) *SettingsRepo {
	return &SettingsRepo{s: s}
}

func (r *SettingsRepo) Get(ctx context.Context) (*entity.StoreSettings, error) {
	st, _, err := getJSON[entity.StoreSettings](ctx, r.s, EntitySettings, settingsKey)
	return st, err
}

func (r *SettingsRepo) Save(ctx context.Context, settings *entity.StoreSettings) error {
	return putJSON(ctx, r.s, EntitySettings, settingsKey, settings)
}
