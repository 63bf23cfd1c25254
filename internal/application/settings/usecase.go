// Package settings gestiona los datos de la tienda impresos en los comprobantes.
package settings

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/orion-pdv/internal/application/dto"
	"github.com/jhoicas/orion-pdv/internal/domain"
	"github.com/jhoicas/orion-pdv/internal/domain/entity"
	"github.com/jhoicas/orion-pdv/internal/domain/repository"
)

// SettingsUseCase lee y actualiza la configuración de la tienda.
type SettingsUseCase struct {
	repo repository.SettingsRepository
}

// NewSettingsUseCase construye el caso de uso.
func NewSettingsUseCase(repo repository.SettingsRepository) *SettingsUseCase {
	return &SettingsUseCase{repo: repo}
}

// SeedIfMissing guarda defaults solo si todavía no hay configuración persistida.
func (uc *SettingsUseCase) SeedIfMissing(ctx context.Context, defaults entity.StoreSettings) error {
	current, err := uc.repo.Get(ctx)
	if err != nil {
		return fmt.Errorf("settings: leer: %w", err)
	}
	if current != nil {
		return nil
	}
	return uc.repo.Save(ctx, &defaults)
}

// Get devuelve la configuración; vacía si nunca se guardó.
func (uc *SettingsUseCase) Get(ctx context.Context) (*dto.StoreSettingsDTO, error) {
	s, err := uc.repo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if s == nil {
		s = &entity.StoreSettings{}
	}
	return toDTO(s), nil
}

// Update reemplaza la configuración. El nombre de la tienda es obligatorio.
func (uc *SettingsUseCase) Update(ctx context.Context, in dto.StoreSettingsDTO) (*dto.StoreSettingsDTO, error) {
	if strings.TrimSpace(in.CompanyName) == "" {
		return nil, fmt.Errorf("%w: company_name es requerido", domain.ErrInvalidInput)
	}
	s := &entity.StoreSettings{
		CompanyName:   strings.TrimSpace(in.CompanyName),
		Slogan:        in.Slogan,
		TaxID:         in.TaxID,
		Phone:         in.Phone,
		Email:         in.Email,
		Address:       in.Address,
		City:          in.City,
		ReceiptFooter: in.ReceiptFooter,
	}
	if err := uc.repo.Save(ctx, s); err != nil {
		return nil, err
	}
	return toDTO(s), nil
}

func toDTO(s *entity.StoreSettings) *dto.StoreSettingsDTO {
	return &dto.StoreSettingsDTO{
		CompanyName:   s.CompanyName,
		Slogan:        s.Slogan,
		TaxID:         s.TaxID,
		Phone:         s.Phone,
		Email:         s.Email,
		Address:       s.Address,
		City:          s.City,
		ReceiptFooter: s.ReceiptFooter,
	}
}
