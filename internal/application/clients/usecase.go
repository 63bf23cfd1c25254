// Package clients contiene los casos de uso del directorio de clientes.
package clients

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/orion-pdv/internal/application/dto"
	"github.com/jhoicas/orion-pdv/internal/domain"
	"github.com/jhoicas/orion-pdv/internal/domain/entity"
	"github.com/jhoicas/orion-pdv/internal/domain/repository"
)

// ClientUseCase casos de uso para clientes.
type ClientUseCase struct {
	repo  repository.ClientRepository
	sales repository.SaleRepository
}

// NewClientUseCase construye el caso de uso.
func NewClientUseCase(repo repository.ClientRepository, sales repository.SaleRepository) *ClientUseCase {
	return &ClientUseCase{repo: repo, sales: sales}
}

// EnsureDefault crea el cliente "Consumidor Final" si no existe.
func (uc *ClientUseCase) EnsureDefault(ctx context.Context) error {
	existing, err := uc.repo.GetByID(ctx, entity.DefaultClientID)
	if err != nil || existing != nil {
		return err
	}
	err = uc.repo.Create(ctx, &entity.Client{
		ID:        entity.DefaultClientID,
		Name:      entity.DefaultClientName,
		CreatedAt: time.Now(),
	})
	if errors.Is(err, domain.ErrDuplicate) {
		return nil
	}
	return err
}

// Create crea un nuevo cliente.
func (uc *ClientUseCase) Create(ctx context.Context, in dto.CreateClientRequest) (*dto.ClientResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	client := &entity.Client{
		ID:        uuid.New().String(),
		Name:      name,
		Document:  strings.TrimSpace(in.Document),
		Phone:     strings.TrimSpace(in.Phone),
		Email:     strings.TrimSpace(in.Email),
		Address:   strings.TrimSpace(in.Address),
		City:      strings.TrimSpace(in.City),
		CreatedAt: time.Now(),
	}
	if err := uc.repo.Create(ctx, client); err != nil {
		return nil, err
	}
	return toClientResponse(client), nil
}

// GetByID obtiene un cliente; (nil, nil) si no existe.
func (uc *ClientUseCase) GetByID(ctx context.Context, id string) (*dto.ClientResponse, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil || c == nil {
		return nil, err
	}
	return toClientResponse(c), nil
}

// List lista los clientes: primero el cliente por defecto, luego por nombre.
func (uc *ClientUseCase) List(ctx context.Context) ([]*dto.ClientResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ClientResponse, 0, len(list))
	for _, c := range list {
		out = append(out, toClientResponse(c))
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].IsDefault != out[j].IsDefault {
			return out[i].IsDefault
		}
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out, nil
}

// Delete elimina un cliente. El cliente por defecto y los clientes con ventas no se eliminan.
func (uc *ClientUseCase) Delete(ctx context.Context, id string) error {
	if id == entity.DefaultClientID {
		return fmt.Errorf("%w: el cliente por defecto no puede eliminarse", domain.ErrConflict)
	}
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if c == nil {
		return domain.ErrNotFound
	}
	sales, err := uc.sales.List(ctx, repository.SaleFilter{ClientID: id})
	if err != nil {
		return err
	}
	if len(sales) > 0 {
		return fmt.Errorf("%w: el cliente tiene %d venta(s)", domain.ErrConflict, len(sales))
	}
	return uc.repo.Delete(ctx, id)
}

func toClientResponse(c *entity.Client) *dto.ClientResponse {
	return &dto.ClientResponse{
		ID:        c.ID,
		Name:      c.Name,
		Document:  c.Document,
		Phone:     c.Phone,
		Email:     c.Email,
		Address:   c.Address,
		City:      c.City,
		IsDefault: c.IsDefault(),
		CreatedAt: c.CreatedAt,
	}
}
