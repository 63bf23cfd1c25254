package storage

import (
	"context"

	"github.com/jhoicas/orion-pdv/internal/domain"
	"github.com/jhoicas/orion-pdv/internal/domain/entity"
	"github.com/jhoicas/orion-pdv/internal/domain/repository"
)

var _ repository.ClientRepository = (*ClientRepo)(nil)

// ClientRepo implementación del puerto ClientRepository.
type ClientRepo struct {
	s Store
}

// NewClientRepository construye el adaptador de persistencia para clientes.
func NewClientRepository(s Store) *ClientRepo {
	return &ClientRepo{s: s}
}

func (r *ClientRepo) Create(ctx context.Context, client *entity.Client) error {
	return insertJSON(ctx, r.s, EntityClient, client.ID, client)
}

func (r *ClientRepo) GetByID(ctx context.Context, id string) (*entity.Client, error) {
	c, _, err := getJSON[entity.Client](ctx, r.s, EntityClient, id)
	return c, err
}

func (r *ClientRepo) List(ctx context.Context) ([]*entity.Client, error) {
	return listJSON[entity.Client](ctx, r.s, EntityClient)
}

func (r *ClientRepo) Delete(ctx context.Context, id string) error {
	ok, err := r.s.Delete(ctx, EntityClient, id)
	if err != nil {
		return storageErr("delete", EntityClient, err)
	}
	if !ok {
		return domain.ErrNotFound
	}
	return nil
}
