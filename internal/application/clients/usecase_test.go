package clients_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/orion-pdv/internal/application/clients"
	"github.com/jhoicas/orion-pdv/internal/application/dto"
	"github.com/jhoicas/orion-pdv/internal/domain"
	"github.com/jhoicas/orion-pdv/internal/domain/entity"
	"github.com/jhoicas/orion-pdv/internal/infrastructure/storage"
)

func newClients(t *testing.T) (*clients.ClientUseCase, *storage.SaleRepo) {
	t.Helper()
	s := storage.NewMemoryStore()
	sales := storage.NewSaleRepository(s)
	uc := clients.NewClientUseCase(storage.NewClientRepository(s), sales)
	require.NoError(t, uc.EnsureDefault(context.Background()))
	return uc, sales
}

func TestEnsureDefault_Idempotente(t *testing.T) {
	uc, _ := newClients(t)
	ctx := context.Background()
	require.NoError(t, uc.EnsureDefault(ctx))

	list, err := uc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, entity.DefaultClientID, list[0].ID)
	assert.Equal(t, "Consumidor Final", list[0].Name)
	assert.True(t, list[0].IsDefault)
}

func TestCreateYList_DefaultPrimero(t *testing.T) {
	uc, _ := newClients(t)
	ctx := context.Background()

	_, err := uc.Create(ctx, dto.CreateClientRequest{Name: "Bruna Lima", Document: "123.456.789-00"})
	require.NoError(t, err)
	_, err = uc.Create(ctx, dto.CreateClientRequest{Name: "Ana Souza"})
	require.NoError(t, err)
	_, err = uc.Create(ctx, dto.CreateClientRequest{Name: " "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	list, err := uc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "Consumidor Final", list[0].Name)
	assert.Equal(t, "Ana Souza", list[1].Name)
	assert.Equal(t, "Bruna Lima", list[2].Name)
}

func TestDelete_Reglas(t *testing.T) {
	uc, sales := newClients(t)
	ctx := context.Background()

	assert.ErrorIs(t, uc.Delete(ctx, entity.DefaultClientID), domain.ErrConflict)
	assert.ErrorIs(t, uc.Delete(ctx, "nope"), domain.ErrNotFound)

	withSale, err := uc.Create(ctx, dto.CreateClientRequest{Name: "Carlos"})
	require.NoError(t, err)
	require.NoError(t, sales.Create(ctx, &entity.Sale{ID: "s1", ClientID: withSale.ID, Timestamp: time.Now()}))
	assert.ErrorIs(t, uc.Delete(ctx, withSale.ID), domain.ErrConflict)

	free, err := uc.Create(ctx, dto.CreateClientRequest{Name: "Duda"})
	require.NoError(t, err)
	require.NoError(t, uc.Delete(ctx, free.ID))
	got, err := uc.GetByID(ctx, free.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}
