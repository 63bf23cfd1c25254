package catalog_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/orion-pdv/internal/application/catalog"
	"github.com/jhoicas/orion-pdv/internal/application/dto"
	"github.com/jhoicas/orion-pdv/internal/application/inventory"
	"github.com/jhoicas/orion-pdv/internal/domain"
	"github.com/jhoicas/orion-pdv/internal/domain/entity"
	"github.com/jhoicas/orion-pdv/internal/domain/repository"
	"github.com/jhoicas/orion-pdv/internal/infrastructure/storage"
	"github.com/jhoicas/orion-pdv/pkg/logger"
)

func newCatalog(t *testing.T) (*catalog.CatalogUseCase, *inventory.StockLedger) {
	t.Helper()
	s := storage.NewMemoryStore()
	products := storage.NewProductRepository(s)
	ledger := inventory.NewStockLedger(products, storage.NewStockMovementRepository(s), nil, logger.Nop())
	return catalog.NewCatalogUseCase(products, ledger, logger.Nop()), ledger
}

func TestCreate_IDEsElCodigoDeBarrasYStockInicialPorLibro(t *testing.T) {
	uc, ledger := newCatalog(t)
	ctx := context.Background()

	out, err := uc.Create(ctx, "admin", dto.CreateProductRequest{
		ScanCode: "7891000100103", Name: "Café Torrado 500g", Group: "Mercearia",
		UnitPrice: decimal.RequireFromString("18.90"), InitialStock: 24, StockMinimum: 6,
	})
	require.NoError(t, err)
	assert.Equal(t, "7891000100103", out.ID)
	assert.Equal(t, 24, out.StockQuantity)
	assert.False(t, out.LowStock)

	movs, err := ledger.ListMovements(ctx, repository.MovementFilter{ProductID: out.ID})
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.Equal(t, entity.ReasonInitialStock, movs[0].Reason)
	assert.Equal(t, "admin", movs[0].ActorID)
}

func TestCreate_SinCodigoGeneraUUIDYSinMovimiento(t *testing.T) {
	uc, ledger := newCatalog(t)
	ctx := context.Background()

	out, err := uc.Create(ctx, "admin", dto.CreateProductRequest{Name: "Pão de queijo", UnitPrice: decimal.NewFromInt(1)})
	require.NoError(t, err)
	assert.Len(t, out.ID, 36)
	assert.Zero(t, out.StockQuantity)

	movs, err := ledger.ListMovements(ctx, repository.MovementFilter{})
	require.NoError(t, err)
	assert.Empty(t, movs)
}

func TestCreate_Validaciones(t *testing.T) {
	uc, _ := newCatalog(t)
	ctx := context.Background()

	_, err := uc.Create(ctx, "", dto.CreateProductRequest{Name: "  "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(ctx, "", dto.CreateProductRequest{Name: "X", UnitPrice: decimal.NewFromInt(-1)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(ctx, "", dto.CreateProductRequest{ScanCode: "1", Name: "X"})
	require.NoError(t, err)
	_, err = uc.Create(ctx, "", dto.CreateProductRequest{ScanCode: "1", Name: "Y"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestFindByScanCode(t *testing.T) {
	uc, _ := newCatalog(t)
	ctx := context.Background()

	created, err := uc.Create(ctx, "", dto.CreateProductRequest{ScanCode: "789", Name: "Leite"})
	require.NoError(t, err)

	got, err := uc.FindByScanCode(ctx, " 789 ")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, created.ID, got.ID)

	missing, err := uc.FindByScanCode(ctx, "000")
	require.NoError(t, err)
	assert.Nil(t, missing)

	_, err = uc.FindByScanCode(ctx, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestList_FiltrosYOrden(t *testing.T) {
	uc, _ := newCatalog(t)
	ctx := context.Background()
	for _, in := range []dto.CreateProductRequest{
		{Name: "Sabão", Group: "Limpeza", Brand: "Ypê", InitialStock: 3},
		{Name: "arroz", Group: "Mercearia", Brand: "Tio João", InitialStock: 10},
		{Name: "Feijão", Group: "Mercearia", Brand: "Camil"},
	} {
		_, err := uc.Create(ctx, "", in)
		require.NoError(t, err)
	}

	all, err := uc.List(ctx, dto.ProductFilter{})
	require.NoError(t, err)
	require.Equal(t, 3, all.Total)
	assert.Equal(t, "arroz", all.Items[0].Name)
	assert.Equal(t, "Feijão", all.Items[1].Name)

	merc, err := uc.List(ctx, dto.ProductFilter{Group: "mercearia", InStockOnly: true})
	require.NoError(t, err)
	require.Equal(t, 1, merc.Total)
	assert.Equal(t, "arroz", merc.Items[0].Name)

	q, err := uc.List(ctx, dto.ProductFilter{Query: "SAB"})
	require.NoError(t, err)
	assert.Equal(t, 1, q.Total)

	groups, err := uc.Groups(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Limpeza", "Mercearia"}, groups)

	brands, err := uc.Brands(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Camil", "Tio João", "Ypê"}, brands)
}

func TestUpdate_NoTocaStock(t *testing.T) {
	uc, _ := newCatalog(t)
	ctx := context.Background()

	created, err := uc.Create(ctx, "", dto.CreateProductRequest{ScanCode: "1", Name: "Café", UnitPrice: decimal.NewFromInt(5), InitialStock: 4})
	require.NoError(t, err)

	price := decimal.RequireFromString("6.50")
	name := "Café Especial"
	out, err := uc.Update(ctx, created.ID, dto.UpdateProductRequest{Name: &name, UnitPrice: &price})
	require.NoError(t, err)
	assert.Equal(t, "Café Especial", out.Name)
	assert.True(t, out.UnitPrice.Equal(price))
	assert.Equal(t, 4, out.StockQuantity)

	missing, err := uc.Update(ctx, "nope", dto.UpdateProductRequest{Name: &name})
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestUpdate_CodigoDeBarrasDuplicado(t *testing.T) {
	uc, _ := newCatalog(t)
	ctx := context.Background()
	_, err := uc.Create(ctx, "", dto.CreateProductRequest{ScanCode: "1", Name: "A"})
	require.NoError(t, err)
	b, err := uc.Create(ctx, "", dto.CreateProductRequest{ScanCode: "2", Name: "B"})
	require.NoError(t, err)

	code := "1"
	_, err = uc.Update(ctx, b.ID, dto.UpdateProductRequest{ScanCode: &code})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

// brokenLedger rechaza todos los ajustes.
type brokenLedger struct{ inventory.Adjuster }

func (brokenLedger) AdjustStock(context.Context, inventory.AdjustStockInput) (*entity.Product, *entity.StockMovement, error) {
	return nil, nil, &domain.StorageError{Op: "cas", Entity: "product", Err: errors.New("quota excedida")}
}

func TestCreate_FalloDelStockInicialDevuelveElProducto(t *testing.T) {
	s := storage.NewMemoryStore()
	products := storage.NewProductRepository(s)
	uc := catalog.NewCatalogUseCase(products, brokenLedger{}, logger.Nop())
	ctx := context.Background()

	out, err := uc.Create(ctx, "admin", dto.CreateProductRequest{
		ScanCode: "7891000055505", Name: "Arroz 5kg", UnitPrice: decimal.RequireFromString("27.50"), InitialStock: 10,
	})
	require.ErrorIs(t, err, domain.ErrStorageFailure)
	assert.Contains(t, err.Error(), "7891000055505")
	require.NotNil(t, out)
	assert.Equal(t, "7891000055505", out.ID)
	assert.Zero(t, out.StockQuantity)

	stored, err := products.GetByID(ctx, out.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Zero(t, stored.StockQuantity)
}
