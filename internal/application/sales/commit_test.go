package sales_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/orion-pdv/internal/application/cart"
	"github.com/jhoicas/orion-pdv/internal/application/clients"
	"github.com/jhoicas/orion-pdv/internal/application/inventory"
	"github.com/jhoicas/orion-pdv/internal/application/sales"
	"github.com/jhoicas/orion-pdv/internal/domain"
	"github.com/jhoicas/orion-pdv/internal/domain/entity"
	"github.com/jhoicas/orion-pdv/internal/domain/repository"
	"github.com/jhoicas/orion-pdv/internal/infrastructure/storage"
	"github.com/jhoicas/orion-pdv/pkg/logger"
)

type fakeMetrics struct {
	committed int
	rejected  []string
	partial   []string
}

func (m *fakeMetrics) SaleCommitted(string, decimal.Decimal, int) { m.committed++ }
func (m *fakeMetrics) SaleRejected(reason string)                 { m.rejected = append(m.rejected, reason) }
func (m *fakeMetrics) PartialCommit(stage string)                 { m.partial = append(m.partial, stage) }

type fixture struct {
	products  *storage.ProductRepo
	sales     *storage.SaleRepo
	movements *storage.StockMovementRepo
	clients   *storage.ClientRepo
	ledger    *inventory.StockLedger
	cart      *cart.Engine
	metrics   *fakeMetrics
	committer *sales.Committer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	s := storage.NewMemoryStore()
	f := &fixture{
		products:  storage.NewProductRepository(s),
		sales:     storage.NewSaleRepository(s),
		movements: storage.NewStockMovementRepository(s),
		metrics:   &fakeMetrics{},
	}
	f.clients = storage.NewClientRepository(s)
	require.NoError(t, clients.NewClientUseCase(f.clients, f.sales).EnsureDefault(ctx))
	require.NoError(t, f.products.Create(ctx, &entity.Product{ID: "A", Name: "Café", UnitPrice: decimal.RequireFromString("5.99"), StockQuantity: 5}))
	require.NoError(t, f.products.Create(ctx, &entity.Product{ID: "B", Name: "Queijo", UnitPrice: decimal.RequireFromString("22.90"), StockQuantity: 3}))

	f.ledger = inventory.NewStockLedger(f.products, f.movements, nil, logger.Nop())
	f.cart = cart.NewEngine(f.products, storage.NewCartRepository(s))
	f.committer = sales.NewCommitter(f.products, f.clients, f.sales, f.ledger, f.metrics, logger.Nop())
	return f
}

func (f *fixture) fillCart(t *testing.T) {
	t.Helper()
	ctx := context.Background()
	_, err := f.cart.AddLine(ctx, "A", 2)
	require.NoError(t, err)
	_, err = f.cart.AddLine(ctx, "B", 1)
	require.NoError(t, err)
}

func (f *fixture) stock(t *testing.T, id string) int {
	t.Helper()
	p, err := f.products.GetByID(context.Background(), id)
	require.NoError(t, err)
	return p.StockQuantity
}

func (f *fixture) saleCount(t *testing.T) int {
	t.Helper()
	list, err := f.sales.List(context.Background(), repository.SaleFilter{})
	require.NoError(t, err)
	return len(list)
}

func defaultInput() sales.CommitInput {
	return sales.CommitInput{
		ClientID:        entity.DefaultClientID,
		PaymentMethod:   "pix",
		DiscountPercent: decimal.NewFromInt(10),
		CashierID:       "caixa-01",
	}
}

func TestCommit_Exito(t *testing.T) {
	f := newFixture(t)
	f.fillCart(t)
	ctx := context.Background()

	sale, err := f.committer.Commit(ctx, f.cart, defaultInput())
	require.NoError(t, err)

	assert.NotEmpty(t, sale.ID)
	assert.Equal(t, "Consumidor Final", sale.ClientName)
	assert.Equal(t, "PIX", sale.PaymentLabel)
	assert.Equal(t, "caixa-01", sale.CashierID)
	require.Len(t, sale.Lines, 2)
	assert.Equal(t, "Café", sale.Lines[0].ProductName)
	assert.True(t, sale.Subtotal.Equal(decimal.RequireFromString("34.88")))
	assert.True(t, sale.DiscountAmount.Equal(decimal.RequireFromString("3.488")))
	assert.True(t, sale.Total.Equal(decimal.RequireFromString("31.392")))

	assert.Equal(t, 3, f.stock(t, "A"))
	assert.Equal(t, 2, f.stock(t, "B"))

	movs, err := f.movements.List(ctx, repository.MovementFilter{SaleID: sale.ID})
	require.NoError(t, err)
	require.Len(t, movs, 2)
	for _, m := range movs {
		assert.Equal(t, entity.MovementOutbound, m.Kind)
		assert.Equal(t, entity.ReasonSale, m.Reason)
		assert.Equal(t, "Venda #"+sale.ID, m.Note)
	}

	assert.Empty(t, f.cart.Lines())
	stored, err := f.sales.GetByID(ctx, sale.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.True(t, stored.Total.Equal(sale.Total))
	assert.Equal(t, 1, f.metrics.committed)
}

func TestCommit_CarritoVacioNoEscribe(t *testing.T) {
	f := newFixture(t)

	_, err := f.committer.Commit(context.Background(), f.cart, defaultInput())
	assert.ErrorIs(t, err, domain.ErrEmptyCart)
	assert.Zero(t, f.saleCount(t))
	assert.Equal(t, []string{"empty_cart"}, f.metrics.rejected)
}

func TestCommit_ClienteDesconocido(t *testing.T) {
	f := newFixture(t)
	f.fillCart(t)
	in := defaultInput()
	in.ClientID = "999"

	_, err := f.committer.Commit(context.Background(), f.cart, in)
	assert.ErrorIs(t, err, domain.ErrUnknownClient)
	assert.Zero(t, f.saleCount(t))
	assert.Len(t, f.cart.Lines(), 2)
}

func TestCommit_FormaDePagoInvalida(t *testing.T) {
	f := newFixture(t)
	f.fillCart(t)
	in := defaultInput()
	in.PaymentMethod = "bitcoin"

	_, err := f.committer.Commit(context.Background(), f.cart, in)
	assert.ErrorIs(t, err, domain.ErrInvalidPaymentMethod)
	assert.Zero(t, f.saleCount(t))
}

func TestCommit_StockCambioDesdeElAgregado(t *testing.T) {
	f := newFixture(t)
	f.fillCart(t)
	ctx := context.Background()

	// Otra operación deja B sin stock entre el agregado y la confirmación.
	_, _, err := f.ledger.AdjustStock(ctx, inventory.AdjustStockInput{ProductID: "B", Delta: -3, Reason: entity.ReasonManualAdjustment})
	require.NoError(t, err)

	_, err = f.committer.Commit(ctx, f.cart, defaultInput())
	require.ErrorIs(t, err, domain.ErrOutOfStock)
	var oos *domain.OutOfStockError
	require.ErrorAs(t, err, &oos)
	assert.Equal(t, "B", oos.ProductID)
	assert.Equal(t, 0, oos.Available)

	assert.Zero(t, f.saleCount(t))
	assert.Equal(t, 5, f.stock(t, "A"))
	assert.Len(t, f.cart.Lines(), 2, "el carrito queda intacto")
}

func TestCommit_UsaPrecioDelAgregado(t *testing.T) {
	f := newFixture(t)
	f.fillCart(t)
	ctx := context.Background()

	p, err := f.products.GetByID(ctx, "A")
	require.NoError(t, err)
	p.UnitPrice = decimal.RequireFromString("7.50")
	require.NoError(t, f.products.Update(ctx, p))

	sale, err := f.committer.Commit(ctx, f.cart, defaultInput())
	require.NoError(t, err)
	assert.True(t, sale.Lines[0].UnitPrice.Equal(decimal.RequireFromString("5.99")))
	assert.True(t, sale.Subtotal.Equal(decimal.RequireFromString("34.88")))
}

func TestCommit_DescuentoTotalRechazado(t *testing.T) {
	f := newFixture(t)
	f.fillCart(t)
	in := defaultInput()
	in.DiscountPercent = decimal.NewFromInt(100)

	_, err := f.committer.Commit(context.Background(), f.cart, in)
	assert.ErrorIs(t, err, domain.ErrNonPositiveTotal)
	assert.Zero(t, f.saleCount(t))

	in.DiscountPercent = decimal.NewFromInt(-5)
	_, err = f.committer.Commit(context.Background(), f.cart, in)
	assert.ErrorIs(t, err, domain.ErrInvalidDiscount)
}

func TestCommit_IDsUnicos(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	seen := map[string]bool{}
	for i := 0; i < 3; i++ {
		_, err := f.cart.AddLine(ctx, "A", 1)
		require.NoError(t, err)
		sale, err := f.committer.Commit(ctx, f.cart, defaultInput())
		require.NoError(t, err)
		assert.False(t, seen[sale.ID])
		seen[sale.ID] = true
	}
	assert.Equal(t, 2, f.stock(t, "A"))
}

// flakyLedger falla para un producto concreto.
type flakyLedger struct {
	inventory.Adjuster
	failFor string
}

func (l flakyLedger) AdjustStock(ctx context.Context, in inventory.AdjustStockInput) (*entity.Product, *entity.StockMovement, error) {
	if in.ProductID == l.failFor {
		return nil, nil, &domain.StorageError{Op: "cas", Entity: "product", Err: errors.New("quota excedida")}
	}
	return l.Adjuster.AdjustStock(ctx, in)
}

func TestCommit_FalloParcialTrasPersistirLaVenta(t *testing.T) {
	f := newFixture(t)
	f.fillCart(t)
	ctx := context.Background()
	committer := sales.NewCommitter(f.products, f.clients, f.sales,
		flakyLedger{Adjuster: f.ledger, failFor: "A"}, f.metrics, logger.Nop())

	sale, err := committer.Commit(ctx, f.cart, defaultInput())
	require.ErrorIs(t, err, domain.ErrPartialCommit)
	require.ErrorIs(t, err, domain.ErrStorageFailure)
	require.NotNil(t, sale)

	var perr *domain.PartialCommitError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, sale.ID, perr.SaleID)
	assert.Equal(t, domain.StageStock, perr.Stage)
	assert.Equal(t, []string{"A"}, perr.MissingProductIDs)

	// la venta existe, B se descontó, A no, y el carrito se vació
	assert.Equal(t, 1, f.saleCount(t))
	assert.Equal(t, 5, f.stock(t, "A"))
	assert.Equal(t, 2, f.stock(t, "B"))
	assert.Empty(t, f.cart.Lines())
	assert.Equal(t, []string{domain.StageStock}, f.metrics.partial)
}

// stuckCart no puede vaciarse.
type stuckCart struct{ *cart.Engine }

func (c stuckCart) Checkout(ctx context.Context, fn func([]entity.CartLine, func(context.Context) error) error) error {
	return c.Engine.Checkout(ctx, func(lines []entity.CartLine, _ func(context.Context) error) error {
		return fn(lines, func(context.Context) error {
			return &domain.StorageError{Op: "put", Entity: "cart", Err: errors.New("quota excedida")}
		})
	})
}

func TestCommit_FalloAlVaciarElCarrito(t *testing.T) {
	f := newFixture(t)
	f.fillCart(t)

	sale, err := f.committer.Commit(context.Background(), stuckCart{f.cart}, defaultInput())
	require.ErrorIs(t, err, domain.ErrPartialCommit)
	var perr *domain.PartialCommitError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, domain.StageCart, perr.Stage)
	assert.Empty(t, perr.MissingProductIDs)
	assert.Equal(t, 3, f.stock(t, "A"))
	assert.NotNil(t, sale)
}

func TestCommit_DobleEnvioConcurrenteCreaUnaSolaVenta(t *testing.T) {
	f := newFixture(t)
	f.fillCart(t)
	ctx := context.Background()

	var (
		wg    sync.WaitGroup
		start = make(chan struct{})
		errs  = make([]error, 2)
		got   = make([]*entity.Sale, 2)
	)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			got[i], errs[i] = f.committer.Commit(ctx, f.cart, defaultInput())
		}(i)
	}
	close(start)
	wg.Wait()

	var ok, empty int
	for i, err := range errs {
		switch {
		case err == nil:
			ok++
			require.NotNil(t, got[i])
		case errors.Is(err, domain.ErrEmptyCart):
			empty++
		default:
			t.Fatalf("error inesperado: %v", err)
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, 1, empty)
	assert.Equal(t, 1, f.saleCount(t))
	assert.Equal(t, 3, f.stock(t, "A"))
	assert.Equal(t, 2, f.stock(t, "B"))

	movs, err := f.movements.List(ctx, repository.MovementFilter{})
	require.NoError(t, err)
	assert.Len(t, movs, 2)
	assert.Empty(t, f.cart.Lines())
}

// interleavedCart ejecuta during mientras la confirmación tiene las líneas.
type interleavedCart struct {
	*cart.Engine
	during func()
}

func (c interleavedCart) Checkout(ctx context.Context, fn func([]entity.CartLine, func(context.Context) error) error) error {
	return c.Engine.Checkout(ctx, func(lines []entity.CartLine, clear func(context.Context) error) error {
		c.during()
		return fn(lines, clear)
	})
}

func TestCommit_LineaAgregadaDuranteLaConfirmacionNoSePierde(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.cart.AddLine(ctx, "A", 2)
	require.NoError(t, err)

	added := make(chan error, 1)
	c := interleavedCart{Engine: f.cart, during: func() {
		go func() {
			_, err := f.cart.AddLine(ctx, "B", 1)
			added <- err
		}()
	}}

	sale, err := f.committer.Commit(ctx, c, defaultInput())
	require.NoError(t, err)
	require.NoError(t, <-added)

	require.Len(t, sale.Lines, 1)
	assert.Equal(t, "A", sale.Lines[0].ProductID)

	lines := f.cart.Lines()
	require.Len(t, lines, 1, "la línea agregada queda para la próxima venta")
	assert.Equal(t, "B", lines[0].ProductID)
	assert.Equal(t, 1, lines[0].Quantity)
	assert.Equal(t, 3, f.stock(t, "A"))
	assert.Equal(t, 3, f.stock(t, "B"))
}
