package inventory

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/orion-pdv/internal/domain"
	"github.com/jhoicas/orion-pdv/internal/domain/entity"
	"github.com/jhoicas/orion-pdv/internal/domain/repository"
	"github.com/jhoicas/orion-pdv/pkg/logger"
)

var _ Adjuster = (*StockLedger)(nil)

// AdjustStockInput entrada de AdjustStock. Delta positivo = entrada, negativo = salida.
type AdjustStockInput struct {
	ProductID string
	Delta     int
	Reason    string
	Note      string
	ActorID   string
	SaleID    string
}

// StockLedger aplica ajustes de stock y registra el movimiento correspondiente.
// Es el único camino que modifica Product.StockQuantity.
type StockLedger struct {
	mu        sync.Mutex
	products  repository.ProductRepository
	movements repository.StockMovementRepository
	metrics   Metrics
	log       *logger.Logger

	now   func() time.Time
	newID func() string
}

// NewStockLedger construye el libro de stock. metrics puede ser nil.
func NewStockLedger(
	products repository.ProductRepository,
	movements repository.StockMovementRepository,
	metrics Metrics,
	log *logger.Logger,
) *StockLedger {
	if metrics == nil {
		metrics = noopMetrics{}
	}
	return &StockLedger{
		products:  products,
		movements: movements,
		metrics:   metrics,
		log:       log.Named("stock_ledger"),
		now:       time.Now,
		newID:     func() string { return uuid.New().String() },
	}
}

// AdjustStock suma Delta al stock del producto y agrega un StockMovement.
//
// Errores:
//   - domain.ErrInvalidInput        si Delta == 0 o Reason está vacío.
//   - domain.ErrUnknownProduct      si el producto no existe.
//   - domain.ErrNegativeStockResult si el stock quedaría negativo (sin cambios).
//   - domain.ErrConflict            si otro escritor modificó el producto.
func (l *StockLedger) AdjustStock(ctx context.Context, in AdjustStockInput) (*entity.Product, *entity.StockMovement, error) {
	if in.Delta == 0 || strings.TrimSpace(in.Reason) == "" {
		return nil, nil, domain.ErrInvalidInput
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	product, err := l.products.GetByID(ctx, in.ProductID)
	if err != nil {
		return nil, nil, err
	}
	if product == nil {
		return nil, nil, fmt.Errorf("%w: %s", domain.ErrUnknownProduct, in.ProductID)
	}

	before := product.StockQuantity
	after := before + in.Delta
	if after < 0 {
		return nil, nil, fmt.Errorf("%w: %s tiene %d, ajuste %d",
			domain.ErrNegativeStockResult, product.ID, before, in.Delta)
	}

	now := l.now()
	product.StockQuantity = after
	product.UpdatedAt = now
	if err := l.products.Update(ctx, product); err != nil {
		return nil, nil, err
	}

	kind, qty := entity.MovementInbound, in.Delta
	if in.Delta < 0 {
		kind, qty = entity.MovementOutbound, -in.Delta
	}
	movement := &entity.StockMovement{
		ID:          l.newID(),
		Timestamp:   now,
		ProductID:   product.ID,
		ProductName: product.Name,
		Kind:        kind,
		Quantity:    qty,
		Reason:      in.Reason,
		Note:        in.Note,
		ActorID:     in.ActorID,
		SaleID:      in.SaleID,
		StockBefore: before,
		StockAfter:  after,
	}
	if err := l.movements.Create(ctx, movement); err != nil {
		l.log.Error().Err(err).
			Str("product_id", product.ID).
			Int("delta", in.Delta).
			Msg("stock actualizado sin movimiento registrado")
		return product, nil, err
	}

	l.metrics.StockMovementRecorded(kind, in.Reason, qty)
	l.log.Debug().
		Str("product_id", product.ID).
		Str("kind", kind).
		Int("quantity", qty).
		Int("stock", after).
		Str("reason", in.Reason).
		Msg("movimiento de stock")
	return product, movement, nil
}

// ListMovements devuelve los movimientos en orden de registro.
func (l *StockLedger) ListMovements(ctx context.Context, filter repository.MovementFilter) ([]*entity.StockMovement, error) {
	return l.movements.List(ctx, filter)
}
