// Package sales contiene la confirmación de ventas y sus consultas.
package sales

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/orion-pdv/internal/application/inventory"
	"github.com/jhoicas/orion-pdv/internal/domain"
	"github.com/jhoicas/orion-pdv/internal/domain/checkout"
	"github.com/jhoicas/orion-pdv/internal/domain/entity"
	"github.com/jhoicas/orion-pdv/internal/domain/repository"
	"github.com/jhoicas/orion-pdv/pkg/logger"
)

// CommitInput datos de la venta que no vienen del carrito.
type CommitInput struct {
	ClientID        string
	PaymentMethod   string
	DiscountPercent decimal.Decimal
	CashierID       string
}

// Committer convierte el carrito en una venta persistida y descuenta el stock.
type Committer struct {
	mu sync.Mutex

	products repository.ProductRepository
	clients  repository.ClientRepository
	sales    repository.SaleRepository
	ledger   inventory.Adjuster
	metrics  Metrics
	log      *logger.Logger

	now   func() time.Time
	newID func() string
}

// NewCommitter construye el caso de uso. metrics puede ser nil.
func NewCommitter(
	products repository.ProductRepository,
	clients repository.ClientRepository,
	sales repository.SaleRepository,
	ledger inventory.Adjuster,
	metrics Metrics,
	log *logger.Logger,
) *Committer {
	if metrics == nil {
		metrics = noopMetrics{}
	}
	return &Committer{
		products: products,
		clients:  clients,
		sales:    sales,
		ledger:   ledger,
		metrics:  metrics,
		log:      log.Named("sale_committer"),
		now:      time.Now,
		newID:    func() string { return uuid.New().String() },
	}
}

// Commit valida el carrito contra el stock actual, persiste la venta, registra una
// salida de stock por línea y vacía el carrito.
//
// Las validaciones (carrito vacío, cliente, forma de pago, stock, descuento, total)
// no escriben nada. Si algo falla después de persistir la venta, se siguen aplicando
// las líneas restantes, se vacía el carrito y se devuelve la venta junto con un
// *domain.PartialCommitError.
//
// Las confirmaciones se serializan entre sí y el carrito queda bloqueado desde la
// lectura de las líneas hasta que se vacía.
func (c *Committer) Commit(ctx context.Context, cart Cart, in CommitInput) (*entity.Sale, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var sale *entity.Sale
	err := cart.Checkout(ctx, func(lines []entity.CartLine, clear func(context.Context) error) error {
		var err error
		sale, err = c.commitLines(ctx, lines, in, clear)
		return err
	})
	return sale, err
}

func (c *Committer) commitLines(ctx context.Context, lines []entity.CartLine, in CommitInput, clear func(context.Context) error) (*entity.Sale, error) {
	sale, err := c.prepare(ctx, lines, in)
	if err != nil {
		c.metrics.SaleRejected(rejectReason(err))
		return nil, err
	}

	// Desde aquí la venta existe: no se respeta la cancelación del contexto.
	ctx = context.WithoutCancel(ctx)

	if err := c.sales.Create(ctx, sale); err != nil {
		c.metrics.SaleRejected("storage")
		return nil, err
	}

	var (
		missing  []string
		firstErr error
	)
	for _, line := range sale.Lines {
		_, _, err := c.ledger.AdjustStock(ctx, inventory.AdjustStockInput{
			ProductID: line.ProductID,
			Delta:     -line.Quantity,
			Reason:    entity.ReasonSale,
			Note:      "Venda #" + sale.ID,
			ActorID:   in.CashierID,
			SaleID:    sale.ID,
		})
		if err != nil {
			missing = append(missing, line.ProductID)
			if firstErr == nil {
				firstErr = err
			}
			c.log.Error().Err(err).
				Str("sale_id", sale.ID).
				Str("product_id", line.ProductID).
				Int("quantity", line.Quantity).
				Msg("venta persistida sin movimiento de stock")
		}
	}

	clearErr := clear(ctx)

	if len(missing) > 0 || clearErr != nil {
		perr := &domain.PartialCommitError{SaleID: sale.ID, Stage: domain.StageStock, MissingProductIDs: missing, Err: firstErr}
		if len(missing) == 0 {
			perr.Stage, perr.Err = domain.StageCart, clearErr
		} else if clearErr != nil {
			perr.Err = errors.Join(firstErr, clearErr)
		}
		c.metrics.PartialCommit(perr.Stage)
		c.log.Error().Err(perr).
			Str("sale_id", sale.ID).
			Str("stage", perr.Stage).
			Strs("missing_movements", missing).
			Msg("venta confirmada con inconsistencias")
		return sale, perr
	}

	c.metrics.SaleCommitted(sale.PaymentMethod, sale.Total, sale.ItemCount())
	c.log.Info().
		Str("sale_id", sale.ID).
		Str("client_id", sale.ClientID).
		Str("payment", sale.PaymentMethod).
		Str("total", sale.Total.StringFixed(2)).
		Int("lines", len(sale.Lines)).
		Msg("venta confirmada")
	return sale, nil
}

// prepare ejecuta las validaciones de solo lectura y arma la venta.
func (c *Committer) prepare(ctx context.Context, lines []entity.CartLine, in CommitInput) (*entity.Sale, error) {
	if len(lines) == 0 {
		return nil, domain.ErrEmptyCart
	}

	client, err := c.clients.GetByID(ctx, in.ClientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownClient, in.ClientID)
	}

	method, ok := entity.FindPaymentMethod(in.PaymentMethod)
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidPaymentMethod, in.PaymentMethod)
	}

	saleLines := make([]entity.SaleLine, 0, len(lines))
	for _, l := range lines {
		product, err := c.products.GetByID(ctx, l.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, fmt.Errorf("%w: %s", domain.ErrUnknownProduct, l.ProductID)
		}
		if l.Quantity > product.StockQuantity {
			return nil, &domain.OutOfStockError{
				ProductID:   product.ID,
				ProductName: product.Name,
				Requested:   l.Quantity,
				Available:   product.StockQuantity,
			}
		}
		saleLines = append(saleLines, entity.SaleLine{
			ProductID:    l.ProductID,
			ProductName:  product.Name,
			Quantity:     l.Quantity,
			UnitPrice:    l.UnitPriceAtAdd,
			LineSubtotal: l.LineSubtotal,
		})
	}

	totals, err := checkout.ComputeTotals(lines, in.DiscountPercent)
	if err != nil {
		return nil, err
	}
	if !totals.Total.IsPositive() {
		return nil, domain.ErrNonPositiveTotal
	}

	return &entity.Sale{
		ID:              c.newID(),
		Timestamp:       c.now(),
		ClientID:        client.ID,
		ClientName:      client.Name,
		PaymentMethod:   method.Code,
		PaymentLabel:    method.Label,
		Lines:           saleLines,
		Subtotal:        totals.Subtotal,
		DiscountPercent: in.DiscountPercent,
		DiscountAmount:  totals.DiscountAmount,
		Total:           totals.Total,
		CashierID:       in.CashierID,
	}, nil
}

func rejectReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrEmptyCart):
		return "empty_cart"
	case errors.Is(err, domain.ErrUnknownClient):
		return "unknown_client"
	case errors.Is(err, domain.ErrInvalidPaymentMethod):
		return "invalid_payment_method"
	case errors.Is(err, domain.ErrOutOfStock):
		return "out_of_stock"
	case errors.Is(err, domain.ErrUnknownProduct):
		return "unknown_product"
	case errors.Is(err, domain.ErrInvalidDiscount):
		return "invalid_discount"
	case errors.Is(err, domain.ErrNonPositiveTotal):
		return "non_positive_total"
	default:
		return "storage"
	}
}
