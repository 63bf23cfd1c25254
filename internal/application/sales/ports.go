package sales

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/orion-pdv/internal/domain/entity"
)

// Cart lo que el committer necesita del carrito. Checkout entrega las líneas y la
// función para vaciarlo sin que otra operación del carrito intervenga mientras fn corre.
type Cart interface {
	Checkout(ctx context.Context, fn func(lines []entity.CartLine, clear func(context.Context) error) error) error
}

// Metrics puerto de métricas de ventas. Puede ser nil.
type Metrics interface {
	SaleCommitted(paymentMethod string, total decimal.Decimal, items int)
	SaleRejected(reason string)
	PartialCommit(stage string)
}

// ReceiptRenderer genera el comprobante de una venta en un formato concreto.
type ReceiptRenderer interface {
	Render(ctx context.Context, sale *entity.Sale, settings *entity.StoreSettings) ([]byte, error)
}

type noopMetrics struct{}

func (noopMetrics) SaleCommitted(string, decimal.Decimal, int) {}
func (noopMetrics) SaleRejected(string)                        {}
func (noopMetrics) PartialCommit(string)                       {}
