package entity

import "time"

// Dirección del movimiento de stock.
const (
	MovementInbound  = "inbound"
	MovementOutbound = "outbound"
)

// Motivos de movimiento.
const (
	ReasonSale             = "sale"
	ReasonManualAdjustment = "manual-adjustment"
	ReasonInitialStock     = "initial-stock"
)

// StockMovement es una entrada del libro de stock (solo se agrega, nunca se edita).
// Quantity es siempre positiva; la dirección la da Kind.
type StockMovement struct {
	ID          string
	Timestamp   time.Time
	ProductID   string
	ProductName string
	Kind        string // inbound, outbound
	Quantity    int
	Reason      string
	Note        string
	ActorID     string
	SaleID      string // solo para Reason == ReasonSale
	StockBefore int
	StockAfter  int
}

// Delta devuelve la variación con signo que produjo el movimiento.
func (m *StockMovement) Delta() int {
	if m.Kind == MovementOutbound {
		return -m.Quantity
	}
	return m.Quantity
}
