// Package cart implementa el carrito de la terminal: líneas pendientes, validación
// de stock y cálculo de totales.
package cart

import (
	"context"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/orion-pdv/internal/domain"
	"github.com/jhoicas/orion-pdv/internal/domain/checkout"
	"github.com/jhoicas/orion-pdv/internal/domain/entity"
	"github.com/jhoicas/orion-pdv/internal/domain/repository"
)

// Engine mantiene el carrito activo y lo persiste tras cada cambio.
// Una operación rechazada o un fallo al persistir deja el carrito como estaba.
type Engine struct {
	mu       sync.Mutex
	products ProductLookup
	repo     repository.CartRepository
	lines    []entity.CartLine
}

// NewEngine crea un carrito vacío. Usar Restore para recuperar el de la sesión anterior.
func NewEngine(products ProductLookup, repo repository.CartRepository) *Engine {
	return &Engine{products: products, repo: repo}
}

// Restore carga el carrito persistido.
func (e *Engine) Restore(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	lines, err := e.repo.Load(ctx)
	if err != nil {
		return err
	}
	e.lines = lines
	return nil
}

// AddLine agrega quantity unidades del producto. Si ya hay línea, suma cantidades
// y conserva el precio del primer agregado. El producto se relee en cada llamada.
func (e *Engine) AddLine(ctx context.Context, productID string, quantity int) (entity.CartLine, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	product, err := e.lookup(ctx, productID)
	if err != nil {
		return entity.CartLine{}, err
	}

	idx := e.indexOf(productID)
	requested := quantity
	if idx >= 0 {
		requested += e.lines[idx].Quantity
	}
	if quantity <= 0 || requested > product.StockQuantity {
		return entity.CartLine{}, outOfStock(product, requested)
	}

	next := e.copyLines()
	var line entity.CartLine
	if idx >= 0 {
		line = next[idx].WithQuantity(requested)
		next[idx] = line
	} else {
		line = entity.NewCartLine(product, quantity)
		next = append(next, line)
	}
	if err := e.commit(ctx, next); err != nil {
		return entity.CartLine{}, err
	}
	return line, nil
}

// UpdateLineQuantity fija la cantidad de una línea. quantity <= 0 elimina la línea.
func (e *Engine) UpdateLineQuantity(ctx context.Context, productID string, quantity int) (entity.CartLine, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if quantity <= 0 {
		return entity.CartLine{}, e.removeLocked(ctx, productID)
	}
	idx := e.indexOf(productID)
	if idx < 0 {
		return entity.CartLine{}, fmt.Errorf("%w: %s", domain.ErrCartLineNotFound, productID)
	}
	product, err := e.lookup(ctx, productID)
	if err != nil {
		return entity.CartLine{}, err
	}
	if quantity > product.StockQuantity {
		return entity.CartLine{}, outOfStock(product, quantity)
	}

	next := e.copyLines()
	next[idx] = next[idx].WithQuantity(quantity)
	if err := e.commit(ctx, next); err != nil {
		return entity.CartLine{}, err
	}
	return next[idx], nil
}

// RemoveLine quita la línea del producto; si no existe no hace nada.
func (e *Engine) RemoveLine(ctx context.Context, productID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.removeLocked(ctx, productID)
}

func (e *Engine) removeLocked(ctx context.Context, productID string) error {
	idx := e.indexOf(productID)
	if idx < 0 {
		return nil
	}
	next := make([]entity.CartLine, 0, len(e.lines)-1)
	next = append(next, e.lines[:idx]...)
	next = append(next, e.lines[idx+1:]...)
	return e.commit(ctx, next)
}

// ComputeTotals calcula los totales del carrito actual sin modificarlo.
func (e *Engine) ComputeTotals(discountPercent decimal.Decimal) (checkout.Totals, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return checkout.ComputeTotals(e.lines, discountPercent)
}

// Clear vacía el carrito y lo persiste.
func (e *Engine) Clear(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.commit(ctx, nil)
}

// Checkout ejecuta fn con una copia de las líneas y con clear para vaciar el carrito.
// El carrito queda bloqueado hasta que fn termina: ninguna otra operación lo lee ni
// lo modifica en el medio. fn no debe llamar a otros métodos del Engine.
func (e *Engine) Checkout(ctx context.Context, fn func(lines []entity.CartLine, clear func(context.Context) error) error) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return fn(e.copyLines(), func(ctx context.Context) error {
		return e.commit(ctx, nil)
	})
}

// Lines devuelve una copia de las líneas en orden de agregado.
func (e *Engine) Lines() []entity.CartLine {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.copyLines()
}

// ItemCount suma las unidades del carrito.
func (e *Engine) ItemCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	n := 0
	for _, l := range e.lines {
		n += l.Quantity
	}
	return n
}

func (e *Engine) lookup(ctx context.Context, productID string) (*entity.Product, error) {
	product, err := e.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownProduct, productID)
	}
	return product, nil
}

// commit persiste y recién entonces reemplaza el estado en memoria.
func (e *Engine) commit(ctx context.Context, next []entity.CartLine) error {
	if err := e.repo.Save(ctx, next); err != nil {
		return err
	}
	e.lines = next
	return nil
}

func (e *Engine) indexOf(productID string) int {
	for i, l := range e.lines {
		if l.ProductID == productID {
			return i
		}
	}
	return -1
}

func (e *Engine) copyLines() []entity.CartLine {
	out := make([]entity.CartLine, len(e.lines))
	copy(out, e.lines)
	return out
}

func outOfStock(p *entity.Product, requested int) error {
	return &domain.OutOfStockError{
		ProductID:   p.ID,
		ProductName: p.Name,
		Requested:   requested,
		Available:   p.StockQuantity,
	}
}
