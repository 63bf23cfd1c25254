package http

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/orion-pdv/internal/application/cart"
	"github.com/jhoicas/orion-pdv/internal/application/catalog"
	"github.com/jhoicas/orion-pdv/internal/application/dto"
	"github.com/jhoicas/orion-pdv/internal/domain"
	"github.com/jhoicas/orion-pdv/pkg/money"
)

// CartHandler expone el carrito activo de la terminal.
type CartHandler struct {
	engine  *cart.Engine
	catalog *catalog.CatalogUseCase
}

// NewCartHandler construye el handler.
func NewCartHandler(engine *cart.Engine, catalog *catalog.CatalogUseCase) *CartHandler {
	return &CartHandler{engine: engine, catalog: catalog}
}

// Get godoc
// @Summary      Carrito activo con totales
// @Tags         cart
// @Produce      json
// @Param        discount  query  number  false  "Descuento % (0-100)"
// @Success      200  {object}  dto.CartResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/cart [get]
func (h *CartHandler) Get(c *fiber.Ctx) error {
	return h.respond(c, fiber.StatusOK)
}

// AddLine godoc
// @Summary      Agregar producto al carrito (por product_id o scan_code)
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AddCartLineRequest  true  "product_id o scan_code, quantity (default 1)"
// @Success      201   {object}  dto.CartResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/cart/lines [post]
func (h *CartHandler) AddLine(c *fiber.Ctx) error {
	var in dto.AddCartLineRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	productID := strings.TrimSpace(in.ProductID)
	if productID == "" {
		if strings.TrimSpace(in.ScanCode) == "" {
			return writeError(c, fmt.Errorf("%w: product_id o scan_code es requerido", domain.ErrInvalidInput))
		}
		p, err := h.catalog.FindByScanCode(c.UserContext(), in.ScanCode)
		if err != nil {
			return writeError(c, err)
		}
		if p == nil {
			return writeError(c, fmt.Errorf("%w: código %q", domain.ErrUnknownProduct, in.ScanCode))
		}
		productID = p.ID
	}
	qty := in.Quantity
	if qty == 0 {
		qty = 1
	}
	if _, err := h.engine.AddLine(c.UserContext(), productID, qty); err != nil {
		return writeError(c, err)
	}
	return h.respond(c, fiber.StatusCreated)
}

// UpdateLine godoc
// @Summary      Cambiar cantidad de una línea (0 la elimina)
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        product_id  path  string  true  "Producto"
// @Param        body  body  dto.UpdateCartLineRequest  true  "quantity"
// @Success      200   {object}  dto.CartResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/cart/lines/{product_id} [put]
func (h *CartHandler) UpdateLine(c *fiber.Ctx) error {
	var in dto.UpdateCartLineRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if _, err := h.engine.UpdateLineQuantity(c.UserContext(), c.Params("product_id"), in.Quantity); err != nil {
		return writeError(c, err)
	}
	return h.respond(c, fiber.StatusOK)
}

// RemoveLine DELETE /api/cart/lines/:product_id
func (h *CartHandler) RemoveLine(c *fiber.Ctx) error {
	if err := h.engine.RemoveLine(c.UserContext(), c.Params("product_id")); err != nil {
		return writeError(c, err)
	}
	return h.respond(c, fiber.StatusOK)
}

// Clear DELETE /api/cart
func (h *CartHandler) Clear(c *fiber.Ctx) error {
	if err := h.engine.Clear(c.UserContext()); err != nil {
		return writeError(c, err)
	}
	return h.respond(c, fiber.StatusOK)
}

// Totals godoc
// @Summary      Totales del carrito para un descuento
// @Tags         cart
// @Produce      json
// @Param        discount  query  number  false  "Descuento % (0-100)"
// @Success      200  {object}  dto.CartTotalsResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/cart/totals [get]
func (h *CartHandler) Totals(c *fiber.Ctx) error {
	pct, err := discountParam(c)
	if err != nil {
		return writeError(c, err)
	}
	totals, err := h.engine.ComputeTotals(pct)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.CartTotalsResponse{
		ItemCount:             h.engine.ItemCount(),
		DiscountPercent:       pct,
		Subtotal:              totals.Subtotal,
		DiscountAmount:        totals.DiscountAmount,
		Total:                 totals.Total,
		SubtotalDisplay:       money.BRL(totals.Subtotal),
		DiscountAmountDisplay: money.BRL(totals.DiscountAmount),
		TotalDisplay:          money.BRL(totals.Total),
	})
}

func (h *CartHandler) respond(c *fiber.Ctx, status int) error {
	pct, err := discountParam(c)
	if err != nil {
		return writeError(c, err)
	}
	lines := h.engine.Lines()
	totals, err := h.engine.ComputeTotals(pct)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(status).JSON(cart.ToCartResponse(lines, pct, totals))
}

// discountParam lee ?discount=; ausente = 0. El rango lo valida ComputeTotals.
func discountParam(c *fiber.Ctx) (decimal.Decimal, error) {
	raw := strings.TrimSpace(c.Query("discount"))
	if raw == "" {
		return decimal.Zero, nil
	}
	pct, err := decimal.NewFromString(strings.ReplaceAll(raw, ",", "."))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: discount %q", domain.ErrInvalidInput, raw)
	}
	return pct, nil
}
