package http

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/orion-pdv/internal/application/cart"
	"github.com/jhoicas/orion-pdv/internal/application/dto"
	"github.com/jhoicas/orion-pdv/internal/application/report"
	"github.com/jhoicas/orion-pdv/internal/application/sales"
	"github.com/jhoicas/orion-pdv/internal/domain"
	"github.com/jhoicas/orion-pdv/internal/domain/entity"
)

// SaleHandler maneja checkout, consulta de ventas y comprobantes.
type SaleHandler struct {
	committer *sales.Committer
	cart      *cart.Engine
	query     *sales.QueryUseCase
	receipts  *sales.ReceiptUseCase
	loc       *time.Location
}

// NewSaleHandler construye el handler. loc es la zona usada para interpretar from/to.
func NewSaleHandler(
	committer *sales.Committer,
	engine *cart.Engine,
	query *sales.QueryUseCase,
	receipts *sales.ReceiptUseCase,
	loc *time.Location,
) *SaleHandler {
	if loc == nil {
		loc = time.Local
	}
	return &SaleHandler{committer: committer, cart: engine, query: query, receipts: receipts, loc: loc}
}

// Checkout godoc
// @Summary      Confirmar el carrito como venta
// @Description  Valida cliente, forma de pago, stock y descuento; persiste la venta, descuenta stock
// @Description  y vacía el carrito. Si la venta quedó registrada pero un paso posterior falló, responde
// @Description  500 PARTIAL_COMMIT con la venta y los productos sin movimiento.
// @Tags         sales
// @Accept       json
// @Produce      json
// @Param        X-Cashier-ID  header  string  false  "Operador"
// @Param        body  body  dto.CheckoutRequest  true  "client_id, payment_method, discount_percent"
// @Success      201   {object}  dto.SaleResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.PartialCommitResponse
// @Router       /api/sales [post]
func (h *SaleHandler) Checkout(c *fiber.Ctx) error {
	var in dto.CheckoutRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	clientID := in.ClientID
	if clientID == "" {
		clientID = entity.DefaultClientID
	}
	sale, err := h.committer.Commit(c.UserContext(), h.cart, sales.CommitInput{
		ClientID:        clientID,
		PaymentMethod:   in.PaymentMethod,
		DiscountPercent: in.DiscountPercent,
		CashierID:       GetCashierID(c),
	})
	var partial *domain.PartialCommitError
	if errors.As(err, &partial) {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.PartialCommitResponse{
			Code:              "PARTIAL_COMMIT",
			Message:           partial.Error(),
			SaleID:            partial.SaleID,
			Stage:             partial.Stage,
			MissingProductIDs: partial.MissingProductIDs,
			Sale:              sales.ToSaleResponse(sale),
		})
	}
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(sales.ToSaleResponse(sale))
}

// List godoc
// @Summary      Listar ventas de un período
// @Tags         sales
// @Produce      json
// @Param        from    query  string  false  "Desde (YYYY-MM-DD, inclusive)"
// @Param        to      query  string  false  "Hasta (YYYY-MM-DD, inclusive)"
// @Param        limit   query  int     false  "Tamaño de página (0 = todas)"
// @Param        offset  query  int     false  "Desplazamiento"
// @Success      200  {object}  dto.SaleListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/sales [get]
func (h *SaleHandler) List(c *fiber.Ctx) error {
	var req dto.SaleListRequest
	if err := c.QueryParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_PARAMS", Message: "parámetros de consulta inválidos"})
	}
	from, to, err := report.ParsePeriod(req.From, req.To, h.loc)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.query.ListSales(c.UserContext(), from, to)
	if err != nil {
		return writeError(c, err)
	}
	page := dto.PageRequest{Limit: req.Limit, Offset: req.Offset}
	if page.Paged() {
		start, end := page.Bounds(len(out.Items))
		out.Items = out.Items[start:end]
		out.Page = &dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: out.Total}
	}
	return c.JSON(out)
}

// GetByID GET /api/sales/:id
func (h *SaleHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.query.GetSale(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	if out == nil {
		return notFound(c, "venta no encontrada")
	}
	return c.JSON(out)
}

// Receipt godoc
// @Summary      Cupom não fiscal de una venta
// @Tags         sales
// @Produce      plain
// @Produce      application/pdf
// @Param        id      path   string  true   "ID de la venta"
// @Param        format  query  string  false  "text (default) o pdf"
// @Success      200  {string}  string
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id}/receipt [get]
func (h *SaleHandler) Receipt(c *fiber.Ctx) error {
	format := c.Query("format", sales.ReceiptText)
	out, filename, err := h.receipts.Render(c.UserContext(), c.Params("id"), format)
	if err != nil {
		return writeError(c, err)
	}
	if format == sales.ReceiptPDF {
		c.Set(fiber.HeaderContentType, "application/pdf")
	} else {
		c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
	}
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("inline; filename=%q", filename))
	return c.Send(out)
}

// PaymentMethods GET /api/payment-methods
func PaymentMethods(c *fiber.Ctx) error {
	methods := entity.PaymentMethods()
	out := make([]dto.PaymentMethodResponse, 0, len(methods))
	for _, m := range methods {
		out = append(out, dto.PaymentMethodResponse{Code: m.Code, Label: m.Label})
	}
	return c.JSON(out)
}
