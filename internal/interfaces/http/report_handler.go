package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/orion-pdv/internal/application/dto"
	"github.com/jhoicas/orion-pdv/internal/application/report"
	"github.com/jhoicas/orion-pdv/internal/domain"
)

const mimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ReportHandler expone los reportes de ventas e inventario.
type ReportHandler struct {
	uc  *report.ReportUseCase
	loc *time.Location
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *report.ReportUseCase, loc *time.Location) *ReportHandler {
	if loc == nil {
		loc = time.Local
	}
	return &ReportHandler{uc: uc, loc: loc}
}

// Sales godoc
// @Summary      Reporte de ventas
// @Description  Cantidad, valor total, descuentos, ventas por forma de pago y más vendidos.
// @Tags         reports
// @Produce      json
// @Param        from  query  string  false  "Desde (YYYY-MM-DD, inclusive)"
// @Param        to    query  string  false  "Hasta (YYYY-MM-DD, inclusive)"
// @Success      200  {object}  dto.SalesReportDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/sales [get]
func (h *ReportHandler) Sales(c *fiber.Ctx) error {
	from, to, err := h.period(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.SalesReport(c.UserContext(), from, to)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// SalesXLSX godoc
// @Summary      Reporte de ventas en Excel
// @Tags         reports
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        from  query  string  false  "Desde (YYYY-MM-DD, inclusive)"
// @Param        to    query  string  false  "Hasta (YYYY-MM-DD, inclusive)"
// @Success      200  {file}  file
// @Router       /api/reports/sales.xlsx [get]
func (h *ReportHandler) SalesXLSX(c *fiber.Ctx) error {
	from, to, err := h.period(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.ExportSalesXLSX(c.UserContext(), from, to)
	if err != nil {
		return writeError(c, err)
	}
	return sendXLSX(c, "vendas", out)
}

// Stock godoc
// @Summary      Reporte de inventario
// @Tags         reports
// @Produce      json
// @Success      200  {object}  dto.StockReportDTO
// @Router       /api/reports/stock [get]
func (h *ReportHandler) Stock(c *fiber.Ctx) error {
	out, err := h.uc.StockReport(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// StockXLSX GET /api/reports/stock.xlsx
func (h *ReportHandler) StockXLSX(c *fiber.Ctx) error {
	out, err := h.uc.ExportStockXLSX(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return sendXLSX(c, "estoque", out)
}

func (h *ReportHandler) period(c *fiber.Ctx) (*time.Time, *time.Time, error) {
	var req dto.ReportPeriodRequest
	if err := c.QueryParser(&req); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	return report.ParsePeriod(req.From, req.To, h.loc)
}

func sendXLSX(c *fiber.Ctx, name string, data []byte) error {
	c.Set(fiber.HeaderContentType, mimeXLSX)
	c.Set(fiber.HeaderContentDisposition,
		fmt.Sprintf("attachment; filename=%q", fmt.Sprintf("%s-%s.xlsx", name, time.Now().Format("20060102"))))
	return c.Send(data)
}
