// Package report contiene los reportes de ventas e inventario y su exportación.
package report

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/orion-pdv/internal/application/dto"
	"github.com/jhoicas/orion-pdv/internal/domain"
	"github.com/jhoicas/orion-pdv/internal/domain/entity"
	"github.com/jhoicas/orion-pdv/internal/domain/repository"
)

const dateLayout = "2006-01-02"

// ReportUseCase genera reportes de solo lectura sobre ventas y productos.
type ReportUseCase struct {
	sales    repository.SaleRepository
	products repository.ProductRepository
	exporter Exporter
	now      func() time.Time
}

// NewReportUseCase construye el caso de uso. exporter puede ser nil si no se exporta a planilla.
func NewReportUseCase(sales repository.SaleRepository, products repository.ProductRepository, exporter Exporter) *ReportUseCase {
	return &ReportUseCase{sales: sales, products: products, exporter: exporter, now: time.Now}
}

// SalesReport agrega las ventas en [from, to). Fechas nil = sin límite.
func (uc *ReportUseCase) SalesReport(ctx context.Context, from, to *time.Time) (*dto.SalesReportDTO, error) {
	list, err := uc.sales.List(ctx, repository.SaleFilter{From: from, To: to})
	if err != nil {
		return nil, fmt.Errorf("report: listar ventas: %w", err)
	}

	out := &dto.SalesReportDTO{
		From:            from,
		To:              to,
		TotalValue:      decimal.Zero,
		TotalDiscount:   decimal.Zero,
		AverageTicket:   decimal.Zero,
		ByPaymentMethod: make([]dto.PaymentSummaryDTO, 0),
		BestSellers:     make([]dto.BestSellerDTO, 0),
	}

	byMethod := make(map[string]*dto.PaymentSummaryDTO)
	var methodOrder []string
	byProduct := make(map[string]*dto.BestSellerDTO)

	for _, s := range list {
		out.SaleCount++
		out.ItemsSold += s.ItemCount()
		out.TotalValue = out.TotalValue.Add(s.Total)
		out.TotalDiscount = out.TotalDiscount.Add(s.DiscountAmount)

		pm, ok := byMethod[s.PaymentMethod]
		if !ok {
			pm = &dto.PaymentSummaryDTO{Code: s.PaymentMethod, Label: s.PaymentLabel, Value: decimal.Zero}
			byMethod[s.PaymentMethod] = pm
			methodOrder = append(methodOrder, s.PaymentMethod)
		}
		pm.Count++
		pm.Value = pm.Value.Add(s.Total)

		for _, l := range s.Lines {
			bs, ok := byProduct[l.ProductID]
			if !ok {
				bs = &dto.BestSellerDTO{ProductID: l.ProductID, ProductName: l.ProductName, Value: decimal.Zero}
				byProduct[l.ProductID] = bs
			}
			bs.Quantity += l.Quantity
			bs.Value = bs.Value.Add(l.LineSubtotal)
		}
	}

	if out.SaleCount > 0 {
		out.AverageTicket = out.TotalValue.Div(decimal.NewFromInt(int64(out.SaleCount)))
	}

	// Formas de pago en el orden del catálogo; las desconocidas al final.
	for _, m := range entity.PaymentMethods() {
		if pm, ok := byMethod[m.Code]; ok {
			out.ByPaymentMethod = append(out.ByPaymentMethod, *pm)
			delete(byMethod, m.Code)
		}
	}
	for _, code := range methodOrder {
		if pm, ok := byMethod[code]; ok {
			out.ByPaymentMethod = append(out.ByPaymentMethod, *pm)
		}
	}

	for _, bs := range byProduct {
		out.BestSellers = append(out.BestSellers, *bs)
	}
	sort.Slice(out.BestSellers, func(i, j int) bool {
		a, b := out.BestSellers[i], out.BestSellers[j]
		if a.Quantity != b.Quantity {
			return a.Quantity > b.Quantity
		}
		return a.ProductName < b.ProductName
	})
	for i := range out.BestSellers {
		out.BestSellers[i].Rank = i + 1
	}
	return out, nil
}

// StockReport resume el inventario: valor total, productos con stock bajo y agotados.
func (uc *ReportUseCase) StockReport(ctx context.Context) (*dto.StockReportDTO, error) {
	list, err := uc.products.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("report: listar productos: %w", err)
	}
	sort.SliceStable(list, func(i, j int) bool {
		return strings.ToLower(list[i].Name) < strings.ToLower(list[j].Name)
	})

	out := &dto.StockReportDTO{
		GeneratedAt:  uc.now(),
		ProductCount: len(list),
		StockValue:   decimal.Zero,
		Items:        make([]dto.StockItemDTO, 0, len(list)),
		LowStock:     make([]dto.StockItemDTO, 0),
		OutOfStock:   make([]dto.StockItemDTO, 0),
	}
	for _, p := range list {
		item := dto.StockItemDTO{
			ProductID:    p.ID,
			ScanCode:     p.ScanCode,
			Name:         p.Name,
			Group:        p.Group,
			Stock:        p.StockQuantity,
			StockMinimum: p.StockMinimum,
			UnitPrice:    p.UnitPrice,
			StockValue:   p.StockValue(),
		}
		out.Items = append(out.Items, item)
		out.TotalUnits += p.StockQuantity
		out.StockValue = out.StockValue.Add(item.StockValue)
		switch {
		case p.StockQuantity <= 0:
			out.OutOfStock = append(out.OutOfStock, item)
		case p.IsLowStock():
			out.LowStock = append(out.LowStock, item)
		}
	}
	return out, nil
}

// ExportSalesXLSX genera la planilla del reporte de ventas.
func (uc *ReportUseCase) ExportSalesXLSX(ctx context.Context, from, to *time.Time) ([]byte, error) {
	if uc.exporter == nil {
		return nil, fmt.Errorf("report: exportador no configurado")
	}
	r, err := uc.SalesReport(ctx, from, to)
	if err != nil {
		return nil, err
	}
	return uc.exporter.SalesSheet(r)
}

// ExportStockXLSX genera la planilla del reporte de stock.
func (uc *ReportUseCase) ExportStockXLSX(ctx context.Context) ([]byte, error) {
	if uc.exporter == nil {
		return nil, fmt.Errorf("report: exportador no configurado")
	}
	r, err := uc.StockReport(ctx)
	if err != nil {
		return nil, err
	}
	return uc.exporter.StockSheet(r)
}

// ParsePeriod convierte fechas YYYY-MM-DD en un rango [from, to) en la zona loc.
// to es inclusivo como día: se devuelve la medianoche del día siguiente. Vacío = sin límite.
func ParsePeriod(fromStr, toStr string, loc *time.Location) (from, to *time.Time, err error) {
	if loc == nil {
		loc = time.Local
	}
	if fromStr = strings.TrimSpace(fromStr); fromStr != "" {
		t, err := time.ParseInLocation(dateLayout, fromStr, loc)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: from inválido %q", domain.ErrInvalidInput, fromStr)
		}
		from = &t
	}
	if toStr = strings.TrimSpace(toStr); toStr != "" {
		t, err := time.ParseInLocation(dateLayout, toStr, loc)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: to inválido %q", domain.ErrInvalidInput, toStr)
		}
		t = t.AddDate(0, 0, 1)
		to = &t
	}
	if from != nil && to != nil && !from.Before(*to) {
		return nil, nil, fmt.Errorf("%w: from no puede ser posterior a to", domain.ErrInvalidInput)
	}
	return from, to, nil
}
