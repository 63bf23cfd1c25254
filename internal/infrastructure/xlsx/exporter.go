// Package xlsx exporta los reportes a planillas Excel.
package xlsx

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/orion-pdv/internal/application/dto"
	"github.com/jhoicas/orion-pdv/pkg/money"
)

const (
	summarySheet = "Resumo"
	paymentSheet = "Pagamentos"
	sellersSheet = "Mais vendidos"
	stockSheet   = "Estoque"
	lowSheet     = "Estoque baixo"
)

// Exporter implementa report.Exporter con excelize.
type Exporter struct{}

// NewExporter construye el exportador.
func NewExporter() *Exporter { return &Exporter{} }

// SalesSheet genera resumen, formas de pago y más vendidos en hojas separadas.
func (e *Exporter) SalesSheet(r *dto.SalesReportDTO) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(f.GetActiveSheetIndex()), summarySheet); err != nil {
		return nil, fmt.Errorf("xlsx: renombrar hoja: %w", err)
	}
	period := "Todo o período"
	if r.From != nil || r.To != nil {
		period = periodLabel(r)
	}
	summary := [][]interface{}{
		{"Período", period},
		{"Vendas", r.SaleCount},
		{"Itens vendidos", r.ItemsSold},
		{"Valor total", money.Round2(r.TotalValue).InexactFloat64()},
		{"Descontos", money.Round2(r.TotalDiscount).InexactFloat64()},
		{"Ticket médio", money.Round2(r.AverageTicket).InexactFloat64()},
	}
	if err := writeRows(f, summarySheet, nil, summary); err != nil {
		return nil, err
	}

	payments := make([][]interface{}, 0, len(r.ByPaymentMethod))
	for _, p := range r.ByPaymentMethod {
		payments = append(payments, []interface{}{p.Label, p.Count, money.Round2(p.Value).InexactFloat64()})
	}
	if err := newSheet(f, paymentSheet, []interface{}{"Forma de pagamento", "Vendas", "Valor"}, payments); err != nil {
		return nil, err
	}

	sellers := make([][]interface{}, 0, len(r.BestSellers))
	for _, b := range r.BestSellers {
		sellers = append(sellers, []interface{}{b.Rank, b.ProductID, b.ProductName, b.Quantity, money.Round2(b.Value).InexactFloat64()})
	}
	if err := newSheet(f, sellersSheet, []interface{}{"#", "Código", "Produto", "Quantidade", "Valor"}, sellers); err != nil {
		return nil, err
	}

	return write(f)
}

// StockSheet genera el inventario completo y la hoja de stock bajo.
func (e *Exporter) StockSheet(r *dto.StockReportDTO) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(f.GetActiveSheetIndex()), stockSheet); err != nil {
		return nil, fmt.Errorf("xlsx: renombrar hoja: %w", err)
	}
	header := []interface{}{"Código", "Código de barras", "Produto", "Grupo", "Estoque", "Mínimo", "Preço", "Valor em estoque"}

	if err := writeRows(f, stockSheet, header, stockRows(r.Items)); err != nil {
		return nil, err
	}
	total, err := excelize.CoordinatesToCellName(7, len(r.Items)+2)
	if err != nil {
		return nil, fmt.Errorf("xlsx: celda: %w", err)
	}
	if err := f.SetSheetRow(stockSheet, total, &[]interface{}{"Total", money.Round2(r.StockValue).InexactFloat64()}); err != nil {
		return nil, fmt.Errorf("xlsx: fila total: %w", err)
	}

	low := append(append([]dto.StockItemDTO{}, r.OutOfStock...), r.LowStock...)
	if err := newSheet(f, lowSheet, header, stockRows(low)); err != nil {
		return nil, err
	}
	return write(f)
}

func stockRows(items []dto.StockItemDTO) [][]interface{} {
	rows := make([][]interface{}, 0, len(items))
	for _, it := range items {
		rows = append(rows, []interface{}{
			it.ProductID, it.ScanCode, it.Name, it.Group, it.Stock, it.StockMinimum,
			money.Round2(it.UnitPrice).InexactFloat64(), money.Round2(it.StockValue).InexactFloat64(),
		})
	}
	return rows
}

func newSheet(f *excelize.File, name string, header []interface{}, rows [][]interface{}) error {
	if _, err := f.NewSheet(name); err != nil {
		return fmt.Errorf("xlsx: crear hoja %s: %w", name, err)
	}
	return writeRows(f, name, header, rows)
}

// writeRows escribe la cabecera (si hay) en A1 y las filas debajo.
func writeRows(f *excelize.File, sheet string, header []interface{}, rows [][]interface{}) error {
	row := 1
	if header != nil {
		if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
			return fmt.Errorf("xlsx: cabecera %s: %w", sheet, err)
		}
		row++
	}
	for _, values := range rows {
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return fmt.Errorf("xlsx: celda: %w", err)
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("xlsx: fila %d de %s: %w", row, sheet, err)
		}
		row++
	}
	return nil
}

func write(f *excelize.File) ([]byte, error) {
	buf := &bytes.Buffer{}
	if err := f.Write(buf); err != nil {
		return nil, fmt.Errorf("xlsx: escribir: %w", err)
	}
	return buf.Bytes(), nil
}

func periodLabel(r *dto.SalesReportDTO) string {
	from, to := "…", "…"
	if r.From != nil {
		from = r.From.Format("02/01/2006")
	}
	if r.To != nil {
		to = r.To.AddDate(0, 0, -1).Format("02/01/2006")
	}
	return from + " a " + to
}
