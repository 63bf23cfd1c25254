// Package pdf genera la versión PDF del cupom não fiscal en formato bobina de 80 mm.
//
// Layout:
//
//	┌──────────────────────────┐
//	│  Tienda + CNPJ + contacto│
//	│  CUPOM NÃO FISCAL  n°    │
//	│  Fecha / Cliente / Caixa │
//	│  Qtd | Item | Total      │
//	│  Subtotal / Desc / TOTAL │
//	│  Pagamento + QR id venta │
//	│  Rodapé                  │
//	└──────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/orion-pdv/internal/domain/entity"
	"github.com/jhoicas/orion-pdv/pkg/money"
)

const (
	pageWidth  = 80.0 // mm
	baseHeight = 150.0
	lineHeight = 9.0
)

var colorGray = &props.Color{Red: 100, Green: 100, Blue: 100}

// ReceiptPDFRenderer implementa sales.ReceiptRenderer usando Maroto v2.
type ReceiptPDFRenderer struct{}

// NewReceiptPDFRenderer construye el renderer.
func NewReceiptPDFRenderer() *ReceiptPDFRenderer { return &ReceiptPDFRenderer{} }

// Render genera el PDF y devuelve sus bytes.
func (g *ReceiptPDFRenderer) Render(_ context.Context, sale *entity.Sale, st *entity.StoreSettings) ([]byte, error) {
	cfg := config.NewBuilder().
		WithDimensions(pageWidth, baseHeight+lineHeight*float64(len(sale.Lines))).
		WithLeftMargin(4).WithRightMargin(4).
		WithTopMargin(4).WithBottomMargin(4).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 7}).
		WithTitle("Cupom não fiscal", true).
		WithAuthor(nonEmpty(st.CompanyName, "PDV"), true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(storeRows(st)...)
	m.AddRows(line.NewRow(2, props.Line{Thickness: 0.2}))
	m.AddRows(saleHeaderRows(sale)...)
	m.AddRows(line.NewRow(2, props.Line{Thickness: 0.2}))
	m.AddRows(itemHeaderRow())
	m.AddRows(itemRows(sale.Lines)...)
	m.AddRows(line.NewRow(2, props.Line{Thickness: 0.2}))
	m.AddRows(totalRows(sale)...)
	m.AddRows(line.NewRow(2, props.Line{Thickness: 0.2}))
	m.AddRows(footerRows(sale, st)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar cupom: %w", err)
	}
	return doc.GetBytes(), nil
}

func centered(s string, size float64, style fontstyle.Type) core.Row {
	return row.New(size/2 + 2).Add(col.New(12).Add(
		text.New(s, props.Text{Size: size, Style: style, Align: align.Center}),
	))
}

func storeRows(st *entity.StoreSettings) []core.Row {
	var rows []core.Row
	if st.CompanyName != "" {
		rows = append(rows, centered(st.CompanyName, 10, fontstyle.Bold))
	}
	if st.Slogan != "" {
		rows = append(rows, centered(st.Slogan, 7, fontstyle.Italic))
	}
	if st.TaxID != "" {
		rows = append(rows, centered("CNPJ: "+st.TaxID, 7, fontstyle.Normal))
	}
	if st.Address != "" || st.City != "" {
		addr := st.Address
		if st.City != "" {
			if addr != "" {
				addr += " - "
			}
			addr += st.City
		}
		rows = append(rows, centered(addr, 7, fontstyle.Normal))
	}
	if st.Phone != "" {
		rows = append(rows, centered("Tel: "+st.Phone, 7, fontstyle.Normal))
	}
	return rows
}

func saleHeaderRows(sale *entity.Sale) []core.Row {
	short := sale.ID
	if len(short) > 8 {
		short = short[:8]
	}
	kv := func(k, v string) core.Row {
		return row.New(4).Add(
			col.New(4).Add(text.New(k, props.Text{Style: fontstyle.Bold, Size: 7})),
			col.New(8).Add(text.New(v, props.Text{Size: 7, Align: align.Right})),
		)
	}
	rows := []core.Row{
		centered("CUPOM NÃO FISCAL", 9, fontstyle.Bold),
		kv("Cupom:", short),
		kv("Data:", sale.Timestamp.Format("02/01/2006 15:04")),
		kv("Cliente:", sale.ClientName),
	}
	if sale.CashierID != "" {
		rows = append(rows, kv("Operador:", sale.CashierID))
	}
	return rows
}

func itemHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{Style: fontstyle.Bold, Size: 7, Align: a}))
	}
	return row.New(4).Add(
		h("Qtd", 2, align.Left),
		h("Item", 6, align.Left),
		h("Total", 4, align.Right),
	)
}

// itemRows: nombre en la primera línea, cantidad x precio unitario debajo.
func itemRows(lines []entity.SaleLine) []core.Row {
	rows := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		rows = append(rows, row.New(lineHeight-1).Add(
			col.New(2).Add(text.New(strconv.Itoa(l.Quantity), props.Text{Size: 7})),
			col.New(6).Add(
				text.New(l.ProductName, props.Text{Size: 7}),
				text.New(fmt.Sprintf("%d x %s", l.Quantity, money.Format(l.UnitPrice)), props.Text{
					Size: 6, Top: 3.5, Color: colorGray,
				}),
			),
			col.New(4).Add(text.New(money.Format(l.LineSubtotal), props.Text{Size: 7, Align: align.Right})),
		))
	}
	return rows
}

func totalRows(sale *entity.Sale) []core.Row {
	kv := func(k, v string, bold bool) core.Row {
		style, size := fontstyle.Normal, 7.0
		if bold {
			style, size = fontstyle.Bold, 9
		}
		return row.New(size/2 + 1).Add(
			col.New(6).Add(text.New(k, props.Text{Style: style, Size: size})),
			col.New(6).Add(text.New(v, props.Text{Style: style, Size: size, Align: align.Right})),
		)
	}
	rows := []core.Row{kv("Subtotal", money.BRL(sale.Subtotal), false)}
	if sale.DiscountAmount.IsPositive() {
		rows = append(rows, kv("Desconto ("+money.Percent(sale.DiscountPercent)+")", "-"+money.BRL(sale.DiscountAmount), false))
	}
	rows = append(rows,
		kv("TOTAL", money.BRL(sale.Total), true),
		kv("Pagamento", sale.PaymentLabel, false),
		kv("Itens", strconv.Itoa(sale.ItemCount()), false),
	)
	return rows
}

// footerRows: QR con el id de la venta y el rodapé configurado.
func footerRows(sale *entity.Sale, st *entity.StoreSettings) []core.Row {
	rows := []core.Row{
		row.New(30).Add(
			col.New(3),
			col.New(6).Add(code.NewQr(sale.ID, props.Rect{Percent: 95, Center: true})),
			col.New(3),
		),
	}
	if st.ReceiptFooter != "" {
		rows = append(rows, centered(st.ReceiptFooter, 7, fontstyle.Italic))
	}
	return rows
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
