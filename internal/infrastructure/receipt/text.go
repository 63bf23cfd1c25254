// Package receipt genera el cupom não fiscal en texto de ancho fijo para impresoras térmicas.
package receipt

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/jhoicas/orion-pdv/internal/domain/entity"
	"github.com/jhoicas/orion-pdv/pkg/money"
)

// Width columnas de una bobina de 80 mm.
const Width = 48

var rule = strings.Repeat("-", Width)

// TextRenderer implementa sales.ReceiptRenderer en texto plano.
type TextRenderer struct{}

// NewTextRenderer construye el renderer.
func NewTextRenderer() *TextRenderer { return &TextRenderer{} }

// Render genera el cupom. La fecha se imprime en la zona horaria guardada con la venta.
func (r *TextRenderer) Render(_ context.Context, sale *entity.Sale, st *entity.StoreSettings) ([]byte, error) {
	var b strings.Builder
	w := func(s string) {
		b.WriteString(s)
		b.WriteByte('\n')
	}

	if st.CompanyName != "" {
		w(center(strings.ToUpper(st.CompanyName)))
	}
	if st.Slogan != "" {
		w(center(st.Slogan))
	}
	if st.TaxID != "" {
		w(center("CNPJ: " + st.TaxID))
	}
	if addr := joinNonEmpty(" - ", st.Address, st.City); addr != "" {
		w(center(addr))
	}
	if st.Phone != "" {
		w(center("Tel: " + st.Phone))
	}
	w(rule)
	w(center("CUPOM NÃO FISCAL"))
	w(rule)
	w("Cupom: " + ShortID(sale.ID))
	w("Data: " + sale.Timestamp.Format("02/01/2006 15:04"))
	w("Cliente: " + sale.ClientName)
	if sale.CashierID != "" {
		w("Operador: " + sale.CashierID)
	}
	w(rule)
	w("ITEM DESCRIÇÃO")
	w(spread("    QTD x UNIT", "TOTAL"))
	w(rule)
	for i, l := range sale.Lines {
		w(truncate(fmt.Sprintf("%03d %s", i+1, l.ProductName), Width))
		w(spread(fmt.Sprintf("    %d x %s", l.Quantity, money.Format(l.UnitPrice)), money.Format(l.LineSubtotal)))
	}
	w(rule)
	w(spread("Subtotal", money.BRL(sale.Subtotal)))
	if sale.DiscountAmount.IsPositive() {
		w(spread("Desconto ("+money.Percent(sale.DiscountPercent)+")", "-"+money.BRL(sale.DiscountAmount)))
	}
	w(spread("TOTAL", money.BRL(sale.Total)))
	w(spread("Pagamento", sale.PaymentLabel))
	w(spread("Itens", strconv.Itoa(sale.ItemCount())))
	w(rule)
	if st.ReceiptFooter != "" {
		w(center(st.ReceiptFooter))
	}
	return []byte(b.String()), nil
}

// ShortID número de cupom: primeros 8 caracteres del id de la venta.
func ShortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func center(s string) string {
	s = truncate(s, Width)
	pad := (Width - utf8.RuneCountInString(s)) / 2
	return strings.Repeat(" ", pad) + s
}

// spread alinea l a la izquierda y r a la derecha con al menos un espacio entre ambos.
func spread(l, r string) string {
	gap := Width - utf8.RuneCountInString(l) - utf8.RuneCountInString(r)
	if gap < 1 {
		gap = 1
	}
	return l + strings.Repeat(" ", gap) + r
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

func joinNonEmpty(sep string, parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, sep)
}
