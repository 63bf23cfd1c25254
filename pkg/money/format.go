// Package money formatea valores monetarios para exibição em pt-BR.
package money

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.BrazilianPortuguese)

// Round2 redondea a dos decimales (mitad hacia arriba), solo para presentación.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// Format devuelve el valor sin símbolo: 31.392 -> "31,39".
func Format(d decimal.Decimal) string {
	f, _ := Round2(d).Float64()
	return printer.Sprintf("%.2f", f)
}

// BRL devuelve el valor con símbolo: 31.392 -> "R$ 31,39".
func BRL(d decimal.Decimal) string {
	return "R$ " + Format(d)
}

// Percent formatea un porcentaje: 10 -> "10%", 12.5 -> "12,5%".
func Percent(d decimal.Decimal) string {
	f, _ := d.Float64()
	if d.Equal(d.Truncate(0)) {
		return printer.Sprintf("%d%%", d.IntPart())
	}
	return printer.Sprintf("%.1f%%", f)
}
