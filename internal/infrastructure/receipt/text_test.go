package receipt_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/orion-pdv/internal/domain/entity"
	"github.com/jhoicas/orion-pdv/internal/infrastructure/receipt"
)

func sampleSale() *entity.Sale {
	return &entity.Sale{
		ID:            "3f2a9c1e-7b44-4d2a-9e0f-1c2d3e4f5a6b",
		Timestamp:     time.Date(2026, 3, 14, 16, 45, 0, 0, time.UTC),
		ClientID:      entity.DefaultClientID,
		ClientName:    entity.DefaultClientName,
		PaymentMethod: "pix",
		PaymentLabel:  "PIX",
		Lines: []entity.SaleLine{
			{ProductID: "A", ProductName: "Café Torrado 500g", Quantity: 2, UnitPrice: decimal.RequireFromString("5.99"), LineSubtotal: decimal.RequireFromString("11.98")},
			{ProductID: "B", ProductName: "Queijo Minas", Quantity: 1, UnitPrice: decimal.RequireFromString("22.90"), LineSubtotal: decimal.RequireFromString("22.90")},
		},
		Subtotal:        decimal.RequireFromString("34.88"),
		DiscountPercent: decimal.NewFromInt(10),
		DiscountAmount:  decimal.RequireFromString("3.488"),
		Total:           decimal.RequireFromString("31.392"),
		CashierID:       "caixa-01",
	}
}

func sampleSettings() *entity.StoreSettings {
	return &entity.StoreSettings{
		CompanyName:   "Mercadinho Orion",
		TaxID:         "12.345.678/0001-90",
		Address:       "Rua das Flores, 100",
		City:          "Campinas",
		Phone:         "(19) 3333-4444",
		ReceiptFooter: "Obrigado pela preferência!",
	}
}

func TestTextRenderer_Golden(t *testing.T) {
	out, err := receipt.NewTextRenderer().Render(context.Background(), sampleSale(), sampleSettings())
	require.NoError(t, err)

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "cupom_pix_desconto", out)
}

func TestTextRenderer_SinDescuentoNiDatosDeTienda(t *testing.T) {
	sale := sampleSale()
	sale.DiscountPercent = decimal.Zero
	sale.DiscountAmount = decimal.Zero
	sale.Total = sale.Subtotal

	out, err := receipt.NewTextRenderer().Render(context.Background(), sale, &entity.StoreSettings{})
	require.NoError(t, err)

	text := string(out)
	assert.NotContains(t, text, "Desconto")
	assert.Contains(t, text, "R$ 34,88")
	assert.True(t, strings.HasPrefix(text, strings.Repeat("-", receipt.Width)))
	for _, line := range strings.Split(strings.TrimRight(text, "\n"), "\n") {
		assert.LessOrEqual(t, len([]rune(line)), receipt.Width, line)
	}
}

func TestShortID(t *testing.T) {
	assert.Equal(t, "3f2a9c1e", receipt.ShortID("3f2a9c1e-7b44"))
	assert.Equal(t, "abc", receipt.ShortID("abc"))
}
