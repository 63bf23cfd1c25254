package metrics_test

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/orion-pdv/internal/infrastructure/metrics"
)

func TestRecorder_Ventas(t *testing.T) {
	r := metrics.NewRecorder(false)

	r.SaleCommitted("pix", decimal.RequireFromString("31.5"), 3)
	r.SaleCommitted("pix", decimal.RequireFromString("10"), 1)
	r.SaleCommitted("dinheiro", decimal.RequireFromString("5"), 2)
	r.SaleRejected("out_of_stock")
	r.PartialCommit("stock")

	n, err := testutil.GatherAndCount(r.Registry(), "pdv_sales_total")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	expected := `
# HELP pdv_sales_value_total Valor vendido por forma de pago.
# TYPE pdv_sales_value_total counter
pdv_sales_value_total{payment_method="dinheiro"} 5
pdv_sales_value_total{payment_method="pix"} 41.5
`
	require.NoError(t, testutil.GatherAndCompare(r.Registry(), strings.NewReader(expected), "pdv_sales_value_total"))
	count, err := testutil.GatherAndCount(r.Registry(), "pdv_sales_rejected_total", "pdv_sales_partial_commit_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestRecorder_MovimientosDeStock(t *testing.T) {
	r := metrics.NewRecorder(false)

	r.StockMovementRecorded("outbound", "sale", 2)
	r.StockMovementRecorded("outbound", "sale", 3)
	r.StockMovementRecorded("inbound", "manual_adjustment", 10)

	n, err := testutil.GatherAndCount(r.Registry(), "pdv_stock_movements_total")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestRecorder_Handler(t *testing.T) {
	r := metrics.NewRecorder(true)
	r.SaleCommitted("pix", decimal.NewFromInt(1), 1)

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Equal(t, 200, rec.Code)
	assert.Contains(t, string(body), `pdv_sales_total{payment_method="pix"} 1`)
	assert.Contains(t, string(body), "go_goroutines")
}
