package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/orion-pdv/internal/bootstrap"
	apphttp "github.com/jhoicas/orion-pdv/internal/interfaces/http"
	"github.com/jhoicas/orion-pdv/pkg/config"
	"github.com/jhoicas/orion-pdv/pkg/logger"
)

// testServer arma la API completa sobre el almacén en memoria.
func testServer(t *testing.T) *fiber.App {
	t.Helper()
	cfg := &config.Config{
		App:     config.AppConfig{Name: "orion-pdv", MetricsEnabled: true},
		Store:   config.StoreConfig{Driver: "memory"},
		POS:     config.POSConfig{DefaultCashier: "caixa"},
		Company: config.CompanyConfig{Name: "Mercadinho Orion", ReceiptFooter: "Volte sempre"},
	}
	c, err := bootstrap.New(context.Background(), cfg, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return apphttp.NewApp(c.AppConfig(""), c.RouterDeps())
}

func call(t *testing.T, app *fiber.App, method, path string, body any) (*http.Response, []byte) {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set(apphttp.HeaderCashierID, "caixa-01")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

func decode(t *testing.T, data []byte) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(data, &out), string(data))
	return out
}

func seedProducts(t *testing.T, app *fiber.App) {
	t.Helper()
	for _, p := range []map[string]any{
		{"scan_code": "7891000100103", "name": "Café Torrado 500g", "group": "Mercearia", "unit_price": "5.99", "initial_stock": 5, "stock_minimum": 2},
		{"scan_code": "7891000200200", "name": "Queijo Minas", "group": "Frios", "unit_price": "22.90", "initial_stock": 3, "stock_minimum": 1},
	} {
		resp, data := call(t, app, http.MethodPost, "/api/products", p)
		require.Equal(t, http.StatusCreated, resp.StatusCode, string(data))
	}
}

func TestAPI_Health(t *testing.T) {
	app := testServer(t)
	resp, data := call(t, app, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", decode(t, data)["status"])
}

func TestAPI_CheckoutCompleto(t *testing.T) {
	app := testServer(t)
	seedProducts(t, app)

	resp, data := call(t, app, http.MethodPost, "/api/cart/lines", map[string]any{"scan_code": "7891000100103", "quantity": 2})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(data))
	resp, data = call(t, app, http.MethodPost, "/api/cart/lines", map[string]any{"product_id": "7891000200200"})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(data))
	cart := decode(t, data)
	assert.EqualValues(t, 3, cart["item_count"])

	resp, data = call(t, app, http.MethodGet, "/api/cart/totals?discount=10", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(data))
	totals := decode(t, data)
	assert.Equal(t, "34.88", totals["subtotal"])
	assert.Equal(t, "R$ 31,39", totals["total_display"])

	resp, data = call(t, app, http.MethodPost, "/api/sales", map[string]any{
		"payment_method": "pix", "discount_percent": "10",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(data))
	sale := decode(t, data)
	saleID := sale["id"].(string)
	assert.Equal(t, "31.392", sale["total"])
	assert.Equal(t, "PIX", sale["payment_label"])
	assert.Equal(t, "caixa-01", sale["cashier_id"])
	assert.Equal(t, "Consumidor Final", sale["client_name"])

	resp, data = call(t, app, http.MethodGet, "/api/products/7891000100103", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 3, decode(t, data)["stock_quantity"])

	resp, data = call(t, app, http.MethodGet, "/api/cart", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 0, decode(t, data)["item_count"])

	resp, data = call(t, app, http.MethodGet, "/api/stock/movements?sale_id="+saleID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var movements []map[string]any
	require.NoError(t, json.Unmarshal(data, &movements))
	require.Len(t, movements, 2)
	assert.Equal(t, "outbound", movements[0]["kind"])

	resp, data = call(t, app, http.MethodGet, "/api/sales/"+saleID+"/receipt", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/plain")
	assert.Contains(t, string(data), "CUPOM NÃO FISCAL")
	assert.Contains(t, string(data), "R$ 31,39")

	resp, data = call(t, app, http.MethodGet, "/api/sales/"+saleID+"/receipt?format=pdf", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))

	resp, data = call(t, app, http.MethodGet, "/api/sales", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 1, decode(t, data)["total"])

	resp, data = call(t, app, http.MethodGet, "/api/reports/sales", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	rep := decode(t, data)
	assert.EqualValues(t, 1, rep["sale_count"])
	assert.EqualValues(t, 3, rep["items_sold"])

	resp, _ = call(t, app, http.MethodGet, "/api/reports/stock.xlsx", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "estoque-")

	resp, data = call(t, app, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(data), `pdv_sales_total{payment_method="pix"} 1`)
}

func TestAPI_ErroresDeCheckout(t *testing.T) {
	app := testServer(t)
	seedProducts(t, app)

	resp, data := call(t, app, http.MethodPost, "/api/sales", map[string]any{"payment_method": "pix"})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Equal(t, "EMPTY_CART", decode(t, data)["code"])

	resp, data = call(t, app, http.MethodPost, "/api/cart/lines", map[string]any{"product_id": "7891000200200", "quantity": 4})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "OUT_OF_STOCK", decode(t, data)["code"])

	resp, _ = call(t, app, http.MethodPost, "/api/cart/lines", map[string]any{"product_id": "7891000200200", "quantity": 1})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, data = call(t, app, http.MethodPost, "/api/sales", map[string]any{"payment_method": "pix", "client_id": "nao-existe"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "UNKNOWN_CLIENT", decode(t, data)["code"])

	resp, data = call(t, app, http.MethodPost, "/api/sales", map[string]any{"payment_method": "bitcoin"})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Equal(t, "INVALID_PAYMENT_METHOD", decode(t, data)["code"])

	resp, data = call(t, app, http.MethodPost, "/api/sales", map[string]any{"payment_method": "pix", "discount_percent": "150"})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Equal(t, "INVALID_DISCOUNT", decode(t, data)["code"])

	resp, data = call(t, app, http.MethodPost, "/api/sales", map[string]any{"payment_method": "pix", "discount_percent": "100"})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Equal(t, "NON_POSITIVE_TOTAL", decode(t, data)["code"])

	// El carrito sigue intacto tras los rechazos.
	resp, data = call(t, app, http.MethodGet, "/api/cart", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 1, decode(t, data)["item_count"])
}

func TestAPI_CarritoYCatalogo(t *testing.T) {
	app := testServer(t)
	seedProducts(t, app)

	resp, data := call(t, app, http.MethodGet, "/api/products/scan/7891000200200", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Queijo Minas", decode(t, data)["name"])

	resp, _ = call(t, app, http.MethodGet, "/api/products/scan/0000", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, data = call(t, app, http.MethodGet, "/api/products?group=frios", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 1, decode(t, data)["total"])

	resp, data = call(t, app, http.MethodGet, "/api/products/groups", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `["Frios","Mercearia"]`, string(data))

	resp, _ = call(t, app, http.MethodPost, "/api/cart/lines", map[string]any{"product_id": "7891000100103", "quantity": 2})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, data = call(t, app, http.MethodPut, "/api/cart/lines/7891000100103", map[string]any{"quantity": 5})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(data))
	assert.EqualValues(t, 5, decode(t, data)["item_count"])

	resp, data = call(t, app, http.MethodPut, "/api/cart/lines/7891000100103", map[string]any{"quantity": 6})
	assert.Equal(t, http.StatusConflict, resp.StatusCode, string(data))

	resp, data = call(t, app, http.MethodPut, "/api/cart/lines/7891000200200", map[string]any{"quantity": 1})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "CART_LINE_NOT_FOUND", decode(t, data)["code"])

	resp, _ = call(t, app, http.MethodGet, "/api/cart?discount=abc", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, data = call(t, app, http.MethodDelete, "/api/cart/lines/7891000100103", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 0, decode(t, data)["item_count"])
}

func TestAPI_AjusteDeStockYReposicion(t *testing.T) {
	app := testServer(t)
	seedProducts(t, app)

	resp, data := call(t, app, http.MethodPost, "/api/stock/adjustments", map[string]any{
		"product_id": "7891000200200", "delta": -2, "note": "avaria",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(data))
	mv := decode(t, data)
	assert.EqualValues(t, 1, mv["stock_after"])
	assert.Equal(t, "caixa-01", mv["actor_id"])

	resp, data = call(t, app, http.MethodPost, "/api/stock/adjustments", map[string]any{
		"product_id": "7891000200200", "delta": -5,
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "NEGATIVE_STOCK", decode(t, data)["code"])

	resp, data = call(t, app, http.MethodGet, "/api/stock/low", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var low []map[string]any
	require.NoError(t, json.Unmarshal(data, &low))
	require.Len(t, low, 1)
	assert.Equal(t, "7891000200200", low[0]["product_id"])

	resp, data = call(t, app, http.MethodGet, "/api/products/7891000200200/movements", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var movements []map[string]any
	require.NoError(t, json.Unmarshal(data, &movements))
	assert.Len(t, movements, 2) // estoque inicial + ajuste
}

func TestAPI_ClientesYConfiguracion(t *testing.T) {
	app := testServer(t)

	resp, data := call(t, app, http.MethodPost, "/api/clients", map[string]any{"name": "Ana Souza", "phone": "19 99999-0000"})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(data))
	id := decode(t, data)["id"].(string)

	resp, data = call(t, app, http.MethodGet, "/api/clients", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list []map[string]any
	require.NoError(t, json.Unmarshal(data, &list))
	require.Len(t, list, 2)
	assert.Equal(t, true, list[0]["is_default"])

	resp, data = call(t, app, http.MethodDelete, "/api/clients/1", nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode, string(data))

	resp, _ = call(t, app, http.MethodDelete, "/api/clients/"+id, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, data = call(t, app, http.MethodGet, "/api/settings", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Mercadinho Orion", decode(t, data)["company_name"])

	resp, data = call(t, app, http.MethodPut, "/api/settings", map[string]any{"company_name": "Orion Express", "city": "Campinas"})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(data))
	assert.Equal(t, "Campinas", decode(t, data)["city"])

	resp, data = call(t, app, http.MethodGet, "/api/payment-methods", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, strings.Contains(string(data), `"Crédito na Loja"`))
}
