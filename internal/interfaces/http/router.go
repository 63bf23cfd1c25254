package http

import (
	nethttp "net/http"
	"os"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/orion-pdv/internal/application/cart"
	"github.com/jhoicas/orion-pdv/internal/application/catalog"
	"github.com/jhoicas/orion-pdv/internal/application/clients"
	"github.com/jhoicas/orion-pdv/internal/application/inventory"
	"github.com/jhoicas/orion-pdv/internal/application/report"
	"github.com/jhoicas/orion-pdv/internal/application/sales"
	"github.com/jhoicas/orion-pdv/internal/application/settings"
	"github.com/jhoicas/orion-pdv/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Catalog       *catalog.CatalogUseCase
	Ledger        *inventory.StockLedger
	Replenishment *inventory.ReplenishmentUseCase
	Clients       *clients.ClientUseCase
	Cart          *cart.Engine
	Committer     *sales.Committer
	SaleQuery     *sales.QueryUseCase
	Receipts      *sales.ReceiptUseCase
	Reports       *report.ReportUseCase
	Settings      *settings.SettingsUseCase
	Location      *time.Location // zona para interpretar fechas de consulta
}

// AppConfig opciones del servidor Fiber.
type AppConfig struct {
	Name           string
	DefaultCashier string
	Metrics        nethttp.Handler // nil = /metrics deshabilitado
	SwaggerFile    string          // se sirve en /docs si el archivo existe
	Log            *logger.Logger
}

// NewApp crea la aplicación Fiber con middlewares, /health, /metrics, /docs y la API.
func NewApp(cfg AppConfig, deps RouterDeps) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      cfg.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(CashierMiddleware(cfg.DefaultCashier))
	if cfg.Log != nil {
		app.Use(RequestLogger(cfg.Log))
	}

	if cfg.SwaggerFile != "" {
		if _, err := os.Stat(cfg.SwaggerFile); err == nil {
			app.Use(swagger.New(swagger.Config{
				BasePath: "/",
				FilePath: cfg.SwaggerFile,
				Path:     "docs",
				Title:    "Orion PDV API",
			}))
		}
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.Name})
	})
	if cfg.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(cfg.Metrics))
	}

	Router(app, deps)
	return app
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Catálogo; las rutas fijas van antes de /:id
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.Catalog, deps.Ledger)
	products.Get("/", productHandler.List)
	products.Post("/", productHandler.Create)
	products.Get("/groups", productHandler.Groups)
	products.Get("/brands", productHandler.Brands)
	products.Get("/scan/:code", productHandler.Scan)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Get("/:id/movements", productHandler.Movements)

	// Libro de stock
	stock := api.Group("/stock")
	inventoryHandler := NewInventoryHandler(deps.Ledger, deps.Replenishment)
	stock.Post("/adjustments", inventoryHandler.Adjust)
	stock.Get("/movements", inventoryHandler.Movements)
	stock.Get("/low", inventoryHandler.LowStock)

	// Clientes
	clientsGroup := api.Group("/clients")
	clientHandler := NewClientHandler(deps.Clients)
	clientsGroup.Get("/", clientHandler.List)
	clientsGroup.Post("/", clientHandler.Create)
	clientsGroup.Get("/:id", clientHandler.GetByID)
	clientsGroup.Delete("/:id", clientHandler.Delete)

	// Carrito activo
	cartGroup := api.Group("/cart")
	cartHandler := NewCartHandler(deps.Cart, deps.Catalog)
	cartGroup.Get("/", cartHandler.Get)
	cartGroup.Delete("/", cartHandler.Clear)
	cartGroup.Get("/totals", cartHandler.Totals)
	cartGroup.Post("/lines", cartHandler.AddLine)
	cartGroup.Put("/lines/:product_id", cartHandler.UpdateLine)
	cartGroup.Delete("/lines/:product_id", cartHandler.RemoveLine)

	// Ventas
	salesGroup := api.Group("/sales")
	saleHandler := NewSaleHandler(deps.Committer, deps.Cart, deps.SaleQuery, deps.Receipts, deps.Location)
	salesGroup.Post("/", saleHandler.Checkout)
	salesGroup.Get("/", saleHandler.List)
	salesGroup.Get("/:id", saleHandler.GetByID)
	salesGroup.Get("/:id/receipt", saleHandler.Receipt)

	// Reportes
	reports := api.Group("/reports")
	reportHandler := NewReportHandler(deps.Reports, deps.Location)
	reports.Get("/sales", reportHandler.Sales)
	reports.Get("/sales.xlsx", reportHandler.SalesXLSX)
	reports.Get("/stock", reportHandler.Stock)
	reports.Get("/stock.xlsx", reportHandler.StockXLSX)

	api.Get("/payment-methods", PaymentMethods)

	settingsHandler := NewSettingsHandler(deps.Settings)
	api.Get("/settings", settingsHandler.Get)
	api.Put("/settings", settingsHandler.Update)
}
