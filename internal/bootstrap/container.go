// Package bootstrap arma el grafo de dependencias compartido por la API y posctl.
package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/orion-pdv/internal/application/cart"
	"github.com/jhoicas/orion-pdv/internal/application/catalog"
	"github.com/jhoicas/orion-pdv/internal/application/clients"
	"github.com/jhoicas/orion-pdv/internal/application/inventory"
	"github.com/jhoicas/orion-pdv/internal/application/report"
	"github.com/jhoicas/orion-pdv/internal/application/sales"
	"github.com/jhoicas/orion-pdv/internal/application/settings"
	"github.com/jhoicas/orion-pdv/internal/domain/entity"
	"github.com/jhoicas/orion-pdv/internal/infrastructure/metrics"
	"github.com/jhoicas/orion-pdv/internal/infrastructure/pdf"
	"github.com/jhoicas/orion-pdv/internal/infrastructure/receipt"
	"github.com/jhoicas/orion-pdv/internal/infrastructure/storage"
	"github.com/jhoicas/orion-pdv/internal/infrastructure/xlsx"
	apphttp "github.com/jhoicas/orion-pdv/internal/interfaces/http"
	"github.com/jhoicas/orion-pdv/pkg/config"
	"github.com/jhoicas/orion-pdv/pkg/logger"
)

// Container agrupa repositorios y casos de uso listos para usar.
type Container struct {
	Config  *config.Config
	Log     *logger.Logger
	Store   storage.Store
	Metrics *metrics.Recorder // nil si METRICS_ENABLED=false

	Products  *storage.ProductRepo
	Clients   *storage.ClientRepo
	Sales     *storage.SaleRepo
	Movements *storage.StockMovementRepo

	Catalog       *catalog.CatalogUseCase
	Ledger        *inventory.StockLedger
	Replenishment *inventory.ReplenishmentUseCase
	ClientUC      *clients.ClientUseCase
	Cart          *cart.Engine
	Committer     *sales.Committer
	SaleQuery     *sales.QueryUseCase
	Receipts      *sales.ReceiptUseCase
	Reports       *report.ReportUseCase
	Settings      *settings.SettingsUseCase
}

// New abre el almacén, construye los casos de uso y prepara el estado inicial:
// cliente por defecto, datos de la tienda desde config y carrito restaurado.
func New(ctx context.Context, cfg *config.Config, log *logger.Logger) (*Container, error) {
	store, err := storage.Open(ctx, cfg.Store.Driver, cfg.Store.Path)
	if err != nil {
		return nil, fmt.Errorf("bootstrap: abrir almacén: %w", err)
	}

	c := &Container{
		Config:    cfg,
		Log:       log,
		Store:     store,
		Products:  storage.NewProductRepository(store),
		Clients:   storage.NewClientRepository(store),
		Sales:     storage.NewSaleRepository(store),
		Movements: storage.NewStockMovementRepository(store),
	}

	var (
		stockMetrics inventory.Metrics
		saleMetrics  sales.Metrics
	)
	if cfg.App.MetricsEnabled {
		c.Metrics = metrics.NewRecorder(true)
		stockMetrics, saleMetrics = c.Metrics, c.Metrics
	}

	settingsRepo := storage.NewSettingsRepository(store)
	c.Ledger = inventory.NewStockLedger(c.Products, c.Movements, stockMetrics, log)
	c.Replenishment = inventory.NewReplenishmentUseCase(c.Products)
	c.Catalog = catalog.NewCatalogUseCase(c.Products, c.Ledger, log)
	c.ClientUC = clients.NewClientUseCase(c.Clients, c.Sales)
	c.Cart = cart.NewEngine(c.Products, storage.NewCartRepository(store))
	c.Committer = sales.NewCommitter(c.Products, c.Clients, c.Sales, c.Ledger, saleMetrics, log)
	c.SaleQuery = sales.NewQueryUseCase(c.Sales)
	c.Receipts = sales.NewReceiptUseCase(c.Sales, settingsRepo, receipt.NewTextRenderer(), pdf.NewReceiptPDFRenderer())
	c.Reports = report.NewReportUseCase(c.Sales, c.Products, xlsx.NewExporter())
	c.Settings = settings.NewSettingsUseCase(settingsRepo)

	if err := c.init(ctx); err != nil {
		_ = store.Close()
		return nil, err
	}
	return c, nil
}

func (c *Container) init(ctx context.Context) error {
	if err := c.ClientUC.EnsureDefault(ctx); err != nil {
		return fmt.Errorf("bootstrap: cliente por defecto: %w", err)
	}
	co := c.Config.Company
	if err := c.Settings.SeedIfMissing(ctx, entity.StoreSettings{
		CompanyName:   co.Name,
		Slogan:        co.Slogan,
		TaxID:         co.TaxID,
		Phone:         co.Phone,
		Email:         co.Email,
		Address:       co.Address,
		City:          co.City,
		ReceiptFooter: co.ReceiptFooter,
	}); err != nil {
		return fmt.Errorf("bootstrap: configuración de la tienda: %w", err)
	}
	if err := c.Cart.Restore(ctx); err != nil {
		return fmt.Errorf("bootstrap: restaurar carrito: %w", err)
	}
	return nil
}

// RouterDeps devuelve las dependencias del router HTTP.
func (c *Container) RouterDeps() apphttp.RouterDeps {
	return apphttp.RouterDeps{
		Catalog:       c.Catalog,
		Ledger:        c.Ledger,
		Replenishment: c.Replenishment,
		Clients:       c.ClientUC,
		Cart:          c.Cart,
		Committer:     c.Committer,
		SaleQuery:     c.SaleQuery,
		Receipts:      c.Receipts,
		Reports:       c.Reports,
		Settings:      c.Settings,
		Location:      time.Local,
	}
}

// AppConfig devuelve la configuración del servidor Fiber.
func (c *Container) AppConfig(swaggerFile string) apphttp.AppConfig {
	cfg := apphttp.AppConfig{
		Name:           c.Config.App.Name,
		DefaultCashier: c.Config.POS.DefaultCashier,
		SwaggerFile:    swaggerFile,
		Log:            c.Log,
	}
	if c.Metrics != nil {
		cfg.Metrics = c.Metrics.Handler()
	}
	return cfg
}

// Close libera el almacén.
func (c *Container) Close() error {
	return c.Store.Close()
}
