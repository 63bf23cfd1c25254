// Package catalog contiene los casos de uso del catálogo de productos.
package catalog

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/orion-pdv/internal/application/dto"
	"github.com/jhoicas/orion-pdv/internal/application/inventory"
	"github.com/jhoicas/orion-pdv/internal/domain"
	"github.com/jhoicas/orion-pdv/internal/domain/entity"
	"github.com/jhoicas/orion-pdv/internal/domain/repository"
	"github.com/jhoicas/orion-pdv/pkg/logger"
)

// CatalogUseCase alta, edición y consulta de productos. El stock se maneja vía el libro de stock.
type CatalogUseCase struct {
	repo   repository.ProductRepository
	ledger inventory.Adjuster
	log    *logger.Logger
}

// NewCatalogUseCase construye el caso de uso.
func NewCatalogUseCase(repo repository.ProductRepository, ledger inventory.Adjuster, log *logger.Logger) *CatalogUseCase {
	return &CatalogUseCase{repo: repo, ledger: ledger, log: log.Named("catalog")}
}

// Create crea un producto. El id es el código de barras si viene, si no un UUID.
// El stock inicial se registra como movimiento "initial-stock". Si ese registro falla
// el producto ya existe: se devuelve junto con el error para poder reintentar el ajuste.
func (uc *CatalogUseCase) Create(ctx context.Context, actorID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.ScanCode = strings.TrimSpace(in.ScanCode)
	if in.Name == "" || in.UnitPrice.IsNegative() || in.InitialStock < 0 || in.StockMinimum < 0 {
		return nil, domain.ErrInvalidInput
	}
	id := in.ScanCode
	if id == "" {
		id = uuid.New().String()
	}
	now := time.Now()
	product := &entity.Product{
		ID:           id,
		ScanCode:     in.ScanCode,
		Name:         in.Name,
		Group:        strings.TrimSpace(in.Group),
		Brand:        strings.TrimSpace(in.Brand),
		UnitPrice:    in.UnitPrice,
		StockMinimum: in.StockMinimum,
		PhotoRef:     in.PhotoRef,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	if in.InitialStock > 0 {
		updated, _, err := uc.ledger.AdjustStock(ctx, inventory.AdjustStockInput{
			ProductID: product.ID,
			Delta:     in.InitialStock,
			Reason:    entity.ReasonInitialStock,
			Note:      "estoque inicial",
			ActorID:   actorID,
		})
		if updated != nil {
			product = updated
		}
		if err != nil {
			uc.log.Error().Err(err).
				Str("product_id", product.ID).
				Int("initial_stock", in.InitialStock).
				Msg("producto creado sin stock inicial")
			return ToProductResponse(product), fmt.Errorf("producto %s creado sin stock inicial: %w", product.ID, err)
		}
	}
	return ToProductResponse(product), nil
}

// GetByID obtiene un producto por ID; (nil, nil) si no existe.
func (uc *CatalogUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil || product == nil {
		return nil, err
	}
	return ToProductResponse(product), nil
}

// FindByScanCode resuelve un código leído por el escáner. Prueba primero el código de
// barras y luego el id. (nil, nil) si no hay coincidencia.
func (uc *CatalogUseCase) FindByScanCode(ctx context.Context, code string) (*dto.ProductResponse, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.repo.GetByScanCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if product == nil {
		if product, err = uc.repo.GetByID(ctx, code); err != nil {
			return nil, err
		}
	}
	if product == nil {
		return nil, nil
	}
	return ToProductResponse(product), nil
}

// List lista productos filtrados, ordenados por nombre.
func (uc *CatalogUseCase) List(ctx context.Context, filter dto.ProductFilter) (*dto.ProductListResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	query := strings.ToLower(strings.TrimSpace(filter.Query))
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		if filter.Group != "" && !strings.EqualFold(p.Group, filter.Group) {
			continue
		}
		if filter.InStockOnly && p.StockQuantity <= 0 {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(p.Name), query) &&
			!strings.Contains(p.ScanCode, query) {
			continue
		}
		items = append(items, *ToProductResponse(p))
	}
	sort.SliceStable(items, func(i, j int) bool {
		return strings.ToLower(items[i].Name) < strings.ToLower(items[j].Name)
	})
	return &dto.ProductListResponse{Items: items, Total: len(items)}, nil
}

// Groups devuelve los grupos distintos en orden alfabético.
func (uc *CatalogUseCase) Groups(ctx context.Context) ([]string, error) {
	return uc.distinct(ctx, func(p *entity.Product) string { return p.Group })
}

// Brands devuelve las marcas distintas en orden alfabético.
func (uc *CatalogUseCase) Brands(ctx context.Context) ([]string, error) {
	return uc.distinct(ctx, func(p *entity.Product) string { return p.Brand })
}

func (uc *CatalogUseCase) distinct(ctx context.Context, field func(*entity.Product) string) ([]string, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, p := range list {
		v := field(p)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out, nil
}

// Update actualiza un producto. No permite modificar el stock; (nil, nil) si no existe.
func (uc *CatalogUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil || product == nil {
		return nil, err
	}
	if in.ScanCode != nil {
		code := strings.TrimSpace(*in.ScanCode)
		if code != "" && code != product.ScanCode {
			other, err := uc.repo.GetByScanCode(ctx, code)
			if err != nil {
				return nil, err
			}
			if other != nil && other.ID != product.ID {
				return nil, domain.ErrDuplicate
			}
		}
		product.ScanCode = code
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.ErrInvalidInput
		}
		product.Name = name
	}
	if in.Group != nil {
		product.Group = strings.TrimSpace(*in.Group)
	}
	if in.Brand != nil {
		product.Brand = strings.TrimSpace(*in.Brand)
	}
	if in.UnitPrice != nil {
		if in.UnitPrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product.UnitPrice = *in.UnitPrice
	}
	if in.StockMinimum != nil {
		if *in.StockMinimum < 0 {
			return nil, domain.ErrInvalidInput
		}
		product.StockMinimum = *in.StockMinimum
	}
	if in.PhotoRef != nil {
		product.PhotoRef = *in.PhotoRef
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	return ToProductResponse(product), nil
}

// ToProductResponse convierte la entidad a su DTO.
func ToProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:            p.ID,
		ScanCode:      p.ScanCode,
		Name:          p.Name,
		Group:         p.Group,
		Brand:         p.Brand,
		UnitPrice:     p.UnitPrice,
		StockQuantity: p.StockQuantity,
		StockMinimum:  p.StockMinimum,
		LowStock:      p.IsLowStock(),
		PhotoRef:      p.PhotoRef,
		Revision:      p.Revision,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}
