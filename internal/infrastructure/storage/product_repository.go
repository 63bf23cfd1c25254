package storage

import (
	"context"

	"github.com/jhoicas/orion-pdv/internal/domain"
	"github.com/jhoicas/orion-pdv/internal/domain/entity"
	"github.com/jhoicas/orion-pdv/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre el almacén clave-valor.
type ProductRepo struct {
	s Store
}

// NewProductRepository construye el adaptador de persistencia para productos.
func NewProductRepository(s Store) *ProductRepo {
	return &ProductRepo{s: s}
}

// Create persiste un producto nuevo con revisión 1.
func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	if product.ScanCode != "" {
		existing, err := r.GetByScanCode(ctx, product.ScanCode)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.ErrDuplicate
		}
	}
	next := *product
	next.Revision = 1
	if err := insertJSON(ctx, r.s, EntityProduct, product.ID, &next); err != nil {
		return err
	}
	product.Revision = next.Revision
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	p, _, err := getJSON[entity.Product](ctx, r.s, EntityProduct, id)
	return p, err
}

// GetByScanCode busca por código de barras.
func (r *ProductRepo) GetByScanCode(ctx context.Context, code string) (*entity.Product, error) {
	if code == "" {
		return nil, nil
	}
	list, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, p := range list {
		if p.ScanCode == code {
			return p, nil
		}
	}
	return nil, nil
}

// List devuelve todos los productos en orden de alta.
func (r *ProductRepo) List(ctx context.Context) ([]*entity.Product, error) {
	return listJSON[entity.Product](ctx, r.s, EntityProduct)
}

// Update escribe el producto con compare-and-swap sobre la revisión almacenada.
func (r *ProductRepo) Update(ctx context.Context, product *entity.Product) error {
	stored, raw, err := getJSON[entity.Product](ctx, r.s, EntityProduct, product.ID)
	if err != nil {
		return err
	}
	if stored == nil {
		return domain.ErrNotFound
	}
	if stored.Revision != product.Revision {
		return domain.ErrConflict
	}
	next := *product
	next.Revision = stored.Revision + 1
	data, err := encode(EntityProduct, &next)
	if err != nil {
		return err
	}
	ok, err := r.s.CompareAndSwap(ctx, EntityProduct, product.ID, raw, data)
	if err != nil {
		return storageErr("cas", EntityProduct, err)
	}
	if !ok {
		return domain.ErrConflict
	}
	product.Revision = next.Revision
	return nil
}
