package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/jhoicas/Estoque-api/internal/domain"
	"github.com/jhoicas/Estoque-api/internal/domain/entity"
	"github.com/jhoicas/Estoque-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación en memoria de ProductRepository.
type ProductRepo struct {
	s *Store
}

// Save persiste un producto nuevo.
func (r *ProductRepo) Save(ctx context.Context, product *entity.Product) error {
	if err := checkCtx(ctx); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[product.Barcode]; ok {
		return fmt.Errorf("%w: código %s", domain.ErrAlreadyExists, product.Barcode)
	}
	r.s.products[product.Barcode] = *product
	return nil
}

// FindByBarcode devuelve una copia del producto o nil si no existe.
func (r *ProductRepo) FindByBarcode(ctx context.Context, barcode string) (*entity.Product, error) {
	if err := checkCtx(ctx); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.products[barcode]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

// GetForUpdate fuera de una unidad de trabajo equivale a FindByBarcode.
func (r *ProductRepo) GetForUpdate(ctx context.Context, barcode string) (*entity.Product, error) {
	return r.FindByBarcode(ctx, barcode)
}

// Exists indica si hay un producto con ese código.
func (r *ProductRepo) Exists(ctx context.Context, barcode string) (bool, error) {
	p, err := r.FindByBarcode(ctx, barcode)
	return p != nil, err
}

// Update reemplaza el producto existente.
func (r *ProductRepo) Update(ctx context.Context, product *entity.Product) error {
	if err := checkCtx(ctx); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[product.Barcode]; !ok {
		return fmt.Errorf("%w: código %s", domain.ErrNotFound, product.Barcode)
	}
	r.s.products[product.Barcode] = *product
	return nil
}

// Delete elimina el producto.
func (r *ProductRepo) Delete(ctx context.Context, barcode string) error {
	if err := checkCtx(ctx); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[barcode]; !ok {
		return fmt.Errorf("%w: código %s", domain.ErrNotFound, barcode)
	}
	delete(r.s.products, barcode)
	return nil
}

// ListAll devuelve copias de todos los productos ordenados por código.
func (r *ProductRepo) ListAll(ctx context.Context) ([]*entity.Product, error) {
	if err := checkCtx(ctx); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	list := make([]*entity.Product, 0, len(r.s.products))
	for _, p := range r.s.products {
		p := p
		list = append(list, &p)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Barcode < list[j].Barcode })
	return list, nil
}
