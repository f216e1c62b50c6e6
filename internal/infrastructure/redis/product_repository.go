package redis

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/Estoque-api/internal/domain"
	"github.com/jhoicas/Estoque-api/internal/domain/entity"
	"github.com/jhoicas/Estoque-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo productos sobre Redis. Dentro de una unidad de trabajo (tx != nil) lee con
// la conexión vigilada y deja las escrituras en el buffer; fuera de ella cada escritura
// abre su propia unidad de trabajo.
type ProductRepo struct {
	s   *Store
	rdb commander
	tx  *txState
}

// Save persiste un producto nuevo.
func (r *ProductRepo) Save(ctx context.Context, product *entity.Product) error {
	if r.tx == nil {
		return r.s.TxRunner().Run(ctx, product.Barcode, func(pr repository.ProductRepository, _ repository.MovementRepository) error {
			return pr.Save(ctx, product)
		})
	}
	existing, err := r.FindByBarcode(ctx, product.Barcode)
	if err != nil {
		return err
	}
	if existing != nil {
		return fmt.Errorf("%w: código %s", domain.ErrAlreadyExists, product.Barcode)
	}
	r.tx.stage(product.Barcode, product.Clone())
	return nil
}

// FindByBarcode devuelve el producto o nil.
func (r *ProductRepo) FindByBarcode(ctx context.Context, barcode string) (*entity.Product, error) {
	if r.tx != nil {
		if p, ok := r.tx.products[barcode]; ok {
			return p.Clone(), nil
		}
		if err := r.tx.watch(ctx, r.s.keys.product(barcode)); err != nil {
			return nil, err
		}
	}
	data, err := r.rdb.Get(ctx, r.s.keys.product(barcode)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return decodeProduct(data)
}

// GetForUpdate: la clave ya está bajo WATCH dentro del TxRunner.
func (r *ProductRepo) GetForUpdate(ctx context.Context, barcode string) (*entity.Product, error) {
	return r.FindByBarcode(ctx, barcode)
}

// Exists indica si el código existe.
func (r *ProductRepo) Exists(ctx context.Context, barcode string) (bool, error) {
	p, err := r.FindByBarcode(ctx, barcode)
	return p != nil, err
}

// Update reemplaza el producto.
func (r *ProductRepo) Update(ctx context.Context, product *entity.Product) error {
	if r.tx == nil {
		return r.s.TxRunner().Run(ctx, product.Barcode, func(pr repository.ProductRepository, _ repository.MovementRepository) error {
			return pr.Update(ctx, product)
		})
	}
	existing, err := r.FindByBarcode(ctx, product.Barcode)
	if err != nil {
		return err
	}
	if existing == nil {
		return fmt.Errorf("%w: código %s", domain.ErrNotFound, product.Barcode)
	}
	r.tx.stage(product.Barcode, product.Clone())
	return nil
}

// Delete elimina el producto; los movimientos se conservan.
func (r *ProductRepo) Delete(ctx context.Context, barcode string) error {
	if r.tx == nil {
		return r.s.TxRunner().Run(ctx, barcode, func(pr repository.ProductRepository, _ repository.MovementRepository) error {
			return pr.Delete(ctx, barcode)
		})
	}
	existing, err := r.FindByBarcode(ctx, barcode)
	if err != nil {
		return err
	}
	if existing == nil {
		return fmt.Errorf("%w: código %s", domain.ErrNotFound, barcode)
	}
	r.tx.stage(barcode, nil)
	return nil
}

// ListAll lista todos los productos ordenados por código.
func (r *ProductRepo) ListAll(ctx context.Context) ([]*entity.Product, error) {
	barcodes, err := r.rdb.SMembers(ctx, r.s.keys.productSet()).Result()
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	byBarcode := make(map[string]*entity.Product, len(barcodes))
	if len(barcodes) > 0 {
		productKeys := make([]string, len(barcodes))
		for i, b := range barcodes {
			productKeys[i] = r.s.keys.product(b)
		}
		values, err := r.rdb.MGet(ctx, productKeys...).Result()
		if err != nil {
			return nil, fmt.Errorf("mget products: %w", err)
		}
		for _, v := range values {
			s, ok := v.(string)
			if !ok {
				continue // borrado entre SMEMBERS y MGET
			}
			p, err := decodeProduct([]byte(s))
			if err != nil {
				return nil, err
			}
			byBarcode[p.Barcode] = p
		}
	}
	if r.tx != nil {
		for barcode, p := range r.tx.products {
			if p == nil {
				delete(byBarcode, barcode)
				continue
			}
			byBarcode[barcode] = p.Clone()
		}
	}

	list := make([]*entity.Product, 0, len(byBarcode))
	for _, p := range byBarcode {
		list = append(list, p)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Barcode < list[j].Barcode })
	return list, nil
}
