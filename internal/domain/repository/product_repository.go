package repository

import (
	"context"

	"github.com/jhoicas/Estoque-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// Las lecturas devuelven (nil, nil) si el producto no existe y siempre entregan copias.
type ProductRepository interface {
	// Save inserta un producto nuevo. Devuelve domain.ErrAlreadyExists si el código ya existe.
	Save(ctx context.Context, product *entity.Product) error
	FindByBarcode(ctx context.Context, barcode string) (*entity.Product, error)
	// GetForUpdate lee el producto bloqueándolo hasta el fin de la unidad de trabajo
	// (SELECT FOR UPDATE en PostgreSQL). Fuera de un TxRunner equivale a FindByBarcode.
	GetForUpdate(ctx context.Context, barcode string) (*entity.Product, error)
	Exists(ctx context.Context, barcode string) (bool, error)
	// Update reemplaza los campos del producto. Devuelve domain.ErrNotFound si no existe.
	Update(ctx context.Context, product *entity.Product) error
	// Delete elimina el producto. Devuelve domain.ErrNotFound si no existe.
	Delete(ctx context.Context, barcode string) error
	ListAll(ctx context.Context) ([]*entity.Product, error)
}
