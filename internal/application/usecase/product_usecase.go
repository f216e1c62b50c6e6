package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Estoque-api/internal/application/dto"
	"github.com/jhoicas/Estoque-api/internal/application/inventory"
	"github.com/jhoicas/Estoque-api/internal/domain"
	"github.com/jhoicas/Estoque-api/internal/domain/entity"
	"github.com/jhoicas/Estoque-api/internal/domain/repository"
	"github.com/jhoicas/Estoque-api/internal/domain/validation"
	"github.com/jhoicas/Estoque-api/pkg/logger"
)

// ProductUseCase casos de uso del ciclo de vida de productos.
// Las escrituras pasan por el TxRunner del código de barras, igual que los ajustes de stock.
type ProductUseCase struct {
	repo     repository.ProductRepository
	txRunner inventory.TxRunner
	log      *logger.Logger
	now      func() time.Time
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, txRunner inventory.TxRunner, log *logger.Logger) *ProductUseCase {
	return &ProductUseCase{repo: repo, txRunner: txRunner, log: log, now: time.Now}
}

// Create valida y registra un producto nuevo.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.CostPrice == nil || in.SalePrice == nil {
		return nil, fmt.Errorf("%w: precio de costo y precio de venta son obligatorios", domain.ErrValidation)
	}
	now := uc.now().UTC().Truncate(time.Microsecond)
	product := &entity.Product{
		Barcode:   in.Barcode,
		Name:      in.Name,
		Category:  in.Category,
		Quantity:  in.Quantity,
		CostPrice: *in.CostPrice,
		SalePrice: *in.SalePrice,
		Supplier:  in.Supplier,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := validation.ValidateProduct(product); err != nil {
		return nil, err
	}

	exists, err := uc.repo.Exists(ctx, product.Barcode)
	if err != nil {
		return nil, fmt.Errorf("verificar producto: %w", err)
	}
	if exists {
		return nil, fmt.Errorf("%w: código %s", domain.ErrAlreadyExists, product.Barcode)
	}

	// Save vuelve a verificar dentro de la unidad de trabajo (alta concurrente)
	err = uc.txRunner.Run(ctx, product.Barcode, func(pr repository.ProductRepository, _ repository.MovementRepository) error {
		return pr.Save(ctx, product)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("barcode", product.Barcode).Msg("producto registrado")
	return dto.FromProduct(product), nil
}

// Get obtiene un producto por código de barras.
func (uc *ProductUseCase) Get(ctx context.Context, barcode string) (*dto.ProductResponse, error) {
	if err := validation.ValidateBarcode(barcode); err != nil {
		return nil, err
	}
	product, err := uc.repo.FindByBarcode(ctx, barcode)
	if err != nil {
		return nil, fmt.Errorf("obtener producto: %w", err)
	}
	if product == nil {
		return nil, fmt.Errorf("%w: código %s", domain.ErrNotFound, barcode)
	}
	return dto.FromProduct(product), nil
}

// List devuelve todos los productos (slice vacío si no hay ninguno).
func (uc *ProductUseCase) List(ctx context.Context) ([]dto.ProductResponse, error) {
	list, err := uc.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar productos: %w", err)
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *dto.FromProduct(p))
	}
	return items, nil
}

// Update aplica una edición parcial, revalida el producto resultante y lo devuelve
// tal como quedó en el almacenamiento.
func (uc *ProductUseCase) Update(ctx context.Context, barcode string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	if err := validation.ValidateBarcode(barcode); err != nil {
		return nil, err
	}
	now := uc.now().UTC().Truncate(time.Microsecond)

	err := uc.txRunner.Run(ctx, barcode, func(pr repository.ProductRepository, _ repository.MovementRepository) error {
		product, err := pr.GetForUpdate(ctx, barcode)
		if err != nil {
			return fmt.Errorf("obtener producto: %w", err)
		}
		if product == nil {
			return fmt.Errorf("%w: código %s", domain.ErrNotFound, barcode)
		}
		applyUpdate(product, in)
		product.Barcode = barcode
		product.UpdatedAt = now
		if err := validation.ValidateProduct(product); err != nil {
			return err
		}
		return pr.Update(ctx, product)
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().Str("barcode", barcode).Msg("producto actualizado")
	return uc.Get(ctx, barcode)
}

// Delete elimina el producto. Su historial de movimientos se conserva.
func (uc *ProductUseCase) Delete(ctx context.Context, barcode string) error {
	if err := validation.ValidateBarcode(barcode); err != nil {
		return err
	}
	err := uc.txRunner.Run(ctx, barcode, func(pr repository.ProductRepository, _ repository.MovementRepository) error {
		return pr.Delete(ctx, barcode)
	})
	if err != nil {
		return err
	}
	uc.log.Info().Str("barcode", barcode).Msg("producto eliminado")
	return nil
}

func applyUpdate(p *entity.Product, in dto.UpdateProductRequest) {
	if in.Name != nil {
		p.Name = *in.Name
	}
	if in.Category != nil {
		p.Category = *in.Category
	}
	if in.Quantity != nil {
		p.Quantity = *in.Quantity
	}
	if in.CostPrice != nil {
		p.CostPrice = *in.CostPrice
	}
	if in.SalePrice != nil {
		p.SalePrice = *in.SalePrice
	}
	if in.Supplier != nil {
		p.Supplier = *in.Supplier
	}
}
