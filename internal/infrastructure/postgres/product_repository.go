package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Estoque-api/internal/domain"
	"github.com/jhoicas/Estoque-api/internal/domain/entity"
	"github.com/jhoicas/Estoque-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `barcode, name, category, quantity, cost_price, sale_price, supplier, created_at, updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Save persiste un nuevo producto.
func (r *ProductRepo) Save(ctx context.Context, product *entity.Product) error {
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		product.Barcode, product.Name, product.Category, product.Quantity,
		product.CostPrice, product.SalePrice, product.Supplier, product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: código %s", domain.ErrAlreadyExists, product.Barcode)
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// FindByBarcode obtiene un producto por código de barras.
func (r *ProductRepo) FindByBarcode(ctx context.Context, barcode string) (*entity.Product, error) {
	return r.getOne(ctx, `SELECT `+productColumns+` FROM products WHERE barcode = $1`, barcode)
}

// GetForUpdate obtiene el producto y bloquea la fila para update (SELECT FOR UPDATE).
func (r *ProductRepo) GetForUpdate(ctx context.Context, barcode string) (*entity.Product, error) {
	return r.getOne(ctx, `SELECT `+productColumns+` FROM products WHERE barcode = $1 FOR UPDATE`, barcode)
}

// Exists indica si existe el código de barras.
func (r *ProductRepo) Exists(ctx context.Context, barcode string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM products WHERE barcode = $1)`, barcode).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists product: %w", err)
	}
	return exists, nil
}

// Update actualiza todos los campos editables del producto.
func (r *ProductRepo) Update(ctx context.Context, product *entity.Product) error {
	query := `
		UPDATE products
		SET name = $2, category = $3, quantity = $4, cost_price = $5, sale_price = $6, supplier = $7, updated_at = $8
		WHERE barcode = $1`
	cmd, err := r.q.Exec(ctx, query,
		product.Barcode, product.Name, product.Category, product.Quantity,
		product.CostPrice, product.SalePrice, product.Supplier, product.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("%w: código %s", domain.ErrNotFound, product.Barcode)
	}
	return nil
}

// Delete elimina el producto. Los movimientos no se tocan.
func (r *ProductRepo) Delete(ctx context.Context, barcode string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM products WHERE barcode = $1`, barcode)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("%w: código %s", domain.ErrNotFound, barcode)
	}
	return nil
}

// ListAll lista todos los productos ordenados por código.
func (r *ProductRepo) ListAll(ctx context.Context) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx, `SELECT `+productColumns+` FROM products ORDER BY barcode`)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

func (r *ProductRepo) getOne(ctx context.Context, query, barcode string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, query, barcode))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	if err := row.Scan(
		&p.Barcode, &p.Name, &p.Category, &p.Quantity, &p.CostPrice, &p.SalePrice,
		&p.Supplier, &p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		return nil, err
	}
	p.CreatedAt = p.CreatedAt.UTC()
	p.UpdatedAt = p.UpdatedAt.UTC()
	return &p, nil
}
