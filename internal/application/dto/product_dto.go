package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// Los nombres JSON siguen el contrato del frontend existente (portugués, camelCase).

// CreateProductRequest entrada para crear un producto. Precios nil (ausentes o null) se rechazan.
type CreateProductRequest struct {
	Barcode   string           `json:"codigoBarras"`
	Name      string           `json:"nome"`
	Category  string           `json:"categoria"`
	Quantity  int              `json:"quantidade"`
	CostPrice *decimal.Decimal `json:"precoCusto"`
	SalePrice *decimal.Decimal `json:"precoVenda"`
	Supplier  string           `json:"fornecedor"`
}

// UpdateProductRequest edición parcial: campo nil = conservar el valor actual.
// El código de barras siempre es el de la ruta.
type UpdateProductRequest struct {
	Name      *string          `json:"nome"`
	Category  *string          `json:"categoria"`
	Quantity  *int             `json:"quantidade"`
	CostPrice *decimal.Decimal `json:"precoCusto"`
	SalePrice *decimal.Decimal `json:"precoVenda"`
	Supplier  *string          `json:"fornecedor"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	Barcode   string          `json:"codigoBarras"`
	Name      string          `json:"nome"`
	Category  string          `json:"categoria"`
	Quantity  int             `json:"quantidade"`
	CostPrice decimal.Decimal `json:"precoCusto"`
	SalePrice decimal.Decimal `json:"precoVenda"`
	Supplier  string          `json:"fornecedor"`
	CreatedAt time.Time       `json:"criadoEm"`
	UpdatedAt time.Time       `json:"atualizadoEm"`
}
