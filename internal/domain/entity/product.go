package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del inventario identificado por su código de barras.
// Quantity nunca es negativa; se modifica vía movimientos o edición completa.
type Product struct {
	Barcode   string // identificador natural, inmutable después de creado
	Name      string
	Category  string
	Quantity  int
	CostPrice decimal.Decimal // precio de costo
	SalePrice decimal.Decimal // precio de venta
	Supplier  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Equal compara identidad: dos productos son el mismo si comparten código de barras.
func (p *Product) Equal(other *Product) bool {
	if p == nil || other == nil {
		return p == other
	}
	return p.Barcode == other.Barcode
}

// Clone devuelve una copia independiente del producto.
func (p *Product) Clone() *Product {
	if p == nil {
		return nil
	}
	c := *p
	return &c
}

// StockValue devuelve Quantity * CostPrice.
func (p *Product) StockValue() decimal.Decimal {
	return p.CostPrice.Mul(decimal.NewFromInt(int64(p.Quantity)))
}
