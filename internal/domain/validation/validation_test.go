package validation_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Estoque-api/internal/domain"
	"github.com/jhoicas/Estoque-api/internal/domain/entity"
	"github.com/jhoicas/Estoque-api/internal/domain/validation"
)

func validProduct() *entity.Product {
	return &entity.Product{
		Barcode:   "1234567890123",
		Name:      "Caneta Azul",
		Category:  "Papelaria",
		Quantity:  10,
		CostPrice: decimal.RequireFromString("1.50"),
		SalePrice: decimal.RequireFromString("3.00"),
		Supplier:  "BIC",
	}
}

func TestValidateProduct(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(p *entity.Product)
		wantMsg string
	}{
		{"válido", func(p *entity.Product) {}, ""},
		{"barcode en blanco", func(p *entity.Product) { p.Barcode = "  " }, "código de barras"},
		{"nombre vacío", func(p *entity.Product) { p.Name = "" }, "nombre"},
		{"categoría vacía", func(p *entity.Product) { p.Category = "" }, "categoría"},
		{"proveedor vacío", func(p *entity.Product) { p.Supplier = "\t" }, "proveedor"},
		{"cantidad negativa", func(p *entity.Product) { p.Quantity = -1 }, "cantidad"},
		{"costo negativo", func(p *entity.Product) { p.CostPrice = decimal.NewFromInt(-1) }, "costo"},
		{"venta negativa", func(p *entity.Product) { p.SalePrice = decimal.NewFromInt(-1) }, "venta"},
		{"cantidad cero permitida", func(p *entity.Product) { p.Quantity = 0 }, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validProduct()
			tt.mutate(p)
			err := validation.ValidateProduct(p)
			if tt.wantMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, domain.ErrValidation)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestValidateProduct_AcumulaViolaciones(t *testing.T) {
	p := validProduct()
	p.Name = ""
	p.Supplier = ""

	err := validation.ValidateProduct(p)
	require.ErrorIs(t, err, domain.ErrValidation)
	assert.Contains(t, err.Error(), "nombre")
	assert.Contains(t, err.Error(), "proveedor")
}

func TestValidateAdjustment(t *testing.T) {
	assert.NoError(t, validation.ValidateAdjustment(1, "reposição"))
	assert.ErrorIs(t, validation.ValidateAdjustment(0, "venda"), domain.ErrValidation)
	assert.ErrorIs(t, validation.ValidateAdjustment(-5, "venda"), domain.ErrValidation)
	assert.ErrorIs(t, validation.ValidateAdjustment(3, " "), domain.ErrValidation)
}

func TestValidateBarcode(t *testing.T) {
	assert.NoError(t, validation.ValidateBarcode("789"))
	assert.ErrorIs(t, validation.ValidateBarcode(""), domain.ErrInvalidInput)
}

func TestValidatePeriod(t *testing.T) {
	now := time.Now()
	assert.NoError(t, validation.ValidatePeriod(now, now))
	assert.NoError(t, validation.ValidatePeriod(now.Add(-time.Hour), now))
	assert.ErrorIs(t, validation.ValidatePeriod(time.Time{}, now), domain.ErrInvalidInput)
	assert.ErrorIs(t, validation.ValidatePeriod(now, time.Time{}), domain.ErrInvalidInput)
	assert.ErrorIs(t, validation.ValidatePeriod(now, now.Add(-time.Second)), domain.ErrInvalidInput)
}
