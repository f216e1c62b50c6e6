package entity_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Estoque-api/internal/domain/entity"
)

func TestParseMovementType(t *testing.T) {
	cases := map[string]entity.MovementType{
		"IN":      entity.MovementTypeIN,
		"in":      entity.MovementTypeIN,
		"entrada": entity.MovementTypeIN,
		"OUT":     entity.MovementTypeOUT,
		" Saida ": entity.MovementTypeOUT,
	}
	for in, want := range cases {
		got, err := entity.ParseMovementType(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := entity.ParseMovementType("ADJUSTMENT")
	assert.Error(t, err)
}

func TestProduct_EqualByBarcode(t *testing.T) {
	a := &entity.Product{Barcode: "123", Name: "A", Quantity: 1}
	b := &entity.Product{Barcode: "123", Name: "B", Quantity: 99}
	c := &entity.Product{Barcode: "456", Name: "A", Quantity: 1}

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
}

func TestProduct_CloneIsIndependent(t *testing.T) {
	p := &entity.Product{Barcode: "123", Quantity: 5, CostPrice: decimal.NewFromInt(2)}
	c := p.Clone()
	c.Quantity = 50

	assert.Equal(t, 5, p.Quantity)
	assert.True(t, decimal.NewFromInt(10).Equal(p.StockValue()))
}
