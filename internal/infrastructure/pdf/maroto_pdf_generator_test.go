package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Estoque-api/internal/application/report"
	"github.com/jhoicas/Estoque-api/internal/domain/entity"
)

func TestFormatMoney(t *testing.T) {
	cases := map[string]string{
		"0":         "R$ 0,00",
		"7.99":      "R$ 7,99",
		"1234.5":    "R$ 1.234,50",
		"1000000":   "R$ 1.000.000,00",
		"-25000.1":  "R$ -25.000,10",
	}
	for in, want := range cases {
		assert.Equal(t, want, formatMoney(decimal.RequireFromString(in)), in)
	}
}

func TestStockReport_GeneraPDF(t *testing.T) {
	g := NewMarotoPDFGenerator("estoque-api")
	p := &entity.Product{
		Barcode: "7891234567890", Name: "Arroz 5kg", Category: "Alimentos", Quantity: 10,
		CostPrice: decimal.RequireFromString("18.5"), SalePrice: decimal.RequireFromString("24.9"), Supplier: "Tio João",
	}
	data := report.StockReportData{
		GeneratedAt:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Products:      []*entity.Product{p},
		TotalQuantity: 10,
		TotalValue:    p.StockValue(),
		RecentMovements: []*entity.Movement{{
			ID: "1", ProductBarcode: p.Barcode, Quantity: 10, Type: entity.MovementTypeIN,
			Reason: "estoque inicial", Timestamp: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		}},
	}

	out, err := g.StockReport(context.Background(), data)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestStockReport_Vacio(t *testing.T) {
	out, err := NewMarotoPDFGenerator("estoque-api").StockReport(context.Background(), report.StockReportData{
		GeneratedAt: time.Now(), TotalValue: decimal.Zero,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}

func TestProductLabel_GeneraPDF(t *testing.T) {
	out, err := NewMarotoPDFGenerator("estoque-api").ProductLabel(context.Background(), &entity.Product{
		Barcode: "7891234567890", Name: "Arroz 5kg", SalePrice: decimal.RequireFromString("24.9"),
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}
