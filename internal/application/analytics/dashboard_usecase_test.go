package analytics_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Estoque-api/internal/application/analytics"
	"github.com/jhoicas/Estoque-api/internal/domain/entity"
	"github.com/jhoicas/Estoque-api/internal/infrastructure/memory"
)

func TestGetStats(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	store := memory.NewStore()

	products := []*entity.Product{
		{Barcode: "1", Name: "A", Category: "C", Supplier: "S", Quantity: 10, CostPrice: decimal.RequireFromString("2.50")},
		{Barcode: "2", Name: "B", Category: "C", Supplier: "S", Quantity: 11, CostPrice: decimal.RequireFromString("1.00")},
		{Barcode: "3", Name: "C", Category: "C", Supplier: "S", Quantity: 0, CostPrice: decimal.RequireFromString("99")},
	}
	for _, p := range products {
		require.NoError(t, store.Products().Save(ctx, p))
	}
	movs := []*entity.Movement{
		{ID: "a", ProductBarcode: "1", Quantity: 1, Type: entity.MovementTypeIN, Reason: "x", Timestamp: now.Add(-time.Hour)},
		{ID: "b", ProductBarcode: "1", Quantity: 1, Type: entity.MovementTypeOUT, Reason: "x", Timestamp: now.Add(-23 * time.Hour)},
		{ID: "c", ProductBarcode: "2", Quantity: 1, Type: entity.MovementTypeOUT, Reason: "x", Timestamp: now.Add(-2 * time.Hour)},
		{ID: "d", ProductBarcode: "2", Quantity: 1, Type: entity.MovementTypeIN, Reason: "x", Timestamp: now.Add(-25 * time.Hour)},
	}
	for _, m := range movs {
		require.NoError(t, store.Movements().Append(ctx, m))
	}

	uc := analytics.NewDashboardUseCase(store.Products(), store.Movements(), 10).
		WithClock(func() time.Time { return now })

	stats, err := uc.GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalProducts)
	assert.Equal(t, 2, stats.LowStock)
	assert.True(t, decimal.RequireFromString("36").Equal(stats.StockValue), stats.StockValue.String())
	assert.Equal(t, 1, stats.Last24h.Entries)
	assert.Equal(t, 2, stats.Last24h.Exits)
}

func TestGetStats_Vacio(t *testing.T) {
	store := memory.NewStore()
	stats, err := analytics.NewDashboardUseCase(store.Products(), store.Movements(), 10).GetStats(context.Background())
	require.NoError(t, err)
	assert.Zero(t, stats.TotalProducts)
	assert.True(t, stats.StockValue.IsZero())
}
