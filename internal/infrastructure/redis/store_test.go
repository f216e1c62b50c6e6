package redis_test

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Estoque-api/internal/application/inventory"
	"github.com/jhoicas/Estoque-api/internal/domain"
	"github.com/jhoicas/Estoque-api/internal/domain/entity"
	"github.com/jhoicas/Estoque-api/internal/domain/repository"
	"github.com/jhoicas/Estoque-api/internal/infrastructure/redis"
	"github.com/jhoicas/Estoque-api/pkg/config"
	"github.com/jhoicas/Estoque-api/pkg/logger"
)

// testStore usa un prefijo aleatorio por test y borra sus claves al terminar.
func testStore(t *testing.T) *redis.Store {
	t.Helper()
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	client, err := redis.NewClient(ctx, config.RedisConfig{Addr: addr})
	if err != nil {
		t.Skipf("Redis no disponible: %v", err)
	}
	prefix := "estoque-test:" + uuid.NewString() + ":"
	t.Cleanup(func() {
		cleanup(client, prefix)
		_ = client.Close()
	})
	return redis.NewStore(client, prefix)
}

func cleanup(client *goredis.Client, prefix string) {
	ctx := context.Background()
	iter := client.Scan(ctx, 0, prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		client.Del(ctx, iter.Val())
	}
}

func product(barcode string, qty int) *entity.Product {
	return &entity.Product{
		Barcode: barcode, Name: "Café 500g", Category: "Bebidas", Quantity: qty,
		CostPrice: decimal.RequireFromString("12.30"), SalePrice: decimal.RequireFromString("18.90"),
		Supplier: "Pilão",
	}
}

func TestProductRepo_Redis(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()
	repo := store.Products()

	require.NoError(t, repo.Save(ctx, product("7891234567890", 10)))
	assert.ErrorIs(t, repo.Save(ctx, product("7891234567890", 1)), domain.ErrAlreadyExists)

	p, err := repo.FindByBarcode(ctx, "7891234567890")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, 10, p.Quantity)
	assert.True(t, decimal.RequireFromString("12.3").Equal(p.CostPrice))

	p.Name = "Café 1kg"
	require.NoError(t, repo.Update(ctx, p))
	assert.ErrorIs(t, repo.Update(ctx, product("nope", 1)), domain.ErrNotFound)

	list, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Café 1kg", list[0].Name)

	require.NoError(t, repo.Delete(ctx, "7891234567890"))
	ok, err := repo.Exists(ctx, "7891234567890")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMovementRepo_Redis(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()
	repo := store.Movements()
	base := time.Date(2024, 2, 1, 8, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Append(ctx, &entity.Movement{ID: "1", ProductBarcode: "A", Quantity: 4, Type: entity.MovementTypeIN, Reason: "Compra", Timestamp: base}))
	require.NoError(t, repo.Append(ctx, &entity.Movement{ID: "2", ProductBarcode: "A", Quantity: 1, Type: entity.MovementTypeOUT, Reason: "compra", Timestamp: base.Add(time.Minute)}))

	latest, err := repo.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, "2", latest.ID)

	byReason, err := repo.FindByReason(ctx, "COMPRA")
	require.NoError(t, err)
	assert.Len(t, byReason, 2)

	byPeriod, err := repo.FindByPeriod(ctx, base.Add(time.Minute), base.Add(time.Minute))
	require.NoError(t, err)
	assert.Len(t, byPeriod, 1)
}

func TestTxRunner_Redis(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()
	require.NoError(t, store.Products().Save(ctx, product("B", 0)))

	runner := store.TxRunner()

	// Error en fn: nada se publica
	err := runner.Run(ctx, "B", func(pr repository.ProductRepository, mr repository.MovementRepository) error {
		p, _ := pr.GetForUpdate(ctx, "B")
		p.Quantity = 99
		_ = pr.Update(ctx, p)
		_ = mr.Append(ctx, &entity.Movement{ID: "x", ProductBarcode: "B", Quantity: 99, Type: entity.MovementTypeIN, Reason: "x"})
		return domain.ErrValidation
	})
	assert.ErrorIs(t, err, domain.ErrValidation)
	all, _ := store.Movements().ListAll(ctx)
	assert.Empty(t, all)

	uc := inventory.NewStockAdjustmentUseCase(runner, logger.Nop())
	var (
		wg sync.WaitGroup
		mu sync.Mutex
		ok int
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := uc.AddStock(ctx, "B", 2, "compra"); err == nil {
				mu.Lock()
				ok++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	// Con conflictos persistentes algún ajuste puede fallar, pero nunca se pierde uno confirmado
	p, err := store.Products().FindByBarcode(ctx, "B")
	require.NoError(t, err)
	assert.Equal(t, 2*ok, p.Quantity)
	all, _ = store.Movements().ListAll(ctx)
	assert.Len(t, all, ok)
}
