package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Estoque-api/internal/domain"
	"github.com/jhoicas/Estoque-api/internal/domain/entity"
	"github.com/jhoicas/Estoque-api/internal/domain/repository"
)

func newProduct(barcode string, qty int) *entity.Product {
	return &entity.Product{Barcode: barcode, Name: "Produto " + barcode, Category: "Geral", Quantity: qty, Supplier: "ACME"}
}

func TestProductRepo_CRUD(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().Products()

	require.NoError(t, repo.Save(ctx, newProduct("7891234567890", 10)))
	err := repo.Save(ctx, newProduct("7891234567890", 1))
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)

	p, err := repo.FindByBarcode(ctx, "7891234567890")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, 10, p.Quantity)

	// Las lecturas son copias
	p.Quantity = 999
	again, _ := repo.FindByBarcode(ctx, "7891234567890")
	assert.Equal(t, 10, again.Quantity)

	missing, err := repo.FindByBarcode(ctx, "000")
	require.NoError(t, err)
	assert.Nil(t, missing)

	assert.ErrorIs(t, repo.Update(ctx, newProduct("000", 1)), domain.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, "000"), domain.ErrNotFound)

	require.NoError(t, repo.Save(ctx, newProduct("1000", 3)))
	list, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "1000", list[0].Barcode)

	require.NoError(t, repo.Delete(ctx, "1000"))
	ok, err := repo.Exists(ctx, "1000")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMovementRepo_Queries(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().Movements()
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	movs := []*entity.Movement{
		{ID: "1", ProductBarcode: "A", Quantity: 5, Type: entity.MovementTypeIN, Reason: "Compra", Timestamp: base},
		{ID: "2", ProductBarcode: "B", Quantity: 2, Type: entity.MovementTypeOUT, Reason: "venda", Timestamp: base.Add(time.Hour)},
		{ID: "3", ProductBarcode: "A", Quantity: 1, Type: entity.MovementTypeOUT, Reason: "VENDA", Timestamp: base.Add(2 * time.Hour)},
	}
	for _, m := range movs {
		require.NoError(t, repo.Append(ctx, m))
	}

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "3", all[0].ID)

	byProduct, _ := repo.FindByProduct(ctx, "A")
	assert.Len(t, byProduct, 2)

	// Extremos inclusivos
	byPeriod, _ := repo.FindByPeriod(ctx, base, base.Add(time.Hour))
	assert.Len(t, byPeriod, 2)

	byReason, _ := repo.FindByReason(ctx, "Venda")
	assert.Len(t, byReason, 2)

	byType, _ := repo.FindByType(ctx, entity.MovementTypeIN)
	require.Len(t, byType, 1)
	assert.Equal(t, "1", byType[0].ID)

	latest, err := repo.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, "3", latest.ID)

	empty, err := NewStore().Movements().Latest(ctx)
	require.NoError(t, err)
	assert.Nil(t, empty)
}

func TestTxRunner_CommitPublishesBoth(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	require.NoError(t, store.Products().Save(ctx, newProduct("A", 10)))

	err := store.TxRunner().Run(ctx, "A", func(pr repository.ProductRepository, mr repository.MovementRepository) error {
		p, err := pr.GetForUpdate(ctx, "A")
		require.NoError(t, err)
		p.Quantity = 30
		require.NoError(t, pr.Update(ctx, p))
		require.NoError(t, mr.Append(ctx, &entity.Movement{ID: "m1", ProductBarcode: "A", Quantity: 20, Type: entity.MovementTypeIN, Reason: "restock"}))

		// Dentro de la unidad se ven las escrituras pendientes
		inTx, _ := pr.FindByBarcode(ctx, "A")
		assert.Equal(t, 30, inTx.Quantity)
		// Fuera todavía no
		outside, _ := store.Products().FindByBarcode(ctx, "A")
		assert.Equal(t, 10, outside.Quantity)
		return nil
	})
	require.NoError(t, err)

	p, _ := store.Products().FindByBarcode(ctx, "A")
	assert.Equal(t, 30, p.Quantity)
	all, _ := store.Movements().ListAll(ctx)
	assert.Len(t, all, 1)
}

func TestTxRunner_ErrorDiscardsEverything(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	require.NoError(t, store.Products().Save(ctx, newProduct("A", 10)))
	boom := errors.New("boom")

	err := store.TxRunner().Run(ctx, "A", func(pr repository.ProductRepository, mr repository.MovementRepository) error {
		p, _ := pr.GetForUpdate(ctx, "A")
		p.Quantity = 0
		_ = pr.Update(ctx, p)
		_ = mr.Append(ctx, &entity.Movement{ID: "m1", ProductBarcode: "A", Quantity: 10, Type: entity.MovementTypeOUT, Reason: "x"})
		return boom
	})
	assert.ErrorIs(t, err, boom)

	p, _ := store.Products().FindByBarcode(ctx, "A")
	assert.Equal(t, 10, p.Quantity)
	all, _ := store.Movements().ListAll(ctx)
	assert.Empty(t, all)
}

func TestTxRunner_SerializesSameBarcode(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	require.NoError(t, store.Products().Save(ctx, newProduct("A", 0)))

	const workers = 50
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = store.TxRunner().Run(ctx, "A", func(pr repository.ProductRepository, _ repository.MovementRepository) error {
				p, err := pr.GetForUpdate(ctx, "A")
				if err != nil {
					return err
				}
				p.Quantity++
				return pr.Update(ctx, p)
			})
		}()
	}
	wg.Wait()

	p, _ := store.Products().FindByBarcode(ctx, "A")
	assert.Equal(t, workers, p.Quantity)
	assert.Zero(t, store.locks.size())
}

func TestTxRunner_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	called := false
	err := NewStore().TxRunner().Run(ctx, "A", func(repository.ProductRepository, repository.MovementRepository) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}
