package usecase_test

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Estoque-api/internal/application/dto"
	"github.com/jhoicas/Estoque-api/internal/application/usecase"
	"github.com/jhoicas/Estoque-api/internal/domain"
	"github.com/jhoicas/Estoque-api/internal/domain/entity"
	"github.com/jhoicas/Estoque-api/internal/infrastructure/memory"
	"github.com/jhoicas/Estoque-api/pkg/logger"
)

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func ptr[T any](v T) *T { return &v }

func validRequest() dto.CreateProductRequest {
	return dto.CreateProductRequest{
		Barcode: "7891234567890", Name: "Leite 1L", Category: "Laticínios", Quantity: 10,
		CostPrice: dec("3.20"), SalePrice: dec("4.99"), Supplier: "Italac",
	}
}

func newUseCase() (*memory.Store, *usecase.ProductUseCase) {
	store := memory.NewStore()
	return store, usecase.NewProductUseCase(store.Products(), store.TxRunner(), logger.Nop())
}

func TestProductUseCase_CreateYGet(t *testing.T) {
	ctx := context.Background()
	_, uc := newUseCase()

	created, err := uc.Create(ctx, validRequest())
	require.NoError(t, err)
	assert.Equal(t, "7891234567890", created.Barcode)

	got, err := uc.Get(ctx, "7891234567890")
	require.NoError(t, err)
	assert.Equal(t, 10, got.Quantity)
	assert.True(t, dec("4.99").Equal(got.SalePrice))
	assert.False(t, got.CreatedAt.IsZero())

	_, err = uc.Create(ctx, validRequest())
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)
}

func TestProductUseCase_CreateValidacion(t *testing.T) {
	ctx := context.Background()
	store, uc := newUseCase()

	cases := map[string]func(*dto.CreateProductRequest){
		"nombre vacío":       func(r *dto.CreateProductRequest) { r.Name = "  " },
		"cantidad negativa":  func(r *dto.CreateProductRequest) { r.Quantity = -1 },
		"costo nulo":         func(r *dto.CreateProductRequest) { r.CostPrice = nil },
		"venta negativa":     func(r *dto.CreateProductRequest) { r.SalePrice = dec("-1") },
		"código vacío":       func(r *dto.CreateProductRequest) { r.Barcode = "" },
		"proveedor vacío":    func(r *dto.CreateProductRequest) { r.Supplier = "" },
		"categoría vacía":    func(r *dto.CreateProductRequest) { r.Category = "" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			req := validRequest()
			mutate(&req)
			_, err := uc.Create(ctx, req)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}

	list, err := store.Products().ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestProductUseCase_CreateConcurrenteUnSoloGanador(t *testing.T) {
	ctx := context.Background()
	_, uc := newUseCase()

	var (
		wg  sync.WaitGroup
		mu  sync.Mutex
		oks int
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := uc.Create(ctx, validRequest()); err == nil {
				mu.Lock()
				oks++
				mu.Unlock()
			} else {
				assert.ErrorIs(t, err, domain.ErrAlreadyExists)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, oks)
}

func TestProductUseCase_GetErrores(t *testing.T) {
	ctx := context.Background()
	_, uc := newUseCase()

	_, err := uc.Get(ctx, " ")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Get(ctx, "000")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProductUseCase_ListVacio(t *testing.T) {
	_, uc := newUseCase()
	list, err := uc.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestProductUseCase_UpdateParcial(t *testing.T) {
	ctx := context.Background()
	_, uc := newUseCase()
	_, err := uc.Create(ctx, validRequest())
	require.NoError(t, err)

	updated, err := uc.Update(ctx, "7891234567890", dto.UpdateProductRequest{
		Name:     ptr("Leite Integral 1L"),
		Quantity: ptr(25),
	})
	require.NoError(t, err)
	assert.Equal(t, "Leite Integral 1L", updated.Name)
	assert.Equal(t, 25, updated.Quantity)
	assert.Equal(t, "Italac", updated.Supplier)
	assert.True(t, dec("3.2").Equal(updated.CostPrice))

	// Valores inválidos no se persisten
	_, err = uc.Update(ctx, "7891234567890", dto.UpdateProductRequest{Quantity: ptr(-5)})
	assert.ErrorIs(t, err, domain.ErrValidation)
	got, _ := uc.Get(ctx, "7891234567890")
	assert.Equal(t, 25, got.Quantity)

	for _, blank := range []string{"", "   "} {
		_, err = uc.Update(ctx, "7891234567890", dto.UpdateProductRequest{Name: ptr(blank)})
		assert.ErrorIs(t, err, domain.ErrValidation, "nombre %q", blank)
		got, err := uc.Get(ctx, "7891234567890")
		require.NoError(t, err)
		assert.Equal(t, "Leite Integral 1L", got.Name)
		assert.Equal(t, 25, got.Quantity)
	}

	_, err = uc.Update(ctx, "000", dto.UpdateProductRequest{Name: ptr("x")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = uc.Update(ctx, "", dto.UpdateProductRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProductUseCase_DeleteConservaHistorial(t *testing.T) {
	ctx := context.Background()
	store, uc := newUseCase()
	_, err := uc.Create(ctx, validRequest())
	require.NoError(t, err)
	require.NoError(t, store.Movements().Append(ctx, &entity.Movement{
		ID: "m1", ProductBarcode: "7891234567890", Quantity: 1, Type: entity.MovementTypeIN, Reason: "compra",
	}))

	require.NoError(t, uc.Delete(ctx, "7891234567890"))
	_, err = uc.Get(ctx, "7891234567890")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, uc.Delete(ctx, "7891234567890"), domain.ErrNotFound)
	assert.ErrorIs(t, uc.Delete(ctx, " "), domain.ErrInvalidInput)

	movs, err := store.Movements().FindByProduct(ctx, "7891234567890")
	require.NoError(t, err)
	assert.Len(t, movs, 1)
}
