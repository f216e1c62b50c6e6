// Package analytics contiene los indicadores de stock del dashboard.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Estoque-api/internal/application/dto"
	"github.com/jhoicas/Estoque-api/internal/domain/entity"
	"github.com/jhoicas/Estoque-api/internal/domain/repository"
)

// recentWindow ventana de los contadores de entradas y salidas.
const recentWindow = 24 * time.Hour

// DashboardUseCase calcula los KPIs de stock a partir del Product Store y del libro.
type DashboardUseCase struct {
	products          repository.ProductRepository
	movements         repository.MovementRepository
	lowStockThreshold int
	now               func() time.Time
}

// NewDashboardUseCase construye el caso de uso. lowStockThreshold: productos con cantidad
// menor o igual cuentan como stock bajo.
func NewDashboardUseCase(
	products repository.ProductRepository,
	movements repository.MovementRepository,
	lowStockThreshold int,
) *DashboardUseCase {
	return &DashboardUseCase{
		products:          products,
		movements:         movements,
		lowStockThreshold: lowStockThreshold,
		now:               time.Now,
	}
}

// WithClock reemplaza el reloj (tests).
func (uc *DashboardUseCase) WithClock(now func() time.Time) *DashboardUseCase {
	uc.now = now
	return uc
}

// GetStats construye el DashboardStatsDTO.
//
// Dos lecturas en paralelo:
//  1. ListAll de productos          → total, stock bajo, valor a costo
//  2. FindByPeriod(últimas 24 h)    → entradas y salidas
func (uc *DashboardUseCase) GetStats(ctx context.Context) (*dto.DashboardStatsDTO, error) {
	now := uc.now().UTC()

	type productsResult struct {
		list []*entity.Product
		err  error
	}
	type movementsResult struct {
		list []*entity.Movement
		err  error
	}

	productsCh := make(chan productsResult, 1)
	movementsCh := make(chan movementsResult, 1)

	go func() {
		list, err := uc.products.ListAll(ctx)
		productsCh <- productsResult{list, err}
	}()
	go func() {
		list, err := uc.movements.FindByPeriod(ctx, now.Add(-recentWindow), now)
		movementsCh <- movementsResult{list, err}
	}()

	products := <-productsCh
	movements := <-movementsCh

	if products.err != nil {
		return nil, fmt.Errorf("dashboard: productos: %w", products.err)
	}
	if movements.err != nil {
		return nil, fmt.Errorf("dashboard: movimientos: %w", movements.err)
	}

	stats := &dto.DashboardStatsDTO{
		TotalProducts: len(products.list),
		StockValue:    decimal.Zero,
	}
	for _, p := range products.list {
		if p.Quantity <= uc.lowStockThreshold {
			stats.LowStock++
		}
		stats.StockValue = stats.StockValue.Add(p.StockValue())
	}
	stats.StockValue = stats.StockValue.Round(2)

	for _, m := range movements.list {
		switch m.Type {
		case entity.MovementTypeIN:
			stats.Last24h.Entries++
		case entity.MovementTypeOUT:
			stats.Last24h.Exits++
		}
	}
	return stats, nil
}
