// Package history expone las consultas de solo lectura sobre el libro de movimientos.
package history

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/Estoque-api/internal/domain"
	"github.com/jhoicas/Estoque-api/internal/domain/entity"
	"github.com/jhoicas/Estoque-api/internal/domain/repository"
	"github.com/jhoicas/Estoque-api/internal/domain/validation"
)

// HistoryUseCase proyecciones del libro. Todas las listas vienen ordenadas de la más
// reciente a la más antigua.
type HistoryUseCase struct {
	movements repository.MovementRepository
	products  repository.ProductRepository
}

// NewHistoryUseCase construye el caso de uso.
func NewHistoryUseCase(movements repository.MovementRepository, products repository.ProductRepository) *HistoryUseCase {
	return &HistoryUseCase{movements: movements, products: products}
}

// All devuelve todo el libro o domain.ErrEmptyHistory si no hay movimientos.
func (uc *HistoryUseCase) All(ctx context.Context) ([]*entity.Movement, error) {
	list, err := uc.movements.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar movimientos: %w", err)
	}
	if len(list) == 0 {
		return nil, domain.ErrEmptyHistory
	}
	return list, nil
}

// ByProduct movimientos de un producto existente.
func (uc *HistoryUseCase) ByProduct(ctx context.Context, barcode string) ([]*entity.Movement, error) {
	if err := validation.ValidateBarcode(barcode); err != nil {
		return nil, err
	}
	exists, err := uc.products.Exists(ctx, barcode)
	if err != nil {
		return nil, fmt.Errorf("verificar producto: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: código %s", domain.ErrNotFound, barcode)
	}
	list, err := uc.movements.FindByProduct(ctx, barcode)
	if err != nil {
		return nil, fmt.Errorf("movimientos por producto: %w", err)
	}
	return list, nil
}

// ByPeriod movimientos con start <= Timestamp <= end.
func (uc *HistoryUseCase) ByPeriod(ctx context.Context, start, end time.Time) ([]*entity.Movement, error) {
	if err := validation.ValidatePeriod(start, end); err != nil {
		return nil, err
	}
	list, err := uc.movements.FindByPeriod(ctx, start.UTC(), end.UTC())
	if err != nil {
		return nil, fmt.Errorf("movimientos por período: %w", err)
	}
	return list, nil
}

// ByReason movimientos cuyo motivo coincide sin distinguir mayúsculas.
func (uc *HistoryUseCase) ByReason(ctx context.Context, reason string) ([]*entity.Movement, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, fmt.Errorf("%w: motivo no puede ser vacío", domain.ErrInvalidInput)
	}
	list, err := uc.movements.FindByReason(ctx, reason)
	if err != nil {
		return nil, fmt.Errorf("movimientos por motivo: %w", err)
	}
	return list, nil
}

// ByType acepta IN/OUT (y ENTRADA/SAIDA).
func (uc *HistoryUseCase) ByType(ctx context.Context, movementType string) ([]*entity.Movement, error) {
	t, err := entity.ParseMovementType(movementType)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, err.Error())
	}
	list, err := uc.movements.FindByType(ctx, t)
	if err != nil {
		return nil, fmt.Errorf("movimientos por tipo: %w", err)
	}
	return list, nil
}

// Latest el movimiento más reciente o domain.ErrEmptyHistory.
func (uc *HistoryUseCase) Latest(ctx context.Context) (*entity.Movement, error) {
	m, err := uc.movements.Latest(ctx)
	if err != nil {
		return nil, fmt.Errorf("último movimiento: %w", err)
	}
	if m == nil {
		return nil, domain.ErrEmptyHistory
	}
	return m, nil
}
