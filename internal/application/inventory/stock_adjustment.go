package inventory

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Estoque-api/internal/domain"
	"github.com/jhoicas/Estoque-api/internal/domain/entity"
	"github.com/jhoicas/Estoque-api/internal/domain/repository"
	"github.com/jhoicas/Estoque-api/internal/domain/validation"
	"github.com/jhoicas/Estoque-api/pkg/logger"
)

// StockAdjustmentUseCase registra entradas y salidas de stock.
// Cada ajuste bloquea el producto (GetForUpdate), actualiza la cantidad y agrega el
// movimiento dentro del mismo TxRunner: si el movimiento no se puede guardar la cantidad
// vuelve a su valor anterior (Rollback).
type StockAdjustmentUseCase struct {
	txRunner TxRunner
	log      *logger.Logger
	now      func() time.Time
}

// NewStockAdjustmentUseCase construye el caso de uso.
func NewStockAdjustmentUseCase(txRunner TxRunner, log *logger.Logger) *StockAdjustmentUseCase {
	return &StockAdjustmentUseCase{
		txRunner: txRunner,
		log:      log,
		now:      time.Now,
	}
}

// WithClock reemplaza el reloj usado para el timestamp de los movimientos.
func (uc *StockAdjustmentUseCase) WithClock(now func() time.Time) *StockAdjustmentUseCase {
	uc.now = now
	return uc
}

// AdjustmentResult resultado de un ajuste: el movimiento registrado y la cantidad resultante.
type AdjustmentResult struct {
	Movement *entity.Movement
	Quantity int
}

// AddStock suma amount a la cantidad del producto y registra un movimiento IN.
func (uc *StockAdjustmentUseCase) AddStock(ctx context.Context, barcode string, amount int, reason string) (*AdjustmentResult, error) {
	return uc.adjust(ctx, barcode, amount, reason, entity.MovementTypeIN)
}

// RemoveStock resta amount de la cantidad del producto y registra un movimiento OUT.
// Si la cantidad disponible es menor devuelve domain.ErrInsufficientStock sin modificar nada.
func (uc *StockAdjustmentUseCase) RemoveStock(ctx context.Context, barcode string, amount int, reason string) (*AdjustmentResult, error) {
	return uc.adjust(ctx, barcode, amount, reason, entity.MovementTypeOUT)
}

func (uc *StockAdjustmentUseCase) adjust(
	ctx context.Context,
	barcode string, amount int, reason string,
	movementType entity.MovementType,
) (*AdjustmentResult, error) {
	if err := validation.ValidateBarcode(barcode); err != nil {
		return nil, err
	}
	if err := validation.ValidateAdjustment(amount, reason); err != nil {
		return nil, err
	}

	now := uc.now().UTC().Truncate(time.Microsecond)
	var result *AdjustmentResult

	err := uc.txRunner.Run(ctx, barcode, func(
		productRepo repository.ProductRepository,
		movRepo repository.MovementRepository,
	) error {
		// Bloquea el producto hasta el fin de la unidad de trabajo
		product, err := productRepo.GetForUpdate(ctx, barcode)
		if err != nil {
			return fmt.Errorf("obtener producto: %w", err)
		}
		if product == nil {
			return fmt.Errorf("%w: código %s", domain.ErrNotFound, barcode)
		}

		switch movementType {
		case entity.MovementTypeIN:
			if product.Quantity > math.MaxInt-amount {
				return fmt.Errorf("%w: la cantidad resultante excede el máximo permitido", domain.ErrValidation)
			}
			product.Quantity += amount
		case entity.MovementTypeOUT:
			if product.Quantity < amount {
				return fmt.Errorf("%w: disponible %d, solicitado %d", domain.ErrInsufficientStock, product.Quantity, amount)
			}
			product.Quantity -= amount
		}
		product.UpdatedAt = now

		if err := productRepo.Update(ctx, product); err != nil {
			return fmt.Errorf("actualizar cantidad: %w", err)
		}

		mov := &entity.Movement{
			ID:             uuid.New().String(),
			ProductBarcode: barcode,
			Quantity:       amount,
			Type:           movementType,
			Reason:         reason,
			Timestamp:      now,
		}
		if err := movRepo.Append(ctx, mov); err != nil {
			return fmt.Errorf("registrar movimiento: %w", err)
		}

		result = &AdjustmentResult{Movement: mov, Quantity: product.Quantity}
		return nil
	})
	if err != nil {
		if !domain.IsDomainError(err) {
			uc.log.Error().Err(err).
				Str("barcode", barcode).
				Str("type", string(movementType)).
				Int("amount", amount).
				Msg("ajuste de stock revertido")
		}
		return nil, err
	}

	uc.log.Debug().
		Str("barcode", barcode).
		Str("type", string(movementType)).
		Int("amount", amount).
		Int("quantity", result.Quantity).
		Msg("ajuste de stock registrado")
	return result, nil
}
