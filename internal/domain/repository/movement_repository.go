package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Estoque-api/internal/domain/entity"
)

// MovementRepository define el puerto del libro de movimientos (solo inserción).
// No existen operaciones de actualización ni borrado.
type MovementRepository interface {
	Append(ctx context.Context, movement *entity.Movement) error
	ListAll(ctx context.Context) ([]*entity.Movement, error)
	FindByProduct(ctx context.Context, barcode string) ([]*entity.Movement, error)
	// FindByPeriod incluye ambos extremos: start <= Timestamp <= end.
	FindByPeriod(ctx context.Context, start, end time.Time) ([]*entity.Movement, error)
	// FindByReason compara sin distinguir mayúsculas (ver ReasonKey).
	FindByReason(ctx context.Context, reason string) ([]*entity.Movement, error)
	FindByType(ctx context.Context, movementType entity.MovementType) ([]*entity.Movement, error)
	// Latest devuelve el movimiento más reciente o (nil, nil) si el libro está vacío.
	Latest(ctx context.Context) (*entity.Movement, error)
}
