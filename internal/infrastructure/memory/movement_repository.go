package memory

import (
	"context"
	"time"

	"github.com/jhoicas/Estoque-api/internal/domain/entity"
	"github.com/jhoicas/Estoque-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación en memoria del libro de movimientos (solo inserción).
type MovementRepo struct {
	s *Store
}

// Append agrega un movimiento al libro.
func (r *MovementRepo) Append(ctx context.Context, movement *entity.Movement) error {
	if err := checkCtx(ctx); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.movements = append(r.s.movements, *movement)
	return nil
}

// ListAll devuelve todos los movimientos, el más reciente primero.
func (r *MovementRepo) ListAll(ctx context.Context) ([]*entity.Movement, error) {
	return r.filter(ctx, func(*entity.Movement) bool { return true })
}

// FindByProduct movimientos de un código de barras.
func (r *MovementRepo) FindByProduct(ctx context.Context, barcode string) ([]*entity.Movement, error) {
	return r.filter(ctx, func(m *entity.Movement) bool { return m.ProductBarcode == barcode })
}

// FindByPeriod movimientos con start <= Timestamp <= end.
func (r *MovementRepo) FindByPeriod(ctx context.Context, start, end time.Time) ([]*entity.Movement, error) {
	return r.filter(ctx, func(m *entity.Movement) bool {
		return !m.Timestamp.Before(start) && !m.Timestamp.After(end)
	})
}

// FindByReason movimientos cuyo motivo coincide sin distinguir mayúsculas.
func (r *MovementRepo) FindByReason(ctx context.Context, reason string) ([]*entity.Movement, error) {
	key := repository.ReasonKey(reason)
	return r.filter(ctx, func(m *entity.Movement) bool { return repository.ReasonKey(m.Reason) == key })
}

// FindByType movimientos IN u OUT.
func (r *MovementRepo) FindByType(ctx context.Context, movementType entity.MovementType) ([]*entity.Movement, error) {
	return r.filter(ctx, func(m *entity.Movement) bool { return m.Type == movementType })
}

// Latest devuelve el movimiento más reciente o nil.
func (r *MovementRepo) Latest(ctx context.Context) (*entity.Movement, error) {
	list, err := r.ListAll(ctx)
	if err != nil || len(list) == 0 {
		return nil, err
	}
	return list[0], nil
}

func (r *MovementRepo) filter(ctx context.Context, keep func(*entity.Movement) bool) ([]*entity.Movement, error) {
	if err := checkCtx(ctx); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	list := make([]*entity.Movement, 0)
	for i := range r.s.movements {
		m := r.s.movements[i]
		if keep(&m) {
			list = append(list, &m)
		}
	}
	r.s.mu.RUnlock()
	sortNewestFirst(list)
	return list, nil
}
