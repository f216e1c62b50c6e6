package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Estoque-api/internal/domain/entity"
	"github.com/jhoicas/Estoque-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo libro de movimientos: una lista Redis de registros JSON en orden de inserción.
// Las consultas leen la lista y filtran en el proceso.
type MovementRepo struct {
	s   *Store
	rdb commander
	tx  *txState
}

// Append agrega el movimiento (al buffer si hay unidad de trabajo).
func (r *MovementRepo) Append(ctx context.Context, movement *entity.Movement) error {
	if r.tx != nil {
		m := *movement
		r.tx.movements = append(r.tx.movements, &m)
		return nil
	}
	data, err := encodeMovement(movement)
	if err != nil {
		return err
	}
	if err := r.rdb.RPush(ctx, r.s.keys.movements(), data).Err(); err != nil {
		return fmt.Errorf("append movement: %w", err)
	}
	return nil
}

func (r *MovementRepo) ListAll(ctx context.Context) ([]*entity.Movement, error) {
	return r.filter(ctx, func(*entity.Movement) bool { return true })
}

func (r *MovementRepo) FindByProduct(ctx context.Context, barcode string) ([]*entity.Movement, error) {
	return r.filter(ctx, func(m *entity.Movement) bool { return m.ProductBarcode == barcode })
}

// FindByPeriod incluye ambos extremos.
func (r *MovementRepo) FindByPeriod(ctx context.Context, start, end time.Time) ([]*entity.Movement, error) {
	return r.filter(ctx, func(m *entity.Movement) bool {
		return !m.Timestamp.Before(start) && !m.Timestamp.After(end)
	})
}

func (r *MovementRepo) FindByReason(ctx context.Context, reason string) ([]*entity.Movement, error) {
	key := repository.ReasonKey(reason)
	return r.filter(ctx, func(m *entity.Movement) bool { return repository.ReasonKey(m.Reason) == key })
}

func (r *MovementRepo) FindByType(ctx context.Context, movementType entity.MovementType) ([]*entity.Movement, error) {
	return r.filter(ctx, func(m *entity.Movement) bool { return m.Type == movementType })
}

func (r *MovementRepo) Latest(ctx context.Context) (*entity.Movement, error) {
	list, err := r.ListAll(ctx)
	if err != nil || len(list) == 0 {
		return nil, err
	}
	return list[0], nil
}

func (r *MovementRepo) filter(ctx context.Context, keep func(*entity.Movement) bool) ([]*entity.Movement, error) {
	raw, err := r.rdb.LRange(ctx, r.s.keys.movements(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	list := make([]*entity.Movement, 0)
	for _, s := range raw {
		m, err := decodeMovement([]byte(s))
		if err != nil {
			return nil, err
		}
		if keep(m) {
			list = append(list, m)
		}
	}
	if r.tx != nil {
		for _, m := range r.tx.movements {
			c := *m
			if keep(&c) {
				list = append(list, &c)
			}
		}
	}
	sortNewestFirst(list)
	return list, nil
}
