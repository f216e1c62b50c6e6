package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/Estoque-api/internal/application/inventory"
	"github.com/jhoicas/Estoque-api/internal/domain/entity"
	"github.com/jhoicas/Estoque-api/internal/domain/repository"
)

var _ inventory.TxRunner = (*TxRunner)(nil)

// maxTxAttempts reintentos ante conflicto optimista (otra escritura tocó la clave vigilada).
const maxTxAttempts = 5

// ErrTxConflict se devuelve cuando los reintentos se agotan.
var ErrTxConflict = errors.New("redis: conflicto de concurrencia persistente")

// TxRunner ejecuta fn con WATCH sobre la clave del producto y publica en MULTI/EXEC.
// fn puede ejecutarse más de una vez; no debe tener efectos fuera de los repositorios.
type TxRunner struct {
	s *Store
}

// Run ejecuta la unidad de trabajo de barcode.
func (t *TxRunner) Run(ctx context.Context, barcode string, fn func(
	productRepo repository.ProductRepository,
	movRepo repository.MovementRepository,
) error) error {
	key := t.s.keys.product(barcode)
	for attempt := 0; attempt < maxTxAttempts; attempt++ {
		err := t.s.client.Watch(ctx, func(tx *redis.Tx) error {
			state := newTxState(tx, key)
			if err := fn(
				&ProductRepo{s: t.s, rdb: tx, tx: state},
				&MovementRepo{s: t.s, rdb: tx, tx: state},
			); err != nil {
				return err
			}
			_, err := tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
				return state.flush(ctx, pipe, t.s.keys)
			})
			return err
		}, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return err
	}
	return fmt.Errorf("%w: código %s", ErrTxConflict, barcode)
}

// txState buffer de escrituras de una unidad de trabajo.
type txState struct {
	tx        *redis.Tx
	watched   map[string]bool
	products  map[string]*entity.Product // nil = borrado
	order     []string
	movements []*entity.Movement
}

func newTxState(tx *redis.Tx, key string) *txState {
	return &txState{
		tx:       tx,
		watched:  map[string]bool{key: true},
		products: make(map[string]*entity.Product),
	}
}

// watch agrega una clave más al WATCH si fn lee otro producto.
func (s *txState) watch(ctx context.Context, key string) error {
	if s.watched[key] {
		return nil
	}
	if err := s.tx.Watch(ctx, key).Err(); err != nil {
		return fmt.Errorf("watch %s: %w", key, err)
	}
	s.watched[key] = true
	return nil
}

func (s *txState) stage(barcode string, p *entity.Product) {
	if _, ok := s.products[barcode]; !ok {
		s.order = append(s.order, barcode)
	}
	s.products[barcode] = p
}

func (s *txState) flush(ctx context.Context, pipe redis.Pipeliner, k keys) error {
	for _, barcode := range s.order {
		p := s.products[barcode]
		if p == nil {
			pipe.Del(ctx, k.product(barcode))
			pipe.SRem(ctx, k.productSet(), barcode)
			continue
		}
		data, err := encodeProduct(p)
		if err != nil {
			return err
		}
		pipe.Set(ctx, k.product(barcode), data, 0)
		pipe.SAdd(ctx, k.productSet(), barcode)
	}
	for _, m := range s.movements {
		data, err := encodeMovement(m)
		if err != nil {
			return err
		}
		pipe.RPush(ctx, k.movements(), data)
	}
	return nil
}
