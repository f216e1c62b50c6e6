// Package memory implementa Product Store, libro de movimientos y TxRunner en memoria.
// Es el backend por defecto en desarrollo y el doble de pruebas de los casos de uso.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/jhoicas/Estoque-api/internal/domain/entity"
)

// Store guarda productos y movimientos bajo un único RWMutex: una unidad de trabajo
// publica la cantidad nueva y su movimiento en el mismo Lock, así ningún lector
// observa uno sin el otro.
type Store struct {
	mu        sync.RWMutex
	products  map[string]entity.Product
	movements []entity.Movement
	locks     *keyedMutex
}

// NewStore crea un almacenamiento vacío.
func NewStore() *Store {
	return &Store{
		products: make(map[string]entity.Product),
		locks:    newKeyedMutex(),
	}
}

// Products devuelve el repositorio de productos (fuera de transacción).
func (s *Store) Products() *ProductRepo {
	return &ProductRepo{s: s}
}

// Movements devuelve el libro de movimientos (fuera de transacción).
func (s *Store) Movements() *MovementRepo {
	return &MovementRepo{s: s}
}

// TxRunner devuelve el ejecutor de unidades de trabajo por código de barras.
func (s *Store) TxRunner() *TxRunner {
	return &TxRunner{s: s}
}

func checkCtx(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil
	}
}

// sortNewestFirst ordena por Timestamp descendente; en empate gana el insertado después.
func sortNewestFirst(list []*entity.Movement) {
	for i, j := 0, len(list)-1; i < j; i, j = i+1, j-1 {
		list[i], list[j] = list[j], list[i]
	}
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].Timestamp.After(list[j].Timestamp)
	})
}
