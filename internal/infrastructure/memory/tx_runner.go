package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Estoque-api/internal/domain"
	"github.com/jhoicas/Estoque-api/internal/domain/entity"
	"github.com/jhoicas/Estoque-api/internal/domain/repository"
)

var (
	_ repository.ProductRepository  = (*txProductRepo)(nil)
	_ repository.MovementRepository = (*txMovementRepo)(nil)
)

// TxRunner serializa las unidades de trabajo por código de barras. Las escrituras de fn
// quedan en un buffer y se publican juntas al terminar sin error; si fn falla el buffer
// se descarta y el Store queda intacto.
type TxRunner struct {
	s *Store
}

// Run ejecuta fn con repositorios atados a la unidad de trabajo de barcode.
func (t *TxRunner) Run(ctx context.Context, barcode string, fn func(
	productRepo repository.ProductRepository,
	movRepo repository.MovementRepository,
) error) error {
	if err := checkCtx(ctx); err != nil {
		return err
	}
	unlock := t.s.locks.Lock(barcode)
	defer unlock()

	tx := &memTx{s: t.s, products: make(map[string]*pendingProduct)}
	if err := fn(&txProductRepo{tx: tx}, &txMovementRepo{tx: tx}); err != nil {
		return err
	}
	if err := checkCtx(ctx); err != nil {
		return err
	}
	return tx.commit()
}

type pendingProduct struct {
	product *entity.Product // nil = borrado
	created bool
}

type memTx struct {
	s         *Store
	products  map[string]*pendingProduct
	order     []string
	movements []entity.Movement
}

// lookup lee primero el buffer y después el Store.
func (tx *memTx) lookup(barcode string) (*entity.Product, bool) {
	if p, ok := tx.products[barcode]; ok {
		if p.product == nil {
			return nil, false
		}
		c := *p.product
		return &c, true
	}
	tx.s.mu.RLock()
	defer tx.s.mu.RUnlock()
	p, ok := tx.s.products[barcode]
	if !ok {
		return nil, false
	}
	return &p, true
}

func (tx *memTx) stage(barcode string, p *pendingProduct) {
	if _, ok := tx.products[barcode]; !ok {
		tx.order = append(tx.order, barcode)
	}
	tx.products[barcode] = p
}

func (tx *memTx) commit() error {
	tx.s.mu.Lock()
	defer tx.s.mu.Unlock()

	// Revalida altas concurrentes hechas fuera de un TxRunner
	for _, barcode := range tx.order {
		p := tx.products[barcode]
		if p.created && p.product != nil {
			if _, ok := tx.s.products[barcode]; ok {
				return fmt.Errorf("%w: código %s", domain.ErrAlreadyExists, barcode)
			}
		}
	}
	for _, barcode := range tx.order {
		p := tx.products[barcode]
		if p.product == nil {
			delete(tx.s.products, barcode)
			continue
		}
		tx.s.products[barcode] = *p.product
	}
	tx.s.movements = append(tx.s.movements, tx.movements...)
	return nil
}

type txProductRepo struct {
	tx *memTx
}

func (r *txProductRepo) Save(ctx context.Context, product *entity.Product) error {
	if err := checkCtx(ctx); err != nil {
		return err
	}
	if _, ok := r.tx.lookup(product.Barcode); ok {
		return fmt.Errorf("%w: código %s", domain.ErrAlreadyExists, product.Barcode)
	}
	c := *product
	r.tx.stage(product.Barcode, &pendingProduct{product: &c, created: true})
	return nil
}

func (r *txProductRepo) FindByBarcode(ctx context.Context, barcode string) (*entity.Product, error) {
	if err := checkCtx(ctx); err != nil {
		return nil, err
	}
	p, _ := r.tx.lookup(barcode)
	return p, nil
}

// GetForUpdate: el bloqueo ya lo tiene Run sobre el código de barras.
func (r *txProductRepo) GetForUpdate(ctx context.Context, barcode string) (*entity.Product, error) {
	return r.FindByBarcode(ctx, barcode)
}

func (r *txProductRepo) Exists(ctx context.Context, barcode string) (bool, error) {
	p, err := r.FindByBarcode(ctx, barcode)
	return p != nil, err
}

func (r *txProductRepo) Update(ctx context.Context, product *entity.Product) error {
	if err := checkCtx(ctx); err != nil {
		return err
	}
	if _, ok := r.tx.lookup(product.Barcode); !ok {
		return fmt.Errorf("%w: código %s", domain.ErrNotFound, product.Barcode)
	}
	created := false
	if prev, ok := r.tx.products[product.Barcode]; ok {
		created = prev.created
	}
	c := *product
	r.tx.stage(product.Barcode, &pendingProduct{product: &c, created: created})
	return nil
}

func (r *txProductRepo) Delete(ctx context.Context, barcode string) error {
	if err := checkCtx(ctx); err != nil {
		return err
	}
	if _, ok := r.tx.lookup(barcode); !ok {
		return fmt.Errorf("%w: código %s", domain.ErrNotFound, barcode)
	}
	r.tx.stage(barcode, &pendingProduct{})
	return nil
}

func (r *txProductRepo) ListAll(ctx context.Context) ([]*entity.Product, error) {
	list, err := r.tx.s.Products().ListAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*entity.Product, 0, len(list))
	seen := make(map[string]bool, len(list))
	for _, p := range list {
		seen[p.Barcode] = true
		if cur, ok := r.tx.lookup(p.Barcode); ok {
			out = append(out, cur)
		}
	}
	for _, barcode := range r.tx.order {
		if seen[barcode] {
			continue
		}
		if cur, ok := r.tx.lookup(barcode); ok {
			out = append(out, cur)
		}
	}
	return out, nil
}

// txMovementRepo agrega al buffer; las lecturas ven el Store más lo pendiente.
type txMovementRepo struct {
	tx *memTx
}

func (r *txMovementRepo) Append(ctx context.Context, movement *entity.Movement) error {
	if err := checkCtx(ctx); err != nil {
		return err
	}
	r.tx.movements = append(r.tx.movements, *movement)
	return nil
}

func (r *txMovementRepo) ListAll(ctx context.Context) ([]*entity.Movement, error) {
	return r.filter(ctx, func(*entity.Movement) bool { return true })
}

func (r *txMovementRepo) FindByProduct(ctx context.Context, barcode string) ([]*entity.Movement, error) {
	return r.filter(ctx, func(m *entity.Movement) bool { return m.ProductBarcode == barcode })
}

func (r *txMovementRepo) FindByPeriod(ctx context.Context, start, end time.Time) ([]*entity.Movement, error) {
	return r.filter(ctx, func(m *entity.Movement) bool {
		return !m.Timestamp.Before(start) && !m.Timestamp.After(end)
	})
}

func (r *txMovementRepo) FindByReason(ctx context.Context, reason string) ([]*entity.Movement, error) {
	key := repository.ReasonKey(reason)
	return r.filter(ctx, func(m *entity.Movement) bool { return repository.ReasonKey(m.Reason) == key })
}

func (r *txMovementRepo) FindByType(ctx context.Context, movementType entity.MovementType) ([]*entity.Movement, error) {
	return r.filter(ctx, func(m *entity.Movement) bool { return m.Type == movementType })
}

func (r *txMovementRepo) Latest(ctx context.Context) (*entity.Movement, error) {
	list, err := r.ListAll(ctx)
	if err != nil || len(list) == 0 {
		return nil, err
	}
	return list[0], nil
}

func (r *txMovementRepo) filter(ctx context.Context, keep func(*entity.Movement) bool) ([]*entity.Movement, error) {
	if err := checkCtx(ctx); err != nil {
		return nil, err
	}
	r.tx.s.mu.RLock()
	all := make([]entity.Movement, 0, len(r.tx.s.movements)+len(r.tx.movements))
	all = append(all, r.tx.s.movements...)
	r.tx.s.mu.RUnlock()
	all = append(all, r.tx.movements...)

	list := make([]*entity.Movement, 0)
	for i := range all {
		m := all[i]
		if keep(&m) {
			list = append(list, &m)
		}
	}
	sortNewestFirst(list)
	return list, nil
}
