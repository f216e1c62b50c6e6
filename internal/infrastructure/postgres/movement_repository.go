package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Estoque-api/internal/domain/entity"
	"github.com/jhoicas/Estoque-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

const (
	movementColumns = `id::text, product_barcode, quantity, type, reason, occurred_at`
	movementOrder   = ` ORDER BY occurred_at DESC, seq DESC`
)

// MovementRepo libro de movimientos sobre PostgreSQL (usable con pool o tx).
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Append inserta un movimiento. reason_key guarda el motivo normalizado para FindByReason.
func (r *MovementRepo) Append(ctx context.Context, movement *entity.Movement) error {
	query := `
		INSERT INTO stock_movements (id, product_barcode, quantity, type, reason, reason_key, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		movement.ID, movement.ProductBarcode, movement.Quantity, string(movement.Type),
		movement.Reason, repository.ReasonKey(movement.Reason), movement.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("append movement: %w", err)
	}
	return nil
}

// ListAll todos los movimientos, el más reciente primero.
func (r *MovementRepo) ListAll(ctx context.Context) ([]*entity.Movement, error) {
	return r.list(ctx, `SELECT `+movementColumns+` FROM stock_movements`+movementOrder)
}

// FindByProduct movimientos de un código de barras.
func (r *MovementRepo) FindByProduct(ctx context.Context, barcode string) ([]*entity.Movement, error) {
	return r.list(ctx, `SELECT `+movementColumns+` FROM stock_movements WHERE product_barcode = $1`+movementOrder, barcode)
}

// FindByPeriod movimientos entre start y end, ambos incluidos.
func (r *MovementRepo) FindByPeriod(ctx context.Context, start, end time.Time) ([]*entity.Movement, error) {
	return r.list(ctx, `SELECT `+movementColumns+` FROM stock_movements
		WHERE occurred_at >= $1 AND occurred_at <= $2`+movementOrder, start, end)
}

// FindByReason compara por reason_key.
func (r *MovementRepo) FindByReason(ctx context.Context, reason string) ([]*entity.Movement, error) {
	return r.list(ctx, `SELECT `+movementColumns+` FROM stock_movements WHERE reason_key = $1`+movementOrder,
		repository.ReasonKey(reason))
}

// FindByType movimientos IN u OUT.
func (r *MovementRepo) FindByType(ctx context.Context, movementType entity.MovementType) ([]*entity.Movement, error) {
	return r.list(ctx, `SELECT `+movementColumns+` FROM stock_movements WHERE type = $1`+movementOrder, string(movementType))
}

// Latest el movimiento más reciente o nil.
func (r *MovementRepo) Latest(ctx context.Context) (*entity.Movement, error) {
	m, err := scanMovement(r.q.QueryRow(ctx, `SELECT `+movementColumns+` FROM stock_movements`+movementOrder+` LIMIT 1`))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("latest movement: %w", err)
	}
	return m, nil
}

func (r *MovementRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Movement, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Movement, 0)
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

func scanMovement(row pgx.Row) (*entity.Movement, error) {
	var m entity.Movement
	var movementType string
	if err := row.Scan(&m.ID, &m.ProductBarcode, &m.Quantity, &movementType, &m.Reason, &m.Timestamp); err != nil {
		return nil, err
	}
	m.Type = entity.MovementType(movementType)
	m.Timestamp = m.Timestamp.UTC()
	return &m, nil
}
