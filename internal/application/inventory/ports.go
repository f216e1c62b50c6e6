package inventory

import (
	"context"

	"github.com/jhoicas/Estoque-api/internal/domain/repository"
)

// TxRunner ejecuta una función como unidad de trabajo serializada por código de barras,
// pasando repositorios atados a esa unidad. Si fn devuelve error no queda ningún efecto:
// ni la cantidad actualizada ni el movimiento.
type TxRunner interface {
	Run(ctx context.Context, barcode string, fn func(
		productRepo repository.ProductRepository,
		movRepo repository.MovementRepository,
	) error) error
}
