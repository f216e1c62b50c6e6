package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// Los casos de uso los envuelven con contexto: fmt.Errorf("%w: ...", ErrX).
var (
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrValidation        = errors.New("validación fallida")
	ErrNotFound          = errors.New("producto no encontrado")
	ErrAlreadyExists     = errors.New("producto ya registrado")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrEmptyHistory      = errors.New("ningún movimiento registrado")
)

var domainErrors = []error{
	ErrInvalidInput,
	ErrValidation,
	ErrNotFound,
	ErrAlreadyExists,
	ErrInsufficientStock,
	ErrEmptyHistory,
}

// IsDomainError indica si err pertenece a la taxonomía de dominio.
// Cualquier otro error es de infraestructura y se expone como error interno.
func IsDomainError(err error) bool {
	for _, target := range domainErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
