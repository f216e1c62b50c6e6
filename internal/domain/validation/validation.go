// Package validation contiene las reglas puras de dominio que se verifican antes de cualquier escritura.
// Ninguna función modifica su entrada.
package validation

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/Estoque-api/internal/domain"
	"github.com/jhoicas/Estoque-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// ValidateProduct verifica los invariantes de campos de un producto (alta o edición).
// Devuelve un error que envuelve domain.ErrValidation con todas las violaciones encontradas.
func ValidateProduct(p *entity.Product) error {
	if p == nil {
		return fmt.Errorf("%w: producto nulo", domain.ErrValidation)
	}
	var errs []error
	if isBlank(p.Barcode) {
		errs = append(errs, errors.New("código de barras no puede ser vacío"))
	}
	if isBlank(p.Name) {
		errs = append(errs, errors.New("nombre no puede ser vacío"))
	}
	if isBlank(p.Category) {
		errs = append(errs, errors.New("categoría no puede ser vacía"))
	}
	if isBlank(p.Supplier) {
		errs = append(errs, errors.New("proveedor no puede ser vacío"))
	}
	if p.Quantity < 0 {
		errs = append(errs, errors.New("cantidad no puede ser negativa"))
	}
	if p.CostPrice.LessThan(decimal.Zero) {
		errs = append(errs, errors.New("precio de costo no puede ser negativo"))
	}
	if p.SalePrice.LessThan(decimal.Zero) {
		errs = append(errs, errors.New("precio de venta no puede ser negativo"))
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %s", domain.ErrValidation, joinMessages(errs))
}

// ValidateAdjustment verifica los parámetros de una entrada o salida de stock.
func ValidateAdjustment(amount int, reason string) error {
	if amount <= 0 {
		return fmt.Errorf("%w: cantidad debe ser mayor que 0", domain.ErrValidation)
	}
	if isBlank(reason) {
		return fmt.Errorf("%w: motivo no puede ser vacío", domain.ErrValidation)
	}
	return nil
}

// ValidateBarcode verifica que el código de barras recibido del caller no esté vacío.
func ValidateBarcode(barcode string) error {
	if isBlank(barcode) {
		return fmt.Errorf("%w: código de barras no puede ser vacío", domain.ErrInvalidInput)
	}
	return nil
}

// ValidatePeriod exige ambos extremos y start <= end.
func ValidatePeriod(start, end time.Time) error {
	if start.IsZero() || end.IsZero() {
		return fmt.Errorf("%w: fecha de inicio y fin son obligatorias", domain.ErrInvalidInput)
	}
	if start.After(end) {
		return fmt.Errorf("%w: fecha de inicio posterior a la fecha de fin", domain.ErrInvalidInput)
	}
	return nil
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func joinMessages(errs []error) string {
	msgs := make([]string, 0, len(errs))
	for _, e := range errs {
		msgs = append(msgs, e.Error())
	}
	return strings.Join(msgs, "; ")
}
