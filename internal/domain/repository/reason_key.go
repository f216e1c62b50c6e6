package repository

import (
	"strings"

	"golang.org/x/text/cases"
)

// ReasonKey normaliza un motivo para búsquedas sin distinguir mayúsculas.
// Todas las implementaciones de MovementRepository comparan motivos por esta clave.
func ReasonKey(reason string) string {
	return cases.Fold().String(strings.TrimSpace(reason))
}
