package entity

import (
	"fmt"
	"strings"
	"time"
)

// MovementType tipo de movimiento de stock.
type MovementType string

// Tipos de movimiento.
const (
	MovementTypeIN  MovementType = "IN"  // entrada
	MovementTypeOUT MovementType = "OUT" // salida
)

// ParseMovementType acepta IN/OUT y los nombres heredados ENTRADA/SAIDA, sin distinguir mayúsculas.
func ParseMovementType(s string) (MovementType, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "IN", "ENTRADA":
		return MovementTypeIN, nil
	case "OUT", "SAIDA", "SALIDA":
		return MovementTypeOUT, nil
	}
	return "", fmt.Errorf("tipo de movimiento desconocido: %q", s)
}

// Valid indica si t es IN u OUT.
func (t MovementType) Valid() bool {
	return t == MovementTypeIN || t == MovementTypeOUT
}

// Movement registro inmutable de un cambio de stock.
// ProductBarcode es una referencia débil: el movimiento sobrevive al borrado del producto.
type Movement struct {
	ID             string
	ProductBarcode string
	Quantity       int // magnitud del cambio, siempre > 0
	Type           MovementType
	Reason         string
	Timestamp      time.Time
}
