package dto

import "github.com/jhoicas/Estoque-api/internal/domain/entity"

// FromProduct convierte la entidad en respuesta.
func FromProduct(p *entity.Product) *ProductResponse {
	if p == nil {
		return nil
	}
	return &ProductResponse{
		Barcode:   p.Barcode,
		Name:      p.Name,
		Category:  p.Category,
		Quantity:  p.Quantity,
		CostPrice: p.CostPrice,
		SalePrice: p.SalePrice,
		Supplier:  p.Supplier,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

// FromMovement convierte un movimiento en respuesta.
func FromMovement(m *entity.Movement) MovementResponse {
	return MovementResponse{
		ID:        m.ID,
		Barcode:   m.ProductBarcode,
		Quantity:  m.Quantity,
		Type:      string(m.Type),
		Reason:    m.Reason,
		Timestamp: m.Timestamp,
	}
}

// FromMovements convierte una lista; nunca devuelve nil.
func FromMovements(list []*entity.Movement) []MovementResponse {
	out := make([]MovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, FromMovement(m))
	}
	return out
}
