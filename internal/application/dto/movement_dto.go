package dto

import "time"

// StockAdjustmentRequest cuerpo de adicionarEstoque / removerEstoque.
type StockAdjustmentRequest struct {
	Quantity int    `json:"quantidade"`
	Reason   string `json:"motivo"`
}

// StockAdjustmentResponse cantidad resultante y movimiento registrado.
type StockAdjustmentResponse struct {
	Barcode  string           `json:"codigoBarras"`
	Quantity int              `json:"quantidade"`
	Movement MovementResponse `json:"movimentacao"`
}

// MovementResponse salida de un movimiento del libro.
type MovementResponse struct {
	ID        string    `json:"id"`
	Barcode   string    `json:"codigoBarras"`
	Quantity  int       `json:"quantidade"`
	Type      string    `json:"tipo"`
	Reason    string    `json:"motivo"`
	Timestamp time.Time `json:"dataHora"`
}
