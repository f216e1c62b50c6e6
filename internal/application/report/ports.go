package report

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Estoque-api/internal/domain/entity"
)

// StockReportData datos ya calculados que el generador solo dibuja.
type StockReportData struct {
	GeneratedAt     time.Time
	Products        []*entity.Product
	TotalQuantity   int
	TotalValue      decimal.Decimal // Σ cantidad × costo
	RecentMovements []*entity.Movement
}

// PDFGenerator puerto de salida para los documentos PDF.
type PDFGenerator interface {
	StockReport(ctx context.Context, data StockReportData) ([]byte, error)
	// ProductLabel etiqueta con nombre, precio de venta y código de barras Code-128.
	ProductLabel(ctx context.Context, product *entity.Product) ([]byte, error)
}
