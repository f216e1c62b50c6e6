// Package report genera los documentos PDF de stock.
package report

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Estoque-api/internal/domain"
	"github.com/jhoicas/Estoque-api/internal/domain/repository"
	"github.com/jhoicas/Estoque-api/internal/domain/validation"
)

// recentMovements cantidad de movimientos incluidos al pie del reporte.
const recentMovements = 20

// ReportUseCase arma los datos de cada documento y delega el dibujo en el PDFGenerator.
type ReportUseCase struct {
	products  repository.ProductRepository
	movements repository.MovementRepository
	generator PDFGenerator
	now       func() time.Time
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(
	products repository.ProductRepository,
	movements repository.MovementRepository,
	generator PDFGenerator,
) *ReportUseCase {
	return &ReportUseCase{products: products, movements: movements, generator: generator, now: time.Now}
}

// StockReport devuelve el PDF con el inventario completo y su nombre de archivo.
func (uc *ReportUseCase) StockReport(ctx context.Context) (pdfBytes []byte, filename string, err error) {
	products, err := uc.products.ListAll(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("reporte: listar productos: %w", err)
	}
	movements, err := uc.movements.ListAll(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("reporte: listar movimientos: %w", err)
	}
	if len(movements) > recentMovements {
		movements = movements[:recentMovements]
	}

	data := StockReportData{
		GeneratedAt:     uc.now().UTC(),
		Products:        products,
		TotalValue:      decimal.Zero,
		RecentMovements: movements,
	}
	for _, p := range products {
		data.TotalQuantity += p.Quantity
		data.TotalValue = data.TotalValue.Add(p.StockValue())
	}

	pdfBytes, err = uc.generator.StockReport(ctx, data)
	if err != nil {
		return nil, "", fmt.Errorf("reporte: generar PDF: %w", err)
	}
	return pdfBytes, fmt.Sprintf("estoque_%s.pdf", data.GeneratedAt.Format("20060102_150405")), nil
}

// ProductLabel devuelve la etiqueta PDF de un producto.
func (uc *ReportUseCase) ProductLabel(ctx context.Context, barcode string) (pdfBytes []byte, filename string, err error) {
	if err := validation.ValidateBarcode(barcode); err != nil {
		return nil, "", err
	}
	product, err := uc.products.FindByBarcode(ctx, barcode)
	if err != nil {
		return nil, "", fmt.Errorf("etiqueta: obtener producto: %w", err)
	}
	if product == nil {
		return nil, "", fmt.Errorf("%w: código %s", domain.ErrNotFound, barcode)
	}
	pdfBytes, err = uc.generator.ProductLabel(ctx, product)
	if err != nil {
		return nil, "", fmt.Errorf("etiqueta: generar PDF: %w", err)
	}
	return pdfBytes, fmt.Sprintf("etiqueta_%s.pdf", barcode), nil
}
