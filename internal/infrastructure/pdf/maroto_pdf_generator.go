// Package pdf implementa los documentos de stock con Maroto v2.
//
// Reporte de stock (A4):
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: título + fecha de generación                       │
//	│  TABLA: Código | Nombre | Categoría | Cant. | Costo | Venta | Valor │
//	│  TOTALES: unidades / valor a costo                          │
//	│  ÚLTIMOS MOVIMIENTOS: fecha | código | tipo | cant. | motivo │
//	└─────────────────────────────────────────────────────────────┘
//
// Etiqueta: nombre, precio de venta y código de barras Code-128.
package pdf

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Estoque-api/internal/application/report"
	"github.com/jhoicas/Estoque-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// Etiqueta de 100 x 60 mm.
const (
	labelWidth  = 100
	labelHeight = 60
)

var _ report.PDFGenerator = (*MarotoPDFGenerator)(nil)

// MarotoPDFGenerator implementa report.PDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	appName string
}

// NewMarotoPDFGenerator construye el generador; appName aparece como autor del documento.
func NewMarotoPDFGenerator(appName string) *MarotoPDFGenerator {
	return &MarotoPDFGenerator{appName: appName}
}

// StockReport genera el reporte de stock y devuelve sus bytes.
func (g *MarotoPDFGenerator) StockReport(_ context.Context, data report.StockReportData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de stock", true).
		WithAuthor(g.appName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(reportHeaderRow(data))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(productsHeaderRow())
	if len(data.Products) == 0 {
		m.AddRows(emptyRow("Sin productos registrados"))
	}
	m.AddRows(productRows(data.Products)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(data))

	m.AddRows(line.NewRow(3))
	m.AddRows(sectionTitleRow("ÚLTIMOS MOVIMIENTOS"))
	if len(data.RecentMovements) == 0 {
		m.AddRows(emptyRow("Sin movimientos registrados"))
	}
	m.AddRows(movementRows(data.RecentMovements)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar reporte: %w", err)
	}
	return doc.GetBytes(), nil
}

// ProductLabel genera la etiqueta de góndola de un producto.
func (g *MarotoPDFGenerator) ProductLabel(_ context.Context, product *entity.Product) ([]byte, error) {
	cfg := config.NewBuilder().
		WithDimensions(labelWidth, labelHeight).
		WithLeftMargin(4).WithRightMargin(4).
		WithTopMargin(4).WithBottomMargin(2).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Etiqueta "+product.Barcode, true).
		WithAuthor(g.appName, true).
		Build()

	m := maroto.New(cfg)
	m.AddRows(
		row.New(8).Add(col.New(12).Add(text.New(product.Name, props.Text{
			Style: fontstyle.Bold, Size: 11, Align: align.Center,
		}))),
		row.New(10).Add(col.New(12).Add(text.New(formatMoney(product.SalePrice), props.Text{
			Style: fontstyle.Bold, Size: 16, Align: align.Center, Color: colorPrimary,
		}))),
		row.New(22).Add(col.New(12).Add(code.NewBar(product.Barcode, props.Barcode{
			Percent: 90,
			Center:  true,
		}))),
		row.New(5).Add(col.New(12).Add(text.New(product.Barcode, props.Text{
			Size: 8, Align: align.Center, Color: colorGray,
		}))),
	)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar etiqueta: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func reportHeaderRow(data report.StockReportData) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New("REPORTE DE STOCK", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("%d productos", len(data.Products)), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("Generado: "+data.GeneratedAt.Format("02/01/2006 15:04")+" UTC", props.Text{
				Size: 8, Align: align.Right, Top: 3, Color: colorGray,
			}),
		),
	)
}

func sectionTitleRow(title string) core.Row {
	return row.New(7).Add(col.New(12).Add(text.New(title, props.Text{
		Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 1,
	})))
}

func emptyRow(msg string) core.Row {
	return row.New(7).Add(col.New(12).Add(text.New(msg, props.Text{
		Size: 8, Align: align.Center, Color: colorGray, Top: 1,
	})))
}

func headerCol(label string, size int, a align.Type) core.Col {
	return col.New(size).Add(text.New(label, props.Text{
		Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
	}))
}

func cell(value string, size int, a align.Type) core.Col {
	return col.New(size).Add(text.New(value, props.Text{
		Size: 8, Align: a, Top: 1, Left: 1, Right: 1,
	}))
}

func productsHeaderRow() core.Row {
	return row.New(8).Add(
		headerCol("Código", 2, align.Left),
		headerCol("Nombre", 3, align.Left),
		headerCol("Categoría", 2, align.Left),
		headerCol("Cant.", 1, align.Right),
		headerCol("Costo", 1, align.Right),
		headerCol("Venta", 1, align.Right),
		headerCol("Valor", 2, align.Right),
	)
}

// productRows una fila por producto.
func productRows(products []*entity.Product) []core.Row {
	rows := make([]core.Row, 0, len(products))
	for _, p := range products {
		rows = append(rows, row.New(7).Add(
			cell(p.Barcode, 2, align.Left),
			cell(p.Name, 3, align.Left),
			cell(p.Category, 2, align.Left),
			cell(strconv.Itoa(p.Quantity), 1, align.Right),
			cell(formatMoney(p.CostPrice), 1, align.Right),
			cell(formatMoney(p.SalePrice), 1, align.Right),
			cell(formatMoney(p.StockValue()), 2, align.Right),
		))
	}
	return rows
}

func totalsRow(data report.StockReportData) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Color: colorPrimary, Right: 1})
	}
	return row.New(14).Add(
		col.New(6),
		col.New(3).Add(label("Unidades:"), label("Valor a costo:")),
		col.New(3).Add(value(strconv.Itoa(data.TotalQuantity)), value(formatMoney(data.TotalValue))),
	)
}

func movementRows(movements []*entity.Movement) []core.Row {
	rows := make([]core.Row, 0, len(movements)+1)
	if len(movements) == 0 {
		return rows
	}
	rows = append(rows, row.New(8).Add(
		headerCol("Fecha", 3, align.Left),
		headerCol("Código", 3, align.Left),
		headerCol("Tipo", 1, align.Center),
		headerCol("Cant.", 1, align.Right),
		headerCol("Motivo", 4, align.Left),
	))
	for _, mv := range movements {
		rows = append(rows, row.New(6).Add(
			cell(mv.Timestamp.Format("02/01/2006 15:04:05"), 3, align.Left),
			cell(mv.ProductBarcode, 3, align.Left),
			cell(string(mv.Type), 1, align.Center),
			cell(strconv.Itoa(mv.Quantity), 1, align.Right),
			cell(mv.Reason, 4, align.Left),
		))
	}
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

// formatMoney formato brasileño con dos decimales. Ej: 1234.5 → "R$ 1.234,50"
func formatMoney(d decimal.Decimal) string {
	s := d.StringFixed(2)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac, _ := strings.Cut(s, ".")
	return "R$ " + sign + groupThousands(intPart) + "," + frac
}

// groupThousands inserta puntos de miles en un string numérico sin decimales.
// Ej: "25000" → "25.000", "1000000" → "1.000.000"
func groupThousands(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return string(buf)
}
