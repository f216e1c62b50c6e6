package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Estoque-api/internal/application/report"
	"github.com/jhoicas/Estoque-api/pkg/logger"
)

// ReportHandler descarga de documentos PDF.
type ReportHandler struct {
	uc  *report.ReportUseCase
	log *logger.Logger
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *report.ReportUseCase, log *logger.Logger) *ReportHandler {
	return &ReportHandler{uc: uc, log: log}
}

// StockReport godoc
// @Summary      Reporte de stock en PDF
// @Tags         relatorios
// @Produce      application/pdf
// @Success      200  {file}    binary
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/relatorios/estoque [get]
func (h *ReportHandler) StockReport(c *fiber.Ctx) error {
	pdfBytes, filename, err := h.uc.StockReport(c.UserContext())
	if err != nil {
		return writeError(c, h.log, err)
	}
	return sendPDF(c, pdfBytes, filename)
}

// ProductLabel godoc
// @Summary      Etiqueta PDF con código de barras
// @Tags         produtos
// @Produce      application/pdf
// @Param        barcode  path  string  true  "Código de barras"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/produtos/{barcode}/etiqueta [get]
func (h *ReportHandler) ProductLabel(c *fiber.Ctx) error {
	pdfBytes, filename, err := h.uc.ProductLabel(c.UserContext(), c.Params("barcode"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return sendPDF(c, pdfBytes, filename)
}

func sendPDF(c *fiber.Ctx, pdfBytes []byte, filename string) error {
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`inline; filename="%s"`, filename))
	return c.Send(pdfBytes)
}
