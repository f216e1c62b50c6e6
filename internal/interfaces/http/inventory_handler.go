package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Estoque-api/internal/application/dto"
	"github.com/jhoicas/Estoque-api/internal/application/inventory"
	"github.com/jhoicas/Estoque-api/pkg/logger"
)

// InventoryHandler maneja entradas y salidas de stock.
type InventoryHandler struct {
	uc  *inventory.StockAdjustmentUseCase
	log *logger.Logger
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.StockAdjustmentUseCase, log *logger.Logger) *InventoryHandler {
	return &InventoryHandler{uc: uc, log: log}
}

// AddStock godoc
// @Summary      Registrar entrada de stock
// @Tags         produtos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        barcode  path  string  true  "Código de barras"
// @Param        body     body  dto.StockAdjustmentRequest  true  "quantidade > 0 y motivo"
// @Success      200  {object}  dto.StockAdjustmentResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/produtos/{barcode}/adicionarEstoque [put]
func (h *InventoryHandler) AddStock(c *fiber.Ctx) error {
	var in dto.StockAdjustmentRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	res, err := h.uc.AddStock(c.UserContext(), c.Params("barcode"), in.Quantity, in.Reason)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(toAdjustmentResponse(res))
}

// RemoveStock godoc
// @Summary      Registrar salida de stock
// @Tags         produtos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        barcode  path  string  true  "Código de barras"
// @Param        body     body  dto.StockAdjustmentRequest  true  "quantidade > 0 y motivo"
// @Success      200  {object}  dto.StockAdjustmentResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/produtos/{barcode}/removerEstoque [put]
func (h *InventoryHandler) RemoveStock(c *fiber.Ctx) error {
	var in dto.StockAdjustmentRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	res, err := h.uc.RemoveStock(c.UserContext(), c.Params("barcode"), in.Quantity, in.Reason)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(toAdjustmentResponse(res))
}

func toAdjustmentResponse(res *inventory.AdjustmentResult) dto.StockAdjustmentResponse {
	return dto.StockAdjustmentResponse{
		Barcode:  res.Movement.ProductBarcode,
		Quantity: res.Quantity,
		Movement: dto.FromMovement(res.Movement),
	}
}
