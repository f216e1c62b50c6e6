package http

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Estoque-api/internal/application/dto"
	"github.com/jhoicas/Estoque-api/internal/application/history"
	"github.com/jhoicas/Estoque-api/internal/domain"
	"github.com/jhoicas/Estoque-api/pkg/logger"
)

// periodLayouts formatos aceptados en dataInicio / dataFim. Sin zona se interpreta UTC.
var periodLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05"}

// dateOnlyLayout fecha sin hora: como inicio vale 00:00:00, como fin cubre el día completo.
const dateOnlyLayout = "2006-01-02"

// HistoryHandler consultas del libro de movimientos (solo lectura).
type HistoryHandler struct {
	uc  *history.HistoryUseCase
	log *logger.Logger
}

// NewHistoryHandler construye el handler.
func NewHistoryHandler(uc *history.HistoryUseCase, log *logger.Logger) *HistoryHandler {
	return &HistoryHandler{uc: uc, log: log}
}

// All godoc
// @Summary      Historial completo
// @Tags         historico
// @Produce      json
// @Success      200  {array}   dto.MovementResponse
// @Failure      404  {object}  dto.ErrorResponse  "EMPTY_HISTORY"
// @Router       /api/historico [get]
func (h *HistoryHandler) All(c *fiber.Ctx) error {
	list, err := h.uc.All(c.UserContext())
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.FromMovements(list))
}

// Latest godoc
// @Summary      Último movimiento
// @Tags         historico
// @Produce      json
// @Success      200  {object}  dto.MovementResponse
// @Failure      404  {object}  dto.ErrorResponse  "EMPTY_HISTORY"
// @Router       /api/historico/ultima [get]
func (h *HistoryHandler) Latest(c *fiber.Ctx) error {
	m, err := h.uc.Latest(c.UserContext())
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.FromMovement(m))
}

// ByProduct godoc
// @Summary      Historial de un producto
// @Tags         historico
// @Produce      json
// @Param        barcode  path  string  true  "Código de barras"
// @Success      200  {array}   dto.MovementResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/historico/produto/{barcode} [get]
func (h *HistoryHandler) ByProduct(c *fiber.Ctx) error {
	list, err := h.uc.ByProduct(c.UserContext(), c.Params("barcode"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.FromMovements(list))
}

// ByPeriod godoc
// @Summary      Historial por período (extremos incluidos)
// @Tags         historico
// @Produce      json
// @Param        dataInicio  query  string  true  "RFC3339, 2006-01-02T15:04:05 o 2006-01-02 (desde 00:00:00)"
// @Param        dataFim     query  string  true  "RFC3339, 2006-01-02T15:04:05 o 2006-01-02 (hasta el fin del día)"
// @Success      200  {array}   dto.MovementResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/historico/periodo [get]
func (h *HistoryHandler) ByPeriod(c *fiber.Ctx) error {
	start, err := parseInstant("dataInicio", c.Query("dataInicio"), false)
	if err != nil {
		return writeError(c, h.log, err)
	}
	end, err := parseInstant("dataFim", c.Query("dataFim"), true)
	if err != nil {
		return writeError(c, h.log, err)
	}
	list, err := h.uc.ByPeriod(c.UserContext(), start, end)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.FromMovements(list))
}

// ByReason godoc
// @Summary      Historial por motivo (sin distinguir mayúsculas)
// @Tags         historico
// @Produce      json
// @Param        motivo  path  string  true  "Motivo"
// @Success      200  {array}   dto.MovementResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/historico/motivo/{motivo} [get]
func (h *HistoryHandler) ByReason(c *fiber.Ctx) error {
	reason, err := pathParam(c, "motivo")
	if err != nil {
		return writeError(c, h.log, err)
	}
	list, err := h.uc.ByReason(c.UserContext(), reason)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.FromMovements(list))
}

// ByType godoc
// @Summary      Historial por tipo
// @Tags         historico
// @Produce      json
// @Param        tipo  path  string  true  "IN | OUT (acepta ENTRADA / SAIDA)"
// @Success      200  {array}   dto.MovementResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/historico/tipo/{tipo} [get]
func (h *HistoryHandler) ByType(c *fiber.Ctx) error {
	movementType, err := pathParam(c, "tipo")
	if err != nil {
		return writeError(c, h.log, err)
	}
	list, err := h.uc.ByType(c.UserContext(), movementType)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.FromMovements(list))
}

// pathParam devuelve el parámetro de ruta decodificado ("ajuste%20manual" -> "ajuste manual").
func pathParam(c *fiber.Ctx, name string) (string, error) {
	v, err := url.PathUnescape(c.Params(name))
	if err != nil {
		return "", fmt.Errorf("%w: %s mal codificado", domain.ErrInvalidInput, name)
	}
	return v, nil
}

// parseInstant interpreta un extremo del período. Con endOfDay, una fecha sin hora
// se extiende hasta el último microsegundo de ese día.
func parseInstant(name, raw string, endOfDay bool) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, fmt.Errorf("%w: %s es obligatorio", domain.ErrInvalidInput, name)
	}
	for _, layout := range periodLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), nil
		}
	}
	if t, err := time.Parse(dateOnlyLayout, raw); err == nil {
		if endOfDay {
			t = t.AddDate(0, 0, 1).Add(-time.Microsecond)
		}
		return t, nil
	}
	return time.Time{}, fmt.Errorf("%w: %s con formato inválido: %q", domain.ErrInvalidInput, name, raw)
}
