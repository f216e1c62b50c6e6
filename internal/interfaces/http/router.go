package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Estoque-api/internal/application/analytics"
	"github.com/jhoicas/Estoque-api/internal/application/history"
	"github.com/jhoicas/Estoque-api/internal/application/inventory"
	"github.com/jhoicas/Estoque-api/internal/application/report"
	"github.com/jhoicas/Estoque-api/internal/application/usecase"
	"github.com/jhoicas/Estoque-api/pkg/jwt"
	"github.com/jhoicas/Estoque-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC   *usecase.ProductUseCase
	StockUC     *inventory.StockAdjustmentUseCase
	HistoryUC   *history.HistoryUseCase
	DashboardUC *analytics.DashboardUseCase
	ReportUC    *report.ReportUseCase
	Logger      *logger.Logger
	ServiceName string
	// HealthCheck verifica el backend de almacenamiento; nil = siempre sano.
	HealthCheck func(ctx context.Context) error
	// JWTSecret vacío deja las rutas de escritura abiertas (desarrollo).
	JWTSecret string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Logger
	if log == nil {
		log = logger.Nop()
	}

	health := healthHandler(deps, log)
	app.Get("/health", health)

	api := app.Group("/api")
	api.Get("/health", health)

	// Escrituras: JWT + rol cuando hay secreto configurado
	var guard []fiber.Handler
	if deps.JWTSecret != "" {
		guard = []fiber.Handler{
			AuthMiddleware(deps.JWTSecret),
			RequireRole(jwt.RoleAdmin, jwt.RoleEstoquista),
		}
	}
	write := func(h fiber.Handler) []fiber.Handler {
		return append(append([]fiber.Handler{}, guard...), h)
	}

	// Produtos
	products := api.Group("/produtos")
	productHandler := NewProductHandler(deps.ProductUC, log)
	inventoryHandler := NewInventoryHandler(deps.StockUC, log)
	reportHandler := NewReportHandler(deps.ReportUC, log)
	products.Get("/", productHandler.List)
	products.Post("/", write(productHandler.Create)...)
	products.Get("/:barcode", productHandler.Get)
	products.Put("/:barcode", write(productHandler.Update)...)
	products.Delete("/:barcode", write(productHandler.Delete)...)
	products.Put("/:barcode/adicionarEstoque", write(inventoryHandler.AddStock)...)
	products.Put("/:barcode/removerEstoque", write(inventoryHandler.RemoveStock)...)
	products.Get("/:barcode/etiqueta", reportHandler.ProductLabel)

	// Histórico (solo lectura)
	hist := api.Group("/historico")
	historyHandler := NewHistoryHandler(deps.HistoryUC, log)
	hist.Get("/", historyHandler.All)
	hist.Get("/ultima", historyHandler.Latest)
	hist.Get("/periodo", historyHandler.ByPeriod)
	hist.Get("/produto/:barcode", historyHandler.ByProduct)
	hist.Get("/motivo/:motivo", historyHandler.ByReason)
	hist.Get("/tipo/:tipo", historyHandler.ByType)

	// Dashboard y relatórios
	dashboardHandler := NewDashboardHandler(deps.DashboardUC, log)
	api.Get("/dashboard/stats", dashboardHandler.GetStats)
	api.Get("/relatorios/estoque", reportHandler.StockReport)
}

func healthHandler(deps RouterDeps, log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if deps.HealthCheck != nil {
			ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
			defer cancel()
			if err := deps.HealthCheck(ctx); err != nil {
				log.Error().Err(err).Msg("almacenamiento no disponible")
				return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
					"status": "degraded", "service": deps.ServiceName,
				})
			}
		}
		return c.JSON(fiber.Map{"status": "ok", "service": deps.ServiceName})
	}
}
