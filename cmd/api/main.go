package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/Estoque-api/docs"
	appanalytics "github.com/jhoicas/Estoque-api/internal/application/analytics"
	"github.com/jhoicas/Estoque-api/internal/application/history"
	"github.com/jhoicas/Estoque-api/internal/application/inventory"
	"github.com/jhoicas/Estoque-api/internal/application/report"
	"github.com/jhoicas/Estoque-api/internal/application/usecase"
	infrapdf "github.com/jhoicas/Estoque-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Estoque-api/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/Estoque-api/internal/interfaces/http"
	"github.com/jhoicas/Estoque-api/pkg/config"
	"github.com/jhoicas/Estoque-api/pkg/logger"
)

// @title          Estoque API
// @version        1.0
// @description    Control de stock con libro de movimientos.
// @BasePath       /
// @securityDefinitions.apikey Bearer
// @in             header
// @name           Authorization
// @description    Bearer <token>
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.Storage.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	backend, err := storage.Open(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir almacenamiento")
	}
	defer backend.Close()

	productUC := usecase.NewProductUseCase(backend.Products, backend.TxRunner, log.Named("produtos"))
	stockUC := inventory.NewStockAdjustmentUseCase(backend.TxRunner, log.Named("estoque"))
	historyUC := history.NewHistoryUseCase(backend.Movements, backend.Products)
	dashboardUC := appanalytics.NewDashboardUseCase(backend.Products, backend.Movements, cfg.Stock.LowStockThreshold)

	// PDF: reporte de stock y etiquetas con código de barras
	pdfGenerator := infrapdf.NewMarotoPDFGenerator(cfg.App.Name)
	reportUC := report.NewReportUseCase(backend.Products, backend.Movements, pdfGenerator)

	if !cfg.JWT.Enabled() {
		log.Warn().Msg("JWT_SECRET vacío: rutas de escritura sin autenticación")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.ErrorHandler(log),
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.HTTP.AllowOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))
	app.Use(httpRouter.RequestLogger(log.Named("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(cfg.HTTP.SwaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.HTTP.SwaggerFile,
			Path:     "docs",
			Title:    "Estoque API",
		}))
	} else {
		// Sin archivo: se sirve la especificación compilada en el binario
		log.Warn().Str("file", cfg.HTTP.SwaggerFile).Msg("swagger UI no disponible, se expone /docs/doc.json")
		app.Get("/docs/doc.json", func(c *fiber.Ctx) error {
			c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
			return c.SendString(docs.SwaggerInfo.ReadDoc())
		})
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC:   productUC,
		StockUC:     stockUC,
		HistoryUC:   historyUC,
		DashboardUC: dashboardUC,
		ReportUC:    reportUC,
		Logger:      log,
		ServiceName: cfg.App.Name,
		HealthCheck: backend.Ping,
		JWTSecret:   cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
