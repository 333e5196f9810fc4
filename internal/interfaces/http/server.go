package http

import (
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/greenstore-api/pkg/logger"
	"github.com/jhoicas/greenstore-api/pkg/metrics"
)

// AppConfig opciones del servidor HTTP.
type AppConfig struct {
	Name     string
	DocsFile string // swagger.json; vacío deshabilita /docs
}

// NewApp arma la aplicación Fiber: recover, request id, /health, /metrics, /docs, la API y el 404.
func NewApp(cfg AppConfig, log *logger.Logger, rec *metrics.Recorder, deps RouterDeps) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      cfg.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: ErrorHandler(log.Component("http"), rec),
	})
	app.Use(RequestID())
	app.Use(recover.New())

	if cfg.DocsFile != "" {
		// Swagger UI en local: http://localhost:<port>/docs
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.DocsFile,
			Path:     "docs",
			Title:    "GreenStore API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.Name})
	})
	app.Get("/metrics", adaptor.HTTPHandler(rec.Handler()))

	Router(app, deps)

	app.Use(func(c *fiber.Ctx) error {
		return fiber.ErrNotFound
	})
	return app
}
