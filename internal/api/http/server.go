package httpapi

import (
	"io"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const appName = "climate-likelihood"

// Options configures the HTTP application.
type Options struct {
	CORSOrigins string
	// WriteTimeout bounds response writing; analyses can take as long as the slowest
	// year's fetch, so this must exceed the fetch timeout.
	WriteTimeout time.Duration
	// AccessLog enables fiber's request logger.
	AccessLog bool
}

// NewApp builds the fiber application with middleware, health, metrics and API routes.
func NewApp(opts Options, service AnalysisService, gatherer prometheus.Gatherer, log *slog.Logger) *fiber.App {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if opts.WriteTimeout <= 0 {
		opts.WriteTimeout = 2 * time.Minute
	}

	app := fiber.New(fiber.Config{
		AppName:               appName,
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          opts.WriteTimeout,
		ErrorHandler:          ErrorHandler(log),
	})

	app.Use(requestid.New())
	if opts.AccessLog {
		app.Use(logger.New(logger.Config{
			Format: "${time} ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
		}))
	}
	app.Use(recover.New())
	if opts.CORSOrigins != "" {
		app.Use(cors.New(cors.Config{
			AllowOrigins: opts.CORSOrigins,
			AllowMethods: "GET,POST,OPTIONS",
			AllowHeaders: "*",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": appName,
		})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	RegisterRoutes(app, service)
	return app
}
