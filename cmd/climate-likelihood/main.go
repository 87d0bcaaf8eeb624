package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	httpapi "github.com/i474232898/climate-likelihood/internal/api/http"
	"github.com/i474232898/climate-likelihood/internal/app"
	"github.com/i474232898/climate-likelihood/internal/config"
	"github.com/i474232898/climate-likelihood/internal/observability"
	"github.com/i474232898/climate-likelihood/internal/scheduler"
)

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(logger)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	components, err := app.Build(cfg, reg, logger)
	if err != nil {
		logger.Error("failed to wire service", "error", err)
		os.Exit(1)
	}

	// Scheduler that periodically re-analyses watched locations.
	sched := scheduler.New(scheduler.Config{
		Locations: cfg.WatchLocations,
		Interval:  cfg.WatchInterval,
		Days:      cfg.WatchDays,
		Years:     cfg.WatchYears,
	}, components.Service, logger)
	if err := sched.Start(); err != nil {
		logger.Error("failed to start scheduler", "error", err)
		os.Exit(1)
	}
	defer sched.Stop()

	server := httpapi.NewApp(httpapi.Options{
		CORSOrigins:  cfg.CORSOrigins,
		WriteTimeout: cfg.FetchTimeout*2 + cfg.HTTPTimeout,
		AccessLog:    true,
	}, components.Service, reg, logger)

	go func() {
		logger.Info("listening", "addr", cfg.Addr)
		if err := server.Listen(cfg.Addr); err != nil {
			logger.Error("fiber server stopped", "error", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.ShutdownWithContext(shutdownCtx); err != nil {
		logger.Error("error during shutdown", "error", err)
	}
}
