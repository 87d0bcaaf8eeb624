package app

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/i474232898/climate-likelihood/internal/climate"
	"github.com/i474232898/climate-likelihood/internal/climate/providers"
	"github.com/i474232898/climate-likelihood/internal/config"
	"github.com/i474232898/climate-likelihood/internal/observability"
	"github.com/i474232898/climate-likelihood/internal/store"
)

const geocodeCacheSize = 512

// Components are the wired core pieces shared by the server and the CLI.
type Components struct {
	Metrics *observability.Metrics
	Store   *store.MemoryStore
	Service *climate.Service
}

// Build wires the provider, cache, aggregator, store and service from cfg.
func Build(cfg *config.AppConfig, reg prometheus.Registerer, logger *slog.Logger) (*Components, error) {
	metrics := observability.NewMetrics(reg)

	// Shared HTTP client for outbound provider calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	var provider climate.Provider = providers.NewPowerProvider(httpClient, providers.PowerConfig{
		BaseURL:    cfg.PowerBaseURL,
		Community:  cfg.PowerCommunity,
		MaxRetries: cfg.ProviderMaxRetries,
	}, metrics, logger)

	if cfg.CacheSize > 0 {
		cached, err := providers.NewCachedProvider(provider, cfg.CacheSize, metrics)
		if err != nil {
			return nil, err
		}
		provider = cached
	}

	fetcher := climate.NewFetcher(provider, cfg.FetchTimeout, logger)
	aggregator := climate.NewAggregator(fetcher, cfg.FetchWorkers, logger, metrics)

	memStore := store.NewMemoryStore(cfg.StoreMaxHistory, cfg.StoreMaxAge, nil)
	memStore.ReportSizeTo(metrics.StoredAnalyses)

	opts := []climate.ServiceOption{climate.WithLogger(logger)}
	if cfg.GeocoderAPIKey != "" {
		g, err := providers.NewGoogleGeocoder(cfg.GeocoderAPIKey, geocodeCacheSize)
		if err != nil {
			return nil, fmt.Errorf("geocoder: %w", err)
		}
		opts = append(opts, climate.WithGeocoder(g))
	}

	return &Components{
		Metrics: metrics,
		Store:   memStore,
		Service: climate.NewService(aggregator, memStore, opts...),
	}, nil
}
