package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/i474232898/climate-likelihood/internal/climate"
	"github.com/i474232898/climate-likelihood/internal/climate/providers"
)

type AppConfig struct {
	Addr            string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// NASA POWER provider.
	PowerBaseURL       string
	PowerCommunity     string
	HTTPTimeout        time.Duration
	FetchTimeout       time.Duration
	FetchWorkers       int
	ProviderMaxRetries int
	CacheSize          int // provider response cache entries (0 = disabled)

	// In-memory store retention.
	StoreMaxHistory int           // max number of analyses retained (0 = unlimited)
	StoreMaxAge     time.Duration // max age of analyses (0 = unlimited)

	GeocoderAPIKey string

	// Locations re-analysed on a schedule.
	WatchLocations []climate.Point
	WatchInterval  time.Duration
	WatchDays      int
	WatchYears     int

	CORSOrigins string
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded", "error", err)
	}
	return fromEnv()
}

func fromEnv() (*AppConfig, error) {
	cfg := &AppConfig{
		Addr:           getenvDefault("HTTP_ADDR", ":8080"),
		LogLevel:       getenvDefault("LOG_LEVEL", "info"),
		LogFormat:      getenvDefault("LOG_FORMAT", "json"),
		PowerBaseURL:   getenvDefault("POWER_BASE_URL", providers.DefaultPowerBaseURL),
		PowerCommunity: getenvDefault("POWER_COMMUNITY", "AG"),
		GeocoderAPIKey: os.Getenv("GEOCODER_API_KEY"),
		CORSOrigins:    getenvDefault("CORS_ORIGINS", "http://localhost:5000,https://zerorain.vercel.app"),
	}

	var err error
	durations := []struct {
		key string
		def string
		dst *time.Duration
	}{
		{"SHUTDOWN_TIMEOUT", "10s", &cfg.ShutdownTimeout},
		{"HTTP_TIMEOUT", "30s", &cfg.HTTPTimeout},
		{"FETCH_TIMEOUT", "20s", &cfg.FetchTimeout},
		{"STORE_MAX_AGE", "24h", &cfg.StoreMaxAge},
		{"WATCH_INTERVAL", "6h", &cfg.WatchInterval},
	}
	for _, d := range durations {
		if *d.dst, err = getenvDuration(d.key, d.def); err != nil {
			return nil, err
		}
	}

	ints := []struct {
		key string
		def int
		dst *int
	}{
		{"FETCH_WORKERS", 4, &cfg.FetchWorkers},
		{"PROVIDER_MAX_RETRIES", 2, &cfg.ProviderMaxRetries},
		{"CACHE_SIZE", 256, &cfg.CacheSize},
		{"STORE_MAX_HISTORY", 100, &cfg.StoreMaxHistory},
		{"WATCH_DAYS", 2, &cfg.WatchDays},
		{"WATCH_YEARS", 5, &cfg.WatchYears},
	}
	for _, i := range ints {
		if *i.dst, err = getenvInt(i.key, i.def); err != nil {
			return nil, err
		}
	}

	if cfg.FetchWorkers <= 0 {
		return nil, fmt.Errorf("invalid FETCH_WORKERS: must be positive, got %d", cfg.FetchWorkers)
	}
	if cfg.ProviderMaxRetries < 0 {
		return nil, fmt.Errorf("invalid PROVIDER_MAX_RETRIES: must not be negative, got %d", cfg.ProviderMaxRetries)
	}

	cfg.WatchLocations, err = ParseWatchLocations(os.Getenv("WATCH_LOCATIONS"))
	if err != nil {
		return nil, fmt.Errorf("invalid WATCH_LOCATIONS: %w", err)
	}

	return cfg, nil
}

// ParseWatchLocations parses "lat,lon;lat,lon". An empty string yields no locations.
func ParseWatchLocations(s string) ([]climate.Point, error) {
	var points []climate.Point
	for _, pair := range strings.Split(s, ";") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}

		parts := strings.Split(pair, ",")
		if len(parts) != 2 {
			return nil, fmt.Errorf("location %q: expected lat,lon", pair)
		}
		lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
		if err != nil {
			return nil, fmt.Errorf("location %q: latitude: %w", pair, err)
		}
		lon, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("location %q: longitude: %w", pair, err)
		}
		if lat < -90 || lat > 90 {
			return nil, fmt.Errorf("location %q: latitude out of range", pair)
		}
		if lon < -180 || lon > 180 {
			return nil, fmt.Errorf("location %q: longitude out of range", pair)
		}
		points = append(points, climate.Point{Lat: lat, Lon: lon})
	}
	return points, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getenvDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(getenvDefault(key, def))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
