package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/climate-likelihood/internal/climate"
	"github.com/i474232898/climate-likelihood/internal/climate/providers"
)

func TestFromEnv_Defaults(t *testing.T) {
	cfg, err := fromEnv()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, providers.DefaultPowerBaseURL, cfg.PowerBaseURL)
	assert.Equal(t, "AG", cfg.PowerCommunity)
	assert.Equal(t, 30*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 20*time.Second, cfg.FetchTimeout)
	assert.Equal(t, 4, cfg.FetchWorkers)
	assert.Equal(t, 256, cfg.CacheSize)
	assert.Equal(t, 100, cfg.StoreMaxHistory)
	assert.Equal(t, 24*time.Hour, cfg.StoreMaxAge)
	assert.Equal(t, 6*time.Hour, cfg.WatchInterval)
	assert.Empty(t, cfg.WatchLocations)
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("FETCH_WORKERS", "8")
	t.Setenv("CACHE_SIZE", "0")
	t.Setenv("FETCH_TIMEOUT", "5s")
	t.Setenv("WATCH_LOCATIONS", "24.8,68.0; -33.9,151.2")

	cfg, err := fromEnv()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, 8, cfg.FetchWorkers)
	assert.Equal(t, 0, cfg.CacheSize)
	assert.Equal(t, 5*time.Second, cfg.FetchTimeout)
	assert.Equal(t, []climate.Point{{Lat: 24.8, Lon: 68.0}, {Lat: -33.9, Lon: 151.2}}, cfg.WatchLocations)
}

func TestFromEnv_InvalidValuesNameTheVariable(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{key: "FETCH_TIMEOUT", value: "soon"},
		{key: "STORE_MAX_HISTORY", value: "many"},
		{key: "FETCH_WORKERS", value: "0"},
		{key: "PROVIDER_MAX_RETRIES", value: "-1"},
		{key: "WATCH_LOCATIONS", value: "100,0"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := fromEnv()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.key)
		})
	}
}

func TestParseWatchLocations(t *testing.T) {
	points, err := ParseWatchLocations("")
	require.NoError(t, err)
	assert.Empty(t, points)

	_, err = ParseWatchLocations("24.8")
	assert.Error(t, err)

	_, err = ParseWatchLocations("24.8,200")
	assert.Error(t, err)

	points, err = ParseWatchLocations("1,2;")
	require.NoError(t, err)
	assert.Equal(t, []climate.Point{{Lat: 1, Lon: 2}}, points)
}
