package providers

import (
	"context"
	"fmt"

	lru "github.com/hashicorp/golang-lru"

	"github.com/i474232898/climate-likelihood/internal/climate"
	"github.com/i474232898/climate-likelihood/internal/observability"
)

// windowKey identifies one provider request. The variable set is fixed, so it is not
// part of the key.
type windowKey struct {
	Lat   float64
	Lon   float64
	Start string
	End   string
}

func keyFor(req climate.DailyRequest) windowKey {
	return windowKey{
		Lat:   req.Point.Lat,
		Lon:   req.Point.Lon,
		Start: req.Window.Start.Format(climate.ProviderDateLayout),
		End:   req.Window.End.Format(climate.ProviderDateLayout),
	}
}

// CachedProvider wraps a Provider with a bounded least-recently-used cache of
// successful responses.
type CachedProvider struct {
	inner   climate.Provider
	cache   *lru.Cache
	metrics *observability.Metrics
}

// NewCachedProvider creates a cache decorator around a provider holding at most
// maxEntries responses.
func NewCachedProvider(inner climate.Provider, maxEntries int, metrics *observability.Metrics) (*CachedProvider, error) {
	c, err := lru.New(maxEntries)
	if err != nil {
		return nil, fmt.Errorf("create provider cache: %w", err)
	}
	return &CachedProvider{
		inner:   inner,
		cache:   c,
		metrics: metrics,
	}, nil
}

func (c *CachedProvider) Name() string {
	return c.inner.Name()
}

// FetchDaily serves repeated requests for the same window from the cache. Cached
// series are shared between callers and must be treated as read-only.
func (c *CachedProvider) FetchDaily(ctx context.Context, req climate.DailyRequest) (climate.DailySeries, error) {
	key := keyFor(req)
	if v, ok := c.cache.Get(key); ok {
		c.metrics.CacheLookups.WithLabelValues("hit").Inc()
		return v.(climate.DailySeries), nil
	}
	c.metrics.CacheLookups.WithLabelValues("miss").Inc()

	series, err := c.inner.FetchDaily(ctx, req)
	if err != nil {
		return nil, err
	}
	c.cache.Add(key, series)
	return series, nil
}

// Len returns the number of cached windows.
func (c *CachedProvider) Len() int {
	return c.cache.Len()
}
