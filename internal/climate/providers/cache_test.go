package providers

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/climate-likelihood/internal/climate"
	"github.com/i474232898/climate-likelihood/internal/observability"
)

type countingProvider struct {
	calls  int
	err    error
	series climate.DailySeries
}

func (p *countingProvider) Name() string { return "counting" }

func (p *countingProvider) FetchDaily(_ context.Context, _ climate.DailyRequest) (climate.DailySeries, error) {
	p.calls++
	if p.err != nil {
		return nil, p.err
	}
	return p.series, nil
}

func requestFor(day int) climate.DailyRequest {
	w, _ := climate.DayWindow(time.Date(2023, time.August, day, 0, 0, 0, 0, time.UTC), 2)
	return climate.DailyRequest{Point: climate.Point{Lat: 24.8, Lon: 68.0}, Window: w}
}

func TestCachedProvider_HitAvoidsInnerCall(t *testing.T) {
	inner := &countingProvider{series: climate.DailySeries{"T2M": {"20230815": 31}}}
	cached, err := NewCachedProvider(inner, 10, observability.NewMetricsForTesting())
	require.NoError(t, err)

	s1, err := cached.FetchDaily(context.Background(), requestFor(15))
	require.NoError(t, err)
	s2, err := cached.FetchDaily(context.Background(), requestFor(15))
	require.NoError(t, err)

	assert.Equal(t, s1, s2)
	assert.Equal(t, 1, inner.calls, "should only call inner once")
}

func TestCachedProvider_DifferentWindowsMiss(t *testing.T) {
	inner := &countingProvider{series: climate.DailySeries{}}
	cached, err := NewCachedProvider(inner, 10, observability.NewMetricsForTesting())
	require.NoError(t, err)

	_, _ = cached.FetchDaily(context.Background(), requestFor(15))
	_, _ = cached.FetchDaily(context.Background(), requestFor(16))

	assert.Equal(t, 2, inner.calls)
}

func TestCachedProvider_ErrorsAreNotCached(t *testing.T) {
	inner := &countingProvider{err: errors.New("boom")}
	cached, err := NewCachedProvider(inner, 10, observability.NewMetricsForTesting())
	require.NoError(t, err)

	_, err = cached.FetchDaily(context.Background(), requestFor(15))
	require.Error(t, err)
	_, err = cached.FetchDaily(context.Background(), requestFor(15))
	require.Error(t, err)

	assert.Equal(t, 2, inner.calls)
	assert.Equal(t, 0, cached.Len())
}

func TestCachedProvider_EvictsLeastRecentlyUsed(t *testing.T) {
	inner := &countingProvider{series: climate.DailySeries{}}
	cached, err := NewCachedProvider(inner, 2, observability.NewMetricsForTesting())
	require.NoError(t, err)

	ctx := context.Background()
	_, _ = cached.FetchDaily(ctx, requestFor(10))
	_, _ = cached.FetchDaily(ctx, requestFor(11))
	_, _ = cached.FetchDaily(ctx, requestFor(10)) // promotes day 10
	_, _ = cached.FetchDaily(ctx, requestFor(12)) // evicts day 11
	assert.Equal(t, 3, inner.calls)

	_, _ = cached.FetchDaily(ctx, requestFor(10))
	assert.Equal(t, 3, inner.calls, "day 10 was recently used and should still be cached")

	_, _ = cached.FetchDaily(ctx, requestFor(11))
	assert.Equal(t, 4, inner.calls, "day 11 should have been evicted")
}

func TestNewCachedProvider_RejectsZeroCapacity(t *testing.T) {
	_, err := NewCachedProvider(&countingProvider{}, 0, observability.NewMetricsForTesting())
	assert.Error(t, err)
}
