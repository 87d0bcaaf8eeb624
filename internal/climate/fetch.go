package climate

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"sort"
	"time"
)

// Fetcher turns provider responses into observation tables.
type Fetcher struct {
	provider Provider
	timeout  time.Duration
	logger   *slog.Logger
}

// NewFetcher creates a Fetcher. A zero timeout disables the per-fetch deadline.
func NewFetcher(provider Provider, timeout time.Duration, logger *slog.Logger) *Fetcher {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Fetcher{
		provider: provider,
		timeout:  timeout,
		logger:   logger,
	}
}

// FetchWindow fetches the fixed variable set for the window and returns it as a table
// sorted by date. Missing cells are imputed with the column mean over the window; a
// column with no values at all is left as NaN.
//
// Provider failures are not retried here.
func (f *Fetcher) FetchWindow(ctx context.Context, p Point, w Window) (*Table, error) {
	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	series, err := f.provider.FetchDaily(ctx, DailyRequest{
		Point:     p,
		Window:    w,
		Variables: VariableIDs(),
	})
	if err != nil {
		return nil, classifyFetchError(ctx, err)
	}

	t, err := tableFromSeries(series)
	if err != nil {
		return nil, err
	}

	f.logger.Debug("window fetched",
		"provider", f.provider.Name(),
		"point", p.String(),
		"start", w.Start.Format(ProviderDateLayout),
		"end", w.End.Format(ProviderDateLayout),
		"rows", t.Len(),
	)
	return t, nil
}

func classifyFetchError(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, ErrTransport), errors.Is(err, ErrMalformedResponse):
		return err
	case ctx.Err() != nil:
		return fmt.Errorf("%w: %v", ErrTransport, ctx.Err())
	default:
		return fmt.Errorf("%w: %v", ErrTransport, err)
	}
}

func tableFromSeries(series DailySeries) (*Table, error) {
	keys := make(map[string]time.Time)
	for _, v := range Variables {
		for k := range series[v.ID] {
			if _, seen := keys[k]; seen {
				continue
			}
			d, err := time.Parse(ProviderDateLayout, k)
			if err != nil {
				return nil, fmt.Errorf("%w: date key %q", ErrMalformedResponse, k)
			}
			keys[k] = d
		}
	}

	ordered := make([]string, 0, len(keys))
	for k := range keys {
		ordered = append(ordered, k)
	}
	// YYYYMMDD sorts lexically in date order.
	sort.Strings(ordered)

	dates := make([]time.Time, len(ordered))
	for i, k := range ordered {
		dates[i] = keys[k]
	}

	t := NewTable(dates)
	for _, v := range Variables {
		values := make([]float64, len(ordered))
		byDate := series[v.ID]
		for i, k := range ordered {
			val, ok := byDate[k]
			if !ok {
				val = math.NaN()
			}
			values[i] = val
		}
		fillMissing(values)
		if err := t.SetColumn(v.Column, values); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// fillMissing replaces NaN cells with the mean of the non-NaN cells.
func fillMissing(values []float64) {
	var sum float64
	var n int
	for _, v := range values {
		if !math.IsNaN(v) {
			sum += v
			n++
		}
	}
	if n == len(values) {
		return
	}

	mean := math.NaN()
	if n > 0 {
		mean = sum / float64(n)
	}
	for i, v := range values {
		if math.IsNaN(v) {
			values[i] = mean
		}
	}
}
