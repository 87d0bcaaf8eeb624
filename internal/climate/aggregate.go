package climate

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/i474232898/climate-likelihood/internal/observability"
)

// Request describes one multi-year likelihood analysis.
type Request struct {
	Point      Point
	TargetDate time.Time
	DayRadius  int
	YearCount  int
}

// FactorReport merges a factor's statistics and classification for one series.
type FactorReport struct {
	Factor         string
	Column         Column
	Summary        Summary
	Classification Classification
}

// YearRecord is the aggregation unit for one historical year.
type YearRecord struct {
	Year    int
	Date    time.Time
	Window  Window
	Table   *Table
	Factors []FactorReport
}

// Result holds the per-year records and their concatenation.
type Result struct {
	Request  Request
	Combined *Table
	Years    []YearRecord
}

// FinalStatistics is the dataset-wide view over the combined table.
type FinalStatistics struct {
	Statistics  []ColumnSummary
	Predictions []Prediction
}

// Aggregator fetches comparable windows from prior years and assembles the result.
type Aggregator struct {
	fetcher *Fetcher
	workers int
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewAggregator creates an Aggregator fetching at most workers years concurrently.
func NewAggregator(fetcher *Fetcher, workers int, logger *slog.Logger, metrics *observability.Metrics) *Aggregator {
	if workers <= 0 {
		workers = 1
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Aggregator{
		fetcher: fetcher,
		workers: workers,
		logger:  logger,
		metrics: metrics,
	}
}

// Aggregate builds one YearRecord per date of YearSeries(req.TargetDate, req.YearCount)
// and concatenates their tables in that order. Any year failing aborts the whole
// aggregation; no partial result is returned.
func (a *Aggregator) Aggregate(ctx context.Context, req Request) (*Result, error) {
	start := time.Now()

	dates, err := YearSeries(req.TargetDate, req.YearCount)
	if err != nil {
		return nil, err
	}
	if req.DayRadius < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidRadius, req.DayRadius)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		wg       sync.WaitGroup
		errOnce  sync.Once
		firstErr error
		records  = make([]YearRecord, len(dates))
		sem      = make(chan struct{}, a.workers)
	)

	for i, d := range dates {
		wg.Add(1)
		go func(i int, d time.Time) {
			defer wg.Done()

			select {
			case sem <- struct{}{}:
			case <-ctx.Done():
				return
			}
			defer func() { <-sem }()

			rec, err := a.buildYear(ctx, req, d)
			if err != nil {
				errOnce.Do(func() {
					firstErr = fmt.Errorf("year %d: %w", d.Year(), err)
					cancel()
				})
				return
			}
			records[i] = rec
		}(i, d)
	}
	wg.Wait()

	if firstErr == nil && ctx.Err() != nil {
		firstErr = fmt.Errorf("%w: %v", ErrTransport, ctx.Err())
	}
	if firstErr != nil {
		a.metrics.Aggregations.WithLabelValues(Reason(firstErr)).Inc()
		a.logger.Warn("aggregation failed", "point", req.Point.String(), "error", firstErr)
		return nil, firstErr
	}

	tables := make([]*Table, len(records))
	for i, r := range records {
		tables[i] = r.Table
	}
	combined, err := Concat(tables...)
	if err != nil {
		return nil, err
	}

	a.metrics.Aggregations.WithLabelValues("success").Inc()
	a.metrics.AggregationDuration.Observe(time.Since(start).Seconds())
	a.logger.Info("aggregation complete",
		"point", req.Point.String(),
		"target", req.TargetDate.Format(DateLayout),
		"years", len(records),
		"rows", combined.Len(),
	)

	return &Result{
		Request:  req,
		Combined: combined,
		Years:    records,
	}, nil
}

func (a *Aggregator) buildYear(ctx context.Context, req Request, date time.Time) (YearRecord, error) {
	w, err := DayWindow(date, req.DayRadius)
	if err != nil {
		return YearRecord{}, err
	}

	t, err := a.fetcher.FetchWindow(ctx, req.Point, w)
	if err != nil {
		return YearRecord{}, err
	}
	a.metrics.YearsFetched.Inc()

	if err := DeriveHeatIndex(t); err != nil {
		return YearRecord{}, err
	}

	reports, err := ReportFactors(t)
	if err != nil {
		return YearRecord{}, err
	}

	return YearRecord{
		Year:    date.Year(),
		Date:    date,
		Window:  w,
		Table:   t,
		Factors: reports,
	}, nil
}

// ReportFactors computes statistics and classification for every factor over t.
func ReportFactors(t *Table) ([]FactorReport, error) {
	factors := Factors()
	out := make([]FactorReport, 0, len(factors))
	for _, f := range factors {
		series, ok := t.Column(f.Column)
		if !ok {
			return nil, fmt.Errorf("%s: missing column %s", f.Name, f.Column)
		}
		s, err := ColumnStats(series)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", f.Name, err)
		}
		c, err := f.Classify(series)
		if err != nil {
			return nil, err
		}
		out = append(out, FactorReport{
			Factor:         f.Name,
			Column:         f.Column,
			Summary:        s,
			Classification: c,
		})
	}
	return out, nil
}

// Finalize computes dataset-wide statistics and predictions, pooling all years.
func Finalize(combined *Table) (FinalStatistics, error) {
	stats, err := TableStats(combined)
	if err != nil {
		return FinalStatistics{}, err
	}
	preds, err := Predict(combined)
	if err != nil {
		return FinalStatistics{}, err
	}
	return FinalStatistics{
		Statistics:  stats,
		Predictions: preds,
	}, nil
}
