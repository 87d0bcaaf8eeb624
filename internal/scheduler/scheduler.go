package scheduler

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/i474232898/climate-likelihood/internal/climate"
)

// Analyzer is the part of climate.Service the scheduler drives.
type Analyzer interface {
	Analyze(ctx context.Context, req climate.Request) (climate.Analysis, error)
	Today() time.Time
}

// Config describes the watched locations and the request shape used for each run.
type Config struct {
	Locations []climate.Point
	Interval  time.Duration
	Days      int
	Years     int
	// Timeout bounds each location's analysis.
	Timeout time.Duration
}

// Scheduler periodically re-analyses watched locations for the current date so their
// latest analyses stay fresh in the store.
type Scheduler struct {
	scheduler *gocron.Scheduler
	analyzer  Analyzer
	cfg       Config
	logger    *slog.Logger
}

// New creates a new Scheduler.
func New(cfg Config, analyzer Analyzer, logger *slog.Logger) *Scheduler {
	if cfg.Interval <= 0 {
		cfg.Interval = 6 * time.Hour
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 2 * time.Minute
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		analyzer:  analyzer,
		cfg:       cfg,
		logger:    logger,
	}
}

// Start schedules the periodic job and starts the underlying scheduler. The first run
// happens immediately.
func (s *Scheduler) Start() error {
	if len(s.cfg.Locations) == 0 {
		s.logger.Info("scheduler: no watch locations configured; nothing to schedule")
		return nil
	}

	_, err := s.scheduler.Every(s.cfg.Interval).SingletonMode().Do(func() {
		s.RunOnce(context.Background())
	})
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// RunOnce analyses every watched location concurrently and returns the number of
// successful analyses.
func (s *Scheduler) RunOnce(ctx context.Context) int {
	s.logger.Info("scheduler: running watch job", "locations", len(s.cfg.Locations))
	today := s.analyzer.Today()

	var (
		wg sync.WaitGroup
		mu sync.Mutex
		ok int
	)
	for _, p := range s.cfg.Locations {
		wg.Add(1)
		go func(p climate.Point) {
			defer wg.Done()

			ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
			defer cancel()

			a, err := s.analyzer.Analyze(ctx, climate.Request{
				Point:      p,
				TargetDate: today,
				DayRadius:  s.cfg.Days,
				YearCount:  s.cfg.Years,
			})
			if err != nil {
				s.logger.Warn("scheduler: analysis failed", "point", p.String(), "reason", climate.Reason(err), "error", err)
				return
			}
			s.logger.Debug("scheduler: analysis stored", "point", p.String(), "id", a.ID)

			mu.Lock()
			ok++
			mu.Unlock()
		}(p)
	}
	wg.Wait()

	s.logger.Info("scheduler: completed watch job", "succeeded", ok, "failed", len(s.cfg.Locations)-ok)
	return ok
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
