package climate

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
)

// Analysis is a completed likelihood analysis as retained by the service.
type Analysis struct {
	ID        string
	CreatedAt time.Time
	Location  string
	Request   Request
	Result    *Result
	Final     FinalStatistics
}

// Store is the contract the in-memory analysis store must satisfy.
type Store interface {
	SaveAnalysis(a Analysis)
	GetAnalysis(id string) (Analysis, error)
	GetLatest() (Analysis, error)
}

// Service orchestrates aggregation, finalisation and retention of analyses.
type Service struct {
	aggregator *Aggregator
	store      Store
	geocoder   Geocoder
	clock      clockwork.Clock
	logger     *slog.Logger
}

// ServiceOption customises a Service.
type ServiceOption func(*Service)

// WithGeocoder names analysed locations using g.
func WithGeocoder(g Geocoder) ServiceOption {
	return func(s *Service) { s.geocoder = g }
}

// WithClock overrides the time source used for analysis timestamps.
func WithClock(c clockwork.Clock) ServiceOption {
	return func(s *Service) { s.clock = c }
}

// WithLogger sets the service logger.
func WithLogger(l *slog.Logger) ServiceOption {
	return func(s *Service) { s.logger = l }
}

// NewService creates a new Service.
func NewService(aggregator *Aggregator, store Store, opts ...ServiceOption) *Service {
	s := &Service{
		aggregator: aggregator,
		store:      store,
		clock:      clockwork.NewRealClock(),
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Analyze runs the multi-year aggregation for req, computes the dataset-wide
// statistics and stores the analysis. On any failure nothing is stored.
func (s *Service) Analyze(ctx context.Context, req Request) (Analysis, error) {
	result, err := s.aggregator.Aggregate(ctx, req)
	if err != nil {
		return Analysis{}, err
	}

	final, err := Finalize(result.Combined)
	if err != nil {
		s.logger.Warn("finalize failed", "point", req.Point.String(), "error", err)
		return Analysis{}, err
	}

	a := Analysis{
		ID:        uuid.NewString(),
		CreatedAt: s.clock.Now().UTC(),
		Location:  s.locationName(ctx, req.Point),
		Request:   req,
		Result:    result,
		Final:     final,
	}
	s.store.SaveAnalysis(a)
	return a, nil
}

// Today returns the current UTC calendar date according to the service clock.
func (s *Service) Today() time.Time {
	return Day(s.clock.Now().UTC())
}

// GetAnalysis delegates to the underlying store.
func (s *Service) GetAnalysis(id string) (Analysis, error) {
	return s.store.GetAnalysis(id)
}

// GetLatest delegates to the underlying store.
func (s *Service) GetLatest() (Analysis, error) {
	return s.store.GetLatest()
}

func (s *Service) locationName(ctx context.Context, p Point) string {
	if s.geocoder == nil {
		return ""
	}
	name, err := s.geocoder.ReverseGeocode(ctx, p)
	if err != nil {
		// Naming failures are not fatal.
		s.logger.Warn("reverse geocode failed", "point", p.String(), "error", err)
		return ""
	}
	return name
}
