package store

import (
	"errors"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/i474232898/climate-likelihood/internal/climate"
)

var (
	// ErrNotFound is returned when no analysis matches the lookup.
	ErrNotFound = errors.New("analysis not found")
)

// MemoryStore is a concurrency-safe in-memory store of completed analyses.
type MemoryStore struct {
	mu sync.RWMutex

	// history is ordered by insertion, oldest first
	history []climate.Analysis
	byID    map[string]int

	// retention configuration
	maxHistory int           // max number of analyses retained
	maxAge     time.Duration // optional max age of analyses
	clock      clockwork.Clock

	size prometheus.Gauge
}

// NewMemoryStore creates a new MemoryStore with optional limits.
// If maxHistory is <= 0, it is treated as unlimited; likewise maxAge.
func NewMemoryStore(maxHistory int, maxAge time.Duration, clock clockwork.Clock) *MemoryStore {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &MemoryStore{
		byID:       make(map[string]int),
		maxHistory: maxHistory,
		maxAge:     maxAge,
		clock:      clock,
	}
}

// ReportSizeTo keeps g set to the number of retained analyses.
func (s *MemoryStore) ReportSizeTo(g prometheus.Gauge) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.size = g
	g.Set(float64(len(s.history)))
}

// SaveAnalysis appends an analysis and enforces retention.
func (s *MemoryStore) SaveAnalysis(a climate.Analysis) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.history = append(s.history, a)

	// Enforce retention by count.
	if s.maxHistory > 0 && len(s.history) > s.maxHistory {
		over := len(s.history) - s.maxHistory
		s.history = s.history[over:]
	}

	s.expireLocked()
	s.reindexLocked()
}

// GetAnalysis returns the analysis with the given ID.
func (s *MemoryStore) GetAnalysis(id string) (climate.Analysis, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.expireLocked()
	s.reindexLocked()

	i, ok := s.byID[id]
	if !ok {
		return climate.Analysis{}, ErrNotFound
	}
	return s.history[i], nil
}

// GetLatest returns the most recently saved analysis.
func (s *MemoryStore) GetLatest() (climate.Analysis, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.expireLocked()
	s.reindexLocked()

	if len(s.history) == 0 {
		return climate.Analysis{}, ErrNotFound
	}
	return s.history[len(s.history)-1], nil
}

// Len returns the number of retained analyses.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.history)
}

// expireLocked drops analyses older than maxAge. Callers hold mu.
func (s *MemoryStore) expireLocked() {
	if s.maxAge <= 0 {
		return
	}
	cutoff := s.clock.Now().Add(-s.maxAge)
	i := 0
	for ; i < len(s.history); i++ {
		if !s.history[i].CreatedAt.Before(cutoff) {
			break
		}
	}
	if i > 0 {
		s.history = s.history[i:]
	}
}

func (s *MemoryStore) reindexLocked() {
	s.byID = make(map[string]int, len(s.history))
	for i, a := range s.history {
		s.byID[a.ID] = i
	}
	if s.size != nil {
		s.size.Set(float64(len(s.history)))
	}
}
