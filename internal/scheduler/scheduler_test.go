package scheduler

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/climate-likelihood/internal/climate"
	"github.com/i474232898/climate-likelihood/internal/observability"
)

type recordingAnalyzer struct {
	mu       sync.Mutex
	requests []climate.Request
	failLat  float64
}

func (a *recordingAnalyzer) Analyze(_ context.Context, req climate.Request) (climate.Analysis, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.requests = append(a.requests, req)
	if req.Point.Lat == a.failLat {
		return climate.Analysis{}, climate.ErrTransport
	}
	return climate.Analysis{ID: "id"}, nil
}

func (a *recordingAnalyzer) Today() time.Time {
	return time.Date(2024, time.August, 15, 0, 0, 0, 0, time.UTC)
}

func (a *recordingAnalyzer) count() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.requests)
}

func TestRunOnce(t *testing.T) {
	analyzer := &recordingAnalyzer{failLat: -1}
	s := New(Config{
		Locations: []climate.Point{{Lat: 24.8, Lon: 68.0}, {Lat: -1, Lon: 10}},
		Days:      2,
		Years:     5,
	}, analyzer, observability.DiscardLogger())

	ok := s.RunOnce(context.Background())
	assert.Equal(t, 1, ok)

	require.Len(t, analyzer.requests, 2)
	for _, req := range analyzer.requests {
		assert.Equal(t, analyzer.Today(), req.TargetDate)
		assert.Equal(t, 2, req.DayRadius)
		assert.Equal(t, 5, req.YearCount)
	}
}

func TestStart_NoLocations(t *testing.T) {
	analyzer := &recordingAnalyzer{}
	s := New(Config{}, analyzer, observability.DiscardLogger())

	require.NoError(t, s.Start())
	defer s.Stop()
	assert.Equal(t, 0, analyzer.count())
}

func TestStart_RunsImmediately(t *testing.T) {
	analyzer := &recordingAnalyzer{failLat: 99}
	s := New(Config{
		Locations: []climate.Point{{Lat: 1, Lon: 2}},
		Interval:  time.Hour,
		Days:      1,
		Years:     1,
	}, analyzer, observability.DiscardLogger())

	require.NoError(t, s.Start())
	defer s.Stop()

	assert.Eventually(t, func() bool { return analyzer.count() == 1 }, 2*time.Second, 10*time.Millisecond)
}
