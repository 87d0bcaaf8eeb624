package store

import (
	"fmt"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/climate-likelihood/internal/climate"
)

func analysisAt(id string, at time.Time) climate.Analysis {
	return climate.Analysis{ID: id, CreatedAt: at}
}

func TestMemoryStore_SaveAndGet(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2024, time.August, 15, 12, 0, 0, 0, time.UTC))
	s := NewMemoryStore(10, time.Hour, clock)

	s.SaveAnalysis(analysisAt("a", clock.Now()))
	s.SaveAnalysis(analysisAt("b", clock.Now()))

	got, err := s.GetAnalysis("a")
	require.NoError(t, err)
	assert.Equal(t, "a", got.ID)

	latest, err := s.GetLatest()
	require.NoError(t, err)
	assert.Equal(t, "b", latest.ID)
}

func TestMemoryStore_EmptyReturnsNotFound(t *testing.T) {
	s := NewMemoryStore(10, 0, nil)

	_, err := s.GetLatest()
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.GetAnalysis("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_RetentionByCount(t *testing.T) {
	clock := clockwork.NewFakeClock()
	s := NewMemoryStore(2, 0, clock)

	for i := 0; i < 3; i++ {
		s.SaveAnalysis(analysisAt(fmt.Sprintf("a%d", i), clock.Now()))
	}

	assert.Equal(t, 2, s.Len())
	_, err := s.GetAnalysis("a0")
	assert.ErrorIs(t, err, ErrNotFound, "oldest analysis should be evicted")

	got, err := s.GetAnalysis("a2")
	require.NoError(t, err)
	assert.Equal(t, "a2", got.ID)
}

func TestMemoryStore_RetentionByAge(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2024, time.August, 15, 0, 0, 0, 0, time.UTC))
	s := NewMemoryStore(0, time.Hour, clock)

	s.SaveAnalysis(analysisAt("old", clock.Now()))
	clock.Advance(45 * time.Minute)
	s.SaveAnalysis(analysisAt("new", clock.Now()))
	clock.Advance(30 * time.Minute)

	_, err := s.GetAnalysis("old")
	assert.ErrorIs(t, err, ErrNotFound)

	got, err := s.GetAnalysis("new")
	require.NoError(t, err)
	assert.Equal(t, "new", got.ID)

	clock.Advance(time.Hour)
	_, err = s.GetLatest()
	assert.ErrorIs(t, err, ErrNotFound, "everything should have expired")
}

func TestMemoryStore_ReportsSize(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2024, time.August, 15, 12, 0, 0, 0, time.UTC))
	s := NewMemoryStore(2, time.Hour, clock)
	gauge := prometheus.NewGauge(prometheus.GaugeOpts{Name: "stored"})
	s.ReportSizeTo(gauge)

	for i := 0; i < 3; i++ {
		s.SaveAnalysis(analysisAt(fmt.Sprintf("a%d", i), clock.Now()))
	}
	assert.Equal(t, 2.0, testutil.ToFloat64(gauge))

	clock.Advance(2 * time.Hour)
	_, err := s.GetLatest()
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 0.0, testutil.ToFloat64(gauge))
}
