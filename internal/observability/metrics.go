package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "climate_likelihood"

// Metrics holds the Prometheus collectors for provider calls, caching and aggregation.
type Metrics struct {
	ProviderRequests *prometheus.CounterVec   // labels: provider, outcome={success,error,breaker_open}
	ProviderDuration *prometheus.HistogramVec // labels: provider
	CacheLookups     *prometheus.CounterVec   // labels: result={hit,miss}

	Aggregations        *prometheus.CounterVec // labels: outcome={success,transport,empty_input,...}
	AggregationDuration prometheus.Histogram
	YearsFetched        prometheus.Counter

	StoredAnalyses prometheus.Gauge
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		ProviderRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "provider_requests_total",
			Help:      "Data provider requests by provider and outcome.",
		}, []string{"provider", "outcome"}),
		ProviderDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "provider_request_duration_seconds",
			Help:      "Data provider request duration in seconds.",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20},
		}, []string{"provider"}),
		CacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "provider_cache_lookups_total",
			Help:      "Provider response cache lookups by result.",
		}, []string{"result"}),
		Aggregations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "aggregations_total",
			Help:      "Multi-year aggregations by outcome.",
		}, []string{"outcome"}),
		AggregationDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "aggregation_duration_seconds",
			Help:      "Duration of a complete multi-year aggregation.",
			Buckets:   []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60},
		}),
		YearsFetched: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "years_fetched_total",
			Help:      "Yearly windows fetched and processed.",
		}),
		StoredAnalyses: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "stored_analyses",
			Help:      "Analyses currently retained in memory.",
		}),
	}

	reg.MustRegister(
		m.ProviderRequests,
		m.ProviderDuration,
		m.CacheLookups,
		m.Aggregations,
		m.AggregationDuration,
		m.YearsFetched,
		m.StoredAnalyses,
	)

	return m
}

// NewMetricsForTesting registers the collectors with a fresh registry so tests can
// construct as many as they need.
func NewMetricsForTesting() *Metrics {
	return NewMetrics(prometheus.NewRegistry())
}
