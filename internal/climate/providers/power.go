package providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"github.com/i474232898/climate-likelihood/internal/climate"
	"github.com/i474232898/climate-likelihood/internal/observability"
)

const (
	// DefaultPowerBaseURL is the NASA POWER daily point endpoint.
	DefaultPowerBaseURL = "https://power.larc.nasa.gov/api/temporal/daily/point"

	defaultFillValue = -999.0
)

// PowerConfig configures the NASA POWER provider.
type PowerConfig struct {
	BaseURL    string
	Community  string
	MaxRetries int
}

// PowerProvider implements climate.Provider for the NASA POWER daily point API.
type PowerProvider struct {
	name      string
	baseURL   string
	community string
	httpCfg   HTTPClientConfig
	circuit   *gobreaker.CircuitBreaker
	metrics   *observability.Metrics
	logger    *slog.Logger
}

// NewPowerProvider creates a NASA POWER provider sharing client for outbound calls.
func NewPowerProvider(client *http.Client, cfg PowerConfig, metrics *observability.Metrics, logger *slog.Logger) *PowerProvider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultPowerBaseURL
	}
	if cfg.Community == "" {
		cfg.Community = "AG"
	}
	if logger == nil {
		logger = observability.DiscardLogger()
	}

	return &PowerProvider{
		name:      "nasa-power",
		baseURL:   cfg.BaseURL,
		community: cfg.Community,
		httpCfg: HTTPClientConfig{
			Client: client,
			Backoff: BackoffConfig{
				MaxRetries:      cfg.MaxRetries,
				InitialInterval: 500 * time.Millisecond,
				MaxInterval:     5 * time.Second,
			},
		},
		circuit: newCircuitBreaker("nasa-power"),
		metrics: metrics,
		logger:  logger,
	}
}

func (p *PowerProvider) Name() string {
	return p.name
}

// powerResponse is the subset of the POWER GeoJSON payload we consume.
type powerResponse struct {
	Header struct {
		FillValue *float64 `json:"fill_value"`
	} `json:"header"`
	Properties *struct {
		Parameter map[string]map[string]float64 `json:"parameter"`
	} `json:"properties"`
}

// FetchDaily requests req.Variables over req.Window at req.Point. Cells carrying the
// payload's fill value are dropped so callers see them as missing.
func (p *PowerProvider) FetchDaily(ctx context.Context, req climate.DailyRequest) (climate.DailySeries, error) {
	buildRequest := func(ctx context.Context) (*http.Request, error) {
		values := url.Values{}
		values.Set("parameters", strings.Join(req.Variables, ","))
		values.Set("community", p.community)
		values.Set("longitude", strconv.FormatFloat(req.Point.Lon, 'f', -1, 64))
		values.Set("latitude", strconv.FormatFloat(req.Point.Lat, 'f', -1, 64))
		values.Set("start", req.Window.Start.Format(climate.ProviderDateLayout))
		values.Set("end", req.Window.End.Format(climate.ProviderDateLayout))
		values.Set("format", "JSON")

		u := fmt.Sprintf("%s?%s", p.baseURL, values.Encode())
		return http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	}

	start := time.Now()
	resp, err := doRequestWithResilience(ctx, p.httpCfg, p.circuit, buildRequest)
	p.metrics.ProviderDuration.WithLabelValues(p.name).Observe(time.Since(start).Seconds())
	if err != nil {
		outcome := "error"
		if errors.Is(err, errCircuitOpen) {
			outcome = "breaker_open"
		}
		p.metrics.ProviderRequests.WithLabelValues(p.name, outcome).Inc()
		p.logger.Warn("provider request failed", "provider", p.name, "point", req.Point.String(), "error", err)
		return nil, fmt.Errorf("%w: %s: %v", climate.ErrTransport, p.name, err)
	}
	defer resp.Body.Close()
	p.metrics.ProviderRequests.WithLabelValues(p.name, "success").Inc()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", climate.ErrTransport, err)
	}
	return decodePower(body)
}

func decodePower(body []byte) (climate.DailySeries, error) {
	if len(strings.TrimSpace(string(body))) == 0 {
		return climate.DailySeries{}, nil
	}

	var payload powerResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", climate.ErrMalformedResponse, err)
	}
	if payload.Properties == nil || payload.Properties.Parameter == nil {
		return nil, fmt.Errorf("%w: missing properties.parameter", climate.ErrMalformedResponse)
	}

	fill := defaultFillValue
	if payload.Header.FillValue != nil {
		fill = *payload.Header.FillValue
	}

	series := make(climate.DailySeries, len(payload.Properties.Parameter))
	for variable, byDate := range payload.Properties.Parameter {
		cleaned := make(map[string]float64, len(byDate))
		for date, v := range byDate {
			if v == fill {
				continue
			}
			cleaned[date] = v
		}
		series[variable] = cleaned
	}
	return series, nil
}
