package providers

import (
	"context"
	"fmt"
	"math"

	lru "github.com/hashicorp/golang-lru"
	"github.com/kelvins/geocoder"

	"github.com/i474232898/climate-likelihood/internal/climate"
)

// GoogleGeocoder names coordinates through the Google reverse geocoding API.
type GoogleGeocoder struct {
	reverse func(geocoder.Location) ([]geocoder.Address, error)
	cache   *lru.Cache
}

// NewGoogleGeocoder configures the geocoding API key and returns a geocoder caching up
// to maxEntries place names.
func NewGoogleGeocoder(apiKey string, maxEntries int) (*GoogleGeocoder, error) {
	geocoder.ApiKey = apiKey

	c, err := lru.New(maxEntries)
	if err != nil {
		return nil, fmt.Errorf("create geocode cache: %w", err)
	}
	return &GoogleGeocoder{
		reverse: geocoder.GeocodingReverse,
		cache:   c,
	}, nil
}

// ReverseGeocode returns the formatted address closest to p, or "" when none is known.
func (g *GoogleGeocoder) ReverseGeocode(ctx context.Context, p climate.Point) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	// Roughly 100 m resolution.
	key := fmt.Sprintf("%.3f,%.3f", math.Round(p.Lat*1000)/1000, math.Round(p.Lon*1000)/1000)
	if v, ok := g.cache.Get(key); ok {
		return v.(string), nil
	}

	addresses, err := g.reverse(geocoder.Location{Latitude: p.Lat, Longitude: p.Lon})
	if err != nil {
		return "", fmt.Errorf("reverse geocode %s: %w", key, err)
	}
	if len(addresses) == 0 {
		return "", nil
	}

	name := addresses[0].FormattedAddress
	if name != "" {
		g.cache.Add(key, name)
	}
	return name, nil
}
