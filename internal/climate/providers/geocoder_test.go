package providers

import (
	"context"
	"errors"
	"testing"

	lru "github.com/hashicorp/golang-lru"
	"github.com/kelvins/geocoder"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/climate-likelihood/internal/climate"
)

func testGeocoder(t *testing.T, reverse func(geocoder.Location) ([]geocoder.Address, error)) *GoogleGeocoder {
	t.Helper()
	c, err := lru.New(8)
	require.NoError(t, err)
	return &GoogleGeocoder{reverse: reverse, cache: c}
}

func TestGoogleGeocoder_ReverseGeocodeCaches(t *testing.T) {
	calls := 0
	g := testGeocoder(t, func(loc geocoder.Location) ([]geocoder.Address, error) {
		calls++
		assert.Equal(t, 24.8, loc.Latitude)
		return []geocoder.Address{{FormattedAddress: "Thatta, Sindh, Pakistan"}}, nil
	})

	p := climate.Point{Lat: 24.8, Lon: 68.0}
	name, err := g.ReverseGeocode(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, "Thatta, Sindh, Pakistan", name)

	_, err = g.ReverseGeocode(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestGoogleGeocoder_NoResults(t *testing.T) {
	g := testGeocoder(t, func(geocoder.Location) ([]geocoder.Address, error) {
		return nil, nil
	})

	name, err := g.ReverseGeocode(context.Background(), climate.Point{})
	require.NoError(t, err)
	assert.Empty(t, name)
}

func TestGoogleGeocoder_Error(t *testing.T) {
	g := testGeocoder(t, func(geocoder.Location) ([]geocoder.Address, error) {
		return nil, errors.New("quota exceeded")
	})

	_, err := g.ReverseGeocode(context.Background(), climate.Point{Lat: 1, Lon: 2})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quota exceeded")
}
