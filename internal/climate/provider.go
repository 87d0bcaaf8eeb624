package climate

import (
	"context"
	"fmt"
)

// Point is a geographic coordinate in decimal degrees.
type Point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

func (p Point) String() string {
	return fmt.Sprintf("%.4f,%.4f", p.Lat, p.Lon)
}

// DailyRequest asks a provider for daily values of variables over a window.
type DailyRequest struct {
	Point     Point
	Window    Window
	Variables []string
}

// DailySeries maps a provider variable to its values keyed by YYYYMMDD date.
// Missing cells are absent from the inner map.
type DailySeries map[string]map[string]float64

// Provider abstracts the external climate-data point service.
type Provider interface {
	Name() string
	FetchDaily(ctx context.Context, req DailyRequest) (DailySeries, error)
}

// Geocoder resolves a coordinate into a human-readable place name.
type Geocoder interface {
	ReverseGeocode(ctx context.Context, p Point) (string, error)
}

// Variable binds a provider variable identifier to a table column.
type Variable struct {
	ID     string
	Column Column
}

// Variables is the fixed variable set requested for every window.
var Variables = []Variable{
	{ID: "PRECTOTCORR", Column: ColPrecipitation},
	{ID: "T2M", Column: ColTemperature},
	{ID: "WS2M", Column: ColWindSpeed2m},
	{ID: "WS10M", Column: ColWindSpeed10m},
	{ID: "RH2M", Column: ColRelativeHumidity},
	{ID: "QV2M", Column: ColSpecificHumidity},
}

// VariableIDs returns the identifiers of Variables.
func VariableIDs() []string {
	ids := make([]string, len(Variables))
	for i, v := range Variables {
		ids[i] = v.ID
	}
	return ids
}
