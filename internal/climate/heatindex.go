package climate

import "fmt"

// Rothfusz regression coefficients (°F, %RH).
const (
	hiC1 = -42.379
	hiC2 = 2.04901523
	hiC3 = 10.14333127
	hiC4 = -0.22475541
	hiC5 = -0.00683783
	hiC6 = -0.05481717
	hiC7 = 0.00122874
	hiC8 = 0.00085282
	hiC9 = -0.00000199
)

// HeatIndex returns the apparent temperature in °C for an air temperature in °C and
// a relative humidity in percent, using the Rothfusz regression.
//
// The regression is only meaningful above roughly 26.7 °C; below that the result is
// an extrapolation and is returned unchanged.
func HeatIndex(tempC, relHumidity float64) float64 {
	f := tempC*9/5 + 32
	r := relHumidity

	hi := hiC1 +
		hiC2*f +
		hiC3*r +
		hiC4*f*r +
		hiC5*f*f +
		hiC6*r*r +
		hiC7*f*f*r +
		hiC8*f*r*r +
		hiC9*f*f*r*r

	return (hi - 32) * 5 / 9
}

// HeatIndexSeries applies HeatIndex element-wise.
func HeatIndexSeries(tempC, relHumidity []float64) ([]float64, error) {
	if len(tempC) != len(relHumidity) {
		return nil, fmt.Errorf("%w: %d temperatures, %d humidities", ErrLengthMismatch, len(tempC), len(relHumidity))
	}
	out := make([]float64, len(tempC))
	for i := range tempC {
		out[i] = HeatIndex(tempC[i], relHumidity[i])
	}
	return out, nil
}

// DeriveHeatIndex adds the HeatIndex column computed from Temperature and RelativeHumidity.
func DeriveHeatIndex(t *Table) error {
	temp, ok := t.Column(ColTemperature)
	if !ok {
		return fmt.Errorf("derive heat index: missing column %s", ColTemperature)
	}
	rh, ok := t.Column(ColRelativeHumidity)
	if !ok {
		return fmt.Errorf("derive heat index: missing column %s", ColRelativeHumidity)
	}

	hi, err := HeatIndexSeries(temp, rh)
	if err != nil {
		return fmt.Errorf("derive heat index: %w", err)
	}
	return t.SetColumn(ColHeatIndex, hi)
}
