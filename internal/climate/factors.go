package climate

import "fmt"

// Factor is a physical quantity classified end-to-end from one table column.
type Factor struct {
	Name       string
	Column     Column
	Categories []Category

	// shortCircuit, when set, may answer the classification without consulting Categories.
	shortCircuit func(series []float64) (Classification, bool)
}

// Classify classifies series against the factor's category table.
func (f Factor) Classify(series []float64) (Classification, error) {
	if len(series) == 0 {
		return Classification{}, fmt.Errorf("%s: %w: classification", f.Name, ErrEmptyInput)
	}
	if f.shortCircuit != nil {
		if c, ok := f.shortCircuit(series); ok {
			return c, nil
		}
	}
	c, err := Classify(series, f.Categories)
	if err != nil {
		return Classification{}, fmt.Errorf("%s: %w", f.Name, err)
	}
	return c, nil
}

// ClassifyTable classifies the factor's column of t.
func (f Factor) ClassifyTable(t *Table) (Classification, error) {
	series, ok := t.Column(f.Column)
	if !ok {
		return Classification{}, fmt.Errorf("%s: missing column %s", f.Name, f.Column)
	}
	return f.Classify(series)
}

// Labels returns the category labels in declaration order.
func (f Factor) Labels() []string {
	labels := make([]string, len(f.Categories))
	for i, c := range f.Categories {
		labels[i] = c.Label
	}
	return labels
}

const noPrecipitation = "None"

var (
	// PrecipitationFactor classifies daily precipitation in mm/day.
	PrecipitationFactor = Factor{
		Name:   "Precipitation",
		Column: ColPrecipitation,
		Categories: []Category{
			{Label: noPrecipitation, Bounds: AtMost(0)},
			{Label: "Low", Bounds: OpenClosed(0, 2)},
			{Label: "Moderate", Bounds: OpenClosed(2, 10)},
			{Label: "High", Bounds: Above(10)},
		},
		shortCircuit: allDry,
	}

	// TemperatureFactor classifies 2 m air temperature in °C.
	TemperatureFactor = Factor{
		Name:   "Temperature",
		Column: ColTemperature,
		Categories: []Category{
			{Label: "Very Hot", Bounds: AtLeast(40)},
			{Label: "Hot", Bounds: Between(35, 40)},
			{Label: "Warm", Bounds: Between(30, 35)},
			{Label: "Moderate", Bounds: Between(20, 30)},
			{Label: "Cool", Bounds: Between(11, 20)},
			{Label: "Cold", Bounds: Open(5, 11)},
			{Label: "Very Cold", Bounds: AtMost(5)},
		},
	}

	// WindSpeedFactor classifies 2 m wind speed in m/s.
	WindSpeedFactor = Factor{
		Name:   "Wind_Speed",
		Column: ColWindSpeed2m,
		Categories: []Category{
			{Label: "Calm", Bounds: Below(3)},
			{Label: "Breezy", Bounds: Between(3, 6)},
			{Label: "Windy", Bounds: Between(6, 10)},
			{Label: "Very Windy", Bounds: AtLeast(10)},
		},
	}

	// HumidityFactor classifies 2 m relative humidity in percent.
	HumidityFactor = Factor{
		Name:   "Relative_Humidity",
		Column: ColRelativeHumidity,
		Categories: []Category{
			{Label: "Comfortable", Bounds: Below(60)},
			{Label: "Humid", Bounds: Between(60, 80)},
			{Label: "Very Uncomfortable", Bounds: AtLeast(80)},
		},
	}

	// HeatIndexFactor classifies the derived heat index in °C.
	HeatIndexFactor = Factor{
		Name:   "Heat_Index",
		Column: ColHeatIndex,
		Categories: []Category{
			{Label: "Safe", Bounds: Below(27)},
			{Label: "Caution", Bounds: Between(27, 32)},
			{Label: "Extreme Caution", Bounds: Between(32, 41)},
			{Label: "Danger", Bounds: Between(41, 54)},
			{Label: "Extreme Danger", Bounds: AtLeast(54)},
		},
	}
)

// Factors returns every tracked factor in reporting order.
func Factors() []Factor {
	return []Factor{
		PrecipitationFactor,
		TemperatureFactor,
		WindSpeedFactor,
		HumidityFactor,
		HeatIndexFactor,
	}
}

func allDry(series []float64) (Classification, bool) {
	for _, v := range series {
		if v != 0 {
			return Classification{}, false
		}
	}
	return Classification{
		Status:       noPrecipitation,
		Probability:  1.0,
		Distribution: Distribution{{Label: noPrecipitation, Probability: 1.0}},
	}, true
}

// Prediction is a factor's classification over one series.
type Prediction struct {
	Factor         string
	Classification Classification
}

// Predict classifies every factor over t.
func Predict(t *Table) ([]Prediction, error) {
	factors := Factors()
	out := make([]Prediction, 0, len(factors))
	for _, f := range factors {
		c, err := f.ClassifyTable(t)
		if err != nil {
			return nil, err
		}
		out = append(out, Prediction{Factor: f.Name, Classification: c})
	}
	return out, nil
}
