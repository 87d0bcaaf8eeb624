package report

import (
	"math"

	"github.com/i474232898/climate-likelihood/internal/climate"
)

// SummaryView is the wire form of climate.Summary. Undefined statistics encode as null.
type SummaryView struct {
	Count int      `json:"count"`
	Mean  *float64 `json:"mean"`
	Std   *float64 `json:"std"`
	Min   *float64 `json:"min"`
	P25   *float64 `json:"25%"`
	P50   *float64 `json:"50%"`
	P75   *float64 `json:"75%"`
	Max   *float64 `json:"max"`
	Range *float64 `json:"range"`
}

func NewSummaryView(s climate.Summary) SummaryView {
	return SummaryView{
		Count: s.Count,
		Mean:  nullable(s.Mean),
		Std:   nullable(s.Std),
		Min:   nullable(s.Min),
		P25:   nullable(s.P25),
		P50:   nullable(s.P50),
		P75:   nullable(s.P75),
		Max:   nullable(s.Max),
		Range: nullable(s.Range),
	}
}

// PredictionView is the wire form of a classification, rounded to two decimals.
type PredictionView struct {
	Probability  float64              `json:"Probability"`
	Status       string               `json:"Status"`
	Distribution climate.Distribution `json:"Distribution"`
}

func NewPredictionView(c climate.Classification) PredictionView {
	return PredictionView{
		Probability:  math.Round(c.Probability*100) / 100,
		Status:       c.Status,
		Distribution: c.Distribution.Rounded(),
	}
}

// FactorView merges a factor's statistics and prediction into one object.
type FactorView struct {
	SummaryView
	PredictionView
}

func NewFactorView(r climate.FactorReport) FactorView {
	return FactorView{
		SummaryView:    NewSummaryView(r.Summary),
		PredictionView: NewPredictionView(r.Classification),
	}
}

func nullable(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
