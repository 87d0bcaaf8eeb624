package report

import (
	"github.com/i474232898/climate-likelihood/internal/climate"
)

const dateKey = "Date"

// RequestView echoes the analysed request.
type RequestView struct {
	TargetDate string  `json:"target_date"`
	Lat        float64 `json:"lat"`
	Lon        float64 `json:"lon"`
	Days       int     `json:"days"`
	Years      int     `json:"years"`
}

// Document is the full analysis: dataset-wide statistics and predictions.
type Document struct {
	ID          string      `json:"id"`
	Location    string      `json:"location,omitempty"`
	Request     RequestView `json:"request"`
	Statistics  Object      `json:"Statistics"`
	Predictions Object      `json:"Predictions"`
	DataFrame   []Object    `json:"DataFrame,omitempty"`
}

// Full builds the full document for a. Raw rows are included when includeRaw is set.
func Full(a climate.Analysis, includeRaw bool) Document {
	doc := Document{
		ID:       a.ID,
		Location: a.Location,
		Request: RequestView{
			TargetDate: a.Request.TargetDate.Format(climate.DateLayout),
			Lat:        a.Request.Point.Lat,
			Lon:        a.Request.Point.Lon,
			Days:       a.Request.DayRadius,
			Years:      a.Request.YearCount,
		},
		Statistics:  make(Object, 0, len(a.Final.Statistics)),
		Predictions: make(Object, 0, len(a.Final.Predictions)),
	}

	for _, s := range a.Final.Statistics {
		doc.Statistics = append(doc.Statistics, Field{Key: s.Column.Label(), Value: NewSummaryView(s.Summary)})
	}
	for _, p := range a.Final.Predictions {
		doc.Predictions = append(doc.Predictions, Field{Key: p.Factor, Value: NewPredictionView(p.Classification)})
	}
	if includeRaw && a.Result != nil {
		doc.DataFrame = Rows(a.Result.Combined)
	}
	return doc
}

// Yearly builds one object per analysed year, most recent first.
func Yearly(a climate.Analysis, includeRaw bool) []Object {
	if a.Result == nil {
		return []Object{}
	}

	out := make([]Object, 0, len(a.Result.Years))
	for _, y := range a.Result.Years {
		obj := Object{
			{Key: "Year", Value: y.Year},
			{Key: dateKey, Value: y.Date.Format(climate.DateLayout)},
			{Key: "Start", Value: y.Window.Start.Format(climate.DateLayout)},
			{Key: "End", Value: y.Window.End.Format(climate.DateLayout)},
		}
		for _, f := range y.Factors {
			obj = append(obj, Field{Key: f.Factor, Value: NewFactorView(f)})
		}
		if includeRaw {
			obj = append(obj, Field{Key: "DataFrame", Value: Rows(y.Table)})
		}
		out = append(out, obj)
	}
	return out
}

// Rows renders t as one object per day keyed by column label.
func Rows(t *climate.Table) []Object {
	if t == nil {
		return []Object{}
	}

	cols := t.Columns()
	out := make([]Object, 0, t.Len())
	for _, r := range t.Rows() {
		obj := make(Object, 0, len(cols)+1)
		obj = append(obj, Field{Key: dateKey, Value: r.Date.Format(climate.DateLayout)})
		for _, c := range cols {
			obj = append(obj, Field{Key: c.Label(), Value: nullable(r.Values[c])})
		}
		out = append(out, obj)
	}
	return out
}
