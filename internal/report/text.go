package report

import (
	"fmt"
	"io"
	"math"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/i474232898/climate-likelihood/internal/climate"
)

// RenderStatistics writes one row per column summary.
func RenderStatistics(w io.Writer, stats []climate.ColumnSummary) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Column", "count", "mean", "std", "min", "25%", "50%", "75%", "max", "range"})
	for _, s := range stats {
		v := s.Summary
		t.AppendRow(table.Row{
			s.Column.Label(), v.Count,
			num(v.Mean), num(v.Std), num(v.Min), num(v.P25), num(v.P50), num(v.P75), num(v.Max), num(v.Range),
		})
	}
	t.SetStyle(table.StyleLight)
	t.Render()
}

// RenderPredictions writes one row per factor with its dominant status.
func RenderPredictions(w io.Writer, preds []climate.Prediction) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Factor", "Status", "Probability", "Distribution"})
	for _, p := range preds {
		c := p.Classification
		t.AppendRow(table.Row{p.Factor, c.Status, num(c.Probability), distribution(c.Distribution)})
	}
	t.SetStyle(table.StyleLight)
	t.Render()
}

// RenderYears writes one row per year and factor.
func RenderYears(w io.Writer, years []climate.YearRecord) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Year", "Window", "Factor", "mean", "min", "max", "Status", "Probability"})
	for _, y := range years {
		window := fmt.Sprintf("%s - %s", y.Window.Start.Format(climate.DateLayout), y.Window.End.Format(climate.DateLayout))
		for _, f := range y.Factors {
			t.AppendRow(table.Row{
				y.Year, window, f.Factor,
				num(f.Summary.Mean), num(f.Summary.Min), num(f.Summary.Max),
				f.Classification.Status, num(f.Classification.Probability),
			})
		}
		t.AppendSeparator()
	}
	t.SetStyle(table.StyleLight)
	t.Render()
}

func num(v float64) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	return fmt.Sprintf("%.2f", v)
}

func distribution(d climate.Distribution) string {
	var s string
	for i, lp := range d.Rounded() {
		if i > 0 {
			s += ", "
		}
		s += fmt.Sprintf("%s=%.2f", lp.Label, lp.Probability)
	}
	return s
}
