package report

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/i474232898/climate-likelihood/internal/climate"
)

// RenderChart writes an HTML page with one bar chart per factor showing the pooled
// category distribution of the analysis.
func RenderChart(w io.Writer, a climate.Analysis) error {
	page := components.NewPage()
	page.PageTitle = "Climate likelihood"

	subtitle := fmt.Sprintf("%s, %s ± %d days over %d years",
		a.Request.Point.String(),
		a.Request.TargetDate.Format(climate.DateLayout),
		a.Request.DayRadius,
		a.Request.YearCount,
	)
	if a.Location != "" {
		subtitle = a.Location + " - " + subtitle
	}

	for _, p := range a.Final.Predictions {
		dist := p.Classification.Distribution.Rounded()
		labels := make([]string, len(dist))
		items := make([]opts.BarData, len(dist))
		for i, lp := range dist {
			labels[i] = lp.Label
			items[i] = opts.BarData{Value: lp.Probability}
		}

		bar := charts.NewBar()
		bar.SetGlobalOptions(charts.WithTitleOpts(opts.Title{
			Title:    fmt.Sprintf("%s: %s", p.Factor, p.Classification.Status),
			Subtitle: subtitle,
		}))
		bar.SetXAxis(labels).AddSeries("Probability", items)
		page.AddCharts(bar)
	}

	return page.Render(w)
}
