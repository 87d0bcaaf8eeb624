package report

import (
	"fmt"
	"io"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/i474232898/climate-likelihood/internal/climate"
)

// DataFrame converts t into a gota data frame with a Date column followed by one
// float column per table column, named by label.
func DataFrame(t *climate.Table) dataframe.DataFrame {
	dates := make([]string, t.Len())
	for i, d := range t.Dates() {
		dates[i] = d.Format(climate.DateLayout)
	}

	cols := []series.Series{series.New(dates, series.String, dateKey)}
	for _, c := range t.Columns() {
		values, _ := t.Column(c)
		cols = append(cols, series.New(values, series.Float, c.Label()))
	}
	return dataframe.New(cols...)
}

// WriteCSV writes t as CSV with a header row.
func WriteCSV(w io.Writer, t *climate.Table) error {
	df := DataFrame(t)
	if df.Err != nil {
		return fmt.Errorf("build data frame: %w", df.Err)
	}
	if err := df.WriteCSV(w); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}
