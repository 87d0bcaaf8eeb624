package climate

import (
	"fmt"
	"time"
)

// Column names a numeric column of an observation table.
type Column string

const (
	ColPrecipitation    Column = "Precipitation"
	ColTemperature      Column = "Temperature"
	ColWindSpeed2m      Column = "WindSpeed2m"
	ColWindSpeed10m     Column = "WindSpeed10m"
	ColRelativeHumidity Column = "RelativeHumidity"
	ColSpecificHumidity Column = "SpecificHumidity"
	ColHeatIndex        Column = "HeatIndex"
)

// ObservedColumns are the columns filled from the data provider, in table order.
var ObservedColumns = []Column{
	ColPrecipitation,
	ColTemperature,
	ColWindSpeed2m,
	ColWindSpeed10m,
	ColRelativeHumidity,
	ColSpecificHumidity,
}

// Label returns the human-readable column label, including units.
func (c Column) Label() string {
	switch c {
	case ColPrecipitation:
		return "Precipitation (mm/day)"
	case ColTemperature:
		return "Temperature to 2m (°C)"
	case ColWindSpeed2m:
		return "Wind speed to 2m (m/s)"
	case ColWindSpeed10m:
		return "Wind speed to 10m (m/s)"
	case ColRelativeHumidity:
		return "Relative humidity 2m (%)"
	case ColSpecificHumidity:
		return "Specific humidity 2m (g/kg)"
	case ColHeatIndex:
		return "Heat Index (°C)"
	default:
		return string(c)
	}
}

// Table is a date-ordered set of daily records with named numeric columns.
// Rows are sorted by date ascending.
type Table struct {
	dates   []time.Time
	order   []Column
	columns map[Column][]float64
}

// NewTable creates a table with the given row dates and no columns.
func NewTable(dates []time.Time) *Table {
	return &Table{
		dates:   dates,
		columns: make(map[Column][]float64),
	}
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.dates)
}

// Dates returns the row dates.
func (t *Table) Dates() []time.Time {
	return t.dates
}

// Columns returns the column names in insertion order.
func (t *Table) Columns() []Column {
	return t.order
}

// Has reports whether the column exists.
func (t *Table) Has(c Column) bool {
	_, ok := t.columns[c]
	return ok
}

// Column returns the values of c.
func (t *Table) Column(c Column) ([]float64, bool) {
	v, ok := t.columns[c]
	return v, ok
}

// SetColumn adds or replaces a column. The value count must match the row count.
func (t *Table) SetColumn(c Column, values []float64) error {
	if len(values) != len(t.dates) {
		return fmt.Errorf("%w: column %s has %d values for %d rows", ErrLengthMismatch, c, len(values), len(t.dates))
	}
	if _, ok := t.columns[c]; !ok {
		t.order = append(t.order, c)
	}
	t.columns[c] = values
	return nil
}

// Row is a single dated record.
type Row struct {
	Date   time.Time
	Values map[Column]float64
}

// Rows returns the table as a slice of records.
func (t *Table) Rows() []Row {
	rows := make([]Row, len(t.dates))
	for i, d := range t.dates {
		values := make(map[Column]float64, len(t.order))
		for _, c := range t.order {
			values[c] = t.columns[c][i]
		}
		rows[i] = Row{Date: d, Values: values}
	}
	return rows
}

// Concat appends tables in order. All tables must carry the same column set.
func Concat(tables ...*Table) (*Table, error) {
	if len(tables) == 0 {
		return NewTable(nil), nil
	}

	order := tables[0].order
	total := 0
	for i, t := range tables {
		if !sameColumns(order, t) {
			return nil, fmt.Errorf("%w: table %d", ErrColumnMismatch, i)
		}
		total += t.Len()
	}

	dates := make([]time.Time, 0, total)
	for _, t := range tables {
		dates = append(dates, t.dates...)
	}

	out := NewTable(dates)
	for _, c := range order {
		values := make([]float64, 0, total)
		for _, t := range tables {
			values = append(values, t.columns[c]...)
		}
		if err := out.SetColumn(c, values); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func sameColumns(order []Column, t *Table) bool {
	if len(order) != len(t.order) {
		return false
	}
	for _, c := range order {
		if !t.Has(c) {
			return false
		}
	}
	return true
}
