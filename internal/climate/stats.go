package climate

import (
	"fmt"
	"math"
	"sort"
)

// Summary holds descriptive statistics for one numeric series, rounded to two decimals.
type Summary struct {
	Count int
	Mean  float64
	Std   float64
	Min   float64
	P25   float64
	P50   float64
	P75   float64
	Max   float64
	Range float64
}

// ColumnStats computes descriptive statistics for series.
//
// Std is the sample standard deviation (zero for a single value). Quartiles interpolate
// linearly between closest ranks. NaN inputs propagate into every statistic.
func ColumnStats(series []float64) (Summary, error) {
	n := len(series)
	if n == 0 {
		return Summary{}, fmt.Errorf("%w: column statistics", ErrEmptyInput)
	}

	var sum float64
	for _, v := range series {
		sum += v
	}
	mean := sum / float64(n)

	var std float64
	if n > 1 {
		var sq float64
		for _, v := range series {
			d := v - mean
			sq += d * d
		}
		std = math.Sqrt(sq / float64(n-1))
	}

	sorted := make([]float64, n)
	copy(sorted, series)
	sort.Float64s(sorted)

	minV, maxV := sorted[0], sorted[n-1]
	if hasNaN(series) {
		minV, maxV = math.NaN(), math.NaN()
	}

	s := Summary{
		Count: n,
		Mean:  round2(mean),
		Std:   round2(std),
		Min:   round2(minV),
		P25:   round2(quantile(sorted, 0.25)),
		P50:   round2(quantile(sorted, 0.50)),
		P75:   round2(quantile(sorted, 0.75)),
		Max:   round2(maxV),
	}
	s.Range = round2(s.Max - s.Min)
	return s, nil
}

// ColumnSummary pairs a column with its statistics.
type ColumnSummary struct {
	Column  Column
	Summary Summary
}

// TableStats computes ColumnStats for every column of t, in column order.
func TableStats(t *Table) ([]ColumnSummary, error) {
	if t.Len() == 0 {
		return nil, fmt.Errorf("%w: table statistics", ErrEmptyInput)
	}

	out := make([]ColumnSummary, 0, len(t.Columns()))
	for _, c := range t.Columns() {
		values, _ := t.Column(c)
		s, err := ColumnStats(values)
		if err != nil {
			return nil, fmt.Errorf("column %s: %w", c, err)
		}
		out = append(out, ColumnSummary{Column: c, Summary: s})
	}
	return out, nil
}

// quantile expects sorted input.
func quantile(sorted []float64, p float64) float64 {
	if hasNaN(sorted) {
		return math.NaN()
	}
	pos := p * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo] + (sorted[hi]-sorted[lo])*frac
}

func hasNaN(values []float64) bool {
	for _, v := range values {
		if math.IsNaN(v) {
			return true
		}
	}
	return false
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
