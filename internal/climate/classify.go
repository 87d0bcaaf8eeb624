package climate

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// Interval is a range on the real line with independently open or closed ends.
type Interval struct {
	Min          float64
	Max          float64
	MinInclusive bool
	MaxInclusive bool
}

// Contains reports whether v lies inside the interval. NaN is never contained.
func (i Interval) Contains(v float64) bool {
	if i.MinInclusive {
		if v < i.Min {
			return false
		}
	} else if !(v > i.Min) {
		return false
	}
	if i.MaxInclusive {
		return v <= i.Max
	}
	return v < i.Max
}

func (i Interval) String() string {
	lb, rb := "(", ")"
	if i.MinInclusive {
		lb = "["
	}
	if i.MaxInclusive {
		rb = "]"
	}
	return fmt.Sprintf("%s%g, %g%s", lb, i.Min, i.Max, rb)
}

// AtLeast is [x, +Inf).
func AtLeast(x float64) Interval {
	return Interval{Min: x, Max: math.Inf(1), MinInclusive: true}
}

// Above is (x, +Inf).
func Above(x float64) Interval {
	return Interval{Min: x, Max: math.Inf(1)}
}

// Below is (-Inf, x).
func Below(x float64) Interval {
	return Interval{Min: math.Inf(-1), Max: x}
}

// AtMost is (-Inf, x].
func AtMost(x float64) Interval {
	return Interval{Min: math.Inf(-1), Max: x, MaxInclusive: true}
}

// Between is [lo, hi).
func Between(lo, hi float64) Interval {
	return Interval{Min: lo, Max: hi, MinInclusive: true}
}

// OpenClosed is (lo, hi].
func OpenClosed(lo, hi float64) Interval {
	return Interval{Min: lo, Max: hi, MaxInclusive: true}
}

// Open is (lo, hi).
func Open(lo, hi float64) Interval {
	return Interval{Min: lo, Max: hi}
}

// Category is a labelled predicate over a factor's native units.
type Category struct {
	Label  string
	Bounds Interval
}

// LabelProbability is one entry of a classification distribution.
type LabelProbability struct {
	Label       string
	Probability float64
}

// Distribution is an ordered label→probability mapping. Order follows the
// category table it was computed from.
type Distribution []LabelProbability

// Get returns the probability recorded for label.
func (d Distribution) Get(label string) (float64, bool) {
	for _, lp := range d {
		if lp.Label == label {
			return lp.Probability, true
		}
	}
	return 0, false
}

// Sum returns the total probability mass.
func (d Distribution) Sum() float64 {
	var s float64
	for _, lp := range d {
		s += lp.Probability
	}
	return s
}

// Rounded returns a copy with every probability rounded to two decimals.
func (d Distribution) Rounded() Distribution {
	out := make(Distribution, len(d))
	for i, lp := range d {
		out[i] = LabelProbability{Label: lp.Label, Probability: round2(lp.Probability)}
	}
	return out
}

// MarshalJSON encodes the distribution as a JSON object, preserving category order.
func (d Distribution) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, lp := range d {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(lp.Label)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.WriteString(strconv.FormatFloat(lp.Probability, 'f', -1, 64))
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Classification is the dominant category of a series plus the full distribution.
type Classification struct {
	Status       string
	Probability  float64
	Distribution Distribution
}

// Classify assigns each value of series to the categories and returns the empirical
// probability of each. The dominant category is the one with the highest probability;
// on ties the category declared first wins.
//
// Categories are expected to be mutually exclusive and exhaustive. A value matched by no
// category yields ErrUnclassifiable.
func Classify(series []float64, categories []Category) (Classification, error) {
	if len(series) == 0 {
		return Classification{}, fmt.Errorf("%w: classification", ErrEmptyInput)
	}
	if len(categories) == 0 {
		return Classification{}, fmt.Errorf("classify: no categories")
	}

	for _, v := range series {
		if !matchesAny(v, categories) {
			return Classification{}, fmt.Errorf("%w: value %v", ErrUnclassifiable, v)
		}
	}

	total := float64(len(series))
	dist := make(Distribution, len(categories))
	best := 0
	for i, c := range categories {
		count := 0
		for _, v := range series {
			if c.Bounds.Contains(v) {
				count++
			}
		}
		dist[i] = LabelProbability{Label: c.Label, Probability: float64(count) / total}
		if dist[i].Probability > dist[best].Probability {
			best = i
		}
	}

	return Classification{
		Status:       dist[best].Label,
		Probability:  dist[best].Probability,
		Distribution: dist,
	}, nil
}

func matchesAny(v float64, categories []Category) bool {
	for _, c := range categories {
		if c.Bounds.Contains(v) {
			return true
		}
	}
	return false
}
