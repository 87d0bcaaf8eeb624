package climate

import (
	"fmt"
	"time"
)

const (
	// DateLayout is the date format accepted at the service boundary.
	DateLayout = "2006/01/02"
	// ProviderDateLayout is the date format exchanged with the data provider.
	ProviderDateLayout = "20060102"
)

// Window is an inclusive date range used to fetch one year's comparison data.
type Window struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Days returns the number of calendar days covered by the window.
func (w Window) Days() int {
	return int(w.End.Sub(w.Start).Hours()/24) + 1
}

// Contains reports whether d falls inside the window.
func (w Window) Contains(d time.Time) bool {
	d = Day(d)
	return !d.Before(w.Start) && !d.After(w.End)
}

// Day truncates t to midnight UTC of its calendar date.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY/MM/DD target date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: use YYYY/MM/DD", s)
	}
	return t.UTC(), nil
}

// DayWindow returns the window spanning radiusDays either side of target.
// A zero radius yields a single-day window.
func DayWindow(target time.Time, radiusDays int) (Window, error) {
	if radiusDays < 0 {
		return Window{}, fmt.Errorf("%w: %d", ErrInvalidRadius, radiusDays)
	}
	d := Day(target)
	return Window{
		Start: d.AddDate(0, 0, -radiusDays),
		End:   d.AddDate(0, 0, radiusDays),
	}, nil
}

// YearSeries returns target's calendar date in each of the yearCount preceding
// years, most recent first. Feb 29 falls back to Feb 28 in non-leap years.
func YearSeries(target time.Time, yearCount int) ([]time.Time, error) {
	if yearCount <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidYearCount, yearCount)
	}

	d := Day(target)
	dates := make([]time.Time, 0, yearCount)
	for i := 1; i <= yearCount; i++ {
		dates = append(dates, sameDayInYear(d, d.Year()-i))
	}
	return dates, nil
}

func sameDayInYear(d time.Time, year int) time.Time {
	day := d.Day()
	if d.Month() == time.February && day == 29 && !isLeap(year) {
		day = 28
	}
	return time.Date(year, d.Month(), day, 0, 0, 0, 0, time.UTC)
}

func isLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}
