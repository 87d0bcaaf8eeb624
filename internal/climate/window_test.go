package climate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDayWindow(t *testing.T) {
	w, err := DayWindow(date(2024, time.August, 15), 2)
	require.NoError(t, err)

	assert.Equal(t, date(2024, time.August, 13), w.Start)
	assert.Equal(t, date(2024, time.August, 17), w.End)
	assert.Equal(t, 5, w.Days())
	assert.True(t, w.Contains(date(2024, time.August, 15)))
	assert.True(t, w.Contains(time.Date(2024, time.August, 17, 23, 59, 0, 0, time.UTC)))
	assert.False(t, w.Contains(date(2024, time.August, 18)))
}

func TestDayWindow_ZeroRadius(t *testing.T) {
	w, err := DayWindow(date(2024, time.August, 15), 0)
	require.NoError(t, err)
	assert.Equal(t, w.Start, w.End)
	assert.Equal(t, 1, w.Days())
}

func TestDayWindow_CrossesYearBoundary(t *testing.T) {
	w, err := DayWindow(date(2023, time.January, 1), 2)
	require.NoError(t, err)
	assert.Equal(t, date(2022, time.December, 30), w.Start)
	assert.Equal(t, date(2023, time.January, 3), w.End)
}

func TestDayWindow_NegativeRadius(t *testing.T) {
	_, err := DayWindow(date(2024, time.August, 15), -1)
	assert.ErrorIs(t, err, ErrInvalidRadius)
}

func TestYearSeries(t *testing.T) {
	dates, err := YearSeries(date(2024, time.August, 15), 3)
	require.NoError(t, err)

	assert.Equal(t, []time.Time{
		date(2023, time.August, 15),
		date(2022, time.August, 15),
		date(2021, time.August, 15),
	}, dates)
}

func TestYearSeries_LeapDayFallsBack(t *testing.T) {
	dates, err := YearSeries(date(2024, time.February, 29), 4)
	require.NoError(t, err)

	assert.Equal(t, []time.Time{
		date(2023, time.February, 28),
		date(2022, time.February, 28),
		date(2021, time.February, 28),
		date(2020, time.February, 29),
	}, dates)
}

func TestYearSeries_InvalidCount(t *testing.T) {
	for _, n := range []int{0, -3} {
		_, err := YearSeries(date(2024, time.August, 15), n)
		assert.ErrorIs(t, err, ErrInvalidYearCount)
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024/08/15")
	require.NoError(t, err)
	assert.Equal(t, date(2024, time.August, 15), d)

	_, err = ParseDate("2024-08-15")
	assert.Error(t, err)
}
