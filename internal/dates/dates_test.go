package dates_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kpatters/wayfarer/backend/internal/dates"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestAddDays_MonthRollover(t *testing.T) {
	got := dates.AddDays(date(2024, time.January, 31), 1)
	assert.Equal(t, date(2024, time.February, 1), got)
}

func TestAddDays_YearRollover(t *testing.T) {
	got := dates.AddDays(date(2023, time.December, 31), 1)
	assert.Equal(t, date(2024, time.January, 1), got)
}

func TestAddDays_LeapYear(t *testing.T) {
	// 2024 is a leap year: Feb 28 + 1 = Feb 29, Feb 29 + 1 = Mar 1.
	assert.Equal(t, date(2024, time.February, 29), dates.AddDays(date(2024, time.February, 28), 1))
	assert.Equal(t, date(2024, time.March, 1), dates.AddDays(date(2024, time.February, 29), 1))

	// 2023 is not: Feb 28 + 1 = Mar 1.
	assert.Equal(t, date(2023, time.March, 1), dates.AddDays(date(2023, time.February, 28), 1))
}

func TestAddDays_Negative(t *testing.T) {
	got := dates.AddDays(date(2024, time.March, 1), -1)
	assert.Equal(t, date(2024, time.February, 29), got)
}

func TestAddDays_RoundTrip(t *testing.T) {
	// addDays(addDays(d, n), -n) == d for a spread of offsets crossing
	// month, year, and leap boundaries.
	d := date(2024, time.February, 29)
	for _, n := range []int{0, 1, -1, 28, 31, 365, 366, -365, 1000, -1000} {
		assert.Equal(t, d, dates.AddDays(dates.AddDays(d, n), -n), "n=%d", n)
	}
}

func TestAddDays_NormalizesTimeOfDay(t *testing.T) {
	// A late-evening timestamp in a western zone must not shift the
	// calendar date during arithmetic.
	loc := time.FixedZone("UTC-8", -8*60*60)
	in := time.Date(2024, time.March, 1, 23, 45, 0, 0, loc)

	got := dates.AddDays(in, 1)

	assert.Equal(t, date(2024, time.March, 2), got)
}

func TestEnumerate_InclusiveRange(t *testing.T) {
	start, end := date(2024, time.March, 1), date(2024, time.March, 5)

	got := dates.Enumerate(start, end)

	require.Len(t, got, 5)
	assert.Equal(t, start, got[0])
	assert.Equal(t, end, got[4])

	// Strictly ascending with no gaps.
	for i := 1; i < len(got); i++ {
		assert.Equal(t, dates.AddDays(got[i-1], 1), got[i], "gap at index %d", i)
	}
}

func TestEnumerate_SingleDay(t *testing.T) {
	d := date(2024, time.July, 4)

	got := dates.Enumerate(d, d)

	require.Len(t, got, 1)
	assert.Equal(t, d, got[0])
}

func TestEnumerate_LengthMatchesCount(t *testing.T) {
	start := date(2024, time.February, 27)
	for n := 0; n < 40; n++ {
		end := dates.AddDays(start, n)
		assert.Len(t, dates.Enumerate(start, end), dates.Count(start, end))
	}
}

func TestEnumerate_StartAfterEnd(t *testing.T) {
	got := dates.Enumerate(date(2024, time.March, 5), date(2024, time.March, 1))
	assert.Empty(t, got, "inverted range should produce no days, not an error")
}

func TestEnumerate_ZeroInputs(t *testing.T) {
	assert.Empty(t, dates.Enumerate(time.Time{}, date(2024, time.March, 1)))
	assert.Empty(t, dates.Enumerate(date(2024, time.March, 1), time.Time{}))
	assert.Empty(t, dates.Enumerate(time.Time{}, time.Time{}))
}

func TestCount(t *testing.T) {
	assert.Equal(t, 1, dates.Count(date(2024, time.March, 1), date(2024, time.March, 1)))
	assert.Equal(t, 5, dates.Count(date(2024, time.March, 1), date(2024, time.March, 5)))
	assert.Equal(t, 0, dates.Count(date(2024, time.March, 5), date(2024, time.March, 1)))
	// Across the Feb 29 boundary in a leap year.
	assert.Equal(t, 31, dates.Count(date(2024, time.February, 15), date(2024, time.March, 16)))
}

func TestSameDay(t *testing.T) {
	morning := time.Date(2024, time.March, 1, 8, 0, 0, 0, time.UTC)
	evening := time.Date(2024, time.March, 1, 22, 30, 0, 0, time.UTC)

	assert.True(t, dates.SameDay(morning, evening))
	assert.False(t, dates.SameDay(morning, date(2024, time.March, 2)))
}
