package recurring

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestShouldFireInMonth(t *testing.T) {
	monthly := &Rule{DayOfMonth: 25, IntervalMonths: 1, CreatedAt: date(2025, time.January, 10)}
	quarterly := &Rule{DayOfMonth: 1, IntervalMonths: 3, CreatedAt: date(2025, time.February, 1)}

	tests := []struct {
		name  string
		rule  *Rule
		year  int
		month time.Month
		want  bool
	}{
		{"monthly fires every month", monthly, 2025, time.March, true},
		{"monthly fires in creation month", monthly, 2025, time.January, true},
		{"monthly never fires before creation", monthly, 2024, time.December, false},
		{"quarterly fires at anchor", quarterly, 2025, time.February, true},
		{"quarterly skips off-interval month", quarterly, 2025, time.March, false},
		{"quarterly fires three months later", quarterly, 2025, time.May, true},
		{"quarterly fires across year boundary", quarterly, 2026, time.February, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ShouldFireInMonth(tt.rule, tt.year, tt.month))
		})
	}
}

func TestShouldFireInMonthZeroInterval(t *testing.T) {
	// Defensive clamp: interval 0 behaves as monthly
	rule := &Rule{DayOfMonth: 1, IntervalMonths: 0, CreatedAt: date(2025, time.January, 1)}
	assert.True(t, ShouldFireInMonth(rule, 2025, time.February))
}

func TestActualDayOfMonth(t *testing.T) {
	tests := []struct {
		name  string
		year  int
		month time.Month
		day   int
		want  int
	}{
		{"day within month", 2025, time.March, 15, 15},
		{"day 31 in a 30-day month", 2025, time.April, 31, 30},
		{"day 31 in February", 2025, time.February, 31, 28},
		{"day 29 in leap February", 2024, time.February, 29, 29},
		{"day 29 in non-leap February", 2025, time.February, 29, 28},
		{"last day exact", 2025, time.January, 31, 31},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ActualDayOfMonth(tt.year, tt.month, tt.day))
		})
	}
}

func TestDatesInPeriod(t *testing.T) {
	t.Run("monthly rule over three months", func(t *testing.T) {
		rule := &Rule{DayOfMonth: 27, IntervalMonths: 1, CreatedAt: date(2025, time.January, 1)}
		dates := DatesInPeriod(rule, date(2025, time.March, 1), date(2025, time.May, 31))

		require.Equal(t, []time.Time{
			date(2025, time.March, 27),
			date(2025, time.April, 27),
			date(2025, time.May, 27),
		}, dates)
	})

	t.Run("fire date outside period boundary is excluded", func(t *testing.T) {
		rule := &Rule{DayOfMonth: 5, IntervalMonths: 1, CreatedAt: date(2025, time.January, 1)}
		dates := DatesInPeriod(rule, date(2025, time.March, 10), date(2025, time.April, 30))

		// March 5 precedes the period start
		require.Equal(t, []time.Time{date(2025, time.April, 5)}, dates)
	})

	t.Run("day clamping inside a period", func(t *testing.T) {
		rule := &Rule{DayOfMonth: 31, IntervalMonths: 1, CreatedAt: date(2025, time.January, 1)}
		dates := DatesInPeriod(rule, date(2025, time.January, 1), date(2025, time.April, 30))

		require.Equal(t, []time.Time{
			date(2025, time.January, 31),
			date(2025, time.February, 28),
			date(2025, time.March, 31),
			date(2025, time.April, 30),
		}, dates)
	})

	t.Run("interval skips months", func(t *testing.T) {
		rule := &Rule{DayOfMonth: 1, IntervalMonths: 2, CreatedAt: date(2025, time.January, 1)}
		dates := DatesInPeriod(rule, date(2025, time.January, 1), date(2025, time.June, 30))

		require.Equal(t, []time.Time{
			date(2025, time.January, 1),
			date(2025, time.March, 1),
			date(2025, time.May, 1),
		}, dates)
	})

	t.Run("ascending and unique", func(t *testing.T) {
		rule := &Rule{DayOfMonth: 15, IntervalMonths: 1, CreatedAt: date(2024, time.June, 1)}
		dates := DatesInPeriod(rule, date(2025, time.January, 1), date(2025, time.December, 31))

		require.Len(t, dates, 12)
		for i := 1; i < len(dates); i++ {
			assert.True(t, dates[i].After(dates[i-1]))
		}
	})

	t.Run("inverted period is empty", func(t *testing.T) {
		rule := &Rule{DayOfMonth: 1, IntervalMonths: 1, CreatedAt: date(2025, time.January, 1)}
		assert.Empty(t, DatesInPeriod(rule, date(2025, time.May, 1), date(2025, time.April, 1)))
	})
}
