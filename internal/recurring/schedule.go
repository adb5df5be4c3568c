package recurring

import "time"

// monthIndex flattens a year/month pair for interval arithmetic
func monthIndex(year int, month time.Month) int {
	return year*12 + int(month) - 1
}

// ShouldFireInMonth reports whether the rule produces an obligation in the
// given month. The rule fires every IntervalMonths months counted from its
// creation month; months before the anchor never fire.
func ShouldFireInMonth(rule *Rule, year int, month time.Month) bool {
	interval := rule.IntervalMonths
	if interval < 1 {
		interval = 1
	}

	anchor := monthIndex(rule.CreatedAt.Year(), rule.CreatedAt.Month())
	target := monthIndex(year, month)

	if target < anchor {
		return false
	}

	return (target-anchor)%interval == 0
}

// ActualDayOfMonth clamps the rule's day to the last valid day of the target
// month, so a day-31 rule fires on Feb 28 (or 29) instead of skipping.
func ActualDayOfMonth(year int, month time.Month, dayOfMonth int) int {
	// day 0 of the next month is the last day of this one
	lastDay := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
	if dayOfMonth > lastDay {
		return lastDay
	}
	if dayOfMonth < 1 {
		return 1
	}
	return dayOfMonth
}

// DatesInPeriod returns every date the rule fires within the inclusive
// [start, end] range, ascending, at most once per month.
func DatesInPeriod(rule *Rule, start, end time.Time) []time.Time {
	var dates []time.Time
	if end.Before(start) {
		return dates
	}

	seen := make(map[int]bool)

	year, month := start.Year(), start.Month()
	endIndex := monthIndex(end.Year(), end.Month())

	for monthIndex(year, month) <= endIndex {
		idx := monthIndex(year, month)
		if !seen[idx] && ShouldFireInMonth(rule, year, month) {
			day := ActualDayOfMonth(year, month, rule.DayOfMonth)
			date := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
			if !date.Before(start) && !date.After(end) {
				dates = append(dates, date)
			}
			seen[idx] = true
		}

		month++
		if month > time.December {
			month = time.January
			year++
		}
	}

	return dates
}
