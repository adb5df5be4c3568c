package settlement

import "time"

// PeriodInput is everything period suggestion looks at
type PeriodInput struct {
	OldestUnsettled  *time.Time
	NewestUnsettled  *time.Time
	UnsettledCount   int
	LastConfirmedEnd *time.Time
	// True when an unsettled payment exists exactly on LastConfirmedEnd
	HasUnsettledOnLastEnd bool
	Today                 time.Time
}

// PeriodSuggestion is the proposed window for the next draft session
type PeriodSuggestion struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// SuggestPeriod proposes the [start, end] window for the next settlement
// draft. Start <= End always holds, and no unsettled payment falls before
// the suggested start.
func SuggestPeriod(in PeriodInput) PeriodSuggestion {
	end := dateOnly(in.Today)
	if in.NewestUnsettled != nil {
		end = dateOnly(*in.NewestUnsettled)
	}

	var start time.Time
	switch {
	case in.LastConfirmedEnd != nil:
		start = dateOnly(*in.LastConfirmedEnd)
		if !in.HasUnsettledOnLastEnd {
			start = start.AddDate(0, 0, 1)
		}
	case in.OldestUnsettled != nil:
		start = dateOnly(*in.OldestUnsettled)
	default:
		// First day of the current month
		today := dateOnly(in.Today)
		start = time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
	}

	// Back-dated payments added after the last session closed must not be
	// silently excluded
	if in.OldestUnsettled != nil && dateOnly(*in.OldestUnsettled).Before(start) {
		start = dateOnly(*in.OldestUnsettled)
	}

	if start.After(end) {
		start = end
	}

	return PeriodSuggestion{Start: start, End: end}
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
