package leave

import "time"

// =============================================================================
// BUSINESS-DAY CALENDAR - Pure date arithmetic
// =============================================================================

// DateOnly truncates t to UTC midnight. Ledger dates are always stored in
// this form so comparisons never depend on wall-clock components.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// NewDate builds a UTC midnight date.
func NewDate(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// IsWeekend reports whether t falls on Saturday or Sunday.
func IsWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// IsBusinessDay reports whether t is a Monday-Friday calendar day.
// Public holidays are deliberately not considered: the allowance model
// counts weekdays only.
func IsBusinessDay(t time.Time) bool {
	return !IsWeekend(t)
}

// CountBusinessDays counts working days (Mon-Fri) between start and end,
// inclusive of both endpoints. Returns ErrInvalidRange when end precedes
// start. Deterministic and side-effect free.
func CountBusinessDays(start, end time.Time) (int, error) {
	from, to := DateOnly(start), DateOnly(end)
	if to.Before(from) {
		return 0, ErrInvalidRange
	}

	count := 0
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		if IsBusinessDay(d) {
			count++
		}
	}
	return count, nil
}
