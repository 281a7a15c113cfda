package store

import "time"

// BusinessDays counts Monday–Friday days in the inclusive range [first, last].
// It is a pure function of the two dates. A reversed range (clock skew on a
// re-observation) and a weekend-only range both floor at 1.
func BusinessDays(first, last time.Time) int {
	first = truncateToDay(first)
	last = truncateToDay(last)

	if last.Before(first) {
		return 1
	}

	count := 0
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		switch d.Weekday() {
		case time.Saturday, time.Sunday:
		default:
			count++
		}
	}
	if count < 1 {
		return 1
	}
	return count
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
