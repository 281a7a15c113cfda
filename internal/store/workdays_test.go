package store

import (
	"testing"
	"time"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestBusinessDaysSameDay(t *testing.T) {
	// Weekday
	if got := BusinessDays(day("2024-01-01"), day("2024-01-01")); got != 1 {
		t.Errorf("monday same day = %d, want 1", got)
	}
	// Weekend days still count as 1, never 0
	if got := BusinessDays(day("2024-01-06"), day("2024-01-06")); got != 1 {
		t.Errorf("saturday same day = %d, want 1", got)
	}
}

func TestBusinessDaysWeekdaySpan(t *testing.T) {
	// Mon 2024-01-01 through Fri 2024-01-05, no weekend in between
	if got := BusinessDays(day("2024-01-01"), day("2024-01-05")); got != 5 {
		t.Errorf("mon-fri = %d, want 5", got)
	}
	// Mon through Wed
	if got := BusinessDays(day("2024-01-01"), day("2024-01-03")); got != 3 {
		t.Errorf("mon-wed = %d, want 3", got)
	}
}

func TestBusinessDaysSkipsWeekend(t *testing.T) {
	// Fri 2024-01-05 through Mon 2024-01-08: Sat+Sun excluded
	if got := BusinessDays(day("2024-01-05"), day("2024-01-08")); got != 2 {
		t.Errorf("fri-mon = %d, want 2", got)
	}
	// Mon 2024-01-01 through Sat 2024-01-06: the Saturday itself is not
	// counted but the span through Friday is
	if got := BusinessDays(day("2024-01-01"), day("2024-01-06")); got != 5 {
		t.Errorf("mon-sat = %d, want 5", got)
	}
}

func TestBusinessDaysReversedRange(t *testing.T) {
	if got := BusinessDays(day("2024-01-05"), day("2024-01-01")); got != 1 {
		t.Errorf("reversed range = %d, want 1", got)
	}
}

func TestBusinessDaysWeekendOnlyRange(t *testing.T) {
	// Sat through Sun: zero weekdays, floor at 1
	if got := BusinessDays(day("2024-01-06"), day("2024-01-07")); got != 1 {
		t.Errorf("sat-sun = %d, want 1", got)
	}
}

func TestBusinessDaysIgnoresTimeOfDay(t *testing.T) {
	late := time.Date(2024, 1, 1, 23, 59, 0, 0, time.UTC)
	early := time.Date(2024, 1, 3, 0, 1, 0, 0, time.UTC)
	if got := BusinessDays(late, early); got != 3 {
		t.Errorf("time-of-day sensitive: got %d, want 3", got)
	}
}
