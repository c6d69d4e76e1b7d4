package compliance

import (
	"time"
)

// =============================================================================
// TIME POINT - Calendar-day time abstraction
// =============================================================================
// All compliance thresholds are whole-calendar-day comparisons, so TimePoint
// normalizes to midnight UTC before any arithmetic. The zero value means
// "no date on file" and drives the default branches of the evaluators.

type TimePoint struct {
	Time time.Time
}

// Constructors
func NewTimePoint(year int, month time.Month, day int) TimePoint {
	return TimePoint{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func Today() TimePoint {
	now := time.Now()
	return NewTimePoint(now.Year(), now.Month(), now.Day())
}

// ParseDate parses an ISO "2006-01-02" date. An empty string is a valid
// "no date" and returns the zero TimePoint without error.
func ParseDate(s string) (TimePoint, error) {
	if s == "" {
		return TimePoint{}, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return TimePoint{}, err
	}
	return TimePoint{Time: t}, nil
}

// Comparison
func (tp TimePoint) Before(other TimePoint) bool { return tp.normalize().Before(other.normalize()) }
func (tp TimePoint) Equal(other TimePoint) bool  { return tp.normalize().Equal(other.normalize()) }
func (tp TimePoint) After(other TimePoint) bool  { return tp.normalize().After(other.normalize()) }

func (tp TimePoint) normalize() time.Time {
	return time.Date(tp.Time.Year(), tp.Time.Month(), tp.Time.Day(), 0, 0, 0, 0, time.UTC)
}

// Arithmetic
func (tp TimePoint) AddDays(n int) TimePoint { return TimePoint{Time: tp.Time.AddDate(0, 0, n)} }

// Properties
func (tp TimePoint) IsZero() bool { return tp.Time.IsZero() }

func (tp TimePoint) String() string {
	if tp.IsZero() {
		return ""
	}
	return tp.Time.Format("2006-01-02")
}

// DaysBetween returns the signed whole-day count from one date to another:
// positive when to is after from, zero for the same calendar day. Both sides
// are normalized to midnight first, so time-of-day never leaks into
// threshold comparisons.
func DaysBetween(from, to TimePoint) int {
	return int(to.normalize().Sub(from.normalize()).Hours() / 24)
}

// DaysUntil returns the signed day count from today to date: positive when
// the date is in the future, negative when past. This is the date threshold
// utility every evaluator shares; "today" is injected by the caller so
// boundary tests are deterministic.
func DaysUntil(today, date TimePoint) int {
	return DaysBetween(today, date)
}
