package types

import (
	"errors"
	"time"
)

// Period is an inclusive date range. Both bounds are dates, the time of day
// is ignored for all calculations.
type Period struct {
	Start time.Time
	End   time.Time
}

var ErrPeriodInverted = errors.New("the period must not end before it starts")

// NewPeriod returns the period from start to end, both inclusive.
func NewPeriod(start, end time.Time) (Period, error) {
	p := Period{Start: truncate(start), End: truncate(end)}
	if p.End.Before(p.Start) {
		return Period{}, ErrPeriodInverted
	}

	return p, nil
}

// YearPeriod returns the period spanning a whole calendar year.
func YearPeriod(year int) Period {
	return Period{
		Start: time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC),
	}
}

// MonthPeriod returns the period spanning a whole month.
func MonthPeriod(m Month) Period {
	return Period{Start: m.First(), End: m.Last()}
}

func truncate(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// IsZero reports if both bounds are the zero value.
func (p Period) IsZero() bool {
	return p.Start.IsZero() && p.End.IsZero()
}

// Overlap returns the intersection of two periods. The second return value
// is false when the periods do not intersect, in which case the zero Period
// is returned.
func (p Period) Overlap(other Period) (Period, bool) {
	start := p.Start
	if other.Start.After(start) {
		start = other.Start
	}

	end := p.End
	if other.End.Before(end) {
		end = other.End
	}

	if start.After(end) {
		return Period{}, false
	}

	return Period{Start: start, End: end}, true
}

// Days returns the number of days in the period, counting both bounds.
// A period starting and ending on the same day has one day.
func (p Period) Days() int {
	return int(p.End.Sub(p.Start).Hours()/24) + 1
}

// MonthSpan returns the number of distinct (year, month) pairs the period
// touches, stepping one calendar month at a time from the start month to
// the end month inclusive. A period within a single month has a span of 1.
func (p Period) MonthSpan() int {
	start := MonthOf(p.Start)
	end := MonthOf(p.End)

	return (end.Year()-start.Year())*12 + int(end.Month()) - int(start.Month()) + 1
}

// Months returns every month the period touches, in order.
func (p Period) Months() []Month {
	months := make([]Month, 0, p.MonthSpan())

	for m := MonthOf(p.Start); !m.After(MonthOf(p.End)); m = m.AddDate(0, 1) {
		months = append(months, m)
	}

	return months
}

// ContainsMonth reports whether the period touches the month.
func (p Period) ContainsMonth(m Month) bool {
	return !m.Last().Before(p.Start) && !m.First().After(p.End)
}
