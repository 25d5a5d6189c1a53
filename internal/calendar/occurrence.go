package calendar

import "time"

// Occurrence decides whether something happens on a given calendar day.
type Occurrence interface {
	OccursOn(day time.Time) bool
}

// Range matches every day from Start through End, both inclusive.
type Range struct {
	Start time.Time
	End   time.Time
}

func (r Range) OccursOn(day time.Time) bool {
	d := DateOf(day)
	return !d.Before(DateOf(r.Start)) && !d.After(DateOf(r.End))
}

// Days returns the number of calendar days covered by the range.
func (r Range) Days() int {
	start, end := DateOf(r.Start), DateOf(r.End)
	if end.Before(start) {
		return 0
	}
	return int(end.Sub(start).Hours()/24) + 1
}

// Exact matches a single day.
type Exact struct {
	Date time.Time
}

func (e Exact) OccursOn(day time.Time) bool {
	return SameDay(e.Date, day)
}

// Daily matches every day.
type Daily struct{}

func (Daily) OccursOn(time.Time) bool { return true }

// Weekly matches weekend days when Weekends is set and weekdays otherwise.
type Weekly struct {
	Weekends bool
}

func (w Weekly) OccursOn(day time.Time) bool {
	return IsWeekend(day) == w.Weekends
}

// Never matches nothing. Records with malformed dates project as Never.
type Never struct{}

func (Never) OccursOn(time.Time) bool { return false }

// RangeOf builds a Range from two date strings, falling back to Never when either
// side does not parse or the range is inverted.
func RangeOf(start, end string) Occurrence {
	s, err := ParseDate(start)
	if err != nil {
		return Never{}
	}
	e, err := ParseDate(end)
	if err != nil {
		return Never{}
	}
	if e.Before(s) {
		return Never{}
	}
	return Range{Start: s, End: e}
}

// ExactOf builds an Exact from a date string, falling back to Never.
func ExactOf(date string) Occurrence {
	d, err := ParseDate(date)
	if err != nil {
		return Never{}
	}
	return Exact{Date: d}
}
