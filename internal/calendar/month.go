package calendar

import (
	"fmt"
	"strings"
	"time"
)

const monthLayout = "2006-01"

// Layout returns the number of days in ref's month and the weekday of its first day.
// Only the year and month of ref are used.
func Layout(ref time.Time) (daysInMonth int, firstWeekday time.Weekday) {
	m := MonthOf(ref)
	return m.DaysInMonth(), m.FirstWeekday()
}

// Month identifies a calendar month. It is derived, never stored.
type Month struct {
	Year  int
	Month time.Month
}

// MonthOf returns the month containing t.
func MonthOf(t time.Time) Month {
	return Month{Year: t.Year(), Month: t.Month()}
}

// ParseMonth parses YYYY-MM. An empty string yields the month of now.
func ParseMonth(s string, now time.Time) (Month, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return MonthOf(now), nil
	}
	t, err := time.Parse(monthLayout, s)
	if err != nil {
		return Month{}, fmt.Errorf("invalid month %q: want YYYY-MM", s)
	}
	return MonthOf(t), nil
}

func (m Month) String() string {
	return m.First().Format(monthLayout)
}

// First returns day 1 of the month at UTC midnight.
func (m Month) First() time.Time {
	return time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC)
}

// Last returns the final day of the month at UTC midnight.
func (m Month) Last() time.Time {
	return time.Date(m.Year, m.Month, m.DaysInMonth(), 0, 0, 0, 0, time.UTC)
}

// DaysInMonth asks time for day 0 of the following month, which rolls back to the
// last day of this one. time handles leap years and December rollover.
func (m Month) DaysInMonth() int {
	return time.Date(m.Year, m.Month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// FirstWeekday is the weekday of day 1 (Sunday = 0).
func (m Month) FirstWeekday() time.Weekday {
	return m.First().Weekday()
}

// Next returns the following month, rolling December over into January.
func (m Month) Next() Month { return MonthOf(m.First().AddDate(0, 1, 0)) }

// Prev returns the preceding month, rolling January back into December.
func (m Month) Prev() Month { return MonthOf(m.First().AddDate(0, -1, 0)) }

// Contains reports whether day falls within the month.
func (m Month) Contains(day time.Time) bool {
	return day.Year() == m.Year && day.Month() == m.Month
}

// Offset returns the number of leading placeholder cells when weeks start on weekStart.
func (m Month) Offset(weekStart time.Weekday) int {
	return (int(m.FirstWeekday()) - int(weekStart) + 7) % 7
}
