package calendar

import (
	"reflect"
	"testing"
	"time"
)

func TestLayoutKnownMonths(t *testing.T) {
	tests := []struct {
		name        string
		ref         time.Time
		wantDays    int
		wantWeekday time.Weekday
	}{
		{"February leap year", time.Date(2024, time.February, 10, 0, 0, 0, 0, time.UTC), 29, time.Thursday},
		{"February common year", time.Date(2023, time.February, 28, 23, 59, 0, 0, time.UTC), 28, time.Wednesday},
		{"September", time.Date(2023, time.September, 1, 0, 0, 0, 0, time.UTC), 30, time.Friday},
		{"November 2023", time.Date(2023, time.November, 18, 15, 0, 0, 0, time.UTC), 30, time.Wednesday},
		{"December rolls into January", time.Date(2023, time.December, 31, 0, 0, 0, 0, time.UTC), 31, time.Friday},
		{"January after rollover", time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), 31, time.Monday},
		{"century non-leap", time.Date(1900, time.February, 1, 0, 0, 0, 0, time.UTC), 28, time.Thursday},
		{"400-year leap", time.Date(2000, time.February, 1, 0, 0, 0, 0, time.UTC), 29, time.Tuesday},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			days, wd := Layout(tt.ref)
			if days != tt.wantDays {
				t.Errorf("Expected %d days, got %d", tt.wantDays, days)
			}
			if wd != tt.wantWeekday {
				t.Errorf("Expected first weekday %s, got %s", tt.wantWeekday, wd)
			}
		})
	}
}

func TestLayoutBoundsForAllMonths(t *testing.T) {
	for year := 1999; year <= 2030; year++ {
		for month := time.January; month <= time.December; month++ {
			days, wd := Layout(time.Date(year, month, 15, 0, 0, 0, 0, time.UTC))
			if days < 28 || days > 31 {
				t.Fatalf("%d-%02d: days in month %d out of range", year, month, days)
			}
			if wd < time.Sunday || wd > time.Saturday {
				t.Fatalf("%d-%02d: weekday %d out of range", year, month, wd)
			}
			// Day 1 of the next month is the day after the last day of this one.
			last := time.Date(year, month, days, 0, 0, 0, 0, time.UTC)
			if next := last.AddDate(0, 0, 1); next.Day() != 1 {
				t.Fatalf("%d-%02d: day after %d is %d, want 1", year, month, days, next.Day())
			}
		}
	}
}

func TestParseMonth(t *testing.T) {
	now := time.Date(2023, time.November, 5, 0, 0, 0, 0, time.UTC)

	m, err := ParseMonth("", now)
	if err != nil {
		t.Fatalf("ParseMonth(\"\") failed: %v", err)
	}
	if m != (Month{Year: 2023, Month: time.November}) {
		t.Errorf("Expected current month, got %v", m)
	}

	m, err = ParseMonth("2024-02", now)
	if err != nil {
		t.Fatalf("ParseMonth failed: %v", err)
	}
	if m.String() != "2024-02" {
		t.Errorf("Expected 2024-02, got %s", m)
	}

	if _, err := ParseMonth("Feb 2024", now); err == nil {
		t.Error("Expected error for non YYYY-MM month")
	}
}

func TestMonthNavigation(t *testing.T) {
	dec := Month{Year: 2023, Month: time.December}
	if got := dec.Next(); got != (Month{Year: 2024, Month: time.January}) {
		t.Errorf("Expected 2024-01 after 2023-12, got %v", got)
	}
	jan := Month{Year: 2024, Month: time.January}
	if got := jan.Prev(); got != dec {
		t.Errorf("Expected 2023-12 before 2024-01, got %v", got)
	}
	if !dec.Contains(time.Date(2023, time.December, 31, 23, 0, 0, 0, time.UTC)) {
		t.Error("December should contain Dec 31")
	}
	if got := dec.Last().Day(); got != 31 {
		t.Errorf("Expected last day 31, got %d", got)
	}
}

func TestMonthOffsetWithWeekStart(t *testing.T) {
	nov := Month{Year: 2023, Month: time.November} // starts on Wednesday
	if got := nov.Offset(time.Sunday); got != 3 {
		t.Errorf("Expected 3 leading cells for Sunday start, got %d", got)
	}
	if got := nov.Offset(time.Monday); got != 2 {
		t.Errorf("Expected 2 leading cells for Monday start, got %d", got)
	}
	oct := Month{Year: 2023, Month: time.October} // starts on Sunday
	if got := oct.Offset(time.Monday); got != 6 {
		t.Errorf("Expected 6 leading cells for Monday start, got %d", got)
	}
}

func TestGridIsIdempotent(t *testing.T) {
	m := Month{Year: 2024, Month: time.February}
	events := []testEvent{
		{name: "a", occ: RangeOf("2024-02-10", "2024-02-12")},
		{name: "b", occ: ExactOf("2024-02-29")},
	}
	opts := GridOptions{Now: time.Date(2024, time.February, 11, 9, 0, 0, 0, time.UTC), Holidays: true}

	first := Grid(m, events, opts)
	second := Grid(m, events, opts)
	if !reflect.DeepEqual(first, second) {
		t.Error("Grid should return identical output for identical input")
	}
}
