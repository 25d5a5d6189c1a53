package calendar

import "time"

// Cell is one slot of a month view. Leading placeholder cells have a zero Date.
type Cell[E any] struct {
	Date        time.Time
	Placeholder bool
	Weekend     bool
	Today       bool
	Holiday     string
	Events      []E
}

// Day returns the day of month, or 0 for a placeholder.
func (c Cell[E]) Day() int {
	if c.Placeholder {
		return 0
	}
	return c.Date.Day()
}

// GridOptions tunes the grid without affecting projection.
type GridOptions struct {
	WeekStart time.Weekday
	Now       time.Time
	Holidays  bool
}

// Grid lays out a month: leading placeholders up to the first weekday, then one cell per
// day carrying the events projected onto it.
func Grid[E Event](m Month, events []E, opts GridOptions) []Cell[E] {
	offset := m.Offset(opts.WeekStart)
	days := m.DaysInMonth()

	var holidays map[string]string
	if opts.Holidays {
		holidays = Holidays(m.Year)
	}
	today := time.Time{}
	if !opts.Now.IsZero() {
		today = DateOf(opts.Now)
	}

	cells := make([]Cell[E], 0, offset+days)
	for i := 0; i < offset; i++ {
		cells = append(cells, Cell[E]{Placeholder: true})
	}
	for d := 1; d <= days; d++ {
		date := time.Date(m.Year, m.Month, d, 0, 0, 0, 0, time.UTC)
		cells = append(cells, Cell[E]{
			Date:    date,
			Weekend: IsWeekend(date),
			Today:   !today.IsZero() && date.Equal(today),
			Holiday: holidays[FormatDate(date)],
			Events:  Project(date, events),
		})
	}
	return cells
}

// Weeks splits cells into rows of seven, padding the last row with placeholders.
func Weeks[E any](cells []Cell[E]) [][]Cell[E] {
	var rows [][]Cell[E]
	for i := 0; i < len(cells); i += 7 {
		end := i + 7
		row := make([]Cell[E], 0, 7)
		if end > len(cells) {
			row = append(row, cells[i:]...)
			for len(row) < 7 {
				row = append(row, Cell[E]{Placeholder: true})
			}
		} else {
			row = append(row, cells[i:end]...)
		}
		rows = append(rows, row)
	}
	return rows
}

// WeekdayHeaders returns short weekday names starting at weekStart.
func WeekdayHeaders(weekStart time.Weekday) []string {
	out := make([]string, 7)
	for i := range out {
		out[i] = time.Weekday((int(weekStart) + i) % 7).String()[:3]
	}
	return out
}
