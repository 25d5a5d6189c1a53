package calendar

import (
	"fmt"
	"time"
)

// DefaultDisplayLimit is how many events a day cell shows before collapsing the rest.
const DefaultDisplayLimit = 3

// Event is anything that can be placed on a calendar.
type Event interface {
	When() Occurrence
}

// Project returns the events that occur on day, keeping their relative order.
func Project[E Event](day time.Time, events []E) []E {
	var out []E
	for _, e := range events {
		occ := e.When()
		if occ == nil {
			continue
		}
		if occ.OccursOn(day) {
			out = append(out, e)
		}
	}
	return out
}

// Truncate returns at most limit events and the number left out.
// A limit of zero or less shows everything.
func Truncate[E any](events []E, limit int) ([]E, int) {
	if limit <= 0 || len(events) <= limit {
		return events, 0
	}
	return events[:limit], len(events) - limit
}

// MoreLabel renders the overflow indicator for hidden events, or "" when none are hidden.
func MoreLabel(hidden int) string {
	if hidden <= 0 {
		return ""
	}
	return fmt.Sprintf("+%d more", hidden)
}
