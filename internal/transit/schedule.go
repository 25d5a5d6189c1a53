package transit

import (
	"slices"
	"strings"
	"time"

	"github.com/klabast/wb-services/transit-dashboard/internal/calendar"
)

// Schedule is a timetable attached to a route. Recurrence decides which calendar days
// it shows up on.
type Schedule struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	Route      string      `json:"route"`
	Recurrence Recurrence  `json:"recurrence"`
	Weekends   bool        `json:"weekends,omitempty"`
	DateRange  string      `json:"dateRange,omitempty"`
	Departures []string    `json:"departures,omitempty"`
	Vehicle    string      `json:"vehicle,omitempty"`
	Driver     string      `json:"driver,omitempty"`
	Status     RouteStatus `json:"status"`
}

func (s Schedule) WithID(id string) Schedule { s.ID = id; return s }

func (s Schedule) Clone() Schedule {
	s.Departures = slices.Clone(s.Departures)
	return s
}

func (s Schedule) EntityID() string       { return s.ID }
func (s Schedule) Category() string       { return string(s.Recurrence) }
func (s Schedule) SearchFields() []string { return []string{s.ID, s.Name, s.Route} }

// When maps the recurrence onto a calendar occurrence. Special schedules with a date
// range that cannot be parsed never appear.
func (s Schedule) When() calendar.Occurrence {
	switch s.Recurrence {
	case RecurDaily:
		return calendar.Daily{}
	case RecurWeekly:
		return calendar.Weekly{Weekends: s.Weekends}
	case RecurSpecial:
		return calendar.SpecialOf(s.DateRange)
	}
	return calendar.Never{}
}

func (s Schedule) Validate() error {
	c := checker{kind: "schedule"}
	c.required("name", s.Name)
	c.required("route", s.Route)
	c.valid("recurrence", s.Recurrence.IsValid())
	c.valid("status", s.Status.IsValid())
	if s.Recurrence == RecurSpecial {
		_, err := calendar.ParseRange(s.DateRange)
		c.valid("dateRange", err == nil)
	}
	for _, d := range s.Departures {
		if _, err := time.Parse("15:04", strings.TrimSpace(d)); err != nil {
			c.valid("departures", false)
			break
		}
	}
	return c.err()
}
