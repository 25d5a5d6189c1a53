package app

import (
	"net/http"
	"strings"

	"github.com/klabast/wb-services/transit-dashboard/internal/calendar"
	"github.com/klabast/wb-services/transit-dashboard/internal/filter"
	"github.com/klabast/wb-services/transit-dashboard/internal/transit"
)

type calendarEvent struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Status string `json:"status"`
}

// calendarCell is one grid slot. Total counts every event on the day, Events holds at
// most the display limit.
type calendarCell struct {
	Date        string          `json:"date,omitempty"`
	Day         int             `json:"day,omitempty"`
	Placeholder bool            `json:"placeholder,omitempty"`
	Weekend     bool            `json:"weekend,omitempty"`
	Today       bool            `json:"today,omitempty"`
	Holiday     string          `json:"holiday,omitempty"`
	Events      []calendarEvent `json:"events"`
	Total       int             `json:"total"`
	More        string          `json:"more,omitempty"`
}

type monthView struct {
	Month    string         `json:"month"`
	Prev     string         `json:"prev"`
	Next     string         `json:"next"`
	Weekdays []string       `json:"weekdays"`
	Limit    int            `json:"limit"`
	Cells    []calendarCell `json:"cells"`
}

type dayView[E any] struct {
	Date    string `json:"date"`
	Holiday string `json:"holiday,omitempty"`
	Events  []E    `json:"events"`
}

func buildMonth[E calendar.Event](m calendar.Month, events []E, opts calendar.GridOptions, limit int, label func(E) calendarEvent) monthView {
	view := monthView{
		Month:    m.String(),
		Prev:     m.Prev().String(),
		Next:     m.Next().String(),
		Weekdays: calendar.WeekdayHeaders(opts.WeekStart),
		Limit:    limit,
	}
	for _, c := range calendar.Grid(m, events, opts) {
		cell := calendarCell{
			Placeholder: c.Placeholder,
			Weekend:     c.Weekend,
			Today:       c.Today,
			Holiday:     c.Holiday,
			Events:      []calendarEvent{},
			Total:       len(c.Events),
		}
		if !c.Placeholder {
			cell.Date = calendar.FormatDate(c.Date)
			cell.Day = c.Day()
		}
		shown, hidden := calendar.Truncate(c.Events, limit)
		for _, e := range shown {
			cell.Events = append(cell.Events, label(e))
		}
		cell.More = calendar.MoreLabel(hidden)
		view.Cells = append(view.Cells, cell)
	}
	return view
}

// monthParams reads month and limit, falling back to the current month and the
// configured display limit.
func (s *Server) monthParams(r *http.Request) (calendar.Month, calendar.GridOptions, int, error) {
	cfg := s.Config()
	now := s.now()
	m, err := calendar.ParseMonth(r.URL.Query().Get("month"), now)
	if err != nil {
		return m, calendar.GridOptions{}, 0, badRequest("%v", err)
	}
	limit, err := queryInt(r, "limit", cfg.Display.MaxEventsPerDay)
	if err != nil {
		return m, calendar.GridOptions{}, 0, err
	}
	opts := calendar.GridOptions{WeekStart: cfg.Display.Week(), Now: now, Holidays: true}
	return m, opts, limit, nil
}

func dayParam(r *http.Request) (string, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("date"))
	day, err := calendar.ParseDate(raw)
	if err != nil {
		return "", badRequest("%v", err)
	}
	return calendar.FormatDate(day), nil
}

func newDayView[E calendar.Event](date string, events []E) dayView[E] {
	day, _ := calendar.ParseDate(date)
	out := calendar.Project(day, events)
	if out == nil {
		out = []E{}
	}
	return dayView[E]{
		Date:    date,
		Holiday: calendar.Holidays(day.Year())[date],
		Events:  out,
	}
}

func (s *Server) maintenanceEvents(r *http.Request) ([]transit.Maintenance, error) {
	items, err := s.store.Maintenance.List(r.Context())
	if err != nil {
		return nil, err
	}
	q := r.URL.Query()
	return narrowPhase(r, filter.Apply(items, q.Get("q"), q.Get("tab")))
}

func maintenanceLabel(m transit.Maintenance) calendarEvent {
	return calendarEvent{ID: m.ID, Title: m.VehicleID + " " + m.Type, Status: string(m.Status)}
}

func scheduleLabel(sc transit.Schedule) calendarEvent {
	return calendarEvent{ID: sc.ID, Title: sc.Route + " " + sc.Name, Status: string(sc.Status)}
}

func (s *Server) maintenanceMonth(w http.ResponseWriter, r *http.Request) {
	m, opts, limit, err := s.monthParams(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	events, err := s.maintenanceEvents(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, buildMonth(m, events, opts, limit, maintenanceLabel))
}

func (s *Server) maintenanceDay(w http.ResponseWriter, r *http.Request) {
	date, err := dayParam(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	events, err := s.maintenanceEvents(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newDayView(date, events))
}

func (s *Server) scheduleEvents(r *http.Request) ([]transit.Schedule, error) {
	items, err := s.store.Schedules.List(r.Context())
	if err != nil {
		return nil, err
	}
	q := r.URL.Query()
	return filter.Apply(items, q.Get("q"), q.Get("tab")), nil
}

func (s *Server) scheduleMonth(w http.ResponseWriter, r *http.Request) {
	m, opts, limit, err := s.monthParams(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	events, err := s.scheduleEvents(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, buildMonth(m, events, opts, limit, scheduleLabel))
}

func (s *Server) scheduleDay(w http.ResponseWriter, r *http.Request) {
	date, err := dayParam(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	events, err := s.scheduleEvents(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newDayView(date, events))
}
