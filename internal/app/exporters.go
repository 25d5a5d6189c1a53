package app

import (
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/klabast/wb-services/transit-dashboard/internal/calendar"
	"github.com/klabast/wb-services/transit-dashboard/internal/logx"
	"github.com/klabast/wb-services/transit-dashboard/internal/transit"
)

const (
	ICSProductID = "-//Klabast//Transit Dashboard//EN"
	icsUIDDomain = "transit-dashboard.klabast.de"
)

// icsEvent is one all-day calendar entry. End is the last day, inclusive.
type icsEvent struct {
	UID         string
	Summary     string
	Description string
	Location    string
	Start       time.Time
	End         time.Time
}

// Alarm fires at Time (HH:MM) DaysBefore days ahead of the event start.
type Alarm struct {
	DaysBefore int
	Time       string
}

// parseAlarms reads values like "1@19:00" (one day before at 19:00).
func parseAlarms(values []string) ([]Alarm, error) {
	var alarms []Alarm
	for _, v := range values {
		days, at, ok := strings.Cut(strings.TrimSpace(v), "@")
		n, err := strconv.Atoi(days)
		if !ok || err != nil || n < 0 {
			return nil, badRequest("invalid alarm %q: want <days>@HH:MM", v)
		}
		if _, err := time.Parse("15:04", at); err != nil {
			return nil, badRequest("invalid alarm time %q", at)
		}
		alarms = append(alarms, Alarm{DaysBefore: n, Time: at})
	}
	return alarms, nil
}

// icsWriter writes CRLF terminated lines and keeps the first write error.
type icsWriter struct {
	w   io.Writer
	err error
}

func (iw *icsWriter) line(format string, args ...any) {
	if iw.err != nil {
		return
	}
	_, iw.err = fmt.Fprintf(iw.w, format+"\r\n", args...)
}

var icsEscaper = strings.NewReplacer(`\`, `\\`, ";", `\;`, ",", `\,`, "\n", `\n`)

func escapeICS(s string) string { return icsEscaper.Replace(s) }

func maintenanceICSEvents(items []transit.Maintenance) []icsEvent {
	var events []icsEvent
	for _, m := range items {
		var start, end time.Time
		switch occ := m.When().(type) {
		case calendar.Range:
			start, end = occ.Start, occ.End
		case calendar.Exact:
			start, end = occ.Date, occ.Date
		default:
			continue
		}
		desc := fmt.Sprintf("%s maintenance for %s (%s)", m.Type, m.VehicleID, m.Status)
		if who := firstNonEmpty(m.Technician, m.AssignedTo); who != "" {
			desc += ", " + who
		}
		events = append(events, icsEvent{
			UID:         m.ID + "@" + icsUIDDomain,
			Summary:     m.VehicleID + " " + m.Type,
			Description: desc,
			Location:    m.VehicleID,
			Start:       start,
			End:         end,
		})
	}
	return events
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func writeVEvent(iw *icsWriter, e icsEvent, stamp time.Time, alarms []Alarm) {
	iw.line("BEGIN:VEVENT")
	iw.line("UID:%s", e.UID)
	iw.line("DTSTAMP:%s", stamp.UTC().Format("20060102T150405Z"))
	iw.line("DTSTART;VALUE=DATE:%s", e.Start.Format("20060102"))
	iw.line("DTEND;VALUE=DATE:%s", e.End.AddDate(0, 0, 1).Format("20060102"))
	iw.line("SUMMARY:%s", escapeICS(e.Summary))
	iw.line("DESCRIPTION:%s", escapeICS(e.Description))
	if e.Location != "" {
		iw.line("LOCATION:%s", escapeICS(e.Location))
	}
	for _, a := range alarms {
		if iw.err == nil {
			iw.err = AddAlarm(iw.w, e.Start, a.DaysBefore, a.Time, e.Summary)
		}
	}
	iw.line("END:VEVENT")
}

// GenerateICS writes a downloadable calendar with optional reminders.
func GenerateICS(w io.Writer, name string, events []icsEvent, alarms []Alarm, stamp time.Time) error {
	iw := &icsWriter{w: w}
	iw.line("BEGIN:VCALENDAR")
	iw.line("VERSION:2.0")
	iw.line("PRODID:%s", ICSProductID)
	iw.line("X-WR-CALNAME:%s", escapeICS(name))
	iw.line("CALSCALE:GREGORIAN")
	for _, e := range events {
		writeVEvent(iw, e, stamp, alarms)
	}
	iw.line("END:VCALENDAR")
	return iw.err
}

// GenerateSubscriptionICS writes a calendar feed for subscriptions. Calendar apps
// ignore alarms in subscribed calendars, so none are written.
func GenerateSubscriptionICS(w io.Writer, name string, events []icsEvent, stamp time.Time) error {
	iw := &icsWriter{w: w}
	iw.line("BEGIN:VCALENDAR")
	iw.line("VERSION:2.0")
	iw.line("PRODID:%s", ICSProductID)
	iw.line("METHOD:PUBLISH")
	iw.line("X-WR-CALNAME:%s", escapeICS(name))
	iw.line("CALSCALE:GREGORIAN")
	iw.line("X-PUBLISHED-TTL:PT1H")
	for _, e := range events {
		writeVEvent(iw, e, stamp, nil)
	}
	iw.line("END:VCALENDAR")
	return iw.err
}

// AddAlarm writes a VALARM firing at alarmTime (HH:MM) daysBefore days ahead of an
// all-day event on eventDate.
func AddAlarm(w io.Writer, eventDate time.Time, daysBefore int, alarmTime string, description string) error {
	at, err := time.Parse("15:04", alarmTime)
	if err != nil {
		return fmt.Errorf("invalid alarm time %q: %w", alarmTime, err)
	}

	// The event starts at midnight, the trigger is relative to that.
	eventStart := calendar.DateOf(eventDate)
	alarmDate := eventStart.AddDate(0, 0, -daysBefore)
	alarmAt := time.Date(alarmDate.Year(), alarmDate.Month(), alarmDate.Day(), at.Hour(), at.Minute(), 0, 0, time.UTC)

	totalMinutes := int(alarmAt.Sub(eventStart).Minutes())
	sign := ""
	if totalMinutes < 0 {
		sign = "-"
		totalMinutes = -totalMinutes
	}
	days := totalMinutes / (24 * 60)
	rest := totalMinutes % (24 * 60)
	trigger := fmt.Sprintf("%sP%dDT%dH%dM", sign, days, rest/60, rest%60)

	iw := &icsWriter{w: w}
	iw.line("BEGIN:VALARM")
	iw.line("ACTION:DISPLAY")
	iw.line("DESCRIPTION:Reminder: %s", escapeICS(description))
	iw.line("TRIGGER:%s", trigger)
	iw.line("END:VALARM")
	return iw.err
}

// exportMaintenanceICS serves the maintenance calendar. download=1 returns an
// attachment with reminders from alarm=<days>@HH:MM, otherwise a subscription feed.
func (s *Server) exportMaintenanceICS(w http.ResponseWriter, r *http.Request) {
	items, err := s.maintenanceEvents(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	events := maintenanceICSEvents(items)
	now := s.now()

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	if queryBool(r, "download") {
		alarms, err := parseAlarms(r.URL.Query()["alarm"])
		if err != nil {
			s.fail(w, r, err)
			return
		}
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=maintenance_%s.ics", now.Format("20060102")))
		err = GenerateICS(w, "Fleet Maintenance", events, alarms, now)
		s.logExportError("ics", err)
		return
	}
	// No Content-Disposition: calendar apps need inline content for subscriptions.
	s.logExportError("ics", GenerateSubscriptionICS(w, "Fleet Maintenance", events, now))
}

func (s *Server) logExportError(format string, err error) {
	if err != nil {
		s.log.Warn("export write failed", logx.String("format", format), logx.Err(err))
	}
}

// GenerateCSV writes header and rows as RFC 4180 CSV.
func GenerateCSV(w io.Writer, header []string, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	if err := cw.WriteAll(rows); err != nil {
		return err
	}
	return cw.Error()
}

type csvTable struct {
	header []string
	rows   func(r *http.Request) ([][]string, error)
}

func tableOf[T record[T]](rs *resource[T], header []string, row func(T) []string) csvTable {
	return csvTable{header: header, rows: func(r *http.Request) ([][]string, error) {
		items, err := rs.filtered(r)
		if err != nil {
			return nil, err
		}
		rows := make([][]string, 0, len(items))
		for _, item := range items {
			rows = append(rows, row(item))
		}
		return rows, nil
	}}
}

func itoa(n int) string { return strconv.Itoa(n) }

func ftoa(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }

var vehicleHeader = []string{"ID", "Model", "Plate", "Driver", "Route", "Status", "Capacity", "Fuel", "Battery", "Mileage", "Last Service"}

func vehicleRow(v transit.Vehicle) []string {
	return []string{v.ID, v.Model, v.Plate, v.Driver, v.CurrentRoute, string(v.Status), itoa(v.Capacity), v.Fuel, itoa(v.BatteryLevel), itoa(v.Mileage), v.LastService}
}

// csvTable returns the export table for a dashboard page.
func (s *Server) csvTable(page string) (csvTable, bool) {
	switch page {
	case "buses":
		return tableOf(newResource(s, s.store.Buses), vehicleHeader, vehicleRow), true
	case "taxis":
		return tableOf(newResource(s, s.store.Taxis), vehicleHeader, vehicleRow), true
	case "drivers":
		return tableOf(newResource(s, s.store.Drivers),
			[]string{"ID", "Name", "License", "Phone", "Email", "Status", "Vehicle", "Rating", "Joined", "Experience"},
			func(d transit.Driver) []string {
				return []string{d.ID, d.Name, d.License, d.Phone, d.Email, string(d.Status), d.AssignedVehicle, ftoa(d.Rating), d.JoinDate, itoa(d.ExperienceYears)}
			}), true
	case "routes":
		return tableOf(newResource(s, s.store.Routes),
			[]string{"ID", "Number", "Name", "Origin", "Destination", "Stops", "Distance (km)", "Duration (min)", "Frequency (min)", "Status"},
			func(rt transit.Route) []string {
				return []string{rt.ID, rt.Number, rt.Name, rt.Origin, rt.Destination, strings.Join(rt.Stops, "; "), ftoa(rt.DistanceKm), itoa(rt.DurationMin), itoa(rt.FrequencyMin), string(rt.Status)}
			}), true
	case "stops":
		return tableOf(newResource(s, s.store.Stops),
			[]string{"ID", "Name", "Location", "Type", "Routes", "Lat", "Lng", "Amenities", "Active"},
			func(st transit.BusStop) []string {
				return []string{st.ID, st.Name, st.Location, string(st.Type), strings.Join(st.Routes, "; "), ftoa(st.Lat), ftoa(st.Lng), strings.Join(st.Amenities, "; "), strconv.FormatBool(st.Active)}
			}), true
	case "fares":
		return tableOf(newResource(s, s.store.Fares),
			[]string{"ID", "Name", "Category", "Amount", "Currency", "Zone", "Valid From", "Valid To"},
			func(f transit.Fare) []string {
				return []string{f.ID, f.Name, f.Class, ftoa(f.Amount), f.Currency, f.Zone, f.ValidFrom, f.ValidTo}
			}), true
	case "schedules":
		return tableOf(newResource(s, s.store.Schedules),
			[]string{"ID", "Name", "Route", "Recurrence", "Weekends", "Date Range", "Departures", "Vehicle", "Driver", "Status"},
			func(sc transit.Schedule) []string {
				return []string{sc.ID, sc.Name, sc.Route, string(sc.Recurrence), strconv.FormatBool(sc.Weekends), sc.DateRange, strings.Join(sc.Departures, " "), sc.Vehicle, sc.Driver, string(sc.Status)}
			}), true
	case "maintenance":
		rs := newResource(s, s.store.Maintenance)
		rs.narrow = narrowPhase
		return tableOf(rs,
			[]string{"ID", "Vehicle", "Type", "Phase", "Status", "Start", "Expected Completion", "Scheduled", "Completed", "Technician", "Priority", "Cost"},
			func(m transit.Maintenance) []string {
				return []string{m.ID, m.VehicleID, m.Type, string(m.Phase), string(m.Status), m.StartDate, m.ExpectedCompletion, m.ScheduledDate, m.CompletedDate, firstNonEmpty(m.Technician, m.AssignedTo), string(m.Priority), ftoa(m.Cost)}
			}), true
	case "reports":
		return tableOf(newResource(s, s.store.Reports),
			[]string{"ID", "Title", "Type", "Period", "Generated", "Author", "Summary"},
			func(rp transit.Report) []string {
				return []string{rp.ID, rp.Title, rp.Type, rp.Period, rp.GeneratedAt, rp.Author, rp.Summary}
			}), true
	}
	return csvTable{}, false
}

// exportCSV serves /api/export/{page}.csv with the page's q, tab and phase filters.
func (s *Server) exportCSV(w http.ResponseWriter, r *http.Request) {
	page, ok := strings.CutSuffix(r.PathValue("file"), ".csv")
	if !ok {
		writeError(w, http.StatusNotFound, "unknown export "+r.PathValue("file"))
		return
	}
	table, ok := s.csvTable(page)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown page "+page)
		return
	}
	rows, err := table.rows(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s_%s.csv", page, s.now().Format("20060102")))
	s.logExportError("csv", GenerateCSV(w, table.header, rows))
}

// exportSnapshot serves every collection as one JSON download.
func (s *Server) exportSnapshot(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Sim.Call(r.Context()); err != nil {
		s.fail(w, r, err)
		return
	}
	now := s.now()
	body, err := json.Marshal(s.store.Snapshot(now))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=transit_snapshot_%s.json", now.Format("20060102")))
	_, err = w.Write(body)
	s.logExportError("json", err)
}
