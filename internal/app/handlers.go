package app

import (
	"context"
	"io/fs"
	"net/http"
	"strings"

	"github.com/klabast/wb-services/transit-dashboard/internal/calendar"
	"github.com/klabast/wb-services/transit-dashboard/internal/logx"
	"github.com/klabast/wb-services/transit-dashboard/internal/transit"
)

// serveIndex serves the dashboard page.
func (s *Server) serveIndex(w http.ResponseWriter, r *http.Request) {
	if s.static == nil {
		writeError(w, http.StatusNotFound, "no dashboard page bundled")
		return
	}
	page, err := fs.ReadFile(s.static, "static/index.html")
	if err != nil {
		s.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := w.Write(page); err != nil {
		s.log.Debug("write index", logx.Err(err))
	}
}

// handleConfig returns the enumerations and display settings the dashboard renders with.
func (s *Server) handleConfig(w http.ResponseWriter, r *http.Request) {
	cfg := s.Config()
	today := s.now()
	week := cfg.Display.Week()

	writeJSON(w, http.StatusOK, map[string]any{
		"vehicleStatuses":     transit.VehicleStatuses,
		"driverStatuses":      transit.DriverStatuses,
		"stopTypes":           transit.StopTypes,
		"maintenanceStatuses": transit.MaintenanceStatuses,
		"maintenancePhases":   []transit.MaintenancePhase{transit.PhaseActive, transit.PhaseScheduled, transit.PhaseHistory},
		"priorities":          []transit.Priority{transit.PriorityLow, transit.PriorityMedium, transit.PriorityHigh, transit.PriorityCritical},
		"recurrences":         []transit.Recurrence{transit.RecurDaily, transit.RecurWeekly, transit.RecurSpecial},
		"maxEventsPerDay":     cfg.Display.MaxEventsPerDay,
		"weekStart":           week.String(),
		"weekdays":            calendar.WeekdayHeaders(week),
		"today":               calendar.FormatDate(today),
		"holidays":            calendar.Holidays(today.Year()),
		"backend":             s.store.Backend(),
		"writeProtected":      s.auth.Enabled(),
	})
}

type fleetCounts struct {
	Total    int            `json:"total"`
	ByStatus map[string]int `json:"byStatus"`
}

func countFleet(vehicles []transit.Vehicle) fleetCounts {
	c := fleetCounts{Total: len(vehicles), ByStatus: map[string]int{}}
	for _, st := range transit.VehicleStatuses {
		c.ByStatus[string(st)] = 0
	}
	for _, v := range vehicles {
		c.ByStatus[string(v.Status)]++
	}
	return c
}

// handleOverview aggregates the overview page in one simulated round trip.
func (s *Server) handleOverview(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Sim.Call(r.Context()); err != nil {
		s.fail(w, r, err)
		return
	}
	today := calendar.DateOf(s.now())

	drivers := map[string]int{}
	for _, d := range s.store.Drivers.All() {
		drivers[string(d.Status)]++
	}
	activeRoutes := 0
	for _, rt := range s.store.Routes.All() {
		if rt.Status == transit.RouteActive {
			activeRoutes++
		}
	}
	activeMaintenance, dueThisWeek := 0, 0
	weekEnd := today.AddDate(0, 0, 7)
	for _, m := range s.store.Maintenance.All() {
		switch m.Phase {
		case transit.PhaseActive:
			activeMaintenance++
		case transit.PhaseScheduled:
			if d, err := calendar.ParseDate(m.ScheduledDate); err == nil && !d.Before(today) && d.Before(weekEnd) {
				dueThisWeek++
			}
		}
	}
	schedulesToday := len(calendar.Project(today, s.store.Schedules.All()))

	writeJSON(w, http.StatusOK, map[string]any{
		"date":              calendar.FormatDate(today),
		"buses":             countFleet(s.store.Buses.All()),
		"taxis":             countFleet(s.store.Taxis.All()),
		"drivers":           drivers,
		"activeRoutes":      activeRoutes,
		"activeMaintenance": activeMaintenance,
		"maintenanceDue":    dueThisWeek,
		"schedulesToday":    schedulesToday,
		"stops":             len(s.store.Stops.All()),
		"telemetry":         s.tele.Summary(),
	})
}

func (s *Server) vehicleTelemetry(get func(context.Context, string) (transit.Vehicle, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v, err := get(r.Context(), r.PathValue("id"))
		if err != nil {
			s.fail(w, r, err)
			return
		}
		reading := s.tele.Get(v.ID)
		if v.Status == transit.VehicleOutOfService {
			reading.Occupancy, reading.WifiUsers = 0, 0
		}
		writeJSON(w, http.StatusOK, reading)
	}
}

// narrowPhase keeps the maintenance records of one page tab.
func narrowPhase(r *http.Request, items []transit.Maintenance) ([]transit.Maintenance, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("phase"))
	if raw == "" {
		return items, nil
	}
	phase := transit.MaintenancePhase(strings.ToLower(raw))
	if !phase.IsValid() {
		return nil, badRequest("unknown phase %q", raw)
	}
	var out []transit.Maintenance
	for _, m := range items {
		if m.Phase == phase {
			out = append(out, m)
		}
	}
	return out, nil
}

// maintenanceAction moves a record through its lifecycle.
func (s *Server) maintenanceAction(w http.ResponseWriter, r *http.Request) {
	action := transit.Action(r.PathValue("action"))
	if !action.IsValid() {
		s.fail(w, r, badRequest("unknown action %q", action))
		return
	}
	today := s.now()
	m, err := s.store.Maintenance.Mutate(r.Context(), r.PathValue("id"), func(m transit.Maintenance) (transit.Maintenance, error) {
		return m.Apply(action, today)
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.log.Info("maintenance transition",
		logx.String("id", m.ID),
		logx.String("action", string(action)),
		logx.String("phase", string(m.Phase)),
		logx.String("status", string(m.Status)))
	writeJSON(w, http.StatusOK, m)
}

func (s *Server) getMobileApp(w http.ResponseWriter, r *http.Request) {
	app, err := s.store.MobileApp.Get(r.Context(), transit.AppConfigID)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, app)
}

// updateMobileApp applies a partial update and stamps the time of change.
func (s *Server) updateMobileApp(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	stamp := s.now().UTC().Format("2006-01-02T15:04:05Z07:00")
	app, err := s.store.MobileApp.Mutate(r.Context(), transit.AppConfigID, func(cur transit.AppConfig) (transit.AppConfig, error) {
		if err := decodeStrict(body, &cur); err != nil {
			return cur, err
		}
		cur.UpdatedAt = stamp
		return cur, nil
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.log.Info("mobile app config updated", logx.String("version", app.Version), logx.Bool("maintenance_mode", app.MaintenanceMode))
	writeJSON(w, http.StatusOK, app)
}

// dataStatus reports whether there are unsaved changes.
func (s *Server) dataStatus(w http.ResponseWriter, r *http.Request) {
	staged, pending, err := s.store.Staged()
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if pending == nil {
		pending = []string{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"backend":    s.store.Backend(),
		"staged":     staged,
		"hasChanges": len(pending) > 0,
		"pending":    pending,
	})
}

// dataCommit promotes staged changes.
func (s *Server) dataCommit(w http.ResponseWriter, r *http.Request) {
	backups, err := s.store.Commit()
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if backups == nil {
		backups = []string{}
	}
	s.log.Info("changes committed", logx.Int("backups", len(backups)))
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "backups": backups})
}

// dataRevert drops staged changes and reloads committed data.
func (s *Server) dataRevert(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Revert(r.Context()); err != nil {
		s.fail(w, r, err)
		return
	}
	s.RefreshTelemetry()
	s.log.Info("changes reverted")
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
