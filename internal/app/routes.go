package app

import (
	"io/fs"
	"net/http"

	"github.com/klabast/wb-services/transit-dashboard/internal/transit"
)

// Handler builds the router. Write endpoints go through guard.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", s.serveIndex)
	if s.static != nil {
		if sub, err := fs.Sub(s.static, "static"); err == nil {
			mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(sub))))
		}
	}
	mux.HandleFunc("GET /api/config", s.handleConfig)
	mux.HandleFunc("GET /api/overview", s.handleOverview)

	buses := newResource(s, s.store.Buses)
	buses.prepare = withKind(transit.KindBus)
	buses.mount(mux, "/api/buses")
	mux.HandleFunc("GET /api/buses/{id}/telemetry", s.vehicleTelemetry(s.store.Buses.Get))

	taxis := newResource(s, s.store.Taxis)
	taxis.prepare = withKind(transit.KindTaxi)
	taxis.mount(mux, "/api/taxis")
	mux.HandleFunc("GET /api/taxis/{id}/telemetry", s.vehicleTelemetry(s.store.Taxis.Get))

	newResource(s, s.store.Drivers).mount(mux, "/api/drivers")
	newResource(s, s.store.Routes).mount(mux, "/api/routes")
	newResource(s, s.store.Stops).mount(mux, "/api/stops")
	newResource(s, s.store.Fares).mount(mux, "/api/fares")
	newResource(s, s.store.Schedules).mount(mux, "/api/schedules")
	newResource(s, s.store.Reports).mount(mux, "/api/reports")

	maintenance := newResource(s, s.store.Maintenance)
	maintenance.narrow = narrowPhase
	maintenance.mount(mux, "/api/maintenance")
	mux.Handle("POST /api/maintenance/{id}/{action}", s.guard(s.maintenanceAction))

	mux.HandleFunc("GET /api/calendar/maintenance", s.maintenanceMonth)
	mux.HandleFunc("GET /api/calendar/maintenance/day", s.maintenanceDay)
	mux.HandleFunc("GET /api/calendar/schedules", s.scheduleMonth)
	mux.HandleFunc("GET /api/calendar/schedules/day", s.scheduleDay)

	mux.HandleFunc("GET /api/export/maintenance.ics", s.exportMaintenanceICS)
	mux.HandleFunc("GET /api/export/snapshot.json", s.exportSnapshot)
	mux.HandleFunc("GET /api/export/{file}", s.exportCSV)

	mux.HandleFunc("GET /api/mobile-app", s.getMobileApp)
	mux.Handle("PUT /api/mobile-app", s.guard(s.updateMobileApp))

	mux.Handle("GET /api/data/status", s.auth.Require(http.HandlerFunc(s.dataStatus)))
	mux.Handle("POST /api/data/commit", s.guard(s.dataCommit))
	mux.Handle("POST /api/data/revert", s.guard(s.dataRevert))

	return s.logRequests(mux)
}

func withKind(kind transit.VehicleKind) func(transit.Vehicle) transit.Vehicle {
	return func(v transit.Vehicle) transit.Vehicle {
		v.Kind = kind
		return v
	}
}
