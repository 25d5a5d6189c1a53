package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/klabast/wb-services/transit-dashboard/internal/logx"
	"github.com/klabast/wb-services/transit-dashboard/internal/transit"
)

type Options struct {
	Driver      string
	Path        string
	BusyTimeout time.Duration
	Seed        bool

	Latency     time.Duration
	FailureRate float64
	SimSeed     int64
}

// Store groups the repositories behind every dashboard page.
type Store struct {
	Buses       Repository[transit.Vehicle]
	Taxis       Repository[transit.Vehicle]
	Drivers     Repository[transit.Driver]
	Routes      Repository[transit.Route]
	Stops       Repository[transit.BusStop]
	Fares       Repository[transit.Fare]
	Schedules   Repository[transit.Schedule]
	Maintenance Repository[transit.Maintenance]
	Reports     Repository[transit.Report]
	MobileApp   Repository[transit.AppConfig]

	Sim *Simulator

	backend Backend
	log     logx.Logger
	loaders []loader
}

// loader reads one collection, seeding it from d when the backend never stored it.
type loader struct {
	kind string
	load func(ctx context.Context, d Seed) (bool, error)
}

// OpenBackend initializes the configured backend.
func OpenBackend(ctx context.Context, opts Options, log logx.Logger) (Backend, error) {
	switch driver := strings.ToLower(strings.TrimSpace(opts.Driver)); driver {
	case "", "memory":
		return NewMemoryBackend(), nil
	case "file":
		return OpenFileBackend(opts.Path, log)
	case "sqlite", "sqlite3":
		return OpenSQLiteBackend(ctx, opts.Path, opts.BusyTimeout, log)
	default:
		return nil, errors.New("unknown storage driver: " + driver)
	}
}

// Open opens the backend, loads every collection and seeds the ones that were never
// stored.
func Open(ctx context.Context, opts Options, log logx.Logger) (*Store, error) {
	backend, err := OpenBackend(ctx, opts, log)
	if err != nil {
		return nil, err
	}
	s := New(backend, NewSimulator(opts.Latency, opts.FailureRate, opts.SimSeed), log)

	var seed *Seed
	if opts.Seed {
		d := DefaultSeed()
		seed = &d
	}
	if err := s.load(ctx, seed); err != nil {
		_ = backend.Close()
		return nil, err
	}
	return s, nil
}

// New wires collections to backend without loading them.
func New(backend Backend, sim *Simulator, log logx.Logger) *Store {
	s := &Store{Sim: sim, backend: backend, log: log}
	s.Buses = collection(s, "buses", "BUS", func(d Seed) []transit.Vehicle { return d.Buses })
	s.Taxis = collection(s, "taxis", "TAX", func(d Seed) []transit.Vehicle { return d.Taxis })
	s.Drivers = collection(s, "drivers", "DRV", func(d Seed) []transit.Driver { return d.Drivers })
	s.Routes = collection(s, "routes", "RT", func(d Seed) []transit.Route { return d.Routes })
	s.Stops = collection(s, "stops", "STP", func(d Seed) []transit.BusStop { return d.Stops })
	s.Fares = collection(s, "fares", "FR", func(d Seed) []transit.Fare { return d.Fares })
	s.Schedules = collection(s, "schedules", "SCH", func(d Seed) []transit.Schedule { return d.Schedules })
	s.Maintenance = collection(s, "maintenance", "MT", func(d Seed) []transit.Maintenance { return d.Maintenance })
	s.Reports = collection(s, "reports", "RPT", func(d Seed) []transit.Report { return d.Reports })
	s.MobileApp = collection(s, "mobile-app", "APP", func(d Seed) []transit.AppConfig { return d.MobileApp })
	return s
}

func collection[T Record[T]](s *Store, kind, prefix string, pick func(Seed) []T) Repository[T] {
	c := NewCollection[T](kind, prefix, s.backend, s.Sim)
	s.loaders = append(s.loaders, loader{kind: kind, load: func(ctx context.Context, d Seed) (bool, error) {
		return c.Load(ctx, pick(d))
	}})
	return c
}

func (s *Store) load(ctx context.Context, seed *Seed) error {
	// A nil seed leaves missing collections empty.
	var d Seed
	if seed != nil {
		d = *seed
	}

	st, staged := s.backend.(Stager)
	var pendingBefore []string
	if staged {
		pendingBefore, _ = st.Pending()
	}

	seeded := 0
	for _, l := range s.loaders {
		ok, err := l.load(ctx, d)
		if err != nil {
			return err
		}
		if ok {
			seeded++
			s.log.Info("seeded collection", logx.String("kind", l.kind))
		}
	}

	// Seed data is the baseline, not a pending edit. Unsaved edits from an earlier
	// run stay staged, together with the seed.
	if staged && seeded > 0 && len(pendingBefore) == 0 {
		if _, err := st.Commit(); err != nil && !errors.Is(err, ErrNoChanges) {
			return fmt.Errorf("commit seed: %w", err)
		}
	}
	return nil
}

func (s *Store) Backend() string { return s.backend.Name() }

func (s *Store) Close() error { return s.backend.Close() }

// Snapshot is every collection at one point in time.
type Snapshot struct {
	TakenAt     time.Time             `json:"takenAt"`
	Buses       []transit.Vehicle     `json:"buses"`
	Taxis       []transit.Vehicle     `json:"taxis"`
	Drivers     []transit.Driver      `json:"drivers"`
	Routes      []transit.Route       `json:"routes"`
	Stops       []transit.BusStop     `json:"stops"`
	Fares       []transit.Fare        `json:"fares"`
	Schedules   []transit.Schedule    `json:"schedules"`
	Maintenance []transit.Maintenance `json:"maintenance"`
	Reports     []transit.Report      `json:"reports"`
	MobileApp   []transit.AppConfig   `json:"mobileApp"`
}

// Snapshot copies every collection. It bypasses the simulator.
func (s *Store) Snapshot(now time.Time) Snapshot {
	return Snapshot{
		TakenAt:     now.UTC(),
		Buses:       s.Buses.All(),
		Taxis:       s.Taxis.All(),
		Drivers:     s.Drivers.All(),
		Routes:      s.Routes.All(),
		Stops:       s.Stops.All(),
		Fares:       s.Fares.All(),
		Schedules:   s.Schedules.All(),
		Maintenance: s.Maintenance.All(),
		Reports:     s.Reports.All(),
		MobileApp:   s.MobileApp.All(),
	}
}

// Staged reports whether the backend stages writes, and which kinds are pending.
func (s *Store) Staged() (bool, []string, error) {
	st, ok := s.backend.(Stager)
	if !ok {
		return false, nil, nil
	}
	pending, err := st.Pending()
	return true, pending, err
}

// Commit promotes staged writes. Backends without staging have nothing to commit.
func (s *Store) Commit() ([]string, error) {
	st, ok := s.backend.(Stager)
	if !ok {
		return nil, ErrNoChanges
	}
	return st.Commit()
}

// Revert drops staged writes and reloads every collection from committed data.
func (s *Store) Revert(ctx context.Context) error {
	st, ok := s.backend.(Stager)
	if !ok {
		return ErrNoChanges
	}
	if err := st.Revert(); err != nil {
		return err
	}
	return s.load(ctx, nil)
}
