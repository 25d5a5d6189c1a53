package store

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/klabast/wb-services/transit-dashboard/internal/logx"
	"github.com/klabast/wb-services/transit-dashboard/internal/transit"
)

func newDrivers(t *testing.T) *Collection[transit.Driver] {
	t.Helper()
	c := NewCollection[transit.Driver]("drivers", "DRV", NewMemoryBackend(), nil)
	if _, err := c.Load(context.Background(), DefaultSeed().Drivers); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	return c
}

func TestCollectionCRUD(t *testing.T) {
	ctx := context.Background()
	c := newDrivers(t)
	before, _ := c.List(ctx)

	created, err := c.Create(ctx, transit.Driver{Name: "Nina Brandt", License: "D-700100", Status: transit.DriverInTraining})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if !strings.HasPrefix(created.ID, "DRV-") || len(created.ID) != len("DRV-")+8 {
		t.Errorf("Unexpected generated ID %q", created.ID)
	}

	list, _ := c.List(ctx)
	if len(list) != len(before)+1 || list[len(list)-1].ID != created.ID {
		t.Errorf("Expected new driver appended, got %d records", len(list))
	}

	created.Status = transit.DriverOnDuty
	updated, err := c.Update(ctx, created)
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	got, err := c.Get(ctx, created.ID)
	if err != nil || got.Status != transit.DriverOnDuty || updated.Status != transit.DriverOnDuty {
		t.Errorf("Expected updated status, got %+v (err %v)", got, err)
	}

	if err := c.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := c.Get(ctx, created.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound after delete, got %v", err)
	}
}

func TestCollectionErrors(t *testing.T) {
	ctx := context.Background()
	c := newDrivers(t)

	if _, err := c.Create(ctx, transit.Driver{ID: "DRV-001", Name: "Dup", License: "X", Status: transit.DriverOnDuty}); !errors.Is(err, ErrConflict) {
		t.Errorf("Expected ErrConflict, got %v", err)
	}
	if _, err := c.Update(ctx, transit.Driver{ID: "DRV-999", Name: "Ghost", License: "X", Status: transit.DriverOnDuty}); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound on update, got %v", err)
	}
	if err := c.Delete(ctx, "DRV-999"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound on delete, got %v", err)
	}

	var verr *transit.ValidationError
	if _, err := c.Create(ctx, transit.Driver{Name: "No License", Status: transit.DriverOnDuty}); !errors.As(err, &verr) {
		t.Errorf("Expected ValidationError, got %v", err)
	}
	list, _ := c.List(ctx)
	if len(list) != len(DefaultSeed().Drivers) {
		t.Errorf("Failed writes must not change the collection, got %d records", len(list))
	}
}

func TestMutateKeepsID(t *testing.T) {
	ctx := context.Background()
	c := NewCollection[transit.Maintenance]("maintenance", "MT", NewMemoryBackend(), nil)
	if _, err := c.Load(ctx, DefaultSeed().Maintenance); err != nil {
		t.Fatal(err)
	}

	today := time.Date(2023, 11, 20, 0, 0, 0, 0, time.UTC)
	m, err := c.Mutate(ctx, "MT-010", func(m transit.Maintenance) (transit.Maintenance, error) {
		m, err := m.Apply(transit.ActionStart, today)
		m.ID = "something-else"
		return m, err
	})
	if err != nil {
		t.Fatalf("Mutate() error = %v", err)
	}
	if m.ID != "MT-010" || m.Phase != transit.PhaseActive {
		t.Errorf("Unexpected result %+v", m)
	}

	_, err = c.Mutate(ctx, "MT-010", func(m transit.Maintenance) (transit.Maintenance, error) {
		return m.Apply(transit.ActionStart, today)
	})
	if !errors.Is(err, transit.ErrTransition) {
		t.Errorf("Expected ErrTransition, got %v", err)
	}
}

func TestCollectionHandsOutCopies(t *testing.T) {
	ctx := context.Background()
	c := NewCollection[transit.Route]("routes", "RT", NewMemoryBackend(), nil)
	if _, err := c.Load(ctx, DefaultSeed().Routes); err != nil {
		t.Fatal(err)
	}

	got, err := c.Get(ctx, "RT-004")
	if err != nil {
		t.Fatal(err)
	}
	got.Stops[0] = "STP-999"
	for _, rt := range c.All() {
		if rt.ID == "RT-007" {
			rt.Stops[0] = "STP-999"
		}
	}

	_, err = c.Mutate(ctx, "RT-012", func(rt transit.Route) (transit.Route, error) {
		rt.Stops[0] = "STP-999"
		rt.Name = ""
		return rt, nil
	})
	var verr *transit.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Expected ValidationError, got %v", err)
	}

	want := map[string]string{"RT-004": "STP-001", "RT-007": "STP-002", "RT-012": "STP-001"}
	for id, stop := range want {
		rt, _ := c.Get(ctx, id)
		if rt.Stops[0] != stop {
			t.Errorf("%s: stored stops changed to %v", id, rt.Stops)
		}
	}
}

func TestLoadSeedsOnlyOnce(t *testing.T) {
	ctx := context.Background()
	backend := NewMemoryBackend()

	first := NewCollection[transit.Route]("routes", "RT", backend, nil)
	seeded, err := first.Load(ctx, DefaultSeed().Routes)
	if err != nil || !seeded {
		t.Fatalf("First load: seeded=%v err=%v", seeded, err)
	}
	if err := first.Delete(ctx, "RT-030"); err != nil {
		t.Fatal(err)
	}

	second := NewCollection[transit.Route]("routes", "RT", backend, nil)
	seeded, err = second.Load(ctx, DefaultSeed().Routes)
	if err != nil || seeded {
		t.Fatalf("Second load: seeded=%v err=%v", seeded, err)
	}
	if got := len(second.All()); got != len(DefaultSeed().Routes)-1 {
		t.Errorf("Expected stored records to win over seed, got %d", got)
	}
}

func TestSimulatorFailure(t *testing.T) {
	ctx := context.Background()
	sim := NewSimulator(0, 1, 42)
	c := NewCollection[transit.Fare]("fares", "FR", NewMemoryBackend(), sim)
	if _, err := c.Load(ctx, DefaultSeed().Fares); err != nil {
		t.Fatal(err)
	}

	if _, err := c.List(ctx); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("Expected ErrUnavailable, got %v", err)
	}

	sim.Set(0, 0)
	list, err := c.List(ctx)
	if err != nil || len(list) != len(DefaultSeed().Fares) {
		t.Errorf("Retry should succeed, got %d records (err %v)", len(list), err)
	}
}

func TestSimulatorLatencyHonoursCancel(t *testing.T) {
	sim := NewSimulator(time.Hour, 0, 1)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	start := time.Now()
	err := sim.Call(ctx)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Expected deadline exceeded, got %v", err)
	}
	if time.Since(start) > 5*time.Second {
		t.Error("Call should return when the context is done")
	}
}

func TestNilSimulator(t *testing.T) {
	var sim *Simulator
	if err := sim.Call(context.Background()); err != nil {
		t.Errorf("Nil simulator should pass, got %v", err)
	}
	sim.Set(time.Second, 1)
}

func TestOpenMemorySeedsEverything(t *testing.T) {
	s, err := Open(context.Background(), Options{Driver: "memory", Seed: true}, logx.Nop())
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer s.Close()

	snap := s.Snapshot(time.Now())
	seed := DefaultSeed()
	if len(snap.Buses) != len(seed.Buses) || len(snap.Taxis) != len(seed.Taxis) || len(snap.MobileApp) != 1 {
		t.Errorf("Unexpected snapshot sizes: %d buses, %d taxis, %d app configs", len(snap.Buses), len(snap.Taxis), len(snap.MobileApp))
	}

	m, err := s.Maintenance.Get(context.Background(), "MT-001")
	if err != nil {
		t.Fatal(err)
	}
	if m.StartDate != "2023-11-18" || m.ExpectedCompletion != "2023-11-22" {
		t.Errorf("Unexpected November maintenance record %+v", m)
	}
	if s.Backend() != "memory" {
		t.Errorf("Expected memory backend, got %s", s.Backend())
	}
	if staged, _, _ := s.Staged(); staged {
		t.Error("Memory backend does not stage writes")
	}
	if _, err := s.Commit(); !errors.Is(err, ErrNoChanges) {
		t.Errorf("Expected ErrNoChanges, got %v", err)
	}
}

func TestSeedRecordsAreValid(t *testing.T) {
	seed := DefaultSeed()
	check := func(kind, id string, err error) {
		if err != nil {
			t.Errorf("%s %s: %v", kind, id, err)
		}
	}
	for _, v := range append(seed.Buses, seed.Taxis...) {
		check("vehicle", v.ID, v.Validate())
	}
	for _, d := range seed.Drivers {
		check("driver", d.ID, d.Validate())
	}
	for _, r := range seed.Routes {
		check("route", r.ID, r.Validate())
	}
	for _, s := range seed.Stops {
		check("stop", s.ID, s.Validate())
	}
	for _, f := range seed.Fares {
		check("fare", f.ID, f.Validate())
	}
	for _, s := range seed.Schedules {
		check("schedule", s.ID, s.Validate())
	}
	for _, m := range seed.Maintenance {
		check("maintenance", m.ID, m.Validate())
	}
	for _, r := range seed.Reports {
		check("report", r.ID, r.Validate())
	}
	for _, a := range seed.MobileApp {
		check("app config", a.ID, a.Validate())
	}
}

func TestOpenUnknownDriver(t *testing.T) {
	if _, err := Open(context.Background(), Options{Driver: "postgres"}, logx.Nop()); err == nil {
		t.Error("Expected an error for an unknown driver")
	}
}
