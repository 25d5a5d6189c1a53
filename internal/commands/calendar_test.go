package commands

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/klabast/wb-services/transit-dashboard/internal/calendar"
	"github.com/klabast/wb-services/transit-dashboard/internal/store"
	"github.com/klabast/wb-services/transit-dashboard/internal/transit"
)

var november = calendar.Month{Year: 2023, Month: time.November}

func seedLister[T any](items []T) lister[T] {
	return func(context.Context) ([]T, error) { return items, nil }
}

func TestRenderMonthMaintenance(t *testing.T) {
	seed := store.DefaultSeed()
	opts := GridOptions{
		Grid:      calendar.GridOptions{WeekStart: time.Sunday, Holidays: true},
		Limit:     3,
		CellWidth: 18,
	}

	var buf bytes.Buffer
	if err := RenderMonth(&buf, november, seed.Maintenance, opts, maintenanceTitle); err != nil {
		t.Fatalf("RenderMonth() error = %v", err)
	}
	out := buf.String()

	for _, want := range []string{"November 2023", "Sun", "Sat", "All Saints' Day", "+2 more", "BUS-003 Battery", "30"} {
		if !strings.Contains(out, want) {
			t.Errorf("Output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Battery Replacement") {
		t.Errorf("Titles should be truncated to the cell width:\n%s", out)
	}
	// MT-011 is the fifth event on the 20th and hidden behind "+2 more".
	if strings.Contains(out, "BUS-004 Tyre") {
		t.Errorf("Hidden event should not be printed:\n%s", out)
	}
}

func TestRenderMonthShowsEverythingWithoutLimit(t *testing.T) {
	seed := store.DefaultSeed()
	opts := GridOptions{Grid: calendar.GridOptions{WeekStart: time.Monday}, CellWidth: 30}

	var buf bytes.Buffer
	if err := RenderMonth(&buf, november, seed.Maintenance, opts, maintenanceTitle); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if strings.Contains(out, "more") {
		t.Errorf("Limit 0 should show every event:\n%s", out)
	}
	if !strings.Contains(out, "BUS-004 Tyre Rotation") {
		t.Errorf("Expected every title in full:\n%s", out)
	}
	if !strings.HasPrefix(strings.TrimSpace(strings.Split(out, "\n")[2]), "Mon") {
		t.Errorf("Expected week to start on Monday:\n%s", out)
	}
}

func TestRenderPage(t *testing.T) {
	seed := store.DefaultSeed()
	opts := GridOptions{Limit: 3, CellWidth: 24}
	maintenance := seedLister(seed.Maintenance)
	schedules := seedLister(seed.Schedules)

	var buf bytes.Buffer
	if err := renderPage(context.Background(), &buf, "schedules", "SCH-004", november, opts, maintenance, schedules); err != nil {
		t.Fatalf("renderPage() error = %v", err)
	}
	out := buf.String()
	if n := strings.Count(out, "RT-007 Christmas"); n != 7 {
		t.Errorf("Expected the shuttle on Nov 24-30 (7 days), got %d", n)
	}
	if strings.Contains(out, "RT-004") {
		t.Errorf("Search should hide other schedules:\n%s", out)
	}

	if err := renderPage(context.Background(), &buf, "fares", "", november, opts, maintenance, schedules); err == nil {
		t.Error("Expected error for unknown calendar")
	}

	failing := func(context.Context) ([]transit.Maintenance, error) { return nil, store.ErrUnavailable }
	err := renderPage(context.Background(), &buf, "maintenance", "", november, opts, failing, schedules)
	if !errors.Is(err, store.ErrUnavailable) {
		t.Errorf("Expected store error, got %v", err)
	}
}
