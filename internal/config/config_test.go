package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/klabast/wb-services/transit-dashboard/internal/logx"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
	return path
}

func TestDefaults(t *testing.T) {
	t.Setenv("AUTH_FILE", "")
	cfg, err := NewManager("", logx.Nop()).Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Addr != DefaultAddr {
		t.Errorf("Expected addr %s, got %s", DefaultAddr, cfg.Server.Addr)
	}
	if cfg.Storage.Driver != "file" || cfg.Storage.Path != DefaultDataDir {
		t.Errorf("Unexpected storage defaults %+v", cfg.Storage)
	}
	if cfg.Display.MaxEventsPerDay != 3 || cfg.Display.Week() != time.Sunday {
		t.Errorf("Unexpected display defaults %+v", cfg.Display)
	}
	if cfg.Auth.File != DefaultAuthFile {
		t.Errorf("Expected auth file %s, got %s", DefaultAuthFile, cfg.Auth.File)
	}
	if !cfg.Storage.SeedEnabled() || !cfg.Logging.Logx().Console {
		t.Error("Seeding and console logging should default to on")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Defaults should validate: %v", err)
	}
}

func TestParseYAML(t *testing.T) {
	t.Setenv("AUTH_FILE", "")
	dir := t.TempDir()
	path := writeFile(t, dir, "transit-dashboard.yaml", `
server:
  addr: ":9090"
  read_timeout: 5s
logging:
  level: debug
  console: false
storage:
  driver: sqlite
display:
  max_events_per_day: 5
  week_start: Monday
simulate:
  latency: 150ms
  failure_rate: 0.1
jobs:
  telemetry_schedule: "@every 1m"
`)

	cfg, err := NewManager(path, logx.Nop()).Parse()
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if cfg.Server.Addr != ":9090" {
		t.Errorf("Expected :9090, got %s", cfg.Server.Addr)
	}
	read, write, _ := cfg.Server.Timeouts()
	if read != 5*time.Second || write != 30*time.Second {
		t.Errorf("Unexpected timeouts %v %v", read, write)
	}
	if cfg.Logging.Logx().Console {
		t.Error("Expected console logging off")
	}
	if cfg.Storage.Path != "transit.db" {
		t.Errorf("Expected sqlite default path, got %s", cfg.Storage.Path)
	}
	if cfg.Display.Week() != time.Monday || cfg.Display.MaxEventsPerDay != 5 {
		t.Errorf("Unexpected display %+v", cfg.Display)
	}
	if cfg.Simulate.LatencyDuration() != 150*time.Millisecond {
		t.Errorf("Expected 150ms latency, got %v", cfg.Simulate.LatencyDuration())
	}
}

func TestParseJSON(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.json", `{"storage":{"driver":"memory"},"rate_limit":{"per_sec":2,"burst":4}}`)

	cfg, err := NewManager(path, logx.Nop()).Parse()
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if cfg.Storage.Driver != "memory" || cfg.RateLimit.Burst != 4 {
		t.Errorf("Unexpected config %+v", cfg)
	}
}

func TestParseRejectsBadConfig(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		want    string
	}{
		{"unknown field", "c.yaml", "server:\n  port: 80\n", "port"},
		{"bad driver", "c.yaml", "storage:\n  driver: postgres\n", "storage.driver"},
		{"bad duration", "c.yaml", "simulate:\n  latency: soon\n", "simulate.latency"},
		{"bad week start", "c.yaml", "display:\n  week_start: Funday\n", "display.week_start"},
		{"bad failure rate", "c.yaml", "simulate:\n  failure_rate: 2\n", "simulate.failure_rate"},
		{"bad schedule", "c.yaml", "jobs:\n  backup_schedule: sometimes\n", "jobs.backup_schedule"},
		{"bad level", "c.yaml", "logging:\n  level: loud\n", "logging.level"},
		{"trailing json", "c.json", `{}{}`, "trailing"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, t.TempDir(), tt.file, tt.content)
			_, err := NewManager(path, logx.Nop()).Parse()
			if err == nil {
				t.Fatal("Expected an error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Expected error mentioning %q, got %v", tt.want, err)
			}
		})
	}
}

func TestAuthFileEnvOverride(t *testing.T) {
	t.Setenv("AUTH_FILE", "/etc/transit/auth.secret")
	cfg, err := NewManager("", logx.Nop()).Parse()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Auth.File != "/etc/transit/auth.secret" {
		t.Errorf("Expected AUTH_FILE override, got %s", cfg.Auth.File)
	}
}

func TestReloadPublishesOnlyChanges(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "c.yaml", "display:\n  max_events_per_day: 3\n")
	m := NewManager(path, logx.Nop())
	if _, err := m.Load(); err != nil {
		t.Fatal(err)
	}
	ch := m.Subscribe(1)
	defer m.Unsubscribe(ch)

	changed, err := m.Reload()
	if err != nil || changed {
		t.Fatalf("Unchanged file: changed=%v err=%v", changed, err)
	}

	writeFile(t, dir, "c.yaml", "display:\n  max_events_per_day: 4\n")
	changed, err = m.Reload()
	if err != nil || !changed {
		t.Fatalf("Changed file: changed=%v err=%v", changed, err)
	}
	select {
	case cfg := <-ch:
		if cfg.Display.MaxEventsPerDay != 4 {
			t.Errorf("Expected 4, got %d", cfg.Display.MaxEventsPerDay)
		}
	default:
		t.Fatal("Expected a published config")
	}

	writeFile(t, dir, "c.yaml", "display:\n  max_events_per_day: -1\n")
	if _, err := m.Reload(); err == nil {
		t.Error("Expected invalid config to be rejected")
	}
	if m.Get().Display.MaxEventsPerDay != 4 {
		t.Error("Rejected config must not replace the current one")
	}
}

func TestWatchPicksUpFileChanges(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "c.yaml", "display:\n  max_events_per_day: 3\n")
	m := NewManager(path, logx.Nop())
	if _, err := m.Load(); err != nil {
		t.Fatal(err)
	}
	ch := m.Subscribe(1)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		_ = m.Watch(ctx)
		close(done)
	}()
	defer func() {
		cancel()
		<-done
	}()

	deadline := time.After(5 * time.Second)
	tick := time.NewTicker(300 * time.Millisecond)
	defer tick.Stop()
	for {
		select {
		case cfg := <-ch:
			if cfg.Display.MaxEventsPerDay != 7 {
				t.Fatalf("Expected 7, got %d", cfg.Display.MaxEventsPerDay)
			}
			return
		case <-tick.C:
			writeFile(t, dir, "c.yaml", "display:\n  max_events_per_day: 7\n")
		case <-deadline:
			t.Fatal("Timed out waiting for reload")
		}
	}
}
