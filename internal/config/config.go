// Package config loads the dashboard configuration from YAML or JSON and reloads it
// when the file changes.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/klabast/wb-services/transit-dashboard/internal/logx"
)

type Config struct {
	Server    ServerConfig    `json:"server"`
	Logging   LoggingConfig   `json:"logging"`
	Storage   StorageConfig   `json:"storage"`
	Auth      AuthConfig      `json:"auth"`
	Display   DisplayConfig   `json:"display"`
	Simulate  SimulateConfig  `json:"simulate"`
	RateLimit RateLimitConfig `json:"rate_limit"`
	Jobs      JobsConfig      `json:"jobs"`
}

// ServerConfig durations are Go duration strings ("10s", "1m").
type ServerConfig struct {
	Addr            string `json:"addr,omitempty"`
	ReadTimeout     string `json:"read_timeout,omitempty"`
	WriteTimeout    string `json:"write_timeout,omitempty"`
	ShutdownTimeout string `json:"shutdown_timeout,omitempty"`
}

type LoggingConfig struct {
	Level   string `json:"level,omitempty"`
	Console *bool  `json:"console,omitempty"`
	File    string `json:"file,omitempty"`
}

// StorageConfig selects the record backend. Driver is one of memory, file or sqlite.
// Path is a directory for file and a database file for sqlite.
type StorageConfig struct {
	Driver      string `json:"driver,omitempty"`
	Path        string `json:"path,omitempty"`
	BusyTimeout string `json:"busy_timeout,omitempty"`
	Seed        *bool  `json:"seed,omitempty"`
}

type AuthConfig struct {
	File string `json:"file,omitempty"`
}

type DisplayConfig struct {
	MaxEventsPerDay int    `json:"max_events_per_day,omitempty"`
	WeekStart       string `json:"week_start,omitempty"`
}

// SimulateConfig adds artificial latency and failures to every store call.
type SimulateConfig struct {
	Latency     string  `json:"latency,omitempty"`
	FailureRate float64 `json:"failure_rate,omitempty"`
	Seed        int64   `json:"seed,omitempty"`
}

type RateLimitConfig struct {
	PerSec float64 `json:"per_sec,omitempty"`
	Burst  int     `json:"burst,omitempty"`
}

// JobsConfig schedules use the standard cron syntax or descriptors like "@every 5m".
type JobsConfig struct {
	BackupSchedule    string `json:"backup_schedule,omitempty"`
	BackupDir         string `json:"backup_dir,omitempty"`
	TelemetrySchedule string `json:"telemetry_schedule,omitempty"`
}

const (
	DefaultAddr              = ":8080"
	DefaultDataDir           = "data"
	DefaultAuthFile          = "auth.secret"
	DefaultMaxEventsPerDay   = 3
	DefaultBackupSchedule    = "@daily"
	DefaultBackupDir         = "backup"
	DefaultTelemetrySchedule = "@every 5m"
)

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := &Config{}
	cfg.ApplyDefaults()
	return cfg
}

// ApplyDefaults fills every omitted field.
func (c *Config) ApplyDefaults() {
	if c.Server.Addr == "" {
		c.Server.Addr = DefaultAddr
	}
	if c.Server.ReadTimeout == "" {
		c.Server.ReadTimeout = "10s"
	}
	if c.Server.WriteTimeout == "" {
		c.Server.WriteTimeout = "30s"
	}
	if c.Server.ShutdownTimeout == "" {
		c.Server.ShutdownTimeout = "10s"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Console == nil {
		c.Logging.Console = boolPtr(true)
	}
	if c.Storage.Driver == "" {
		c.Storage.Driver = "file"
	}
	if c.Storage.Path == "" {
		switch c.Storage.Driver {
		case "sqlite":
			c.Storage.Path = "transit.db"
		default:
			c.Storage.Path = DefaultDataDir
		}
	}
	if c.Storage.BusyTimeout == "" {
		c.Storage.BusyTimeout = "5s"
	}
	if c.Storage.Seed == nil {
		c.Storage.Seed = boolPtr(true)
	}
	if c.Auth.File == "" {
		c.Auth.File = DefaultAuthFile
	}
	if c.Display.MaxEventsPerDay == 0 {
		c.Display.MaxEventsPerDay = DefaultMaxEventsPerDay
	}
	if c.Display.WeekStart == "" {
		c.Display.WeekStart = "sunday"
	}
	if c.RateLimit.PerSec == 0 {
		c.RateLimit.PerSec = 5
	}
	if c.RateLimit.Burst == 0 {
		c.RateLimit.Burst = 10
	}
	if c.Jobs.BackupSchedule == "" {
		c.Jobs.BackupSchedule = DefaultBackupSchedule
	}
	if c.Jobs.BackupDir == "" {
		c.Jobs.BackupDir = DefaultBackupDir
	}
	if c.Jobs.TelemetrySchedule == "" {
		c.Jobs.TelemetrySchedule = DefaultTelemetrySchedule
	}
}

// ApplyEnv lets AUTH_FILE override the auth file location.
func (c *Config) ApplyEnv() {
	if v := strings.TrimSpace(os.Getenv("AUTH_FILE")); v != "" {
		c.Auth.File = v
	}
}

// Validate checks a defaulted config.
func (c *Config) Validate() error {
	var errs []error
	for path, raw := range map[string]string{
		"server.read_timeout":     c.Server.ReadTimeout,
		"server.write_timeout":    c.Server.WriteTimeout,
		"server.shutdown_timeout": c.Server.ShutdownTimeout,
		"storage.busy_timeout":    c.Storage.BusyTimeout,
		"simulate.latency":        c.Simulate.Latency,
	} {
		if _, err := ParseDurationField(path, raw); err != nil {
			errs = append(errs, err)
		}
	}
	if !logx.ValidLevel(c.Logging.Level) {
		errs = append(errs, fmt.Errorf("logging.level: unknown level %q", c.Logging.Level))
	}
	switch c.Storage.Driver {
	case "memory", "file", "sqlite":
	default:
		errs = append(errs, fmt.Errorf("storage.driver: unknown driver %q", c.Storage.Driver))
	}
	if c.Display.MaxEventsPerDay < 0 {
		errs = append(errs, errors.New("display.max_events_per_day: must be >= 0"))
	}
	if _, err := ParseWeekday(c.Display.WeekStart); err != nil {
		errs = append(errs, fmt.Errorf("display.week_start: %w", err))
	}
	if c.Simulate.FailureRate < 0 || c.Simulate.FailureRate > 1 {
		errs = append(errs, errors.New("simulate.failure_rate: must be between 0 and 1"))
	}
	if c.RateLimit.PerSec < 0 || c.RateLimit.Burst < 0 {
		errs = append(errs, errors.New("rate_limit: values must be >= 0"))
	}
	for path, spec := range map[string]string{
		"jobs.backup_schedule":    c.Jobs.BackupSchedule,
		"jobs.telemetry_schedule": c.Jobs.TelemetrySchedule,
	} {
		if spec == "off" {
			continue
		}
		if _, err := cron.ParseStandard(spec); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", path, err))
		}
	}
	return errors.Join(errs...)
}

// Durations resolved from the server section. Validate must have passed.
func (s ServerConfig) Timeouts() (read, write, shutdown time.Duration) {
	read, _ = ParseDurationOrDefault("server.read_timeout", s.ReadTimeout, 10*time.Second)
	write, _ = ParseDurationOrDefault("server.write_timeout", s.WriteTimeout, 30*time.Second)
	shutdown, _ = ParseDurationOrDefault("server.shutdown_timeout", s.ShutdownTimeout, 10*time.Second)
	return read, write, shutdown
}

func (s SimulateConfig) LatencyDuration() time.Duration {
	d, _ := ParseDurationField("simulate.latency", s.Latency)
	return d
}

func (s StorageConfig) BusyTimeoutDuration() time.Duration {
	d, _ := ParseDurationOrDefault("storage.busy_timeout", s.BusyTimeout, 5*time.Second)
	return d
}

func (s StorageConfig) SeedEnabled() bool { return s.Seed == nil || *s.Seed }

func (l LoggingConfig) Logx() logx.Config {
	return logx.Config{Level: l.Level, Console: l.Console == nil || *l.Console, File: l.File}
}

// Week returns the configured first day of the week, Sunday when unset or invalid.
func (d DisplayConfig) Week() time.Weekday {
	w, err := ParseWeekday(d.WeekStart)
	if err != nil {
		return time.Sunday
	}
	return w
}

func ParseWeekday(s string) (time.Weekday, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "" {
		return time.Sunday, nil
	}
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.ToLower(d.String()) == name {
			return d, nil
		}
	}
	return time.Sunday, fmt.Errorf("unknown weekday %q", s)
}

func boolPtr(b bool) *bool { return &b }
