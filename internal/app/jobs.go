package app

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/goccy/go-json"
	"github.com/robfig/cron/v3"

	"github.com/klabast/wb-services/transit-dashboard/internal/config"
	"github.com/klabast/wb-services/transit-dashboard/internal/logx"
)

const snapshotPrefix = "snapshot_"

// Jobs runs the periodic snapshot backup and telemetry refresh. A schedule of "off"
// disables that job.
type Jobs struct {
	srv *Server

	mu sync.Mutex
	c  *cron.Cron
}

func newJobs(s *Server) *Jobs { return &Jobs{srv: s} }

func (j *Jobs) Running() bool {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.c != nil
}

// Start (re)schedules both jobs from cfg.
func (j *Jobs) Start(cfg config.JobsConfig) error {
	c := cron.New(cron.WithChain(cron.Recover(cronLogger{j.srv.log})))

	if cfg.BackupSchedule != "off" {
		dir := cfg.BackupDir
		if _, err := c.AddFunc(cfg.BackupSchedule, func() {
			path, err := j.srv.BackupSnapshot(dir)
			if err != nil {
				j.srv.log.Error("snapshot backup failed", logx.Err(err))
				return
			}
			j.srv.log.Info("snapshot backup written", logx.String("path", path))
		}); err != nil {
			return fmt.Errorf("jobs.backup_schedule: %w", err)
		}
	}
	if cfg.TelemetrySchedule != "off" {
		if _, err := c.AddFunc(cfg.TelemetrySchedule, j.srv.RefreshTelemetry); err != nil {
			return fmt.Errorf("jobs.telemetry_schedule: %w", err)
		}
	}

	j.mu.Lock()
	old := j.c
	j.c = c
	j.mu.Unlock()
	if old != nil {
		<-old.Stop().Done()
	}
	c.Start()
	j.srv.log.Debug("jobs scheduled",
		logx.String("backup", cfg.BackupSchedule),
		logx.String("telemetry", cfg.TelemetrySchedule))
	return nil
}

// Stop waits for running jobs to finish.
func (j *Jobs) Stop() {
	j.mu.Lock()
	c := j.c
	j.c = nil
	j.mu.Unlock()
	if c != nil {
		<-c.Stop().Done()
	}
}

// BackupSnapshot writes every collection to a timestamped JSON file in dir.
func (s *Server) BackupSnapshot(dir string) (string, error) {
	now := s.now().UTC()
	body, err := json.MarshalIndent(s.store.Snapshot(now), "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode snapshot: %w", err)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create backup dir: %w", err)
	}
	path := filepath.Join(dir, snapshotPrefix+now.Format("20060102T150405Z")+".json")
	if err := os.WriteFile(path, body, 0644); err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}
	return path, nil
}

// RefreshTelemetry regenerates readings for every bus and taxi.
func (s *Server) RefreshTelemetry() {
	ids := s.vehicleIDs()
	s.tele.Refresh(ids, s.now())
	s.log.Debug("telemetry refreshed", logx.Int("vehicles", len(ids)))
}

func (s *Server) vehicleIDs() []string {
	if s.store == nil {
		return nil
	}
	var ids []string
	for _, v := range s.store.Buses.All() {
		ids = append(ids, v.ID)
	}
	for _, v := range s.store.Taxis.All() {
		ids = append(ids, v.ID)
	}
	return ids
}

// cronLogger routes cron's own messages into logx.
type cronLogger struct{ log logx.Logger }

func (l cronLogger) Info(msg string, kv ...any) {
	l.log.Debug("cron: "+msg, logx.Any("details", kv))
}

func (l cronLogger) Error(err error, msg string, kv ...any) {
	l.log.Error("cron: "+msg, logx.Err(err), logx.Any("details", kv))
}

var _ cron.Logger = cronLogger{}
