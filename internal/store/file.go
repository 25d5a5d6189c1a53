package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/goccy/go-json"

	"github.com/klabast/wb-services/transit-dashboard/internal/logx"
)

const (
	BackupDir       = "backup"
	BackupSuffix    = ".backup"
	TmpSuffix       = ".tmp.json"
	FilePermissions = 0644
)

// FileBackend stores each collection as a JSON array in <dir>/<kind>.json.
// Saves go to <kind>.tmp.json first; Commit promotes them and keeps the previous
// version under backup/, Revert throws them away.
type FileBackend struct {
	dir string
	log logx.Logger

	mu sync.Mutex
}

func OpenFileBackend(dir string, log logx.Logger) (*FileBackend, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, errors.New("file storage path is required")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	return &FileBackend{dir: dir, log: log}, nil
}

func (f *FileBackend) Name() string { return "file" }

func (f *FileBackend) mainPath(kind string) string { return filepath.Join(f.dir, kind+".json") }
func (f *FileBackend) tmpPath(kind string) string  { return filepath.Join(f.dir, kind+TmpSuffix) }

// Load prefers staged changes over the committed file.
func (f *FileBackend) Load(_ context.Context, kind string) ([]Row, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	path := f.tmpPath(kind)
	if _, err := os.Stat(path); err == nil {
		f.log.Warn("loading unsaved changes", logx.String("file", path))
	} else {
		path = f.mainPath(kind)
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var bodies []json.RawMessage
	if err := json.Unmarshal(data, &bodies); err != nil {
		return nil, false, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	rows := make([]Row, 0, len(bodies))
	for _, b := range bodies {
		var head struct {
			ID string `json:"id"`
		}
		_ = json.Unmarshal(b, &head)
		rows = append(rows, Row{ID: head.ID, Body: []byte(b)})
	}
	return rows, true, nil
}

// Save stages rows in the kind's temp file.
func (f *FileBackend) Save(_ context.Context, kind string, rows []Row) error {
	bodies := make([]json.RawMessage, 0, len(rows))
	for _, r := range rows {
		bodies = append(bodies, json.RawMessage(r.Body))
	}
	data, err := json.MarshalIndent(bodies, "", "  ")
	if err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	return os.WriteFile(f.tmpPath(kind), data, FilePermissions)
}

// Pending lists the kinds with staged changes.
func (f *FileBackend) Pending() ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pendingLocked()
}

func (f *FileBackend) pendingLocked() ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(f.dir, "*"+TmpSuffix))
	if err != nil {
		return nil, err
	}
	kinds := make([]string, 0, len(matches))
	for _, m := range matches {
		kinds = append(kinds, strings.TrimSuffix(filepath.Base(m), TmpSuffix))
	}
	sort.Strings(kinds)
	return kinds, nil
}

// Commit promotes every staged file. The committed version it replaces is moved
// into the backup directory with a timestamp prefix.
func (f *FileBackend) Commit() ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	kinds, err := f.pendingLocked()
	if err != nil {
		return nil, err
	}
	if len(kinds) == 0 {
		return nil, ErrNoChanges
	}

	backupDirPath := filepath.Join(f.dir, BackupDir)
	if err := os.MkdirAll(backupDirPath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create backup directory: %w", err)
	}

	timestamp := time.Now().Unix()
	var backups []string
	for _, kind := range kinds {
		main := f.mainPath(kind)
		if _, err := os.Stat(main); err == nil {
			backupFile := filepath.Join(backupDirPath, fmt.Sprintf("%d_%s.json%s", timestamp, kind, BackupSuffix))
			if err := os.Rename(main, backupFile); err != nil {
				return backups, fmt.Errorf("failed to create backup: %w", err)
			}
			backups = append(backups, backupFile)
		}
		if err := os.Rename(f.tmpPath(kind), main); err != nil {
			return backups, fmt.Errorf("failed to commit %s: %w", kind, err)
		}
	}
	f.log.Info("changes committed", logx.String("dir", f.dir), logx.Int("collections", len(kinds)), logx.Int("backups", len(backups)))
	return backups, nil
}

// Revert deletes every staged file. Callers reload their collections afterwards.
func (f *FileBackend) Revert() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	kinds, err := f.pendingLocked()
	if err != nil {
		return err
	}
	if len(kinds) == 0 {
		return ErrNoChanges
	}
	for _, kind := range kinds {
		if err := os.Remove(f.tmpPath(kind)); err != nil {
			return fmt.Errorf("failed to remove tmp file: %w", err)
		}
	}
	f.log.Info("changes reverted", logx.String("dir", f.dir), logx.Int("collections", len(kinds)))
	return nil
}

func (f *FileBackend) Close() error { return nil }
