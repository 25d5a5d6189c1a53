package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klabast/wb-services/transit-dashboard/internal/logx"
	"github.com/klabast/wb-services/transit-dashboard/internal/transit"
)

func TestFileBackendStagesCommitsAndReverts(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	s, err := Open(ctx, Options{Driver: "file", Path: dir, Seed: true}, logx.Nop())
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	// Seeding is committed straight away.
	if _, err := os.Stat(filepath.Join(dir, "buses.json")); err != nil {
		t.Fatalf("Expected committed buses.json: %v", err)
	}
	staged, pending, err := s.Staged()
	if err != nil || !staged || len(pending) != 0 {
		t.Fatalf("Expected nothing pending after seeding, got %v (err %v)", pending, err)
	}

	if err := s.Stops.Delete(ctx, "STP-006"); err != nil {
		t.Fatal(err)
	}
	_, pending, _ = s.Staged()
	if len(pending) != 1 || pending[0] != "stops" {
		t.Fatalf("Expected stops pending, got %v", pending)
	}
	if _, err := os.Stat(filepath.Join(dir, "stops"+TmpSuffix)); err != nil {
		t.Errorf("Expected tmp file: %v", err)
	}

	// Revert restores the committed version.
	if err := s.Revert(ctx); err != nil {
		t.Fatalf("Revert() error = %v", err)
	}
	if _, err := s.Stops.Get(ctx, "STP-006"); err != nil {
		t.Errorf("Expected STP-006 back after revert: %v", err)
	}
	if err := s.Revert(ctx); !errors.Is(err, ErrNoChanges) {
		t.Errorf("Expected ErrNoChanges, got %v", err)
	}

	// Commit keeps the previous version in backup/.
	if err := s.Stops.Delete(ctx, "STP-006"); err != nil {
		t.Fatal(err)
	}
	backups, err := s.Commit()
	if err != nil {
		t.Fatalf("Commit() error = %v", err)
	}
	if len(backups) != 1 || !strings.HasSuffix(backups[0], "_stops.json"+BackupSuffix) {
		t.Errorf("Unexpected backups %v", backups)
	}
	if filepath.Dir(backups[0]) != filepath.Join(dir, BackupDir) {
		t.Errorf("Backup should live in %s, got %s", BackupDir, backups[0])
	}
	if _, err := os.Stat(filepath.Join(dir, "stops"+TmpSuffix)); !os.IsNotExist(err) {
		t.Error("Tmp file should be gone after commit")
	}

	// A fresh process sees the committed data and does not reseed.
	reopened, err := Open(ctx, Options{Driver: "file", Path: dir, Seed: true}, logx.Nop())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := reopened.Stops.Get(ctx, "STP-006"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected STP-006 to stay deleted, got %v", err)
	}
}

func TestFileBackendPrefersUnsavedChanges(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	s, err := Open(ctx, Options{Driver: "file", Path: dir, Seed: true}, logx.Nop())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.Fares.Create(ctx, transit.Fare{ID: "FR-100", Name: "Weekend Pass", Class: "Regular", Currency: "EUR", Amount: 12}); err != nil {
		t.Fatal(err)
	}

	reopened, err := Open(ctx, Options{Driver: "file", Path: dir, Seed: true}, logx.Nop())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := reopened.Fares.Get(ctx, "FR-100"); err != nil {
		t.Errorf("Expected staged fare after restart: %v", err)
	}
	_, pending, _ := reopened.Staged()
	if len(pending) != 1 || pending[0] != "fares" {
		t.Errorf("Expected fares still pending, got %v", pending)
	}
}

func TestFileBackendRejectsCorruptFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "routes.json"), []byte("{not json"), FilePermissions); err != nil {
		t.Fatal(err)
	}
	if _, err := Open(context.Background(), Options{Driver: "file", Path: dir, Seed: true}, logx.Nop()); err == nil {
		t.Error("Expected an error for a corrupt collection file")
	}
}
