package store

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/klabast/wb-services/transit-dashboard/internal/logx"
)

//go:embed schema.sql
var schemaSQL string

// SQLiteBackend keeps every collection in one records table, ordered by pos.
type SQLiteBackend struct {
	db  *sql.DB
	log logx.Logger
}

func OpenSQLiteBackend(ctx context.Context, path string, busyTimeout time.Duration, log logx.Logger) (*SQLiteBackend, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("sqlite path is required")
	}
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// SQLite prefers a single writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if busyTimeout > 0 {
		_, _ = db.ExecContext(ctx, fmt.Sprintf("PRAGMA busy_timeout = %d", busyTimeout.Milliseconds()))
	}
	_, _ = db.ExecContext(ctx, "PRAGMA journal_mode = WAL")
	_, _ = db.ExecContext(ctx, "PRAGMA synchronous = NORMAL")

	if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &SQLiteBackend{db: db, log: log}, nil
}

func (s *SQLiteBackend) Name() string { return "sqlite" }

func (s *SQLiteBackend) Load(ctx context.Context, kind string) ([]Row, bool, error) {
	var updated string
	err := s.db.QueryRowContext(ctx, `SELECT updated_at FROM collections WHERE kind = ?`, kind).Scan(&updated)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	rows, err := s.db.QueryContext(ctx, `SELECT id, body FROM records WHERE kind = ? ORDER BY pos`, kind)
	if err != nil {
		return nil, false, err
	}
	defer rows.Close()

	var out []Row
	for rows.Next() {
		var (
			id   string
			body string
		)
		if err := rows.Scan(&id, &body); err != nil {
			return nil, false, err
		}
		out = append(out, Row{ID: id, Body: []byte(body)})
	}
	return out, true, rows.Err()
}

func (s *SQLiteBackend) Save(ctx context.Context, kind string, rows []Row) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM records WHERE kind = ?`, kind); err != nil {
		return err
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO records(kind, id, pos, body) VALUES(?,?,?,?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for i, r := range rows {
		if _, err := stmt.ExecContext(ctx, kind, r.ID, i, string(r.Body)); err != nil {
			return fmt.Errorf("insert %s: %w", r.ID, err)
		}
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO collections(kind, updated_at) VALUES(?,?)
		 ON CONFLICT(kind) DO UPDATE SET updated_at=excluded.updated_at`,
		kind, time.Now().UTC().Format(time.RFC3339Nano),
	); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *SQLiteBackend) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
