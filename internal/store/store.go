// Package store is the dashboard's data access layer. Pages talk to a Repository;
// each Collection keeps its records in memory and writes every mutation through to
// a Backend (memory, JSON files or SQLite).
package store

import (
	"context"
	"errors"
)

var (
	ErrNotFound    = errors.New("not found")
	ErrConflict    = errors.New("already exists")
	ErrUnavailable = errors.New("data service unavailable")
	ErrNoChanges   = errors.New("no staged changes")
)

// Record is an entity a Collection can hold. Clone must return a value that shares
// no maps or slices with the receiver.
type Record[T any] interface {
	EntityID() string
	WithID(id string) T
	Clone() T
}

// Repository is the data access interface the HTTP layer depends on. Every record it
// hands out is a copy; changing it never changes stored state.
type Repository[T any] interface {
	Kind() string
	List(ctx context.Context) ([]T, error)
	// All is List without simulated latency or failures.
	All() []T
	Get(ctx context.Context, id string) (T, error)
	Create(ctx context.Context, item T) (T, error)
	Update(ctx context.Context, item T) (T, error)
	// Mutate replaces the record with id by fn's result. fn gets a copy, and nothing
	// is stored when fn or validation fails.
	Mutate(ctx context.Context, id string, fn func(T) (T, error)) (T, error)
	Delete(ctx context.Context, id string) error
}

// Row is one encoded record as a backend stores it.
type Row struct {
	ID   string
	Body []byte
}

// Backend persists whole collections. Save replaces everything stored under kind.
// Load reports found=false when kind was never saved.
type Backend interface {
	Name() string
	Load(ctx context.Context, kind string) (rows []Row, found bool, err error)
	Save(ctx context.Context, kind string, rows []Row) error
	Close() error
}

// Stager is implemented by backends that stage writes until they are committed.
type Stager interface {
	Pending() ([]string, error)
	Commit() (backups []string, err error)
	Revert() error
}
