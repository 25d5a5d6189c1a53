package store

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

// Collection is an ordered, concurrency-safe set of records of one kind.
type Collection[T Record[T]] struct {
	kind    string
	prefix  string
	backend Backend
	sim     *Simulator

	mu    sync.RWMutex
	items []T
}

// NewCollection creates an empty collection. New records get IDs of the form
// PREFIX-XXXXXXXX.
func NewCollection[T Record[T]](kind, prefix string, backend Backend, sim *Simulator) *Collection[T] {
	return &Collection[T]{kind: kind, prefix: prefix, backend: backend, sim: sim}
}

func (c *Collection[T]) Kind() string { return c.kind }

// Load reads the collection from the backend. When the backend has never stored
// this kind and seed is non-nil, the seed records are saved and used instead.
func (c *Collection[T]) Load(ctx context.Context, seed []T) (seeded bool, err error) {
	rows, found, err := c.backend.Load(ctx, c.kind)
	if err != nil {
		return false, fmt.Errorf("load %s: %w", c.kind, err)
	}
	if !found && seed != nil {
		items := make([]T, 0, len(seed))
		for _, item := range seed {
			items = append(items, item.Clone())
		}
		if err := c.persist(ctx, items); err != nil {
			return false, err
		}
		c.mu.Lock()
		c.items = items
		c.mu.Unlock()
		return true, nil
	}

	items := make([]T, 0, len(rows))
	for _, row := range rows {
		var item T
		if err := json.Unmarshal(row.Body, &item); err != nil {
			return false, fmt.Errorf("decode %s %q: %w", c.kind, row.ID, err)
		}
		items = append(items, item)
	}
	c.mu.Lock()
	c.items = items
	c.mu.Unlock()
	return false, nil
}

func (c *Collection[T]) List(ctx context.Context) ([]T, error) {
	if err := c.sim.Call(ctx); err != nil {
		return nil, err
	}
	return c.All(), nil
}

// All returns a copy of every record without simulated latency or failures.
func (c *Collection[T]) All() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]T, 0, len(c.items))
	for _, item := range c.items {
		out = append(out, item.Clone())
	}
	return out
}

func (c *Collection[T]) Get(ctx context.Context, id string) (T, error) {
	var zero T
	if err := c.sim.Call(ctx); err != nil {
		return zero, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	i := c.indexLocked(id)
	if i < 0 {
		return zero, c.notFound(id)
	}
	return c.items[i].Clone(), nil
}

func (c *Collection[T]) Create(ctx context.Context, item T) (T, error) {
	var zero T
	if err := c.sim.Call(ctx); err != nil {
		return zero, err
	}

	item = item.Clone()
	c.mu.Lock()
	defer c.mu.Unlock()
	if strings.TrimSpace(item.EntityID()) == "" {
		item = item.WithID(c.newIDLocked())
	}
	if err := validate(item); err != nil {
		return zero, err
	}
	if c.indexLocked(item.EntityID()) >= 0 {
		return zero, fmt.Errorf("%s %q: %w", c.kind, item.EntityID(), ErrConflict)
	}
	next := append(append(make([]T, 0, len(c.items)+1), c.items...), item)
	if err := c.persist(ctx, next); err != nil {
		return zero, err
	}
	c.items = next
	return item.Clone(), nil
}

func (c *Collection[T]) Update(ctx context.Context, item T) (T, error) {
	return c.Mutate(ctx, item.EntityID(), func(T) (T, error) { return item, nil })
}

// Mutate replaces the record with id by fn's result under the collection lock.
// fn works on a copy, so a failed update leaves the stored record untouched.
// The ID is kept even if fn changes it.
func (c *Collection[T]) Mutate(ctx context.Context, id string, fn func(T) (T, error)) (T, error) {
	var zero T
	if err := c.sim.Call(ctx); err != nil {
		return zero, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	i := c.indexLocked(id)
	if i < 0 {
		return zero, c.notFound(id)
	}
	updated, err := fn(c.items[i].Clone())
	if err != nil {
		return zero, err
	}
	updated = updated.WithID(id).Clone()
	if err := validate(updated); err != nil {
		return zero, err
	}
	next := append([]T(nil), c.items...)
	next[i] = updated
	if err := c.persist(ctx, next); err != nil {
		return zero, err
	}
	c.items = next
	return updated.Clone(), nil
}

func (c *Collection[T]) Delete(ctx context.Context, id string) error {
	if err := c.sim.Call(ctx); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	i := c.indexLocked(id)
	if i < 0 {
		return c.notFound(id)
	}
	next := append(append(make([]T, 0, len(c.items)-1), c.items[:i]...), c.items[i+1:]...)
	if err := c.persist(ctx, next); err != nil {
		return err
	}
	c.items = next
	return nil
}

func (c *Collection[T]) indexLocked(id string) int {
	for i, item := range c.items {
		if item.EntityID() == id {
			return i
		}
	}
	return -1
}

func (c *Collection[T]) notFound(id string) error {
	return fmt.Errorf("%s %q: %w", c.kind, id, ErrNotFound)
}

func (c *Collection[T]) newIDLocked() string {
	for {
		id := c.prefix + "-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
		if c.indexLocked(id) < 0 {
			return id
		}
	}
}

func (c *Collection[T]) persist(ctx context.Context, items []T) error {
	rows := make([]Row, 0, len(items))
	for _, item := range items {
		body, err := json.Marshal(item)
		if err != nil {
			return fmt.Errorf("encode %s %q: %w", c.kind, item.EntityID(), err)
		}
		rows = append(rows, Row{ID: item.EntityID(), Body: body})
	}
	if err := c.backend.Save(ctx, c.kind, rows); err != nil {
		return fmt.Errorf("save %s: %w", c.kind, err)
	}
	return nil
}

func validate(item any) error {
	if v, ok := item.(interface{ Validate() error }); ok {
		return v.Validate()
	}
	return nil
}
