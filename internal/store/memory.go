package store

import (
	"context"
	"sync"
)

// memoryBackend keeps rows for the lifetime of the process.
type memoryBackend struct {
	mu   sync.RWMutex
	data map[string][]Row
}

func NewMemoryBackend() Backend {
	return &memoryBackend{data: make(map[string][]Row)}
}

func (m *memoryBackend) Name() string { return "memory" }

func (m *memoryBackend) Load(_ context.Context, kind string) ([]Row, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rows, ok := m.data[kind]
	return append([]Row(nil), rows...), ok, nil
}

func (m *memoryBackend) Save(_ context.Context, kind string, rows []Row) error {
	m.mu.Lock()
	m.data[kind] = append([]Row(nil), rows...)
	m.mu.Unlock()
	return nil
}

func (m *memoryBackend) Close() error { return nil }
