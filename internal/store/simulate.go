package store

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"
)

// Simulator adds artificial latency and random failures to store calls. A nil
// Simulator does nothing.
type Simulator struct {
	mu          sync.Mutex
	latency     time.Duration
	failureRate float64
	rng         *rand.Rand
}

func NewSimulator(latency time.Duration, failureRate float64, seed int64) *Simulator {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Simulator{latency: latency, failureRate: failureRate, rng: rand.New(rand.NewSource(seed))}
}

// Set changes latency and failure rate for subsequent calls.
func (s *Simulator) Set(latency time.Duration, failureRate float64) {
	if s == nil {
		return
	}
	s.mu.Lock()
	s.latency = latency
	s.failureRate = failureRate
	s.mu.Unlock()
}

// Call waits for the configured latency, returning early with ctx's error when the
// caller gives up, and then fails with ErrUnavailable at the configured rate.
func (s *Simulator) Call(ctx context.Context) error {
	if s == nil {
		return ctx.Err()
	}
	s.mu.Lock()
	latency := s.latency
	fail := s.failureRate > 0 && s.rng.Float64() < s.failureRate
	s.mu.Unlock()

	if latency > 0 {
		t := time.NewTimer(latency)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
		}
	} else if err := ctx.Err(); err != nil {
		return err
	}
	if fail {
		return fmt.Errorf("simulated failure: %w", ErrUnavailable)
	}
	return nil
}
