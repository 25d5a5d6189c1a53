// Package app serves the transit operations dashboard: the JSON API behind every page,
// calendar views, exports and the background jobs that keep telemetry and backups
// current.
package app

import (
	"context"
	"errors"
	"io/fs"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/klabast/wb-services/transit-dashboard/internal/config"
	"github.com/klabast/wb-services/transit-dashboard/internal/logx"
	"github.com/klabast/wb-services/transit-dashboard/internal/store"
)

type Options struct {
	Store  *store.Store
	Config *config.Config
	Auth   *Auth
	// Static holds static/index.html and the assets served under /static/.
	Static fs.FS
	Logger logx.Logger
	// Logs receives level and sink changes on reload. May be nil.
	Logs *logx.Service
	Now  func() time.Time
}

type Server struct {
	store  *store.Store
	auth   *Auth
	static fs.FS
	log    logx.Logger
	logs   *logx.Service
	now    func() time.Time
	tele   *Telemetry
	jobs   *Jobs

	mu      sync.RWMutex
	cfg     *config.Config
	limiter *rate.Limiter
}

func New(opts Options) *Server {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	s := &Server{
		store:  opts.Store,
		auth:   opts.Auth,
		static: opts.Static,
		log:    opts.Logger,
		logs:   opts.Logs,
		now:    now,
		tele:   NewTelemetry(cfg.Simulate.Seed),
	}
	s.jobs = newJobs(s)
	s.Apply(cfg)
	s.tele.Refresh(s.vehicleIDs(), now())
	return s
}

// Config returns the configuration currently in effect.
func (s *Server) Config() *config.Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg
}

func (s *Server) Telemetry() *Telemetry { return s.tele }

// Apply switches to cfg without restarting: log level and sinks, rate limit, display
// settings, simulated latency and job schedules.
func (s *Server) Apply(cfg *config.Config) {
	s.mu.Lock()
	prev := s.cfg
	s.cfg = cfg
	if prev == nil || prev.RateLimit != cfg.RateLimit || s.limiter == nil {
		s.limiter = newLimiter(cfg.RateLimit)
	}
	s.mu.Unlock()

	if s.logs != nil {
		s.logs.Apply(cfg.Logging.Logx())
	}
	if s.store != nil {
		s.store.Sim.Set(cfg.Simulate.LatencyDuration(), cfg.Simulate.FailureRate)
	}
	if prev != nil && prev.Jobs != cfg.Jobs && s.jobs.Running() {
		if err := s.jobs.Start(cfg.Jobs); err != nil {
			s.log.Error("reschedule jobs", logx.Err(err))
		}
	}
}

// Follow applies every config received on updates until ctx ends or updates is closed.
func (s *Server) Follow(ctx context.Context, updates <-chan *config.Config) {
	for {
		select {
		case <-ctx.Done():
			return
		case cfg, ok := <-updates:
			if !ok {
				return
			}
			s.Apply(cfg)
			s.log.Info("config applied",
				logx.String("level", cfg.Logging.Level),
				logx.Int("max_events_per_day", cfg.Display.MaxEventsPerDay))
		}
	}
}

func newLimiter(c config.RateLimitConfig) *rate.Limiter {
	if c.PerSec <= 0 {
		return rate.NewLimiter(rate.Inf, 0)
	}
	burst := c.Burst
	if burst <= 0 {
		burst = int(c.PerSec)
		if burst < 1 {
			burst = 1
		}
	}
	return rate.NewLimiter(rate.Limit(c.PerSec), burst)
}

func (s *Server) currentLimiter() *rate.Limiter {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.limiter
}

// Serve runs the HTTP server on addr until ctx is cancelled, then shuts down
// gracefully. Background jobs run for the lifetime of the server.
func (s *Server) Serve(ctx context.Context, addr string) error {
	cfg := s.Config()
	read, write, shutdown := cfg.Server.Timeouts()

	if err := s.jobs.Start(cfg.Jobs); err != nil {
		return err
	}
	defer s.jobs.Stop()

	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadTimeout:       read,
		ReadHeaderTimeout: read,
		WriteTimeout:      write,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("listening", logx.String("addr", addr), logx.String("backend", s.store.Backend()))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdown)
	defer cancel()
	s.log.Info("shutting down", logx.Duration("timeout", shutdown))
	return srv.Shutdown(shutdownCtx)
}
