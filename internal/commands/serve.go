package commands

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/klabast/wb-services/transit-dashboard/internal/app"
	"github.com/klabast/wb-services/transit-dashboard/internal/config"
	"github.com/klabast/wb-services/transit-dashboard/internal/logx"
	"github.com/klabast/wb-services/transit-dashboard/internal/store"
)

// OpenStore opens the record store described by cfg.
func OpenStore(ctx context.Context, cfg *config.Config, log logx.Logger) (*store.Store, error) {
	return store.Open(ctx, store.Options{
		Driver:      cfg.Storage.Driver,
		Path:        cfg.Storage.Path,
		BusyTimeout: cfg.Storage.BusyTimeoutDuration(),
		Seed:        cfg.Storage.Seed == nil || *cfg.Storage.Seed,
		Latency:     cfg.Simulate.LatencyDuration(),
		FailureRate: cfg.Simulate.FailureRate,
		SimSeed:     cfg.Simulate.Seed,
	}, log)
}

// LoadConfig reads path, or the defaults when path is empty.
func LoadConfig(path string) (*config.Config, error) {
	return config.NewManager(path, logx.Nop()).Load()
}

// NewServeCmd runs the dashboard until SIGINT or SIGTERM. static must contain
// static/index.html.
func NewServeCmd(configPath *string, static fs.FS) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the dashboard web server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, *configPath, addr, static)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides server.addr)")
	return cmd
}

func serve(ctx context.Context, configPath, addr string, static fs.FS) error {
	boot := config.Default()
	logs, log := logx.New(boot.Logging.Logx())
	defer logs.Close()

	mgr := config.NewManager(configPath, log)
	cfg, err := mgr.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logs.Apply(cfg.Logging.Logx())

	st, err := OpenStore(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer func() {
		if err := st.Close(); err != nil {
			log.Warn("close store", logx.Err(err))
		}
	}()

	auth, err := app.LoadAuth(cfg.Auth.File, log)
	if err != nil {
		return fmt.Errorf("load auth: %w", err)
	}

	srv := app.New(app.Options{
		Store:  st,
		Config: cfg,
		Auth:   auth,
		Static: static,
		Logger: log,
		Logs:   logs,
	})

	if configPath != "" {
		updates := mgr.Subscribe(1)
		defer mgr.Unsubscribe(updates)
		go srv.Follow(ctx, updates)
		go func() {
			if err := mgr.Watch(ctx); err != nil && ctx.Err() == nil {
				log.Error("config watch stopped", logx.Err(err))
			}
		}()
	}

	if addr == "" {
		addr = cfg.Server.Addr
	}
	log.Info("starting transit dashboard",
		logx.String("addr", addr),
		logx.String("storage", cfg.Storage.Driver),
		logx.Bool("write_protected", auth.Enabled()))
	return srv.Serve(ctx, addr)
}
