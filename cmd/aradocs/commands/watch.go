package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"

	"github.com/sage-code/ara-docs/internal/config"
	"github.com/sage-code/ara-docs/internal/logfields"
	"github.com/sage-code/ara-docs/internal/metrics"
	"github.com/sage-code/ara-docs/internal/pipeline"
	"github.com/sage-code/ara-docs/internal/watch"
)

// WatchCmd implements the 'watch' command.
type WatchCmd struct {
	MetricsAddr string `name:"metrics-addr" help:"Serve Prometheus metrics on this address; overrides watch.metrics_addr"`
}

func (w *WatchCmd) Run(_ *Global, root *CLI) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}
	if w.MetricsAddr != "" {
		cfg.Watch.MetricsAddr = w.MetricsAddr
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := prom.NewRegistry()
	b := &watchBuilder{
		configPath: root.Config,
		cfg:        cfg,
		recorder:   metrics.NewPrometheusRecorder(reg),
		registry:   reg,
	}

	if cfg.Watch.MetricsAddr != "" {
		srv := &http.Server{
			Addr:              cfg.Watch.MetricsAddr,
			Handler:           metricsMux(reg),
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			slog.Info("Serving metrics", slog.String("addr", srv.Addr))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				slog.Error("Metrics server failed", logfields.Error(err))
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	// The first build reports problems but does not stop watching.
	_ = b.rebuild(ctx, watch.ReasonChange)

	watcher, err := watch.New(watch.Options{
		Dirs:           []string{cfg.ContentPath()},
		Files:          []string{root.Config},
		Debounce:       cfg.Watch.Debounce,
		RescanInterval: cfg.Watch.RescanInterval,
		OnResult: func(reason watch.Reason, err error) {
			if err == nil {
				_, _ = fmt.Fprintf(root.Stdout(), "Rebuilt (%s)\n", reason)
			}
		},
	}, b.rebuild)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(root.Stdout(), "Watching %s (Ctrl+C to stop)\n", cfg.ContentPath())
	return watcher.Run(ctx)
}

func metricsMux(reg *prom.Registry) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.HTTPHandler(reg))
	return mux
}

// watchBuilder reloads the configuration before every build so edits to
// the file take effect. An invalid file keeps the previous configuration.
type watchBuilder struct {
	configPath string
	recorder   metrics.Recorder
	registry   *prom.Registry

	mu  sync.Mutex
	cfg *config.Config
}

func (b *watchBuilder) current() *config.Config {
	b.mu.Lock()
	defer b.mu.Unlock()
	cfg, err := config.LoadOrDefault(b.configPath)
	if err != nil {
		slog.Warn("Configuration reload failed; keeping previous configuration", logfields.Path(b.configPath), logfields.Error(err))
		return b.cfg
	}
	b.cfg = cfg
	return cfg
}

func (b *watchBuilder) rebuild(ctx context.Context, reason watch.Reason) error {
	cfg := b.current()
	slog.Info("Rebuilding", slog.String("reason", string(reason)))
	_, _, err := pipeline.New(cfg, pipeline.WithRecorder(b.recorder)).Build(ctx)
	if path := cfg.Watch.MetricsTextfile; path != "" {
		if werr := metrics.WriteTextfile(b.registry, path); werr != nil {
			slog.Warn("Failed to write metrics textfile", logfields.Path(path), logfields.Error(werr))
		}
	}
	return err
}
