package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	httpAdapter "github.com/LeenJaber1/automata-builder/pkg/adapters/http"
	"github.com/LeenJaber1/automata-builder/pkg/domain"
	"github.com/LeenJaber1/automata-builder/pkg/observability"
)

const shutdownTimeout = 5 * time.Second

// ServeOptions configures the serve command. Zero values fall back to the configuration.
type ServeOptions struct {
	Port        int
	MetricsPort int
	// History enables the run history even when no path is configured.
	History bool
}

// Serve runs the HTTP API, and the metrics endpoint when a metrics port is set, until ctx is done.
func Serve(ctx context.Context, app *App, opts ServeOptions) error {
	cfg := app.Config.Server
	if opts.Port != 0 {
		cfg.Port = opts.Port
	}
	if opts.MetricsPort != 0 {
		cfg.MetricsPort = opts.MetricsPort
	}

	hooks := []domain.LifecycleHooks{observability.AuditHooks(app.Logger)}
	var registry *prometheus.Registry
	if cfg.MetricsPort != 0 {
		registry = prometheus.NewRegistry()
		registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		hooks = append(hooks, observability.NewMetrics(registry).Hooks())
	}

	engine, err := app.OpenEngine(hooks...)
	if err != nil {
		return err
	}
	p, err := app.OpenPersistence(ctx)
	if err != nil {
		return err
	}
	defer p.Close()

	handlerOpts := []httpAdapter.Option{
		httpAdapter.WithLogger(app.Logger),
		httpAdapter.WithRequestValidation(cfg.RequestValidation),
	}
	if opts.History || app.Config.History.Path != "" {
		history, err := app.OpenHistory()
		if err != nil {
			return err
		}
		defer history.Close()
		handlerOpts = append(handlerOpts, httpAdapter.WithHistory(history))
	}

	handler, err := httpAdapter.NewHandler(engine, p.Manager, handlerOpts...)
	if err != nil {
		return fmt.Errorf("failed to build HTTP handler: %w", err)
	}

	servers := []*http.Server{{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}}
	if registry != nil {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
		servers = append(servers, &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.MetricsPort),
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
		})
	}
	return serveAll(ctx, app, servers)
}

// serveAll runs every server and shuts them all down when ctx is done or one of them fails.
func serveAll(ctx context.Context, app *App, servers []*http.Server) error {
	g, gctx := errgroup.WithContext(ctx)

	for _, srv := range servers {
		g.Go(func() error {
			app.Logger.Info("server listening", "addr", srv.Addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("server %s: %w", srv.Addr, err)
			}
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		var errs []error
		for _, srv := range servers {
			if err := srv.Shutdown(shutdownCtx); err != nil {
				errs = append(errs, fmt.Errorf("graceful shutdown of %s did not complete: %w", srv.Addr, err))
				_ = srv.Close()
			}
		}
		app.Logger.Info("servers stopped")
		return errors.Join(errs...)
	})

	return g.Wait()
}
