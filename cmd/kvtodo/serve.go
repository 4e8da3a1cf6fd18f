package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/sagarc03/kvtodo"
	"github.com/sagarc03/kvtodo/config"
	kvtodohttp "github.com/sagarc03/kvtodo/http"
	"github.com/sagarc03/kvtodo/kvstore"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long:  `Start the kvtodo HTTP server.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().Int("port", 5708, "HTTP server port")
	serveCmd.Flags().Bool("metrics", false, "serve /metrics and /healthz on the metrics port")
	serveCmd.Flags().Int("metrics-port", 9708, "metrics server port")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.FromContext(cmd.Context())
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := kvstore.Open(ctx, cfg.Store)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer func() { _ = store.Close() }()
	slog.Info("connected to store", "type", cfg.Store.Type, "namespace", cfg.Store.Namespace)

	service, err := kvtodo.NewTodoService(store, kvtodo.ServiceConfig{})
	if err != nil {
		return fmt.Errorf("create service: %w", err)
	}

	var registry *prometheus.Registry
	handlerConfig := kvtodohttp.HandlerConfig{CORS: cfg.CORS}
	if cfg.Metrics.Enabled {
		registry = newRegistry()
		handlerConfig.Metrics = kvtodohttp.NewMetrics(registry)
	}

	handler := kvtodohttp.NewHandler(&handlerConfig, service)

	servers := []*http.Server{{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      handler.Router(),
		ReadTimeout:  cfg.Server.ReadTimeoutDuration(),
		WriteTimeout: cfg.Server.WriteTimeoutDuration(),
		IdleTimeout:  cfg.Server.IdleTimeoutDuration(),
	}}

	if registry != nil {
		servers = append(servers, &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Metrics.Port),
			Handler:           opsRouter(registry, store),
			ReadHeaderTimeout: 5 * time.Second,
		})
	}

	errCh := make(chan error, len(servers))
	for _, server := range servers {
		go func(server *http.Server) {
			slog.Info("starting server", "addr", server.Addr)
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- fmt.Errorf("server %s: %w", server.Addr, err)
				return
			}
			errCh <- nil
		}(server)
	}

	var serveErr error
	select {
	case <-ctx.Done():
		slog.Info("shutting down server...")
	case serveErr = <-errCh:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeoutDuration())
	defer cancel()

	for _, server := range servers {
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("server shutdown error", "addr", server.Addr, "err", err)
		}
	}

	return serveErr
}

func newRegistry() *prometheus.Registry {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return registry
}

// opsRouter serves the operational endpoints kept off the todo router.
func opsRouter(registry *prometheus.Registry, store kvstore.Store) http.Handler {
	r := chi.NewRouter()

	r.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := store.Ping(ctx); err != nil {
			slog.Warn("health check failed", "err", err)
			kvtodohttp.WriteError(w, http.StatusServiceUnavailable, "unavailable", "Store unavailable")
			return
		}

		kvtodohttp.WriteText(w, http.StatusOK, "ok")
	})

	return r
}
