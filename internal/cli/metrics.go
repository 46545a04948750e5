package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/matzehuels/crates-lsp/pkg/cache"
	"github.com/matzehuels/crates-lsp/pkg/observability"
)

const metricsShutdownTimeout = 2 * time.Second

// cacheSnapshot is the /debug/cache response body.
type cacheSnapshot struct {
	Count   int           `json:"count"`
	Entries []cache.Entry `json:"entries"`
}

// newMetricsRouter builds the debug HTTP surface.
func newMetricsRouter(reg *prometheus.Registry, store cache.Store) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		io.WriteString(w, "ok\n")
	})
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	r.Get("/debug/cache", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		entries := store.Snapshot()
		json.NewEncoder(w).Encode(cacheSnapshot{Count: len(entries), Entries: entries})
	})
	return r
}

// startMetrics installs Prometheus observability hooks and serves the debug
// router on addr. The returned function stops the server and restores the
// no-op hooks.
func startMetrics(ctx context.Context, addr string, store cache.Store, logger *log.Logger) (func(), error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", addr, err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	prom := observability.NewPrometheus(reg)
	observability.SetHintHooks(prom)
	observability.SetCacheHooks(prom)
	observability.SetHTTPHooks(prom)

	srv := &http.Server{
		Handler:           newMetricsRouter(reg, store),
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", "err", err)
		}
	}()
	logger.Info("metrics listening", "addr", ln.Addr().String())

	return func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), metricsShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("metrics shutdown", "err", err)
		}
		observability.Reset()
	}, nil
}
