package observability

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Prometheus implements every hook interface on top of Prometheus
// collectors. Crate names are deliberately not used as labels.
type Prometheus struct {
	hintRequests  prometheus.Counter
	hintsReturned prometheus.Counter
	hintDuration  prometheus.Histogram
	fetchFailures prometheus.Counter

	cacheEvents *prometheus.CounterVec

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
	httpErrors   *prometheus.CounterVec
}

// NewPrometheus creates the collectors and registers them with reg.
func NewPrometheus(reg prometheus.Registerer) *Prometheus {
	p := &Prometheus{
		hintRequests: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "crates_lsp_hint_requests_total",
			Help: "Total number of inlay hint requests",
		}),
		hintsReturned: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "crates_lsp_hints_returned_total",
			Help: "Total number of hints returned to editors",
		}),
		hintDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "crates_lsp_hint_request_duration_seconds",
			Help:    "Inlay hint request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}),
		fetchFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "crates_lsp_fetch_failures_total",
			Help: "Total number of registry fetches that failed inside a hint request",
		}),
		cacheEvents: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "crates_lsp_cache_events_total",
				Help: "Version cache lookups and writes by result",
			},
			[]string{"result"},
		),
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "crates_lsp_registry_requests_total",
				Help: "Registry HTTP responses by method and status",
			},
			[]string{"method", "status"},
		),
		httpDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "crates_lsp_registry_request_duration_seconds",
				Help:    "Registry HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method"},
		),
		httpErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "crates_lsp_registry_errors_total",
				Help: "Registry HTTP transport failures",
			},
			[]string{"method"},
		),
	}

	reg.MustRegister(
		p.hintRequests,
		p.hintsReturned,
		p.hintDuration,
		p.fetchFailures,
		p.cacheEvents,
		p.httpRequests,
		p.httpDuration,
		p.httpErrors,
	)
	return p
}

func (p *Prometheus) OnHintsStart(context.Context, string) {
	p.hintRequests.Inc()
}

func (p *Prometheus) OnHintsComplete(_ context.Context, _ string, hints, failed int, d time.Duration) {
	p.hintsReturned.Add(float64(hints))
	p.fetchFailures.Add(float64(failed))
	p.hintDuration.Observe(d.Seconds())
}

func (p *Prometheus) OnCacheHit(context.Context, string)   { p.cacheEvents.WithLabelValues("hit").Inc() }
func (p *Prometheus) OnCacheMiss(context.Context, string)  { p.cacheEvents.WithLabelValues("miss").Inc() }
func (p *Prometheus) OnCacheStale(context.Context, string) { p.cacheEvents.WithLabelValues("stale").Inc() }
func (p *Prometheus) OnCacheSet(context.Context, string)   { p.cacheEvents.WithLabelValues("set").Inc() }

func (p *Prometheus) OnRequest(context.Context, string, string, string) {}

func (p *Prometheus) OnResponse(_ context.Context, method, _, _ string, status int, d time.Duration) {
	p.httpRequests.WithLabelValues(method, strconv.Itoa(status)).Inc()
	p.httpDuration.WithLabelValues(method).Observe(d.Seconds())
}

func (p *Prometheus) OnError(_ context.Context, method, _, _ string, _ error) {
	p.httpErrors.WithLabelValues(method).Inc()
}

var (
	_ HintHooks  = (*Prometheus)(nil)
	_ CacheHooks = (*Prometheus)(nil)
	_ HTTPHooks  = (*Prometheus)(nil)
)
