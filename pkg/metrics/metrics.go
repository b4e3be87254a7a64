// Package metrics exports layout, cache and HTTP events to Prometheus.
//
// [Hooks] implements the observability hook interfaces. Register it once at
// startup:
//
//	metrics.NewHooks(prometheus.DefaultRegisterer).Install()
package metrics

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/matzehuels/autolayout/pkg/observability"
)

const namespace = "autolayout"

// Hooks records observability events as Prometheus metrics.
type Hooks struct {
	layoutRuns     *prometheus.CounterVec
	layoutDuration prometheus.Histogram
	layoutEdges    *prometheus.CounterVec
	engineFailures *prometheus.CounterVec

	cacheEvents *prometheus.CounterVec
	cacheBytes  *prometheus.CounterVec

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
}

// NewHooks creates the collectors and registers them with reg.
// It panics if a collector is already registered, like promauto.
func NewHooks(reg prometheus.Registerer) *Hooks {
	f := promauto.With(reg)
	return &Hooks{
		layoutRuns: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "layout_runs_total",
			Help:      "Layout runs by outcome.",
		}, []string{"outcome"}),
		layoutDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "layout_duration_seconds",
			Help:      "Duration of layout runs, engine round-trip included.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		layoutEdges: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "layout_edges_total",
			Help:      "Edges laid out, by whether the engine routed them or the port optimizer did.",
		}, []string{"path"}),
		engineFailures: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "engine_failures_total",
			Help:      "Failed layout engine round-trips.",
		}, []string{"engine"}),
		cacheEvents: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_events_total",
			Help:      "Cache hits, misses and writes.",
		}, []string{"key_type", "event"}),
		cacheBytes: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_written_bytes_total",
			Help:      "Bytes written to the cache.",
		}, []string{"key_type"}),
		httpRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests served.",
		}, []string{"method", "route", "status"}),
		httpDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"method", "route"}),
	}
}

// OnLayoutStart implements observability.LayoutHooks.
func (h *Hooks) OnLayoutStart(context.Context, int, int) {}

// OnLayoutComplete implements observability.LayoutHooks.
func (h *Hooks) OnLayoutComplete(_ context.Context, routed, fallback int, d time.Duration, engineFailed bool) {
	outcome := "ok"
	if engineFailed {
		outcome = "engine_failed"
	}
	h.layoutRuns.WithLabelValues(outcome).Inc()
	h.layoutDuration.Observe(d.Seconds())
	h.layoutEdges.WithLabelValues("routed").Add(float64(routed))
	h.layoutEdges.WithLabelValues("fallback").Add(float64(fallback))
}

// OnEngineFailure implements observability.LayoutHooks.
func (h *Hooks) OnEngineFailure(_ context.Context, engine string, _ error) {
	h.engineFailures.WithLabelValues(engine).Inc()
}

// OnCacheHit implements observability.CacheHooks.
func (h *Hooks) OnCacheHit(_ context.Context, keyType string) {
	h.cacheEvents.WithLabelValues(keyType, "hit").Inc()
}

// OnCacheMiss implements observability.CacheHooks.
func (h *Hooks) OnCacheMiss(_ context.Context, keyType string) {
	h.cacheEvents.WithLabelValues(keyType, "miss").Inc()
}

// OnCacheSet implements observability.CacheHooks.
func (h *Hooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.cacheEvents.WithLabelValues(keyType, "set").Inc()
	h.cacheBytes.WithLabelValues(keyType).Add(float64(size))
}

// OnResponse implements observability.HTTPHooks.
func (h *Hooks) OnResponse(_ context.Context, method, route string, status int, d time.Duration) {
	h.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	h.httpDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// Install registers h for every hook type.
func (h *Hooks) Install() {
	observability.Register(h)
}

var (
	_ observability.LayoutHooks = (*Hooks)(nil)
	_ observability.CacheHooks  = (*Hooks)(nil)
	_ observability.HTTPHooks   = (*Hooks)(nil)
)
