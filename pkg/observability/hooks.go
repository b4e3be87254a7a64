// Package observability lets libraries report events without depending on a
// metrics backend.
//
// Layout runs, the engine cache and the HTTP server call the hooks returned
// by [Layout], [Cache] and [HTTP]. Until a binary installs something else
// they are no-ops, so the layout core works uninstrumented. The serve
// command installs Prometheus hooks at startup:
//
//	observability.Register(metrics.NewHooks(prometheus.DefaultRegisterer))
//
// and a layout run reports through them:
//
//	observability.Layout().OnLayoutStart(ctx, len(nodes), len(edges))
//	observability.Layout().OnLayoutComplete(ctx, routed, fallback, elapsed, engineFailed)
package observability

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// LayoutHooks receives events from layout runs.
type LayoutHooks interface {
	OnLayoutStart(ctx context.Context, nodeCount, edgeCount int)
	// OnLayoutComplete reports how many edges kept engine routing and how many
	// went through the fallback port optimizer.
	OnLayoutComplete(ctx context.Context, routed, fallback int, duration time.Duration, engineFailed bool)
	// OnEngineFailure is called once per failed engine round-trip.
	OnEngineFailure(ctx context.Context, engine string, err error)
}

// CacheHooks receives engine cache lookups and writes. keyType names the
// kind of entry, e.g. "layout".
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// HTTPHooks receives served API requests. route is the matched pattern, not
// the raw path.
type HTTPHooks interface {
	OnResponse(ctx context.Context, method, route string, statusCode int, duration time.Duration)
}

type NoopLayoutHooks struct{}

func (NoopLayoutHooks) OnLayoutStart(context.Context, int, int)                         {}
func (NoopLayoutHooks) OnLayoutComplete(context.Context, int, int, time.Duration, bool) {}
func (NoopLayoutHooks) OnEngineFailure(context.Context, string, error)                  {}

type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnResponse(context.Context, string, string, int, time.Duration) {}

// registry is replaced as a whole on every change, so readers on hot paths
// load one pointer and never lock.
type registry struct {
	layout LayoutHooks
	cache  CacheHooks
	http   HTTPHooks
}

var (
	current atomic.Pointer[registry]
	writeMu sync.Mutex
)

func init() { Reset() }

func update(fn func(r *registry)) {
	writeMu.Lock()
	defer writeMu.Unlock()
	next := *current.Load()
	fn(&next)
	current.Store(&next)
}

// Register installs h for every hook interface it implements and reports
// whether it implemented any.
func Register(h any) bool {
	found := false
	update(func(r *registry) {
		if l, ok := h.(LayoutHooks); ok {
			r.layout, found = l, true
		}
		if c, ok := h.(CacheHooks); ok {
			r.cache, found = c, true
		}
		if x, ok := h.(HTTPHooks); ok {
			r.http, found = x, true
		}
	})
	return found
}

// SetLayoutHooks installs h. nil is ignored.
func SetLayoutHooks(h LayoutHooks) {
	if h != nil {
		update(func(r *registry) { r.layout = h })
	}
}

// SetCacheHooks installs h. nil is ignored.
func SetCacheHooks(h CacheHooks) {
	if h != nil {
		update(func(r *registry) { r.cache = h })
	}
}

// SetHTTPHooks installs h. nil is ignored.
func SetHTTPHooks(h HTTPHooks) {
	if h != nil {
		update(func(r *registry) { r.http = h })
	}
}

func Layout() LayoutHooks { return current.Load().layout }
func Cache() CacheHooks   { return current.Load().cache }
func HTTP() HTTPHooks     { return current.Load().http }

// Reset restores the no-op hooks.
func Reset() {
	writeMu.Lock()
	defer writeMu.Unlock()
	current.Store(&registry{
		layout: NoopLayoutHooks{},
		cache:  NoopCacheHooks{},
		http:   NoopHTTPHooks{},
	})
}
