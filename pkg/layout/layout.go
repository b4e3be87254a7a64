package layout

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/autolayout/pkg/diagram"
	"github.com/matzehuels/autolayout/pkg/engine"
	"github.com/matzehuels/autolayout/pkg/observability"
)

// errNoEngine is reported when a Layouter has no engine configured.
var errNoEngine = errors.New("no layout engine configured")

// Result is the outcome of a layout run. Nodes and Edges are always fresh
// copies, even when nothing changed.
type Result struct {
	Nodes []diagram.Node `json:"nodes"`
	Edges []diagram.Edge `json:"edges"`
	Stats Stats          `json:"stats"`
}

// Stats describes how a run went.
type Stats struct {
	// EngineFailed is set when the engine returned an error. The result then
	// holds the input unchanged unless WithOptimizeOnFailure is enabled.
	EngineFailed bool `json:"engine_failed"`
	// Routed counts edges that kept the engine's routing.
	Routed int `json:"routed"`
	// Fallback counts edges handed to the port optimizer. Edges with an
	// unknown endpoint are counted but left unchanged.
	Fallback int           `json:"fallback"`
	Duration time.Duration `json:"duration_ns"`
}

// Layouter runs layouts against one engine. It holds no mutable state and
// is safe for concurrent use.
type Layouter struct {
	engine            engine.Engine
	engineName        string
	opts              engine.Options
	optimizeOnFailure bool
	logger            *log.Logger
}

// Option configures a Layouter.
type Option func(*Layouter)

// WithLogger sets the logger. Defaults to log.Default().
func WithLogger(l *log.Logger) Option {
	return func(lt *Layouter) {
		if l != nil {
			lt.logger = l
		}
	}
}

// WithEngineOptions overrides engine.DefaultOptions().
func WithEngineOptions(o engine.Options) Option {
	return func(lt *Layouter) { lt.opts = o }
}

// WithEngineName labels the engine in logs and failure events.
func WithEngineName(name string) Option {
	return func(lt *Layouter) { lt.engineName = name }
}

// WithOptimizeOnFailure makes a failed run assign handles with the port
// optimizer over the original positions instead of returning the input
// untouched.
func WithOptimizeOnFailure(enabled bool) Option {
	return func(lt *Layouter) { lt.optimizeOnFailure = enabled }
}

// New creates a Layouter. A nil engine makes every run fail over to the
// input snapshot.
func New(eng engine.Engine, opts ...Option) *Layouter {
	l := &Layouter{
		engine:     eng,
		engineName: "engine",
		opts:       engine.DefaultOptions(),
		logger:     log.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Options returns the engine options sent with every request.
func (l *Layouter) Options() engine.Options { return l.opts }

// Run lays out the snapshot. It never fails; inputs are never modified.
//
// On engine success, positions come from the engine, routed edges get the
// engine's handles and route, and the remaining edges go through the port
// optimizer. On engine failure the result equals the input.
func (l *Layouter) Run(ctx context.Context, nodes []diagram.Node, edges []diagram.Edge) Result {
	start := time.Now()
	observability.Layout().OnLayoutStart(ctx, len(nodes), len(edges))

	res, err := l.layout(ctx, BuildRequest(nodes, edges, l.opts))

	var out Result
	if err != nil {
		out = l.identity(ctx, nodes, edges, err)
	} else {
		out.Nodes = ApplyPositions(nodes, res)
		var unrouted []int
		out.Edges, unrouted = ApplyRoutes(edges, res)
		assignPorts(out.Nodes, out.Edges, unrouted)
		out.Stats.Routed = len(edges) - len(unrouted)
		out.Stats.Fallback = len(unrouted)
	}

	out.Stats.Duration = time.Since(start)
	observability.Layout().OnLayoutComplete(ctx, out.Stats.Routed, out.Stats.Fallback, out.Stats.Duration, out.Stats.EngineFailed)
	l.logger.Debug("layout complete",
		"nodes", len(out.Nodes),
		"edges", len(out.Edges),
		"routed", out.Stats.Routed,
		"fallback", out.Stats.Fallback,
		"engine_failed", out.Stats.EngineFailed,
		"took", out.Stats.Duration.Round(time.Millisecond))
	return out
}

func (l *Layouter) layout(ctx context.Context, g engine.Graph) (*engine.Result, error) {
	if l.engine == nil {
		return nil, errNoEngine
	}
	res, err := l.engine.Layout(ctx, g)
	if err != nil {
		return nil, err
	}
	if res == nil {
		return nil, errors.New("engine returned no result")
	}
	return res, nil
}

// identity builds the result for a failed engine call.
func (l *Layouter) identity(ctx context.Context, nodes []diagram.Node, edges []diagram.Edge, err error) Result {
	l.logger.Warn("layout engine failed, keeping diagram as is", "engine", l.engineName, "err", err)
	observability.Layout().OnEngineFailure(ctx, l.engineName, err)

	out := Result{
		Nodes: diagram.CloneNodes(nodes),
		Edges: diagram.CloneEdges(edges),
		Stats: Stats{EngineFailed: true},
	}
	if l.optimizeOnFailure {
		out.Edges = OptimizePorts(out.Nodes, out.Edges)
		out.Stats.Fallback = len(out.Edges)
	}
	return out
}
