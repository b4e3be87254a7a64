package dot

import (
	"bytes"
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/autolayout/pkg/engine"
	"github.com/matzehuels/autolayout/pkg/errors"
)

// Name identifies this engine in cache keys, logs and metrics.
const Name = "graphviz-dot"

// plainFormat is Graphviz's line-oriented layout dump.
const plainFormat = graphviz.Format("plain")

// Engine lays out graphs with Graphviz dot. It is safe for concurrent use;
// each call runs in its own Graphviz context.
type Engine struct {
	logger *log.Logger
}

// New creates a Graphviz engine. A nil logger uses log.Default().
func New(logger *log.Logger) *Engine {
	if logger == nil {
		logger = log.Default()
	}
	return &Engine{logger: logger}
}

// Layout implements engine.Engine. Errors carry errors.ErrCodeEngine, or the
// context error when ctx ends first.
func (e *Engine) Layout(ctx context.Context, g engine.Graph) (*engine.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	doc := newDocument(g)
	out, err := render(ctx, doc.src)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pg, err := parsePlain(out)
	if err != nil {
		return nil, err
	}
	res := doc.result(pg)

	e.logger.Debug("graphviz layout",
		"nodes", len(res.Nodes),
		"routed", len(res.Edges),
		"skipped", len(g.Edges)-len(doc.edges),
		"options", g.Options.KeyString(),
		"took", time.Since(start).Round(time.Millisecond))
	return res, nil
}

func render(ctx context.Context, src []byte) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeEngine, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes(src)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeEngine, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, plainFormat, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeEngine, err, "render")
	}
	return buf.Bytes(), nil
}

var _ engine.Engine = (*Engine)(nil)
