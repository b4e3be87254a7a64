// Package pkg provides the libraries behind autolayout.
//
// # Overview
//
// Autolayout takes a diagram of weighted boxes and directed edges, hands it
// to a layered layout engine and writes the engine's node positions and
// connection sides back onto the diagram. When the engine fails the diagram
// comes back unchanged, or with connection sides picked geometrically when
// that is requested.
//
//  1. [diagram] - Diagram model: nodes, edges, handles, box sizing
//  2. [engine] - Engine contract, layout options and result caching
//  3. [engine/dot] - Graphviz implementation of the engine contract
//  4. [layout] - Layout run: request building, mapping, port optimizer
//  5. [cache] - File, Redis and null result caches
//  6. [config] - TOML/YAML configuration
//  7. [metrics] - Prometheus implementation of the [observability] hooks
//
// # Data Flow
//
//	diagram.Diagram
//	      ↓
//	layout.BuildRequest      (sort by creation time, size boxes, add ports)
//	      ↓
//	engine.Engine            (Graphviz, optionally cached)
//	      ↓
//	layout.ApplyPositions / ApplyRoutes
//	      ↓
//	layout.OptimizePorts     (edges the engine left unrouted)
//
// # Quick Start
//
//	import (
//	    "github.com/matzehuels/autolayout/pkg/engine/dot"
//	    "github.com/matzehuels/autolayout/pkg/layout"
//	)
//
//	l := layout.New(dot.New(nil), layout.WithEngineName(dot.Name))
//	res := l.Run(ctx, nodes, edges)
//
// [diagram]: https://pkg.go.dev/github.com/matzehuels/autolayout/pkg/diagram
// [engine]: https://pkg.go.dev/github.com/matzehuels/autolayout/pkg/engine
// [engine/dot]: https://pkg.go.dev/github.com/matzehuels/autolayout/pkg/engine/dot
// [layout]: https://pkg.go.dev/github.com/matzehuels/autolayout/pkg/layout
// [cache]: https://pkg.go.dev/github.com/matzehuels/autolayout/pkg/cache
// [config]: https://pkg.go.dev/github.com/matzehuels/autolayout/pkg/config
// [metrics]: https://pkg.go.dev/github.com/matzehuels/autolayout/pkg/metrics
// [observability]: https://pkg.go.dev/github.com/matzehuels/autolayout/pkg/observability
package pkg
