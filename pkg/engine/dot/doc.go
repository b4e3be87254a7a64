// Package dot implements [engine.Engine] on top of Graphviz's dot algorithm.
//
// # Overview
//
// The request is converted to DOT source with fixed-size box nodes, laid out
// in-process by [github.com/goccy/go-graphviz], and read back from the
// "plain" output format. Coordinates are converted from inches with a
// bottom-left origin to pixels with a top-left origin, and node centers to
// top-left corners.
//
// # Ports
//
// Graphviz does not report which side of a node an edge attaches to. The
// adapter infers it from the route geometry: the side of the box nearest to
// the first (or last) route point. The inferred port ids follow
// [engine.PortID], so callers cannot tell them apart from ports reported by
// an engine with native port support.
//
// # Unsupported requests
//
// Edges whose endpoints are not declared nodes are not sent to Graphviz and
// come back without a route. Options Graphviz has no equivalent for
// (node placement, crossing minimization strategy) are ignored.
package dot
