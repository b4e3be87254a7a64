package engine

import (
	"context"
	"strings"

	"github.com/matzehuels/autolayout/pkg/diagram"
)

// Engine computes positions and optional edge routes for a normalized graph.
type Engine interface {
	Layout(ctx context.Context, g Graph) (*Result, error)
}

// Func adapts an ordinary function to the Engine interface.
type Func func(ctx context.Context, g Graph) (*Result, error)

// Layout calls f(ctx, g).
func (f Func) Layout(ctx context.Context, g Graph) (*Result, error) { return f(ctx, g) }

// PortConstraint tells the engine how freely it may move ports.
type PortConstraint string

const (
	// FixedSide locks each port to its declared side.
	FixedSide PortConstraint = "FIXED_SIDE"
)

// =============================================================================
// Request
// =============================================================================

// Graph is the normalized layout request.
type Graph struct {
	ID      string  `json:"id"`
	Options Options `json:"options"`
	Nodes   []Node  `json:"children"`
	Edges   []Edge  `json:"edges"`
}

// Node is a sized box with fixed ports.
type Node struct {
	ID              string         `json:"id"`
	Width           float64        `json:"width"`
	Height          float64        `json:"height"`
	Ports           []Port         `json:"ports"`
	PortConstraints PortConstraint `json:"portConstraints"`
}

// Port is a named attachment point locked to one side of its node.
type Port struct {
	ID   string       `json:"id"`
	Side diagram.Side `json:"side"`
}

// Edge is a plain connection. Handles are deliberately not part of the request.
type Edge struct {
	ID     string `json:"id"`
	Source string `json:"source"`
	Target string `json:"target"`
}

// =============================================================================
// Response
// =============================================================================

// Result is what an engine returns for a Graph.
type Result struct {
	Nodes []NodePosition `json:"nodes"`
	Edges []EdgeRoute    `json:"edges,omitempty"`
}

// NodePosition is the absolute top-left position of a laid out node.
type NodePosition struct {
	ID string  `json:"id"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
}

// EdgeRoute is the routing record for one edge. Port ids are empty when the
// engine did not report which port was used.
type EdgeRoute struct {
	ID         string            `json:"id"`
	SourcePort string            `json:"sourcePort,omitempty"`
	TargetPort string            `json:"targetPort,omitempty"`
	Sections   []diagram.Section `json:"sections,omitempty"`
}

// Positions indexes the node positions by id.
func (r *Result) Positions() map[string]diagram.Point {
	out := make(map[string]diagram.Point, len(r.Nodes))
	for _, n := range r.Nodes {
		out[n.ID] = diagram.Point{X: n.X, Y: n.Y}
	}
	return out
}

// Routes indexes the edge routes by edge id. Later duplicates are ignored.
func (r *Result) Routes() map[string]EdgeRoute {
	out := make(map[string]EdgeRoute, len(r.Edges))
	for _, e := range r.Edges {
		if _, ok := out[e.ID]; !ok {
			out[e.ID] = e
		}
	}
	return out
}

// =============================================================================
// Port IDs
// =============================================================================

const portInfix = "-p-"

// PortID returns the id of the port on side of node, e.g. "n1-p-north".
func PortID(nodeID string, side diagram.Side) string {
	return nodeID + portInfix + string(side)
}

// ParsePortID splits a port id back into node id and side.
func ParsePortID(id string) (nodeID string, side diagram.Side, ok bool) {
	i := strings.LastIndex(id, portInfix)
	if i < 0 {
		return "", "", false
	}
	side = diagram.Side(id[i+len(portInfix):])
	if !side.Valid() {
		return "", "", false
	}
	return id[:i], side, true
}

// Ports returns the four side-locked ports of a node in canonical side order.
func Ports(nodeID string) []Port {
	ports := make([]Port, 0, len(diagram.Sides))
	for _, side := range diagram.Sides {
		ports = append(ports, Port{ID: PortID(nodeID, side), Side: side})
	}
	return ports
}
