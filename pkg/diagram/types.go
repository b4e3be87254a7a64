package diagram

import "maps"

// Point is a 2-D coordinate. Y grows downwards.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Size is the bounding box of a node.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Node is a diagram box. Position is the top-left corner.
type Node struct {
	ID       string `json:"id"`
	Position Point  `json:"position"`
	// Weight drives the box size. nil resolves to DefaultWeight.
	Weight *float64 `json:"weight,omitempty"`
	// CreatedAt is milliseconds since the Unix epoch. Used only for ordering.
	CreatedAt int64          `json:"created_at,omitempty"`
	Data      map[string]any `json:"data,omitempty"`
}

// Weight returns a pointer to w, for building nodes with an explicit weight.
func Weight(w float64) *float64 { return &w }

// WeightOr returns n's weight, or def when it is unset.
func (n Node) WeightOr(def float64) float64 {
	if n.Weight == nil {
		return def
	}
	return *n.Weight
}

// Size returns the node's bounding box as derived from its weight.
func (n Node) Size() Size { return SizeOf(n.WeightOr(DefaultWeight)) }

// Clone returns a copy of n that shares no mutable state with it.
func (n Node) Clone() Node {
	if n.Weight != nil {
		n.Weight = Weight(*n.Weight)
	}
	n.Data = maps.Clone(n.Data)
	return n
}

// Edge is a directed connection between two nodes.
type Edge struct {
	ID           string         `json:"id"`
	Source       string         `json:"source"`
	Target       string         `json:"target"`
	SourceHandle *Handle        `json:"sourceHandle,omitempty"`
	TargetHandle *Handle        `json:"targetHandle,omitempty"`
	Route        *Route         `json:"route,omitempty"`
	Data         map[string]any `json:"data,omitempty"`
}

// Clone returns a deep copy of e. Handle and route pointers are reallocated.
func (e Edge) Clone() Edge {
	if e.SourceHandle != nil {
		h := *e.SourceHandle
		e.SourceHandle = &h
	}
	if e.TargetHandle != nil {
		h := *e.TargetHandle
		e.TargetHandle = &h
	}
	if e.Route != nil {
		r := e.Route.Clone()
		e.Route = &r
	}
	e.Data = maps.Clone(e.Data)
	return e
}

// Route is the path an engine chose for an edge. Renderers may ignore it.
type Route struct {
	SourcePort string    `json:"sourcePort,omitempty"`
	TargetPort string    `json:"targetPort,omitempty"`
	Sections   []Section `json:"sections"`
}

// Clone returns a deep copy of r.
func (r Route) Clone() Route {
	out := Route{SourcePort: r.SourcePort, TargetPort: r.TargetPort}
	if r.Sections != nil {
		out.Sections = make([]Section, len(r.Sections))
		for i, s := range r.Sections {
			out.Sections[i] = s.Clone()
		}
	}
	return out
}

// Section is one polyline segment of a route.
type Section struct {
	Start Point   `json:"startPoint"`
	End   Point   `json:"endPoint"`
	Bends []Point `json:"bendPoints,omitempty"`
}

// Clone returns a deep copy of s.
func (s Section) Clone() Section {
	if s.Bends != nil {
		s.Bends = append([]Point(nil), s.Bends...)
	}
	return s
}

// Diagram is a node-link snapshot as exchanged with the diagram store and renderer.
type Diagram struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// CloneNodes deep-copies a node slice.
func CloneNodes(nodes []Node) []Node {
	if nodes == nil {
		return nil
	}
	out := make([]Node, len(nodes))
	for i, n := range nodes {
		out[i] = n.Clone()
	}
	return out
}

// CloneEdges deep-copies an edge slice.
func CloneEdges(edges []Edge) []Edge {
	if edges == nil {
		return nil
	}
	out := make([]Edge, len(edges))
	for i, e := range edges {
		out[i] = e.Clone()
	}
	return out
}
