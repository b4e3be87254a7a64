package layout

import (
	"cmp"
	"slices"

	"github.com/matzehuels/autolayout/pkg/diagram"
	"github.com/matzehuels/autolayout/pkg/engine"
)

// RootID is the id of the request graph.
const RootID = "root"

// BuildRequest projects nodes and edges into an engine request.
//
// Nodes are stably sorted by CreatedAt so the engine sees creation order as
// its model order. Edge handles are never sent; the engine picks sides
// itself and its choice may be overridden by the optimizer afterwards.
func BuildRequest(nodes []diagram.Node, edges []diagram.Edge, opts engine.Options) engine.Graph {
	sorted := slices.Clone(nodes)
	slices.SortStableFunc(sorted, func(a, b diagram.Node) int {
		return cmp.Compare(a.CreatedAt, b.CreatedAt)
	})

	g := engine.Graph{
		ID:      RootID,
		Options: opts,
		Nodes:   make([]engine.Node, 0, len(sorted)),
		Edges:   make([]engine.Edge, 0, len(edges)),
	}
	for _, n := range sorted {
		sz := n.Size()
		g.Nodes = append(g.Nodes, engine.Node{
			ID:              n.ID,
			Width:           sz.Width,
			Height:          sz.Height,
			Ports:           engine.Ports(n.ID),
			PortConstraints: engine.FixedSide,
		})
	}
	for _, e := range edges {
		g.Edges = append(g.Edges, engine.Edge{ID: e.ID, Source: e.Source, Target: e.Target})
	}
	return g
}
