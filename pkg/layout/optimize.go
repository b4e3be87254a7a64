package layout

import (
	"slices"

	"github.com/matzehuels/autolayout/pkg/diagram"
)

// Pairing is one choice of sides for an edge between nodes A and B.
type Pairing struct {
	SideA, SideB diagram.Side
	// Distance between the two handle positions.
	Distance float64
}

// pairingCount is the number of side combinations between two nodes.
const pairingCount = len(diagram.Sides) * len(diagram.Sides)

// RankedPairings returns all 16 side combinations between a and b, shortest
// first. Equal distances keep enumeration order: SideA outer, SideB inner,
// both in diagram.Sides order.
func RankedPairings(a, b diagram.Node) []Pairing {
	out := make([]Pairing, 0, pairingCount)
	for _, sa := range diagram.Sides {
		pa := diagram.PortPosition(a, sa)
		for _, sb := range diagram.Sides {
			out = append(out, Pairing{
				SideA:    sa,
				SideB:    sb,
				Distance: diagram.Distance(pa, diagram.PortPosition(b, sb)),
			})
		}
	}
	slices.SortStableFunc(out, func(x, y Pairing) int {
		switch {
		case x.Distance < y.Distance:
			return -1
		case x.Distance > y.Distance:
			return 1
		}
		return 0
	})
	return out
}

// OptimizePorts assigns handles to every edge from node geometry alone and
// returns the edges in input order. Inputs are not modified.
//
// Edges are grouped by unordered endpoint pair. Within a group the i-th edge
// gets the (i mod 16)-th entry of RankedPairings(A, B), where A is the
// lexicographically smaller endpoint id. Groups with an endpoint missing
// from nodes are passed through unchanged. Edges that get new handles lose
// their route.
func OptimizePorts(nodes []diagram.Node, edges []diagram.Edge) []diagram.Edge {
	out := diagram.CloneEdges(edges)
	all := make([]int, len(out))
	for i := range all {
		all[i] = i
	}
	assignPorts(nodes, out, all)
	return out
}

type pairKey struct{ a, b string }

func keyOf(e diagram.Edge) pairKey {
	if e.Target < e.Source {
		return pairKey{a: e.Target, b: e.Source}
	}
	return pairKey{a: e.Source, b: e.Target}
}

// assignPorts overwrites the handles of edges[i] for every i in idx and drops
// any route they carried, which no longer matches the new handles.
func assignPorts(nodes []diagram.Node, edges []diagram.Edge, idx []int) {
	byID := make(map[string]diagram.Node, len(nodes))
	for _, n := range nodes {
		if _, dup := byID[n.ID]; !dup {
			byID[n.ID] = n
		}
	}

	groups := make(map[pairKey][]int)
	for _, i := range idx {
		k := keyOf(edges[i])
		groups[k] = append(groups[k], i)
	}

	// Groups are independent, so iteration order does not affect the result.
	for k, members := range groups {
		a, okA := byID[k.a]
		b, okB := byID[k.b]
		if !okA || !okB {
			continue
		}
		ranked := RankedPairings(a, b)
		for n, i := range members {
			p := ranked[n%len(ranked)]
			e := &edges[i]
			e.Route = nil
			if e.Source == k.a {
				e.SourceHandle = diagram.NewHandle(p.SideA, diagram.RoleSource)
				e.TargetHandle = diagram.NewHandle(p.SideB, diagram.RoleTarget)
			} else {
				e.SourceHandle = diagram.NewHandle(p.SideB, diagram.RoleSource)
				e.TargetHandle = diagram.NewHandle(p.SideA, diagram.RoleTarget)
			}
		}
	}
}
