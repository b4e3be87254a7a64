package layout

import (
	"github.com/matzehuels/autolayout/pkg/diagram"
	"github.com/matzehuels/autolayout/pkg/engine"
)

// ApplyPositions returns copies of nodes with positions taken from res.
// Nodes the engine did not report keep their original position.
func ApplyPositions(nodes []diagram.Node, res *engine.Result) []diagram.Node {
	out := diagram.CloneNodes(nodes)
	if res == nil {
		return out
	}
	pos := res.Positions()
	for i := range out {
		if p, ok := pos[out[i].ID]; ok {
			out[i].Position = p
		}
	}
	return out
}

// ApplyRoutes returns copies of edges with the engine's routing applied, and
// the indices of edges that have no usable route.
//
// A route is usable when it has at least one section. Its port ids become
// handles: the source port gives the source handle and the target port the
// target handle. A missing or unparseable port id keeps the edge's existing
// handle on that end.
func ApplyRoutes(edges []diagram.Edge, res *engine.Result) (out []diagram.Edge, unrouted []int) {
	out = diagram.CloneEdges(edges)
	var routes map[string]engine.EdgeRoute
	if res != nil {
		routes = res.Routes()
	}

	for i := range out {
		e := &out[i]
		r, ok := routes[e.ID]
		if !ok || len(r.Sections) == 0 {
			unrouted = append(unrouted, i)
			continue
		}

		if h := portHandle(r.SourcePort, e.Source, diagram.RoleSource); h != nil {
			e.SourceHandle = h
		}
		if h := portHandle(r.TargetPort, e.Target, diagram.RoleTarget); h != nil {
			e.TargetHandle = h
		}

		route := diagram.Route{
			SourcePort: r.SourcePort,
			TargetPort: r.TargetPort,
			Sections:   make([]diagram.Section, len(r.Sections)),
		}
		for j, s := range r.Sections {
			route.Sections[j] = s.Clone()
		}
		e.Route = &route
	}
	return out, unrouted
}

// portHandle translates an engine port id into a handle for the endpoint
// nodeID. It returns nil when the id is empty, malformed or belongs to
// another node.
func portHandle(portID, nodeID string, role diagram.Role) *diagram.Handle {
	if portID == "" {
		return nil
	}
	owner, side, ok := engine.ParsePortID(portID)
	if !ok || owner != nodeID {
		return nil
	}
	return diagram.NewHandle(side, role)
}
