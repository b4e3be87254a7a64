package dot

import (
	"math"
	"slices"

	"github.com/matzehuels/autolayout/pkg/diagram"
	"github.com/matzehuels/autolayout/pkg/engine"
)

const epsilon = 1e-6

type box struct {
	pos  diagram.Point
	size diagram.Size
}

func (b box) center() diagram.Point {
	return diagram.Point{X: b.pos.X + b.size.Width/2, Y: b.pos.Y + b.size.Height/2}
}

// result maps Graphviz output back onto the request. Nodes missing from the
// output are left out; edges without a spline are left unrouted.
func (doc *document) result(pg *plainGraph) *engine.Result {
	res := &engine.Result{}
	toPx := func(p diagram.Point) diagram.Point {
		return diagram.Point{X: p.X * pointsPerInch, Y: (pg.Height - p.Y) * pointsPerInch}
	}

	boxes := make(map[string]box, len(doc.order))
	for _, name := range doc.order {
		pn, ok := pg.Nodes[name]
		if !ok {
			continue
		}
		n := doc.nodes[name]
		c := toPx(diagram.Point{X: pn.X, Y: pn.Y})
		b := box{
			pos:  diagram.Point{X: c.X - n.Width/2, Y: c.Y - n.Height/2},
			size: diagram.Size{Width: n.Width, Height: n.Height},
		}
		boxes[name] = b
		res.Nodes = append(res.Nodes, engine.NodePosition{ID: n.ID, X: b.pos.X, Y: b.pos.Y})
	}

	// Parallel edges share (tail, head); Graphviz emits them in input order.
	queues := make(map[[2]string][][]diagram.Point)
	for _, pe := range pg.Edges {
		k := [2]string{pe.Tail, pe.Head}
		queues[k] = append(queues[k], pe.Points)
	}

	for _, e := range doc.edges {
		src, dst := doc.names[e.Source], doc.names[e.Target]
		k := [2]string{src, dst}
		q := queues[k]
		if len(q) == 0 {
			continue
		}
		pts := q[0]
		queues[k] = q[1:]

		sb, okSrc := boxes[src]
		tb, okDst := boxes[dst]
		if !okSrc || !okDst || len(pts) < 2 {
			continue
		}

		path := make([]diagram.Point, len(pts))
		for i, p := range pts {
			path[i] = toPx(p)
		}
		if src != dst && diagram.Distance(path[0], tb.center()) < diagram.Distance(path[0], sb.center()) {
			slices.Reverse(path)
		}
		path = simplify(path)
		last := len(path) - 1

		section := diagram.Section{Start: path[0], End: path[last]}
		if last > 1 {
			section.Bends = path[1:last]
		}
		res.Edges = append(res.Edges, engine.EdgeRoute{
			ID:         e.ID,
			SourcePort: engine.PortID(e.Source, diagram.NearestSide(sb.pos, sb.size, path[0])),
			TargetPort: engine.PortID(e.Target, diagram.NearestSide(tb.pos, tb.size, path[last])),
			Sections:   []diagram.Section{section},
		})
	}
	return res
}

// simplify drops repeated points and interior points lying on the straight
// line between their neighbours. Orthogonal splines come back as runs of
// collinear control points.
func simplify(path []diagram.Point) []diagram.Point {
	out := make([]diagram.Point, 0, len(path))
	for _, p := range path {
		if n := len(out); n > 0 && samePoint(out[n-1], p) {
			continue
		}
		for n := len(out); n >= 2 && collinear(out[n-2], out[n-1], p); n = len(out) {
			out = out[:n-1]
		}
		out = append(out, p)
	}
	if len(out) == 1 {
		out = append(out, out[0])
	}
	return out
}

func samePoint(a, b diagram.Point) bool {
	return math.Abs(a.X-b.X) < epsilon && math.Abs(a.Y-b.Y) < epsilon
}

// collinear reports whether b lies on the segment from a to c.
func collinear(a, b, c diagram.Point) bool {
	cross := (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
	if math.Abs(cross) > epsilon {
		return false
	}
	return (b.X-a.X)*(c.X-b.X) >= -epsilon && (b.Y-a.Y)*(c.Y-b.Y) >= -epsilon
}
