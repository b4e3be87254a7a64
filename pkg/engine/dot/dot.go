package dot

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/matzehuels/autolayout/pkg/engine"
)

// pointsPerInch converts between pixels and Graphviz inches.
const pointsPerInch = 72.0

var rankdirs = map[string]string{
	engine.DirectionDown:  "TB",
	engine.DirectionUp:    "BT",
	engine.DirectionRight: "LR",
	engine.DirectionLeft:  "RL",
}

var splineModes = map[string]string{
	engine.RoutingOrthogonal: "ortho",
	engine.RoutingPolyline:   "polyline",
	engine.RoutingSplines:    "spline",
}

// document is a request rendered as DOT plus the bookkeeping needed to map
// Graphviz output back onto it. Node ids are replaced by n0, n1, ... so
// arbitrary ids never need DOT quoting.
type document struct {
	src   []byte
	names map[string]string      // request id -> DOT name
	nodes map[string]engine.Node // DOT name -> request node
	order []string               // DOT names in request order
	edges []engine.Edge          // edges sent to Graphviz, in request order
}

// ToDOT converts a layout request to Graphviz DOT source.
func ToDOT(g engine.Graph) string {
	return string(newDocument(g).src)
}

func newDocument(g engine.Graph) *document {
	doc := &document{
		names: make(map[string]string, len(g.Nodes)),
		nodes: make(map[string]engine.Node, len(g.Nodes)),
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	writeGraphAttrs(&buf, g.Options)
	buf.WriteString("  node [shape=box, fixedsize=true, label=\"\"];\n")
	buf.WriteString("  edge [arrowhead=none];\n")
	buf.WriteString("\n")

	for _, n := range g.Nodes {
		if _, dup := doc.names[n.ID]; dup {
			continue
		}
		name := "n" + strconv.Itoa(len(doc.order))
		doc.names[n.ID] = name
		doc.nodes[name] = n
		doc.order = append(doc.order, name)
		fmt.Fprintf(&buf, "  %s [width=%s, height=%s];\n", name, inches(n.Width), inches(n.Height))
	}

	buf.WriteString("\n")
	for _, e := range g.Edges {
		src, okSrc := doc.names[e.Source]
		dst, okDst := doc.names[e.Target]
		if !okSrc || !okDst {
			continue
		}
		doc.edges = append(doc.edges, e)
		fmt.Fprintf(&buf, "  %s -> %s;\n", src, dst)
	}

	buf.WriteString("}\n")
	doc.src = buf.Bytes()
	return doc
}

func writeGraphAttrs(buf *bytes.Buffer, o engine.Options) {
	rankdir, ok := rankdirs[o.Direction]
	if !ok {
		rankdir = "TB"
	}
	fmt.Fprintf(buf, "  rankdir=%s;\n", rankdir)
	fmt.Fprintf(buf, "  nodesep=%s;\n", inches(o.NodeSpacing))
	fmt.Fprintf(buf, "  ranksep=%s;\n", inches(o.LayerSpacing))
	if mode, ok := splineModes[o.EdgeRouting]; ok {
		fmt.Fprintf(buf, "  splines=%s;\n", mode)
	}
	switch o.ConsiderModelOrder {
	case "", engine.ModelOrderNone:
	default:
		buf.WriteString("  ordering=out;\n")
	}
}

// inches formats px in Graphviz inches with the shortest exact
// representation, so sizes convert back to whole pixels.
func inches(px float64) string {
	return strconv.FormatFloat(px/pointsPerInch, 'g', -1, 64)
}
