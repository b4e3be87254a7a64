package dot

import (
	"bufio"
	"bytes"
	"strconv"
	"strings"

	"github.com/matzehuels/autolayout/pkg/diagram"
	"github.com/matzehuels/autolayout/pkg/errors"
)

// plainGraph is the parsed "plain" output of Graphviz. All values are in
// inches with the origin at the bottom-left corner; node positions are
// centers.
type plainGraph struct {
	Width, Height float64
	Nodes         map[string]plainNode
	Edges         []plainEdge
}

type plainNode struct {
	X, Y          float64
	Width, Height float64
}

type plainEdge struct {
	Tail, Head string
	Points     []diagram.Point
}

// parsePlain reads the line-oriented plain format:
//
//	graph scale width height
//	node name x y width height label style shape color fillcolor
//	edge tail head n x1 y1 ... xn yn [label xl yl] style color
//	stop
func parsePlain(data []byte) (*plainGraph, error) {
	pg := &plainGraph{Nodes: make(map[string]plainNode)}

	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	lineNo := 0
	for sc.Scan() {
		lineNo++
		fields := tokenize(sc.Text())
		if len(fields) == 0 {
			continue
		}

		var err error
		switch fields[0] {
		case "graph":
			err = pg.parseGraph(fields)
		case "node":
			err = pg.parseNode(fields)
		case "edge":
			err = pg.parseEdge(fields)
		case "stop":
			return pg, nil
		}
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeEngine, err, "plain output line %d", lineNo)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeEngine, err, "read plain output")
	}
	return pg, nil
}

func (pg *plainGraph) parseGraph(f []string) error {
	nums, err := floats(f, 1, 3)
	if err != nil {
		return err
	}
	pg.Width, pg.Height = nums[1], nums[2]
	return nil
}

func (pg *plainGraph) parseNode(f []string) error {
	if len(f) < 6 {
		return errors.New(errors.ErrCodeEngine, "short node record")
	}
	nums, err := floats(f, 2, 4)
	if err != nil {
		return err
	}
	pg.Nodes[f[1]] = plainNode{X: nums[0], Y: nums[1], Width: nums[2], Height: nums[3]}
	return nil
}

func (pg *plainGraph) parseEdge(f []string) error {
	if len(f) < 4 {
		return errors.New(errors.ErrCodeEngine, "short edge record")
	}
	n, err := strconv.Atoi(f[3])
	if err != nil || n < 0 {
		return errors.New(errors.ErrCodeEngine, "invalid point count %q", f[3])
	}
	coords, err := floats(f, 4, 2*n)
	if err != nil {
		return err
	}
	pts := make([]diagram.Point, n)
	for i := range pts {
		pts[i] = diagram.Point{X: coords[2*i], Y: coords[2*i+1]}
	}
	pg.Edges = append(pg.Edges, plainEdge{Tail: f[1], Head: f[2], Points: pts})
	return nil
}

// floats parses count numeric fields starting at f[from].
func floats(f []string, from, count int) ([]float64, error) {
	if len(f) < from+count {
		return nil, errors.New(errors.ErrCodeEngine, "expected %d numbers, got %d", count, len(f)-from)
	}
	out := make([]float64, count)
	for i := range out {
		v, err := strconv.ParseFloat(f[from+i], 64)
		if err != nil {
			return nil, errors.New(errors.ErrCodeEngine, "invalid number %q", f[from+i])
		}
		out[i] = v
	}
	return out, nil
}

// tokenize splits a plain-format line on whitespace. Double-quoted fields may
// contain spaces and backslash escapes; the quotes are removed.
func tokenize(line string) []string {
	var (
		out     []string
		cur     strings.Builder
		inQuote bool
		escaped bool
		started bool
	)
	flush := func() {
		if started {
			out = append(out, cur.String())
		}
		cur.Reset()
		started = false
	}

	for _, r := range line {
		switch {
		case escaped:
			cur.WriteRune(r)
			escaped = false
		case inQuote && r == '\\':
			escaped = true
		case r == '"':
			inQuote = !inQuote
			started = true
		case !inQuote && (r == ' ' || r == '\t'):
			flush()
		default:
			cur.WriteRune(r)
			started = true
		}
	}
	flush()
	return out
}
