package diagram

import (
	"bytes"
	"encoding/json"
	"math"
	"path/filepath"
	"strings"
	"testing"
)

func TestSizeOf(t *testing.T) {
	tests := []struct {
		name   string
		weight float64
		want   Size
	}{
		{"baseline", 100, Size{Width: 150, Height: 50}},
		{"quarter", 25, Size{Width: 75, Height: 25}},
		{"quadruple", 400, Size{Width: 300, Height: 100}},
		{"zero", 0, SizeOf(MinWeight)},
		{"below floor", 1, SizeOf(MinWeight)},
		{"negative", -50, SizeOf(MinWeight)},
		{"floor", 10, Size{Width: 47, Height: 16}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SizeOf(tt.weight); got != tt.want {
				t.Errorf("SizeOf(%v) = %+v, want %+v", tt.weight, got, tt.want)
			}
		})
	}
}

func TestSizeOfMonotonic(t *testing.T) {
	prev := SizeOf(MinWeight)
	for w := float64(MinWeight); w <= 2000; w += 0.5 {
		got := SizeOf(w)
		if got.Width < prev.Width || got.Height < prev.Height {
			t.Fatalf("SizeOf(%v) = %+v shrank from %+v", w, got, prev)
		}
		prev = got
	}
}

func TestPortPosition(t *testing.T) {
	n := Node{ID: "a", Position: Point{X: 10, Y: 20}, Weight: Weight(100)}

	tests := []struct {
		side Side
		want Point
	}{
		{North, Point{X: 85, Y: 20}},
		{South, Point{X: 85, Y: 70}},
		{West, Point{X: 10, Y: 45}},
		{East, Point{X: 160, Y: 45}},
		{Side("bogus"), Point{X: 85, Y: 20}},
	}

	for _, tt := range tests {
		t.Run(string(tt.side), func(t *testing.T) {
			if got := PortPosition(n, tt.side); got != tt.want {
				t.Errorf("PortPosition(%s) = %+v, want %+v", tt.side, got, tt.want)
			}
		})
	}
}

func TestDistance(t *testing.T) {
	if got := Distance(Point{0, 0}, Point{3, 4}); got != 5 {
		t.Errorf("Distance = %v, want 5", got)
	}
	a, b := Point{X: 1.5, Y: -2}, Point{X: -7, Y: 11.25}
	want := math.Sqrt((a.X-b.X)*(a.X-b.X) + (a.Y-b.Y)*(a.Y-b.Y))
	if got := Distance(a, b); got != want {
		t.Errorf("Distance = %v, want %v", got, want)
	}
}

func TestNearestSide(t *testing.T) {
	pos, sz := Point{X: 0, Y: 0}, Size{Width: 100, Height: 40}

	tests := []struct {
		p    Point
		want Side
	}{
		{Point{X: 50, Y: 0}, North},
		{Point{X: 50, Y: 41}, South},
		{Point{X: -1, Y: 20}, West},
		{Point{X: 100, Y: 20}, East},
		{Point{X: 0, Y: 0}, North},
	}
	for _, tt := range tests {
		if got := NearestSide(pos, sz, tt.p); got != tt.want {
			t.Errorf("NearestSide(%+v) = %s, want %s", tt.p, got, tt.want)
		}
	}
}

func TestHandleRoundTrip(t *testing.T) {
	for _, side := range Sides {
		for _, role := range []Role{RoleSource, RoleTarget} {
			h := Handle{Side: side, Role: role}
			parsed, err := ParseHandle(h.ID())
			if err != nil {
				t.Fatalf("ParseHandle(%q) error: %v", h.ID(), err)
			}
			if parsed != h {
				t.Errorf("ParseHandle(%q) = %+v, want %+v", h.ID(), parsed, h)
			}
		}
	}
}

func TestHandleIDs(t *testing.T) {
	tests := map[string]Handle{
		"t-s": {North, RoleSource},
		"b-t": {South, RoleTarget},
		"l-s": {West, RoleSource},
		"r-t": {East, RoleTarget},
	}
	for id, h := range tests {
		if got := h.ID(); got != id {
			t.Errorf("%+v.ID() = %q, want %q", h, got, id)
		}
	}
}

func TestParseHandleInvalid(t *testing.T) {
	for _, id := range []string{"", "t", "x-s", "t-x", "t_s", "top-source"} {
		if _, err := ParseHandle(id); err == nil {
			t.Errorf("ParseHandle(%q) expected error", id)
		}
	}
}

func TestEdgeJSON(t *testing.T) {
	e := Edge{
		ID:           "e1",
		Source:       "a",
		Target:       "b",
		SourceHandle: NewHandle(South, RoleSource),
		TargetHandle: NewHandle(North, RoleTarget),
	}
	data, err := json.Marshal(e)
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}
	if !strings.Contains(string(data), `"sourceHandle":"b-s"`) {
		t.Errorf("missing source handle id: %s", data)
	}
	if !strings.Contains(string(data), `"targetHandle":"t-t"`) {
		t.Errorf("missing target handle id: %s", data)
	}

	var got Edge
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}
	if *got.SourceHandle != *e.SourceHandle || *got.TargetHandle != *e.TargetHandle {
		t.Errorf("handles did not survive JSON: %+v", got)
	}
}

func TestEdgeClone(t *testing.T) {
	e := Edge{
		ID:           "e1",
		SourceHandle: NewHandle(West, RoleSource),
		Route:        &Route{Sections: []Section{{Bends: []Point{{X: 1, Y: 2}}}}},
		Data:         map[string]any{"label": "x"},
	}
	c := e.Clone()
	c.SourceHandle.Side = East
	c.Route.Sections[0].Bends[0].X = 99
	c.Data["label"] = "y"

	if e.SourceHandle.Side != West {
		t.Error("Clone shares source handle")
	}
	if e.Route.Sections[0].Bends[0].X != 1 {
		t.Error("Clone shares route bends")
	}
	if e.Data["label"] != "x" {
		t.Error("Clone shares data map")
	}
}

func TestNodeWeightFromJSON(t *testing.T) {
	tests := []struct {
		name string
		json string
		want Size
	}{
		{"missing", `{"id": "a"}`, Size{Width: 150, Height: 50}},
		{"explicit zero", `{"id": "a", "weight": 0}`, SizeOf(MinWeight)},
		{"negative", `{"id": "a", "weight": -5}`, SizeOf(MinWeight)},
		{"explicit", `{"id": "a", "weight": 400}`, Size{Width: 300, Height: 100}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var n Node
			if err := json.Unmarshal([]byte(tt.json), &n); err != nil {
				t.Fatal(err)
			}
			if got := n.Size(); got != tt.want {
				t.Errorf("Size() = %+v, want %+v", got, tt.want)
			}
		})
	}

	// An explicit zero survives a write.
	raw, err := json.Marshal(Node{ID: "a", Weight: Weight(0)})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(raw), `"weight":0`) {
		t.Errorf("explicit zero weight dropped: %s", raw)
	}
}

func TestNodeClone(t *testing.T) {
	n := Node{ID: "a", Weight: Weight(25), Data: map[string]any{"k": 1}}
	c := n.Clone()
	*c.Weight = 400
	c.Data["k"] = 2

	if *n.Weight != 25 {
		t.Error("Clone shares weight")
	}
	if n.Data["k"] != 1 {
		t.Error("Clone shares data map")
	}
}

func TestReadWrite(t *testing.T) {
	input := `{
		"nodes": [
			{"id": "n1", "position": {"x": 0, "y": 0}, "weight": 25, "created_at": 1700000000000},
			{"id": "n2", "position": {"x": 10, "y": 10}}
		],
		"edges": [
			{"id": "e1", "source": "n1", "target": "n2", "sourceHandle": "r-s"}
		]
	}`

	d, err := Read(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Read error: %v", err)
	}
	if len(d.Nodes) != 2 || len(d.Edges) != 1 {
		t.Fatalf("got %d nodes %d edges", len(d.Nodes), len(d.Edges))
	}
	if d.Nodes[0].Size() != (Size{Width: 75, Height: 25}) {
		t.Errorf("n1 size = %+v", d.Nodes[0].Size())
	}
	if d.Edges[0].SourceHandle == nil || *d.Edges[0].SourceHandle != (Handle{East, RoleSource}) {
		t.Errorf("e1 source handle = %v", d.Edges[0].SourceHandle)
	}
	if d.Edges[0].TargetHandle != nil {
		t.Errorf("e1 target handle should be nil, got %v", d.Edges[0].TargetHandle)
	}

	path := filepath.Join(t.TempDir(), "out.json")
	if err := WriteFile(d, path); err != nil {
		t.Fatalf("WriteFile error: %v", err)
	}
	back, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile error: %v", err)
	}
	if back.Nodes[1].Position != (Point{X: 10, Y: 10}) {
		t.Errorf("n2 position = %+v", back.Nodes[1].Position)
	}
}

func TestWriteEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(Diagram{}, &buf); err != nil {
		t.Fatalf("Write error: %v", err)
	}
	if !strings.Contains(buf.String(), `"nodes": []`) || !strings.Contains(buf.String(), `"edges": []`) {
		t.Errorf("empty diagram should carry both arrays: %s", buf.String())
	}
}

func TestReadInvalidHandle(t *testing.T) {
	_, err := Read(strings.NewReader(`{"edges":[{"id":"e","source":"a","target":"b","sourceHandle":"zz"}]}`))
	if err == nil {
		t.Error("expected error for invalid handle id")
	}
}
