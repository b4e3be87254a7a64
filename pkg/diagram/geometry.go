package diagram

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Box dimensions for a node of DefaultWeight. Keep in sync with the renderer CSS.
const (
	BaseWidth  = 150
	BaseHeight = 50

	DefaultWeight = 100
	MinWeight     = 10
)

// SizeOf maps a node weight to its bounding box.
//
// Area scales linearly with weight and the aspect ratio is fixed. Weights
// below MinWeight, zero and negatives included, are clamped to MinWeight.
// NaN is treated as unset. A missing weight is handled by [Node.Size].
func SizeOf(weight float64) Size {
	if math.IsNaN(weight) {
		weight = DefaultWeight
	}
	weight = max(weight, MinWeight)
	scale := math.Sqrt(weight / DefaultWeight)
	return Size{
		Width:  math.Round(BaseWidth * scale),
		Height: math.Round(BaseHeight * scale),
	}
}

// PortPosition returns the absolute position of the handle on side of n:
// the midpoint of that box edge.
func PortPosition(n Node, side Side) Point {
	x, y := n.Position.X, n.Position.Y
	sz := n.Size()

	switch side {
	case South:
		return Point{X: x + sz.Width/2, Y: y + sz.Height}
	case West:
		return Point{X: x, Y: y + sz.Height/2}
	case East:
		return Point{X: x + sz.Width, Y: y + sz.Height/2}
	default:
		return Point{X: x + sz.Width/2, Y: y}
	}
}

// Distance is the Euclidean distance between two points.
func Distance(a, b Point) float64 {
	d := r2.Sub(a.vec(), b.vec())
	return math.Sqrt(r2.Dot(d, d))
}

func (p Point) vec() r2.Vec { return r2.Vec{X: p.X, Y: p.Y} }

// NearestSide returns the side of the box at (pos, sz) whose edge is closest
// to p. Ties resolve in Sides order.
func NearestSide(pos Point, sz Size, p Point) Side {
	dists := [4]float64{
		math.Abs(p.Y - pos.Y),
		math.Abs(p.Y - (pos.Y + sz.Height)),
		math.Abs(p.X - pos.X),
		math.Abs(p.X - (pos.X + sz.Width)),
	}
	best := 0
	for i := 1; i < len(dists); i++ {
		if dists[i] < dists[best] {
			best = i
		}
	}
	return Sides[best]
}
