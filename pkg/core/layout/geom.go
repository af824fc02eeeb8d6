package layout

import (
	"math"
	"math/rand/v2"

	"github.com/rohith0110/Wikipedia-Graph/pkg/core/graph"
)

// Point is a position on the layout plane.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Origin is the center of the layout plane.
var Origin = Point{}

// Polar returns the point at the given angle (radians) and radius from c.
func Polar(c Point, angle, radius float64) Point {
	return Point{
		X: c.X + math.Cos(angle)*radius,
		Y: c.Y + math.Sin(angle)*radius,
	}
}

// Dist returns the Euclidean distance between a and b.
func Dist(a, b Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// PointOf returns the current position of n.
func PointOf(n *graph.Node) Point { return Point{X: n.X, Y: n.Y} }

// NewRand returns a PCG-backed generator for seed. The same seed always
// yields the same sequence.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
}

// RandomSeed draws a fresh non-zero seed from the runtime's entropy source.
func RandomSeed() uint64 {
	for {
		if s := rand.Uint64(); s != 0 {
			return s
		}
	}
}

// Spiral returns the Archimedean spiral position of index idx around c:
// angle idx*0.5, radius offset + sqrt(idx)*scale.
func Spiral(c Point, idx int, offset, scale float64) Point {
	return Polar(c, float64(idx)*spiralAngleStep, offset+math.Sqrt(float64(idx))*scale)
}

const spiralAngleStep = 0.5

// nodeSize returns the size used for separation checks.
func nodeSize(n *graph.Node) float64 {
	if n.Size > 0 {
		return n.Size
	}
	return FallbackSize
}

// separated reports whether p keeps the required distance from every placed
// node: dist >= (size + other.size) * factor.
func separated(p Point, size float64, placed []*graph.Node, factor float64) bool {
	for _, o := range placed {
		if Dist(p, PointOf(o)) < (size+nodeSize(o))*factor {
			return false
		}
	}
	return true
}

// sample draws candidates until one is clear of placed or attempts run out.
func sample(attempts int, draw func() Point, size float64, placed []*graph.Node, factor float64) (Point, bool) {
	for range attempts {
		p := draw()
		if separated(p, size, placed, factor) {
			return p, true
		}
	}
	return Point{}, false
}
