package layout

import (
	"math"

	"github.com/rohith0110/Wikipedia-Graph/pkg/core/graph"
)

// CircleOptions configures [Circle].
type CircleOptions struct {
	// MinRadius is the smallest circle radius. Default: 100.
	MinRadius float64

	// RadiusPerNode grows the radius by this much per node. Default: 20.
	RadiusPerNode float64
}

var defaultCircleOpts = CircleOptions{
	MinRadius:     100,
	RadiusPerNode: 20,
}

// Circle spaces every node evenly on one circle around the origin, in
// insertion order, starting at angle 0. It uses no randomness.
type Circle struct {
	opts CircleOptions
}

// NewCircle returns a circle layout. Pass nil for opts to use defaults.
func NewCircle(opts *CircleOptions) *Circle {
	if opts == nil {
		return &Circle{opts: defaultCircleOpts}
	}
	return &Circle{opts: *opts}
}

func (*Circle) Name() string { return "circle" }

// Radius returns the circle radius for n nodes.
func (l *Circle) Radius(n int) float64 {
	return max(l.opts.MinRadius, float64(n)*l.opts.RadiusPerNode)
}

func (l *Circle) Place(g *graph.Graph, _ Request) Report {
	g.ResetPositions()

	nodes := g.Nodes()
	radius := l.Radius(len(nodes))
	for i, n := range nodes {
		p := Polar(Origin, float64(i)*2*math.Pi/float64(len(nodes)), radius)
		n.Position(p.X, p.Y, graph.PlacementCircle)
	}
	return Tally(l.Name(), g)
}
