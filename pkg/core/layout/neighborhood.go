package layout

import (
	"math"

	"github.com/rohith0110/Wikipedia-Graph/pkg/core/graph"
)

// NeighborhoodOptions configures [Neighborhood].
type NeighborhoodOptions struct {
	// MinBaseRadius is the smallest inner radius of the annulus. Default: 200.
	MinBaseRadius float64

	// BaseScale multiplies sqrt(neighborCount) into the inner radius.
	// Default: 35.
	BaseScale float64

	// OuterRatio is the outer radius as a multiple of the inner. Default: 4.5.
	OuterRatio float64

	// Attempts bounds rejection sampling per neighbor. Default: 300.
	Attempts int

	// Separation scales summed sizes into the minimum distance. Default: 20.
	Separation float64

	// SpiralScale is the radial step of the spiral fallback. Default: 30.
	SpiralScale float64

	// Fallback lays out every node when no label matches the topic.
	// Default: a [Circle] with its defaults.
	Fallback Strategy
}

var defaultNeighborhoodOpts = NeighborhoodOptions{
	MinBaseRadius: 200,
	BaseScale:     35,
	OuterRatio:    4.5,
	Attempts:      300,
	Separation:    20,
	SpiralScale:   30,
}

// DefaultNeighborhoodOptions returns a copy of the neighborhood defaults.
func DefaultNeighborhoodOptions() NeighborhoodOptions { return defaultNeighborhoodOpts }

// Neighborhood places the node labelled with the requested topic at the
// origin and scatters its direct neighbors in an annulus around it.
//
// Nodes that are neither the focal node nor one of its neighbors are left
// unplaced. When no node carries the topic as its label, the whole graph is
// handed to the fallback strategy instead.
type Neighborhood struct {
	opts NeighborhoodOptions
}

// NewNeighborhood returns a neighborhood layout. Pass nil for opts to use
// defaults.
func NewNeighborhood(opts *NeighborhoodOptions) *Neighborhood {
	o := defaultNeighborhoodOpts
	if opts != nil {
		o = *opts
	}
	if o.Fallback == nil {
		o.Fallback = NewCircle(nil)
	}
	return &Neighborhood{opts: o}
}

func (*Neighborhood) Name() string { return "neighborhood" }

// Radii returns the inner and outer radius of the annulus for the given
// number of neighbors.
func (l *Neighborhood) Radii(neighbors int) (base, outer float64) {
	base = max(l.opts.MinBaseRadius, math.Sqrt(float64(neighbors))*l.opts.BaseScale)
	return base, base * l.opts.OuterRatio
}

func (l *Neighborhood) Place(g *graph.Graph, req Request) Report {
	g.ResetPositions()

	focal, ok := g.FindByLabel(req.Topic)
	if !ok {
		r := l.opts.Fallback.Place(g, req)
		r.Engine = l.Name()
		return r
	}

	rng := req.rng()
	focal.Position(Origin.X, Origin.Y, graph.PlacementFocal)

	neighbors := g.Neighbors(focal.ID)
	base, outer := l.Radii(len(neighbors))
	placed := make([]*graph.Node, 0, len(neighbors)+1)
	placed = append(placed, focal)

	draw := func() Point {
		angle := rng.Float64() * 2 * math.Pi
		dist := base + rng.Float64()*(outer-base)
		return Polar(Origin, angle, dist*(0.6+0.6*rng.Float64()))
	}

	for i, id := range neighbors {
		n, _ := g.Node(id)
		if p, ok := sample(l.opts.Attempts, draw, nodeSize(n), placed, l.opts.Separation); ok {
			n.Position(p.X, p.Y, graph.PlacementSampled)
		} else {
			p := Spiral(Origin, i, base, l.opts.SpiralScale)
			n.Position(p.X, p.Y, graph.PlacementSpiral)
		}
		placed = append(placed, n)
	}
	return Tally(l.Name(), g)
}
