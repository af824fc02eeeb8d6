package layout

import (
	"math"

	"github.com/rohith0110/Wikipedia-Graph/pkg/core/graph"
)

// GalaxyOptions configures [Galaxy].
type GalaxyOptions struct {
	// OverviewRadius is the minimum ring radius in overview mode. Default: 1200.
	OverviewRadius float64

	// DetailRadius is the minimum ring radius in any other mode. Default: 900.
	DetailRadius float64

	// RingStep grows the ring by this much per cluster. Default: 200.
	RingStep float64

	// MinAreaRadius is the smallest cluster disc radius. Default: 200.
	MinAreaRadius float64

	// AreaScale multiplies sqrt(memberCount) into the disc radius. Default: 50.
	AreaScale float64

	// Attempts bounds rejection sampling per node. Default: 100.
	Attempts int

	// Separation scales the summed sizes of two nodes into their minimum
	// distance. Default: 6.
	Separation float64

	// SpiralScale is the radial step of the spiral fallback. Default: 60.
	SpiralScale float64
}

var defaultGalaxyOpts = GalaxyOptions{
	OverviewRadius: 1200,
	DetailRadius:   900,
	RingStep:       200,
	MinAreaRadius:  200,
	AreaScale:      50,
	Attempts:       100,
	Separation:     6,
	SpiralScale:    60,
}

// DefaultGalaxyOptions returns a copy of the galaxy defaults.
func DefaultGalaxyOptions() GalaxyOptions { return defaultGalaxyOpts }

// Galaxy places each cluster as a disc on a ring around the origin.
//
// The first member of a cluster sits on the cluster center. Every later
// member is rejection-sampled inside the disc, biased toward the core, and
// must keep (size+otherSize)*Separation away from the members already
// placed in the same cluster. A member that cannot be placed within the
// attempt budget goes onto a spiral around the center instead; those
// members may overlap.
type Galaxy struct {
	opts GalaxyOptions
}

// NewGalaxy returns a galaxy layout. Pass nil for opts to use defaults.
func NewGalaxy(opts *GalaxyOptions) *Galaxy {
	if opts == nil {
		return &Galaxy{opts: defaultGalaxyOpts}
	}
	return &Galaxy{opts: *opts}
}

func (*Galaxy) Name() string { return "galaxy" }

// RingRadius returns the radius of the ring cluster centers sit on.
func (l *Galaxy) RingRadius(clusters int, mode Mode) float64 {
	base := l.opts.DetailRadius
	if mode == ModeOverview {
		base = l.opts.OverviewRadius
	}
	return max(base, float64(clusters)*l.opts.RingStep)
}

// AreaRadius returns the disc radius of a cluster with the given size.
func (l *Galaxy) AreaRadius(members int) float64 {
	return max(l.opts.MinAreaRadius, math.Sqrt(float64(members))*l.opts.AreaScale)
}

// ClusterCenter returns the center of cluster i out of n on a ring of the
// given radius. Cluster 0 sits at angle 0.
func ClusterCenter(i, n int, ring float64) Point {
	return Polar(Origin, 2*math.Pi*float64(i)/float64(n), ring)
}

func (l *Galaxy) Place(g *graph.Graph, req Request) Report {
	g.ResetPositions()
	rng := req.rng()

	clusters := g.Clusters()
	ring := l.RingRadius(len(clusters), req.Mode)

	for ci, c := range clusters {
		center := ClusterCenter(ci, len(clusters), ring)
		area := l.AreaRadius(c.Size())
		placed := make([]*graph.Node, 0, c.Size())

		draw := func() Point {
			angle := rng.Float64() * 2 * math.Pi
			dist := rng.Float64() * area * (0.2 + 0.8*rng.Float64())
			return Polar(center, angle, dist)
		}

		for idx, n := range c.Members {
			switch {
			case idx == 0:
				n.Position(center.X, center.Y, graph.PlacementAnchor)
			default:
				if p, ok := sample(l.opts.Attempts, draw, nodeSize(n), placed, l.opts.Separation); ok {
					n.Position(p.X, p.Y, graph.PlacementSampled)
				} else {
					p := Spiral(center, idx, 0, l.opts.SpiralScale)
					n.Position(p.X, p.Y, graph.PlacementSpiral)
				}
			}
			placed = append(placed, n)
		}
	}
	return Tally(l.Name(), g)
}
