package force

import (
	"math"
	"math/rand/v2"

	"github.com/rohith0110/Wikipedia-Graph/pkg/core/graph"
	"github.com/rohith0110/Wikipedia-Graph/pkg/core/layout"
)

// SeedOptions configures the coarse ring placement that precedes the
// simulation.
type SeedOptions struct {
	// MinRingRadius is the smallest ring radius. Default: 400.
	MinRingRadius float64

	// RingStep grows the ring per cluster. Default: 80.
	RingStep float64

	// MinClusterRadius is the smallest cluster radius. Default: 50.
	MinClusterRadius float64

	// ClusterScale multiplies sqrt(memberCount) into the cluster radius.
	// Default: 20.
	ClusterScale float64
}

var defaultSeedOpts = SeedOptions{
	MinRingRadius:    400,
	RingStep:         80,
	MinClusterRadius: 50,
	ClusterScale:     20,
}

// Seed puts cluster centers evenly on a ring and spreads each cluster's
// members at evenly spaced angles and random radii around its center.
// There is no collision check; the simulation resolves overlaps.
func Seed(g *graph.Graph, rng *rand.Rand, opts *SeedOptions) {
	if opts == nil {
		opts = &defaultSeedOpts
	}

	clusters := g.Clusters()
	ring := max(opts.MinRingRadius, float64(len(clusters))*opts.RingStep)
	for ci, c := range clusters {
		center := layout.ClusterCenter(ci, len(clusters), ring)
		radius := max(opts.MinClusterRadius, math.Sqrt(float64(c.Size()))*opts.ClusterScale)
		for idx, n := range c.Members {
			angle := 2 * math.Pi * float64(idx) / float64(c.Size())
			p := layout.Polar(center, angle, rng.Float64()*radius)
			n.Position(p.X, p.Y, graph.PlacementForce)
		}
	}
}
