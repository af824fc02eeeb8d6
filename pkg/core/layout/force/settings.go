package force

import "fmt"

// Settings tunes one ForceAtlas2 pass.
type Settings struct {
	// Iterations is the number of simulation steps in the pass.
	Iterations int `json:"iterations" yaml:"iterations" toml:"iterations" validate:"gte=0"`

	// LinLogMode replaces linear attraction with log(1+d), which tightens
	// clusters.
	LinLogMode bool `json:"lin_log_mode" yaml:"lin_log_mode" toml:"lin_log_mode"`

	// OutboundAttractionDistribution divides attraction by the source
	// node's mass so hubs drift to the border.
	OutboundAttractionDistribution bool `json:"outbound_attraction_distribution" yaml:"outbound_attraction_distribution" toml:"outbound_attraction_distribution"`

	// AdjustSizes makes forces act on node borders instead of centers, so
	// nodes push apart once they touch.
	AdjustSizes bool `json:"adjust_sizes" yaml:"adjust_sizes" toml:"adjust_sizes"`

	// EdgeWeightInfluence is the exponent applied to edge weights.
	EdgeWeightInfluence float64 `json:"edge_weight_influence" yaml:"edge_weight_influence" toml:"edge_weight_influence" validate:"gte=0"`

	// ScalingRatio scales repulsion and gravity.
	ScalingRatio float64 `json:"scaling_ratio" yaml:"scaling_ratio" toml:"scaling_ratio" validate:"gt=0"`

	// StrongGravityMode makes gravity independent of distance.
	StrongGravityMode bool `json:"strong_gravity_mode" yaml:"strong_gravity_mode" toml:"strong_gravity_mode"`

	// Gravity pulls every node toward the origin.
	Gravity float64 `json:"gravity" yaml:"gravity" toml:"gravity" validate:"gte=0"`

	// SlowDown divides every displacement.
	SlowDown float64 `json:"slow_down" yaml:"slow_down" toml:"slow_down" validate:"gt=0"`

	// BarnesHutOptimize approximates repulsion with a quadtree.
	BarnesHutOptimize bool `json:"barnes_hut_optimize" yaml:"barnes_hut_optimize" toml:"barnes_hut_optimize"`

	// BarnesHutTheta is the opening criterion of the quadtree: regions
	// with width/distance below theta are treated as one body.
	BarnesHutTheta float64 `json:"barnes_hut_theta" yaml:"barnes_hut_theta" toml:"barnes_hut_theta" validate:"gte=0"`
}

// DefaultSettings returns the stock ForceAtlas2 settings for a single pass
// of 100 iterations.
func DefaultSettings() Settings {
	return Settings{
		Iterations:          100,
		EdgeWeightInfluence: 1,
		ScalingRatio:        1,
		Gravity:             1,
		SlowDown:            1,
		BarnesHutTheta:      0.5,
	}
}

// OverviewPasses returns the two passes run for overview layouts: a
// cluster-separating pass followed by a slower pass with stronger
// repulsion and weaker gravity.
func OverviewPasses() []Settings {
	first := Settings{
		Iterations:                     400,
		OutboundAttractionDistribution: true,
		AdjustSizes:                    true,
		EdgeWeightInfluence:            0.05,
		ScalingRatio:                   80,
		Gravity:                        0.02,
		SlowDown:                       3,
		BarnesHutOptimize:              true,
		BarnesHutTheta:                 0.8,
	}
	second := first
	second.Iterations = 150
	second.ScalingRatio = 120
	second.Gravity = 0.01
	second.SlowDown = 8
	second.EdgeWeightInfluence = 0.02
	return []Settings{first, second}
}

// DetailPasses returns the single pass run for detail layouts.
func DetailPasses() []Settings {
	return []Settings{{
		Iterations:          200,
		AdjustSizes:         true,
		EdgeWeightInfluence: 1,
		ScalingRatio:        50,
		Gravity:             0.5,
		SlowDown:            2,
		BarnesHutTheta:      0.5,
	}}
}

// Validate reports settings the simulation cannot run with.
func (s Settings) Validate() error {
	switch {
	case s.Iterations < 0:
		return fmt.Errorf("iterations must be non-negative, got %d", s.Iterations)
	case s.ScalingRatio <= 0:
		return fmt.Errorf("scaling ratio must be positive, got %v", s.ScalingRatio)
	case s.SlowDown <= 0:
		return fmt.Errorf("slow down must be positive, got %v", s.SlowDown)
	case s.Gravity < 0:
		return fmt.Errorf("gravity must be non-negative, got %v", s.Gravity)
	case s.EdgeWeightInfluence < 0:
		return fmt.Errorf("edge weight influence must be non-negative, got %v", s.EdgeWeightInfluence)
	case s.BarnesHutOptimize && s.BarnesHutTheta <= 0:
		return fmt.Errorf("barnes-hut theta must be positive, got %v", s.BarnesHutTheta)
	}
	return nil
}
