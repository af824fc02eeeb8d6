// Package pipeline runs the complete element → layout pipeline for
// wikigraph.
//
// The CLI and the layout service share this package so that both apply the
// same defaults, validation and caching. A run has four stages:
//
//  1. Select: optionally size nodes by in-degree, cut to the ego network of
//     the topic, and keep the largest nodes
//  2. Build: turn elements into a layout graph with normalized sizes
//  3. Cluster: optionally detect communities for nodes without a cluster
//  4. Place: position nodes with the selected engine
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, elems, pipeline.Options{
//	    Mode:  "detail",
//	    Topic: "Go (programming language)",
//	    Seed:  42,
//	})
//	if err != nil {
//	    return err
//	}
//	graph.WriteLayout(result.Layout, os.Stdout)
//
// Only seeded runs are cached: with Seed 0 every run draws a fresh seed and
// its output is not reproducible.
package pipeline

import (
	"encoding/json"
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/rohith0110/Wikipedia-Graph/pkg/cache"
	core "github.com/rohith0110/Wikipedia-Graph/pkg/core/graph"
	"github.com/rohith0110/Wikipedia-Graph/pkg/core/layout"
	"github.com/rohith0110/Wikipedia-Graph/pkg/core/layout/force"
	"github.com/rohith0110/Wikipedia-Graph/pkg/errors"
	"github.com/rohith0110/Wikipedia-Graph/pkg/graph"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Server
// =============================================================================

const (
	// DefaultMode is the layout mode used when none is given.
	DefaultMode = graph.ModeOverview

	// DefaultEngine picks galaxy for overview and neighborhood for detail.
	DefaultEngine = graph.EngineGeometric

	// OverviewTop is the node count the published overview keeps. It is
	// not applied unless requested.
	OverviewTop = 750
)

// ValidEngines is the set of supported layout engines.
var ValidEngines = map[string]bool{
	graph.EngineGeometric:    true,
	graph.EngineGalaxy:       true,
	graph.EngineNeighborhood: true,
	graph.EngineForce:        true,
}

// EngineNames lists the engines in display order.
func EngineNames() []string {
	return []string{graph.EngineGeometric, graph.EngineGalaxy, graph.EngineNeighborhood, graph.EngineForce}
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for a layout run.
// This struct supports JSON serialization for API requests.
type Options struct {
	Mode   string `json:"mode,omitempty"`
	Topic  string `json:"topic,omitempty"`
	Engine string `json:"engine,omitempty"`
	Seed   uint64 `json:"seed,omitempty"`

	// Selection
	Top          int  `json:"top,omitempty"`
	Ego          bool `json:"ego,omitempty"`
	SizeByDegree bool `json:"size_by_degree,omitempty"`

	// Community detection
	DetectClusters       bool `json:"detect_clusters,omitempty"`
	MaxClusterIterations int  `json:"max_cluster_iterations,omitempty"`

	// Refresh skips the cache lookup but still stores the result.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger    `json:"-"`
	Force  *force.Options `json:"-"`

	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// RunID identifies the run in logs and responses.
	RunID string `json:"run_id"`

	// InputHash is the content hash of the elements, set for seeded runs.
	InputHash string `json:"input_hash,omitempty"`

	Layout graph.Layout     `json:"layout"`
	Build  graph.BuildStats `json:"build"`

	// Graph is the laid-out graph. It is rebuilt from the layout on a
	// cache hit.
	Graph *core.Graph `json:"-"`

	// Communities is set when cluster detection ran.
	Communities *CommunityStats `json:"communities,omitempty"`

	Stats     Stats     `json:"stats"`
	CacheInfo CacheInfo `json:"cache"`
}

// CommunityStats summarizes a cluster detection run.
type CommunityStats struct {
	Count      int     `json:"count"`
	Assigned   int     `json:"assigned"`
	Modularity float64 `json:"modularity"`
	Iterations int     `json:"iterations"`
	Converged  bool    `json:"converged"`
	CacheHit   bool    `json:"cache_hit"`
}

// Stats contains pipeline execution statistics.
type Stats struct {
	InputElements int           `json:"input_elements"`
	NodeCount     int           `json:"nodes"`
	EdgeCount     int           `json:"edges"`
	SelectTime    time.Duration `json:"select_time"`
	BuildTime     time.Duration `json:"build_time"`
	ClusterTime   time.Duration `json:"cluster_time"`
	LayoutTime    time.Duration `json:"layout_time"`
}

// CacheInfo tracks cache use for a run.
type CacheInfo struct {
	Cacheable bool `json:"cacheable"`
	LayoutHit bool `json:"layout_hit"`
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateMode checks that a mode is valid.
func ValidateMode(mode string) error {
	if _, err := layout.ParseMode(mode); err != nil {
		return errors.New(errors.ErrCodeInvalidMode, "invalid mode: %q (must be one of: overview, detail)", mode)
	}
	return nil
}

// ValidateEngine checks that an engine name is valid.
func ValidateEngine(engine string) error {
	if !ValidEngines[engine] {
		return errors.New(errors.ErrCodeInvalidEngine, "invalid engine: %q (must be one of: %v)", engine, EngineNames())
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// SetDefaults fills in unset options.
func (o *Options) SetDefaults() {
	if o.Mode == "" {
		o.Mode = DefaultMode
	}
	if o.Engine == "" {
		o.Engine = DefaultEngine
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Validate checks option values. Call SetDefaults first.
func (o *Options) Validate() error {
	if err := ValidateMode(o.Mode); err != nil {
		return err
	}
	if err := ValidateEngine(o.Engine); err != nil {
		return err
	}
	if o.Mode == graph.ModeDetail {
		if err := errors.ValidateTopic(o.Topic); err != nil {
			return err
		}
	}
	if o.Top < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "top must not be negative, got %d", o.Top)
	}
	if o.Ego && o.Mode != graph.ModeDetail {
		return errors.New(errors.ErrCodeInvalidInput, "ego extraction needs detail mode")
	}
	if o.MaxClusterIterations < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "max_cluster_iterations must not be negative")
	}
	if o.Force != nil {
		for _, st := range slices.Concat(o.Force.OverviewPasses, o.Force.DetailPasses) {
			if err := st.Validate(); err != nil {
				return errors.Wrap(errors.ErrCodeInvalidConfig, err, "force settings")
			}
		}
	}
	return nil
}

// ValidateAndSetDefaults applies defaults and validates. It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	o.SetDefaults()
	if err := o.Validate(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// LayoutMode returns the mode as a core layout mode.
func (o *Options) LayoutMode() layout.Mode {
	return layout.Mode(o.Mode)
}

// Cacheable reports whether the run's output is reproducible.
func (o *Options) Cacheable() bool {
	return o.Seed != 0
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	k := cache.LayoutKeyOpts{
		Mode:           o.Mode,
		Engine:         o.Engine,
		Seed:           o.Seed,
		Top:            o.Top,
		SizeByDegree:   o.SizeByDegree,
		DetectClusters: o.DetectClusters,
	}
	if o.DetectClusters {
		k.MaxClusterIterations = o.MaxClusterIterations
	}
	if o.Mode == graph.ModeDetail {
		k.Topic = o.Topic
		if o.Ego {
			k.Ego = o.Topic
		}
	}
	if o.Force != nil && o.Engine == graph.EngineForce {
		if data, err := json.Marshal(o.Force); err == nil {
			k.Force = cache.Hash(data)
		}
	}
	return k
}

// ClustersKeyOpts returns cache key options for community detection.
func (o *Options) ClustersKeyOpts() cache.ClustersKeyOpts {
	k := cache.ClustersKeyOpts{
		Seed:          o.Seed,
		MaxIterations: o.MaxClusterIterations,
		Top:           o.Top,
		SizeByDegree:  o.SizeByDegree,
	}
	if o.Ego {
		k.Ego = o.Topic
	}
	return k
}
