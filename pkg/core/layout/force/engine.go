package force

import (
	"context"

	"github.com/rohith0110/Wikipedia-Graph/pkg/core/graph"
	"github.com/rohith0110/Wikipedia-Graph/pkg/core/layout"
)

// Options configures [Engine].
type Options struct {
	// Seed configures the initial ring placement. Nil uses defaults.
	Seed *SeedOptions

	// OverviewPasses run in order for overview layouts.
	// Default: [OverviewPasses].
	OverviewPasses []Settings

	// DetailPasses run in order for detail layouts. Default: [DetailPasses].
	DetailPasses []Settings
}

// Engine is the force-directed layout strategy: a coarse ring placement
// refined by one or more ForceAtlas2 passes. Unlike the geometric engines it
// positions every node in both modes and guarantees no minimum separation.
type Engine struct {
	opts Options
}

// New returns a force-directed engine. Pass nil for opts to use defaults.
func New(opts *Options) *Engine {
	var o Options
	if opts != nil {
		o = *opts
	}
	if o.OverviewPasses == nil {
		o.OverviewPasses = OverviewPasses()
	}
	if o.DetailPasses == nil {
		o.DetailPasses = DetailPasses()
	}
	return &Engine{opts: o}
}

func (*Engine) Name() string { return "force" }

// Passes returns the passes the engine runs for mode.
func (e *Engine) Passes(mode layout.Mode) []Settings {
	if mode == layout.ModeDetail {
		return e.opts.DetailPasses
	}
	return e.opts.OverviewPasses
}

func (e *Engine) Place(g *graph.Graph, req layout.Request) layout.Report {
	return e.PlaceContext(context.Background(), g, req)
}

// PlaceContext is Place with cancellation. A cancelled run keeps whatever
// positions the simulation reached.
func (e *Engine) PlaceContext(ctx context.Context, g *graph.Graph, req layout.Request) layout.Report {
	g.ResetPositions()
	rng := req.Rand
	if rng == nil {
		rng = layout.NewRand(layout.RandomSeed())
	}
	Seed(g, rng, e.opts.Seed)

	iterations := 0
	if g.NodeCount() > 1 {
		for _, st := range e.Passes(req.Mode) {
			iterations += Run(ctx, g, st)
		}
	}

	r := layout.Tally(e.Name(), g)
	r.Iterations = iterations
	if req.Mode == layout.ModeDetail {
		_, r.FocalFound = g.FindByLabel(req.Topic)
	}
	return r
}
