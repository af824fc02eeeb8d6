package pipeline

import (
	"context"

	core "github.com/rohith0110/Wikipedia-Graph/pkg/core/graph"
	"github.com/rohith0110/Wikipedia-Graph/pkg/core/layout"
	"github.com/rohith0110/Wikipedia-Graph/pkg/core/layout/force"
	"github.com/rohith0110/Wikipedia-Graph/pkg/errors"
	"github.com/rohith0110/Wikipedia-Graph/pkg/graph"
)

// =============================================================================
// Engine Registry
// =============================================================================

// NewStrategy returns the layout engine registered under name. forceOpts
// configures the force engine and is ignored by the others.
func NewStrategy(name string, forceOpts *force.Options) (layout.Strategy, error) {
	switch name {
	case graph.EngineGeometric, "":
		return layout.NewGeometric(), nil
	case graph.EngineGalaxy:
		return layout.NewGalaxy(nil), nil
	case graph.EngineNeighborhood:
		return layout.NewNeighborhood(nil), nil
	case graph.EngineForce:
		return force.New(forceOpts), nil
	}
	return nil, ValidateEngine(name)
}

// contextPlacer is implemented by engines that can stop early.
type contextPlacer interface {
	PlaceContext(ctx context.Context, g *core.Graph, req layout.Request) layout.Report
}

// Place runs s on g, passing ctx through when the engine supports it.
func Place(ctx context.Context, s layout.Strategy, g *core.Graph, req layout.Request) (layout.Report, error) {
	var report layout.Report
	if cp, ok := s.(contextPlacer); ok {
		report = cp.PlaceContext(ctx, g, req)
	} else {
		report = s.Place(g, req)
	}
	if err := ctx.Err(); err != nil {
		return report, errors.Wrap(errors.ErrCodeTimeout, err, "layout interrupted")
	}
	return report, nil
}
