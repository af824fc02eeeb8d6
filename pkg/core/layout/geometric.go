package layout

import "github.com/rohith0110/Wikipedia-Graph/pkg/core/graph"

// Geometric dispatches on the request mode: [Galaxy] for overview and
// [Neighborhood] for detail. It is the default engine.
type Geometric struct {
	Galaxy       *Galaxy
	Neighborhood *Neighborhood
}

// NewGeometric returns a geometric layout with default galaxy and
// neighborhood settings.
func NewGeometric() *Geometric {
	return &Geometric{
		Galaxy:       NewGalaxy(nil),
		Neighborhood: NewNeighborhood(nil),
	}
}

func (*Geometric) Name() string { return "geometric" }

func (l *Geometric) Place(g *graph.Graph, req Request) Report {
	var r Report
	if req.Mode == ModeDetail {
		r = l.Neighborhood.Place(g, req)
	} else {
		r = l.Galaxy.Place(g, req)
	}
	r.Engine = l.Name()
	return r
}
