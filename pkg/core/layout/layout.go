package layout

import (
	"fmt"
	"math/rand/v2"

	"github.com/rohith0110/Wikipedia-Graph/pkg/core/graph"
)

// Mode selects the framing of a layout run.
type Mode string

const (
	// ModeOverview separates every cluster into its own galaxy on a ring.
	ModeOverview Mode = "overview"
	// ModeDetail centers one focal node and scatters its neighbors around it.
	ModeDetail Mode = "detail"
)

// Modes lists the supported modes in display order.
var Modes = []Mode{ModeOverview, ModeDetail}

// ParseMode converts a user-facing string into a Mode.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeOverview, ModeDetail:
		return Mode(s), nil
	}
	return "", fmt.Errorf("unknown mode %q (want overview or detail)", s)
}

// Request carries the per-run inputs of a placement.
type Request struct {
	Mode Mode

	// Topic is the label of the focal node. Only detail layouts read it.
	Topic string

	// Rand is the random source for every sampling decision. A nil Rand is
	// replaced by a freshly seeded generator, so repeated runs differ.
	Rand *rand.Rand
}

func (r Request) rng() *rand.Rand {
	if r.Rand != nil {
		return r.Rand
	}
	return NewRand(RandomSeed())
}

// Strategy assigns positions to the nodes of a graph.
//
// Place discards any positions the graph already holds and recomputes them
// from scratch. It never fails: every fallback it needs is applied locally
// and accounted for in the returned [Report].
type Strategy interface {
	Name() string
	Place(g *graph.Graph, req Request) Report
}

// Report summarizes how a placement went.
type Report struct {
	Engine string `json:"engine"`
	Nodes  int    `json:"nodes"`
	Placed int    `json:"placed"`

	// Unplaced counts nodes left without a position, i.e. non-neighbors of
	// the focal node in a detail layout.
	Unplaced int `json:"unplaced"`

	Anchors  int `json:"anchors"`
	Sampled  int `json:"sampled"`
	Spiral   int `json:"spiral"`
	Circle   int `json:"circle"`
	Forced   int `json:"forced"`
	Clusters int `json:"clusters"`

	FocalFound     bool `json:"focal_found"`
	CircleFallback bool `json:"circle_fallback"`

	// Iterations is the total number of force-directed steps that ran.
	Iterations int `json:"iterations,omitempty"`
}

// Tally builds a report by counting the placement kinds recorded on g.
func Tally(engine string, g *graph.Graph) Report {
	r := Report{Engine: engine, Nodes: g.NodeCount(), Clusters: len(g.ClusterIDs())}
	for _, n := range g.Nodes() {
		if !n.Placed {
			r.Unplaced++
			continue
		}
		r.Placed++
		switch n.Placement {
		case graph.PlacementAnchor:
			r.Anchors++
		case graph.PlacementSampled:
			r.Sampled++
		case graph.PlacementSpiral:
			r.Spiral++
		case graph.PlacementCircle:
			r.Circle++
		case graph.PlacementForce:
			r.Forced++
		case graph.PlacementFocal:
			r.FocalFound = true
		}
	}
	r.CircleFallback = r.Circle > 0
	return r
}
