package graph

import (
	"errors"
	"maps"

	core "github.com/rohith0110/Wikipedia-Graph/pkg/core/graph"
	"github.com/rohith0110/Wikipedia-Graph/pkg/core/layout"
)

// BuildOptions controls how elements become a layout graph.
type BuildOptions struct {
	Mode  layout.Mode
	Topic string
}

// BuildStats counts what happened while building.
type BuildStats struct {
	Nodes          int `json:"nodes"`
	Edges          int `json:"edges"`
	DroppedEdges   int `json:"dropped_edges"`
	SelfLoops      int `json:"self_loops"`
	DuplicateNodes int `json:"duplicate_nodes"`
	Unrecognized   int `json:"unrecognized"`
	FocalMatches   int `json:"focal_matches"`
}

// Build turns an element sequence into a layout graph.
//
// Nodes get their normalized size from [layout.NormalizeSize]. In detail
// mode, nodes whose label equals the topic are flagged focal and enlarged.
// Edges with a missing endpoint, duplicate edges and self-loops are dropped
// and only counted. The URL, raw size and any unknown element fields go to
// the node's attribute side-table.
func Build(elems []Element, opts BuildOptions) (*core.Graph, BuildStats) {
	g := core.New()
	var stats BuildStats

	for _, e := range elems {
		if !e.IsNode() {
			continue
		}
		d := e.Data
		label := d.Label
		if label == "" {
			label = string(d.ID)
		}
		focal := opts.Mode == layout.ModeDetail && opts.Topic != "" && label == opts.Topic
		raw := layout.RawSize(d.Size)

		n := core.Node{
			ID:      string(d.ID),
			Label:   label,
			Cluster: string(d.ClusterID),
			Size:    layout.NormalizeSize(raw, focal),
			Focal:   focal,
		}
		if err := g.AddNode(n); err != nil {
			stats.DuplicateNodes++
			continue
		}
		if focal {
			stats.FocalMatches++
		}

		attrs := make(core.Attributes, len(d.Extra)+2)
		maps.Copy(attrs, d.Extra)
		attrs[AttrRawSize] = raw
		if d.URL != "" {
			attrs[AttrURL] = d.URL
		}
		g.SetAttrs(n.ID, attrs)
	}

	for _, e := range elems {
		switch {
		case e.IsNode():
		case e.IsEdge():
			err := g.AddEdge(string(e.Data.Source), string(e.Data.Target))
			switch {
			case err == nil:
			case errors.Is(err, core.ErrSelfLoop):
				stats.SelfLoops++
			default:
				stats.DroppedEdges++
			}
		default:
			stats.Unrecognized++
		}
	}

	stats.Nodes = g.NodeCount()
	stats.Edges = g.EdgeCount()
	return g, stats
}
