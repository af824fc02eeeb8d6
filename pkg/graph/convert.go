package graph

import (
	"fmt"
	"maps"

	core "github.com/rohith0110/Wikipedia-Graph/pkg/core/graph"
	"github.com/rohith0110/Wikipedia-Graph/pkg/core/layout"
)

// =============================================================================
// Core Graph ↔ Layout Conversion
// =============================================================================

// LayoutMeta describes the run that produced a layout.
type LayoutMeta struct {
	Mode   layout.Mode
	Engine string
	Topic  string
	Seed   uint64
	Report *layout.Report
}

// FromGraph converts a laid-out graph to its serialization format. Nodes
// and edges keep insertion order; unplaced nodes get nil coordinates.
func FromGraph(g *core.Graph, meta LayoutMeta) Layout {
	nodes := g.Nodes()
	out := Layout{
		Mode:   string(meta.Mode),
		Engine: meta.Engine,
		Topic:  meta.Topic,
		Seed:   meta.Seed,
		Nodes:  make([]Node, len(nodes)),
		Edges:  make([]Edge, 0, g.EdgeCount()),
		Report: meta.Report,
	}

	for i, n := range nodes {
		node := Node{
			ID:         n.ID,
			Label:      n.Label,
			Size:       n.Size,
			Cluster:    n.Cluster,
			IsMainNode: n.Focal,
			Placement:  string(n.Placement),
		}
		if n.Placed {
			x, y := n.X, n.Y
			node.X, node.Y = &x, &y
		}
		if a := g.Attrs(n.ID); len(a) > 0 {
			node.Attrs = maps.Clone(map[string]any(a))
		}
		out.Nodes[i] = node
	}
	for _, e := range g.Edges() {
		out.Edges = append(out.Edges, Edge{Source: e.From, Target: e.To})
	}
	return out
}

// ToGraph rebuilds a core graph, positions included, from a serialized
// layout. It fails on duplicate node IDs and on edges the graph refuses.
func ToGraph(l Layout) (*core.Graph, error) {
	g := core.New()
	for _, n := range l.Nodes {
		node := core.Node{
			ID:      n.ID,
			Label:   n.Label,
			Cluster: n.Cluster,
			Size:    n.Size,
			Focal:   n.IsMainNode,
		}
		if err := g.AddNode(node); err != nil {
			return nil, fmt.Errorf("add node %s: %w", n.ID, err)
		}
		if n.Placed() {
			placed, _ := g.Node(n.ID)
			placed.Position(*n.X, *n.Y, core.Placement(n.Placement))
		}
		if len(n.Attrs) > 0 {
			g.SetAttrs(n.ID, maps.Clone(n.Attrs))
		}
	}
	for _, e := range l.Edges {
		if err := g.AddEdge(e.Source, e.Target); err != nil {
			return nil, fmt.Errorf("add edge %s→%s: %w", e.Source, e.Target, err)
		}
	}
	return g, nil
}
