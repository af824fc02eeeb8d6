// Package graph provides the in-memory graph model consumed by the layout
// engines.
//
// # Overview
//
// A [Graph] holds nodes in insertion order and directed edges with at most
// one edge per ordered pair. Nodes carry only what placement needs: an ID, a
// display label, a cluster ID, a normalized size and, once placed, a position.
// Anything a renderer wants to attach (URLs, colors, hidden flags) goes into
// the per-node [Attributes] side-table, which layout code never touches.
//
//	g := graph.New()
//	g.AddNode(graph.Node{ID: "Go", Label: "Go", Cluster: "0", Size: 4})
//	g.AddNode(graph.Node{ID: "C", Label: "C", Cluster: "0", Size: 4})
//	g.AddEdge("Go", "C")
//	g.AreNeighbors("C", "Go") // true
//
// # Edges
//
// [Graph.AddEdge] refuses edges whose endpoints are missing, duplicates of an
// existing ordered pair, and self-loops. Refusals leave the graph unchanged
// and are reported as sentinel errors so callers may ignore them.
//
// # Clusters
//
// [Graph.Clusters] partitions nodes by cluster ID. Cluster order is first-seen
// order and member order is node insertion order; layouts rely on both.
//
// # Concurrency
//
// A Graph belongs to a single layout run and is not safe for concurrent use.
package graph
