// Package graph provides the wire formats around the layout engine.
//
// This package sits at the serialization boundary between external data and
// the in-memory graph:
//
//   - [Element]: one entry of the input sequence, a node or an edge
//   - [Layout]: the positioned output handed to renderers, APIs and caches
//   - pkg/core/graph.Graph: the internal representation the engines work on
//
// # Input Elements
//
// Input is a JSON array of elements in the Cytoscape style. A node carries
// an "id", an edge carries a "source" and a "target":
//
//	[
//	  {"data": {"id": "Go", "label": "Go", "size": 42, "cluster_id": 3, "url": "..."}},
//	  {"data": {"source": "Go", "target": "C"}}
//	]
//
// Identifiers and cluster IDs may be strings or numbers. Unknown keys are
// preserved in [ElementData].Extra. [ReadElements] also accepts the array
// wrapped as {"elements": [...]}.
//
// # Building
//
// [Build] turns elements into a core graph: sizes are normalized, the focal
// node of a detail request is flagged and enlarged, and malformed edges are
// dropped and counted in [BuildStats].
//
// Before building, inputs can be narrowed or re-sized:
//
//	elems = graph.SelectTop(elems, 750)     // largest nodes and their edges
//	elems = graph.Ego(elems, "Go")          // one node and its neighbors
//	elems = graph.SizeFromInDegree(elems)   // size by popularity
//
// # Output Layouts
//
//	l := graph.FromGraph(g, graph.LayoutMeta{Mode: layout.ModeOverview, Engine: "geometric"})
//	graph.WriteLayoutFile(l, "layout.json")
//
// [ToGraph] reverses [FromGraph], positions included, which lets cached
// layouts be served without recomputation.
//
// # Concurrency
//
// All functions are safe for concurrent use on distinct inputs.
package graph
