// Package layout assigns 2D positions to the nodes of a clustered graph.
//
// # Overview
//
// Every engine implements [Strategy]. A strategy receives a [graph.Graph]
// whose nodes already carry a cluster ID and a normalized size (see
// [NormalizeSize]) and writes an (x, y) onto each node it places. It then
// returns a [Report] saying how each node was placed.
//
// Two geometric engines live here:
//
//   - [Galaxy] arranges clusters as discs on a ring and packs each disc by
//     rejection sampling with a minimum separation of (a+b)*6.
//   - [Neighborhood] puts the focal node at the origin and samples its
//     neighbors in an annulus with a minimum separation of (a+b)*20.
//
// [Geometric] picks one of them from the request's [Mode]. The force-directed
// engine lives in the force subpackage.
//
// # Fallbacks
//
// Placement never fails. When sampling runs out of attempts the node goes
// onto an Archimedean spiral and may overlap its peers. When a detail
// request names a topic that no label matches, [Neighborhood] hands the
// graph to [Circle]. Both fallbacks are counted in the [Report].
//
// # Randomness
//
// All sampling draws from [Request].Rand. Use [NewRand] with a fixed seed for
// reproducible layouts; leave it nil to get a different valid layout on
// every run.
//
//	g := ... // graph with clusters and sizes
//	r := layout.NewGeometric().Place(g, layout.Request{
//	    Mode: layout.ModeOverview,
//	    Rand: layout.NewRand(42),
//	})
//	fmt.Println(r.Sampled, r.Spiral)
package layout
