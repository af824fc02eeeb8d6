// Package force implements the force-directed layout engine.
//
// # Overview
//
// [Engine] first seeds positions with [Seed]: cluster centers go evenly on a
// ring and members spread around their center. It then refines every node
// with ForceAtlas2. Edges attract their endpoints, all node pairs repel, and
// a weak gravity pulls toward the origin. A slow-down factor damps each
// step.
//
// Overview layouts run two passes ([OverviewPasses]). The second has
// stronger repulsion and weaker gravity to push clusters further apart.
// Detail layouts run one pass ([DetailPasses]). Graphs with a single node
// skip simulation.
//
// # Barnes-Hut
//
// With [Settings].BarnesHutOptimize, repulsion is computed over a quadtree
// and far regions act as one body at their center of mass. That turns the
// O(n²) pair loop into roughly O(n log n) per step.
//
// # Guarantees
//
// None beyond termination and finite output. Spacing quality depends on
// tuning, and overlapping nodes are possible.
package force
