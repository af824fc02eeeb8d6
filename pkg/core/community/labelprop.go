// Package community detects clusters in graphs that arrive without them.
//
// [LabelPropagation] starts every node in its own community and repeatedly
// moves each node to the community most common among its neighbors until
// nothing changes. Community IDs are renumbered "0", "1", ... in node
// insertion order so the output is stable for a given random source.
package community

import (
	"math/rand/v2"
	"slices"
	"strconv"

	"github.com/rohith0110/Wikipedia-Graph/pkg/core/graph"
)

// DefaultMaxIterations bounds label propagation when the caller passes 0.
const DefaultMaxIterations = 50

// Community is one detected group of nodes.
type Community struct {
	ID      string
	Members []string
}

// Result holds the outcome of a detection run.
type Result struct {
	Communities []Community
	Assignment  map[string]string
	Modularity  float64
	Iterations  int
	Converged   bool
}

// LabelPropagation detects communities in g, treating edges as undirected.
// Visit order and ties are decided by rng, so a seeded rng gives a
// reproducible result. It does not modify g; see [Apply].
func LabelPropagation(g *graph.Graph, rng *rand.Rand, maxIterations int) Result {
	if maxIterations <= 0 {
		maxIterations = DefaultMaxIterations
	}

	nodes := g.Nodes()
	labels := make(map[string]int, len(nodes))
	order := make([]string, len(nodes))
	for i, n := range nodes {
		labels[n.ID] = i
		order[i] = n.ID
	}

	res := Result{}
	for res.Iterations < maxIterations {
		res.Iterations++
		rng.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })

		changed := false
		for _, id := range order {
			if best, ok := dominant(g, id, labels, rng); ok && best != labels[id] {
				labels[id] = best
				changed = true
			}
		}
		if !changed {
			res.Converged = true
			break
		}
	}

	index := make(map[int]int)
	res.Assignment = make(map[string]string, len(nodes))
	for _, n := range nodes {
		i, ok := index[labels[n.ID]]
		if !ok {
			i = len(res.Communities)
			index[labels[n.ID]] = i
			res.Communities = append(res.Communities, Community{ID: strconv.Itoa(i)})
		}
		res.Communities[i].Members = append(res.Communities[i].Members, n.ID)
		res.Assignment[n.ID] = res.Communities[i].ID
	}
	res.Modularity = Modularity(g, res.Assignment)
	return res
}

// dominant returns the most frequent label among id's neighbors. Ties keep
// the current label when it is among the winners and are otherwise broken
// by rng.
func dominant(g *graph.Graph, id string, labels map[string]int, rng *rand.Rand) (int, bool) {
	neighbors := g.Neighbors(id)
	if len(neighbors) == 0 {
		return 0, false
	}
	counts := make(map[int]int, len(neighbors))
	for _, nb := range neighbors {
		counts[labels[nb]]++
	}

	best := 0
	var winners []int
	for label, c := range counts {
		switch {
		case c > best:
			best = c
			winners = append(winners[:0], label)
		case c == best:
			winners = append(winners, label)
		}
	}
	if slices.Contains(winners, labels[id]) {
		return labels[id], true
	}
	slices.Sort(winners)
	return winners[rng.IntN(len(winners))], true
}

// Modularity scores an assignment on the undirected view of g. It is 0 for
// graphs without edges.
func Modularity(g *graph.Graph, assignment map[string]string) float64 {
	var m2 float64
	for _, n := range g.Nodes() {
		m2 += float64(g.Degree(n.ID))
	}
	if m2 == 0 {
		return 0
	}

	var inside float64
	degreeSum := make(map[string]float64)
	for _, n := range g.Nodes() {
		c := assignment[n.ID]
		degreeSum[c] += float64(g.Degree(n.ID))
		for _, nb := range g.Neighbors(n.ID) {
			if assignment[nb] == c {
				inside++
			}
		}
	}

	q := inside / m2
	for _, d := range degreeSum {
		q -= (d / m2) * (d / m2)
	}
	return q
}

// Apply writes the assignment onto the nodes of g.
func Apply(g *graph.Graph, assignment map[string]string) {
	for _, n := range g.Nodes() {
		if c, ok := assignment[n.ID]; ok {
			n.Cluster = c
		}
	}
}
