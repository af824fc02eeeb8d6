package pipeline

import (
	"cmp"
	"math"
	"slices"

	core "github.com/rohith0110/Wikipedia-Graph/pkg/core/graph"
	"github.com/rohith0110/Wikipedia-Graph/pkg/core/layout"
)

// ClusterSummary describes where one cluster landed.
type ClusterSummary struct {
	ID      string       `json:"id"`
	Members int          `json:"members"`
	Placed  int          `json:"placed"`
	Center  layout.Point `json:"center"`

	// Radius is the largest distance from Center to a placed member.
	Radius float64 `json:"radius"`

	// Largest is the label of the member with the biggest size.
	Largest string `json:"largest"`
}

// SummarizeClusters computes per-cluster statistics of a laid-out graph,
// largest cluster first. Center is the mean of placed member positions.
func SummarizeClusters(g *core.Graph) []ClusterSummary {
	clusters := g.Clusters()
	out := make([]ClusterSummary, 0, len(clusters))
	for _, c := range clusters {
		s := ClusterSummary{ID: c.ID, Members: c.Size()}

		var sx, sy, maxSize float64
		for _, n := range c.Members {
			if n.Size > maxSize || s.Largest == "" {
				maxSize = n.Size
				s.Largest = n.Label
			}
			if !n.Placed {
				continue
			}
			s.Placed++
			sx += n.X
			sy += n.Y
		}
		if s.Placed > 0 {
			s.Center = layout.Point{X: sx / float64(s.Placed), Y: sy / float64(s.Placed)}
			for _, n := range c.Members {
				if n.Placed {
					s.Radius = math.Max(s.Radius, layout.Dist(s.Center, layout.PointOf(n)))
				}
			}
		}
		out = append(out, s)
	}
	slices.SortStableFunc(out, func(a, b ClusterSummary) int {
		return cmp.Compare(b.Members, a.Members)
	})
	return out
}
