package graph

// Cluster is the set of nodes sharing one cluster ID.
type Cluster struct {
	ID      string
	Members []*Node
}

// Size returns the number of members.
func (c Cluster) Size() int { return len(c.Members) }

// Clusters groups nodes by their Cluster field. Clusters appear in the order
// their ID was first seen; members keep node insertion order. Placement
// walks this slice, so the ring slot of a cluster is its index here.
func (g *Graph) Clusters() []Cluster {
	index := make(map[string]int)
	var clusters []Cluster
	for _, n := range g.order {
		i, ok := index[n.Cluster]
		if !ok {
			i = len(clusters)
			index[n.Cluster] = i
			clusters = append(clusters, Cluster{ID: n.Cluster})
		}
		clusters[i].Members = append(clusters[i].Members, n)
	}
	return clusters
}

// ClusterIDs returns the distinct cluster IDs in first-seen order.
func (g *Graph) ClusterIDs() []string {
	seen := make(map[string]struct{})
	var ids []string
	for _, n := range g.order {
		if _, ok := seen[n.Cluster]; ok {
			continue
		}
		seen[n.Cluster] = struct{}{}
		ids = append(ids, n.Cluster)
	}
	return ids
}
