package graph

import (
	"errors"
	"slices"
)

var (
	// ErrInvalidNodeID is returned by [Graph.AddNode] when the node ID is empty.
	ErrInvalidNodeID = errors.New("node ID must not be empty")

	// ErrDuplicateNodeID is returned by [Graph.AddNode] when a node with the
	// same ID already exists. The graph is left unchanged.
	ErrDuplicateNodeID = errors.New("duplicate node ID")

	// ErrUnknownSourceNode is returned by [Graph.AddEdge] when the source node
	// does not exist.
	ErrUnknownSourceNode = errors.New("unknown source node")

	// ErrUnknownTargetNode is returned by [Graph.AddEdge] when the target node
	// does not exist.
	ErrUnknownTargetNode = errors.New("unknown target node")

	// ErrDuplicateEdge is returned by [Graph.AddEdge] when the ordered pair
	// already exists. A reverse edge is a distinct pair and is accepted.
	ErrDuplicateEdge = errors.New("duplicate edge")

	// ErrSelfLoop is returned by [Graph.AddEdge] when source and target are
	// the same node.
	ErrSelfLoop = errors.New("self-loop")
)

// Attributes holds arbitrary renderer-owned data attached to a node (URLs,
// colors, label overrides). Layout code never reads or writes it.
type Attributes map[string]any

// Placement records how a node received its position.
type Placement string

const (
	PlacementNone    Placement = ""
	PlacementAnchor  Placement = "anchor"  // first member at its cluster center
	PlacementSampled Placement = "sampled" // accepted by rejection sampling
	PlacementSpiral  Placement = "spiral"  // sampling exhausted its attempts
	PlacementFocal   Placement = "focal"   // focal node at the origin
	PlacementCircle  Placement = "circle"  // even circular fallback
	PlacementForce   Placement = "force"   // force-directed refinement
)

// Node is a vertex of the layout graph.
//
// Only the structural fields the layout engine needs live here. Everything
// else about a node belongs in its [Attributes].
type Node struct {
	ID      string
	Label   string
	Cluster string
	Size    float64
	Focal   bool

	X, Y      float64
	Placed    bool
	Placement Placement
}

// Position sets the node's coordinates and marks it placed.
func (n *Node) Position(x, y float64, how Placement) {
	n.X, n.Y = x, y
	n.Placed = true
	n.Placement = how
}

// Reset clears the node's position.
func (n *Node) Reset() {
	n.X, n.Y = 0, 0
	n.Placed = false
	n.Placement = PlacementNone
}

// Edge is a directed connection between two nodes.
type Edge struct {
	From string
	To   string
}

// Graph is a directed graph with at most one edge per ordered pair.
//
// Node iteration order is insertion order, which keeps cluster partitioning
// and placement order stable across runs. The zero value is not usable; call
// [New]. Graph is not safe for concurrent use: it is owned by the layout run
// that built it.
type Graph struct {
	nodes     map[string]*Node
	order     []*Node
	edges     []Edge
	edgeSet   map[Edge]struct{}
	neighbors map[string][]string
	adjacent  map[string]map[string]struct{}
	attrs     map[string]Attributes
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{
		nodes:     make(map[string]*Node),
		edgeSet:   make(map[Edge]struct{}),
		neighbors: make(map[string][]string),
		adjacent:  make(map[string]map[string]struct{}),
		attrs:     make(map[string]Attributes),
	}
}

// AddNode inserts a node. Adding an existing ID is a no-op reported as
// ErrDuplicateNodeID.
func (g *Graph) AddNode(n Node) error {
	if n.ID == "" {
		return ErrInvalidNodeID
	}
	if _, exists := g.nodes[n.ID]; exists {
		return ErrDuplicateNodeID
	}
	node := &n
	g.nodes[n.ID] = node
	g.order = append(g.order, node)
	return nil
}

// AddEdge adds the directed edge from→to. The graph is unchanged when an
// endpoint is missing, the ordered pair already exists, or from == to.
//
// Self-loops are rejected: a node listed among its own neighbors would be
// placed twice by the neighborhood layout.
func (g *Graph) AddEdge(from, to string) error {
	if _, ok := g.nodes[from]; !ok {
		return ErrUnknownSourceNode
	}
	if _, ok := g.nodes[to]; !ok {
		return ErrUnknownTargetNode
	}
	if from == to {
		return ErrSelfLoop
	}
	e := Edge{From: from, To: to}
	if _, dup := g.edgeSet[e]; dup {
		return ErrDuplicateEdge
	}
	g.edgeSet[e] = struct{}{}
	g.edges = append(g.edges, e)
	g.link(from, to)
	g.link(to, from)
	return nil
}

func (g *Graph) link(a, b string) {
	set, ok := g.adjacent[a]
	if !ok {
		set = make(map[string]struct{})
		g.adjacent[a] = set
	}
	if _, seen := set[b]; seen {
		return
	}
	set[b] = struct{}{}
	g.neighbors[a] = append(g.neighbors[a], b)
}

// HasEdge reports whether the directed edge from→to exists.
func (g *Graph) HasEdge(from, to string) bool {
	_, ok := g.edgeSet[Edge{From: from, To: to}]
	return ok
}

// Neighbors returns every node sharing an edge with id, in either direction.
// Each neighbor appears once, in the order its first edge was added. The
// returned slice must not be modified.
func (g *Graph) Neighbors(id string) []string { return g.neighbors[id] }

// AreNeighbors reports whether an edge exists between a and b in either
// direction.
func (g *Graph) AreNeighbors(a, b string) bool {
	_, ok := g.adjacent[a][b]
	return ok
}

// Degree returns the number of distinct neighbors of id.
func (g *Graph) Degree(id string) int { return len(g.neighbors[id]) }

// Node returns the node with the given ID. The pointer refers to the node
// stored in the graph.
func (g *Graph) Node(id string) (*Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// Nodes returns all nodes in insertion order. The pointers refer to the
// nodes stored in the graph.
func (g *Graph) Nodes() []*Node { return slices.Clone(g.order) }

// Edges returns a copy of all edges in insertion order.
func (g *Graph) Edges() []Edge { return slices.Clone(g.edges) }

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.order) }

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// FindByLabel returns the first node, in insertion order, whose label equals
// label exactly.
func (g *Graph) FindByLabel(label string) (*Node, bool) {
	for _, n := range g.order {
		if n.Label == label {
			return n, true
		}
	}
	return nil, false
}

// Attrs returns the attribute side-table of a node, creating it on first
// use. It returns nil for unknown nodes.
func (g *Graph) Attrs(id string) Attributes {
	if _, ok := g.nodes[id]; !ok {
		return nil
	}
	a, ok := g.attrs[id]
	if !ok {
		a = Attributes{}
		g.attrs[id] = a
	}
	return a
}

// SetAttrs replaces the attribute side-table of a node.
func (g *Graph) SetAttrs(id string, a Attributes) {
	if _, ok := g.nodes[id]; !ok {
		return
	}
	g.attrs[id] = a
}

// ResetPositions clears every node's position. Layout runs start from a
// clean slate.
func (g *Graph) ResetPositions() {
	for _, n := range g.order {
		n.Reset()
	}
}

// Unplaced returns the IDs of nodes that have no position yet.
func (g *Graph) Unplaced() []string {
	var ids []string
	for _, n := range g.order {
		if !n.Placed {
			ids = append(ids, n.ID)
		}
	}
	return ids
}

// Clone returns a deep copy of the graph, attribute maps included.
func (g *Graph) Clone() *Graph {
	c := New()
	for _, n := range g.order {
		_ = c.AddNode(*n)
	}
	for _, e := range g.edges {
		_ = c.AddEdge(e.From, e.To)
	}
	for id, a := range g.attrs {
		cp := make(Attributes, len(a))
		for k, v := range a {
			cp[k] = v
		}
		c.attrs[id] = cp
	}
	return c
}
