package layout

import (
	"fmt"
	"math"
	"testing"

	"github.com/rohith0110/Wikipedia-Graph/pkg/core/graph"
)

// star builds a focal node labelled topic with k neighbors and, optionally,
// some unrelated nodes.
func star(t *testing.T, topic string, k, strangers int) *graph.Graph {
	t.Helper()
	g := graph.New()
	add := func(id, label string, size float64) {
		if err := g.AddNode(graph.Node{ID: id, Label: label, Cluster: "0", Size: size}); err != nil {
			t.Fatalf("AddNode: %v", err)
		}
	}
	add("focal", topic, 12)
	for i := range k {
		id := fmt.Sprintf("n%d", i)
		add(id, id, 4)
		from, to := "focal", id
		if i%2 == 1 {
			from, to = id, "focal"
		}
		if err := g.AddEdge(from, to); err != nil {
			t.Fatalf("AddEdge: %v", err)
		}
	}
	for i := range strangers {
		id := fmt.Sprintf("s%d", i)
		add(id, id, 4)
	}
	return g
}

func TestNeighborhoodZeroNeighbors(t *testing.T) {
	g := star(t, "Go", 0, 0)
	r := NewNeighborhood(nil).Place(g, Request{Mode: ModeDetail, Topic: "Go", Rand: NewRand(1)})

	if r.Placed != 1 || !r.FocalFound {
		t.Fatalf("report = %+v, want only the focal node placed", r)
	}
	n, _ := g.Node("focal")
	if n.X != 0 || n.Y != 0 || n.Placement != graph.PlacementFocal {
		t.Errorf("focal at (%v, %v) via %q, want origin", n.X, n.Y, n.Placement)
	}
}

func TestNeighborhoodSeparation(t *testing.T) {
	g := star(t, "Go", 25, 0)
	l := NewNeighborhood(nil)
	r := l.Place(g, Request{Mode: ModeDetail, Topic: "Go", Rand: NewRand(11)})

	if r.Placed != 26 {
		t.Fatalf("Placed = %d, want 26", r.Placed)
	}

	focal, _ := g.Node("focal")
	placed := []*graph.Node{focal}
	for _, id := range g.Neighbors("focal") {
		b, _ := g.Node(id)
		if !finite(b) {
			t.Fatalf("%s has non-finite position", id)
		}
		if b.Placement == graph.PlacementSampled {
			for _, a := range placed {
				need := (a.Size + b.Size) * 20
				if d := Dist(PointOf(a), PointOf(b)); d < need {
					t.Errorf("%s and %s are %.2f apart, want >= %.2f", a.ID, b.ID, d, need)
				}
			}
		}
		placed = append(placed, b)
	}
}

func TestNeighborhoodRadii(t *testing.T) {
	l := NewNeighborhood(nil)
	tests := []struct {
		neighbors   int
		base, outer float64
	}{
		{0, 200, 900},
		{16, 200, 900},
		{100, 350, 1575},
	}
	for _, tt := range tests {
		base, outer := l.Radii(tt.neighbors)
		if base != tt.base || outer != tt.outer {
			t.Errorf("Radii(%d) = %v, %v; want %v, %v", tt.neighbors, base, outer, tt.base, tt.outer)
		}
	}
}

func TestNeighborhoodSampledDistance(t *testing.T) {
	g := star(t, "Go", 4, 0)
	l := NewNeighborhood(nil)
	l.Place(g, Request{Mode: ModeDetail, Topic: "Go", Rand: NewRand(2)})

	base, outer := l.Radii(4)
	for _, id := range g.Neighbors("focal") {
		n, _ := g.Node(id)
		if n.Placement != graph.PlacementSampled {
			continue
		}
		d := math.Hypot(n.X, n.Y)
		if d < base*0.6-1e-9 || d >= outer*1.2 {
			t.Errorf("%s at distance %v, outside [%v, %v)", id, d, base*0.6, outer*1.2)
		}
	}
}

func TestNeighborhoodSpiralFallback(t *testing.T) {
	g := star(t, "Go", 3, 0)
	opts := DefaultNeighborhoodOptions()
	opts.Attempts = 0
	l := NewNeighborhood(&opts)

	r := l.Place(g, Request{Mode: ModeDetail, Topic: "Go", Rand: NewRand(1)})
	if r.Spiral != 3 {
		t.Fatalf("Spiral = %d, want 3", r.Spiral)
	}
	base, _ := l.Radii(3)
	for i, id := range g.Neighbors("focal") {
		n, _ := g.Node(id)
		want := Spiral(Origin, i, base, 30)
		if Dist(PointOf(n), want) > 1e-9 {
			t.Errorf("%s at (%v, %v), want (%v, %v)", id, n.X, n.Y, want.X, want.Y)
		}
	}
}

func TestNeighborhoodLeavesStrangersUnplaced(t *testing.T) {
	g := star(t, "Go", 2, 3)
	r := NewNeighborhood(nil).Place(g, Request{Mode: ModeDetail, Topic: "Go", Rand: NewRand(4)})

	if r.Placed != 3 || r.Unplaced != 3 {
		t.Errorf("report = %+v, want 3 placed and 3 unplaced", r)
	}
	for _, id := range []string{"s0", "s1", "s2"} {
		if n, _ := g.Node(id); n.Placed {
			t.Errorf("%s should not be placed", id)
		}
	}
}

func TestNeighborhoodCircleFallback(t *testing.T) {
	g := star(t, "Go", 4, 2)
	r := NewNeighborhood(nil).Place(g, Request{Mode: ModeDetail, Topic: "Rust", Rand: NewRand(1)})

	if r.FocalFound || !r.CircleFallback {
		t.Fatalf("report = %+v, want circle fallback", r)
	}
	if r.Placed != 7 || r.Circle != 7 {
		t.Errorf("report = %+v, want all 7 nodes on the circle", r)
	}
	if r.Engine != "neighborhood" {
		t.Errorf("Engine = %q", r.Engine)
	}

	radius := NewCircle(nil).Radius(7)
	for i, n := range g.Nodes() {
		want := Polar(Origin, float64(i)*2*math.Pi/7, radius)
		if Dist(PointOf(n), want) > 1e-9 {
			t.Errorf("%s at (%v, %v), want (%v, %v)", n.ID, n.X, n.Y, want.X, want.Y)
		}
	}
}

func TestCircleRadius(t *testing.T) {
	l := NewCircle(nil)
	for n, want := range map[int]float64{0: 100, 1: 100, 5: 100, 6: 120, 50: 1000} {
		if got := l.Radius(n); got != want {
			t.Errorf("Radius(%d) = %v, want %v", n, got, want)
		}
	}
}
