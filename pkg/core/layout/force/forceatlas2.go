package force

import (
	"context"
	"math"

	"github.com/rohith0110/Wikipedia-Graph/pkg/core/graph"
)

const (
	// maxForce caps per-step force when sizes are adjusted.
	maxForce = 10.0
	// overlapRepulsion multiplies repulsion between overlapping nodes.
	overlapRepulsion = 100.0
	// adjustedSpeed is the fixed speed used when sizes are adjusted.
	adjustedSpeed = 0.1
)

type body struct {
	x, y         float64
	dx, dy       float64
	oldDx, oldDy float64
	mass, size   float64
	convergence  float64
}

type link struct {
	from, to int
	weight   float64
}

// Simulation holds the ForceAtlas2 state of one graph. Positions are read
// from the graph when the simulation is created and written back by
// [Simulation.Commit].
type Simulation struct {
	nodes  []*graph.Node
	bodies []body
	links  []link
}

// NewSimulation snapshots the positions, sizes and edges of g. Node mass is
// 1 plus the number of edges touching the node.
func NewSimulation(g *graph.Graph) *Simulation {
	nodes := g.Nodes()
	index := make(map[string]int, len(nodes))
	s := &Simulation{
		nodes:  nodes,
		bodies: make([]body, len(nodes)),
	}
	for i, n := range nodes {
		index[n.ID] = i
		s.bodies[i] = body{x: n.X, y: n.Y, mass: 1, size: n.Size, convergence: 1}
	}
	for _, e := range g.Edges() {
		from, to := index[e.From], index[e.To]
		s.links = append(s.links, link{from: from, to: to, weight: 1})
		s.bodies[from].mass++
		s.bodies[to].mass++
	}
	return s
}

// Run performs st.Iterations steps and returns how many ran. It stops early
// if ctx is cancelled.
func (s *Simulation) Run(ctx context.Context, st Settings) int {
	for i := range st.Iterations {
		if ctx.Err() != nil {
			return i
		}
		s.Step(st)
	}
	return st.Iterations
}

// Step advances the simulation by one iteration.
func (s *Simulation) Step(st Settings) {
	for i := range s.bodies {
		b := &s.bodies[i]
		b.oldDx, b.oldDy = b.dx, b.dy
		b.dx, b.dy = 0, 0
	}

	s.repel(st)
	s.gravitate(st)
	s.attract(st)
	s.apply(st)
}

func (s *Simulation) repel(st Settings) {
	coef := st.ScalingRatio
	if st.BarnesHutOptimize {
		root := buildTree(s.bodies)
		for i := range s.bodies {
			root.repel(s.bodies, i, st.BarnesHutTheta, coef, st.AdjustSizes)
		}
		return
	}
	for i := range s.bodies {
		for j := i + 1; j < len(s.bodies); j++ {
			fx, fy := repulsion(&s.bodies[i], &s.bodies[j], coef, st.AdjustSizes)
			s.bodies[i].dx += fx
			s.bodies[i].dy += fy
			s.bodies[j].dx -= fx
			s.bodies[j].dy -= fy
		}
	}
}

// repulsion returns the force b exerts on a.
func repulsion(a, b *body, coef float64, adjustSizes bool) (float64, float64) {
	xd, yd := a.x-b.x, a.y-b.y
	var factor float64
	if adjustSizes {
		d := math.Hypot(xd, yd) - a.size - b.size
		switch {
		case d > 0:
			factor = coef * a.mass * b.mass / (d * d)
		case d < 0:
			factor = overlapRepulsion * coef * a.mass * b.mass
		}
	} else if d2 := xd*xd + yd*yd; d2 > 0 {
		factor = coef * a.mass * b.mass / d2
	}
	return xd * factor, yd * factor
}

func (s *Simulation) gravitate(st Settings) {
	coef := st.ScalingRatio
	for i := range s.bodies {
		b := &s.bodies[i]
		d := math.Hypot(b.x, b.y)
		var factor float64
		switch {
		case st.StrongGravityMode:
			factor = coef * b.mass * st.Gravity
		case d > 0:
			factor = coef * b.mass * st.Gravity / d
		}
		b.dx -= b.x * factor
		b.dy -= b.y * factor
	}
}

func (s *Simulation) attract(st Settings) {
	coef := 1.0
	if st.OutboundAttractionDistribution && len(s.bodies) > 0 {
		var total float64
		for _, b := range s.bodies {
			total += b.mass
		}
		coef = total / float64(len(s.bodies))
	}

	for _, l := range s.links {
		a, b := &s.bodies[l.from], &s.bodies[l.to]
		w := math.Pow(l.weight, st.EdgeWeightInfluence)
		xd, yd := a.x-b.x, a.y-b.y

		d := math.Hypot(xd, yd)
		if st.AdjustSizes {
			d -= a.size + b.size
		}
		if d <= 0 {
			continue
		}

		factor := -coef * w
		if st.LinLogMode {
			factor *= math.Log(1+d) / d
		}
		if st.OutboundAttractionDistribution {
			factor /= a.mass
		}
		a.dx += xd * factor
		a.dy += yd * factor
		b.dx -= xd * factor
		b.dy -= yd * factor
	}
}

func (s *Simulation) apply(st Settings) {
	for i := range s.bodies {
		b := &s.bodies[i]

		if st.AdjustSizes {
			if f := math.Hypot(b.dx, b.dy); f > maxForce {
				b.dx *= maxForce / f
				b.dy *= maxForce / f
			}
		}

		swinging := b.mass * math.Hypot(b.oldDx-b.dx, b.oldDy-b.dy)
		traction := math.Hypot(b.oldDx+b.dx, b.oldDy+b.dy) / 2

		var speed float64
		if st.AdjustSizes {
			speed = adjustedSpeed * math.Log(1+traction) / (1 + math.Sqrt(swinging))
		} else {
			speed = b.convergence * math.Log(1+traction) / (1 + math.Sqrt(swinging))
			b.convergence = min(1, math.Sqrt(speed*(b.dx*b.dx+b.dy*b.dy)/(1+math.Sqrt(swinging))))
		}

		b.x += b.dx * speed / st.SlowDown
		b.y += b.dy * speed / st.SlowDown
	}
}

// Commit writes the simulated positions back to the graph's nodes.
func (s *Simulation) Commit() {
	for i, n := range s.nodes {
		n.Position(s.bodies[i].x, s.bodies[i].y, graph.PlacementForce)
	}
}

// Run simulates one pass on g and writes the result back. It returns the
// number of steps that ran.
func Run(ctx context.Context, g *graph.Graph, st Settings) int {
	s := NewSimulation(g)
	n := s.Run(ctx, st)
	s.Commit()
	return n
}
