package force

import "math"

// maxDepth caps quadtree subdivision so coincident bodies end up sharing a
// leaf instead of splitting forever.
const maxDepth = 24

// region is a quadtree cell over the simulation's bodies.
type region struct {
	x0, y0, width float64

	cx, cy float64 // center of mass
	mass   float64

	leaf     bool
	bodies   []int
	children [4]*region
	depth    int
}

func newRegion(x0, y0, width float64, depth int) *region {
	return &region{x0: x0, y0: y0, width: width, leaf: true, depth: depth}
}

// buildTree returns a square quadtree covering every body.
func buildTree(bodies []body) *region {
	if len(bodies) == 0 {
		return nil
	}
	minX, maxX := bodies[0].x, bodies[0].x
	minY, maxY := bodies[0].y, bodies[0].y
	for _, b := range bodies[1:] {
		minX, maxX = min(minX, b.x), max(maxX, b.x)
		minY, maxY = min(minY, b.y), max(maxY, b.y)
	}

	width := max(maxX-minX, maxY-minY)
	pad := max(width*0.1, 1)
	width += 2 * pad
	cx, cy := (minX+maxX)/2, (minY+maxY)/2

	root := newRegion(cx-width/2, cy-width/2, width, 0)
	for i := range bodies {
		root.insert(bodies, i)
	}
	return root
}

func (r *region) insert(bodies []body, i int) {
	b := &bodies[i]
	total := r.mass + b.mass
	r.cx = (r.cx*r.mass + b.x*b.mass) / total
	r.cy = (r.cy*r.mass + b.y*b.mass) / total
	r.mass = total

	if r.leaf {
		if len(r.bodies) == 0 || r.depth >= maxDepth {
			r.bodies = append(r.bodies, i)
			return
		}
		r.split(bodies)
	}
	r.child(b.x, b.y).insert(bodies, i)
}

// split turns a leaf into an internal node and pushes its bodies down.
func (r *region) split(bodies []body) {
	half := r.width / 2
	r.children = [4]*region{
		newRegion(r.x0, r.y0, half, r.depth+1),
		newRegion(r.x0+half, r.y0, half, r.depth+1),
		newRegion(r.x0, r.y0+half, half, r.depth+1),
		newRegion(r.x0+half, r.y0+half, half, r.depth+1),
	}
	r.leaf = false
	held := r.bodies
	r.bodies = nil
	for _, j := range held {
		b := &bodies[j]
		r.child(b.x, b.y).insert(bodies, j)
	}
}

func (r *region) contains(x, y float64) bool {
	return x >= r.x0 && x < r.x0+r.width && y >= r.y0 && y < r.y0+r.width
}

func (r *region) child(x, y float64) *region {
	half := r.width / 2
	idx := 0
	if x >= r.x0+half {
		idx++
	}
	if y >= r.y0+half {
		idx += 2
	}
	return r.children[idx]
}

// repel accumulates onto bodies[i] the repulsion of every body in r.
// Regions that look small enough from bodies[i] act as a single body at
// their center of mass.
func (r *region) repel(bodies []body, i int, theta, coef float64, adjustSizes bool) {
	if r == nil || r.mass == 0 {
		return
	}
	b := &bodies[i]

	if r.leaf {
		for _, j := range r.bodies {
			if j == i {
				continue
			}
			fx, fy := repulsion(b, &bodies[j], coef, adjustSizes)
			b.dx += fx
			b.dy += fy
		}
		return
	}

	xd, yd := b.x-r.cx, b.y-r.cy
	if d := math.Hypot(xd, yd); d > 0 && r.width/d < theta && !r.contains(b.x, b.y) {
		factor := coef * b.mass * r.mass / (d * d)
		b.dx += xd * factor
		b.dy += yd * factor
		return
	}
	for _, c := range r.children {
		c.repel(bodies, i, theta, coef, adjustSizes)
	}
}
