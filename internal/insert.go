package internal

import (
	"math"
)

// Where a point falls relative to the triangle returned by a walk.
type location int

const (
	inTriangle location = iota
	// On edge e[i] of the triangle
	onEdge
	// Coincides with vertex v[i] of the triangle
	onVertex
	// Beyond boundary edge e[i] of the triangle
	outside
)

// Insert a point, keeping the mesh Delaunay. If a vertex already exists at p
// (within Tolerance), it is returned and the mesh is left untouched.
//
// Points may be inserted into an empty mesh. They are held as loose vertices
// until three of them are not collinear, at which point the first triangle is
// built and the rest are inserted into it. Points outside the current hull
// extend it, which is only possible while the mesh covers its convex hull.
func (m *Mesh) InsertPoint(p Point) Vertex {
	if math.IsNaN(p.X) || math.IsNaN(p.Y) || math.IsInf(p.X, 0) || math.IsInf(p.Y, 0) {
		fatalf("cannot insert non-finite point %v", p)
	}
	if m.numTriangles == 0 {
		return m.vertexHandle(m.insertLoose(p))
	}
	t, loc, i := m.locate(p)
	if loc == onVertex {
		return m.vertexHandle(m.triangles[t].v[i])
	}
	if t == none {
		fatalf("point %v lies outside the triangulated region", p)
	}
	v := m.newVertex(p)
	m.place(v, t, loc, i)
	return m.vertexHandle(v)
}

// Insertion before the first triangle exists.
func (m *Mesh) insertLoose(p Point) vertexID {
	for i := range m.vertices {
		if m.vertices[i].alive && PointsEqual(m.vertices[i].p, p) {
			return vertexID(i)
		}
	}
	v := m.newVertex(p)
	m.bootstrap()
	return v
}

// Build the first triangle from the loose vertices, if any three of them span
// a triangle, then insert the remaining loose vertices.
func (m *Mesh) bootstrap() {
	var loose []vertexID
	for i := range m.vertices {
		if m.vertices[i].alive && len(m.vertices[i].edges) == 0 {
			loose = append(loose, vertexID(i))
		}
	}
	if len(loose) < 3 {
		return
	}
	a, b := loose[0], loose[1]
	c := vertexID(none)
	for _, candidate := range loose[2:] {
		if Orient2D(m.point(a), m.point(b), m.point(candidate)) != 0 {
			c = candidate
			break
		}
	}
	if c == none {
		return
	}
	if Orient2D(m.point(a), m.point(b), m.point(c)) < 0 {
		a, b = b, a
	}
	m.convex = true
	m.newTriangle(a, b, c)

	for _, v := range loose {
		if v == a || v == b || v == c {
			continue
		}
		t, loc, i := m.locate(m.point(v))
		if loc == onVertex {
			// Within tolerance of a vertex that came earlier; it stays loose.
			continue
		}
		m.place(v, t, loc, i)
	}
}

// Connect an existing vertex into the triangulation at the located position
// and restore the Delaunay property around it.
func (m *Mesh) place(v vertexID, t triangleID, loc location, i int) {
	var stack EdgeStack
	switch loc {
	case inTriangle:
		m.splitTriangle(t, v, &stack)
	case onEdge:
		m.splitEdge(m.triangles[t].e[i], v, &stack)
	case outside:
		m.extendHull(t, i, v, &stack)
	default:
		fatalf("cannot place vertex at location %d", loc)
	}
	m.legalize(&stack)
}

// Replace triangle t with three triangles fanning out from v, which lies
// strictly inside it.
func (m *Mesh) splitTriangle(t triangleID, v vertexID, stack *EdgeStack) {
	record := m.triangles[t]
	m.deleteTriangle(t)
	a, b, c := record.v[0], record.v[1], record.v[2]
	m.newTriangle(a, b, v)
	m.newTriangle(b, c, v)
	m.newTriangle(c, a, v)
	stack.Push(record.e[0], record.e[1], record.e[2])
}

// Split edge e at v, which lies on it, fanning both adjacent triangles. The
// halves of a constrained edge stay constrained.
func (m *Mesh) splitEdge(e edgeID, v vertexID, stack *EdgeStack) {
	edge := m.edges[e]
	a, b := edge.v[0], edge.v[1]
	x, y := vertexID(none), vertexID(none)
	for _, t := range [2]triangleID{edge.left, edge.right} {
		if t == none {
			continue
		}
		for _, side := range m.triangles[t].e {
			if side != e {
				stack.Push(side)
			}
		}
	}
	if edge.left != none {
		x = m.apex(edge.left, e)
		m.deleteTriangle(edge.left)
	}
	if edge.right != none {
		y = m.apex(edge.right, e)
		m.deleteTriangle(edge.right)
	}
	m.deleteEdge(e)

	if x != none {
		m.newTriangle(a, v, x)
		m.newTriangle(v, b, x)
	}
	if y != none {
		m.newTriangle(b, v, y)
		m.newTriangle(v, a, y)
	}
	if edge.constrained {
		m.edges[m.findEdge(a, v)].constrained = true
		m.edges[m.findEdge(v, b)].constrained = true
	}
}

// Attach v, which lies outside the hull beyond edge i of boundary triangle t,
// to every boundary edge it can see.
func (m *Mesh) extendHull(t triangleID, i int, v vertexID, stack *EdgeStack) {
	if !m.convex {
		fatalf("point %v lies outside the triangulated region", m.point(v))
	}
	p := m.point(v)
	record := &m.triangles[t]
	a, b := record.v[(i+1)%3], record.v[(i+2)%3]

	type hullEdge struct {
		from, to vertexID
		e        edgeID
	}
	visible := []hullEdge{{a, b, record.e[i]}}

	limit := m.numEdges
	// Forward from b
	for from, steps := b, 0; steps < limit; steps++ {
		to, e := m.boundaryOut(from)
		if e == none || to == a || Orient2D(m.point(from), m.point(to), p) >= 0 {
			break
		}
		visible = append(visible, hullEdge{from, to, e})
		from = to
	}
	// Backward from a
	for to, steps := a, 0; steps < limit; steps++ {
		from, e := m.boundaryIn(to)
		if e == none || from == visible[len(visible)-1].to || Orient2D(m.point(from), m.point(to), p) >= 0 {
			break
		}
		visible = append([]hullEdge{{from, to, e}}, visible...)
		to = from
	}

	for _, edge := range visible {
		m.newTriangle(edge.to, edge.from, v)
		stack.Push(edge.e)
	}
}

//// Legalization

// Lawson's algorithm: pop edges and flip the illegal ones until the stack is
// empty. Every flip pushes the four edges around the flipped quadrilateral.
func (m *Mesh) legalize(stack *EdgeStack) {
	for !stack.Empty() {
		e := stack.Pop()
		m.stats.Hops++
		if !m.edges[e].alive || !m.isIllegal(e) {
			continue
		}
		m.flip(e, stack)
	}
}

// An unconstrained interior edge is illegal when the apex of its right
// triangle lies strictly inside the circumcircle of its left triangle.
func (m *Mesh) isIllegal(e edgeID) bool {
	edge := &m.edges[e]
	if edge.constrained || edge.left == none || edge.right == none {
		return false
	}
	a := m.apex(edge.left, e)
	b := m.apex(edge.right, e)
	return InCircle(m.point(edge.v[0]), m.point(edge.v[1]), m.point(a), m.point(b)) > 0
}

// Whether the two triangles on e form a strictly convex quadrilateral, so that
// e can be replaced by the other diagonal.
func (m *Mesh) isFlippable(e edgeID) bool {
	edge := &m.edges[e]
	if edge.left == none || edge.right == none {
		return false
	}
	a := m.point(m.apex(edge.left, e))
	b := m.point(m.apex(edge.right, e))
	v0, v1 := m.point(edge.v[0]), m.point(edge.v[1])
	return Orient2D(v0, b, a) > 0 && Orient2D(b, v1, a) > 0
}

// Replace e with the other diagonal of its quadrilateral. The outer edges of
// the quadrilateral are pushed onto stack if it is not nil.
func (m *Mesh) flip(e edgeID, stack *EdgeStack) edgeID {
	edge := m.edges[e]
	v0, v1 := edge.v[0], edge.v[1]
	a := m.apex(edge.left, e)
	b := m.apex(edge.right, e)
	m.deleteTriangle(edge.left)
	m.deleteTriangle(edge.right)
	m.deleteEdge(e)
	m.newTriangle(v0, b, a)
	m.newTriangle(b, v1, a)
	m.stats.Flips++
	if stack != nil {
		stack.Push(m.findEdge(v0, b), m.findEdge(b, v1), m.findEdge(v1, a), m.findEdge(a, v0))
	}
	return m.findEdge(a, b)
}

// Flip an unconstrained interior edge, returning the new diagonal. The two
// triangles must form a strictly convex quadrilateral. No legalization is done.
func (m *Mesh) Flip(e Edge) Edge {
	id := m.edgeID(e)
	if m.edges[id].constrained {
		fatalf("cannot flip constrained edge %v", e)
	}
	if !m.isFlippable(id) {
		fatalf("edge %v is not the diagonal of a convex quadrilateral", e)
	}
	return m.edgeHandle(m.flip(id, nil))
}

//// Point location

// Find the triangle containing p. For points outside a convex mesh, the
// returned triangle is a boundary triangle and i names the boundary edge p lies
// beyond. For points outside a non-convex mesh, the triangle is none.
func (m *Mesh) locate(p Point) (triangleID, location, int) {
	return m.locateFrom(m.startTriangle(p), p)
}

// Jump-and-walk: the walk starts at the closest of a small random sample of
// triangles, which keeps the expected walk length low for scattered queries.
func (m *Mesh) startTriangle(p Point) triangleID {
	best := m.lastTriangle
	bestDistance := math.Inf(1)
	if best != none {
		bestDistance = distance2(m.point(m.triangles[best].v[0]), p)
	}
	samples := int(math.Cbrt(float64(m.numTriangles)))
	for i := 0; i < samples; i++ {
		t := triangleID(m.rand.Intn(len(m.triangles)))
		if !m.triangles[t].alive {
			continue
		}
		if d := distance2(m.point(m.triangles[t].v[0]), p); d < bestDistance {
			best = t
			bestDistance = d
		}
	}
	if best == none {
		for i := range m.triangles {
			if m.triangles[i].alive {
				return triangleID(i)
			}
		}
		fatalf("locating %v in a mesh with no triangles", p)
	}
	return best
}

// Stochastic visibility walk. Edges are tried in a random rotation so the walk
// can't cycle, and a step limit falls back to a linear scan regardless.
func (m *Mesh) locateFrom(t triangleID, p Point) (triangleID, location, int) {
	limit := 4*m.numTriangles + 16
	for step := 0; step < limit; step++ {
		record := &m.triangles[t]
		next := triangleID(none)
		r := m.rand.Intn(3)
		for k := 0; k < 3; k++ {
			i := (r + k) % 3
			a, b := m.point(record.v[(i+1)%3]), m.point(record.v[(i+2)%3])
			if Orient2D(a, b, p) >= 0 {
				continue
			}
			next = m.otherTriangle(record.e[i], t)
			if next == none {
				if j := m.coincidentVertex(t, p); j >= 0 {
					return t, onVertex, j
				}
				if m.convex {
					return t, outside, i
				}
				return m.scan(p)
			}
			break
		}
		if next == none {
			loc, i := m.classify(t, p)
			return t, loc, i
		}
		t = next
	}
	return m.scan(p)
}

// Locate by checking every triangle.
func (m *Mesh) scan(p Point) (triangleID, location, int) {
	for i := range m.triangles {
		t := triangleID(i)
		if !m.triangles[t].alive {
			continue
		}
		a, b, c := m.trianglePoints(t)
		if Orient2D(a, b, p) >= 0 && Orient2D(b, c, p) >= 0 && Orient2D(c, a, p) >= 0 {
			loc, j := m.classify(t, p)
			return t, loc, j
		}
	}
	// Tolerance may still match a boundary vertex
	for i := range m.triangles {
		t := triangleID(i)
		if !m.triangles[t].alive {
			continue
		}
		if j := m.coincidentVertex(t, p); j >= 0 {
			return t, onVertex, j
		}
	}
	return none, outside, -1
}

// Classify a point known to lie in the closed triangle t.
func (m *Mesh) classify(t triangleID, p Point) (location, int) {
	if j := m.coincidentVertex(t, p); j >= 0 {
		return onVertex, j
	}
	record := &m.triangles[t]
	for i := 0; i < 3; i++ {
		a, b := m.point(record.v[(i+1)%3]), m.point(record.v[(i+2)%3])
		if Orient2D(a, b, p) == 0 {
			return onEdge, i
		}
	}
	return inTriangle, -1
}

func (m *Mesh) coincidentVertex(t triangleID, p Point) int {
	for i, v := range m.triangles[t].v {
		if PointsEqual(m.point(v), p) {
			return i
		}
	}
	return -1
}
