package internal

import (
	"go.uber.org/zap"
)

type segment struct {
	from, to vertexID
}

// Force the segment v1v2 into the mesh as a constrained edge.
//
// Edges crossing the segment are flipped away. Vertices lying exactly on the
// segment split it into constrained pieces, and where it crosses an existing
// constrained edge, both are split at the intersection.
func (m *Mesh) EnsureEdge(v1, v2 Vertex) {
	m.ensureEdge(m.vertexID(v1), m.vertexID(v2))
}

func (m *Mesh) ensureEdge(a, b vertexID) {
	pending := []segment{{a, b}}
	for len(pending) > 0 {
		s := pending[len(pending)-1]
		pending = pending[:len(pending)-1]
		if s.from == s.to {
			continue
		}
		if e := m.findEdge(s.from, s.to); e != none {
			m.edges[e].constrained = true
			continue
		}

		crossed, stop := m.walkSegment(s.from, s.to)
		if stop != s.to {
			pending = append(pending, segment{stop, s.to}, segment{s.from, stop})
			continue
		}
		if split := m.splitCrossedConstraint(s, crossed); split != none {
			pending = append(pending, segment{split, s.to}, segment{s.from, split})
			continue
		}
		m.flipAway(s, crossed)
	}
}

// If the segment crosses a constrained edge, split both at the intersection
// and return the new vertex.
func (m *Mesh) splitCrossedConstraint(s segment, crossed []edgeID) vertexID {
	for _, e := range crossed {
		edge := m.edges[e]
		if !edge.constrained {
			continue
		}
		p0, p1 := m.point(edge.v[0]), m.point(edge.v[1])
		q := LineIntersection(m.point(s.from), m.point(s.to), p0, p1)
		if PointsEqual(q, p0) {
			return edge.v[0]
		}
		if PointsEqual(q, p1) {
			return edge.v[1]
		}
		m.logger.Debug("[constrain] splitting crossed constraint",
			zap.Stringer("at", q))
		v := m.newVertex(q)
		var stack EdgeStack
		m.splitEdge(e, v, &stack)
		m.legalize(&stack)
		return v
	}
	return none
}

// Flip unconstrained edges crossing the segment until it appears in the mesh.
// An edge whose quadrilateral is not convex is requeued; some other flip will
// make it flippable eventually.
func (m *Mesh) flipAway(s segment, crossed []edgeID) {
	pa, pb := m.point(s.from), m.point(s.to)
	queue := append([]edgeID(nil), crossed...)
	var touched EdgeStack
	limit := (len(crossed) + 4) * (len(crossed) + 4) * 4
	for steps := 0; len(queue) > 0; steps++ {
		if steps > limit {
			fatalf("could not insert constraint %v %v after %d flips", pa, pb, steps)
		}
		e := queue[0]
		queue = queue[1:]
		if !m.isFlippable(e) {
			queue = append(queue, e)
			continue
		}
		edge := m.edges[e]
		a := m.apex(edge.left, e)
		b := m.apex(edge.right, e)
		touched.Push(m.findEdge(edge.v[0], b), m.findEdge(b, edge.v[1]),
			m.findEdge(edge.v[1], a), m.findEdge(a, edge.v[0]))
		diagonal := m.flip(e, nil)
		if a != s.from && a != s.to && b != s.from && b != s.to &&
			SegmentsCross(pa, pb, m.point(a), m.point(b)) {
			queue = append(queue, diagonal)
		} else {
			touched.Push(diagonal)
		}
	}
	e := m.findEdge(s.from, s.to)
	if e == none {
		fatalf("constraint %v %v missing after flipping", pa, pb)
	}
	m.edges[e].constrained = true
	m.legalize(&touched)
}

// Constrain closed loops of vertices: every consecutive pair, including last
// to first, becomes a constrained edge. Holes are just more loops.
func (m *Mesh) Constrain(loops [][]Vertex) {
	count := 0
	for _, loop := range loops {
		if len(loop) < 2 {
			continue
		}
		for i := range loop {
			next := loop[CircularIndex(i+1, len(loop))]
			if loop[i] == next {
				continue
			}
			m.EnsureEdge(loop[i], next)
			count++
		}
	}
	m.logger.Debug("[constrain] constrained loops",
		zap.Int("loops", len(loops)), zap.Int("segments", count))
}
