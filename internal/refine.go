package internal

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Delaunay refinement in the style of Ruppert and Chew.
//
// Each pass first splits every constrained segment that is encroached by a
// vertex, meaning the vertex lies strictly inside the segment's diametral
// circle. Then every bad triangle (too large or too poorly shaped) gets its
// circumcenter inserted, unless that circumcenter would encroach a segment or
// lies beyond one, in which case the segment is split at its midpoint instead.
// With no encroached segments left, every circumcenter lies inside the mesh,
// so insertion never walks out of the region.
//
// Splits that would create pieces shorter than MinLength are skipped, and
// triangles with an edge shorter than MinLength are left as they are. This is
// what keeps small input features from driving refinement forever.

type refineResult int

const (
	refined refineResult = iota
	// Blocked by the minimum length
	tooShort
	// Circumcenter landed on an existing vertex
	stuck
)

type refiner struct {
	mesh       *Mesh
	params     Parameters
	iterations int
	inserted   int
	splits     int
}

// Refine inserts points until every triangle satisfies params. It returns an
// error wrapping ErrQualityNotReached if MaxIterations steps were not enough,
// in which case the mesh is still a valid constrained Delaunay triangulation.
func (m *Mesh) Refine(params Parameters) error {
	if err := params.Validate(); err != nil {
		return err
	}
	r := &refiner{mesh: m, params: params}
	err := r.run()
	m.logger.Info("[refine] finished",
		zap.Int("iterations", r.iterations),
		zap.Int("inserted", r.inserted),
		zap.Int("segmentSplits", r.splits),
		zap.Int("triangles", m.numTriangles),
		zap.Error(err))
	return err
}

func (r *refiner) run() error {
	m := r.mesh
	for pass := 1; ; pass++ {
		progress := false
		stuckCount := 0
		tally := func(result refineResult) {
			switch result {
			case refined:
				progress = true
			case stuck:
				stuckCount++
			}
		}

		// Nothing to do, so leave encroached segments alone too
		if len(r.badTriangles()) == 0 {
			return nil
		}

		for _, e := range r.encroachedSegments() {
			if !m.edges[e].alive || !m.edges[e].constrained || !r.isEncroached(e) {
				continue
			}
			if err := r.step(); err != nil {
				return err
			}
			tally(r.splitSegment(e))
		}

		bad := r.badTriangles()
		m.logger.Debug("[refine] pass",
			zap.Int("pass", pass), zap.Int("bad", len(bad)), zap.Int("triangles", m.numTriangles))
		for _, t := range bad {
			if !t.Valid() || !r.isBad(t.id) {
				continue
			}
			if err := r.step(); err != nil {
				return err
			}
			tally(r.refineTriangle(t.id))
		}

		if !progress {
			// Splits refused for MinLength leave bad triangles that are not
			// exempt, which is still a failure
			left := len(r.badTriangles())
			if left == 0 {
				return nil
			}
			return errors.Wrapf(ErrQualityNotReached,
				"%d bad triangles left after pass %d, %d stuck on existing vertices",
				left, pass, stuckCount)
		}
	}
}

func (r *refiner) step() error {
	if r.iterations >= r.params.MaxIterations {
		return errors.Wrapf(ErrQualityNotReached,
			"%d bad triangles left after %d iterations", len(r.badTriangles()), r.iterations)
	}
	r.iterations++
	return nil
}

// Bad triangles, as handles since refinement deletes triangles as it goes.
func (r *refiner) badTriangles() []Triangle {
	m := r.mesh
	var result []Triangle
	for i := range m.triangles {
		t := triangleID(i)
		if m.triangles[t].alive && r.isBad(t) && !r.isExempt(t) {
			result = append(result, m.triangleHandle(t))
		}
	}
	return result
}

func (r *refiner) isBad(t triangleID) bool {
	a, b, c := r.mesh.trianglePoints(t)
	if r.params.MaxArea > 0 && triangleArea(a, b, c) > r.params.MaxArea {
		return true
	}
	return r.params.MinB > 0 && triangleQuality(a, b, c) < r.params.MinB
}

// Triangles next to features shorter than MinLength are never refined.
func (r *refiner) isExempt(t triangleID) bool {
	a, b, c := r.mesh.trianglePoints(t)
	return shortestEdge(a, b, c) < r.params.MinLength
}

// Constrained edges with a vertex inside their diametral circle. In a
// constrained Delaunay mesh it is enough to check the apexes of the adjacent
// triangles.
func (r *refiner) encroachedSegments() []edgeID {
	m := r.mesh
	var result []edgeID
	for i := range m.edges {
		e := edgeID(i)
		if m.edges[e].alive && m.edges[e].constrained && r.isEncroached(e) {
			result = append(result, e)
		}
	}
	return result
}

func (r *refiner) isEncroached(e edgeID) bool {
	m := r.mesh
	edge := &m.edges[e]
	for _, t := range [2]triangleID{edge.left, edge.right} {
		if t != none && encroaches(m.point(edge.v[0]), m.point(edge.v[1]), m.point(m.apex(t, e))) {
			return true
		}
	}
	return false
}

// Whether p lies strictly inside the circle with diameter ab.
func encroaches(a, b, p Point) bool {
	return a.Sub(p).Dot(b.Sub(p)) < 0
}

func (r *refiner) splitSegment(e edgeID) refineResult {
	m := r.mesh
	edge := m.edges[e]
	a, b := m.point(edge.v[0]), m.point(edge.v[1])
	if a.Sub(b).Norm()/2 < r.params.MinLength {
		return tooShort
	}
	mid := a.Add(b).Mul(0.5)
	if PointsEqual(mid, a) || PointsEqual(mid, b) {
		return stuck
	}
	v := m.newVertex(mid)
	var stack EdgeStack
	m.splitEdge(e, v, &stack)
	m.legalize(&stack)
	r.splits++
	return refined
}

// Split a bad triangle by inserting its circumcenter, or split the segment
// that stands in the way.
func (r *refiner) refineTriangle(t triangleID) refineResult {
	m := r.mesh
	a, b, c := m.trianglePoints(t)
	if shortestEdge(a, b, c) < r.params.MinLength {
		return tooShort
	}
	center := Circumcenter(a, b, c)
	start := a.Add(b).Add(c).Mul(1.0 / 3)

	container, blocker := m.walkToward(t, start, center)
	if blocker != none {
		return r.splitSegment(blocker)
	}
	if e := m.encroachedBy(container, center); e != none {
		return r.splitSegment(e)
	}
	loc, i := m.classify(container, center)
	if loc == onVertex {
		return stuck
	}
	v := m.newVertex(center)
	m.place(v, container, loc, i)
	r.inserted++
	return refined
}

// Walk the straight line from start, which lies in triangle t, to target.
// Returns the triangle containing target, or the constrained or boundary edge
// the line runs into first.
func (m *Mesh) walkToward(t triangleID, start, target Point) (triangleID, edgeID) {
	limit := m.numTriangles + 16
	for step := 0; step < limit; step++ {
		a, b, c := m.trianglePoints(t)
		if Orient2D(a, b, target) >= 0 && Orient2D(b, c, target) >= 0 && Orient2D(c, a, target) >= 0 {
			return t, none
		}
		record := &m.triangles[t]
		exit := edgeID(none)
		for i := 0; i < 3; i++ {
			p, q := m.point(record.v[(i+1)%3]), m.point(record.v[(i+2)%3])
			if Orient2D(p, q, target) < 0 && Orient2D(start, target, p) <= 0 && Orient2D(start, target, q) >= 0 {
				exit = record.e[i]
				break
			}
		}
		if exit == none {
			break
		}
		next := m.otherTriangle(exit, t)
		if m.edges[exit].constrained || next == none {
			return t, exit
		}
		t = next
	}
	// Degenerate geometry; fall back to point location
	found, loc, _ := m.locateFrom(t, target)
	if found == none || loc == outside {
		fatalf("circumcenter %v lies outside the triangulated region", target)
	}
	return found, none
}

// A constrained edge whose diametral circle contains p, among the edges of the
// triangles whose circumcircles contain p. Those are the triangles that
// inserting p would replace, starting from the triangle t containing p.
func (m *Mesh) encroachedBy(t triangleID, p Point) edgeID {
	visited := map[triangleID]bool{t: true}
	queue := []triangleID{t}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, e := range m.triangles[current].e {
			edge := &m.edges[e]
			if edge.constrained {
				if encroaches(m.point(edge.v[0]), m.point(edge.v[1]), p) {
					return e
				}
				continue
			}
			next := m.otherTriangle(e, current)
			if next == none || visited[next] {
				continue
			}
			visited[next] = true
			a, b, c := m.trianglePoints(next)
			if InCircle(a, b, c, p) > 0 {
				queue = append(queue, next)
			}
		}
	}
	return none
}

// Split an encroached constrained edge at its midpoint, as refinement does.
func (m *Mesh) SplitSegment(e Edge) Vertex {
	id := m.edgeID(e)
	edge := m.edges[id]
	mid := m.point(edge.v[0]).Add(m.point(edge.v[1])).Mul(0.5)
	v := m.newVertex(mid)
	var stack EdgeStack
	m.splitEdge(id, v, &stack)
	m.legalize(&stack)
	return m.vertexHandle(v)
}
