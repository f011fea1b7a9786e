package internal

import (
	"sort"
)

// Walk along the segment from one vertex toward another, collecting the edges
// it properly crosses. The walk stops at the first vertex lying on the segment,
// which is to itself when the two are already joined by an edge. Reaching a
// boundary before the target panics.
func (m *Mesh) walkSegment(from, to vertexID) (crossed []edgeID, stop vertexID) {
	if from == to {
		return nil, to
	}
	if m.findEdge(from, to) != none {
		return nil, to
	}
	u, target := m.point(from), m.point(to)

	// Find the wedge around from which contains the direction to the target.
	var t triangleID = none
	var right, left vertexID
	for _, e := range m.vertices[from].edges {
		w := m.otherVertex(e, from)
		pw := m.point(w)
		if Orient2D(u, target, pw) == 0 && pw.Sub(u).Dot(target.Sub(u)) > 0 {
			return nil, w
		}
	}
	for _, candidate := range m.incidentTriangles(from) {
		_, x, y := m.rotatedVertices(candidate, from)
		if Orient2D(u, target, m.point(x)) < 0 && Orient2D(u, target, m.point(y)) > 0 {
			t, right, left = candidate, x, y
			break
		}
	}
	if t == none {
		fatalf("segment %v %v leaves the triangulated region", u, target)
	}

	limit := m.numEdges + 1
	for step := 0; step < limit; step++ {
		e := m.findEdge(right, left)
		crossed = append(crossed, e)
		t = m.otherTriangle(e, t)
		if t == none {
			fatalf("segment %v %v leaves the triangulated region", u, target)
		}
		z := m.apex(t, e)
		if z == to {
			return crossed, to
		}
		switch Orient2D(u, target, m.point(z)) {
		case 0:
			return crossed, z
		case -1:
			right = z
		default:
			left = z
		}
	}
	fatalf("walk from %v to %v did not terminate", u, target)
	return nil, none
}

// All edges properly crossed by the segment v1v2, in order from v1. Vertices
// lying exactly on the segment are walked through.
func (m *Mesh) SearchEdgesCrossing(v1, v2 Vertex) []Edge {
	from, to := m.vertexID(v1), m.vertexID(v2)
	var result []Edge
	for from != to {
		crossed, stop := m.walkSegment(from, to)
		for _, e := range crossed {
			result = append(result, m.edgeHandle(e))
		}
		from = stop
	}
	return result
}

// The edge joining a and b, in either direction.
func (m *Mesh) FindEdge(a, b Vertex) (Edge, bool) {
	e := m.findEdge(m.vertexID(a), m.vertexID(b))
	return m.edgeHandle(e), e != none
}

// The vertex at p, within Tolerance.
func (m *Mesh) FindVertex(p Point) (Vertex, bool) {
	if m.numTriangles > 0 {
		t, loc, i := m.locate(p)
		if loc == onVertex {
			return m.vertexHandle(m.triangles[t].v[i]), true
		}
		if loc != outside {
			return Vertex{}, false
		}
	}
	// Loose vertices aren't reachable by walking
	for i := range m.vertices {
		if m.vertices[i].alive && PointsEqual(m.vertices[i].p, p) {
			return m.vertexHandle(vertexID(i)), true
		}
	}
	return Vertex{}, false
}

// The triangle containing p, including its boundary. Points outside the mesh
// report false.
func (m *Mesh) Locate(p Point) (Triangle, bool) {
	if m.numTriangles == 0 {
		return Triangle{}, false
	}
	t, loc, _ := m.locate(p)
	if t == none || loc == outside {
		return Triangle{}, false
	}
	return m.triangleHandle(t), true
}

func withinRadius(p, center Point, radius float64) bool {
	return distance2(p, center) < radius*radius
}

// Vertices strictly within radius of v, found by a breadth first search over
// mesh edges which only expands through vertices inside the circle. v itself is
// not included. On a Delaunay mesh this finds exactly the vertices that
// FindInsideCircle does: every vertex in the circle has a neighbor closer to
// the center, so the vertices inside are connected to it.
func (m *Mesh) FindPointsAround(v Vertex, radius float64) []Vertex {
	start := m.vertexID(v)
	center := m.point(start)
	visited := map[vertexID]bool{start: true}
	queue := []vertexID{start}
	var found []vertexID
	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]
		for _, e := range m.vertices[u].edges {
			w := m.otherVertex(e, u)
			if visited[w] {
				continue
			}
			visited[w] = true
			if withinRadius(m.point(w), center, radius) {
				found = append(found, w)
				queue = append(queue, w)
			}
		}
	}
	return m.sortedVertexHandles(found)
}

// Vertices strictly within radius of center, by checking every vertex. A vertex
// coinciding with center is not included.
func (m *Mesh) FindInsideCircle(center Point, radius float64) []Vertex {
	var found []vertexID
	for i := range m.vertices {
		record := &m.vertices[i]
		if !record.alive || PointsEqual(record.p, center) {
			continue
		}
		if withinRadius(record.p, center, radius) {
			found = append(found, vertexID(i))
		}
	}
	return m.sortedVertexHandles(found)
}

func (m *Mesh) sortedVertexHandles(ids []vertexID) []Vertex {
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	result := make([]Vertex, len(ids))
	for i, id := range ids {
		result[i] = m.vertexHandle(id)
	}
	return result
}

// Finds the vertices near a vertex of a mesh.
type ProximityQuery interface {
	Find(center Vertex, radius float64) []Vertex
}

// Graph search over the mesh. Fast, and exact on Delaunay meshes.
type MeshWalkQuery struct{}

func (MeshWalkQuery) Find(center Vertex, radius float64) []Vertex {
	return center.mesh.FindPointsAround(center, radius)
}

// Linear scan over every vertex. Used to cross check MeshWalkQuery.
type BruteForceQuery struct{}

func (BruteForceQuery) Find(center Vertex, radius float64) []Vertex {
	return center.mesh.FindInsideCircle(center.Point(), radius)
}
