package internal

import (
	"math"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Check reports whether the mesh is a valid triangulation, and if tight is
// set, whether every unconstrained edge is also locally Delaunay. Validation
// is expensive and never runs as part of other operations.
func (m *Mesh) Check(tight bool) bool {
	err := m.Validate(tight)
	if err != nil {
		m.logger.Debug("[check] mesh is invalid", zap.Error(err))
	}
	return err == nil
}

// Validate is Check with a description of the first problem found.
func (m *Mesh) Validate(tight bool) error {
	checks := []func() error{
		m.validateTriangles,
		m.validateEdges,
		m.validateVertices,
		m.validateBoundary,
		m.validateCoverage,
	}
	if tight {
		checks = append(checks, m.validateDelaunay)
	}
	for _, check := range checks {
		if err := check(); err != nil {
			return err
		}
	}
	return nil
}

func (m *Mesh) validateTriangles() error {
	count := 0
	for i := range m.triangles {
		t := triangleID(i)
		record := &m.triangles[t]
		if !record.alive {
			continue
		}
		count++
		for j, v := range record.v {
			if !m.vertices[v].alive {
				return errors.Errorf("triangle %d has dead vertex %d", t, v)
			}
			e := record.e[j]
			if !m.edges[e].alive {
				return errors.Errorf("triangle %d has dead edge %d", t, e)
			}
			a, b := record.v[(j+1)%3], record.v[(j+2)%3]
			edge := &m.edges[e]
			switch {
			case edge.v[0] == a && edge.v[1] == b:
				if edge.left != t {
					return errors.Errorf("edge %d does not have triangle %d on its left", e, t)
				}
			case edge.v[0] == b && edge.v[1] == a:
				if edge.right != t {
					return errors.Errorf("edge %d does not have triangle %d on its right", e, t)
				}
			default:
				return errors.Errorf("edge %d does not join vertices %d and %d of triangle %d", e, a, b, t)
			}
		}
		a, b, c := m.trianglePoints(t)
		if Orient2D(a, b, c) <= 0 {
			return errors.Errorf("triangle %d (%v %v %v) is not counterclockwise", t, a, b, c)
		}
	}
	if count != m.numTriangles {
		return errors.Errorf("counted %d triangles, expected %d", count, m.numTriangles)
	}
	return nil
}

func (m *Mesh) validateEdges() error {
	count := 0
	pairs := make(map[[2]vertexID]edgeID, m.numEdges)
	for i := range m.edges {
		e := edgeID(i)
		edge := &m.edges[e]
		if !edge.alive {
			continue
		}
		count++
		a, b := edge.v[0], edge.v[1]
		if a == b || !m.vertices[a].alive || !m.vertices[b].alive {
			return errors.Errorf("edge %d has invalid endpoints %d and %d", e, a, b)
		}
		key := [2]vertexID{a, b}
		if b < a {
			key = [2]vertexID{b, a}
		}
		if other, ok := pairs[key]; ok {
			return errors.Errorf("edges %d and %d join the same vertices", other, e)
		}
		pairs[key] = e
		if edge.left == none && edge.right == none {
			return errors.Errorf("edge %d borders no triangle", e)
		}
		if edge.left == edge.right {
			return errors.Errorf("edge %d has triangle %d on both sides", e, edge.left)
		}
		for _, t := range [2]triangleID{edge.left, edge.right} {
			if t == none {
				continue
			}
			if !m.triangles[t].alive {
				return errors.Errorf("edge %d borders dead triangle %d", e, t)
			}
			found := false
			for _, side := range m.triangles[t].e {
				found = found || side == e
			}
			if !found {
				return errors.Errorf("edge %d borders triangle %d which does not contain it", e, t)
			}
		}
		if !containsEdge(m.vertices[a].edges, e) || !containsEdge(m.vertices[b].edges, e) {
			return errors.Errorf("edge %d is missing from its vertices' edge lists", e)
		}
	}
	if count != m.numEdges {
		return errors.Errorf("counted %d edges, expected %d", count, m.numEdges)
	}
	return nil
}

func containsEdge(edges []edgeID, e edgeID) bool {
	for _, candidate := range edges {
		if candidate == e {
			return true
		}
	}
	return false
}

func (m *Mesh) validateVertices() error {
	count := 0
	for i := range m.vertices {
		v := vertexID(i)
		record := &m.vertices[v]
		if !record.alive {
			continue
		}
		count++
		for _, e := range record.edges {
			edge := &m.edges[e]
			if !edge.alive || (edge.v[0] != v && edge.v[1] != v) {
				return errors.Errorf("vertex %d lists edge %d which is not incident to it", v, e)
			}
		}
	}
	if count != m.numVertices {
		return errors.Errorf("counted %d vertices, expected %d", count, m.numVertices)
	}
	return nil
}

// Every boundary vertex has as many boundary edges leaving it as arriving, so
// the boundary decomposes into closed loops.
func (m *Mesh) validateBoundary() error {
	balance := make(map[vertexID]int)
	for i := range m.edges {
		edge := &m.edges[i]
		if !edge.alive || !m.isBoundary(edgeID(i)) {
			continue
		}
		from, to := edge.v[0], edge.v[1]
		if edge.left == none {
			from, to = to, from
		}
		balance[from]++
		balance[to]--
	}
	for v, b := range balance {
		if b != 0 {
			return errors.Errorf("boundary is not closed at vertex %d %v", v, m.point(v))
		}
	}
	return nil
}

// Angles around each interior vertex sum to a full turn, so triangles neither
// overlap nor leave gaps. For a convex mesh, the triangles must also form one
// connected disc (Euler characteristic 1).
func (m *Mesh) validateCoverage() error {
	const angleTolerance = 1e-6
	for i := range m.vertices {
		v := vertexID(i)
		record := &m.vertices[v]
		if !record.alive || len(record.edges) == 0 {
			continue
		}
		interior := true
		for _, e := range record.edges {
			if m.isBoundary(e) {
				interior = false
				break
			}
		}
		if !interior {
			continue
		}
		var sum float64
		for _, t := range m.incidentTriangles(v) {
			_, x, y := m.rotatedVertices(t, v)
			a := m.point(x).Sub(record.p)
			b := m.point(y).Sub(record.p)
			sum += math.Atan2(a.Cross(b), a.Dot(b))
		}
		if math.Abs(sum-2*math.Pi) > angleTolerance {
			return errors.Errorf("angles around vertex %d %v sum to %g", v, record.p, sum)
		}
	}

	if !m.convex || m.numTriangles == 0 {
		return nil
	}
	connectedVertices := 0
	for i := range m.vertices {
		if m.vertices[i].alive && len(m.vertices[i].edges) > 0 {
			connectedVertices++
		}
	}
	if euler := connectedVertices - m.numEdges + m.numTriangles; euler != 1 {
		return errors.Errorf("Euler characteristic is %d, expected 1", euler)
	}
	start := m.lastTriangle
	if start == none {
		for i := range m.triangles {
			if m.triangles[i].alive {
				start = triangleID(i)
				break
			}
		}
	}
	visited := map[triangleID]bool{start: true}
	queue := []triangleID{start}
	for len(queue) > 0 {
		t := queue[0]
		queue = queue[1:]
		for _, e := range m.triangles[t].e {
			next := m.otherTriangle(e, t)
			if next != none && !visited[next] {
				visited[next] = true
				queue = append(queue, next)
			}
		}
	}
	if len(visited) != m.numTriangles {
		return errors.Errorf("only %d of %d triangles are connected", len(visited), m.numTriangles)
	}
	return nil
}

func (m *Mesh) validateDelaunay() error {
	for i := range m.edges {
		e := edgeID(i)
		if !m.edges[e].alive {
			continue
		}
		if m.isIllegal(e) {
			edge := &m.edges[e]
			return errors.Errorf("edge %v %v is not locally Delaunay",
				m.point(edge.v[0]), m.point(edge.v[1]))
		}
	}
	return nil
}
