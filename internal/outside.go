package internal

import (
	"go.uber.org/zap"
)

// Delete every triangle outside the constrained loops, along with edges and
// vertices left without triangles. Returns the number of triangles removed.
//
// Insideness is decided by parity, like the even-odd rule: a flood fill from
// the boundary toggles parity each time it crosses a constrained edge, and
// triangles at even parity are outside. Triangles just inside a constrained
// boundary edge start at odd parity, so regions whose outline coincides with
// the mesh boundary are kept.
func (m *Mesh) RemoveOutsideTriangles() int {
	parity := make(map[triangleID]int, m.numTriangles)
	var queue []triangleID
	for i := range m.edges {
		edge := &m.edges[i]
		if !edge.alive || !m.isBoundary(edgeID(i)) {
			continue
		}
		t := edge.left
		if t == none {
			t = edge.right
		}
		if t == none {
			continue
		}
		if _, ok := parity[t]; ok {
			continue
		}
		if edge.constrained {
			parity[t] = 1
		} else {
			parity[t] = 0
		}
		queue = append(queue, t)
	}
	for len(queue) > 0 {
		t := queue[0]
		queue = queue[1:]
		for _, e := range m.triangles[t].e {
			next := m.otherTriangle(e, t)
			if next == none {
				continue
			}
			if _, ok := parity[next]; ok {
				continue
			}
			p := parity[t]
			if m.edges[e].constrained {
				p ^= 1
			}
			parity[next] = p
			queue = append(queue, next)
		}
	}

	var doomed []triangleID
	for i := range m.triangles {
		t := triangleID(i)
		if m.triangles[t].alive && parity[t] == 0 {
			doomed = append(doomed, t)
		}
	}
	m.deleteTriangles(doomed)
	if len(doomed) > 0 {
		m.convex = m.boundaryIsConvex()
	}
	m.logger.Debug("[outside] removed outside triangles",
		zap.Int("removed", len(doomed)), zap.Int("remaining", m.numTriangles))
	return len(doomed)
}

// Delete triangles, then any of their edges and vertices that no longer
// border a triangle.
func (m *Mesh) deleteTriangles(triangles []triangleID) {
	var edges []edgeID
	seen := make(map[edgeID]bool)
	for _, t := range triangles {
		for _, e := range m.triangles[t].e {
			if !seen[e] {
				seen[e] = true
				edges = append(edges, e)
			}
		}
		m.deleteTriangle(t)
	}
	var vertices []vertexID
	for _, e := range edges {
		edge := &m.edges[e]
		if edge.left != none || edge.right != none {
			continue
		}
		vertices = append(vertices, edge.v[0], edge.v[1])
		m.deleteEdge(e)
	}
	for _, v := range vertices {
		if m.vertices[v].alive && len(m.vertices[v].edges) == 0 {
			m.deleteVertex(v)
		}
	}
}

// Whether the boundary is a single loop that never turns clockwise.
func (m *Mesh) boundaryIsConvex() bool {
	if m.numTriangles == 0 {
		return true
	}
	boundaryCount := 0
	start := vertexID(none)
	for i := range m.edges {
		if m.edges[i].alive && m.isBoundary(edgeID(i)) {
			boundaryCount++
			if start == none {
				start = m.edges[i].v[0]
			}
		}
	}
	prev, _ := m.boundaryIn(start)
	current := start
	for steps := 0; steps < boundaryCount; steps++ {
		next, e := m.boundaryOut(current)
		if e == none || prev == none {
			return false
		}
		if Orient2D(m.point(prev), m.point(current), m.point(next)) < 0 {
			return false
		}
		prev, current = current, next
		if current == start {
			return steps+1 == boundaryCount
		}
	}
	return false
}
