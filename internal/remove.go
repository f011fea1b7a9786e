package internal

// Remove a vertex and retriangulate the hole it leaves.
//
// An interior vertex leaves a star shaped polygon, which is filled by ear
// clipping. A vertex on the boundary of a convex mesh leaves a pocket, which is
// filled up to the new convex hull. On the boundary of a non-convex mesh the
// incident triangles are simply dropped, shrinking the covered region. Edges of
// the hole keep their constrained flags; constrained edges incident to the
// vertex are lost with it. The new edges are legalized afterwards.
func (m *Mesh) Remove(vertex Vertex) {
	v := m.vertexID(vertex)
	incident := m.incidentTriangles(v)

	// Each incident triangle (v, x, y) contributes the link edge x→y, with
	// the hole on its left.
	next := make(map[vertexID]vertexID, len(incident))
	hasPrev := make(map[vertexID]bool, len(incident))
	var order []vertexID
	for _, t := range incident {
		_, x, y := m.rotatedVertices(t, v)
		next[x] = y
		hasPrev[y] = true
		order = append(order, x)
	}
	for _, t := range incident {
		m.deleteTriangle(t)
	}
	for len(m.vertices[v].edges) > 0 {
		e := m.vertices[v].edges[0]
		edge := &m.edges[e]
		edge.left, edge.right = none, none
		m.deleteEdge(e)
	}
	m.deleteVertex(v)

	var chains [][]vertexID
	for _, start := range order {
		if !hasPrev[start] {
			chains = append(chains, m.followChain(start, next))
		}
	}
	closed := len(chains) == 0 && len(order) > 0

	var stack EdgeStack
	switch {
	case closed:
		polygon := m.followChain(order[0], next)
		polygon = polygon[:len(polygon)-1]
		m.fillPolygon(polygon, &stack)
	case m.convex && len(chains) == 1:
		m.fillPocket(chains[0], &stack)
	}

	// Link edges that border nothing any more
	for _, chain := range chains {
		for i := 0; i+1 < len(chain); i++ {
			e := m.findEdge(chain[i], chain[i+1])
			if e != none && m.edges[e].left == none && m.edges[e].right == none {
				m.deleteEdge(e)
			}
		}
	}
	for _, x := range order {
		if e := m.findEdge(x, next[x]); e != none {
			stack.Push(e)
		}
	}
	m.legalize(&stack)
}

// Follow link edges from start. For a closed loop the start vertex is
// repeated at the end.
func (m *Mesh) followChain(start vertexID, next map[vertexID]vertexID) []vertexID {
	chain := []vertexID{start}
	current := start
	for i := 0; i < len(next); i++ {
		y, ok := next[current]
		if !ok {
			break
		}
		chain = append(chain, y)
		if y == start {
			break
		}
		current = y
	}
	return chain
}

// Triangulate a simple counterclockwise polygon by ear clipping.
func (m *Mesh) fillPolygon(polygon []vertexID, stack *EdgeStack) {
	polygon = append([]vertexID(nil), polygon...)
	for len(polygon) > 3 {
		clipped := false
		n := len(polygon)
		for i := range polygon {
			a := polygon[CircularIndex(i-1, n)]
			b := polygon[i]
			c := polygon[CircularIndex(i+1, n)]
			if !m.isEar(a, b, c, polygon) {
				continue
			}
			m.newTriangle(a, b, c)
			stack.Push(m.findEdge(a, c))
			polygon = append(polygon[:i], polygon[i+1:]...)
			clipped = true
			break
		}
		if !clipped {
			fatalf("no ear found while filling a hole of %d vertices", n)
		}
	}
	if len(polygon) == 3 {
		m.newTriangle(polygon[0], polygon[1], polygon[2])
	}
}

func (m *Mesh) isEar(a, b, c vertexID, polygon []vertexID) bool {
	pa, pb, pc := m.point(a), m.point(b), m.point(c)
	if Orient2D(pa, pb, pc) <= 0 {
		return false
	}
	for _, w := range polygon {
		if w == a || w == b || w == c {
			continue
		}
		p := m.point(w)
		if Orient2D(pa, pb, p) >= 0 && Orient2D(pb, pc, p) >= 0 && Orient2D(pc, pa, p) >= 0 {
			return false
		}
	}
	return true
}

// Fill the pocket between an open chain and its convex hull, as in a Graham
// scan: whenever the chain turns left, the turn is cut off with a triangle.
func (m *Mesh) fillPocket(chain []vertexID, stack *EdgeStack) {
	var hull []vertexID
	for _, c := range chain {
		for len(hull) >= 2 {
			a, b := hull[len(hull)-2], hull[len(hull)-1]
			if Orient2D(m.point(a), m.point(b), m.point(c)) <= 0 {
				break
			}
			m.newTriangle(a, b, c)
			stack.Push(m.findEdge(a, c))
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, c)
	}
}
