package internal

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRemove_Interior(t *testing.T) {
	m := unitBoxMesh()
	v := m.InsertPoint(Point{X: 0.3, Y: 0.4})
	m.Remove(v)

	assert.False(t, v.Valid())
	assert.Equal(t, 4, m.NumVertices())
	assert.Equal(t, 2, m.NumTriangles())
	require.NoError(t, m.Validate(true))
	// The other diagonal is just as Delaunay, so only the area is certain
	AssertMeshArea(t, m, 1)
}

func TestRemove_RandomOrder(t *testing.T) {
	m := RandomMesh(300, 4)
	random := rand.New(rand.NewSource(4))
	vertices := m.Vertices()
	random.Shuffle(len(vertices), func(i, j int) {
		vertices[i], vertices[j] = vertices[j], vertices[i]
	})

	for i, v := range vertices {
		m.Remove(v)
		if i%25 == 0 {
			require.NoError(t, m.Validate(true), "after removing %d vertices", i+1)
		}
	}
	assert.Equal(t, 0, m.NumTriangles())
	assert.Equal(t, 0, m.NumVertices())
	assert.Equal(t, 0, m.NumEdges())
}

func TestRemove_HullVertex(t *testing.T) {
	m := RandomMesh(100, 9)
	corner, ok := m.FindVertex(Point{X: 1, Y: 1})
	require.True(t, ok)
	m.Remove(corner)

	assert.True(t, m.IsConvex())
	assert.True(t, m.boundaryIsConvex(), "the pocket is filled up to the new hull")
	require.NoError(t, m.Validate(true))
	AssertMeshArea(t, m, convexHullArea(m))
}

// Area of the convex hull of every vertex, by gift wrapping.
func convexHullArea(m *Mesh) float64 {
	var points []Point
	for _, v := range m.Vertices() {
		points = append(points, v.Point())
	}
	start := 0
	for i, p := range points {
		if PointLess(p, points[start]) {
			start = i
		}
	}
	var hull Contour
	current := start
	for {
		hull = append(hull, points[current])
		next := (current + 1) % len(points)
		for i := range points {
			if Orient2D(points[current], points[next], points[i]) < 0 {
				next = i
			}
		}
		current = next
		if current == start {
			break
		}
	}
	return hull.Area()
}

func TestRemove_NonConvexBoundary(t *testing.T) {
	m := CreateConstrainedDelaunay(LShape())
	m.RemoveOutsideTriangles()
	require.False(t, m.IsConvex())
	area := 3.0

	corner, ok := m.FindVertex(Point{X: 2, Y: 0})
	require.True(t, ok)
	removedArea := 0.0
	for _, triangle := range m.Triangles() {
		for _, v := range triangle.Vertices() {
			if v == corner {
				removedArea += triangle.Area()
			}
		}
	}
	m.Remove(corner)

	// Boundary vertices of a non-convex mesh leave a notch behind
	require.NoError(t, m.Validate(false))
	AssertMeshArea(t, m, area-removedArea)
}

func TestRemove_KeepsLinkConstraints(t *testing.T) {
	m := unitBoxMesh()
	loop := insertLoop(m,
		Point{X: 0.2, Y: 0.2},
		Point{X: 0.8, Y: 0.2},
		Point{X: 0.8, Y: 0.8},
		Point{X: 0.2, Y: 0.8},
	)
	m.Constrain([][]Vertex{loop})
	middle := m.InsertPoint(Point{X: 0.5, Y: 0.5})
	m.Remove(middle)

	for i := range loop {
		assertConstrained(t, m, loop[i], loop[(i+1)%4])
	}
	require.NoError(t, m.Validate(true))
}
