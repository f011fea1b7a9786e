package internal

import (
	"fmt"
	"sort"
	"strings"
)

// Every triangle as three points, each triangle rotated to start at its
// smallest vertex and the list sorted, so equal meshes give equal output no
// matter how they were built.
func (m *Mesh) TriangleCoords() [][3]Point {
	result := make([][3]Point, 0, m.numTriangles)
	for i := range m.triangles {
		if !m.triangles[i].alive {
			continue
		}
		a, b, c := m.trianglePoints(triangleID(i))
		result = append(result, canonicalTriangle(a, b, c))
	}
	sort.Slice(result, func(i, j int) bool {
		for k := 0; k < 3; k++ {
			if PointLess(result[i][k], result[j][k]) {
				return true
			}
			if PointLess(result[j][k], result[i][k]) {
				return false
			}
		}
		return false
	})
	return result
}

func canonicalTriangle(a, b, c Point) [3]Point {
	switch {
	case PointLess(b, a) && !PointLess(c, b):
		return [3]Point{b, c, a}
	case PointLess(c, a) && PointLess(c, b):
		return [3]Point{c, a, b}
	}
	return [3]Point{a, b, c}
}

func formatTriangle(points [3]Point) string {
	return fmt.Sprintf("((%g, %g), (%g, %g), (%g, %g))",
		points[0].X, points[0].Y, points[1].X, points[1].Y, points[2].X, points[2].Y)
}

// Deterministic serialization of every triangle.
func (m *Mesh) String() string {
	coords := m.TriangleCoords()
	parts := make([]string, len(coords))
	for i, triangle := range coords {
		parts[i] = formatTriangle(triangle)
	}
	return strings.Join(parts, ", ")
}
