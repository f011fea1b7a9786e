package internal

// This contains no actual tests. It is just a helper for testing triangulation
// validity.

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Helper to check that a mesh is a valid triangulation of a region. The rules
// are:
// 1. The mesh passes its own structural validation.
// 2. Every segment of every contour is covered by mesh edges, so no edge
//    crosses it.
// 3. Every boundary edge of the mesh is constrained.
// 4. A point is in the mesh exactly when it is in the region by the even-odd
//    rule.
func AssertValidTriangulation(t *testing.T, mesh *Mesh, region Region) {
	require.NoError(t, mesh.Validate(false), "mesh is not a valid triangulation")

	for _, contour := range region.Contours() {
		for i, p1 := range contour {
			p2 := contour[CircularIndex(i+1, len(contour))]
			if PointsEqual(p1, p2) {
				continue
			}
			v1, ok := mesh.FindVertex(p1)
			require.True(t, ok, "contour point %v is not a vertex", p1)
			v2, ok := mesh.FindVertex(p2)
			require.True(t, ok, "contour point %v is not a vertex", p2)
			assert.Empty(t, mesh.SearchEdgesCrossing(v1, v2), "segment %v-%v is crossed by mesh edges", p1, p2)
		}
	}

	for _, edge := range mesh.Edges() {
		if edge.IsBoundary() {
			assert.True(t, edge.IsConstrained(), "boundary edge %v is not constrained", edge)
		}
	}

	validateMeshBySampling(t, mesh, region)
}

// The triangles must exactly tile a region of the given area.
func AssertMeshArea(t *testing.T, mesh *Mesh, expected float64) {
	var area float64
	for _, triangle := range mesh.Triangles() {
		require.Greater(t, triangle.Area(), 0.0, "degenerate triangle %v", triangle)
		area += triangle.Area()
	}
	assert.InDelta(t, expected, area, expected*1e-9, "sum of the areas of all triangles should equal the area of the region")
}

func validateMeshBySampling(t *testing.T, mesh *Mesh, region Region) {
	bound := region.Bound()
	// Pad the bounding box by 10%
	bound = bound.ExpandedByMargin(bound.Size().X * 0.1)

	const samples = 50
	step := bound.Size().Mul(1.0 / samples)
	// Offset the grid so samples don't land on axis aligned contour edges
	for j := 0; j < samples; j++ {
		for i := 0; i < samples; i++ {
			p := Point{
				X: bound.X.Lo + (float64(i)+0.371)*step.X,
				Y: bound.Y.Lo + (float64(j)+0.529)*step.Y,
			}
			_, actual := mesh.Locate(p)
			if region.ContainsPointByEvenOdd(p) {
				assert.True(t, actual, "point %v should be in the mesh", p)
			} else {
				assert.False(t, actual, "point %v should not be in the mesh", p)
			}
		}
	}
}
