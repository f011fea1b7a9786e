package cdt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Smoke test. The internals are already tested.
func TestTriangulate(t *testing.T) {
	region := Region{{Hull: Contour{
		{X: 1, Y: -1},
		{X: 1, Y: 1},
		{X: -1, Y: 1},
		{X: -1, Y: -1},
	}}}

	t.Run("unrefined", func(t *testing.T) {
		params := DefaultParameters()
		params.MinB = 0
		mesh, err := Triangulate(region, params, 1)
		require.NoError(t, err)
		assert.Equal(t, 2, mesh.NumTriangles())
		assert.True(t, mesh.Check(false))
	})

	t.Run("refined", func(t *testing.T) {
		params := DefaultParameters()
		params.MinB = 0.8
		params.MaxArea = 0.1
		mesh, err := Triangulate(region, params, 1)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, mesh.NumTriangles(), 40)
		for _, triangle := range mesh.Triangles() {
			assert.LessOrEqual(t, triangle.Area(), 0.1)
		}
	})

	t.Run("scaled", func(t *testing.T) {
		params := DefaultParameters()
		params.MinB = 0
		mesh, err := Triangulate(region, params, 10)
		require.NoError(t, err)
		box := mesh.BoundingBox()
		assert.InDelta(t, -10, box.X.Lo, 1e-9)
		assert.InDelta(t, 10, box.Y.Hi, 1e-9)
	})
}

func TestTriangulate_InvalidParameters(t *testing.T) {
	params := DefaultParameters()
	params.MaxIterations = 0
	mesh, err := Triangulate(Region{}, params, 1)
	assert.Error(t, err)
	assert.Nil(t, mesh)
}

func TestGuard(t *testing.T) {
	mesh, err := CreateConstrainedDelaunay(Region{{Hull: Contour{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}}}})
	require.NoError(t, err)
	vertex := mesh.Vertices()[0]

	require.NoError(t, Guard(func() { mesh.Remove(vertex) }))

	err = Guard(func() { mesh.Remove(vertex) })
	var triangulateError TriangulateError
	assert.ErrorAs(t, err, &triangulateError)
	assert.Contains(t, err.Error(), "stale vertex handle")
}
