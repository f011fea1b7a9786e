package internal

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRefine_Area(t *testing.T) {
	m := triangulateUnrefined(UnitSquare())
	params := DefaultParameters()
	params.MinB = 0
	params.MaxArea = 0.01
	require.NoError(t, m.Refine(params))

	assert.GreaterOrEqual(t, m.NumTriangles(), 100)
	for _, triangle := range m.Triangles() {
		assert.LessOrEqual(t, triangle.Area(), 0.01)
	}
	AssertValidTriangulation(t, m, UnitSquare())
	require.NoError(t, m.Validate(true))
}

func TestRefine_Quality(t *testing.T) {
	// A long sliver of a region
	shape := Region{{Hull: Contour{
		{X: 0, Y: 0},
		{X: 10, Y: 0},
		{X: 10, Y: 0.5},
		{X: 0, Y: 1},
	}}}
	m := triangulateUnrefined(shape)
	params := DefaultParameters()
	params.MinB = 0.9
	require.NoError(t, m.Refine(params))

	for _, triangle := range m.Triangles() {
		assert.GreaterOrEqual(t, triangle.Quality(), 0.9, "triangle %v", triangle)
	}
	AssertValidTriangulation(t, m, shape)
	AssertMeshArea(t, m, 7.5)
}

func TestRefine_AlreadyGood(t *testing.T) {
	m := triangulateUnrefined(SquareWithHole())
	before := m.String()
	params := DefaultParameters()
	params.MinB = 0.3
	require.NoError(t, m.Refine(params))
	assert.Equal(t, before, m.String(), "nothing to refine")
}

func TestRefine_IterationCap(t *testing.T) {
	m := triangulateUnrefined(LShape())
	params := DefaultParameters()
	params.MaxArea = 0.001
	params.MaxIterations = 5
	err := m.Refine(params)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrQualityNotReached)
	// The partial result is still a valid mesh
	AssertValidTriangulation(t, m, LShape())
	require.NoError(t, m.Validate(true))
}

func TestRefine_MinLength(t *testing.T) {
	// A notch narrower than the minimum length
	shape := Region{{Hull: Contour{
		{X: 0, Y: 0},
		{X: 4, Y: 0},
		{X: 4, Y: 4},
		{X: 2.01, Y: 4},
		{X: 2.01, Y: 1},
		{X: 2, Y: 1},
		{X: 2, Y: 4},
		{X: 0, Y: 4},
	}}}
	params := DefaultParameters()
	params.MinB = 0.9
	params.MinLength = 0.1
	m := triangulateUnrefined(shape)
	assertRefined(t, m, params, m.Refine(params))
	AssertValidTriangulation(t, m, shape)

	// Only the notch floor is shorter than the minimum length
	short := 0
	for _, e := range m.Edges() {
		if e.IsConstrained() && e.Length() < params.MinLength {
			short++
			assert.InDelta(t, 0.01, e.Length(), 1e-12)
		}
	}
	assert.Equal(t, 1, short)
}

// Either refinement succeeded and every triangle is within bounds or next to
// something shorter than MinLength, or it says it gave up.
func assertRefined(t *testing.T, m *Mesh, params Parameters, err error) {
	t.Helper()
	if err != nil {
		assert.ErrorIs(t, err, ErrQualityNotReached)
		return
	}
	for _, triangle := range m.Triangles() {
		p := triangle.Points()
		if shortestEdge(p[0], p[1], p[2]) < params.MinLength {
			continue
		}
		if params.MaxArea > 0 {
			assert.LessOrEqual(t, triangle.Area(), params.MaxArea, "triangle %v", triangle)
		}
		assert.GreaterOrEqual(t, triangle.Quality(), params.MinB, "triangle %v", triangle)
	}
	r := &refiner{mesh: m, params: params}
	assert.Empty(t, r.badTriangles())
}

func TestRefine_MinLengthGrid(t *testing.T) {
	for name, shape := range map[string]Region{
		"unit square": UnitSquare(),
		"l shape":     LShape(),
	} {
		for _, minLength := range []float64{0, 0.05, 0.1, 0.2, 0.3} {
			for _, maxArea := range []float64{0.01, 0.05, 0.2} {
				params := DefaultParameters()
				params.MinLength = minLength
				params.MaxArea = maxArea
				t.Run(fmt.Sprintf("%s/min_length=%g/max_area=%g", name, minLength, maxArea), func(t *testing.T) {
					mesh, err := Triangulate(shape, params, 1)
					require.NotNil(t, mesh)
					assertRefined(t, mesh, params, err)
					AssertValidTriangulation(t, mesh, shape)
					AssertMeshArea(t, mesh, shape.Area())
				})
			}
		}
	}
}

// Segments too short to split keep bad triangles around that are not next to
// anything short, so refinement has to report failure.
func TestRefine_RefusedSplitsFail(t *testing.T) {
	params := DefaultParameters()
	params.MaxArea = 0.05
	params.MinLength = 0.3
	mesh, err := Triangulate(LShape(), params, 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrQualityNotReached)
	r := &refiner{mesh: mesh, params: params}
	assert.NotEmpty(t, r.badTriangles())
	AssertValidTriangulation(t, mesh, LShape())
}

func TestRefine_Comb(t *testing.T) {
	m := triangulateUnrefined(LoadFixture("comb"))
	params := DefaultParameters()
	params.MinB = 0.9
	params.MaxArea = 20
	require.NoError(t, m.Refine(params))
	r := &refiner{mesh: m, params: params}
	assert.Empty(t, r.badTriangles())
	AssertMeshArea(t, m, 3400)
}

func TestSplitSegment(t *testing.T) {
	m := unitBoxMesh()
	a, _ := m.FindVertex(Point{X: 0, Y: 0})
	b, _ := m.FindVertex(Point{X: 1, Y: 0})
	m.EnsureEdge(a, b)
	e, _ := m.FindEdge(a, b)

	mid := m.SplitSegment(e)
	assert.Equal(t, Point{X: 0.5, Y: 0}, mid.Point())
	assert.False(t, e.Valid())
	assertConstrained(t, m, a, mid)
	assertConstrained(t, m, mid, b)
	require.NoError(t, m.Validate(true))
}

func TestEncroaches(t *testing.T) {
	a, b := Point{X: -1, Y: 0}, Point{X: 1, Y: 0}
	assert.True(t, encroaches(a, b, Point{X: 0, Y: 0.5}))
	assert.False(t, encroaches(a, b, Point{X: 0, Y: 1}), "on the circle")
	assert.False(t, encroaches(a, b, Point{X: 0, Y: 2}))
}

func TestLoadParameters(t *testing.T) {
	t.Run("full", func(t *testing.T) {
		params, err := LoadParameters(strings.NewReader(`
min_b: 0.8
max_area: 2.5
min_length: 0.01
max_iterations: 500
`))
		require.NoError(t, err)
		assert.Equal(t, Parameters{MinB: 0.8, MaxArea: 2.5, MinLength: 0.01, MaxIterations: 500}, params)
	})

	t.Run("partial", func(t *testing.T) {
		params, err := LoadParameters(strings.NewReader("max_area: 3\n"))
		require.NoError(t, err)
		expected := DefaultParameters()
		expected.MaxArea = 3
		assert.Equal(t, expected, params)
	})

	t.Run("empty", func(t *testing.T) {
		params, err := LoadParameters(strings.NewReader(""))
		require.NoError(t, err)
		assert.Equal(t, DefaultParameters(), params)
	})

	t.Run("unknown field", func(t *testing.T) {
		_, err := LoadParameters(strings.NewReader("min_angle: 30\n"))
		assert.Error(t, err)
	})

	t.Run("invalid", func(t *testing.T) {
		_, err := LoadParameters(strings.NewReader("max_iterations: 0\n"))
		assert.EqualError(t, err, "max_iterations must be positive, got 0")
	})
}

func TestParameters_Scaled(t *testing.T) {
	params := Parameters{MinB: 1, MaxArea: 2, MinLength: 3, MaxIterations: 4}
	assert.Equal(t, Parameters{MinB: 1, MaxArea: 200, MinLength: 30, MaxIterations: 4}, params.Scaled(10))
}
