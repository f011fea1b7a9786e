package internal

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrient2D(t *testing.T) {
	a := Point{X: 0, Y: 0}
	b := Point{X: 1, Y: 0}

	assert.Equal(t, 1, Orient2D(a, b, Point{X: 0, Y: 1}))
	assert.Equal(t, -1, Orient2D(a, b, Point{X: 0, Y: -1}))
	assert.Equal(t, 0, Orient2D(a, b, Point{X: 5, Y: 0}))

	t.Run("nearly collinear", func(t *testing.T) {
		// Points on the line y = x, nudged by a single ulp. The float
		// determinant is swamped by rounding, so these go the exact route.
		p := Point{X: 0.5, Y: 0.5}
		q := Point{X: 12, Y: 12}
		r := Point{X: 24, Y: 24}
		assert.Equal(t, 0, Orient2D(p, q, r))
		above := Point{X: r.X, Y: math.Nextafter(r.Y, math.Inf(1))}
		below := Point{X: r.X, Y: math.Nextafter(r.Y, math.Inf(-1))}
		assert.Equal(t, 1, Orient2D(p, q, above))
		assert.Equal(t, -1, Orient2D(p, q, below))
	})

	t.Run("consistent under permutation", func(t *testing.T) {
		p := Point{X: 0.1, Y: 0.1}
		q := Point{X: 0.3, Y: 0.3000000000000001}
		r := Point{X: 0.7, Y: 0.7}
		o := Orient2D(p, q, r)
		assert.Equal(t, o, Orient2D(q, r, p))
		assert.Equal(t, o, Orient2D(r, p, q))
		assert.Equal(t, -o, Orient2D(q, p, r))
	})
}

func TestInCircle(t *testing.T) {
	a := Point{X: 0, Y: 0}
	b := Point{X: 1, Y: 0}
	c := Point{X: 1, Y: 1}

	assert.Equal(t, 1, InCircle(a, b, c, Point{X: 0.5, Y: 0.5}))
	assert.Equal(t, -1, InCircle(a, b, c, Point{X: 3, Y: 3}))
	// The fourth corner of the square is cocircular
	assert.Equal(t, 0, InCircle(a, b, c, Point{X: 0, Y: 1}))
	// Orientation of the first three flips the sign
	assert.Equal(t, -1, InCircle(a, c, b, Point{X: 0.5, Y: 0.5}))

	t.Run("nearly cocircular", func(t *testing.T) {
		d := Point{X: 0, Y: 1}
		inside := Point{X: math.Nextafter(0, 1), Y: 1}
		outside := Point{X: math.Nextafter(0, -1), Y: 1}
		assert.Equal(t, 0, InCircle(a, b, c, d))
		assert.Equal(t, 1, InCircle(a, b, c, inside))
		assert.Equal(t, -1, InCircle(a, b, c, outside))
	})
}

func TestSegmentsCross(t *testing.T) {
	assert.True(t, SegmentsCross(Point{X: 0, Y: 0}, Point{X: 2, Y: 2}, Point{X: 0, Y: 2}, Point{X: 2, Y: 0}))
	assert.False(t, SegmentsCross(Point{X: 0, Y: 0}, Point{X: 1, Y: 1}, Point{X: 0, Y: 2}, Point{X: 2, Y: 0}), "touching at an endpoint is not a crossing")
	assert.False(t, SegmentsCross(Point{X: 0, Y: 0}, Point{X: 1, Y: 0}, Point{X: 2, Y: 0}, Point{X: 3, Y: 0}))
	assert.False(t, SegmentsCross(Point{X: 0, Y: 0}, Point{X: 1, Y: 0}, Point{X: 0, Y: 1}, Point{X: 1, Y: 1}))
}

func TestLineIntersection(t *testing.T) {
	p := LineIntersection(Point{X: 0, Y: 0}, Point{X: 2, Y: 2}, Point{X: 0, Y: 2}, Point{X: 2, Y: 0})
	assert.InDelta(t, 1, p.X, 1e-12)
	assert.InDelta(t, 1, p.Y, 1e-12)
}

func TestCircumcenter(t *testing.T) {
	center := Circumcenter(Point{X: 0, Y: 0}, Point{X: 2, Y: 0}, Point{X: 0, Y: 2})
	assert.InDelta(t, 1, center.X, 1e-12)
	assert.InDelta(t, 1, center.Y, 1e-12)

	// Far from the origin, where computing relative to a matters
	offset := Point{X: 1e6, Y: -1e6}
	center = Circumcenter(offset, offset.Add(Point{X: 2, Y: 0}), offset.Add(Point{X: 0, Y: 2}))
	assert.InDelta(t, offset.X+1, center.X, 1e-6)
	assert.InDelta(t, offset.Y+1, center.Y, 1e-6)
}
