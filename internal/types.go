package internal

import (
	"math"

	"github.com/golang/geo/r2"
)

type Point = r2.Point

// A closed loop of points. The last point connects back to the first, so it
// should not repeat the first point. Either winding is accepted.
type Contour []Point

// A polygon with an outer hull and any number of holes.
type Polygon struct {
	Hull  Contour
	Holes []Contour
}

// A set of polygons. Overlapping polygons are combined with the even-odd rule,
// which is also how the mesh decides what is inside.
type Region []Polygon

// Shoelace area. Positive for counterclockwise contours.
func (c Contour) SignedArea() float64 {
	var area float64
	for i, p := range c {
		q := c[CircularIndex(i+1, len(c))]
		area += p.X*q.Y - q.X*p.Y
	}
	return area / 2
}

func (c Contour) Area() float64 {
	return math.Abs(c.SignedArea())
}

func (c Contour) IsCCW() bool {
	return c.SignedArea() > 0
}

func (c Contour) Reverse() Contour {
	reversed := make(Contour, 0, len(c))
	for i := len(c) - 1; i >= 0; i-- {
		reversed = append(reversed, c[i])
	}
	return reversed
}

func (c Contour) Bound() r2.Rect {
	return r2.RectFromPoints(c...)
}

// Crossing count helper for the even odd rule. Counts the contour edges that
// cross the horizontal ray extending right from p.
func (c Contour) CrossingCount(p Point) int {
	crossingCount := 0
	for i, vertex := range c {
		next := c[CircularIndex(i+1, len(c))]
		if (vertex.Y > p.Y) == (next.Y > p.Y) {
			continue
		}
		x := vertex.X + (p.Y-vertex.Y)*(next.X-vertex.X)/(next.Y-vertex.Y)
		if x > p.X {
			crossingCount++
		}
	}
	return crossingCount
}

func (c Contour) ContainsPointByEvenOdd(p Point) bool {
	return c.CrossingCount(p)%2 == 1
}

// The hull followed by the holes.
func (poly Polygon) Contours() []Contour {
	contours := make([]Contour, 0, len(poly.Holes)+1)
	contours = append(contours, poly.Hull)
	return append(contours, poly.Holes...)
}

func (poly Polygon) Area() float64 {
	area := poly.Hull.Area()
	for _, hole := range poly.Holes {
		area -= hole.Area()
	}
	return area
}

func (r Region) Contours() []Contour {
	var contours []Contour
	for _, poly := range r {
		contours = append(contours, poly.Contours()...)
	}
	return contours
}

func (r Region) Bound() r2.Rect {
	bound := r2.EmptyRect()
	for _, contour := range r.Contours() {
		for _, p := range contour {
			bound = bound.AddPoint(p)
		}
	}
	return bound
}

func (r Region) Area() float64 {
	var area float64
	for _, poly := range r {
		area += poly.Area()
	}
	return area
}

func (r Region) ContainsPointByEvenOdd(p Point) bool {
	count := 0
	for _, contour := range r.Contours() {
		count += contour.CrossingCount(p)
	}
	return count%2 == 1
}

// Multiply every coordinate by scale. This maps integer database units into
// the floating point space the mesh works in.
func (r Region) Scaled(scale float64) Region {
	scaleContour := func(c Contour) Contour {
		scaled := make(Contour, len(c))
		for i, p := range c {
			scaled[i] = p.Mul(scale)
		}
		return scaled
	}
	result := make(Region, len(r))
	for i, poly := range r {
		result[i].Hull = scaleContour(poly.Hull)
		for _, hole := range poly.Holes {
			result[i].Holes = append(result[i].Holes, scaleContour(hole))
		}
	}
	return result
}
