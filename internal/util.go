package internal

import "math"

// Vertices closer than this in both coordinates are the same vertex.
const Tolerance = 1e-10

// To compensate for imprecision in floats, coordinate equality is tolerance
// based. Inserting a point that is equal to an existing vertex returns that
// vertex instead of creating a sliver.
func Equal(a, b float64) bool {
	return math.Abs(a-b) < Tolerance
}

func PointsEqual(a, b Point) bool {
	return Equal(a.X, b.X) && Equal(a.Y, b.Y)
}

// Fuzzy lexicographic order: x first, then y, with tolerance based equality.
func PointLess(a, b Point) bool {
	if !Equal(a.X, b.X) {
		return a.X < b.X
	}
	if !Equal(a.Y, b.Y) {
		return a.Y < b.Y
	}
	return false
}

// Often we want to treat an array as a circular buffer. This gives the modular
// index given length n, but unlike the raw modulo operator, it only gives positive values
func CircularIndex(i, n int) int {
	return (i%n + n) % n
}

func distance2(a, b Point) float64 {
	d := a.Sub(b)
	return d.Dot(d)
}

// Work list of edges waiting for a legality test.
type EdgeStack []edgeID

func (s *EdgeStack) Push(e ...edgeID) {
	*s = append(*s, e...)
}

func (s *EdgeStack) Pop() edgeID {
	if len(*s) == 0 {
		return none
	}
	e := (*s)[len(*s)-1]
	*s = (*s)[:len(*s)-1]
	return e
}

func (s *EdgeStack) Empty() bool {
	return len(*s) == 0
}
