package internal

import (
	"math"
	"math/big"
)

// Orientation and in-circle predicates that always return the correct sign.
// The determinant is first evaluated in float64 together with a conservative
// bound on its rounding error. Only when the result is smaller than that bound
// is it recomputed exactly with big.Float, so nearly collinear and nearly
// cocircular configurations get consistent answers without paying for exact
// arithmetic on every call.

const (
	// Half a unit in the last place of 1.0.
	roundoff = 1.1102230246251565e-16

	// Error bounds on the float evaluation of the two determinants, relative
	// to the sum of the magnitudes of their terms.
	orientErrorBound   = (3 + 16*roundoff) * roundoff
	inCircleErrorBound = (10 + 96*roundoff) * roundoff
)

// newBigFloat constructs a new big.Float with maximum precision, so sums and
// products of float64 values are exact.
func newBigFloat() *big.Float { return new(big.Float).SetPrec(big.MaxPrec) }

func bigFloat(x float64) *big.Float { return newBigFloat().SetFloat64(x) }

func bigSub(a, b float64) *big.Float { return newBigFloat().Sub(bigFloat(a), bigFloat(b)) }

func bigMul(a, b *big.Float) *big.Float { return newBigFloat().Mul(a, b) }

func sign(x float64) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}

// Orient2D returns +1 if a, b, c are counterclockwise, -1 if they are
// clockwise and 0 if they are collinear. Coordinates must be finite.
func Orient2D(a, b, c Point) int {
	detLeft := (a.X - c.X) * (b.Y - c.Y)
	detRight := (a.Y - c.Y) * (b.X - c.X)
	det := detLeft - detRight
	errBound := orientErrorBound * (math.Abs(detLeft) + math.Abs(detRight))
	if det > errBound || -det > errBound {
		return sign(det)
	}
	return exactOrient2D(a, b, c)
}

func exactOrient2D(a, b, c Point) int {
	acx, acy := bigSub(a.X, c.X), bigSub(a.Y, c.Y)
	bcx, bcy := bigSub(b.X, c.X), bigSub(b.Y, c.Y)
	det := newBigFloat().Sub(bigMul(acx, bcy), bigMul(acy, bcx))
	return det.Sign()
}

// InCircle returns +1 if d lies strictly inside the circle through a, b and c,
// -1 if it lies outside and 0 if the four points are cocircular. a, b and c
// must be counterclockwise; the sign flips for clockwise input.
func InCircle(a, b, c, d Point) int {
	adx, ady := a.X-d.X, a.Y-d.Y
	bdx, bdy := b.X-d.X, b.Y-d.Y
	cdx, cdy := c.X-d.X, c.Y-d.Y

	bdxcdy, cdxbdy := bdx*cdy, cdx*bdy
	cdxady, adxcdy := cdx*ady, adx*cdy
	adxbdy, bdxady := adx*bdy, bdx*ady

	alift := adx*adx + ady*ady
	blift := bdx*bdx + bdy*bdy
	clift := cdx*cdx + cdy*cdy

	det := alift*(bdxcdy-cdxbdy) + blift*(cdxady-adxcdy) + clift*(adxbdy-bdxady)
	permanent := (math.Abs(bdxcdy)+math.Abs(cdxbdy))*alift +
		(math.Abs(cdxady)+math.Abs(adxcdy))*blift +
		(math.Abs(adxbdy)+math.Abs(bdxady))*clift
	errBound := inCircleErrorBound * permanent
	if det > errBound || -det > errBound {
		return sign(det)
	}
	return exactInCircle(a, b, c, d)
}

func exactInCircle(a, b, c, d Point) int {
	adx, ady := bigSub(a.X, d.X), bigSub(a.Y, d.Y)
	bdx, bdy := bigSub(b.X, d.X), bigSub(b.Y, d.Y)
	cdx, cdy := bigSub(c.X, d.X), bigSub(c.Y, d.Y)

	lift := func(x, y *big.Float) *big.Float {
		return newBigFloat().Add(bigMul(x, x), bigMul(y, y))
	}
	cross := func(x1, y1, x2, y2 *big.Float) *big.Float {
		return newBigFloat().Sub(bigMul(x1, y2), bigMul(x2, y1))
	}

	det := bigMul(lift(adx, ady), cross(bdx, bdy, cdx, cdy))
	det.Add(det, bigMul(lift(bdx, bdy), cross(cdx, cdy, adx, ady)))
	det.Add(det, bigMul(lift(cdx, cdy), cross(adx, ady, bdx, bdy)))
	return det.Sign()
}

// Proper crossing of the open segments ab and cd. Touching at an endpoint or
// overlapping collinear segments do not count.
func SegmentsCross(a, b, c, d Point) bool {
	return Orient2D(a, b, c)*Orient2D(a, b, d) < 0 && Orient2D(c, d, a)*Orient2D(c, d, b) < 0
}

// Intersection of the lines through ab and cd. The lines must not be parallel.
func LineIntersection(a, b, c, d Point) Point {
	r := b.Sub(a)
	s := d.Sub(c)
	t := c.Sub(a).Cross(s) / r.Cross(s)
	return a.Add(r.Mul(t))
}

// Center of the circle through a, b and c, computed relative to a for
// precision. The points must not be collinear.
func Circumcenter(a, b, c Point) Point {
	ba := b.Sub(a)
	ca := c.Sub(a)
	d := 2 * ba.Cross(ca)
	baLen := ba.Dot(ba)
	caLen := ca.Dot(ca)
	return Point{
		X: a.X + (ca.Y*baLen-ba.Y*caLen)/d,
		Y: a.Y + (ba.X*caLen-ca.X*baLen)/d,
	}
}
