package internal

import (
	"embed"
	"log"
	"math"
	"math/rand"
)

// Fixtures are available by name in the fixtures/ directory, sans extension.
// Each is an SVG whose polygons are read with LoadSVGRegion. If anything goes
// wrong, the test binary exits.

//go:embed fixtures
var fixtures embed.FS

func LoadFixture(name string) Region {
	fixture, err := fixtures.Open("fixtures/" + name + ".svg")
	if err != nil {
		log.Fatalf("Could not load fixture %q: %v", name, err)
	}
	defer fixture.Close()

	region, err := LoadSVGRegion(fixture)
	if err != nil {
		log.Fatalf("Failed to parse fixture %q: %v", name, err)
	}
	return region
}

// Some ad hoc code specified fixtures

func UnitSquare() Region {
	return Region{{Hull: Contour{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}}}
}

// A 2x2 square with its top right quadrant missing.
func LShape() Region {
	return Region{{Hull: Contour{
		{X: 0, Y: 0},
		{X: 2, Y: 0},
		{X: 2, Y: 1},
		{X: 1, Y: 1},
		{X: 1, Y: 2},
		{X: 0, Y: 2},
	}}}
}

func SimpleStar() Region {
	var points Contour
	const outerRadius = 5
	const innerRadius = 2
	for i := 0; i < 10; i++ {
		var radius float64
		if i%2 == 0 {
			radius = outerRadius
		} else {
			radius = innerRadius
		}
		angle := 2 * math.Pi * float64(i) / 10
		points = append(points, Point{X: radius * math.Cos(angle), Y: radius * math.Sin(angle)})
	}
	return Region{{Hull: points}}
}

func SquareWithHole() Region {
	return Region{{
		Hull: Contour{
			{X: -5, Y: -5},
			{X: 5, Y: -5},
			{X: 5, Y: 5},
			{X: -5, Y: 5},
		},
		Holes: []Contour{{
			{X: -2, Y: -2},
			{X: -2, Y: 2},
			{X: 2, Y: 2},
			{X: 2, Y: -2},
		}},
	}}
}

func StarOutline() Region {
	var filled, hole Contour
	const filledOuterRadius = 10
	const filledInnerRadius = 5
	const holeOuterRadius = filledOuterRadius - 2
	const holeInnerRadius = filledInnerRadius - 2
	for i := 0; i < 10; i++ {
		var (
			filledRadius float64
			holeRadius   float64
		)
		if i%2 == 0 {
			filledRadius = filledOuterRadius
			holeRadius = holeOuterRadius
		} else {
			filledRadius = filledInnerRadius
			holeRadius = holeInnerRadius
		}
		angle := 2 * math.Pi * float64(i) / 10
		filled = append(filled, Point{X: filledRadius * math.Cos(angle), Y: filledRadius * math.Sin(angle)})
		hole = append(hole, Point{X: holeRadius * math.Cos(angle), Y: holeRadius * math.Sin(angle)})
	}
	return Region{{Hull: filled, Holes: []Contour{hole.Reverse()}}}
}

// Nested stars, each one a hole in the last. Region.Area does not apply since
// the stars are separate polygons.
func StarStripes() Region {
	var region Region
	const outerRadius = 10
	const n = 8
	var scale float64 = 1
	const indentScale = 0.7
	const gapScale = 0.8

	for i := 0; i < n; i++ {
		var points Contour
		for j := 0; j < 10; j++ {
			angle := 2 * math.Pi * float64(j) / 10
			r := outerRadius * scale
			if j%2 == 1 {
				r *= indentScale
			}
			points = append(points, Point{X: r * math.Cos(angle), Y: r * math.Sin(angle)})
		}
		scale *= gapScale
		if i%2 == 1 {
			points = points.Reverse()
		}
		region = append(region, Polygon{Hull: points})
	}
	return region
}

// Uniform random points in the unit square, from a fixed seed.
func RandomPoints(n int, seed int64) []Point {
	random := rand.New(rand.NewSource(seed))
	points := make([]Point, n)
	for i := range points {
		points[i] = Point{X: random.Float64(), Y: random.Float64()}
	}
	return points
}

// A mesh seeded with the unit square and filled with random points.
func RandomMesh(n int, seed int64) *Mesh {
	m := NewMesh()
	m.InitBox(UnitSquare().Bound())
	for _, p := range RandomPoints(n, seed) {
		m.InsertPoint(p)
	}
	return m
}
