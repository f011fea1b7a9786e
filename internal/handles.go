package internal

import (
	"fmt"
	"math"

	"github.com/golang/geo/r2"
)

// Handles are small values naming an entity of a mesh. They are comparable, so
// they can be used as map keys, but they are only valid until the entity they
// name is removed. Flips, vertex removal and outside removal all delete
// entities, so handles should not be held across mutations. Using a stale
// handle panics with a TriangulateError.

type Vertex struct {
	mesh *Mesh
	id   vertexID
	gen  uint32
}

type Edge struct {
	mesh *Mesh
	id   edgeID
	gen  uint32
}

type Triangle struct {
	mesh *Mesh
	id   triangleID
	gen  uint32
}

func (m *Mesh) vertexHandle(id vertexID) Vertex {
	if id == none {
		return Vertex{}
	}
	return Vertex{m, id, m.vertices[id].gen}
}

func (m *Mesh) edgeHandle(id edgeID) Edge {
	if id == none {
		return Edge{}
	}
	return Edge{m, id, m.edges[id].gen}
}

func (m *Mesh) triangleHandle(id triangleID) Triangle {
	if id == none {
		return Triangle{}
	}
	return Triangle{m, id, m.triangles[id].gen}
}

// Resolve a handle to its slot, panicking if it belongs to another mesh or has
// gone stale.
func (m *Mesh) vertexID(v Vertex) vertexID {
	if v.mesh != m || !v.Valid() {
		fatalf("stale vertex handle %d", v.id)
	}
	return v.id
}

func (m *Mesh) edgeID(e Edge) edgeID {
	if e.mesh != m || !e.Valid() {
		fatalf("stale edge handle %d", e.id)
	}
	return e.id
}

func (m *Mesh) triangleID(t Triangle) triangleID {
	if t.mesh != m || !t.Valid() {
		fatalf("stale triangle handle %d", t.id)
	}
	return t.id
}

//// Vertex

func (v Vertex) Valid() bool {
	if v.mesh == nil || int(v.id) >= len(v.mesh.vertices) {
		return false
	}
	record := &v.mesh.vertices[v.id]
	return record.alive && record.gen == v.gen
}

func (v Vertex) record() *vertexRecord {
	return &v.mesh.vertices[v.mesh.vertexID(v)]
}

func (v Vertex) Point() Point {
	return v.record().p
}

func (v Vertex) X() float64 {
	return v.record().p.X
}

func (v Vertex) Y() float64 {
	return v.record().p.Y
}

func (v Vertex) Edges() []Edge {
	ids := v.record().edges
	result := make([]Edge, len(ids))
	for i, e := range ids {
		result[i] = v.mesh.edgeHandle(e)
	}
	return result
}

// Vertices joined to v by an edge.
func (v Vertex) Neighbors() []Vertex {
	ids := v.record().edges
	result := make([]Vertex, len(ids))
	for i, e := range ids {
		result[i] = v.mesh.vertexHandle(v.mesh.otherVertex(e, v.id))
	}
	return result
}

// Fuzzy lexicographic order on position.
func (v Vertex) Less(other Vertex) bool {
	return PointLess(v.Point(), other.Point())
}

func (v Vertex) String() string {
	if !v.Valid() {
		return "Vertex(Ø)"
	}
	p := v.Point()
	return fmt.Sprintf("(%g, %g)", p.X, p.Y)
}

//// Edge

func (e Edge) Valid() bool {
	if e.mesh == nil || int(e.id) >= len(e.mesh.edges) {
		return false
	}
	record := &e.mesh.edges[e.id]
	return record.alive && record.gen == e.gen
}

func (e Edge) record() *edgeRecord {
	return &e.mesh.edges[e.mesh.edgeID(e)]
}

func (e Edge) V1() Vertex {
	return e.mesh.vertexHandle(e.record().v[0])
}

func (e Edge) V2() Vertex {
	return e.mesh.vertexHandle(e.record().v[1])
}

// The endpoint of e which is not v.
func (e Edge) Other(v Vertex) Vertex {
	return e.mesh.vertexHandle(e.mesh.otherVertex(e.mesh.edgeID(e), e.mesh.vertexID(v)))
}

func (e Edge) IsConstrained() bool {
	return e.record().constrained
}

// Mark or unmark the edge as a constraint. Constrained edges are never flipped.
func (e Edge) SetConstrained(constrained bool) {
	e.record().constrained = constrained
}

// The triangle on the left of V1→V2, if any.
func (e Edge) Left() (Triangle, bool) {
	t := e.record().left
	return e.mesh.triangleHandle(t), t != none
}

// The triangle on the right of V1→V2, if any.
func (e Edge) Right() (Triangle, bool) {
	t := e.record().right
	return e.mesh.triangleHandle(t), t != none
}

func (e Edge) Triangles() []Triangle {
	record := e.record()
	var result []Triangle
	for _, t := range [2]triangleID{record.left, record.right} {
		if t != none {
			result = append(result, e.mesh.triangleHandle(t))
		}
	}
	return result
}

func (e Edge) IsBoundary() bool {
	return e.mesh.isBoundary(e.mesh.edgeID(e))
}

func (e Edge) Length() float64 {
	record := e.record()
	return e.mesh.point(record.v[0]).Sub(e.mesh.point(record.v[1])).Norm()
}

func (e Edge) String() string {
	if !e.Valid() {
		return "Edge(Ø)"
	}
	marker := "--"
	if e.IsConstrained() {
		marker = "=="
	}
	return fmt.Sprintf("%s%s%s", e.V1(), marker, e.V2())
}

//// Triangle

func (t Triangle) Valid() bool {
	if t.mesh == nil || int(t.id) >= len(t.mesh.triangles) {
		return false
	}
	record := &t.mesh.triangles[t.id]
	return record.alive && record.gen == t.gen
}

func (t Triangle) record() *triangleRecord {
	return &t.mesh.triangles[t.mesh.triangleID(t)]
}

// Vertices in counterclockwise order.
func (t Triangle) Vertices() [3]Vertex {
	record := t.record()
	var result [3]Vertex
	for i, v := range record.v {
		result[i] = t.mesh.vertexHandle(v)
	}
	return result
}

func (t Triangle) Vertex(i int) Vertex {
	return t.mesh.vertexHandle(t.record().v[CircularIndex(i, 3)])
}

// Edges, where edge i is opposite vertex i.
func (t Triangle) Edges() [3]Edge {
	record := t.record()
	var result [3]Edge
	for i, e := range record.e {
		result[i] = t.mesh.edgeHandle(e)
	}
	return result
}

func (t Triangle) Points() [3]Point {
	a, b, c := t.mesh.trianglePoints(t.mesh.triangleID(t))
	return [3]Point{a, b, c}
}

// The triangle across edge i, if any.
func (t Triangle) Neighbor(i int) (Triangle, bool) {
	id := t.mesh.triangleID(t)
	other := t.mesh.otherTriangle(t.mesh.triangles[id].e[CircularIndex(i, 3)], id)
	return t.mesh.triangleHandle(other), other != none
}

func (t Triangle) Area() float64 {
	a, b, c := t.mesh.trianglePoints(t.mesh.triangleID(t))
	return triangleArea(a, b, c)
}

// Shape quality: the shortest edge divided by the circumradius. This is 2 sin
// of the smallest angle, so an equilateral triangle scores √3 and slivers
// approach 0.
func (t Triangle) Quality() float64 {
	a, b, c := t.mesh.trianglePoints(t.mesh.triangleID(t))
	return triangleQuality(a, b, c)
}

func (t Triangle) Circumcenter() Point {
	a, b, c := t.mesh.trianglePoints(t.mesh.triangleID(t))
	return Circumcenter(a, b, c)
}

func (t Triangle) Circumradius() float64 {
	a, b, c := t.mesh.trianglePoints(t.mesh.triangleID(t))
	return Circumcenter(a, b, c).Sub(a).Norm()
}

func (t Triangle) Centroid() Point {
	a, b, c := t.mesh.trianglePoints(t.mesh.triangleID(t))
	return a.Add(b).Add(c).Mul(1.0 / 3)
}

func (t Triangle) Bound() r2.Rect {
	a, b, c := t.mesh.trianglePoints(t.mesh.triangleID(t))
	return r2.RectFromPoints(a, b, c)
}

// Whether p lies inside or on the boundary of the triangle.
func (t Triangle) Contains(p Point) bool {
	a, b, c := t.mesh.trianglePoints(t.mesh.triangleID(t))
	return Orient2D(a, b, p) >= 0 && Orient2D(b, c, p) >= 0 && Orient2D(c, a, p) >= 0
}

func (t Triangle) String() string {
	if !t.Valid() {
		return "Triangle(Ø)"
	}
	return formatTriangle(t.Points())
}

func triangleArea(a, b, c Point) float64 {
	return b.Sub(a).Cross(c.Sub(a)) / 2
}

func shortestEdge(a, b, c Point) float64 {
	return math.Sqrt(math.Min(distance2(a, b), math.Min(distance2(b, c), distance2(c, a))))
}

func triangleQuality(a, b, c Point) float64 {
	area := triangleArea(a, b, c)
	if area <= 0 {
		return 0
	}
	// R = abc / 4K
	ab := math.Sqrt(distance2(a, b))
	bc := math.Sqrt(distance2(b, c))
	ca := math.Sqrt(distance2(c, a))
	circumradius := ab * bc * ca / (4 * area)
	return math.Min(ab, math.Min(bc, ca)) / circumradius
}
