package internal

import (
	"math/rand"

	"github.com/golang/geo/r2"
	"go.uber.org/zap"
)

// The mesh is an arena. Vertices, edges and triangles live in slices and refer
// to each other by slot index. Deleted slots go on a free list and are reused,
// so every slot carries a generation which is bumped on deletion. Public
// handles remember the generation they were issued with, which lets us detect
// handles that outlived the entity they referred to.

type vertexID int
type edgeID int
type triangleID int

// Sentinel for "no vertex/edge/triangle".
const none = -1

type vertexRecord struct {
	p     Point
	edges []edgeID
	gen   uint32
	alive bool
}

// Edge endpoints are ordered. left is the triangle on the left of v[0]→v[1],
// right is the one on its right. Boundary edges have exactly one of the two.
type edgeRecord struct {
	v           [2]vertexID
	left, right triangleID
	constrained bool
	gen         uint32
	alive       bool
}

// Vertices are counterclockwise. e[i] is the edge opposite v[i], joining
// v[i+1] and v[i+2].
type triangleRecord struct {
	v     [3]vertexID
	e     [3]edgeID
	gen   uint32
	alive bool
}

// Cumulative work counters. Flips counts edge flips, Hops counts edges popped
// off the legalization work list.
type Stats struct {
	Flips int
	Hops  int
}

type Mesh struct {
	vertices  []vertexRecord
	edges     []edgeRecord
	triangles []triangleRecord

	freeVertices  []vertexID
	freeEdges     []edgeID
	freeTriangles []triangleID

	numVertices  int
	numEdges     int
	numTriangles int

	// Most recently created triangle, used as a starting point for walks.
	lastTriangle triangleID
	// Whether the triangles cover the convex hull of their vertices. Points
	// outside the hull can only be inserted while this holds.
	convex bool

	stats  Stats
	rand   *rand.Rand
	logger *zap.Logger
}

type Option func(*Mesh)

func WithLogger(logger *zap.Logger) Option {
	return func(m *Mesh) {
		m.SetLogger(logger)
	}
}

// Walks are randomized, but with a fixed seed so that the same sequence of
// operations always produces the same mesh.
const randomSeed = 0x5eed

func NewMesh(opts ...Option) *Mesh {
	m := &Mesh{
		lastTriangle: none,
		convex:       true,
		rand:         rand.New(rand.NewSource(randomSeed)),
		logger:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Mesh) SetLogger(logger *zap.Logger) {
	if logger == nil {
		logger = zap.NewNop()
	}
	m.logger = logger
}

// Seed the mesh with the four corners of box, split into two triangles along
// the diagonal from the minimum to the maximum corner.
func (m *Mesh) InitBox(box r2.Rect) {
	if m.numVertices > 0 {
		fatalf("InitBox called on a mesh with %d vertices", m.numVertices)
	}
	if box.IsEmpty() || box.X.Length() <= 0 || box.Y.Length() <= 0 {
		fatalf("cannot seed a mesh with degenerate box %v", box)
	}
	v0 := m.newVertex(box.Vertices()[0])
	v1 := m.newVertex(box.Vertices()[1])
	v2 := m.newVertex(box.Vertices()[2])
	v3 := m.newVertex(box.Vertices()[3])
	m.newTriangle(v0, v1, v2)
	m.newTriangle(v0, v2, v3)
	m.logger.Debug("[mesh] seeded box", zap.Stringer("box", box))
}

func (m *Mesh) Stats() Stats {
	return m.stats
}

func (m *Mesh) NumTriangles() int {
	return m.numTriangles
}

func (m *Mesh) NumVertices() int {
	return m.numVertices
}

func (m *Mesh) NumEdges() int {
	return m.numEdges
}

// Whether the triangles cover the convex hull of the mesh.
func (m *Mesh) IsConvex() bool {
	return m.convex
}

func (m *Mesh) Triangles() []Triangle {
	result := make([]Triangle, 0, m.numTriangles)
	for i := range m.triangles {
		if m.triangles[i].alive {
			result = append(result, m.triangleHandle(triangleID(i)))
		}
	}
	return result
}

func (m *Mesh) Vertices() []Vertex {
	result := make([]Vertex, 0, m.numVertices)
	for i := range m.vertices {
		if m.vertices[i].alive {
			result = append(result, m.vertexHandle(vertexID(i)))
		}
	}
	return result
}

func (m *Mesh) Edges() []Edge {
	result := make([]Edge, 0, m.numEdges)
	for i := range m.edges {
		if m.edges[i].alive {
			result = append(result, m.edgeHandle(edgeID(i)))
		}
	}
	return result
}

// Bounding box of all triangles. Vertices that are not part of any triangle
// are ignored.
func (m *Mesh) BoundingBox() r2.Rect {
	box := r2.EmptyRect()
	for i := range m.triangles {
		if !m.triangles[i].alive {
			continue
		}
		for _, v := range m.triangles[i].v {
			box = box.AddPoint(m.vertices[v].p)
		}
	}
	return box
}

//// Allocation

func (m *Mesh) newVertex(p Point) vertexID {
	var id vertexID
	if n := len(m.freeVertices); n > 0 {
		id = m.freeVertices[n-1]
		m.freeVertices = m.freeVertices[:n-1]
	} else {
		id = vertexID(len(m.vertices))
		m.vertices = append(m.vertices, vertexRecord{})
	}
	record := &m.vertices[id]
	record.p = p
	record.edges = record.edges[:0]
	record.alive = true
	m.numVertices++
	return id
}

func (m *Mesh) deleteVertex(id vertexID) {
	record := &m.vertices[id]
	if len(record.edges) > 0 {
		fatalf("deleting vertex %d which still has %d edges", id, len(record.edges))
	}
	record.alive = false
	record.gen++
	m.freeVertices = append(m.freeVertices, id)
	m.numVertices--
}

func (m *Mesh) newEdge(a, b vertexID) edgeID {
	if a == b {
		fatalf("edge from vertex %d to itself", a)
	}
	var id edgeID
	if n := len(m.freeEdges); n > 0 {
		id = m.freeEdges[n-1]
		m.freeEdges = m.freeEdges[:n-1]
	} else {
		id = edgeID(len(m.edges))
		m.edges = append(m.edges, edgeRecord{})
	}
	record := &m.edges[id]
	record.v = [2]vertexID{a, b}
	record.left = none
	record.right = none
	record.constrained = false
	record.alive = true
	m.vertices[a].edges = append(m.vertices[a].edges, id)
	m.vertices[b].edges = append(m.vertices[b].edges, id)
	m.numEdges++
	return id
}

func (m *Mesh) deleteEdge(id edgeID) {
	record := &m.edges[id]
	if record.left != none || record.right != none {
		fatalf("deleting edge %d which still borders a triangle", id)
	}
	for _, v := range record.v {
		m.unlinkEdge(v, id)
	}
	record.alive = false
	record.gen++
	m.freeEdges = append(m.freeEdges, id)
	m.numEdges--
}

func (m *Mesh) unlinkEdge(v vertexID, e edgeID) {
	edges := m.vertices[v].edges
	for i, candidate := range edges {
		if candidate == e {
			edges[i] = edges[len(edges)-1]
			m.vertices[v].edges = edges[:len(edges)-1]
			return
		}
	}
	fatalf("edge %d missing from vertex %d", e, v)
}

// Find the edge joining a and b, in either direction.
func (m *Mesh) findEdge(a, b vertexID) edgeID {
	// Scan the shorter list
	if len(m.vertices[b].edges) < len(m.vertices[a].edges) {
		a, b = b, a
	}
	for _, e := range m.vertices[a].edges {
		record := &m.edges[e]
		if record.v[0] == b || record.v[1] == b {
			return e
		}
	}
	return none
}

// Find or create the edge joining a and b, and attach triangle t to the side
// it occupies when the edge is traversed from a to b.
func (m *Mesh) attachEdge(a, b vertexID, t triangleID) edgeID {
	e := m.findEdge(a, b)
	if e == none {
		e = m.newEdge(a, b)
	}
	record := &m.edges[e]
	side := &record.left
	if record.v[0] != a {
		side = &record.right
	}
	if *side != none {
		fatalf("edge %d already has a triangle on that side", e)
	}
	*side = t
	return e
}

// Create the counterclockwise triangle abc, creating any missing edges.
func (m *Mesh) newTriangle(a, b, c vertexID) triangleID {
	if Orient2D(m.vertices[a].p, m.vertices[b].p, m.vertices[c].p) <= 0 {
		fatalf("triangle %v %v %v is not counterclockwise",
			m.vertices[a].p, m.vertices[b].p, m.vertices[c].p)
	}
	var id triangleID
	if n := len(m.freeTriangles); n > 0 {
		id = m.freeTriangles[n-1]
		m.freeTriangles = m.freeTriangles[:n-1]
	} else {
		id = triangleID(len(m.triangles))
		m.triangles = append(m.triangles, triangleRecord{})
	}
	record := &m.triangles[id]
	record.v = [3]vertexID{a, b, c}
	record.alive = true
	// attachEdge may grow the edge arena, but not the triangle arena, so the
	// record pointer stays valid.
	record.e[0] = m.attachEdge(b, c, id)
	record.e[1] = m.attachEdge(c, a, id)
	record.e[2] = m.attachEdge(a, b, id)
	m.numTriangles++
	m.lastTriangle = id
	return id
}

// Delete a triangle, detaching it from its edges. The edges themselves are
// left in place.
func (m *Mesh) deleteTriangle(id triangleID) {
	record := &m.triangles[id]
	for _, e := range record.e {
		edge := &m.edges[e]
		switch id {
		case edge.left:
			edge.left = none
		case edge.right:
			edge.right = none
		default:
			fatalf("triangle %d is not attached to its edge %d", id, e)
		}
	}
	record.alive = false
	record.gen++
	m.freeTriangles = append(m.freeTriangles, id)
	m.numTriangles--
	if m.lastTriangle == id {
		m.lastTriangle = none
	}
}

//// Navigation

// The triangle across edge e from t, or none.
func (m *Mesh) otherTriangle(e edgeID, t triangleID) triangleID {
	record := &m.edges[e]
	if record.left == t {
		return record.right
	}
	return record.left
}

func (m *Mesh) isBoundary(e edgeID) bool {
	record := &m.edges[e]
	return record.left == none || record.right == none
}

func (m *Mesh) otherVertex(e edgeID, v vertexID) vertexID {
	record := &m.edges[e]
	if record.v[0] == v {
		return record.v[1]
	}
	return record.v[0]
}

// The vertex of t not on edge e.
func (m *Mesh) apex(t triangleID, e edgeID) vertexID {
	return m.triangles[t].v[m.edgeIndex(t, e)]
}

func (m *Mesh) edgeIndex(t triangleID, e edgeID) int {
	record := &m.triangles[t]
	for i, candidate := range record.e {
		if candidate == e {
			return i
		}
	}
	fatalf("edge %d is not part of triangle %d", e, t)
	return -1
}

func (m *Mesh) vertexIndex(t triangleID, v vertexID) int {
	record := &m.triangles[t]
	for i, candidate := range record.v {
		if candidate == v {
			return i
		}
	}
	return -1
}

// The triangle vertices rotated so that v comes first.
func (m *Mesh) rotatedVertices(t triangleID, v vertexID) (vertexID, vertexID, vertexID) {
	record := &m.triangles[t]
	i := m.vertexIndex(t, v)
	return record.v[i], record.v[(i+1)%3], record.v[(i+2)%3]
}

func (m *Mesh) point(v vertexID) Point {
	return m.vertices[v].p
}

func (m *Mesh) trianglePoints(t triangleID) (Point, Point, Point) {
	record := &m.triangles[t]
	return m.vertices[record.v[0]].p, m.vertices[record.v[1]].p, m.vertices[record.v[2]].p
}

// Triangles incident to v, each listed once.
func (m *Mesh) incidentTriangles(v vertexID) []triangleID {
	var result []triangleID
	for _, e := range m.vertices[v].edges {
		record := &m.edges[e]
		// Each incident triangle touches two of v's edges. Only count it from
		// the edge that leaves v counterclockwise within the triangle.
		for _, t := range [2]triangleID{record.left, record.right} {
			if t == none {
				continue
			}
			if _, b, _ := m.rotatedVertices(t, v); b == m.otherVertex(e, v) {
				result = append(result, t)
			}
		}
	}
	return result
}

// Boundary edge leaving u with the mesh on its left. Returns the far vertex
// and the edge, or none.
func (m *Mesh) boundaryOut(u vertexID) (vertexID, edgeID) {
	for _, e := range m.vertices[u].edges {
		record := &m.edges[e]
		if record.v[0] == u && record.left != none && record.right == none {
			return record.v[1], e
		}
		if record.v[1] == u && record.right != none && record.left == none {
			return record.v[0], e
		}
	}
	return none, none
}

// Boundary edge arriving at u with the mesh on its left.
func (m *Mesh) boundaryIn(u vertexID) (vertexID, edgeID) {
	for _, e := range m.vertices[u].edges {
		record := &m.edges[e]
		if record.v[1] == u && record.left != none && record.right == none {
			return record.v[0], e
		}
		if record.v[0] == u && record.right != none && record.left == none {
			return record.v[1], e
		}
	}
	return none, none
}
