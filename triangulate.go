// Constrained Delaunay triangulation and quality mesh refinement for Go.
//
// This package converts a region made of polygons, which may be non-convex,
// may be disjoint, and may contain holes, into a triangle mesh which honors
// every polygon edge, is Delaunay everywhere else, and can be refined until
// every triangle meets bounds on area and shape.
//
// Most callers only need Triangulate. The Mesh type gives access to the
// incremental operations (point insertion, constraints, vertex removal and
// queries) for building meshes step by step.
package cdt

import "github.com/osuushi/cdt/internal"

type Point = internal.Point
type Contour = internal.Contour
type Polygon = internal.Polygon
type Region = internal.Region

type Mesh = internal.Mesh
type Vertex = internal.Vertex
type Edge = internal.Edge
type Triangle = internal.Triangle
type Stats = internal.Stats
type Option = internal.Option

type Parameters = internal.Parameters

type ProximityQuery = internal.ProximityQuery
type MeshWalkQuery = internal.MeshWalkQuery
type BruteForceQuery = internal.BruteForceQuery

type TriangulateError = internal.TriangulateError

// Vertices closer than this in both coordinates are the same vertex.
const Tolerance = internal.Tolerance

var (
	ErrQualityNotReached = internal.ErrQualityNotReached

	NewMesh           = internal.NewMesh
	WithLogger        = internal.WithLogger
	DefaultParameters = internal.DefaultParameters
	LoadParameters    = internal.LoadParameters
	LoadSVGRegion     = internal.LoadSVGRegion
)

// Triangulate a region and refine it to params.
//
// Coordinates are multiplied by scale before meshing, and the lengths and
// areas in params are interpreted in the same unscaled units. A scale of zero
// or less means 1.
//
// If refinement runs out of iterations, the mesh is returned along with an
// error wrapping ErrQualityNotReached. Any other error means no mesh could be
// built.
func Triangulate(region Region, params Parameters, scale float64, opts ...Option) (mesh *Mesh, err error) {
	defer func() {
		recoveredErr := internal.HandleTriangulatePanicRecover(recover())
		if recoveredErr != nil {
			mesh = nil
			err = recoveredErr
		}
	}()
	return internal.Triangulate(region, params, scale, opts...)
}

// Build the constrained Delaunay triangulation of a region without removing
// outside triangles or refining.
func CreateConstrainedDelaunay(region Region, opts ...Option) (mesh *Mesh, err error) {
	defer func() {
		recoveredErr := internal.HandleTriangulatePanicRecover(recover())
		if recoveredErr != nil {
			mesh = nil
			err = recoveredErr
		}
	}()
	return internal.CreateConstrainedDelaunay(region, opts...), nil
}

// Run fn, converting a TriangulateError panic from mesh operations inside it
// into an error. Mesh methods panic on misuse, such as stale handles or points
// outside a trimmed mesh.
func Guard(fn func()) (err error) {
	defer func() {
		err = internal.HandleTriangulatePanicRecover(recover())
	}()
	fn()
	return nil
}
