package internal

import (
	"go.uber.org/zap"
)

// Build a constrained Delaunay triangulation of a region. The mesh is seeded
// with the region's bounding box, every contour point is inserted, and every
// contour becomes a loop of constrained edges. Outside triangles are kept; call
// RemoveOutsideTriangles to drop them.
//
// Consecutive duplicate points are collapsed. A region with no area at all is
// triangulated from its points alone.
func CreateConstrainedDelaunay(region Region, opts ...Option) *Mesh {
	m := NewMesh(opts...)
	bound := region.Bound()
	if !bound.IsEmpty() && bound.X.Length() > 0 && bound.Y.Length() > 0 {
		m.InitBox(bound)
	}

	var loops [][]Vertex
	for _, contour := range region.Contours() {
		loop := make([]Vertex, 0, len(contour))
		for _, p := range contour {
			v := m.InsertPoint(p)
			if len(loop) > 0 && loop[len(loop)-1] == v {
				continue
			}
			loop = append(loop, v)
		}
		for len(loop) > 1 && loop[len(loop)-1] == loop[0] {
			loop = loop[:len(loop)-1]
		}
		loops = append(loops, loop)
	}
	m.logger.Debug("[build] inserted contour points",
		zap.Int("contours", len(loops)), zap.Int("vertices", m.numVertices))

	if m.numTriangles > 0 {
		m.Constrain(loops)
	}
	return m
}

// The full pipeline: scale the region, build the constrained Delaunay mesh,
// drop the outside, then refine to params. Parameters are given in the same
// units as the region and are scaled along with it. A scale of zero or less
// means 1.
//
// On ErrQualityNotReached the mesh is returned along with the error.
func Triangulate(region Region, params Parameters, scale float64, opts ...Option) (*Mesh, error) {
	if scale <= 0 {
		scale = 1
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	m := CreateConstrainedDelaunay(region.Scaled(scale), opts...)
	m.RemoveOutsideTriangles()
	err := m.Refine(params.Scaled(scale))
	// Refinement only inserts inside the region, so this should find nothing.
	if removed := m.RemoveOutsideTriangles(); removed > 0 {
		m.logger.Warn("[build] refinement left triangles outside the region", zap.Int("removed", removed))
	}
	return m, err
}
