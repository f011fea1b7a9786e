package internal

import (
	"io"
	"math"
	"os"

	"github.com/fogleman/gg"
	imgcat "github.com/martinlindhe/imgcat/lib"
	"github.com/osuushi/cdt/internal/dbg"
	"github.com/pkg/errors"
)

// Padding around the mesh, in pixels
const dbgDrawPadding = 20

// Rasterize the mesh. Triangles are shaded by quality, from red for slivers to
// green for equilateral triangles, and constrained edges are drawn thicker.
// scale is pixels per unit.
func (m *Mesh) Draw(scale float64, labels bool) *gg.Context {
	box := m.BoundingBox()
	if box.IsEmpty() {
		c := gg.NewContext(dbgDrawPadding*2, dbgDrawPadding*2)
		c.SetRGB(0, 0, 0)
		c.Clear()
		return c
	}

	width := int(scale*box.X.Length()) + dbgDrawPadding*2
	height := int(scale*box.Y.Length()) + dbgDrawPadding*2
	c := gg.NewContext(width, height)
	c.SetRGB(0, 0, 0)
	c.DrawRectangle(0, 0, float64(width), float64(height))
	c.Fill()

	// Flip the context so the origin is at the bottom left
	c.Translate(0, float64(height))
	c.Scale(1, -1)
	c.Translate(dbgDrawPadding, dbgDrawPadding)
	c.Scale(scale, scale)
	c.Translate(-box.X.Lo, -box.Y.Lo)

	for _, t := range m.Triangles() {
		points := t.Points()
		c.MoveTo(points[0].X, points[0].Y)
		c.LineTo(points[1].X, points[1].Y)
		c.LineTo(points[2].X, points[2].Y)
		c.ClosePath()
		// √3 is the best possible quality
		shade := math.Min(t.Quality()/math.Sqrt(3), 1)
		c.SetRGBA(1-shade, shade, 0.2, 0.6)
		c.Fill()
	}

	for _, e := range m.Edges() {
		a, b := e.V1().Point(), e.V2().Point()
		c.DrawLine(a.X, a.Y, b.X, b.Y)
		if e.IsConstrained() {
			c.SetRGB(0, 1, 1)
			c.SetLineWidth(3)
		} else {
			c.SetRGB(1, 1, 1)
			c.SetLineWidth(1)
		}
		c.Stroke()
	}

	if labels {
		for _, t := range m.Triangles() {
			center := t.Centroid()
			x, y := c.TransformPoint(center.X, center.Y)
			// Draw text unflipped
			c.Push()
			c.Identity()
			c.SetRGB(1, 1, 1)
			c.DrawStringAnchored(dbg.Name(t), x, y, 0.5, 0.5)
			c.Pop()
		}
	}
	return c
}

// Write the mesh as a PNG image.
func (m *Mesh) DrawPNG(w io.Writer, scale float64) error {
	return errors.Wrap(m.Draw(scale, false).EncodePNG(w), "encoding mesh image")
}

// Helper to draw the mesh and print it in the terminal (iTerm only) for
// debugging.
func (m *Mesh) dbgDraw(scale float64) {
	c := m.Draw(scale, true)
	c.SavePNG("/tmp/mesh.png")
	imgcat.CatFile("/tmp/mesh.png", os.Stdout)
}
