package internal

import (
	"fmt"
	"strings"

	"github.com/logrusorgru/aurora"
	"github.com/osuushi/cdt/internal/dbg"
)

// Readable name for debug output. Triangles touching a constrained edge are
// cyan, triangles on the mesh boundary are red, everything else is green.
func (t Triangle) DbgName() string {
	name := dbg.Name(t)
	if !t.Valid() {
		return name
	}
	constrained, boundary := false, false
	for _, e := range t.Edges() {
		constrained = constrained || e.IsConstrained()
		boundary = boundary || e.IsBoundary()
	}
	switch {
	case constrained:
		return aurora.Cyan(name).String()
	case boundary:
		return aurora.Red(name).String()
	}
	return aurora.Green(name).String()
}

func (v Vertex) DbgName() string {
	return aurora.Yellow(dbg.Name(v)).String()
}

// Multi-line dump of every triangle with its neighbors, for debugging.
func (m *Mesh) dbgDump() string {
	var lines []string
	for _, t := range m.Triangles() {
		var neighbors []string
		for i := 0; i < 3; i++ {
			neighbor, _ := t.Neighbor(i)
			neighbors = append(neighbors, dbg.Name(neighbor))
		}
		var vertices []string
		for _, v := range t.Vertices() {
			vertices = append(vertices, v.DbgName())
		}
		lines = append(lines, fmt.Sprintf("%s %s [%s] <%s>",
			t.DbgName(), t, strings.Join(vertices, " "), strings.Join(neighbors, ", ")))
	}
	return strings.Join(lines, "\n")
}
