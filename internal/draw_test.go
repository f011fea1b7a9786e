package internal

import (
	"bytes"
	"image/png"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDrawPNG(t *testing.T) {
	m := triangulateUnrefined(SquareWithHole())
	var buf bytes.Buffer
	require.NoError(t, m.DrawPNG(&buf, 10))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	bounds := img.Bounds()
	assert.Equal(t, 10*10+dbgDrawPadding*2, bounds.Dx())
	assert.Equal(t, 10*10+dbgDrawPadding*2, bounds.Dy())

	// The hole is left unpainted
	r, g, b, _ := img.At(bounds.Dx()/2, bounds.Dy()/2).RGBA()
	assert.Zero(t, r+g+b)
	// The mesh is not
	r, g, b, _ = img.At(dbgDrawPadding+10, bounds.Dy()/2).RGBA()
	assert.NotZero(t, r+g+b)
}

func TestDraw_Empty(t *testing.T) {
	c := NewMesh().Draw(1, false)
	assert.Equal(t, dbgDrawPadding*2, c.Width())
}

// Set MESH_DRAW to see the fixtures in an iTerm compatible terminal.
func TestDbgDraw(t *testing.T) {
	if os.Getenv("MESH_DRAW") == "" {
		t.Skip("MESH_DRAW not set")
	}
	params := DefaultParameters()
	params.MinB = 0.9
	mesh, err := Triangulate(StarOutline(), params, 1)
	if err != nil {
		require.ErrorIs(t, err, ErrQualityNotReached)
	}
	mesh.dbgDraw(30)
	t.Log("\n" + mesh.dbgDump())
}
