package render

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

func TestPNGSurfaceWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "page.png")
	s, err := NewPNGSurface(path, 200, 100)
	require.NoError(t, err)

	ext := s.MeasureText("hello", 8)
	assert.Greater(t, ext.Width, 0.0)
	assert.Greater(t, ext.Height, 0.0)

	s.DrawText("hello", 10, 20, 8, drawing.ColorBlack)
	s.FillRect(0, 50, 100, 10, drawing.Color{R: 171, G: 171, B: 171, A: 255})
	s.Translate(5, 5)
	s.DrawText("shifted", 0, 0, 8, drawing.ColorBlack)

	require.NoError(t, s.Close())

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestPNGSurfaceCloseIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "page.png")
	s, err := NewPNGSurface(path, 50, 50)
	require.NoError(t, err)
	require.NoError(t, s.Close())
	require.NoError(t, s.Close())
}

func TestNewPNGSurfaceUnwritablePath(t *testing.T) {
	_, err := NewPNGSurface(filepath.Join(t.TempDir(), "missing", "page.png"), 50, 50)
	assert.Error(t, err)
}

func TestPortColorsFallback(t *testing.T) {
	colors := DefaultPortColors()
	assert.Equal(t, colors.Assigned[80], colors.ForPort(80))
	assert.Equal(t, colors.Assigned[443], colors.ForPort(443))
	assert.Equal(t, colors.Default, colors.ForPort(8080))
}
