package render

import (
	"fmt"
	"os"

	"github.com/golang/freetype/truetype"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// PNGSurface draws onto a go-chart raster renderer and writes a PNG page on
// Close. It satisfies Surface.
type PNGSurface struct {
	file     *os.File
	renderer chart.Renderer
	font     *truetype.Font
	ox, oy   float64
	closed   bool
}

// NewPNGSurface creates the output file and a raster page of the given size.
// An unwritable path fails here, before any drawing happens.
func NewPNGSurface(path string, width, height float64) (*PNGSurface, error) {
	font, err := chart.GetDefaultFont()
	if err != nil {
		return nil, fmt.Errorf("failed to load default font: %w", err)
	}

	renderer, err := chart.PNG(int(width), int(height))
	if err != nil {
		return nil, fmt.Errorf("failed to create raster renderer: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file '%s': %w", path, err)
	}

	s := &PNGSurface{file: file, renderer: renderer, font: font}
	s.fillRectAbs(0, 0, width, height, drawing.ColorWhite)
	return s, nil
}

// MeasureText returns the rendered extents of text at the given font size.
func (s *PNGSurface) MeasureText(text string, fontSize float64) Extents {
	s.renderer.SetFont(s.font)
	s.renderer.SetFontSize(fontSize)
	box := s.renderer.MeasureText(text)
	return Extents{Width: float64(box.Width()), Height: float64(box.Height())}
}

// DrawText draws text with its baseline at y.
func (s *PNGSurface) DrawText(text string, x, y, fontSize float64, color drawing.Color) {
	s.renderer.SetFont(s.font)
	s.renderer.SetFontSize(fontSize)
	s.renderer.SetFontColor(color)
	s.renderer.Text(text, int(x+s.ox), int(y+s.oy))
}

// FillRect fills an axis-aligned rectangle.
func (s *PNGSurface) FillRect(x, y, width, height float64, color drawing.Color) {
	s.fillRectAbs(x+s.ox, y+s.oy, width, height, color)
}

func (s *PNGSurface) fillRectAbs(x, y, width, height float64, color drawing.Color) {
	s.renderer.SetFillColor(color)
	s.renderer.MoveTo(int(x), int(y))
	s.renderer.LineTo(int(x+width), int(y))
	s.renderer.LineTo(int(x+width), int(y+height))
	s.renderer.LineTo(int(x), int(y+height))
	s.renderer.Close()
	s.renderer.Fill()
}

// Translate shifts the origin for all subsequent drawing.
func (s *PNGSurface) Translate(dx, dy float64) {
	s.ox += dx
	s.oy += dy
}

// Close encodes the page into the output file and releases it. Safe to call
// more than once; only the first call writes.
func (s *PNGSurface) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	saveErr := s.renderer.Save(s.file)
	closeErr := s.file.Close()
	if saveErr != nil {
		return fmt.Errorf("failed to write page: %w", saveErr)
	}
	if closeErr != nil {
		return fmt.Errorf("failed to close output file: %w", closeErr)
	}
	return nil
}
