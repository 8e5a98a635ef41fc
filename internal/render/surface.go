// Package render separates the drawing capability from layout arithmetic.
// Layout code computes positions against the Surface interface; the concrete
// backend rasterizes them. Tests drive layout against a fake surface with
// deterministic text metrics.
package render

import "github.com/wcharczuk/go-chart/v2/drawing"

// Extents is the rendered size of a piece of text.
type Extents struct {
	Width  float64
	Height float64
}

// Bounds is a placement rectangle in page units.
type Bounds struct {
	X, Y          float64
	Width, Height float64
}

// Surface is the drawing capability consumed by the layout engine. All
// coordinates are in page units, relative to the current translation.
// Implementations own exactly one output artifact; Close writes and releases
// it and must be called on every exit path.
type Surface interface {
	MeasureText(text string, fontSize float64) Extents
	DrawText(text string, x, y, fontSize float64, color drawing.Color)
	FillRect(x, y, width, height float64, color drawing.Color)
	Translate(dx, dy float64)
	Close() error
}
