package render

import "github.com/wcharczuk/go-chart/v2/drawing"

// PortColors assigns a color per TCP port, with a shared default for ports
// without an explicit assignment.
type PortColors struct {
	Assigned map[uint16]drawing.Color
	Default  drawing.Color
}

// ForPort returns the color for port, falling back to the default.
func (c PortColors) ForPort(port uint16) drawing.Color {
	if col, ok := c.Assigned[port]; ok {
		return col
	}
	return c.Default
}

// DefaultPortColors builds the standard palette: HTTP blue, HTTPS green,
// everything else a neutral gray.
func DefaultPortColors() PortColors {
	return PortColors{
		Assigned: map[uint16]drawing.Color{
			80:  {R: 18, G: 112, B: 222, A: 255},
			443: {R: 64, G: 201, B: 102, A: 255},
		},
		Default: drawing.Color{R: 171, G: 171, B: 171, A: 255},
	}
}
