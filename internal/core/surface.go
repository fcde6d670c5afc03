package core

import "github.com/vovakirdan/tui-breakout/internal/vec"

// Region is an area of the surface in arena (pixel) units.
type Region struct {
	X, Y, W, H float64
}

// Font describes how text lines are laid out.
type Font struct {
	Family     string
	Size       float64 // Glyph height in arena units
	LineHeight float64 // Distance between baselines; 0 means Size
}

// DefaultFont matches the HUD labels of the arena.
var DefaultFont = Font{Family: "helvetica", Size: 12}

// Surface is the drawing target bodies render onto.
// Coordinates are arena units; implementations map them to cells or pixels.
type Surface interface {
	Width() float64
	Height() float64
	Clear(r Region)
	DrawCircle(center vec.Vector, radius float64, fill, border Color)
	DrawRect(origin vec.Vector, width, height float64, fill, border Color)
	DrawText(origin vec.Vector, lines []string, font Font, fill Color)
}

// FullRegion returns the region covering the whole surface.
func FullRegion(s Surface) Region {
	return Region{W: s.Width(), H: s.Height()}
}
