package body

import (
	"github.com/vovakirdan/tui-breakout/internal/core"
	"github.com/vovakirdan/tui-breakout/internal/vec"
)

// Rectangle is an axis-aligned box positioned by its top-left corner.
// Paddles and bricks are rectangles.
type Rectangle struct {
	Base
	motion

	width  float64
	height float64
}

// NewRectangle creates a rectangle. Sizes must be finite and non-negative.
func NewRectangle(position, velocity vec.Vector, width, height float64) (*Rectangle, error) {
	r := &Rectangle{Base: Base{Position: position, Velocity: velocity}}
	if err := r.SetSize(width, height); err != nil {
		return nil, err
	}
	return r, nil
}

// Width returns the rectangle width.
func (r *Rectangle) Width() float64 { return r.width }

// Height returns the rectangle height.
func (r *Rectangle) Height() float64 { return r.height }

// SetSize changes both dimensions. Nothing changes when either is invalid.
func (r *Rectangle) SetSize(width, height float64) error {
	if err := checkSize("width", width); err != nil {
		return err
	}
	if err := checkSize("height", height); err != nil {
		return err
	}
	r.width, r.height = width, height
	return nil
}

// Top returns the y of the top edge.
func (r *Rectangle) Top() float64 { return r.Position.Y() }

// Bottom returns the y of the bottom edge.
func (r *Rectangle) Bottom() float64 { return r.Position.Y() + r.height }

// Left returns the x of the left edge.
func (r *Rectangle) Left() float64 { return r.Position.X() }

// Right returns the x of the right edge.
func (r *Rectangle) Right() float64 { return r.Position.X() + r.width }

// Draw implements Drawable.
func (r *Rectangle) Draw(s core.Surface) {
	s.DrawRect(r.Position, r.width, r.height, r.Fill, r.Border)
}

var (
	_ Body     = (*Rectangle)(nil)
	_ Drawable = (*Rectangle)(nil)
	_ Movable  = (*Rectangle)(nil)
)
