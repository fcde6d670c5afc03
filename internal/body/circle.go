package body

import (
	"github.com/vovakirdan/tui-breakout/internal/core"
	"github.com/vovakirdan/tui-breakout/internal/vec"
)

// Circle is a round body positioned by its center. The ball is a Circle.
type Circle struct {
	Base
	motion

	radius float64
}

// NewCircle creates a circle. The radius must be finite and non-negative.
func NewCircle(position, velocity vec.Vector, radius float64) (*Circle, error) {
	c := &Circle{Base: Base{Position: position, Velocity: velocity}}
	if err := c.SetRadius(radius); err != nil {
		return nil, err
	}
	return c, nil
}

// Radius returns the circle radius.
func (c *Circle) Radius() float64 { return c.radius }

// SetRadius changes the radius, keeping the previous value on error.
func (c *Circle) SetRadius(r float64) error {
	if err := checkSize("radius", r); err != nil {
		return err
	}
	c.radius = r
	return nil
}

// Top returns the y of the topmost point.
func (c *Circle) Top() float64 { return c.Position.Y() - c.radius }

// Bottom returns the y of the lowest point.
func (c *Circle) Bottom() float64 { return c.Position.Y() + c.radius }

// Left returns the x of the leftmost point.
func (c *Circle) Left() float64 { return c.Position.X() - c.radius }

// Right returns the x of the rightmost point.
func (c *Circle) Right() float64 { return c.Position.X() + c.radius }

// Draw implements Drawable.
func (c *Circle) Draw(s core.Surface) {
	s.DrawCircle(c.Position, c.radius, c.Fill, c.Border)
}

var (
	_ Body     = (*Circle)(nil)
	_ Drawable = (*Circle)(nil)
	_ Movable  = (*Circle)(nil)
)
