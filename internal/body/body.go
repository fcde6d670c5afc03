// Package body defines the entities the scheduler draws and moves each tick.
//
// Bodies declare their capabilities by implementing Drawable and Movable. The
// scheduler dispatches through those interfaces only.
package body

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-breakout/internal/core"
	"github.com/vovakirdan/tui-breakout/internal/vec"
)

// Body is anything that can live in the scheduler's active set.
type Body interface {
	// PendingRemoval reports whether the body leaves the active set at the end
	// of the current tick.
	PendingRemoval() bool
	// MarkForRemoval flags the body for removal.
	MarkForRemoval()
}

// Drawable bodies render themselves onto a surface.
type Drawable interface {
	Draw(s core.Surface)
}

// Movable bodies advance their state by delta seconds.
type Movable interface {
	Move(delta float64)
}

// Behavior is a per-tick movement routine attached to a body.
type Behavior func(delta float64)

// Base holds the state shared by every body.
type Base struct {
	Position vec.Vector
	Velocity vec.Vector
	Fill     core.Color
	Border   core.Color

	pendingRemoval bool
}

// PendingRemoval implements Body.
func (b *Base) PendingRemoval() bool { return b.pendingRemoval }

// MarkForRemoval implements Body.
func (b *Base) MarkForRemoval() { b.pendingRemoval = true }

// SetColors sets fill and border colors.
func (b *Base) SetColors(fill, border core.Color) {
	b.Fill = fill
	b.Border = border
}

// GoingUp reports upward motion (negative y velocity).
func (b *Base) GoingUp() bool { return b.Velocity.Y() < 0 }

// GoingDown reports downward motion.
func (b *Base) GoingDown() bool { return b.Velocity.Y() > 0 }

// GoingLeft reports leftward motion.
func (b *Base) GoingLeft() bool { return b.Velocity.X() < 0 }

// GoingRight reports rightward motion.
func (b *Base) GoingRight() bool { return b.Velocity.X() > 0 }

// Moving reports whether the body has any horizontal motion.
func (b *Base) Moving() bool { return b.GoingLeft() || b.GoingRight() }

// Integrate advances the position by velocity*delta.
func (b *Base) Integrate(delta float64) {
	step := b.Velocity.Copy()
	b.Position.Add(*step.Scale(delta))
}

// motion is embedded by bodies that accept a movement behavior.
type motion struct {
	behavior Behavior
}

// SetBehavior attaches the routine run on every Move. Nil detaches it.
func (m *motion) SetBehavior(fn Behavior) { m.behavior = fn }

// Move runs the attached behavior, if any.
func (m *motion) Move(delta float64) {
	if m.behavior != nil {
		m.behavior(delta)
	}
}

func checkSize(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("body: %s: %w", name, &vec.NumberError{Axis: name, Value: v})
	}
	if v < 0 {
		return fmt.Errorf("body: %s must not be negative: %v", name, v)
	}
	return nil
}
