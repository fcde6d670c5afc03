// Package vec provides the 2D vector type used for body positions and velocities.
// Components are always finite; assignments that would break this fail at the
// point of assignment instead of letting NaN leak into the simulation.
package vec

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidNumber is returned when a component would become NaN or infinite.
var ErrInvalidNumber = errors.New("vec: invalid number")

// NumberError describes a rejected component assignment.
type NumberError struct {
	Axis  string
	Value float64
}

func (e *NumberError) Error() string {
	return fmt.Sprintf("vec: %s is not a finite number: %v", e.Axis, e.Value)
}

// Unwrap lets errors.Is match ErrInvalidNumber.
func (e *NumberError) Unwrap() error {
	return ErrInvalidNumber
}

// Vector is a mutable 2D vector. Operations mutate the receiver and return it
// so calls can be chained; only Copy allocates a new value.
type Vector struct {
	x, y float64
}

// New creates a vector, rejecting non-finite components.
func New(x, y float64) (Vector, error) {
	var v Vector
	if err := v.SetX(x); err != nil {
		return Vector{}, err
	}
	if err := v.SetY(y); err != nil {
		return Vector{}, err
	}
	return v, nil
}

// MustNew is like New but panics on invalid input.
// Intended for constants and configuration that has already been validated.
func MustNew(x, y float64) Vector {
	v, err := New(x, y)
	if err != nil {
		panic(err)
	}
	return v
}

// Zero returns the zero vector.
func Zero() Vector {
	return Vector{}
}

// X returns the horizontal component.
func (v *Vector) X() float64 { return v.x }

// Y returns the vertical component.
func (v *Vector) Y() float64 { return v.y }

// SetX assigns the horizontal component.
func (v *Vector) SetX(x float64) error {
	if !finite(x) {
		return &NumberError{Axis: "x", Value: x}
	}
	v.x = x
	return nil
}

// SetY assigns the vertical component.
func (v *Vector) SetY(y float64) error {
	if !finite(y) {
		return &NumberError{Axis: "y", Value: y}
	}
	v.y = y
	return nil
}

// Add adds o to v component-wise.
func (v *Vector) Add(o Vector) *Vector {
	return v.assign(v.x+o.x, v.y+o.y)
}

// Sub subtracts o from v component-wise.
func (v *Vector) Sub(o Vector) *Vector {
	return v.assign(v.x-o.x, v.y-o.y)
}

// Mul scales v component-wise by o.
func (v *Vector) Mul(o Vector) *Vector {
	return v.assign(v.x*o.x, v.y*o.y)
}

// Scale multiplies both components by s.
func (v *Vector) Scale(s float64) *Vector {
	return v.assign(v.x*s, v.y*s)
}

// InvertX negates the horizontal component.
func (v *Vector) InvertX() *Vector {
	v.x = -v.x
	return v
}

// InvertY negates the vertical component.
func (v *Vector) InvertY() *Vector {
	v.y = -v.y
	return v
}

// DistanceTo returns the Euclidean distance between v and o.
func (v *Vector) DistanceTo(o Vector) float64 {
	return math.Hypot(o.x-v.x, o.y-v.y)
}

// Copy returns an independent copy of v.
func (v *Vector) Copy() Vector {
	return Vector{x: v.x, y: v.y}
}

// String implements fmt.Stringer.
func (v Vector) String() string {
	return fmt.Sprintf("(%.3f, %.3f)", v.x, v.y)
}

// assign stores the result of an arithmetic operation.
// Finite inputs only overflow on absurd magnitudes, so a non-finite result is a
// programming error and panics rather than corrupting the body state.
func (v *Vector) assign(x, y float64) *Vector {
	if err := v.SetX(x); err != nil {
		panic(err)
	}
	if err := v.SetY(y); err != nil {
		panic(err)
	}
	return v
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
