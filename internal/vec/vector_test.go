package vec

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRejectsNonFinite(t *testing.T) {
	tests := []struct {
		name string
		x, y float64
	}{
		{"nan x", math.NaN(), 0},
		{"nan y", 0, math.NaN()},
		{"inf x", math.Inf(1), 0},
		{"neg inf y", 0, math.Inf(-1)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(tc.x, tc.y)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidNumber))
		})
	}
}

func TestSetKeepsPreviousValueOnError(t *testing.T) {
	v := MustNew(3, 4)

	err := v.SetX(math.NaN())
	require.ErrorIs(t, err, ErrInvalidNumber)
	assert.Equal(t, 3.0, v.X())

	var numErr *NumberError
	require.ErrorAs(t, v.SetY(math.Inf(1)), &numErr)
	assert.Equal(t, "y", numErr.Axis)
	assert.Equal(t, 4.0, v.Y())
}

func TestArithmeticChains(t *testing.T) {
	v := MustNew(1, 2)
	v.Add(MustNew(2, 3)).Sub(MustNew(1, 1)).Mul(MustNew(2, -1))

	assert.Equal(t, 4.0, v.X())
	assert.Equal(t, -4.0, v.Y())

	v.InvertX().InvertY()
	assert.Equal(t, -4.0, v.X())
	assert.Equal(t, 4.0, v.Y())

	v.Scale(0.5)
	assert.Equal(t, -2.0, v.X())
	assert.Equal(t, 2.0, v.Y())
}

func TestCopyIsIndependent(t *testing.T) {
	v := MustNew(5, 6)
	c := v.Copy()
	c.Add(MustNew(1, 1))

	assert.Equal(t, 5.0, v.X())
	assert.Equal(t, 6.0, c.X())
	assert.Equal(t, 6.0, v.Y())
}

func TestDistanceTo(t *testing.T) {
	a := MustNew(0, 0)
	assert.InDelta(t, 5.0, a.DistanceTo(MustNew(3, 4)), 1e-9)
	assert.InDelta(t, 0.0, a.DistanceTo(Zero()), 1e-9)
}

func TestOverflowPanics(t *testing.T) {
	v := MustNew(math.MaxFloat64, 0)
	assert.Panics(t, func() {
		v.Scale(10)
	})
}
