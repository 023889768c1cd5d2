package math

import (
	"testing"

	"github.com/spaghettifunk/wood/engine/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVec3Normalize(t *testing.T) {
	for _, v := range []Vec3{
		NewVec3(3, 4, 0),
		NewVec3(-1, 2, -3),
		NewVec3(0.001, 0, 0),
		NewVec3(1e6, 1e6, 1e6),
	} {
		assert.InDelta(t, 1, v.Normalize().Length(), tolerance, "%v", v)
	}

	assert.Equal(t, NewVec3Zero(), NewVec3Zero().Normalize())
	assert.Equal(t, NewVec3Zero(), NewVec3(1e-7, 0, -1e-7).Normalize())
	assert.Equal(t, NewVec2Zero(), NewVec2(1e-8, 1e-8).Normalize())
}

func TestVec3Operations(t *testing.T) {
	a := NewVec3(1, 2, 3)
	b := NewVec3(4, 5, 6)

	assert.Equal(t, NewVec3(5, 7, 9), a.Add(b))
	assert.Equal(t, NewVec3(-3, -3, -3), a.Sub(b))
	assert.Equal(t, NewVec3(4, 10, 18), a.Mul(b))
	assert.Equal(t, NewVec3(2, 4, 6), a.MulScalar(2))
	assert.Equal(t, float32(32), a.Dot(b))
	assert.Equal(t, NewVec3Forward(), NewVec3Right().Cross(NewVec3Up()))

	// operands are left untouched
	assert.Equal(t, NewVec3(1, 2, 3), a)
}

func TestVec3ClampAndLerp(t *testing.T) {
	v := NewVec3(-5, 0.5, 5)
	assert.Equal(t, NewVec3(-1, 0.5, 1), v.Clamp(NewVec3(-1, -1, -1), NewVec3One()))
	assert.Equal(t, NewVec3(0, 0.5, 1), v.Clamp01())

	a := NewVec3(0, 10, -4)
	b := NewVec3(10, 20, 4)
	assert.Equal(t, a, a.Lerp(b, 0))
	assert.Equal(t, b, a.Lerp(b, 1))
	assertVec3(t, NewVec3(5, 15, 0), a.Lerp(b, 0.5))
	// typed vectors extrapolate
	assertVec3(t, NewVec3(20, 30, 12), a.Lerp(b, 2))
}

func TestNamedVectorsAreFreshValues(t *testing.T) {
	up := NewVec3Up()
	up.Y = 42
	assert.Equal(t, NewVec3(0, 1, 0), NewVec3Up())
	assert.Equal(t, NewVec3(0, 0, 1), NewVec3Forward())
	assert.Equal(t, NewVec3(0, 0, -1), NewVec3Back())
	assert.Equal(t, NewVec3(0, -1, 0), NewVec3Down())
	assert.Equal(t, NewVec3(-1, 0, 0), NewVec3Left())
}

func TestDistance(t *testing.T) {
	assert.InDelta(t, 5.0, Vec2{X: 0, Y: 0}.Distance(Vec2{X: 3, Y: 4}), 1e-6)
	assert.InDelta(t, 3.0, NewVec3(1, 2, 3).Distance(NewVec3(3, 4, 4)), 1e-6)
	assert.Zero(t, NewVec3One().Distance(NewVec3One()))
}

func TestDegreesRadians(t *testing.T) {
	assert.InDelta(t, K_PI/2, DegToRad(90), 1e-6)
	assert.InDelta(t, 180.0, RadToDeg(K_PI), 1e-4)
	assert.InDelta(t, 37.5, RadToDeg(DegToRad(37.5)), 1e-4)
}

func TestNewVec(t *testing.T) {
	for _, n := range []int{0, 1, 4} {
		_, err := NewVec(make([]float32, n)...)
		assert.ErrorIs(t, err, core.ErrConstruction, "dimension %d", n)
	}

	v, err := NewVec(1, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, v.Dim())

	v, err = NewVec(1, 2, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, v.Dim())
	assert.Equal(t, []float32{1, 2, 3}, v.Components())

	assert.Panics(t, func() { MustVec(1) })
}

func TestVecDimensionMismatch(t *testing.T) {
	v2 := MustVec(1, 2)
	v3 := MustVec(1, 2, 3)

	_, err := v2.Add(v3)
	assert.ErrorIs(t, err, core.ErrDimensionMismatch)
	_, err = v3.Sub(v2)
	assert.ErrorIs(t, err, core.ErrDimensionMismatch)
	_, err = v2.Mul(v3)
	assert.ErrorIs(t, err, core.ErrDimensionMismatch)
	_, err = v2.Lerp(v3, 0.5)
	assert.ErrorIs(t, err, core.ErrDimensionMismatch)
	_, err = v3.Clamp(v2, v3)
	assert.ErrorIs(t, err, core.ErrDimensionMismatch)
	_, err = v2.Cross(v2)
	assert.ErrorIs(t, err, core.ErrDimensionMismatch)
	_, err = v3.Cross(v2)
	assert.ErrorIs(t, err, core.ErrDimensionMismatch)
}

func TestVecArithmetic(t *testing.T) {
	a := MustVec(1, 2, 3)
	b := MustVec(4, 5, 6)

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.True(t, sum.Equal(MustVec(5, 7, 9), 0))

	cross, err := MustVec(1, 0, 0).Cross(MustVec(0, 1, 0))
	require.NoError(t, err)
	assert.True(t, cross.Equal(MustVec(0, 0, 1), 0))

	assert.True(t, a.Scale(2).Equal(MustVec(2, 4, 6), 0))
	assert.InDelta(t, 5, MustVec(3, 4).Magnitude(), tolerance)
	assert.InDelta(t, 1, MustVec(3, 4).Normalize().Magnitude(), tolerance)
	assert.True(t, MustVec(1e-7, 0).Normalize().Equal(MustVec(0, 0), 0))

	clamped, err := MustVec(-2, 0.5, 9).Clamp(MustVec(0, 0, 0), MustVec(1, 1, 1))
	require.NoError(t, err)
	assert.True(t, clamped.Equal(MustVec(0, 0.5, 1), 0))
}

func TestVecLerp(t *testing.T) {
	a := MustVec(0, 10)
	b := MustVec(10, -10)

	start, err := a.Lerp(b, 0)
	require.NoError(t, err)
	assert.True(t, start.Equal(a, 0))

	end, err := a.Lerp(b, 1)
	require.NoError(t, err)
	assert.True(t, end.Equal(b, 0))

	_, err = a.Lerp(b, 1.5)
	assert.ErrorIs(t, err, core.ErrOutOfRange)
	_, err = a.Lerp(b, -0.1)
	assert.ErrorIs(t, err, core.ErrOutOfRange)
}
