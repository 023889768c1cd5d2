package math

import (
	"fmt"

	"github.com/spaghettifunk/wood/engine/core"
)

// Vec is a 2 or 3 component vector whose dimension is only known at runtime.
// Binary operations between vectors of different dimensions fail with
// core.ErrDimensionMismatch.
type Vec struct {
	c []float32
}

// NewVec builds a vector from 2 or 3 components.
func NewVec(components ...float32) (Vec, error) {
	if len(components) != 2 && len(components) != 3 {
		return Vec{}, fmt.Errorf("vector needs 2 or 3 components, got %d: %w", len(components), core.ErrConstruction)
	}
	c := make([]float32, len(components))
	copy(c, components)
	return Vec{c: c}, nil
}

// MustVec is NewVec that panics on a malformed input.
func MustVec(components ...float32) Vec {
	v, err := NewVec(components...)
	if err != nil {
		panic(err)
	}
	return v
}

func VecFromVec3(v Vec3) Vec {
	return Vec{c: []float32{v.X, v.Y, v.Z}}
}

// Dim returns the number of components.
func (v Vec) Dim() int {
	return len(v.c)
}

// At returns the i-th component.
func (v Vec) At(i int) float32 {
	return v.c[i]
}

// Components returns a copy of the components.
func (v Vec) Components() []float32 {
	out := make([]float32, len(v.c))
	copy(out, v.c)
	return out
}

// Vec3 widens or returns v as a Vec3; a 2D vector gets z = 0.
func (v Vec) Vec3() Vec3 {
	out := Vec3{X: v.c[0], Y: v.c[1]}
	if len(v.c) == 3 {
		out.Z = v.c[2]
	}
	return out
}

func (v Vec) check(op string, other Vec) error {
	if len(v.c) != len(other.c) {
		return fmt.Errorf("%s between %dD and %dD vectors: %w", op, len(v.c), len(other.c), core.ErrDimensionMismatch)
	}
	return nil
}

func (v Vec) zip(other Vec, f func(a, b float32) float32) Vec {
	out := make([]float32, len(v.c))
	for i := range v.c {
		out[i] = f(v.c[i], other.c[i])
	}
	return Vec{c: out}
}

func (v Vec) Add(other Vec) (Vec, error) {
	if err := v.check("add", other); err != nil {
		return Vec{}, err
	}
	return v.zip(other, func(a, b float32) float32 { return a + b }), nil
}

func (v Vec) Sub(other Vec) (Vec, error) {
	if err := v.check("subtract", other); err != nil {
		return Vec{}, err
	}
	return v.zip(other, func(a, b float32) float32 { return a - b }), nil
}

// Mul multiplies elementwise.
func (v Vec) Mul(other Vec) (Vec, error) {
	if err := v.check("multiply", other); err != nil {
		return Vec{}, err
	}
	return v.zip(other, func(a, b float32) float32 { return a * b }), nil
}

func (v Vec) Scale(scalar float32) Vec {
	out := make([]float32, len(v.c))
	for i := range v.c {
		out[i] = v.c[i] * scalar
	}
	return Vec{c: out}
}

// Cross is only defined for two 3D vectors.
func (v Vec) Cross(other Vec) (Vec, error) {
	if len(v.c) != 3 || len(other.c) != 3 {
		return Vec{}, fmt.Errorf("cross product of %dD and %dD vectors: %w", len(v.c), len(other.c), core.ErrDimensionMismatch)
	}
	return VecFromVec3(v.Vec3().Cross(other.Vec3())), nil
}

func (v Vec) Dot(other Vec) (float32, error) {
	if err := v.check("dot", other); err != nil {
		return 0, err
	}
	sum := float32(0)
	for i := range v.c {
		sum += v.c[i] * other.c[i]
	}
	return sum, nil
}

func (v Vec) Magnitude() float32 {
	sum := float32(0)
	for _, x := range v.c {
		sum += x * x
	}
	return ksqrt(sum)
}

// Normalize returns a unit vector, or the zero vector when the magnitude is below K_NORMALIZE_EPSILON.
func (v Vec) Normalize() Vec {
	mag := v.Magnitude()
	if mag < K_NORMALIZE_EPSILON {
		return Vec{c: make([]float32, len(v.c))}
	}
	return v.Scale(1 / mag)
}

// Clamp bounds every component between the matching components of min and max.
func (v Vec) Clamp(min, max Vec) (Vec, error) {
	if err := v.check("clamp", min); err != nil {
		return Vec{}, err
	}
	if err := v.check("clamp", max); err != nil {
		return Vec{}, err
	}
	out := make([]float32, len(v.c))
	for i := range v.c {
		out[i] = Clamp(v.c[i], min.c[i], max.c[i])
	}
	return Vec{c: out}, nil
}

// Clamp01 bounds every component to [0, 1].
func (v Vec) Clamp01() Vec {
	out := make([]float32, len(v.c))
	for i := range v.c {
		out[i] = Clamp(v.c[i], 0, 1)
	}
	return Vec{c: out}
}

// Lerp interpolates every component with the scalar Lerp, so t outside [0, 1]
// fails with core.ErrOutOfRange.
func (v Vec) Lerp(target Vec, t float32, easing ...Easing) (Vec, error) {
	if err := v.check("lerp", target); err != nil {
		return Vec{}, err
	}
	out := make([]float32, len(v.c))
	for i := range v.c {
		x, err := Lerp(v.c[i], target.c[i], t, easing...)
		if err != nil {
			return Vec{}, err
		}
		out[i] = x
	}
	return Vec{c: out}, nil
}

// Equal reports whether both vectors have the same dimension and components within tolerance.
func (v Vec) Equal(other Vec, tolerance float32) bool {
	if len(v.c) != len(other.c) {
		return false
	}
	for i := range v.c {
		if kabs(v.c[i]-other.c[i]) > tolerance {
			return false
		}
	}
	return true
}

func (v Vec) String() string {
	return fmt.Sprintf("Vec%v", v.c)
}
