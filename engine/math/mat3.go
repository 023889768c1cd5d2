package math

import (
	"fmt"

	"github.com/spaghettifunk/wood/engine/core"
)

// NewMat3 builds a 3x3 matrix from 9 column-major values.
func NewMat3(values []float32) (Mat3, error) {
	if len(values) != 9 {
		return Mat3{}, fmt.Errorf("mat3 needs 9 values, got %d: %w", len(values), core.ErrConstruction)
	}
	out := Mat3{}
	copy(out.Data[:], values)
	return out, nil
}

func NewMat3Identity() Mat3 {
	return Mat3{Data: [9]float32{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	}}
}

/**
 * @brief Maps pixel coordinates of a width x height surface to clip space,
 * with (0, 0) at the top left corner.
 */
func NewMat3Projection(width, height float32) Mat3 {
	return Mat3{Data: [9]float32{
		2 / width, 0, 0,
		0, -2 / height, 0,
		-1, 1, 1,
	}}
}

func NewMat3Translation(tx, ty float32) Mat3 {
	out := NewMat3Identity()
	out.Data[6] = tx
	out.Data[7] = ty
	return out
}

func NewMat3Rotation(angle_radians float32) Mat3 {
	c := kcos(angle_radians)
	s := ksin(angle_radians)
	return Mat3{Data: [9]float32{
		c, s, 0,
		-s, c, 0,
		0, 0, 1,
	}}
}

func NewMat3Scale(sx, sy float32) Mat3 {
	return Mat3{Data: [9]float32{
		sx, 0, 0,
		0, sy, 0,
		0, 0, 1,
	}}
}

// Mul returns mt ∘ other.
func (mt Mat3) Mul(other Mat3) Mat3 {
	out := Mat3{}
	for col := 0; col < 3; col++ {
		for row := 0; row < 3; row++ {
			sum := float32(0)
			for i := 0; i < 3; i++ {
				sum += mt.Data[i*3+row] * other.Data[col*3+i]
			}
			out.Data[col*3+row] = sum
		}
	}
	return out
}

func (mt Mat3) Translate(tx, ty float32) Mat3 {
	return mt.Mul(NewMat3Translation(tx, ty))
}

func (mt Mat3) Rotate(angle_radians float32) Mat3 {
	return mt.Mul(NewMat3Rotation(angle_radians))
}

func (mt Mat3) Scale(sx, sy float32) Mat3 {
	return mt.Mul(NewMat3Scale(sx, sy))
}

// MulVec2 transforms v as a point.
func (mt Mat3) MulVec2(v Vec2) Vec2 {
	d := mt.Data
	return Vec2{
		X: d[0]*v.X + d[3]*v.Y + d[6],
		Y: d[1]*v.X + d[4]*v.Y + d[7],
	}
}

func (mt Mat3) Compare(other Mat3, tolerance float32) bool {
	for i := range mt.Data {
		if kabs(mt.Data[i]-other.Data[i]) > tolerance {
			return false
		}
	}
	return true
}
