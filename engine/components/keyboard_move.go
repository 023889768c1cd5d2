package components

import (
	"github.com/spaghettifunk/wood/engine/input"
	"github.com/spaghettifunk/wood/engine/math"
)

const (
	keyboardMoveDefaultSpeed float32 = 5
	// fraction of the remaining velocity change applied each frame
	keyboardMoveSmoothing float32 = 0.1
)

// KeyboardMove moves the entity in the XY plane with the horizontal and
// vertical input axes, easing in and out of motion. The position is kept
// inside half the viewport size around the origin.
type KeyboardMove struct {
	Base

	Speed float32

	input    Input
	viewport Viewport
	velocity math.Vec
}

// NewKeyboardMove creates the component. viewport may be nil to move without bounds.
func NewKeyboardMove(in Input, viewport Viewport) *KeyboardMove {
	return &KeyboardMove{
		Speed:    keyboardMoveDefaultSpeed,
		input:    in,
		viewport: viewport,
		velocity: math.MustVec(0, 0),
	}
}

// Velocity is the current velocity in pixels per millisecond.
func (k *KeyboardMove) Velocity() math.Vec2 {
	return math.NewVec2(k.velocity.At(0), k.velocity.At(1))
}

func (k *KeyboardMove) Update(deltaTime float64, projection, view math.Mat4) error {
	// screen space grows downwards, "up" on the vertical axis is -y
	direction, err := math.NewVec(k.input.Axis(input.AxisHorizontal), -k.input.Axis(input.AxisVertical))
	if err != nil {
		return err
	}
	target := direction.Normalize().Scale(k.Speed / 10)

	k.velocity, err = k.velocity.Lerp(target, keyboardMoveSmoothing)
	if err != nil {
		return err
	}

	t := k.entity.Transform
	step := math.NewVec3(k.velocity.At(0), k.velocity.At(1), 0).MulScalar(float32(deltaTime))
	position := t.Position.Add(step)

	if k.viewport != nil {
		w, h := k.viewport.Size()
		half := math.NewVec2(float32(w), float32(h)).MulScalar(0.5)
		position = position.Clamp(
			math.NewVec3(-half.X, -half.Y, position.Z),
			math.NewVec3(half.X, half.Y, position.Z),
		)
	}
	t.Position = position
	return nil
}
