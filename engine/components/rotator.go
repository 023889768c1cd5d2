package components

import "github.com/spaghettifunk/wood/engine/math"

// Rotator spins the entity at a constant angular velocity, in radians per millisecond.
type Rotator struct {
	Base

	AngularVelocity math.Vec3
}

func NewRotator(angularVelocity math.Vec3) *Rotator {
	return &Rotator{AngularVelocity: angularVelocity}
}

func (r *Rotator) Update(deltaTime float64, projection, view math.Mat4) error {
	r.entity.Transform.Rotate(r.AngularVelocity.MulScalar(float32(deltaTime)))
	return nil
}
