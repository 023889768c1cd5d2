package math

/**
 * @brief Creates a transform at the origin with unit scale and no rotation.
 */
func TransformCreate() *Transform {
	return TransformFromPositionRotationScale(NewVec3Zero(), NewVec3Zero(), NewVec3One())
}

func TransformFromPosition(position Vec3) *Transform {
	return TransformFromPositionRotationScale(position, NewVec3Zero(), NewVec3One())
}

func TransformFromPositionRotationScale(position, rotation, scale Vec3) *Transform {
	return &Transform{
		Position: position,
		Rotation: rotation,
		Scale:    scale,
	}
}

// Translate adds translation to the position.
func (t *Transform) Translate(translation Vec3) {
	t.Position = t.Position.Add(translation)
}

// ScaleBy adds delta to the scale.
func (t *Transform) ScaleBy(delta Vec3) {
	t.Scale = t.Scale.Add(delta)
}

// Rotate adds the Euler angles in radians to the rotation.
func (t *Transform) Rotate(radians Vec3) {
	t.Rotation = t.Rotation.Add(radians)
}

/**
 * @brief Returns the local-to-world matrix: translation, then rotation
 * around z, y and x, then scale. A nil transform yields identity.
 */
func (t *Transform) Local() Mat4 {
	if t == nil {
		return NewMat4Identity()
	}
	return NewMat4Translation(t.Position).
		RotateZ(t.Rotation.Z).
		RotateY(t.Rotation.Y).
		RotateX(t.Rotation.X).
		Scale(t.Scale)
}
