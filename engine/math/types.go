package math

// Vec2 represents a 2D vector
type Vec2 struct {
	X, Y float32
}

// Vec3 represents a 3D vector
type Vec3 struct {
	X, Y, Z float32
}

// Vec4 represents a 4D vector
type Vec4 struct {
	X, Y, Z, W float32
}

/**
 * @brief A 4x4 matrix stored in column-major order, the layout expected
 * by the rendering backend. Element (row r, column c) lives at Data[c*4+r],
 * which places the translation in Data[12], Data[13] and Data[14].
 * A Mat4 is a value: every operation returns a new matrix.
 */
type Mat4 struct {
	/** @brief The matrix elements */
	Data [16]float32
}

/**
 * @brief A 3x3 matrix stored in column-major order, used for 2D affine
 * transforms. The translation lives in Data[6] and Data[7].
 */
type Mat3 struct {
	/** @brief The matrix elements */
	Data [9]float32
}

/**
 * @brief Represents the transform of an object in the world.
 * Position, rotation (Euler angles in radians) and scale are plain
 * fields; the mutators on Transform are additive.
 */
type Transform struct {
	/** @brief The position in the world. */
	Position Vec3
	/** @brief The rotation in the world, in radians around each axis. */
	Rotation Vec3
	/** @brief The scale in the world. */
	Scale Vec3
}
