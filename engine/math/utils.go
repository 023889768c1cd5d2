package math

import "golang.org/x/exp/constraints"

// Clamp bounds f to [low, high] for any ordered numeric type.
func Clamp[T constraints.Ordered](f, low, high T) T {
	if f < low {
		return low
	}
	if f > high {
		return high
	}
	return f
}

// Clamp01 bounds f to [0, 1].
func Clamp01[T constraints.Float](f T) T {
	return Clamp(f, 0, 1)
}
