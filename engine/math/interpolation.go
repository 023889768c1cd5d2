package math

import (
	"fmt"

	"github.com/spaghettifunk/wood/engine/core"
)

// Easing remaps an interpolation factor before it is applied.
type Easing func(t float32) float32

// Linear is the identity easing.
func Linear(t float32) float32 {
	return t
}

// SmoothStep eases in and out: t²(3-2t).
func SmoothStep(t float32) float32 {
	return t * t * (3 - 2*t)
}

func ease(t float32, easing []Easing) float32 {
	for _, e := range easing {
		if e != nil {
			t = e(t)
		}
	}
	return t
}

/**
 * @brief Interpolates between a and b. t must lie in [0, 1], the optional
 * easing is applied to t first. When a and b are equal a is returned as is.
 *
 * @return The interpolated value, or core.ErrOutOfRange.
 */
func Lerp(a, b, t float32, easing ...Easing) (float32, error) {
	if t < 0 || t > 1 {
		return 0, fmt.Errorf("lerp factor %f outside [0, 1]: %w", t, core.ErrOutOfRange)
	}
	if a == b {
		return a, nil
	}
	t = ease(t, easing)
	return a + (b-a)*t, nil
}

/**
 * @brief Like Lerp but panics when t is outside [0, 1].
 */
func MustLerp(a, b, t float32, easing ...Easing) float32 {
	v, err := Lerp(a, b, t, easing...)
	if err != nil {
		panic(err)
	}
	return v
}

/**
 * @brief Moves current towards target like a critically damped spring.
 *
 * @param current The current value.
 * @param target The value to approach.
 * @param velocity The current velocity, updated in place between calls.
 * @param smoothTime Roughly the time it takes to reach the target.
 * @param maxSpeed Upper bound for the speed of the approach.
 * @param deltaTime The time since the last call, in the same unit as smoothTime.
 * @return The new value. Never overshoots target.
 */
func SmoothDamp(current, target float32, velocity *float32, smoothTime, maxSpeed, deltaTime float32) float32 {
	smoothTime = max(0.0001, smoothTime)
	omega := 2 / smoothTime

	x := omega * deltaTime
	exp := 1 / (1 + x + 0.48*x*x + 0.235*x*x*x)

	originalTarget := target
	maxChange := maxSpeed * smoothTime
	change := Clamp(current-target, -maxChange, maxChange)
	target = current - change

	temp := (*velocity + omega*change) * deltaTime
	*velocity = (*velocity - omega*temp) * exp

	output := target + (change+temp)*exp

	// snap when the step crossed the target
	if (originalTarget-current > 0) == (output > originalTarget) {
		output = originalTarget
		*velocity = 0
	}
	return output
}
