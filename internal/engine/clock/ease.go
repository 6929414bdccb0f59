package clock

import "math"

// Pulse oscillates between min and max with the given frame period. Scenes
// key highlight and glow feedback off it using the shared frame counter so
// visuals stay deterministic.
func Pulse(frame uint64, period int, min, max float64) float64 {
	if period < 1 {
		period = 1
	}
	phase := float64(frame%uint64(period)) / float64(period)
	tri := 1 - math.Abs(2*phase-1)
	return Lerp(min, max, EaseInOut(tri))
}

// EaseInOut maps linear progress t in [0,1] onto a smooth S-curve.
func EaseInOut(t float64) float64 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	return t * t * (3 - 2*t)
}

// Lerp linearly interpolates between a and b by t clamped to [0,1].
func Lerp(a, b, t float64) float64 {
	if t <= 0 {
		return a
	}
	if t >= 1 {
		return b
	}
	return a + (b-a)*t
}
