package vmath

import "math"

// Lerp performs linear interpolation between a and b
// t is clamped to [0, 1]
func Lerp(a, b, t float64) float64 {
	if t <= 0 {
		return a
	}
	if t >= 1 {
		return b
	}
	return a + (b-a)*t
}

// Approach moves current toward target by factor of the remaining distance
// Applied once per frame it yields exponential smoothing rather than snapping
func Approach(current, target, factor float64) float64 {
	return current + (target-current)*factor
}

// CeilDiv returns ceil(a / b) for positive b
func CeilDiv(a, b float64) int {
	return int(math.Ceil(a / b))
}

// Clamp limits v to [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
