package game

import "math"

// MoveTowards shifts current toward target by at most maxDelta, never
// overshooting. A clamped step keeps acceleration frame-rate-stable under a
// fixed dt, unlike exponential decay.
func MoveTowards(current, target, maxDelta float64) float64 {
	if math.Abs(target-current) <= maxDelta {
		return target
	}
	if target > current {
		return current + maxDelta
	}
	return current - maxDelta
}

// Clamp limits v to the inclusive range [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
