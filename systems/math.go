package systems

import "math"

// clampFloat clamps a float32 value between min and max.
func clampFloat(v, minVal, maxVal float32) float32 {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}

// normalizeAngle wraps an angle into [-Pi, Pi] via atan2(sin, cos).
func normalizeAngle(angle float64) float64 {
	return math.Atan2(math.Sin(angle), math.Cos(angle))
}

// MergeSize is the side of a square whose area is the sum of both squares.
func MergeSize(a, b float32) float32 {
	a64, b64 := float64(a), float64(b)
	return float32(math.Sqrt(a64*a64 + b64*b64))
}

// SplitSize is the side left over after removing a child of side c from a
// parent of side p. Clamps to zero when the child is the larger square.
func SplitSize(p, c float32) float32 {
	p64, c64 := float64(p), float64(c)
	rem := p64*p64 - c64*c64
	if rem <= 0 {
		return 0
	}
	return float32(math.Sqrt(rem))
}
