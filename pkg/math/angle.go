package math

import "math"

// Radians converts degrees to radians.
func Radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// Degrees converts radians to degrees.
func Degrees(rad float64) float64 {
	return rad * 180 / math.Pi
}

// WrapDegrees wraps an angle into [-180, 180).
func WrapDegrees(deg float64) float64 {
	w := math.Mod(deg+180, 360)
	if w < 0 {
		w += 360
	}
	return w - 180
}

// WrapTurn wraps an angle into [0, 360).
func WrapTurn(deg float64) float64 {
	w := math.Mod(deg, 360)
	if w < 0 {
		w += 360
	}
	return w
}

// ShortestArc returns the signed angle in [-180, 180) that rotates from
// to reach to along the shorter way around the circle.
func ShortestArc(from, to float64) float64 {
	return WrapDegrees(to - from)
}

// Clamp limits x to [lo, hi].
func Clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// ApproxEqual reports whether a and b differ by at most eps.
func ApproxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}
