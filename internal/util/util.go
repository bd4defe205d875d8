// Package util provides the small numeric helpers shared across the vitals
// simulation. Division guards and clamping are recurring invariants here,
// not incidental: every derived percentage must survive a zero maximum.
package util

// Clamp limits v to the range [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Clamp01 limits v to the range [0, 1].
func Clamp01(v float64) float64 {
	return Clamp(v, 0, 1)
}

// Lerp linearly interpolates from a to b by t, with t clamped to [0, 1].
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*Clamp01(t)
}

// SafePercent returns value/max clamped to [0, 1], defaulting to 1.0 when
// max is not positive. Missing or degenerate maxima read as "full" rather
// than producing NaN or a crash mid-simulation.
func SafePercent(value, max float64) float64 {
	if max <= 0 {
		return 1.0
	}
	return Clamp01(value / max)
}
