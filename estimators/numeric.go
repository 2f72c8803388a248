package estimators

import "math"

// epsilon is the near-zero threshold for denominators. Smaller magnitudes
// are treated as zero to keep divisions off the fallback paths finite.
const epsilon = 1e-10

// IsValid reports whether v is a usable sample: finite and not NaN.
func IsValid(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// SafeDiv returns num/den, or fallback when the quotient would be
// non-finite or den is near zero.
func SafeDiv(num, den, fallback float64) float64 {
	if math.Abs(den) < epsilon {
		return fallback
	}
	q := num / den
	if !IsValid(q) {
		return fallback
	}
	return q
}

// SafeLog10 returns log10(v), or fallback for non-positive or invalid v.
func SafeLog10(v, fallback float64) float64 {
	if !IsValid(v) || v <= 0 {
		return fallback
	}
	return math.Log10(v)
}
