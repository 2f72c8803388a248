package estimators

// SpectralCoG collapses a per-hypothesis weight profile into one period via
// a weighted center of gravity: period = Σ(N·w[N]) / Σ(w[N]). Hypotheses
// with zero or invalid weight do not contribute.
type SpectralCoG struct {
	MinPeriod int
	MaxPeriod int
}

// Estimate returns the weighted average period and whether enough weight
// accumulated to make it meaningful. Callers zero out weights below their
// significance threshold before calling.
func (c SpectralCoG) Estimate(weights []float64) (float64, bool) {
	num, den := 0.0, 0.0
	hi := c.MaxPeriod
	if hi >= len(weights) {
		hi = len(weights) - 1
	}
	for n := c.MinPeriod; n <= hi; n++ {
		w := weights[n]
		if w <= 0 || !IsValid(w) {
			continue
		}
		num += float64(n) * w
		den += w
	}
	if den < epsilon {
		return 0, false
	}
	return num / den, true
}
