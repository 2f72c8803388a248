package estimators

import "math"

// HighPassSmoother detrends raw price into an oscillating signal: a one-pole
// high-pass filter followed by a 6-tap symmetric FIR smoother with weights
// [1,2,3,3,2,1]/12. It is the shared front end of the band-pass and
// spectral estimators.
type HighPassSmoother struct {
	alpha     float64
	prevPrice float64
	hist      [5]float64 // hp[t-1] .. hp[t-5]
	count     int
}

// NewHighPassSmoother builds the stage with the high-pass corner at
// cutoffPeriod bars. The filter coefficient is derived once:
// alpha = (1 - sin θ) / cos θ with θ = 2π/cutoffPeriod.
func NewHighPassSmoother(cutoffPeriod float64) *HighPassSmoother {
	if cutoffPeriod < 2 {
		cutoffPeriod = 2
	}
	theta := 2 * math.Pi / cutoffPeriod
	return &HighPassSmoother{
		alpha: (1 - math.Sin(theta)) / math.Cos(theta),
	}
}

// Update consumes one price and returns the smoothed detrended value.
// Until 5 prior high-pass samples exist it returns the raw high-pass value.
func (h *HighPassSmoother) Update(price float64) float64 {
	if h.count == 0 {
		h.prevPrice = price
	}

	hp := 0.5*(h.alpha+1)*(price-h.prevPrice) + h.alpha*h.hist[0]

	smoothed := (hp + 2*h.hist[0] + 3*h.hist[1] + 3*h.hist[2] + 2*h.hist[3] + h.hist[4]) / 12

	// All history reads are done; advance for the next bar.
	copy(h.hist[1:], h.hist[:4])
	h.hist[0] = hp
	h.prevPrice = price
	h.count++

	if h.count <= 5 {
		return hp
	}
	return smoothed
}

// Reset clears the filter histories, keeping the configured coefficient.
func (h *HighPassSmoother) Reset() {
	h.prevPrice = 0
	h.hist = [5]float64{}
	h.count = 0
}
