package estimators

import (
	"fmt"
	"math"
)

const (
	hqDefaultAlpha  = 0.07
	hqDefaultPeriod = 15.0
	hqMinPhaseRate  = 0.1
	hqMaxPhaseRate  = 1.1
	hqMedianSpan    = 5
	hqCycleWarmup   = 7
)

// HomodyneQuadratureConfig configures a HomodyneQuadrature estimator.
type HomodyneQuadratureConfig struct {
	Alpha float64 // cycle filter constant, default 0.07
}

func (cfg *HomodyneQuadratureConfig) applyDefaults() {
	if cfg.Alpha == 0 {
		cfg.Alpha = hqDefaultAlpha
	}
}

func (cfg HomodyneQuadratureConfig) validate() error {
	if cfg.Alpha <= 0 || cfg.Alpha >= 1 {
		return fmt.Errorf("alpha must be in (0,1), got %g", cfg.Alpha)
	}
	return nil
}

// HomodyneQuadrature estimates the dominant cycle from the rotation of an
// in-phase/quadrature pair between consecutive bars: the instantaneous
// phase rate is median-smoothed and integrated into a period through two
// cascaded exponential blends. Output is not range-clamped beyond
// invalid-number fallback.
type HomodyneQuadrature struct {
	cfg HomodyneQuadratureConfig

	pPrev [3]float64 // price[t-1..t-3]
	sPrev [2]float64 // smooth[t-1..t-2]
	cPrev [6]float64 // cycle[t-1..t-6]

	q1Prev    float64
	i1Prev    float64
	phaseRate float64

	median      *MedianWindow
	instPeriod  float64
	finalPeriod float64

	steps int
	obs   Observer
}

// NewHomodyneQuadrature validates the configuration and builds the
// estimator.
func NewHomodyneQuadrature(cfg HomodyneQuadratureConfig) (*HomodyneQuadrature, error) {
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("homodyne quadrature config: %w", err)
	}
	h := &HomodyneQuadrature{
		cfg:    cfg,
		median: NewMedianWindow(hqMedianSpan),
	}
	h.resetState()
	return h, nil
}

func init() {
	register("homodyne", func() Estimator {
		h, err := NewHomodyneQuadrature(HomodyneQuadratureConfig{})
		if err != nil {
			panic(err)
		}
		return h
	})
}

func (h *HomodyneQuadrature) Name() string {
	return fmt.Sprintf("HomodyneQuadrature(%.2f)", h.cfg.Alpha)
}

func (h *HomodyneQuadrature) Warmup() int { return hqCycleWarmup + hqMedianSpan }

// SetObserver installs a diagnostic sink for degenerate-path events.
func (h *HomodyneQuadrature) SetObserver(o Observer) { h.obs = o }

// Update consumes one price sample and returns the smoothed instantaneous
// period.
func (h *HomodyneQuadrature) Update(price float64) float64 {
	if !IsValid(price) {
		observerOrNop(h.obs).Degenerate(h.Name(), "input", h.steps)
		h.steps++
		return h.finalPeriod
	}
	h.steps++
	alpha := h.cfg.Alpha

	smooth := (price + 2*h.pPrev[0] + 2*h.pPrev[1] + h.pPrev[2]) / 6

	var cycle float64
	if h.steps < hqCycleWarmup {
		cycle = (price - 2*h.pPrev[0] + h.pPrev[1]) / 4
	} else {
		k := 1 - 0.5*alpha
		cycle = k*k*(smooth-2*h.sPrev[0]+h.sPrev[1]) +
			2*(1-alpha)*h.cPrev[0] - (1-alpha)*(1-alpha)*h.cPrev[1]
	}
	if !IsValid(cycle) {
		cycle = 0
	}

	q1 := (0.0962*cycle + 0.5769*h.cPrev[1] - 0.5769*h.cPrev[3] - 0.0962*h.cPrev[5]) *
		(0.5 + 0.08*h.instPeriod)
	i1 := h.cPrev[2]

	// Homodyne discriminator: phase advance between the current and the
	// previous (I,Q) vector, via the tangent-difference identity.
	rate := h.phaseRate
	if math.Abs(q1) > epsilon && math.Abs(h.q1Prev) > epsilon {
		num := i1/q1 - h.i1Prev/h.q1Prev
		den := 1 + (i1*h.i1Prev)/(q1*h.q1Prev)
		if r := SafeDiv(num, den, math.NaN()); IsValid(r) {
			rate = r
		} else {
			observerOrNop(h.obs).Degenerate(h.Name(), "discriminator", h.steps)
		}
	} else {
		observerOrNop(h.obs).Degenerate(h.Name(), "quadrature", h.steps)
	}
	rate = Clamp(rate, hqMinPhaseRate, hqMaxPhaseRate)

	h.median.Push(rate)
	md := h.median.Median()
	dc := hqDefaultPeriod
	if md > epsilon {
		dc = 2*math.Pi/md + 0.5
	}

	h.instPeriod = 0.33*dc + 0.67*h.instPeriod
	h.finalPeriod = 0.15*h.instPeriod + 0.85*h.finalPeriod

	// All history reads are done; rotate for the next bar.
	h.phaseRate = rate
	h.q1Prev = q1
	h.i1Prev = i1
	copy(h.cPrev[1:], h.cPrev[:5])
	h.cPrev[0] = cycle
	copy(h.sPrev[1:], h.sPrev[:1])
	h.sPrev[0] = smooth
	copy(h.pPrev[1:], h.pPrev[:2])
	h.pPrev[0] = price

	return h.finalPeriod
}

// Reset clears all recursive state back to the default period.
func (h *HomodyneQuadrature) Reset() {
	h.resetState()
}

func (h *HomodyneQuadrature) resetState() {
	h.pPrev = [3]float64{}
	h.sPrev = [2]float64{}
	h.cPrev = [6]float64{}
	h.q1Prev = 0
	h.i1Prev = 0
	h.phaseRate = 2 * math.Pi / hqDefaultPeriod
	h.median.Reset()
	h.instPeriod = hqDefaultPeriod
	h.finalPeriod = hqDefaultPeriod
	h.steps = 0
}
