package estimators

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/dsp/window"
)

const (
	// burgReflectLimit caps reflection-coefficient magnitude. Well-behaved
	// data keeps |k| below 1; the limit only arrests a diverging recursion.
	burgReflectLimit = 10
	// burgHistSpan is the depth of the Hann-weighted smoothing applied to
	// each AR coefficient before the spectrum is evaluated.
	burgHistSpan = 12
	// burgSettleFits is how many fits the smoothing history needs before the
	// spectral peak is reported. A single fit carries a phase-dependent
	// frequency bias of a few percent; averaging this many fits centers it.
	burgSettleFits = 8
	// burgResidualRatio ends the lattice recursion once the residual power
	// falls this far below the window's power. Past that point the window is
	// fully explained and further orders would fit rounding noise with
	// clamped reflection coefficients.
	burgResidualRatio = 1e-8
)

// arSpectrumFloor regularizes the AR spectrum denominator. A perfectly
// fitted oscillation puts poles on the unit circle, where |A(e^-iω)|²
// underflows at the true period; the floor keeps the peak finite and in
// place.
const arSpectrumFloor = 1e-12

// BurgMESAConfig configures a BurgMESA estimator.
type BurgMESAConfig struct {
	Length     int // analysis window in bars, default 32
	NumCoef    int // AR model order, default 8
	LowerBound int // smallest candidate period, default 10
	UpperBound int // largest candidate period, default 48
}

func (cfg *BurgMESAConfig) applyDefaults() {
	if cfg.Length == 0 {
		cfg.Length = 32
	}
	if cfg.NumCoef == 0 {
		cfg.NumCoef = 8
	}
	if cfg.LowerBound == 0 {
		cfg.LowerBound = 10
	}
	if cfg.UpperBound == 0 {
		cfg.UpperBound = 48
	}
}

func (cfg BurgMESAConfig) validate() error {
	if cfg.Length < 8 || cfg.Length > maxHypothesisPeriod {
		return fmt.Errorf("length %d out of range [8,%d]", cfg.Length, maxHypothesisPeriod)
	}
	if cfg.NumCoef < 2 || cfg.NumCoef >= cfg.Length {
		return fmt.Errorf("num coef %d must be in [2,length)", cfg.NumCoef)
	}
	if cfg.LowerBound < 2 {
		return fmt.Errorf("lower bound must be at least 2, got %d", cfg.LowerBound)
	}
	if cfg.UpperBound <= cfg.LowerBound || cfg.UpperBound > maxHypothesisPeriod {
		return fmt.Errorf("upper bound %d must be in (lower,%d]", cfg.UpperBound, maxHypothesisPeriod)
	}
	return nil
}

// BurgMESA estimates the dominant cycle by maximum-entropy spectral
// analysis: Burg's order-recursive lattice fits an AR model to the most
// recent window, the coefficients are Hann-smoothed over a short history,
// and the AR spectrum is scanned for its peak period.
type BurgMESA struct {
	cfg BurgMESAConfig

	ring *sampleRing
	x    []float64 // analysis window, oldest first
	fwd  []float64 // forward prediction errors
	bwd  []float64 // backward prediction errors

	coef     []float64
	prevCoef []float64
	smooth   []float64

	hist      [][]float64 // per coefficient, newest at histIdx-1
	histIdx   int
	histCount int
	hann      []float64

	period float64
	steps  int
	obs    Observer
}

// NewBurgMESA validates the configuration and sizes every working buffer
// once; Update allocates nothing.
func NewBurgMESA(cfg BurgMESAConfig) (*BurgMESA, error) {
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("burg mesa config: %w", err)
	}
	// Trailing weights are the descending half of a Hann window: full weight
	// on the newest fit, decaying to zero at the oldest slot.
	full := make([]float64, 2*burgHistSpan+1)
	for i := range full {
		full[i] = 1
	}
	window.Hann(full)
	hann := full[burgHistSpan : 2*burgHistSpan]

	hist := make([][]float64, cfg.NumCoef)
	for m := range hist {
		hist[m] = make([]float64, burgHistSpan)
	}

	b := &BurgMESA{
		cfg:      cfg,
		ring:     newSampleRing(cfg.Length),
		x:        make([]float64, cfg.Length),
		fwd:      make([]float64, cfg.Length),
		bwd:      make([]float64, cfg.Length),
		coef:     make([]float64, cfg.NumCoef),
		prevCoef: make([]float64, cfg.NumCoef),
		smooth:   make([]float64, cfg.NumCoef),
		hist:     hist,
		hann:     hann,
	}
	b.period = b.defaultPeriod()
	return b, nil
}

func init() {
	register("burg", func() Estimator {
		b, err := NewBurgMESA(BurgMESAConfig{})
		if err != nil {
			panic(err)
		}
		return b
	})
}

func (b *BurgMESA) defaultPeriod() float64 {
	return float64(b.cfg.LowerBound+b.cfg.UpperBound) / 2
}

func (b *BurgMESA) Name() string {
	return fmt.Sprintf("BurgMESA(%d,%d)", b.cfg.Length, b.cfg.NumCoef)
}

func (b *BurgMESA) Warmup() int { return b.cfg.Length + burgSettleFits - 1 }

// Bounds returns the configured period range.
func (b *BurgMESA) Bounds() (float64, float64) {
	return float64(b.cfg.LowerBound), float64(b.cfg.UpperBound)
}

// SetObserver installs a diagnostic sink for degenerate-path events.
func (b *BurgMESA) SetObserver(o Observer) { b.obs = o }

// Update consumes one price sample and returns the period of the AR
// spectral peak, clamped to the configured bounds. A failed recursion
// discards its partial results and returns the default midpoint.
func (b *BurgMESA) Update(sample float64) float64 {
	if !IsValid(sample) {
		observerOrNop(b.obs).Degenerate(b.Name(), "input", b.steps)
		b.steps++
		return b.period
	}
	b.steps++
	b.ring.push(sample)

	if b.ring.len() < b.cfg.Length {
		return b.defaultPeriod()
	}

	gain, ok := b.fitAR()
	if !ok {
		observerOrNop(b.obs).Degenerate(b.Name(), "lattice", b.steps)
		return b.defaultPeriod()
	}

	b.pushCoefHistory()
	b.smoothCoefs()

	// Any single fit's peak can sit a couple of periods off depending on
	// window phase; hold the default until enough fits are averaged.
	if b.histCount < burgSettleFits {
		return b.defaultPeriod()
	}

	best, ok := b.spectralPeak(gain)
	if !ok {
		observerOrNop(b.obs).Degenerate(b.Name(), "spectrum", b.steps)
		return b.defaultPeriod()
	}

	b.period = Clamp(best, float64(b.cfg.LowerBound), float64(b.cfg.UpperBound))
	return b.period
}

// fitAR runs Burg's recursion over the current window, leaving the model in
// b.coef and returning the residual power as the AR gain. It reports false
// on numeric failure; callers must then discard the step.
func (b *BurgMESA) fitAR() (float64, bool) {
	n := b.cfg.Length
	b.ring.fill(b.x)

	// Fit the demeaned window; Burg models the oscillation, not the level.
	mean := 0.0
	for _, v := range b.x {
		mean += v
	}
	mean /= float64(n)

	gain := 0.0
	for i, v := range b.x {
		b.x[i] = v - mean
		gain += b.x[i] * b.x[i]
	}
	gain /= float64(n)
	if gain < epsilon {
		// Flat window: no cycle to model.
		return 0, false
	}
	windowPwr := gain
	copy(b.fwd, b.x)
	copy(b.bwd, b.x)
	for m := range b.coef {
		b.coef[m] = 0
		b.prevCoef[m] = 0
	}

	for m := 0; m < b.cfg.NumCoef; m++ {
		if gain < windowPwr*burgResidualRatio || gain <= epsilon {
			// The model already explains the window down to rounding
			// noise; higher orders would only amplify it.
			break
		}
		num, den := 0.0, 0.0
		for i := m + 1; i < n; i++ {
			num += b.fwd[i] * b.bwd[i-1]
			den += b.fwd[i]*b.fwd[i] + b.bwd[i-1]*b.bwd[i-1]
		}
		k := SafeDiv(2*num, den, 0)
		k = Clamp(k, -burgReflectLimit, burgReflectLimit)

		// Update prediction errors in place, back to front so each read of
		// bwd[i-1] happens before that slot is overwritten.
		for i := n - 1; i > m; i-- {
			f := b.fwd[i]
			b.fwd[i] = f - k*b.bwd[i-1]
			b.bwd[i] = b.bwd[i-1] - k*f
		}

		// Levinson-style propagation from the previous order's snapshot.
		b.coef[m] = k
		for j := 0; j < m; j++ {
			b.coef[j] = b.prevCoef[j] - k*b.prevCoef[m-1-j]
		}
		for j := 0; j <= m; j++ {
			if !IsValid(b.coef[j]) {
				return 0, false
			}
		}
		copy(b.prevCoef[:m+1], b.coef[:m+1])

		gain *= 1 - k*k
		if !IsValid(gain) {
			return 0, false
		}
		if gain < epsilon {
			gain = epsilon
		}
	}
	return gain, true
}

func (b *BurgMESA) pushCoefHistory() {
	for m := range b.hist {
		b.hist[m][b.histIdx] = b.coef[m]
	}
	b.histIdx = (b.histIdx + 1) % burgHistSpan
	if b.histCount < burgHistSpan {
		b.histCount++
	}
}

// smoothCoefs applies the trailing Hann weighting to each coefficient's
// history. With a short history the usable weights are renormalized; a
// degenerate weight sum falls back to the raw coefficient.
func (b *BurgMESA) smoothCoefs() {
	for m := range b.hist {
		sum, wsum := 0.0, 0.0
		for j := 0; j < b.histCount; j++ {
			slot := b.histIdx - 1 - j
			if slot < 0 {
				slot += burgHistSpan
			}
			sum += b.hann[j] * b.hist[m][slot]
			wsum += b.hann[j]
		}
		if wsum < epsilon {
			b.smooth[m] = b.coef[m]
			continue
		}
		b.smooth[m] = sum / wsum
	}
}

// spectralPeak evaluates the AR power spectrum at every integer candidate
// period and returns the first maximum, scanning in increasing period
// order.
func (b *BurgMESA) spectralPeak(gain float64) (float64, bool) {
	bestP := 0
	bestPwr := 0.0
	for p := b.cfg.LowerBound; p <= b.cfg.UpperBound; p++ {
		omega := 2 * math.Pi / float64(p)
		re, im := 1.0, 0.0
		for m := range b.smooth {
			angle := float64(m+1) * omega
			re -= b.smooth[m] * math.Cos(angle)
			im += b.smooth[m] * math.Sin(angle)
		}
		pwr := gain / (re*re + im*im + arSpectrumFloor)
		if !IsValid(pwr) {
			return 0, false
		}
		if pwr > bestPwr {
			bestPwr = pwr
			bestP = p
		}
	}
	if bestP == 0 || bestPwr < epsilon {
		return 0, false
	}
	return float64(bestP), true
}

// Reset clears the analysis window, the lattice state, and the coefficient
// smoothing history.
func (b *BurgMESA) Reset() {
	b.ring.reset()
	for m := range b.hist {
		for j := range b.hist[m] {
			b.hist[m][j] = 0
		}
		b.coef[m] = 0
		b.prevCoef[m] = 0
		b.smooth[m] = 0
	}
	b.histIdx = 0
	b.histCount = 0
	b.period = b.defaultPeriod()
	b.steps = 0
}
