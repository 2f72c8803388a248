package estimators

import (
	"fmt"
	"math"
)

const (
	// gpSpectrumScale is the fixed numerator of the predictor's AR spectral
	// response.
	gpSpectrumScale = 0.1
	// gpMaxStep bounds how far the reported period may move per bar.
	gpMaxStep = 2
	// gpPeakDecay is the slow decay of the amplitude normalizer that keeps
	// the LMS input inside [-1, 1].
	gpPeakDecay = 0.991
	gpHPCutoff  = 40
)

// GriffithsPredictorConfig configures a GriffithsPredictor estimator.
type GriffithsPredictorConfig struct {
	Length     int // predictor order in bars, default 40
	LowerBound int // smallest candidate period, default 10
	UpperBound int // largest candidate period, default 48
}

func (cfg *GriffithsPredictorConfig) applyDefaults() {
	if cfg.Length == 0 {
		cfg.Length = 40
	}
	if cfg.LowerBound == 0 {
		cfg.LowerBound = 10
	}
	if cfg.UpperBound == 0 {
		cfg.UpperBound = 48
	}
}

func (cfg GriffithsPredictorConfig) validate() error {
	if cfg.Length < 4 || cfg.Length > maxHypothesisPeriod {
		return fmt.Errorf("length %d out of range [4,%d]", cfg.Length, maxHypothesisPeriod)
	}
	if cfg.LowerBound < 2 {
		return fmt.Errorf("lower bound must be at least 2, got %d", cfg.LowerBound)
	}
	if cfg.UpperBound <= cfg.LowerBound || cfg.UpperBound > maxHypothesisPeriod {
		return fmt.Errorf("upper bound %d must be in (lower,%d]", cfg.UpperBound, maxHypothesisPeriod)
	}
	return nil
}

// GriffithsPredictor estimates the dominant cycle from an LMS adaptive
// linear predictor: the adapted coefficients are reinterpreted each bar as
// an AR model whose spectral peak is the cycle estimate. The reported
// period moves at most two bars per step.
type GriffithsPredictor struct {
	cfg GriffithsPredictorConfig

	hp   *HighPassSmoother
	ring *sampleRing
	x    []float64 // predictor window, oldest first, length+1 values
	coef []float64
	mu   float64
	peak float64

	period float64
	steps  int
	obs    Observer
}

// NewGriffithsPredictor validates the configuration and builds the
// estimator.
func NewGriffithsPredictor(cfg GriffithsPredictorConfig) (*GriffithsPredictor, error) {
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("griffiths predictor config: %w", err)
	}
	g := &GriffithsPredictor{
		cfg:  cfg,
		hp:   NewHighPassSmoother(gpHPCutoff),
		ring: newSampleRing(cfg.Length + 1),
		x:    make([]float64, cfg.Length+1),
		coef: make([]float64, cfg.Length),
		mu:   1 / float64(cfg.Length),
	}
	g.period = g.defaultPeriod()
	return g, nil
}

func init() {
	register("griffiths", func() Estimator {
		g, err := NewGriffithsPredictor(GriffithsPredictorConfig{})
		if err != nil {
			panic(err)
		}
		return g
	})
}

func (g *GriffithsPredictor) defaultPeriod() float64 {
	return float64(g.cfg.LowerBound+g.cfg.UpperBound) / 2
}

func (g *GriffithsPredictor) Name() string {
	return fmt.Sprintf("GriffithsPredictor(%d)", g.cfg.Length)
}

func (g *GriffithsPredictor) Warmup() int { return g.cfg.Length + 1 }

// Bounds returns the configured period range.
func (g *GriffithsPredictor) Bounds() (float64, float64) {
	return float64(g.cfg.LowerBound), float64(g.cfg.UpperBound)
}

// SetObserver installs a diagnostic sink for degenerate-path events.
func (g *GriffithsPredictor) SetObserver(o Observer) { g.obs = o }

// Update consumes one price sample and returns the rate-limited spectral
// peak of the adapted predictor, clamped to the configured bounds.
func (g *GriffithsPredictor) Update(sample float64) float64 {
	if !IsValid(sample) {
		observerOrNop(g.obs).Degenerate(g.Name(), "input", g.steps)
		g.steps++
		return g.period
	}
	g.steps++

	// Detrend and normalize to [-1,1] with a fast-attack slow-decay peak
	// tracker so the fixed-step LMS update stays stable on any price scale.
	s := g.hp.Update(sample)
	g.peak *= gpPeakDecay
	if a := math.Abs(s); a > g.peak {
		g.peak = a
	}
	g.ring.push(SafeDiv(s, g.peak, 0))

	if g.ring.len() < g.cfg.Length+1 {
		return g.defaultPeriod()
	}

	g.ring.fill(g.x)
	n := g.cfg.Length

	signalPwr := 0.0
	for _, v := range g.x {
		signalPwr += v * v
	}
	if signalPwr < epsilon {
		// Dead signal: no cycle to predict.
		observerOrNop(g.obs).Degenerate(g.Name(), "signal", g.steps)
		g.period = g.defaultPeriod()
		return g.period
	}

	// Prediction from the adapted coefficients, then the LMS step.
	pred := 0.0
	for k := 1; k <= n; k++ {
		pred += g.coef[k-1] * g.x[n-k]
	}
	e := g.x[n] - pred
	if !IsValid(e) {
		observerOrNop(g.obs).Degenerate(g.Name(), "predictor", g.steps)
		return g.period
	}
	for k := 1; k <= n; k++ {
		g.coef[k-1] += g.mu * e * g.x[n-k]
	}

	best, ok := g.arPeak()
	if !ok {
		observerOrNop(g.obs).Degenerate(g.Name(), "spectrum", g.steps)
		return g.period
	}

	// Rate limiter: the visible cycle length may not jump.
	best = Clamp(best, g.period-gpMaxStep, g.period+gpMaxStep)
	g.period = Clamp(best, float64(g.cfg.LowerBound), float64(g.cfg.UpperBound))
	return g.period
}

// arPeak scans the predictor's AR spectral response over the candidate
// periods and returns the first maximum in increasing period order.
func (g *GriffithsPredictor) arPeak() (float64, bool) {
	bestP := 0
	bestPwr := 0.0
	for p := g.cfg.LowerBound; p <= g.cfg.UpperBound; p++ {
		omega := 2 * math.Pi / float64(p)
		re, im := 1.0, 0.0
		for k := 1; k <= g.cfg.Length; k++ {
			angle := float64(k) * omega
			re -= g.coef[k-1] * math.Cos(angle)
			im += g.coef[k-1] * math.Sin(angle)
		}
		pwr := gpSpectrumScale / (re*re + im*im + arSpectrumFloor)
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

// Reset clears the predictor window, coefficients, and normalizer.
func (g *GriffithsPredictor) Reset() {
	g.hp.Reset()
	g.ring.reset()
	for i := range g.coef {
		g.coef[i] = 0
	}
	g.peak = 0
	g.period = g.defaultPeriod()
	g.steps = 0
}
