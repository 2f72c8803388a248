package estimators

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

// Autocorrelation periodogram tuning: the same 0.2/0.8 power IIR as the
// combined estimator, a 0.991 decay on the running maximum, and lags below
// 3 excluded from the spectral projection.
const (
	acPowerAttack  = 0.2
	acMaxDecay     = 0.991
	acPwrThreshold = 0.5
	acMinLag       = 3
	acHPCutoff     = 40
)

// AutocorrPeriodogramConfig configures an AutocorrPeriodogram estimator.
type AutocorrPeriodogramConfig struct {
	MinPeriod int // smallest candidate period, default 10
	MaxLag    int // largest lag and candidate period, default 48
	AvgLength int // correlation window; 0 means "use the lag itself"
}

func (cfg *AutocorrPeriodogramConfig) applyDefaults() {
	if cfg.MinPeriod == 0 {
		cfg.MinPeriod = 10
	}
	if cfg.MaxLag == 0 {
		cfg.MaxLag = 48
	}
}

func (cfg AutocorrPeriodogramConfig) validate() error {
	if cfg.MinPeriod < 2 {
		return fmt.Errorf("min period must be at least 2, got %d", cfg.MinPeriod)
	}
	if cfg.MaxLag <= cfg.MinPeriod {
		return fmt.Errorf("max lag %d must exceed min period %d", cfg.MaxLag, cfg.MinPeriod)
	}
	if cfg.MaxLag > maxHypothesisPeriod {
		return fmt.Errorf("max lag %d exceeds limit %d", cfg.MaxLag, maxHypothesisPeriod)
	}
	if cfg.AvgLength < 0 || cfg.AvgLength > maxHypothesisPeriod {
		return fmt.Errorf("avg length %d out of range [0,%d]", cfg.AvgLength, maxHypothesisPeriod)
	}
	return nil
}

// AutocorrPeriodogram estimates the dominant cycle from the autocorrelation
// of the detrended signal: per-lag Pearson correlations projected onto a
// cosine/sine basis per candidate period, with IIR-smoothed power feeding a
// center of gravity.
type AutocorrPeriodogram struct {
	cfg  AutocorrPeriodogramConfig
	hp   *HighPassSmoother
	ring *sampleRing
	cog  SpectralCoG

	corr   []float64 // per lag
	spwr   []float64 // per candidate period, carried across calls
	wts    []float64
	x, y   []float64 // correlation window scratch
	maxPwr float64

	period float64
	steps  int
	obs    Observer
}

// NewAutocorrPeriodogram validates the configuration and builds the
// estimator. All working tables are sized here and reused on every call.
func NewAutocorrPeriodogram(cfg AutocorrPeriodogramConfig) (*AutocorrPeriodogram, error) {
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("autocorr periodogram config: %w", err)
	}
	window := cfg.AvgLength
	if window < cfg.MaxLag {
		window = cfg.MaxLag
	}
	a := &AutocorrPeriodogram{
		cfg:  cfg,
		hp:   NewHighPassSmoother(acHPCutoff),
		ring: newSampleRing(cfg.MaxLag + window),
		cog:  SpectralCoG{MinPeriod: cfg.MinPeriod, MaxPeriod: cfg.MaxLag},
		corr: make([]float64, cfg.MaxLag+1),
		spwr: make([]float64, cfg.MaxLag+1),
		wts:  make([]float64, cfg.MaxLag+1),
		x:    make([]float64, window),
		y:    make([]float64, window),
	}
	a.period = a.defaultPeriod()
	return a, nil
}

func init() {
	register("autocorr", func() Estimator {
		a, err := NewAutocorrPeriodogram(AutocorrPeriodogramConfig{})
		if err != nil {
			panic(err)
		}
		return a
	})
}

func (a *AutocorrPeriodogram) defaultPeriod() float64 {
	return float64(a.cfg.MinPeriod+a.cfg.MaxLag) / 2
}

func (a *AutocorrPeriodogram) Name() string {
	return fmt.Sprintf("AutocorrPeriodogram(%d,%d)", a.cfg.MinPeriod, a.cfg.MaxLag)
}

func (a *AutocorrPeriodogram) Warmup() int { return a.cfg.MaxLag }

// Bounds returns the configured period range.
func (a *AutocorrPeriodogram) Bounds() (float64, float64) {
	return float64(a.cfg.MinPeriod), float64(a.cfg.MaxLag)
}

// SetObserver installs a diagnostic sink for degenerate-path events.
func (a *AutocorrPeriodogram) SetObserver(o Observer) { a.obs = o }

// Update consumes one price sample and returns the dominant cycle, clamped
// to [MinPeriod, MaxLag].
func (a *AutocorrPeriodogram) Update(sample float64) float64 {
	if !IsValid(sample) {
		observerOrNop(a.obs).Degenerate(a.Name(), "input", a.steps)
		a.steps++
		return a.period
	}
	a.steps++

	a.ring.push(a.hp.Update(sample))

	for lag := 0; lag <= a.cfg.MaxLag; lag++ {
		a.corr[lag] = a.correlateLag(lag)
	}

	a.maxPwr *= acMaxDecay
	for p := a.cfg.MinPeriod; p <= a.cfg.MaxLag; p++ {
		cosPart, sinPart := 0.0, 0.0
		for lag := acMinLag; lag <= a.cfg.MaxLag; lag++ {
			angle := 2 * math.Pi * float64(lag) / float64(p)
			cosPart += a.corr[lag] * math.Cos(angle)
			sinPart += a.corr[lag] * math.Sin(angle)
		}
		sq := cosPart*cosPart + sinPart*sinPart
		a.spwr[p] = acPowerAttack*sq*sq + (1-acPowerAttack)*a.spwr[p]
		if a.spwr[p] > a.maxPwr {
			a.maxPwr = a.spwr[p]
		}
	}

	if a.maxPwr < epsilon {
		observerOrNop(a.obs).Degenerate(a.Name(), "power", a.steps)
		a.period = a.defaultPeriod()
		return a.period
	}

	for p := a.cfg.MinPeriod; p <= a.cfg.MaxLag; p++ {
		if norm := a.spwr[p] / a.maxPwr; norm >= acPwrThreshold {
			a.wts[p] = norm
		} else {
			a.wts[p] = 0
		}
	}

	cog, ok := a.cog.Estimate(a.wts)
	if !ok {
		observerOrNop(a.obs).Degenerate(a.Name(), "cog", a.steps)
		a.period = a.defaultPeriod()
		return a.period
	}

	a.period = Clamp(cog, float64(a.cfg.MinPeriod), float64(a.cfg.MaxLag))
	return a.period
}

// correlateLag computes the Pearson correlation of the signal against
// itself shifted by lag, over the configured averaging window clipped to
// available history. Degenerate windows score zero.
func (a *AutocorrPeriodogram) correlateLag(lag int) float64 {
	m := a.cfg.AvgLength
	if m == 0 {
		m = lag
	}
	if avail := a.ring.len() - lag; m > avail {
		m = avail
	}
	if m < 2 {
		return 0
	}
	for i := 0; i < m; i++ {
		a.x[i] = a.ring.at(i)
		a.y[i] = a.ring.at(i + lag)
	}
	r := stat.Correlation(a.x[:m], a.y[:m], nil)
	if !IsValid(r) {
		return 0
	}
	return r
}

// Reset clears histories, the smoothed-power table, and the running
// maximum.
func (a *AutocorrPeriodogram) Reset() {
	a.hp.Reset()
	a.ring.reset()
	for i := range a.spwr {
		a.corr[i] = 0
		a.spwr[i] = 0
		a.wts[i] = 0
	}
	a.maxPwr = 0
	a.period = a.defaultPeriod()
	a.steps = 0
}
