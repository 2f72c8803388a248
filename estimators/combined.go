package estimators

import "fmt"

// Power handling for the combined band-pass estimator: single-pole EMA
// smoothing of the per-channel power and a slowly decaying running maximum
// for normalization.
const (
	cbPowerAttack  = 0.2
	cbMaxDecay     = 0.991
	cbPwrThreshold = 0.5
	cbHPCutoff     = 40
)

// CombinedBandpassConfig configures a CombinedBandpass estimator.
type CombinedBandpassConfig struct {
	MinPeriod int // smallest candidate period, default 10
	MaxPeriod int // largest candidate period, default 48
}

func (cfg *CombinedBandpassConfig) applyDefaults() {
	if cfg.MinPeriod == 0 {
		cfg.MinPeriod = 10
	}
	if cfg.MaxPeriod == 0 {
		cfg.MaxPeriod = 48
	}
}

func (cfg CombinedBandpassConfig) validate() error {
	if cfg.MinPeriod < 2 {
		return fmt.Errorf("min period must be at least 2, got %d", cfg.MinPeriod)
	}
	if cfg.MaxPeriod <= cfg.MinPeriod {
		return fmt.Errorf("max period %d must exceed min period %d", cfg.MaxPeriod, cfg.MinPeriod)
	}
	if cfg.MaxPeriod > maxHypothesisPeriod {
		return fmt.Errorf("max period %d exceeds limit %d", cfg.MaxPeriod, maxHypothesisPeriod)
	}
	return nil
}

// CombinedBandpass estimates the dominant cycle from the band-pass bank's
// smoothed power profile: per-channel EMA power feeding a power-weighted
// center of gravity, without the channelized receiver's decibel scoring or
// median stage.
type CombinedBandpass struct {
	cfg    CombinedBandpassConfig
	hp     *HighPassSmoother
	bank   *BandpassBank
	cog    SpectralCoG
	spwr   []float64
	wts    []float64
	maxPwr float64
	period float64
	steps  int
	obs    Observer
}

// NewCombinedBandpass validates the configuration and builds the estimator.
func NewCombinedBandpass(cfg CombinedBandpassConfig) (*CombinedBandpass, error) {
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("combined bandpass config: %w", err)
	}
	return &CombinedBandpass{
		cfg:    cfg,
		hp:     NewHighPassSmoother(cbHPCutoff),
		bank:   NewBandpassBank(cfg.MinPeriod, cfg.MaxPeriod),
		cog:    SpectralCoG{MinPeriod: cfg.MinPeriod, MaxPeriod: cfg.MaxPeriod},
		spwr:   make([]float64, cfg.MaxPeriod+1),
		wts:    make([]float64, cfg.MaxPeriod+1),
		period: float64(cfg.MinPeriod+cfg.MaxPeriod) / 2,
	}, nil
}

func init() {
	register("combined", func() Estimator {
		cb, err := NewCombinedBandpass(CombinedBandpassConfig{})
		if err != nil {
			panic(err)
		}
		return cb
	})
}

func (c *CombinedBandpass) Name() string {
	return fmt.Sprintf("CombinedBandpass(%d,%d)", c.cfg.MinPeriod, c.cfg.MaxPeriod)
}

func (c *CombinedBandpass) Warmup() int { return c.cfg.MaxPeriod }

// Bounds returns the configured period range.
func (c *CombinedBandpass) Bounds() (float64, float64) {
	return float64(c.cfg.MinPeriod), float64(c.cfg.MaxPeriod)
}

// SetObserver installs a diagnostic sink for degenerate-path events.
func (c *CombinedBandpass) SetObserver(o Observer) { c.obs = o }

// Update consumes one price sample and returns the dominant cycle, clamped
// to the configured range.
func (c *CombinedBandpass) Update(sample float64) float64 {
	if !IsValid(sample) {
		observerOrNop(c.obs).Degenerate(c.Name(), "input", c.steps)
		c.steps++
		return c.period
	}
	c.steps++

	s := c.hp.Update(sample)
	ampl := c.bank.Update(s)

	c.maxPwr *= cbMaxDecay
	for n := c.cfg.MinPeriod; n <= c.cfg.MaxPeriod; n++ {
		c.spwr[n] = cbPowerAttack*ampl[n] + (1-cbPowerAttack)*c.spwr[n]
		if c.spwr[n] > c.maxPwr {
			c.maxPwr = c.spwr[n]
		}
	}

	if c.maxPwr < epsilon {
		observerOrNop(c.obs).Degenerate(c.Name(), "power", c.steps)
		return c.period
	}

	for n := c.cfg.MinPeriod; n <= c.cfg.MaxPeriod; n++ {
		if norm := c.spwr[n] / c.maxPwr; norm >= cbPwrThreshold {
			c.wts[n] = norm
		} else {
			c.wts[n] = 0
		}
	}

	cog, ok := c.cog.Estimate(c.wts)
	if !ok {
		observerOrNop(c.obs).Degenerate(c.Name(), "cog", c.steps)
		return c.period
	}

	c.period = Clamp(cog, float64(c.cfg.MinPeriod), float64(c.cfg.MaxPeriod))
	return c.period
}

// Reset clears filter state and the smoothed power table.
func (c *CombinedBandpass) Reset() {
	c.hp.Reset()
	c.bank.Reset()
	for i := range c.spwr {
		c.spwr[i] = 0
		c.wts[i] = 0
	}
	c.maxPwr = 0
	c.period = float64(c.cfg.MinPeriod+c.cfg.MaxPeriod) / 2
	c.steps = 0
}
