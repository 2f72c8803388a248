package estimators

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// Channelized-receiver constants from the TASC formulation: candidate
// periods 8..50, decibel scoring against the loudest channel, and a 10-bar
// trailing median on the raw center of gravity.
const (
	crMinPeriod   = 8
	crMaxPeriod   = 50
	crMedianSpan  = 10
	crHPCutoff    = 40
	crDBThreshold = 3
	crDBCeiling   = 20
)

// ChannelizedReceiver estimates the dominant cycle with a bank of resonant
// band-pass channels, treating each candidate period as a receiver channel
// and scoring it in decibels relative to the strongest channel.
type ChannelizedReceiver struct {
	hp      *HighPassSmoother
	bank    *BandpassBank
	cog     SpectralCoG
	median  *MedianWindow
	weights []float64
	period  float64
	steps   int
	obs     Observer
}

// NewChannelizedReceiver builds the estimator with its fixed 8..50 period
// range.
func NewChannelizedReceiver() *ChannelizedReceiver {
	return &ChannelizedReceiver{
		hp:      NewHighPassSmoother(crHPCutoff),
		bank:    NewBandpassBank(crMinPeriod, crMaxPeriod),
		cog:     SpectralCoG{MinPeriod: crMinPeriod, MaxPeriod: crMaxPeriod},
		median:  NewMedianWindow(crMedianSpan),
		weights: make([]float64, crMaxPeriod+1),
		period:  (crMinPeriod + crMaxPeriod) / 2,
	}
}

func init() {
	register("channelized", func() Estimator { return NewChannelizedReceiver() })
}

func (c *ChannelizedReceiver) Name() string {
	return fmt.Sprintf("ChannelizedReceiver(%d,%d)", crMinPeriod, crMaxPeriod)
}

func (c *ChannelizedReceiver) Warmup() int { return crMaxPeriod }

// Bounds returns the fixed period range.
func (c *ChannelizedReceiver) Bounds() (float64, float64) {
	return crMinPeriod, crMaxPeriod
}

// SetObserver installs a diagnostic sink for degenerate-path events.
func (c *ChannelizedReceiver) SetObserver(o Observer) { c.obs = o }

// Update consumes one price sample and returns the median-filtered dominant
// cycle, clamped to [8, 50].
func (c *ChannelizedReceiver) Update(sample float64) float64 {
	if !IsValid(sample) {
		observerOrNop(c.obs).Degenerate(c.Name(), "input", c.steps)
		c.steps++
		return c.period
	}
	c.steps++

	s := c.hp.Update(sample)
	ampl := c.bank.Update(s)

	raw := c.period
	maxAmpl := floats.Max(ampl[crMinPeriod : crMaxPeriod+1])
	if maxAmpl > epsilon {
		for n := crMinPeriod; n <= crMaxPeriod; n++ {
			db := dbScore(ampl[n] / maxAmpl)
			if db <= crDBThreshold {
				c.weights[n] = crDBCeiling - db
			} else {
				c.weights[n] = 0
			}
		}
		if cog, ok := c.cog.Estimate(c.weights); ok {
			raw = cog
		} else {
			observerOrNop(c.obs).Degenerate(c.Name(), "cog", c.steps)
		}
	} else {
		observerOrNop(c.obs).Degenerate(c.Name(), "amplitude", c.steps)
	}

	c.median.Push(raw)
	c.period = Clamp(c.median.Median(), crMinPeriod, crMaxPeriod)
	return c.period
}

// Reset clears all filter and median state; the next Update starts cold.
func (c *ChannelizedReceiver) Reset() {
	c.hp.Reset()
	c.bank.Reset()
	c.median.Reset()
	for i := range c.weights {
		c.weights[i] = 0
	}
	c.period = (crMinPeriod + crMaxPeriod) / 2
	c.steps = 0
}

// dbScore maps a normalized amplitude ratio in [0,1] to decibels below the
// strongest channel, saturating at the ceiling.
func dbScore(ratio float64) float64 {
	ratio = Clamp(ratio, 0, 1)
	db := -10 * SafeLog10(0.01/(1-0.99*ratio), -crDBCeiling/10.0)
	if db > crDBCeiling {
		db = crDBCeiling
	}
	if db < 0 {
		db = 0
	}
	return db
}
