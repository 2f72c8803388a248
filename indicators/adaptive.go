package indicators

import (
	"fmt"

	"github.com/rustyeddy/cycles/estimators"
	"github.com/rustyeddy/cycles/pricing"
)

// AdaptiveEMA is an exponential moving average whose period follows a
// dominant-cycle estimator: each bar the estimator's current period sets
// the EMA multiplier, so the average speeds up in short cycles and slows
// down in long ones.
type AdaptiveEMA struct {
	est    estimators.Estimator
	ema    float64
	period float64
	count  int
}

// NewAdaptiveEMA wraps the given estimator. The indicator owns the
// estimator instance; callers must not update it separately.
func NewAdaptiveEMA(est estimators.Estimator) *AdaptiveEMA {
	return &AdaptiveEMA{est: est}
}

func (a *AdaptiveEMA) Name() string {
	return fmt.Sprintf("AdaptiveEMA(%s)", a.est.Name())
}

func (a *AdaptiveEMA) Warmup() int {
	return a.est.Warmup()
}

func (a *AdaptiveEMA) Reset() {
	a.est.Reset()
	a.ema = 0
	a.period = 0
	a.count = 0
}

func (a *AdaptiveEMA) Update(c pricing.Candle) {
	a.period = a.est.Update(c.Close)

	if a.count == 0 {
		a.ema = c.Close
	} else {
		multiplier := 2.0 / (a.period + 1)
		a.ema = (c.Close-a.ema)*multiplier + a.ema
	}
	a.count++
}

func (a *AdaptiveEMA) Ready() bool {
	return a.count >= a.Warmup()
}

func (a *AdaptiveEMA) Value() float64 {
	if !a.Ready() {
		return 0
	}
	return a.ema
}

// Period exposes the estimator's current cycle estimate alongside the
// average itself.
func (a *AdaptiveEMA) Period() float64 {
	return a.period
}

// AdaptiveMA is a simple moving average whose window length follows a
// dominant-cycle estimator, rounded to the nearest bar.
type AdaptiveMA struct {
	est     estimators.Estimator
	history []float64
	period  float64
	count   int
}

// NewAdaptiveMA wraps the given estimator. The history buffer is sized
// from the estimator's bounds when it has them.
func NewAdaptiveMA(est estimators.Estimator) *AdaptiveMA {
	capacity := 64
	if b, ok := est.(estimators.Bounder); ok {
		if _, hi := b.Bounds(); int(hi) > 0 {
			capacity = int(hi) + 1
		}
	}
	return &AdaptiveMA{
		est:     est,
		history: make([]float64, 0, capacity),
	}
}

func (a *AdaptiveMA) Name() string {
	return fmt.Sprintf("AdaptiveMA(%s)", a.est.Name())
}

func (a *AdaptiveMA) Warmup() int {
	return a.est.Warmup()
}

func (a *AdaptiveMA) Reset() {
	a.est.Reset()
	a.history = a.history[:0]
	a.period = 0
	a.count = 0
}

func (a *AdaptiveMA) Update(c pricing.Candle) {
	a.period = a.est.Update(c.Close)

	if len(a.history) == cap(a.history) {
		copy(a.history, a.history[1:])
		a.history = a.history[:len(a.history)-1]
	}
	a.history = append(a.history, c.Close)
	a.count++
}

func (a *AdaptiveMA) Ready() bool {
	return a.count >= a.Warmup()
}

// Value averages the most recent bars, window length set by the current
// cycle estimate.
func (a *AdaptiveMA) Value() float64 {
	if !a.Ready() {
		return 0
	}
	window := int(a.period + 0.5)
	if window < 1 {
		window = 1
	}
	if window > len(a.history) {
		window = len(a.history)
	}
	sum := 0.0
	for _, v := range a.history[len(a.history)-window:] {
		sum += v
	}
	return sum / float64(window)
}

// Period exposes the estimator's current cycle estimate.
func (a *AdaptiveMA) Period() float64 {
	return a.period
}
