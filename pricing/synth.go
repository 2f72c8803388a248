package pricing

import (
	"math"
	"math/rand"
	"time"
)

// SynthConfig describes a synthetic price series for estimator research:
// a sine of known period, optionally with gaussian noise, around a base
// level.
type SynthConfig struct {
	Period    float64 // cycle length in bars
	Amplitude float64 // sine amplitude in price units
	Base      float64 // price level the cycle oscillates around
	Noise     float64 // gaussian noise sigma, 0 for a clean wave
	Bars      int
	Seed      int64
}

// Synth generates the configured series as candles one minute apart.
// Identical configs generate identical series.
func Synth(cfg SynthConfig) []Candle {
	if cfg.Period <= 0 {
		cfg.Period = 20
	}
	if cfg.Amplitude == 0 {
		cfg.Amplitude = 10
	}
	if cfg.Base == 0 {
		cfg.Base = 100
	}
	if cfg.Bars <= 0 {
		cfg.Bars = 200
	}
	rng := rand.New(rand.NewSource(cfg.Seed))
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	candles := make([]Candle, cfg.Bars)
	for i := range candles {
		v := cfg.Base + cfg.Amplitude*math.Sin(2*math.Pi*float64(i)/cfg.Period)
		if cfg.Noise > 0 {
			v += rng.NormFloat64() * cfg.Noise
		}
		candles[i] = Candle{
			Instrument: "SYNTH",
			Time:       start.Add(time.Duration(i) * time.Minute),
			Open:       v,
			High:       v,
			Low:        v,
			Close:      v,
		}
	}
	return candles
}
