// Package pricing holds the bar types and series loaders the cycle
// estimators consume.
package pricing

import "time"

// Candle is one closed OHLC bar; estimators consume one Close per bar.
type Candle struct {
	Instrument string // optional but handy
	Time       time.Time

	Open  float64
	High  float64
	Low   float64
	Close float64

	Volume float64 // optional
}

// Closes extracts the close series from a candle slice.
func Closes(candles []Candle) []float64 {
	closes := make([]float64, len(candles))
	for i, c := range candles {
		closes[i] = c.Close
	}
	return closes
}
