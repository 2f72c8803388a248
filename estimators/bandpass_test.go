package estimators

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBandpassBankResonatesAtInputPeriod(t *testing.T) {
	hp := NewHighPassSmoother(40)
	bank := NewBandpassBank(8, 50)

	var ampl []float64
	for i := 0; i < 150; i++ {
		s := hp.Update(100 + 10*math.Sin(2*math.Pi*float64(i)/20))
		ampl = bank.Update(s)
	}

	best := 8
	for n := 8; n <= 50; n++ {
		if ampl[n] > ampl[best] {
			best = n
		}
	}
	assert.InDelta(t, 20, best, 3, "strongest channel should sit at the input period")
}

func TestBandpassBankSilenceDecays(t *testing.T) {
	bank := NewBandpassBank(8, 50)

	// Excite, then feed silence; every channel must ring down.
	for i := 0; i < 60; i++ {
		bank.Update(math.Sin(2 * math.Pi * float64(i) / 15))
	}
	var ampl []float64
	for i := 0; i < 400; i++ {
		ampl = bank.Update(0)
	}
	for n := 8; n <= 50; n++ {
		assert.Less(t, ampl[n], 1e-3, "channel %d", n)
	}
}

func TestBandpassBankReset(t *testing.T) {
	bank := NewBandpassBank(8, 50)
	var first [][]float64
	for i := 0; i < 30; i++ {
		ampl := bank.Update(math.Sin(float64(i)))
		first = append(first, append([]float64(nil), ampl...))
	}

	bank.Reset()
	for i := 0; i < 30; i++ {
		ampl := bank.Update(math.Sin(float64(i)))
		assert.Equal(t, first[i], append([]float64(nil), ampl...))
	}
}

func TestSpectralCoG(t *testing.T) {
	cog := SpectralCoG{MinPeriod: 8, MaxPeriod: 50}

	t.Run("single hypothesis", func(t *testing.T) {
		w := make([]float64, 51)
		w[20] = 5
		p, ok := cog.Estimate(w)
		assert.True(t, ok)
		assert.Equal(t, 20.0, p)
	})

	t.Run("weighted average", func(t *testing.T) {
		w := make([]float64, 51)
		w[10] = 1
		w[30] = 1
		p, ok := cog.Estimate(w)
		assert.True(t, ok)
		assert.Equal(t, 20.0, p)
	})

	t.Run("no weight", func(t *testing.T) {
		w := make([]float64, 51)
		_, ok := cog.Estimate(w)
		assert.False(t, ok)
	})

	t.Run("invalid weights are skipped", func(t *testing.T) {
		w := make([]float64, 51)
		w[15] = math.NaN()
		w[25] = 2
		p, ok := cog.Estimate(w)
		assert.True(t, ok)
		assert.Equal(t, 25.0, p)
	})
}
