package estimators

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAutocorrPeriodogramConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		a, err := NewAutocorrPeriodogram(AutocorrPeriodogramConfig{})
		require.NoError(t, err)
		lo, hi := a.Bounds()
		assert.Equal(t, 10.0, lo)
		assert.Equal(t, 48.0, hi)
	})

	t.Run("rejects inverted range", func(t *testing.T) {
		_, err := NewAutocorrPeriodogram(AutocorrPeriodogramConfig{MinPeriod: 30, MaxLag: 20})
		assert.Error(t, err)
	})

	t.Run("rejects oversized tables", func(t *testing.T) {
		_, err := NewAutocorrPeriodogram(AutocorrPeriodogramConfig{MinPeriod: 10, MaxLag: 10000})
		assert.Error(t, err)
	})
}

func TestAutocorrPeriodogramDefaultBeforeHistory(t *testing.T) {
	a, err := NewAutocorrPeriodogram(AutocorrPeriodogramConfig{})
	require.NoError(t, err)

	// With almost no history every lag correlation is degenerate, so the
	// estimate is the window midpoint.
	assert.Equal(t, 29.0, a.Update(100))
	assert.Equal(t, 29.0, a.Update(101))
}

func TestAutocorrPeriodogramConvergesOnSine(t *testing.T) {
	a, err := NewAutocorrPeriodogram(AutocorrPeriodogramConfig{})
	require.NoError(t, err)

	var got float64
	for _, p := range sineSeries(20, 250) {
		got = a.Update(p)
	}
	assert.InDelta(t, 20, got, 3)
}

func TestAutocorrPeriodogramRangeInvariant(t *testing.T) {
	a, err := NewAutocorrPeriodogram(AutocorrPeriodogramConfig{})
	require.NoError(t, err)
	rng := rand.New(rand.NewSource(11))

	price := 50.0
	for i := 0; i < 400; i++ {
		price += rng.NormFloat64()
		got := a.Update(price)
		assert.True(t, IsValid(got), "step %d", i)
		assert.GreaterOrEqual(t, got, 10.0, "step %d", i)
		assert.LessOrEqual(t, got, 48.0, "step %d", i)
	}
}

func TestAutocorrPeriodogramResetReplay(t *testing.T) {
	a, err := NewAutocorrPeriodogram(AutocorrPeriodogramConfig{AvgLength: 12})
	require.NoError(t, err)
	prices := sineSeries(25, 150)

	var first []float64
	for _, p := range prices {
		first = append(first, a.Update(p))
	}

	a.Reset()
	for i, p := range prices {
		assert.Equal(t, first[i], a.Update(p), "step %d", i)
	}
}

func TestAutocorrPeriodogramContainsNaN(t *testing.T) {
	a, err := NewAutocorrPeriodogram(AutocorrPeriodogramConfig{})
	require.NoError(t, err)

	for i, p := range sineSeries(20, 120) {
		if i == 60 {
			p = math.Inf(1)
		}
		got := a.Update(p)
		assert.True(t, IsValid(got), "step %d", i)
	}
}
