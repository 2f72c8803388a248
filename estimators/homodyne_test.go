package estimators

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHomodyneQuadratureConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		h, err := NewHomodyneQuadrature(HomodyneQuadratureConfig{})
		require.NoError(t, err)
		assert.Equal(t, "HomodyneQuadrature(0.07)", h.Name())
	})

	t.Run("rejects alpha out of range", func(t *testing.T) {
		_, err := NewHomodyneQuadrature(HomodyneQuadratureConfig{Alpha: 1.5})
		assert.Error(t, err)
		_, err = NewHomodyneQuadrature(HomodyneQuadratureConfig{Alpha: -0.1})
		assert.Error(t, err)
	})
}

func TestHomodyneQuadratureTracksSine(t *testing.T) {
	h, err := NewHomodyneQuadrature(HomodyneQuadratureConfig{})
	require.NoError(t, err)

	var got float64
	for _, p := range sineSeries(20, 300) {
		got = h.Update(p)
	}
	// The period integration carries a +0.5 offset, so allow a little slack
	// above the true period.
	assert.Greater(t, got, 17.0)
	assert.Less(t, got, 23.0)
}

func TestHomodyneQuadraturePhaseRateClamp(t *testing.T) {
	h, err := NewHomodyneQuadrature(HomodyneQuadratureConfig{})
	require.NoError(t, err)

	// Whatever the input does, the clamped phase rate bounds the
	// instantaneous period to [2π/1.1 + 0.5, 2π/0.1 + 0.5].
	rng := rand.New(rand.NewSource(5))
	for i := 0; i < 600; i++ {
		got := h.Update(rng.Float64() * 100)
		assert.True(t, IsValid(got), "step %d", i)
		assert.Greater(t, got, 2*math.Pi/hqMaxPhaseRate, "step %d", i)
		assert.Less(t, got, 2*math.Pi/hqMinPhaseRate+1, "step %d", i)
	}
}

func TestHomodyneQuadratureResetReplay(t *testing.T) {
	h, err := NewHomodyneQuadrature(HomodyneQuadratureConfig{})
	require.NoError(t, err)
	prices := sineSeries(16, 200)

	var first []float64
	for _, p := range prices {
		first = append(first, h.Update(p))
	}

	h.Reset()
	for i, p := range prices {
		assert.Equal(t, first[i], h.Update(p), "step %d", i)
	}
}

func TestHomodyneQuadratureContainsNaN(t *testing.T) {
	h, err := NewHomodyneQuadrature(HomodyneQuadratureConfig{})
	require.NoError(t, err)

	for i, p := range sineSeries(20, 200) {
		if i == 90 {
			p = math.NaN()
		}
		got := h.Update(p)
		assert.True(t, IsValid(got), "step %d", i)
	}
}
