package estimators

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry(t *testing.T) {
	want := []string{"autocorr", "burg", "channelized", "combined", "griffiths", "homodyne"}
	assert.Equal(t, want, Names())

	for _, name := range want {
		est, err := ByName(name)
		require.NoError(t, err, name)
		assert.NotEmpty(t, est.Name())
		assert.Greater(t, est.Warmup(), 0)
	}

	_, err := ByName("nope")
	assert.Error(t, err)
}

// Shared contract checks across every registered estimator.
func TestAllEstimatorsInvariants(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			t.Run("finite and bounded on noise", func(t *testing.T) {
				est, err := ByName(name)
				require.NoError(t, err)
				rng := rand.New(rand.NewSource(42))

				price := 100.0
				for i := 0; i < 600; i++ {
					price += rng.NormFloat64()
					got := est.Update(price)
					require.True(t, IsValid(got), "step %d", i)
					if b, ok := est.(Bounder); ok {
						lo, hi := b.Bounds()
						require.GreaterOrEqual(t, got, lo, "step %d", i)
						require.LessOrEqual(t, got, hi, "step %d", i)
					}
				}
			})

			t.Run("reset replays identically", func(t *testing.T) {
				est, err := ByName(name)
				require.NoError(t, err)
				prices := sineSeries(21, 150)

				var first []float64
				for _, p := range prices {
					first = append(first, est.Update(p))
				}
				est.Reset()
				for i, p := range prices {
					require.Equal(t, first[i], est.Update(p), "step %d", i)
				}
			})

			t.Run("two instances agree", func(t *testing.T) {
				a, err := ByName(name)
				require.NoError(t, err)
				b, err := ByName(name)
				require.NoError(t, err)
				for i, p := range sineSeries(13, 120) {
					require.Equal(t, a.Update(p), b.Update(p), "step %d", i)
				}
			})

			t.Run("contains a mid-stream NaN", func(t *testing.T) {
				est, err := ByName(name)
				require.NoError(t, err)
				for i, p := range sineSeries(20, 160) {
					if i == 80 {
						p = math.NaN()
					}
					require.True(t, IsValid(est.Update(p)), "step %d", i)
				}
			})
		})
	}
}
