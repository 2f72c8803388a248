package estimators

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMedianWindow(t *testing.T) {
	t.Run("odd count", func(t *testing.T) {
		w := NewMedianWindow(5)
		for _, v := range []float64{5, 1, 3} {
			w.Push(v)
		}
		assert.Equal(t, 3, w.Len())
		assert.Equal(t, 3.0, w.Median())
	})

	t.Run("even count averages middles", func(t *testing.T) {
		w := NewMedianWindow(5)
		for _, v := range []float64{1, 2, 3, 10} {
			w.Push(v)
		}
		assert.Equal(t, 2.5, w.Median())
	})

	t.Run("evicts oldest first", func(t *testing.T) {
		w := NewMedianWindow(3)
		for _, v := range []float64{100, 1, 2, 3} {
			w.Push(v) // 100 falls out
		}
		assert.Equal(t, 2.0, w.Median())
	})

	t.Run("empty window", func(t *testing.T) {
		w := NewMedianWindow(4)
		assert.Equal(t, 0.0, w.Median())
	})

	t.Run("reset", func(t *testing.T) {
		w := NewMedianWindow(3)
		w.Push(7)
		w.Reset()
		assert.Equal(t, 0, w.Len())
		assert.Equal(t, 0.0, w.Median())
	})

	t.Run("median does not disturb contents", func(t *testing.T) {
		w := NewMedianWindow(3)
		w.Push(3)
		w.Push(1)
		w.Push(2)
		assert.Equal(t, 2.0, w.Median())
		assert.Equal(t, 2.0, w.Median())
	})
}
