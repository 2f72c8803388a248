package estimators

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValid(t *testing.T) {
	assert.True(t, IsValid(0))
	assert.True(t, IsValid(-1.5))
	assert.True(t, IsValid(1e300))
	assert.False(t, IsValid(math.NaN()))
	assert.False(t, IsValid(math.Inf(1)))
	assert.False(t, IsValid(math.Inf(-1)))
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 8.0, Clamp(3, 8, 50))
	assert.Equal(t, 50.0, Clamp(99, 8, 50))
	assert.Equal(t, 20.0, Clamp(20, 8, 50))
}

func TestSafeDiv(t *testing.T) {
	assert.Equal(t, 2.0, SafeDiv(10, 5, -1))
	assert.Equal(t, -1.0, SafeDiv(10, 0, -1))
	assert.Equal(t, -1.0, SafeDiv(10, 1e-14, -1))
	assert.Equal(t, -1.0, SafeDiv(math.NaN(), 5, -1))
}

func TestSafeLog10(t *testing.T) {
	assert.Equal(t, 2.0, SafeLog10(100, -1))
	assert.Equal(t, -1.0, SafeLog10(0, -1))
	assert.Equal(t, -1.0, SafeLog10(-5, -1))
	assert.Equal(t, -1.0, SafeLog10(math.NaN(), -1))
}
