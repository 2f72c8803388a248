package pricing

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ulikunitz/xz"
)

const sampleCSV = `time,open,high,low,close,volume
2025-01-01T00:00:00Z,100,101,99,100.5,1000
2025-01-01T00:01:00Z,100.5,102,100,101.5,1100
2025-01-01T00:02:00Z,101.5,101.6,100.2,100.4,900
`

func TestReadCandles(t *testing.T) {
	candles, err := ReadCandles(strings.NewReader(sampleCSV))
	require.NoError(t, err)
	require.Len(t, candles, 3)

	assert.Equal(t, 100.5, candles[0].Close)
	assert.Equal(t, 1100.0, candles[1].Volume)
	assert.Equal(t, time.Date(2025, 1, 1, 0, 2, 0, 0, time.UTC), candles[2].Time)
}

func TestReadCandlesUnixTimestamps(t *testing.T) {
	candles, err := ReadCandles(strings.NewReader("1735689600,1,2,0.5,1.5\n"))
	require.NoError(t, err)
	require.Len(t, candles, 1)
	assert.Equal(t, int64(1735689600), candles[0].Time.Unix())
}

func TestReadCandlesRejectsBadRows(t *testing.T) {
	_, err := ReadCandles(strings.NewReader("2025-01-01T00:00:00Z,1,2\n"))
	assert.Error(t, err)

	_, err = ReadCandles(strings.NewReader("2025-01-01T00:00:00Z,x,2,0.5,1\n"))
	assert.Error(t, err)

	_, err = ReadCandles(strings.NewReader(""))
	assert.Error(t, err)
}

func TestLoadCandlesPlainFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "candles.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0644))

	candles, err := LoadCandles(path)
	require.NoError(t, err)
	assert.Len(t, candles, 3)
}

func TestLoadCandlesXZ(t *testing.T) {
	path := filepath.Join(t.TempDir(), "candles.csv.xz")
	f, err := os.Create(path)
	require.NoError(t, err)
	w, err := xz.NewWriter(f)
	require.NoError(t, err)
	_, err = w.Write([]byte(sampleCSV))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	require.NoError(t, f.Close())

	candles, err := LoadCandles(path)
	require.NoError(t, err)
	assert.Len(t, candles, 3)
	assert.Equal(t, 100.4, candles[2].Close)
}

func TestSynthDeterministic(t *testing.T) {
	cfg := SynthConfig{Period: 20, Amplitude: 5, Base: 50, Noise: 0.5, Bars: 100, Seed: 9}
	a := Synth(cfg)
	b := Synth(cfg)
	require.Len(t, a, 100)
	assert.Equal(t, Closes(a), Closes(b))
}

func TestSynthCleanWavePeriod(t *testing.T) {
	candles := Synth(SynthConfig{Period: 10, Amplitude: 1, Base: 0, Bars: 21})
	closes := Closes(candles)
	// One full cycle apart the wave repeats.
	assert.InDelta(t, closes[0], closes[10], 1e-9)
	assert.InDelta(t, closes[5], closes[15], 1e-9)
}
