package analysis

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/cycles/journal"
)

func makeRun(periods []float64) []journal.EstimateRecord {
	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	recs := make([]journal.EstimateRecord, len(periods))
	for i, p := range periods {
		recs[i] = journal.EstimateRecord{
			RunID:     "01TESTRUN",
			Estimator: "test",
			Step:      i,
			Time:      start.Add(time.Duration(i) * time.Minute),
			Sample:    100,
			Period:    p,
		}
	}
	return recs
}

func TestSummarizeDistribution(t *testing.T) {
	recs := makeRun([]float64{29, 29, 18, 20, 22, 20})

	r := Summarize(recs, 2, 0)
	require.Equal(t, 6, r.Bars)
	assert.Equal(t, "01TESTRUN", r.RunID)
	assert.InDelta(t, 20.0, r.Mean, 1e-9)
	assert.Equal(t, 18.0, r.Min)
	assert.Equal(t, 22.0, r.Max)
	assert.Equal(t, 20.0, r.Final)
	assert.Zero(t, r.TruePeriod)
}

func TestSummarizeConvergence(t *testing.T) {
	// Settles into the +/-2 band around 20 at bar 3 and stays there.
	recs := makeRun([]float64{29, 25, 24, 21, 20, 19, 20.5})

	r := Summarize(recs, 0, 20)
	require.True(t, r.Converged)
	assert.Equal(t, 3, r.ConvergedAt)
	assert.InDelta(t, 0.625, r.MAE, 1e-9)
}

func TestSummarizeNeverConverges(t *testing.T) {
	recs := makeRun([]float64{29, 40, 29, 45, 30})

	r := Summarize(recs, 0, 20)
	assert.False(t, r.Converged)
}

func TestSummarizeLateExcursion(t *testing.T) {
	// A single late excursion out of the band resets convergence.
	recs := makeRun([]float64{20, 20, 20, 30, 20, 20})

	r := Summarize(recs, 0, 20)
	require.True(t, r.Converged)
	assert.Equal(t, 4, r.ConvergedAt)
}

func TestSummarizeEmpty(t *testing.T) {
	r := Summarize(nil, 10, 20)
	assert.Zero(t, r.Bars)
	assert.False(t, r.Converged)
}

func TestPrint(t *testing.T) {
	recs := makeRun([]float64{29, 21, 20, 20})
	r := Summarize(recs, 1, 20)

	var buf bytes.Buffer
	Print(&buf, r)

	out := buf.String()
	assert.Contains(t, out, "01TESTRUN")
	assert.Contains(t, out, "True Period:   20.00")
	assert.Contains(t, out, "Converged At:  bar 1")
}
