package journal

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVJournalHeaders(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	runsPath := filepath.Join(dir, "runs.csv")
	estimatesPath := filepath.Join(dir, "estimates.csv")

	j, err := NewCSV(runsPath, estimatesPath)
	require.NoError(t, err)
	assert.NoError(t, j.Close())

	runsData, err := os.ReadFile(runsPath)
	assert.NoError(t, err)
	estData, err := os.ReadFile(estimatesPath)
	assert.NoError(t, err)

	runsHeader, err := csv.NewReader(strings.NewReader(string(runsData))).Read()
	assert.NoError(t, err)
	estHeader, err := csv.NewReader(strings.NewReader(string(estData))).Read()
	assert.NoError(t, err)

	assert.Equal(t, []string{"run_id", "estimator", "source", "bars", "started_at"}, runsHeader)
	assert.Equal(t, []string{"run_id", "estimator", "step", "time", "sample", "period"}, estHeader)
}

func TestCSVJournalCreateErrors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	t.Run("bad runs path", func(t *testing.T) {
		_, err := NewCSV(filepath.Join(dir, "missing", "runs.csv"), filepath.Join(dir, "estimates.csv"))
		assert.Error(t, err)
	})

	t.Run("bad estimates path", func(t *testing.T) {
		_, err := NewCSV(filepath.Join(dir, "runs.csv"), filepath.Join(dir, "missing", "estimates.csv"))
		assert.Error(t, err)
	})

	t.Run("header write failure", func(t *testing.T) {
		// /dev/full accepts the open but fails every write, which surfaces
		// through the header flush.
		if _, statErr := os.Stat("/dev/full"); statErr != nil {
			t.Skip("/dev/full not available")
		}
		j, err := NewCSV("/dev/full", filepath.Join(dir, "estimates2.csv"))
		assert.Error(t, err)
		assert.Nil(t, j)
	})
}

func TestCSVJournalRecords(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	j, err := NewCSV(filepath.Join(dir, "runs.csv"), filepath.Join(dir, "estimates.csv"))
	require.NoError(t, err)

	started := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, j.RecordRun(RunRecord{
		RunID:     "01RUN",
		Estimator: "burg",
		Source:    "synth",
		Bars:      200,
		StartedAt: started,
	}))
	require.NoError(t, j.RecordEstimate(EstimateRecord{
		RunID:     "01RUN",
		Estimator: "burg",
		Step:      7,
		Time:      started.Add(7 * time.Minute),
		Sample:    101.25,
		Period:    24,
	}))
	require.NoError(t, j.Close())

	data, err := os.ReadFile(filepath.Join(dir, "estimates.csv"))
	require.NoError(t, err)

	rows, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "01RUN", rows[1][0])
	assert.Equal(t, "7", rows[1][2])
	assert.Equal(t, "24.000000", rows[1][5])
}
