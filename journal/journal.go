// Package journal records estimator runs for later analysis: one row per
// bar per estimator, tagged with a time-sortable run ID.
package journal

import "time"

// EstimateRecord is one bar's output from one estimator.
type EstimateRecord struct {
	RunID     string
	Estimator string
	Step      int
	Time      time.Time
	Sample    float64 // the input price for this bar
	Period    float64 // the estimated dominant cycle
}

// RunRecord describes one estimator run over one series.
type RunRecord struct {
	RunID     string
	Estimator string
	Source    string // file path or "synth"
	Bars      int
	StartedAt time.Time
}

// Journal persists estimator runs. Implementations are not safe for
// concurrent use; the runner writes from a single goroutine.
type Journal interface {
	RecordRun(RunRecord) error
	RecordEstimate(EstimateRecord) error
	Close() error
}

type discard struct{}

func (discard) RecordRun(RunRecord) error           { return nil }
func (discard) RecordEstimate(EstimateRecord) error { return nil }
func (discard) Close() error                        { return nil }

// Discard returns a Journal that drops every record.
func Discard() Journal {
	return discard{}
}
