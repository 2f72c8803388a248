package journal

import (
	"encoding/csv"
	"os"
	"strconv"
	"time"
)

type CSVJournal struct {
	runs      *csv.Writer
	estimates *csv.Writer
	rf, ef    *os.File
}

func NewCSV(runsPath, estimatesPath string) (*CSVJournal, error) {
	rf, err := os.Create(runsPath)
	if err != nil {
		return nil, err
	}
	ef, err := os.Create(estimatesPath)
	if err != nil {
		rf.Close()
		return nil, err
	}

	rw := csv.NewWriter(rf)
	ew := csv.NewWriter(ef)

	if err := writeHeaders(rw, ew); err != nil {
		rf.Close()
		ef.Close()
		return nil, err
	}

	return &CSVJournal{rw, ew, rf, ef}, nil
}

func writeHeaders(rw, ew *csv.Writer) error {
	if err := rw.Write([]string{"run_id", "estimator", "source", "bars", "started_at"}); err != nil {
		return err
	}
	if err := ew.Write([]string{"run_id", "estimator", "step", "time", "sample", "period"}); err != nil {
		return err
	}

	rw.Flush()
	if err := rw.Error(); err != nil {
		return err
	}
	ew.Flush()
	return ew.Error()
}

func (j *CSVJournal) RecordRun(r RunRecord) error {
	err := j.runs.Write([]string{
		r.RunID,
		r.Estimator,
		r.Source,
		strconv.Itoa(r.Bars),
		r.StartedAt.Format(time.RFC3339),
	})
	if err != nil {
		return err
	}
	j.runs.Flush()
	return j.runs.Error()
}

func (j *CSVJournal) RecordEstimate(e EstimateRecord) error {
	err := j.estimates.Write([]string{
		e.RunID,
		e.Estimator,
		strconv.Itoa(e.Step),
		e.Time.Format(time.RFC3339),
		f(e.Sample),
		f(e.Period),
	})
	if err != nil {
		return err
	}
	j.estimates.Flush()
	return j.estimates.Error()
}

func (j *CSVJournal) Close() error {
	j.runs.Flush()
	if err := j.runs.Error(); err != nil {
		return err
	}
	j.estimates.Flush()
	if err := j.estimates.Error(); err != nil {
		return err
	}

	if err := j.rf.Close(); err != nil {
		return err
	}
	if err := j.ef.Close(); err != nil {
		return err
	}
	return nil
}

func f(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
