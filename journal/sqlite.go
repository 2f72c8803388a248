package journal

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
)

type SQLiteJournal struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLiteJournal, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLiteJournal{db: db}, nil
}

func (j *SQLiteJournal) RecordRun(r RunRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO runs (run_id, estimator, source, bars, started_at)
		VALUES (?, ?, ?, ?, ?)`,
		r.RunID, r.Estimator, r.Source, r.Bars, r.StartedAt,
	)
	return err
}

func (j *SQLiteJournal) RecordEstimate(e EstimateRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO estimates (run_id, estimator, step, time, sample, period)
		VALUES (?, ?, ?, ?, ?, ?)`,
		e.RunID, e.Estimator, e.Step, e.Time, e.Sample, e.Period,
	)
	return err
}

// ListEstimates returns a run's estimates in step order.
func (j *SQLiteJournal) ListEstimates(runID string) ([]EstimateRecord, error) {
	rows, err := j.db.Query(`
		SELECT run_id, estimator, step, time, sample, period
		FROM estimates WHERE run_id = ? ORDER BY step`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []EstimateRecord
	for rows.Next() {
		var e EstimateRecord
		if err := rows.Scan(&e.RunID, &e.Estimator, &e.Step, &e.Time, &e.Sample, &e.Period); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (j *SQLiteJournal) Close() error {
	return j.db.Close()
}
