package journal

const Schema = `
CREATE TABLE IF NOT EXISTS runs (
	run_id TEXT PRIMARY KEY,
	estimator TEXT NOT NULL,
	source TEXT NOT NULL,
	bars INTEGER NOT NULL,
	started_at DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS estimates (
	run_id TEXT NOT NULL,
	estimator TEXT NOT NULL,
	step INTEGER NOT NULL,
	time DATETIME NOT NULL,
	sample REAL NOT NULL,
	period REAL NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_estimates_run ON estimates(run_id, step);
`
