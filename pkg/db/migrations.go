package db

// migrationsSQL is the schema for the analysis-run history. Statements
// are idempotent so InitDB can run on every startup.
const migrationsSQL = `
CREATE TABLE IF NOT EXISTS runs (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	deck_title TEXT NOT NULL,
	total_cards INTEGER NOT NULL,
	exact_duplicates INTEGER NOT NULL,
	similar_duplicates INTEGER NOT NULL,
	reverse_duplicates INTEGER NOT NULL,
	removed_cards INTEGER NOT NULL DEFAULT 0,
	threshold REAL NOT NULL,
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS run_suggestions (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
	action TEXT NOT NULL,
	targets TEXT NOT NULL,
	duplicate_of INTEGER,
	score REAL,
	rationale TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_run_suggestions_run_id ON run_suggestions(run_id);
`
