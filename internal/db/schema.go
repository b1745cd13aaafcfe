package db

import "database/sql"

// HistoryTablePrefix marks bookkeeping tables so table listings can hide them.
const HistoryTablePrefix = "bestiary_"

// SchemaSQL creates the session bookkeeping tables. Dataset tables are
// created at import time from the files themselves.
const SchemaSQL = `
-- One row per imported file
CREATE TABLE IF NOT EXISTS bestiary_imports (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	file TEXT NOT NULL,
	table_name TEXT NOT NULL,
	rows_inserted INTEGER NOT NULL DEFAULT 0,
	rows_failed INTEGER NOT NULL DEFAULT 0,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- One row per randomize invocation
CREATE TABLE IF NOT EXISTS bestiary_runs (
	id TEXT PRIMARY KEY,
	options TEXT NOT NULL,
	swaps INTEGER NOT NULL DEFAULT 0,
	reassigned INTEGER NOT NULL DEFAULT 0,
	jittered INTEGER NOT NULL DEFAULT 0,
	duplicated INTEGER NOT NULL DEFAULT 0,
	deleted INTEGER NOT NULL DEFAULT 0,
	error TEXT,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);
`

// InitSchema creates the bookkeeping tables if they do not exist.
func InitSchema(database *sql.DB) error {
	_, err := database.Exec(SchemaSQL)
	return err
}
