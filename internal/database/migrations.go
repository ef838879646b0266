package database

import "database/sql"

// Migration represents a single schema migration step.
type Migration struct {
	Version     int
	Description string
	Up          func(tx *sql.Tx) error
}

// migrations is the ordered list of all schema migrations.
// Append new migrations to the end with incrementing Version numbers.
//
// Table ids are not unique, so duplicate rows survive an import. seq
// preserves load order.
var migrations = []Migration{
	{
		Version:     1,
		Description: "input tables",
		Up: func(tx *sql.Tx) error {
			_, err := tx.Exec(`
CREATE TABLE IF NOT EXISTS legislators (
    seq INTEGER PRIMARY KEY AUTOINCREMENT,
    id INTEGER NOT NULL,
    name TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS bills (
    seq INTEGER PRIMARY KEY AUTOINCREMENT,
    id INTEGER NOT NULL,
    title TEXT NOT NULL,
    sponsor_id INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS votes (
    seq INTEGER PRIMARY KEY AUTOINCREMENT,
    id INTEGER NOT NULL,
    bill_id INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS vote_results (
    seq INTEGER PRIMARY KEY AUTOINCREMENT,
    id INTEGER,
    legislator_id INTEGER NOT NULL,
    vote_id INTEGER NOT NULL,
    vote_type INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_legislators_id ON legislators(id);
CREATE INDEX IF NOT EXISTS idx_bills_id ON bills(id);
CREATE INDEX IF NOT EXISTS idx_votes_id ON votes(id);
`)
			return err
		},
	},
	{
		Version:     2,
		Description: "import history",
		Up: func(tx *sql.Tx) error {
			_, err := tx.Exec(`
CREATE TABLE IF NOT EXISTS imports (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    legislators_path TEXT,
    bills_path TEXT,
    votes_path TEXT,
    vote_results_path TEXT,
    legislator_count INTEGER DEFAULT 0,
    bill_count INTEGER DEFAULT 0,
    vote_count INTEGER DEFAULT 0,
    vote_result_count INTEGER DEFAULT 0,
    imported_at TEXT DEFAULT (datetime('now'))
);
`)
			return err
		},
	},
}

// latestVersion returns the highest migration version number.
func latestVersion() int {
	if len(migrations) == 0 {
		return 0
	}
	return migrations[len(migrations)-1].Version
}
