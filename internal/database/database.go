package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// DB is an open snapshot of the four input tables plus the import history.
type DB struct {
	conn *sql.DB
	path string
}

// Open opens the snapshot at dbPath for import, creating the file and its
// directory if needed and bringing the schema up to date.
func Open(dbPath string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating snapshot directory: %w", err)
	}

	conn, err := openConn(dbPath)
	if err != nil {
		return nil, err
	}

	// Rollback journal instead of WAL: the snapshot stays one file that can
	// be copied next to the csv inputs.
	if _, err := conn.Exec("PRAGMA journal_mode=DELETE"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("setting journal mode: %w", err)
	}

	if err := migrate(conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrating snapshot: %w", err)
	}

	return &DB{conn: conn, path: dbPath}, nil
}

// OpenExisting is Open for a snapshot that an earlier import already wrote.
func OpenExisting(dbPath string) (*DB, error) {
	if _, err := os.Stat(dbPath); err != nil {
		return nil, fmt.Errorf("snapshot not found: %w", err)
	}
	return Open(dbPath)
}

// OpenReadOnly opens an existing snapshot for reporting. The connection
// rejects writes and no migration runs, so a snapshot on an older schema is
// refused until it is re-imported.
func OpenReadOnly(dbPath string) (*DB, error) {
	if _, err := os.Stat(dbPath); err != nil {
		return nil, fmt.Errorf("snapshot not found: %w", err)
	}

	conn, err := openConn(dbPath + "?_pragma=query_only(1)")
	if err != nil {
		return nil, err
	}

	version, err := getSchemaVersion(conn)
	if err != nil {
		conn.Close()
		return nil, err
	}
	if latest := latestVersion(); version != latest {
		conn.Close()
		return nil, fmt.Errorf("snapshot %s has schema version %d, want %d: run import to rebuild it", dbPath, version, latest)
	}

	return &DB{conn: conn, path: dbPath}, nil
}

func openConn(dsn string) (*sql.DB, error) {
	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening snapshot: %w", err)
	}
	// Per-connection pragmas such as query_only only hold if every query
	// shares the one connection.
	conn.SetMaxOpenConns(1)
	return conn, nil
}

// Close releases the snapshot connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Path returns the snapshot file path.
func (db *DB) Path() string {
	return db.path
}
