package database

import (
	"database/sql"
	"fmt"
	"log"
)

// The snapshot schema version lives in PRAGMA user_version; 0 is a file no
// import has touched yet.
func getSchemaVersion(conn *sql.DB) (int, error) {
	var version int
	if err := conn.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return 0, fmt.Errorf("reading snapshot schema version: %w", err)
	}
	return version, nil
}

// pendingMigrations returns the migrations a snapshot at version still
// needs, oldest first.
func pendingMigrations(version int) ([]Migration, error) {
	if latest := latestVersion(); version > latest {
		return nil, fmt.Errorf("snapshot schema version %d was written by a newer billtally (this one supports %d)", version, latest)
	}
	var pending []Migration
	for _, m := range migrations {
		if m.Version > version {
			pending = append(pending, m)
		}
	}
	return pending, nil
}

// migrate brings the snapshot schema up to date. A failed step leaves the
// version at the last step that committed.
func migrate(conn *sql.DB) error {
	current, err := getSchemaVersion(conn)
	if err != nil {
		return err
	}
	pending, err := pendingMigrations(current)
	if err != nil {
		return err
	}
	for _, m := range pending {
		log.Printf("upgrading snapshot schema to %d: %s", m.Version, m.Description)
		if err := applyMigration(conn, m); err != nil {
			return err
		}
	}
	return nil
}

func applyMigration(conn *sql.DB, m Migration) error {
	tx, err := conn.Begin()
	if err != nil {
		return fmt.Errorf("begin schema %d: %w", m.Version, err)
	}
	if err := m.Up(tx); err != nil {
		tx.Rollback()
		return fmt.Errorf("schema %d (%s): %w", m.Version, m.Description, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema %d: %w", m.Version, err)
	}

	// Stamped after commit; the driver ignores user_version set inside a
	// transaction.
	if _, err := conn.Exec(fmt.Sprintf("PRAGMA user_version = %d", m.Version)); err != nil {
		return fmt.Errorf("stamping schema %d: %w", m.Version, err)
	}
	return nil
}
