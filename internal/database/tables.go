package database

import (
	"database/sql"
	"fmt"

	"github.com/TobiSchelling/billtally/internal/tabulate"
)

// ImportRecord describes one import of CSV tables into the snapshot.
type ImportRecord struct {
	ID              int64
	Paths           tabulate.Paths
	LegislatorCount int
	BillCount       int
	VoteCount       int
	VoteResultCount int
	ImportedAt      *string
}

// Stats contains row counts of the snapshot tables.
type Stats struct {
	Legislators int
	Bills       int
	Votes       int
	VoteResults int
	Imports     int
}

// ReplaceTables swaps the snapshot contents for t in a single transaction
// and records the import.
func (db *DB) ReplaceTables(t tabulate.Tables, paths tabulate.Paths) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("begin import: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{tabulate.TableLegislators, tabulate.TableBills, tabulate.TableVotes, tabulate.TableVoteResults} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}

	if err := insertEach(tx, "INSERT INTO legislators (id, name) VALUES (?, ?)", t.Legislators,
		func(l tabulate.Legislator) []any { return []any{l.ID, l.Name} }); err != nil {
		return fmt.Errorf("inserting legislators: %w", err)
	}
	if err := insertEach(tx, "INSERT INTO bills (id, title, sponsor_id) VALUES (?, ?, ?)", t.Bills,
		func(b tabulate.Bill) []any { return []any{b.ID, b.Title, b.SponsorID} }); err != nil {
		return fmt.Errorf("inserting bills: %w", err)
	}
	if err := insertEach(tx, "INSERT INTO votes (id, bill_id) VALUES (?, ?)", t.Votes,
		func(v tabulate.Vote) []any { return []any{v.ID, v.BillID} }); err != nil {
		return fmt.Errorf("inserting votes: %w", err)
	}
	if err := insertEach(tx, "INSERT INTO vote_results (id, legislator_id, vote_id, vote_type) VALUES (?, ?, ?, ?)", t.VoteResults,
		func(vr tabulate.VoteResult) []any { return []any{vr.ID, vr.LegislatorID, vr.VoteID, vr.VoteType} }); err != nil {
		return fmt.Errorf("inserting vote results: %w", err)
	}

	_, err = tx.Exec(
		`INSERT INTO imports (legislators_path, bills_path, votes_path, vote_results_path,
		    legislator_count, bill_count, vote_count, vote_result_count)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		paths.Legislators, paths.Bills, paths.Votes, paths.VoteResults,
		len(t.Legislators), len(t.Bills), len(t.Votes), len(t.VoteResults),
	)
	if err != nil {
		return fmt.Errorf("recording import: %w", err)
	}

	return tx.Commit()
}

func insertEach[T any](tx *sql.Tx, query string, rows []T, args func(T) []any) error {
	stmt, err := tx.Prepare(query)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, r := range rows {
		if _, err := stmt.Exec(args(r)...); err != nil {
			return err
		}
	}
	return nil
}

// LoadTables reads the four tables back in their original load order.
func (db *DB) LoadTables() (tabulate.Tables, error) {
	var t tabulate.Tables
	var err error

	t.Legislators, err = queryAll(db.conn, "SELECT id, name FROM legislators ORDER BY seq",
		func(rows *sql.Rows) (tabulate.Legislator, error) {
			var l tabulate.Legislator
			err := rows.Scan(&l.ID, &l.Name)
			return l, err
		})
	if err != nil {
		return tabulate.Tables{}, &tabulate.LoadError{Table: tabulate.TableLegislators, Path: db.path, Err: err}
	}

	t.Bills, err = queryAll(db.conn, "SELECT id, title, sponsor_id FROM bills ORDER BY seq",
		func(rows *sql.Rows) (tabulate.Bill, error) {
			var b tabulate.Bill
			err := rows.Scan(&b.ID, &b.Title, &b.SponsorID)
			return b, err
		})
	if err != nil {
		return tabulate.Tables{}, &tabulate.LoadError{Table: tabulate.TableBills, Path: db.path, Err: err}
	}

	t.Votes, err = queryAll(db.conn, "SELECT id, bill_id FROM votes ORDER BY seq",
		func(rows *sql.Rows) (tabulate.Vote, error) {
			var v tabulate.Vote
			err := rows.Scan(&v.ID, &v.BillID)
			return v, err
		})
	if err != nil {
		return tabulate.Tables{}, &tabulate.LoadError{Table: tabulate.TableVotes, Path: db.path, Err: err}
	}

	t.VoteResults, err = queryAll(db.conn, "SELECT id, legislator_id, vote_id, vote_type FROM vote_results ORDER BY seq",
		func(rows *sql.Rows) (tabulate.VoteResult, error) {
			var vr tabulate.VoteResult
			err := rows.Scan(&vr.ID, &vr.LegislatorID, &vr.VoteID, &vr.VoteType)
			return vr, err
		})
	if err != nil {
		return tabulate.Tables{}, &tabulate.LoadError{Table: tabulate.TableVoteResults, Path: db.path, Err: err}
	}

	return t, nil
}

func queryAll[T any](conn *sql.DB, query string, scan func(*sql.Rows) (T, error)) ([]T, error) {
	rows, err := conn.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []T
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// GetLastImport returns the most recent import, or nil if the snapshot has
// never been populated.
func (db *DB) GetLastImport() (*ImportRecord, error) {
	var r ImportRecord
	var legislators, bills, votes, voteResults sql.NullString
	err := db.conn.QueryRow(
		`SELECT id, legislators_path, bills_path, votes_path, vote_results_path,
		        legislator_count, bill_count, vote_count, vote_result_count, imported_at
		 FROM imports ORDER BY id DESC LIMIT 1`,
	).Scan(&r.ID, &legislators, &bills, &votes, &voteResults,
		&r.LegislatorCount, &r.BillCount, &r.VoteCount, &r.VoteResultCount, &r.ImportedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	r.Paths = tabulate.Paths{
		Legislators: legislators.String,
		Bills:       bills.String,
		Votes:       votes.String,
		VoteResults: voteResults.String,
	}
	return &r, nil
}

// GetStats returns row counts for every snapshot table.
func (db *DB) GetStats() (*Stats, error) {
	s := &Stats{}

	queries := []struct {
		sql  string
		dest *int
	}{
		{"SELECT COUNT(*) FROM legislators", &s.Legislators},
		{"SELECT COUNT(*) FROM bills", &s.Bills},
		{"SELECT COUNT(*) FROM votes", &s.Votes},
		{"SELECT COUNT(*) FROM vote_results", &s.VoteResults},
		{"SELECT COUNT(*) FROM imports", &s.Imports},
	}

	for _, q := range queries {
		if err := db.conn.QueryRow(q.sql).Scan(q.dest); err != nil {
			return nil, err
		}
	}

	return s, nil
}
