package tabulate

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Table names used in errors and by the snapshot store.
const (
	TableLegislators = "legislators"
	TableBills       = "bills"
	TableVotes       = "votes"
	TableVoteResults = "vote_results"
)

// Paths locates the four input tables on disk.
type Paths struct {
	Legislators string
	Bills       string
	Votes       string
	VoteResults string
}

// LoadFiles reads all four tables. Nothing is returned unless every table
// loads cleanly.
func LoadFiles(p Paths) (Tables, error) {
	var t Tables
	var err error

	if t.Legislators, err = readFile(p.Legislators, TableLegislators, ReadLegislators); err != nil {
		return Tables{}, err
	}
	if t.Bills, err = readFile(p.Bills, TableBills, ReadBills); err != nil {
		return Tables{}, err
	}
	if t.Votes, err = readFile(p.Votes, TableVotes, ReadVotes); err != nil {
		return Tables{}, err
	}
	if t.VoteResults, err = readFile(p.VoteResults, TableVoteResults, ReadVoteResults); err != nil {
		return Tables{}, err
	}
	return t, nil
}

func readFile[T any](path, table string, read func(io.Reader) ([]T, error)) ([]T, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Table: table, Path: path, Err: err}
	}
	defer f.Close()

	rows, err := read(f)
	if err != nil {
		var le *LoadError
		if errors.As(err, &le) && le.Path == "" {
			le.Path = path
		}
		return nil, err
	}
	return rows, nil
}

// ReadLegislators parses a legislators table with columns id and name.
func ReadLegislators(r io.Reader) ([]Legislator, error) {
	t, err := readTable(r, TableLegislators, "id", "name")
	if err != nil {
		return nil, err
	}
	out := make([]Legislator, 0, len(t.rows))
	for i := range t.rows {
		id, err := t.intField(i, "id")
		if err != nil {
			return nil, err
		}
		out = append(out, Legislator{ID: id, Name: t.strField(i, "name")})
	}
	return out, nil
}

// ReadBills parses a bills table with columns id, title and sponsor_id.
func ReadBills(r io.Reader) ([]Bill, error) {
	t, err := readTable(r, TableBills, "id", "title", "sponsor_id")
	if err != nil {
		return nil, err
	}
	out := make([]Bill, 0, len(t.rows))
	for i := range t.rows {
		id, err := t.intField(i, "id")
		if err != nil {
			return nil, err
		}
		sponsor, err := t.intField(i, "sponsor_id")
		if err != nil {
			return nil, err
		}
		out = append(out, Bill{ID: id, Title: t.strField(i, "title"), SponsorID: sponsor})
	}
	return out, nil
}

// ReadVotes parses a votes table with columns id and bill_id.
func ReadVotes(r io.Reader) ([]Vote, error) {
	t, err := readTable(r, TableVotes, "id", "bill_id")
	if err != nil {
		return nil, err
	}
	out := make([]Vote, 0, len(t.rows))
	for i := range t.rows {
		id, err := t.intField(i, "id")
		if err != nil {
			return nil, err
		}
		bill, err := t.intField(i, "bill_id")
		if err != nil {
			return nil, err
		}
		out = append(out, Vote{ID: id, BillID: bill})
	}
	return out, nil
}

// ReadVoteResults parses a vote results table with columns legislator_id,
// vote_id and vote_type. An id column is read when present; blank or
// non-integer ids are left nil since no report uses them.
func ReadVoteResults(r io.Reader) ([]VoteResult, error) {
	t, err := readTable(r, TableVoteResults, "legislator_id", "vote_id", "vote_type")
	if err != nil {
		return nil, err
	}
	_, hasID := t.cols["id"]

	out := make([]VoteResult, 0, len(t.rows))
	for i := range t.rows {
		var vr VoteResult
		if hasID {
			vr.ID = t.optionalIntField(i, "id")
		}
		if vr.LegislatorID, err = t.intField(i, "legislator_id"); err != nil {
			return nil, err
		}
		if vr.VoteID, err = t.intField(i, "vote_id"); err != nil {
			return nil, err
		}
		if vr.VoteType, err = t.intField(i, "vote_type"); err != nil {
			return nil, err
		}
		out = append(out, vr)
	}
	return out, nil
}

// csvTable is a fully read delimited table with its header indexed by name.
type csvTable struct {
	name  string
	cols  map[string]int
	rows  [][]string
	lines []int
}

func readTable(r io.Reader, name string, required ...string) (*csvTable, error) {
	cr := csv.NewReader(r)

	header, err := cr.Read()
	if err == io.EOF {
		return nil, &LoadError{Table: name, Err: errors.New("no header row")}
	}
	if err != nil {
		return nil, &LoadError{Table: name, Err: err}
	}

	t := &csvTable{name: name, cols: make(map[string]int, len(header))}
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		h = strings.TrimSpace(h)
		if _, dup := t.cols[h]; !dup {
			t.cols[h] = i
		}
	}
	for _, col := range required {
		if _, ok := t.cols[col]; !ok {
			return nil, &LoadError{Table: name, Column: col}
		}
	}

	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			line := 0
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				line = pe.Line
			}
			return nil, &ParseError{Table: name, Line: line, Err: err}
		}
		line, _ := cr.FieldPos(0)
		t.rows = append(t.rows, rec)
		t.lines = append(t.lines, line)
	}
	return t, nil
}

func (t *csvTable) strField(row int, col string) string {
	return t.rows[row][t.cols[col]]
}

func (t *csvTable) intField(row int, col string) (int64, error) {
	raw := t.strField(row, col)
	v, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		var ne *strconv.NumError
		if errors.As(err, &ne) {
			err = ne.Err
		}
		return 0, &ParseError{Table: t.name, Line: t.lines[row], Column: col, Value: raw, Err: err}
	}
	return v, nil
}

// optionalIntField returns nil for a blank or non-integer value.
func (t *csvTable) optionalIntField(row int, col string) *int64 {
	v, err := strconv.ParseInt(strings.TrimSpace(t.strField(row, col)), 10, 64)
	if err != nil {
		return nil
	}
	return &v
}

// String summarizes the row counts of each table.
func (t Tables) String() string {
	return fmt.Sprintf("%d legislators, %d bills, %d votes, %d vote results",
		len(t.Legislators), len(t.Bills), len(t.Votes), len(t.VoteResults))
}
