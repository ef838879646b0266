package tabulate

import (
	"slices"
	"strconv"
	"strings"
)

// Deliverable selects which report to generate.
type Deliverable int

const (
	// LegislatorCounts is deliverable 1: support/oppose counts per legislator.
	LegislatorCounts Deliverable = 1
	// BillCounts is deliverable 2: supporter/opposer counts and sponsor per bill.
	BillCounts Deliverable = 2
)

// ParseDeliverable parses a deliverable selector ("1" or "2").
func ParseDeliverable(s string) (Deliverable, error) {
	switch strings.TrimSpace(s) {
	case "1":
		return LegislatorCounts, nil
	case "2":
		return BillCounts, nil
	}
	return 0, &ArgumentError{Name: "deliverable mode", Value: s}
}

// Ordinal returns "first" or "second".
func (d Deliverable) Ordinal() string {
	switch d {
	case LegislatorCounts:
		return "first"
	case BillCounts:
		return "second"
	}
	return strconv.Itoa(int(d))
}

// Report is a rendered deliverable: a header and string rows. The first
// column is always the row identifier.
type Report struct {
	Columns []string
	Rows    [][]string
}

// LegislatorColumns is the header of deliverable 1.
var LegislatorColumns = []string{"id", "name", "num_supported_bills", "num_opposed_bills"}

// BillColumns is the header of deliverable 2.
var BillColumns = []string{"id", "title", "supporter_count", "opposer_count", "primary_sponsor"}

// Generate computes the selected deliverable as a Report.
func (tb *Tabulator) Generate(d Deliverable) (Report, error) {
	switch d {
	case LegislatorCounts:
		return LegislatorReport(tb.LegislatorReport()), nil
	case BillCounts:
		return BillReport(tb.BillReport()), nil
	}
	return Report{}, &ArgumentError{Name: "deliverable mode", Value: strconv.Itoa(int(d))}
}

// LegislatorReport converts legislator rows into a Report.
func LegislatorReport(rows []LegislatorRow) Report {
	r := Report{Columns: slices.Clone(LegislatorColumns), Rows: make([][]string, 0, len(rows))}
	for _, row := range rows {
		r.Rows = append(r.Rows, []string{
			strconv.FormatInt(row.ID, 10),
			row.Name,
			strconv.Itoa(row.NumSupportedBills),
			strconv.Itoa(row.NumOpposedBills),
		})
	}
	return r
}

// BillReport converts bill rows into a Report.
func BillReport(rows []BillRow) Report {
	r := Report{Columns: slices.Clone(BillColumns), Rows: make([][]string, 0, len(rows))}
	for _, row := range rows {
		r.Rows = append(r.Rows, []string{
			strconv.FormatInt(row.ID, 10),
			row.Title,
			strconv.Itoa(row.SupporterCount),
			strconv.Itoa(row.OpposerCount),
			row.PrimarySponsor,
		})
	}
	return r
}
