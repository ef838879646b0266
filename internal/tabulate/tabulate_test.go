package tabulate

import (
	"errors"
	"reflect"
	"testing"
)

type recordingLogger struct {
	infos     []string
	criticals []string
}

func (l *recordingLogger) Info(msg string)     { l.infos = append(l.infos, msg) }
func (l *recordingLogger) Critical(msg string) { l.criticals = append(l.criticals, msg) }

func TestLegislatorReportCountsBothBuckets(t *testing.T) {
	tables := Tables{
		Legislators: []Legislator{{1, "Alice"}, {2, "Bob"}},
		Votes:       []Vote{{10, 100}},
		VoteResults: []VoteResult{
			{LegislatorID: 1, VoteID: 10, VoteType: VoteSupport},
			{LegislatorID: 1, VoteID: 10, VoteType: VoteOppose},
		},
	}

	rows := New(tables, nil).LegislatorReport()
	want := []LegislatorRow{
		{ID: 1, Name: "Alice", NumSupportedBills: 1, NumOpposedBills: 1},
		{ID: 2, Name: "Bob", NumSupportedBills: 0, NumOpposedBills: 0},
	}
	if !reflect.DeepEqual(rows, want) {
		t.Errorf("expected %+v, got %+v", want, rows)
	}
}

func TestBillReportUnknownSponsor(t *testing.T) {
	tables := Tables{
		Bills: []Bill{{ID: 100, Title: "Act A", SponsorID: 99}},
	}

	rows := New(tables, nil).BillReport()
	want := []BillRow{{ID: 100, Title: "Act A", PrimarySponsor: "Unknown"}}
	if !reflect.DeepEqual(rows, want) {
		t.Errorf("expected %+v, got %+v", want, rows)
	}
}

func TestBillReportCountsAndSponsor(t *testing.T) {
	tables := Tables{
		Legislators: []Legislator{{1, "Alice"}, {2, "Bob"}, {3, "Carol"}},
		Bills: []Bill{
			{ID: 200, Title: "Second", SponsorID: 2},
			{ID: 100, Title: "First", SponsorID: 1},
		},
		Votes: []Vote{{10, 100}, {20, 200}, {30, 100}},
		VoteResults: []VoteResult{
			{LegislatorID: 1, VoteID: 10, VoteType: VoteSupport},
			{LegislatorID: 2, VoteID: 10, VoteType: VoteOppose},
			{LegislatorID: 3, VoteID: 30, VoteType: VoteSupport},
			{LegislatorID: 1, VoteID: 20, VoteType: VoteOppose},
			{LegislatorID: 2, VoteID: 20, VoteType: 3},
		},
	}

	rows := New(tables, nil).BillReport()
	want := []BillRow{
		{ID: 200, Title: "Second", SupporterCount: 0, OpposerCount: 1, PrimarySponsor: "Bob"},
		{ID: 100, Title: "First", SupporterCount: 2, OpposerCount: 1, PrimarySponsor: "Alice"},
	}
	if !reflect.DeepEqual(rows, want) {
		t.Errorf("expected %+v, got %+v", want, rows)
	}
}

func TestOtherVoteTypesIgnored(t *testing.T) {
	tables := Tables{
		Legislators: []Legislator{{1, "Alice"}},
		Bills:       []Bill{{ID: 100, Title: "Act", SponsorID: 1}},
		Votes:       []Vote{{10, 100}},
		VoteResults: []VoteResult{
			{LegislatorID: 1, VoteID: 10, VoteType: 0},
			{LegislatorID: 1, VoteID: 10, VoteType: 3},
			{LegislatorID: 1, VoteID: 10, VoteType: VoteSupport},
		},
	}

	tb := New(tables, nil)
	leg := tb.LegislatorReport()[0]
	if leg.NumSupportedBills != 1 || leg.NumOpposedBills != 0 {
		t.Errorf("expected 1/0, got %d/%d", leg.NumSupportedBills, leg.NumOpposedBills)
	}
	bill := tb.BillReport()[0]
	if total := bill.SupporterCount + bill.OpposerCount; total != 1 {
		t.Errorf("expected 1 counted vote out of 3, got %d", total)
	}
}

func TestVoteResultsWithMissingVoteNotCountedForBills(t *testing.T) {
	tables := Tables{
		Legislators: []Legislator{{1, "Alice"}},
		Bills:       []Bill{{ID: 100, Title: "Act", SponsorID: 1}},
		VoteResults: []VoteResult{{LegislatorID: 1, VoteID: 404, VoteType: VoteSupport}},
	}

	tb := New(tables, nil)
	if got := tb.LegislatorReport()[0].NumSupportedBills; got != 1 {
		t.Errorf("expected legislator count 1, got %d", got)
	}
	if got := tb.BillReport()[0].SupporterCount; got != 0 {
		t.Errorf("expected bill count 0, got %d", got)
	}
}

func TestSponsorFirstMatchWins(t *testing.T) {
	tables := Tables{
		Legislators: []Legislator{{7, "First"}, {7, "Second"}},
		Bills:       []Bill{{ID: 1, Title: "Act", SponsorID: 7}},
	}

	tb := New(tables, nil)
	if got := tb.BillReport()[0].PrimarySponsor; got != "First" {
		t.Errorf("expected sponsor 'First', got %q", got)
	}
}

func TestReportRowsFollowLoadOrderWithDuplicates(t *testing.T) {
	tables := Tables{
		Legislators: []Legislator{{3, "C"}, {1, "A"}, {3, "C2"}},
		VoteResults: []VoteResult{{LegislatorID: 3, VoteID: 1, VoteType: VoteSupport}},
	}

	rows := New(tables, nil).LegislatorReport()
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	var ids []int64
	for _, r := range rows {
		ids = append(ids, r.ID)
	}
	if !reflect.DeepEqual(ids, []int64{3, 1, 3}) {
		t.Errorf("expected load order [3 1 3], got %v", ids)
	}
	if rows[0].NumSupportedBills != 1 || rows[2].NumSupportedBills != 1 {
		t.Error("expected duplicate legislator rows to share counts")
	}
}

func TestLoggerReceivesMilestones(t *testing.T) {
	log := &recordingLogger{}
	tb := New(Tables{}, log)
	tb.LegislatorReport()
	tb.BillReport()

	want := []string{"Generating first deliverable.", "Generating second deliverable."}
	if !reflect.DeepEqual(log.infos, want) {
		t.Errorf("expected %v, got %v", want, log.infos)
	}
}

func TestGenerateReports(t *testing.T) {
	tables := Tables{
		Legislators: []Legislator{{1, "Alice, Jr."}},
		Bills:       []Bill{{ID: 100, Title: "Act A", SponsorID: 1}},
		Votes:       []Vote{{10, 100}},
		VoteResults: []VoteResult{{LegislatorID: 1, VoteID: 10, VoteType: VoteSupport}},
	}
	tb := New(tables, nil)

	r1, err := tb.Generate(LegislatorCounts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(r1.Columns, LegislatorColumns) {
		t.Errorf("unexpected columns %v", r1.Columns)
	}
	if !reflect.DeepEqual(r1.Rows, [][]string{{"1", "Alice, Jr.", "1", "0"}}) {
		t.Errorf("unexpected rows %v", r1.Rows)
	}

	r2, err := tb.Generate(BillCounts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(r2.Rows, [][]string{{"100", "Act A", "1", "0", "Alice, Jr."}}) {
		t.Errorf("unexpected rows %v", r2.Rows)
	}

	if _, err := tb.Generate(Deliverable(3)); err == nil {
		t.Error("expected error for unknown deliverable")
	}
}

func TestReportColumnsAreCopies(t *testing.T) {
	r1 := LegislatorReport(nil)
	r1.Columns[0] = "legislator"
	r2 := BillReport(nil)
	r2.Columns[4] = "sponsor"

	if LegislatorColumns[0] != "id" {
		t.Errorf("expected legislator header 'id', got %q", LegislatorColumns[0])
	}
	if BillColumns[4] != "primary_sponsor" {
		t.Errorf("expected bill header 'primary_sponsor', got %q", BillColumns[4])
	}
	if got := LegislatorReport(nil).Columns[0]; got != "id" {
		t.Errorf("expected fresh report header 'id', got %q", got)
	}
}

func TestParseDeliverable(t *testing.T) {
	tests := []struct {
		in      string
		want    Deliverable
		wantErr bool
	}{
		{"1", LegislatorCounts, false},
		{"2", BillCounts, false},
		{" 2 ", BillCounts, false},
		{"3", 0, true},
		{"", 0, true},
		{"first", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseDeliverable(tt.in)
		if tt.wantErr {
			var ae *ArgumentError
			if !errors.As(err, &ae) {
				t.Errorf("ParseDeliverable(%q): expected ArgumentError, got %v", tt.in, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseDeliverable(%q): unexpected error: %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseDeliverable(%q): expected %d, got %d", tt.in, tt.want, got)
		}
	}
}
