// Package tabulate joins legislators, bills, votes and vote results into a
// single view and aggregates support and opposition counts from it.
package tabulate

// Logger receives lifecycle milestones.
type Logger interface {
	Info(msg string)
	Critical(msg string)
}

// Discard is a Logger that drops every message.
var Discard Logger = nopLogger{}

type nopLogger struct{}

func (nopLogger) Info(string)     {}
func (nopLogger) Critical(string) {}

// voteKey identifies a (legislator or bill, vote type) bucket.
type voteKey struct {
	id       int64
	voteType int64
}

// Tabulator holds the loaded tables and the joined view built from them.
// It is read-only once constructed.
type Tabulator struct {
	tables Tables
	joined []JoinedRecord

	byLegislator map[voteKey]int
	byBill       map[voteKey]int
	sponsors     map[int64]Legislator

	log Logger
}

// New builds the joined view and the count indexes for t. Report
// generation milestones go to log; a nil logger discards them.
func New(t Tables, log Logger) *Tabulator {
	if log == nil {
		log = Discard
	}

	tb := &Tabulator{
		tables:       t,
		joined:       Join(t),
		byLegislator: make(map[voteKey]int),
		byBill:       make(map[voteKey]int),
		sponsors:     indexBy(t.Legislators, legislatorID, KeepFirst),
		log:          log,
	}
	for _, rec := range tb.joined {
		tb.byLegislator[voteKey{rec.LegislatorID, rec.VoteType}]++
		if rec.BillID != nil {
			tb.byBill[voteKey{*rec.BillID, rec.VoteType}]++
		}
	}
	return tb
}

// Tables returns the tables the tabulator was built from.
func (tb *Tabulator) Tables() Tables { return tb.tables }

// Joined returns the joined view, one record per vote result.
func (tb *Tabulator) Joined() []JoinedRecord { return tb.joined }

// LegislatorReport counts supported and opposed votes for every legislator,
// in legislator load order.
func (tb *Tabulator) LegislatorReport() []LegislatorRow {
	tb.log.Info("Generating first deliverable.")

	rows := make([]LegislatorRow, 0, len(tb.tables.Legislators))
	for _, l := range tb.tables.Legislators {
		rows = append(rows, LegislatorRow{
			ID:                l.ID,
			Name:              l.Name,
			NumSupportedBills: tb.byLegislator[voteKey{l.ID, VoteSupport}],
			NumOpposedBills:   tb.byLegislator[voteKey{l.ID, VoteOppose}],
		})
	}
	return rows
}

// BillReport counts supporters and opposers for every bill and resolves its
// primary sponsor, in bill load order.
func (tb *Tabulator) BillReport() []BillRow {
	tb.log.Info("Generating second deliverable.")

	rows := make([]BillRow, 0, len(tb.tables.Bills))
	for _, b := range tb.tables.Bills {
		rows = append(rows, BillRow{
			ID:             b.ID,
			Title:          b.Title,
			SupporterCount: tb.byBill[voteKey{b.ID, VoteSupport}],
			OpposerCount:   tb.byBill[voteKey{b.ID, VoteOppose}],
			PrimarySponsor: tb.SponsorName(b.SponsorID),
		})
	}
	return rows
}

// SponsorName returns the name of the first legislator with the given id, or
// UnknownSponsor.
func (tb *Tabulator) SponsorName(sponsorID int64) string {
	if l, ok := tb.sponsors[sponsorID]; ok {
		return l.Name
	}
	return UnknownSponsor
}
