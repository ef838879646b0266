package tabulate

// Vote types recorded on a vote result. Any other value is ignored by the
// reports.
const (
	VoteSupport = 1
	VoteOppose  = 2
)

// UnknownSponsor is the primary_sponsor value for bills whose sponsor_id does
// not match any legislator.
const UnknownSponsor = "Unknown"

// Legislator is a row of the legislators table.
type Legislator struct {
	ID   int64
	Name string
}

// Bill is a row of the bills table.
type Bill struct {
	ID        int64
	Title     string
	SponsorID int64
}

// Vote is a row of the votes table.
type Vote struct {
	ID     int64
	BillID int64
}

// VoteResult records how one legislator voted in one vote.
type VoteResult struct {
	ID           *int64 // optional column
	LegislatorID int64
	VoteID       int64
	VoteType     int64
}

// Tables holds the four input tables in load order.
type Tables struct {
	Legislators []Legislator
	Bills       []Bill
	Votes       []Vote
	VoteResults []VoteResult
}

// JoinedRecord is a vote result enriched with its legislator, vote and bill.
// Fields are nil when the corresponding lookup found nothing.
type JoinedRecord struct {
	VoteResult

	LegislatorName *string
	BillID         *int64
	BillTitle      *string
	SponsorID      *int64
}

// LegislatorRow is one row of the legislator support/oppose report.
type LegislatorRow struct {
	ID                int64
	Name              string
	NumSupportedBills int
	NumOpposedBills   int
}

// BillRow is one row of the bill supporter/opposer report.
type BillRow struct {
	ID             int64
	Title          string
	SupporterCount int
	OpposerCount   int
	PrimarySponsor string
}
