package tabulate

// DuplicatePolicy decides which record an index keeps when several records
// share a key.
type DuplicatePolicy int

const (
	// KeepLast keeps the last loaded record for a key. Used by the join.
	KeepLast DuplicatePolicy = iota
	// KeepFirst keeps the first loaded record for a key. Used for sponsor
	// lookup.
	KeepFirst
)

func indexBy[T any](rows []T, key func(T) int64, policy DuplicatePolicy) map[int64]T {
	idx := make(map[int64]T, len(rows))
	for _, r := range rows {
		k := key(r)
		if policy == KeepFirst {
			if _, seen := idx[k]; seen {
				continue
			}
		}
		idx[k] = r
	}
	return idx
}

func legislatorID(l Legislator) int64 { return l.ID }
func billID(b Bill) int64             { return b.ID }
func voteID(v Vote) int64             { return v.ID }

// Join left-joins every vote result to its legislator, its vote and the
// vote's bill. The output has exactly one record per vote result, in vote
// result order. Lookups that miss leave the enrichment fields nil.
func Join(t Tables) []JoinedRecord {
	legislators := indexBy(t.Legislators, legislatorID, KeepLast)
	votes := indexBy(t.Votes, voteID, KeepLast)
	bills := indexBy(t.Bills, billID, KeepLast)

	joined := make([]JoinedRecord, len(t.VoteResults))
	for i, vr := range t.VoteResults {
		rec := JoinedRecord{VoteResult: vr}

		if l, ok := legislators[vr.LegislatorID]; ok {
			name := l.Name
			rec.LegislatorName = &name
		}
		if v, ok := votes[vr.VoteID]; ok {
			bid := v.BillID
			rec.BillID = &bid
			if b, ok := bills[bid]; ok {
				title, sponsor := b.Title, b.SponsorID
				rec.BillTitle = &title
				rec.SponsorID = &sponsor
			}
		}
		joined[i] = rec
	}
	return joined
}
