package core

// Snapshot is a consistent point-in-time view of one session's ledger.
// TotalSpent always equals the sum of CategoryTotals, which always equals
// the sum of all transaction amounts.
type Snapshot struct {
	Transactions   []Transaction
	TotalSpent     Money
	CategoryTotals map[Category]Money
}

// Count returns the number of recorded transactions.
func (s Snapshot) Count() int {
	return len(s.Transactions)
}

// Insight is the derived analysis of a snapshot. It is recomputed on every
// call and never stored.
type Insight struct {
	// Breakdown maps each category with non-zero spending to its share of
	// the total, in percent rounded half-up to one decimal.
	Breakdown map[Category]float64

	// TopCategory is the highest-spending category, or "" for an empty
	// ledger. Exact cent totals break ties, then taxonomy order.
	TopCategory Category

	// Recommendation flags the top offending category when its share
	// exceeds the concentration threshold; "" when nothing is flagged.
	Recommendation string
}

// ProcessResult is what one trip through the pipeline hands back to the
// transport layer.
type ProcessResult struct {
	Transaction Transaction
	Insight     Insight
	TotalSpent  Money
	Count       int
}
