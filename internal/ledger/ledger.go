// Package ledger holds the append-only transaction record for one session
// plus its derived running totals. The ledger is the only shared mutable
// state in the pipeline; a single lock serializes appends and snapshots so
// no reader ever observes a partially applied update.
package ledger

import (
	"fmt"
	"sync"
	"time"

	"kharcha/internal/core"
)

// Ledger is one session's transaction record. Create with New; the zero
// value is not usable.
type Ledger struct {
	sessionID string
	createdAt time.Time

	mu             sync.RWMutex
	transactions   []core.Transaction
	totalCents     int64
	categoryCents  map[core.Category]int64
}

func New(sessionID string) *Ledger {
	return &Ledger{
		sessionID:     sessionID,
		createdAt:     time.Now().UTC(),
		categoryCents: make(map[core.Category]int64),
	}
}

func (l *Ledger) SessionID() string {
	return l.sessionID
}

func (l *Ledger) CreatedAt() time.Time {
	return l.createdAt
}

// Append records a transaction and folds its amount into the running total
// and the per-category total in one critical section. It is the ledger's
// only mutator; there is no delete or update.
func (l *Ledger) Append(tx core.Transaction) error {
	if err := tx.Validate(); err != nil {
		return fmt.Errorf("append transaction: %w", err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.transactions = append(l.transactions, tx)
	l.totalCents += tx.Amount.Cents
	l.categoryCents[tx.Category] += tx.Amount.Cents
	return nil
}

// Snapshot returns a consistent point-in-time copy of the ledger. Callers
// own the returned slice and map.
func (l *Ledger) Snapshot() core.Snapshot {
	l.mu.RLock()
	defer l.mu.RUnlock()

	txs := make([]core.Transaction, len(l.transactions))
	copy(txs, l.transactions)

	totals := make(map[core.Category]core.Money, len(l.categoryCents))
	for cat, cents := range l.categoryCents {
		totals[cat] = core.Money{Cents: cents}
	}

	return core.Snapshot{
		Transactions:   txs,
		TotalSpent:     core.Money{Cents: l.totalCents},
		CategoryTotals: totals,
	}
}

// Count returns the number of recorded transactions.
func (l *Ledger) Count() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.transactions)
}
