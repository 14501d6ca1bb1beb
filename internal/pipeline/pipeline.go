// Package pipeline sequences the three processing stages for one expense
// text: parse, classify, append to the session ledger, then analyze the
// updated snapshot. Any stage failure short-circuits with a StageError and
// leaves the ledger untouched.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"kharcha/internal/analyzer"
	"kharcha/internal/classifier"
	"kharcha/internal/core"
	"kharcha/internal/events"
	"kharcha/internal/ledger"
	applog "kharcha/internal/log"
	"kharcha/internal/parser"
)

// Stage identifies which pipeline stage produced an error.
type Stage string

const (
	StageParse    Stage = "parse"
	StageClassify Stage = "classify"
	StageAppend   Stage = "append"
	StageAnalyze  Stage = "analyze"
)

// StageError wraps a stage identifier with the underlying cause so callers
// can tell where the pipeline stopped. It unwraps to the cause.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("pipeline stage %s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// Publisher emits processed-expense events. The pipeline tolerates a nil
// publisher and never fails a request on publish errors.
type Publisher interface {
	PublishExpenseProcessed(ctx context.Context, msg *events.ExpenseProcessedMessage) error
}

// Pipeline is safe for concurrent use; the per-session ledger passed to
// Process is the only state it mutates.
type Pipeline struct {
	parser     *parser.Parser
	classifier *classifier.Classifier
	publisher  Publisher

	// Hooks for deterministic tests.
	now   func() time.Time
	newID func() string
}

func New(p *parser.Parser, c *classifier.Classifier, pub Publisher) *Pipeline {
	return &Pipeline{
		parser:     p,
		classifier: c,
		publisher:  pub,
		now:        time.Now,
		newID:      uuid.NewString,
	}
}

// Process runs one expense text through parse, classify, append and analyze
// against the given session ledger. Submitting the same text twice records
// two independent transactions; this is a log of occurrences, not a dedup
// store.
func (pl *Pipeline) Process(ctx context.Context, led *ledger.Ledger, text string) (core.ProcessResult, error) {
	draft, err := pl.parser.Parse(text)
	if err != nil {
		return core.ProcessResult{}, &StageError{Stage: StageParse, Err: err}
	}

	// Classification is total; it cannot fail.
	category := pl.classifier.Classify(draft.Description)

	tx := core.Transaction{
		ID:          pl.newID(),
		Amount:      draft.Amount,
		Currency:    draft.Currency,
		Description: draft.Description,
		Category:    category,
		Timestamp:   pl.now().UTC(),
	}

	if err := led.Append(tx); err != nil {
		return core.ProcessResult{}, &StageError{Stage: StageAppend, Err: err}
	}

	snap := led.Snapshot()
	insight := analyzer.Analyze(snap)

	slog.InfoContext(ctx, "Expense processed",
		applog.FieldSessionID, led.SessionID(),
		applog.FieldTransactionID, tx.ID,
		applog.FieldCategory, tx.Category.String(),
		applog.FieldAmountCents, tx.Amount.Cents,
		applog.FieldCurrency, tx.Currency,
		applog.FieldTotalCents, snap.TotalSpent.Cents,
		applog.FieldCount, snap.Count())

	pl.publish(ctx, led.SessionID(), tx)

	return core.ProcessResult{
		Transaction: tx,
		Insight:     insight,
		TotalSpent:  snap.TotalSpent,
		Count:       snap.Count(),
	}, nil
}

// publish sends the processed-expense event when a publisher is configured.
// Failures are logged and swallowed: the transaction is already recorded.
func (pl *Pipeline) publish(ctx context.Context, sessionID string, tx core.Transaction) {
	if pl.publisher == nil {
		return
	}
	msg := events.NewExpenseProcessedMessage(sessionID, tx)
	if err := pl.publisher.PublishExpenseProcessed(ctx, msg); err != nil {
		slog.ErrorContext(ctx, "Failed to publish expense processed event",
			applog.FieldSessionID, sessionID,
			applog.FieldTransactionID, tx.ID,
			applog.FieldError, err)
	}
}
