package events

import (
	"testing"
	"time"

	"kharcha/internal/core"
)

func TestExpenseProcessedMessageFromTransaction(t *testing.T) {
	ts := time.Date(2025, 3, 1, 10, 30, 0, 0, time.UTC)
	tx := core.Transaction{
		ID:          "tx-42",
		Amount:      core.Money{Cents: 50000},
		Currency:    "INR",
		Description: "Spent on groceries",
		Category:    core.Food,
		Timestamp:   ts,
	}

	msg := NewExpenseProcessedMessage("sess-1", tx)

	if msg.SessionID != "sess-1" || msg.TransactionID != "tx-42" {
		t.Fatalf("unexpected ids: %+v", msg)
	}
	if msg.AmountCents != 50000 || msg.Currency != "INR" {
		t.Fatalf("unexpected amount: %+v", msg)
	}
	if msg.Category != "food" {
		t.Fatalf("category = %q, want food", msg.Category)
	}
	if !msg.ProcessedAt.Equal(ts) {
		t.Fatalf("processed_at = %v, want %v", msg.ProcessedAt, ts)
	}

	body, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}
	back, err := ExpenseProcessedMessageFromJSON(body)
	if err != nil {
		t.Fatalf("FromJSON: %v", err)
	}
	if back.TransactionID != msg.TransactionID || back.AmountCents != msg.AmountCents ||
		back.Category != msg.Category || !back.ProcessedAt.Equal(msg.ProcessedAt) {
		t.Fatalf("round trip mismatch: %+v vs %+v", back, msg)
	}
}

func TestExpenseProcessedMessageFromJSONInvalid(t *testing.T) {
	if _, err := ExpenseProcessedMessageFromJSON([]byte("{not json")); err == nil {
		t.Fatal("expected error for malformed JSON")
	}
}
