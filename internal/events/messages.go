package events

import (
	"encoding/json"
	"time"

	"kharcha/internal/core"
)

// ExpenseProcessedMessage announces a successfully processed expense to
// downstream consumers. It carries the full record: consumers never need to
// call back into a session, which exists only in this process's memory.
type ExpenseProcessedMessage struct {
	SessionID     string    `json:"session_id"`
	TransactionID string    `json:"transaction_id"`
	Description   string    `json:"description"`
	Category      string    `json:"category"`
	AmountCents   int64     `json:"amount_cents"`
	Currency      string    `json:"currency"`
	ProcessedAt   time.Time `json:"processed_at"`
}

// NewExpenseProcessedMessage builds a message from a recorded transaction.
func NewExpenseProcessedMessage(sessionID string, tx core.Transaction) *ExpenseProcessedMessage {
	return &ExpenseProcessedMessage{
		SessionID:     sessionID,
		TransactionID: tx.ID,
		Description:   tx.Description,
		Category:      tx.Category.String(),
		AmountCents:   tx.Amount.Cents,
		Currency:      tx.Currency,
		ProcessedAt:   tx.Timestamp,
	}
}

// ToJSON converts the message to JSON bytes.
func (m *ExpenseProcessedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// ExpenseProcessedMessageFromJSON creates a message from JSON bytes.
func ExpenseProcessedMessageFromJSON(data []byte) (*ExpenseProcessedMessage, error) {
	var msg ExpenseProcessedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
