package core

import (
	"errors"
	"strings"
	"time"
)

const (
	Food          Category = "food"
	Transport     Category = "transport"
	Entertainment Category = "entertainment"
	Utilities     Category = "utilities"
	Shopping      Category = "shopping"
	Healthcare    Category = "healthcare"
	Other         Category = "other"
)

type (
	// Category is one member of the fixed spending taxonomy.
	Category string

	// Money is an exact amount in cents.
	Money struct {
		Cents int64
	}

	// Draft is the output of parsing, before a category is assigned.
	Draft struct {
		Amount      Money
		Currency    string
		Description string
	}

	// Transaction is a single parsed and categorized expense record.
	// It is immutable once appended to a ledger.
	Transaction struct {
		ID          string
		Amount      Money
		Currency    string
		Description string
		Category    Category
		Timestamp   time.Time
	}
)

var (
	ErrNoAmountFound    = errors.New("no amount found")
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrInvalidCategory  = errors.New("invalid category")
	ErrEmptyDescription = errors.New("empty description")
)

// taxonomy holds every category in priority order. Classification and
// tie-breaking both follow this order, never map iteration order.
var taxonomy = []Category{
	Food,
	Transport,
	Entertainment,
	Utilities,
	Shopping,
	Healthcare,
	Other,
}

// Taxonomy returns the fixed category set in priority order.
func Taxonomy() []Category {
	out := make([]Category, len(taxonomy))
	copy(out, taxonomy)
	return out
}

func (c Category) IsValid() bool {
	for _, known := range taxonomy {
		if c == known {
			return true
		}
	}
	return false
}

// Rank returns the category's position in the taxonomy order. Unknown
// categories rank last.
func (c Category) Rank() int {
	for i, known := range taxonomy {
		if c == known {
			return i
		}
	}
	return len(taxonomy)
}

func (c Category) String() string {
	return string(c)
}

func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (t Transaction) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return errors.New("empty transaction id")
	}
	if err := t.Amount.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(t.Currency) == "" {
		return errors.New("empty currency")
	}
	if len(strings.TrimSpace(t.Description)) == 0 {
		return ErrEmptyDescription
	}
	if !t.Category.IsValid() {
		return ErrInvalidCategory
	}
	return nil
}
