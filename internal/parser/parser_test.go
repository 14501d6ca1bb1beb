package parser

import (
	"errors"
	"testing"

	"kharcha/internal/core"
)

func TestParseExtractsAmountAndCurrency(t *testing.T) {
	p := New("INR")

	cases := []struct {
		name     string
		in       string
		cents    int64
		currency string
		desc     string
	}{
		{"rupee symbol prefix", "Spent ₹500 on groceries", 50000, "INR", "Spent on groceries"},
		{"dollar prefix", "$45 for lunch at restaurant", 4500, "USD", "for lunch at restaurant"},
		{"suffix symbol", "Auto rickshaw ride ₹80", 8000, "INR", "Auto rickshaw ride"},
		{"rs prefix", "Rs. 350 swiggy order", 35000, "INR", "swiggy order"},
		{"code suffix", "coffee 4.50 EUR", 450, "EUR", "coffee"},
		{"code prefix", "USD 12 parking", 1200, "USD", "parking"},
		{"no marker uses default", "bus ticket 25", 2500, "INR", "bus ticket"},
		{"decimal comma", "chai 12,50", 1250, "INR", "chai"},
		{"pound symbol", "£9 cinema", 900, "GBP", "cinema"},
		{"third decimal rounds half-up", "paid 3.456 at kiosk", 346, "INR", "paid at kiosk"},
		{"long fraction consumed whole", "fx fee 0.4999 usd", 50, "USD", "fx fee"},
		{"comma fraction consumed whole", "groceries 1,234", 123, "INR", "groceries"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d, err := p.Parse(tc.in)
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", tc.in, err)
			}
			if d.Amount.Cents != tc.cents {
				t.Errorf("amount = %d cents, want %d", d.Amount.Cents, tc.cents)
			}
			if d.Currency != tc.currency {
				t.Errorf("currency = %q, want %q", d.Currency, tc.currency)
			}
			if d.Description != tc.desc {
				t.Errorf("description = %q, want %q", d.Description, tc.desc)
			}
		})
	}
}

func TestParseFirstNumericTokenWins(t *testing.T) {
	p := New("INR")
	d, err := p.Parse("paid 200 for 2 movie tickets")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Amount.Cents != 20000 {
		t.Fatalf("amount = %d cents, want 20000 (first token)", d.Amount.Cents)
	}
}

func TestParseNoAmount(t *testing.T) {
	p := New("INR")
	for _, in := range []string{"", "lunch with friends", "groceries at the market"} {
		if _, err := p.Parse(in); !errors.Is(err, core.ErrNoAmountFound) {
			t.Fatalf("Parse(%q) error = %v, want ErrNoAmountFound", in, err)
		}
	}
}

func TestParseInvalidAmount(t *testing.T) {
	p := New("INR")
	for _, in := range []string{"refund -50 from store", "spent ₹0 today", "0 groceries"} {
		if _, err := p.Parse(in); !errors.Is(err, core.ErrInvalidAmount) {
			t.Fatalf("Parse(%q) error = %v, want ErrInvalidAmount", in, err)
		}
	}
}

func TestParseAmountOnlyKeepsOriginalText(t *testing.T) {
	p := New("INR")
	d, err := p.Parse("₹500")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Description != "₹500" {
		t.Fatalf("description = %q, want original text", d.Description)
	}
}

func TestParseCodeInsideWordIgnored(t *testing.T) {
	p := New("INR")
	d, err := p.Parse("spent 30 eureka forbes filter")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Currency != "INR" {
		t.Fatalf("currency = %q, want default INR", d.Currency)
	}
}

func TestNewDefaultsCurrency(t *testing.T) {
	p := New("")
	d, err := p.Parse("tea 10")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Currency != DefaultCurrency {
		t.Fatalf("currency = %q, want %q", d.Currency, DefaultCurrency)
	}
}
