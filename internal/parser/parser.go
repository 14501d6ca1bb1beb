// Package parser extracts a candidate transaction (amount, currency,
// description) from free-text expense input, e.g. "Spent ₹500 on groceries"
// or "$45 for lunch at restaurant".
package parser

import (
	"fmt"
	"regexp"
	"strings"

	"kharcha/internal/core"
)

// DefaultCurrency is used when the text carries no currency marker and no
// other default is configured.
const DefaultCurrency = "INR"

// currencyCodes maps recognized symbols and codes to their canonical form.
var currencyCodes = map[string]string{
	"₹":   "INR",
	"rs":  "INR",
	"inr": "INR",
	"$":   "USD",
	"usd": "USD",
	"€":   "EUR",
	"eur": "EUR",
	"£":   "GBP",
	"gbp": "GBP",
}

// amountRe matches the first numeric token with an optional currency symbol
// or code attached as prefix or suffix. Word boundaries keep codes from
// matching inside unrelated words ("eureka" is not EUR).
var amountRe = regexp.MustCompile(
	`(?i)(?:(₹|\$|€|£|\brs\.?|\binr|\busd|\beur|\bgbp)\s*)?` +
		`(-?\d+(?:[.,]\d+)?)` +
		`(?:\s*(₹|\$|€|£|(?:rs\.?|inr|usd|eur|gbp)\b))?`)

// Parser turns raw expense text into a core.Draft. It is stateless beyond
// its configured default currency and safe for concurrent use.
type Parser struct {
	defaultCurrency string
}

func New(defaultCurrency string) *Parser {
	if defaultCurrency == "" {
		defaultCurrency = DefaultCurrency
	}
	return &Parser{defaultCurrency: defaultCurrency}
}

// Parse extracts the first numeric token as the amount. When the text holds
// several numbers the first occurrence wins; that keeps behavior deterministic
// rather than guessing which number the user meant.
//
// Returns core.ErrNoAmountFound when no numeric token exists, and
// core.ErrInvalidAmount for negative, zero or malformed amounts.
func (p *Parser) Parse(text string) (core.Draft, error) {
	m := amountRe.FindStringSubmatchIndex(text)
	if m == nil {
		return core.Draft{}, fmt.Errorf("parse %q: %w", text, core.ErrNoAmountFound)
	}

	num := submatch(text, m, 2)
	if strings.HasPrefix(num, "-") {
		return core.Draft{}, fmt.Errorf("negative amount %q: %w", num, core.ErrInvalidAmount)
	}
	amount, err := core.ParseAmount(num)
	if err != nil {
		return core.Draft{}, fmt.Errorf("amount %q: %w", num, err)
	}

	currency := p.defaultCurrency
	if code, ok := canonicalCode(submatch(text, m, 1)); ok {
		currency = code
	} else if code, ok := canonicalCode(submatch(text, m, 3)); ok {
		currency = code
	}

	// Description is everything around the matched token, with whitespace
	// collapsed. A text that was nothing but the amount keeps the original
	// input verbatim.
	desc := strings.Join(strings.Fields(text[:m[0]]+" "+text[m[1]:]), " ")
	if desc == "" {
		desc = text
	}

	return core.Draft{
		Amount:      amount,
		Currency:    currency,
		Description: desc,
	}, nil
}

func canonicalCode(token string) (string, bool) {
	token = strings.TrimSuffix(strings.ToLower(strings.TrimSpace(token)), ".")
	if token == "" {
		return "", false
	}
	code, ok := currencyCodes[token]
	return code, ok
}

// submatch returns the text of capture group n, or "" if it did not match.
func submatch(text string, m []int, n int) string {
	if m[2*n] < 0 {
		return ""
	}
	return text[m[2*n]:m[2*n+1]]
}
