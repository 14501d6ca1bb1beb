// Package classifier maps expense descriptions onto the fixed category
// taxonomy using case-insensitive keyword matching. Classification is a
// total function: anything without a keyword hit lands in core.Other.
package classifier

import (
	"strings"

	"kharcha/internal/core"
)

type rule struct {
	category core.Category
	keywords []string
}

// builtinRules is the default keyword table. Rules are checked in taxonomy
// priority order, so a description matching several categories ("gas" is
// both fuel and a utility) resolves deterministically to the earliest one.
var builtinRules = []rule{
	{core.Food, []string{
		"grocery", "groceries", "restaurant", "cafe", "coffee",
		"lunch", "dinner", "breakfast", "food", "meal", "eating",
		"dmart", "reliance", "bigbasket", "swiggy", "zomato",
		"biryani", "chai", "tea", "snack",
	}},
	{core.Transport, []string{
		"uber", "lyft", "gas", "fuel", "parking", "taxi",
		"metro", "bus", "train", "travel", "trip", "flight",
		"car", "vehicle", "commute", "auto", "rickshaw",
		"ola", "rapido", "petrol", "diesel",
	}},
	{core.Entertainment, []string{
		"movie", "cinema", "netflix", "spotify", "game",
		"concert", "theater", "entertainment",
		"hotstar", "prime", "pvr", "inox", "gaming",
	}},
	{core.Utilities, []string{
		"electric", "electricity", "water", "internet", "phone",
		"mobile", "bill", "utility", "broadband", "wifi",
		"jio", "airtel", "bsnl", "lpg",
	}},
	{core.Shopping, []string{
		"amazon", "mall", "store", "shop", "clothing", "clothes",
		"purchase", "bought", "flipkart", "myntra", "ajio", "meesho",
		"shopping", "shirt", "shoes",
	}},
	{core.Healthcare, []string{
		"doctor", "pharmacy", "medicine", "hospital", "clinic",
		"medical", "health", "apollo", "fortis", "prescription",
	}},
}

// Classifier holds an ordered keyword rule table. The zero value is not
// usable; construct with New or NewFromFile.
type Classifier struct {
	rules []rule
}

// New returns a classifier using the built-in keyword table.
func New() *Classifier {
	return &Classifier{rules: builtinRules}
}

// Classify returns the first category, in taxonomy order, with a keyword
// occurring in the description. It never fails.
func (c *Classifier) Classify(description string) core.Category {
	desc := strings.ToLower(description)
	for _, r := range c.rules {
		for _, kw := range r.keywords {
			if strings.Contains(desc, kw) {
				return r.category
			}
		}
	}
	return core.Other
}
