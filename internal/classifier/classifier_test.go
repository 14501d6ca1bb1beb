package classifier

import (
	"os"
	"path/filepath"
	"testing"

	"kharcha/internal/core"
)

func TestClassify(t *testing.T) {
	c := New()

	cases := []struct {
		desc string
		want core.Category
	}{
		{"Spent on groceries at DMart", core.Food},
		{"Swiggy order for dinner", core.Food},
		{"Auto rickshaw ride", core.Transport},
		{"Ola cab to office", core.Transport},
		{"Netflix subscription", core.Entertainment},
		{"electricity bill", core.Utilities},
		{"Flipkart shopping for clothes", core.Shopping},
		{"apollo pharmacy medicine", core.Healthcare},
		{"mystery expense", core.Other},
		{"", core.Other},
	}

	for _, tc := range cases {
		if got := c.Classify(tc.desc); got != tc.want {
			t.Errorf("Classify(%q) = %s, want %s", tc.desc, got, tc.want)
		}
	}
}

func TestClassifyCaseInsensitive(t *testing.T) {
	c := New()
	if got := c.Classify("GROCERIES AT THE MARKET"); got != core.Food {
		t.Fatalf("got %s, want food", got)
	}
}

// "gas" is a keyword for both transport and utilities in common taxonomies;
// taxonomy priority order must make transport win every time.
func TestClassifyTieBreaksByTaxonomyOrder(t *testing.T) {
	c := New()
	if got := c.Classify("gas refill"); got != core.Transport {
		t.Fatalf("got %s, want transport", got)
	}
	// A description hitting shopping and food keywords resolves to food.
	if got := c.Classify("bought groceries"); got != core.Food {
		t.Fatalf("got %s, want food", got)
	}
}

func TestClassifyIsTotal(t *testing.T) {
	c := New()
	for _, desc := range []string{"x", "1234", "ξ φ ζ", "        "} {
		if got := c.Classify(desc); !got.IsValid() {
			t.Fatalf("Classify(%q) = %q, not in taxonomy", desc, got)
		}
	}
}

func TestNewFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rules.yaml")
	content := `categories:
  - name: shopping
    keywords: [bazaar]
  - name: food
    keywords: [tiffin, canteen]
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	c, err := NewFromFile(path)
	if err != nil {
		t.Fatalf("NewFromFile: %v", err)
	}
	if got := c.Classify("canteen lunch coupon"); got != core.Food {
		t.Fatalf("got %s, want food", got)
	}
	if got := c.Classify("weekend bazaar haul"); got != core.Shopping {
		t.Fatalf("got %s, want shopping", got)
	}
	// File listed shopping first; taxonomy order still decides ties.
	if got := c.Classify("tiffin from the bazaar"); got != core.Food {
		t.Fatalf("got %s, want food (taxonomy order)", got)
	}
	// Built-in keywords are replaced, not merged.
	if got := c.Classify("uber to airport"); got != core.Other {
		t.Fatalf("got %s, want other (built-ins replaced)", got)
	}
}

func TestNewFromFileRejectsUnknownCategory(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rules.yaml")
	content := `categories:
  - name: gadgets
    keywords: [phone]
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewFromFile(path); err == nil {
		t.Fatal("expected error for unknown category")
	}
}

func TestNewFromFileMissing(t *testing.T) {
	if _, err := NewFromFile(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
