package analyzer

import (
	"strings"
	"testing"

	"kharcha/internal/core"
)

func snapshot(totals map[core.Category]int64) core.Snapshot {
	snap := core.Snapshot{CategoryTotals: map[core.Category]core.Money{}}
	var total int64
	for cat, cents := range totals {
		snap.CategoryTotals[cat] = core.Money{Cents: cents}
		total += cents
	}
	snap.TotalSpent = core.Money{Cents: total}
	return snap
}

func TestAnalyzeEmptySnapshot(t *testing.T) {
	insight := Analyze(core.Snapshot{})
	if len(insight.Breakdown) != 0 {
		t.Fatalf("breakdown = %v, want empty", insight.Breakdown)
	}
	if insight.Recommendation != "" {
		t.Fatalf("recommendation = %q, want none", insight.Recommendation)
	}
	if insight.TopCategory != "" {
		t.Fatalf("top category = %q, want none", insight.TopCategory)
	}
}

func TestAnalyzeBreakdownPercentages(t *testing.T) {
	// 500.00 food + 80.00 transport = 580.00 total.
	insight := Analyze(snapshot(map[core.Category]int64{
		core.Food:      50000,
		core.Transport: 8000,
	}))

	if got := insight.Breakdown[core.Food]; got != 86.2 {
		t.Errorf("food = %v%%, want 86.2", got)
	}
	if got := insight.Breakdown[core.Transport]; got != 13.8 {
		t.Errorf("transport = %v%%, want 13.8", got)
	}
	if len(insight.Breakdown) != 2 {
		t.Errorf("breakdown has %d entries, want 2", len(insight.Breakdown))
	}
	if insight.TopCategory != core.Food {
		t.Errorf("top category = %s, want food", insight.TopCategory)
	}
	if !strings.Contains(insight.Recommendation, "food") {
		t.Errorf("recommendation %q should flag food", insight.Recommendation)
	}
	if !strings.Contains(insight.Recommendation, "10-15%") {
		t.Errorf("recommendation %q should suggest the 10-15%% range", insight.Recommendation)
	}
}

func TestAnalyzeZeroCategoriesOmitted(t *testing.T) {
	insight := Analyze(snapshot(map[core.Category]int64{
		core.Food:     100,
		core.Shopping: 0,
	}))
	if _, ok := insight.Breakdown[core.Shopping]; ok {
		t.Fatal("zero-total category must be omitted from breakdown")
	}
}

// A single category holds 100% of spending; that exceeds the threshold and
// does produce a warning.
func TestAnalyzeSingleCategoryTriggersWarning(t *testing.T) {
	insight := Analyze(snapshot(map[core.Category]int64{core.Food: 50000}))
	if got := insight.Breakdown[core.Food]; got != 100.0 {
		t.Fatalf("food = %v%%, want 100", got)
	}
	if insight.Recommendation == "" {
		t.Fatal("expected a recommendation at 100% concentration")
	}
}

func TestAnalyzeThresholdIsStrict(t *testing.T) {
	// Two equal categories sit at exactly 50% each; no warning.
	insight := Analyze(snapshot(map[core.Category]int64{
		core.Food:      5000,
		core.Transport: 5000,
	}))
	if insight.Recommendation != "" {
		t.Fatalf("recommendation = %q, want none at exactly 50%%", insight.Recommendation)
	}
	// Exact tie on cents: taxonomy order picks food as top.
	if insight.TopCategory != core.Food {
		t.Fatalf("top category = %s, want food (taxonomy tie-break)", insight.TopCategory)
	}
}

func TestAnalyzeAtMostOneRecommendation(t *testing.T) {
	// Only one category can exceed 50%, but several can be large; the
	// highest wins and only its name appears.
	insight := Analyze(snapshot(map[core.Category]int64{
		core.Shopping:  6000,
		core.Transport: 2500,
		core.Food:      1500,
	}))
	if !strings.Contains(insight.Recommendation, "shopping") {
		t.Fatalf("recommendation %q should flag shopping", insight.Recommendation)
	}
	if strings.Contains(insight.Recommendation, "transport") {
		t.Fatalf("recommendation %q should name only one category", insight.Recommendation)
	}
}

func TestRound1(t *testing.T) {
	cases := []struct{ in, want float64 }{
		{86.2068, 86.2},
		{13.7931, 13.8},
		{86.25, 86.3},
		{100.0, 100.0},
	}
	for _, tc := range cases {
		if got := round1(tc.in); got != tc.want {
			t.Errorf("round1(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
