// Package analyzer derives budget insights from a ledger snapshot: the
// per-category percentage breakdown and an optional concentration warning.
package analyzer

import (
	"fmt"
	"math"

	"kharcha/internal/core"
)

// ConcentrationThreshold is the breakdown percentage a single category must
// exceed (strictly) before a recommendation is emitted. A lone category at
// 100% does trigger the warning.
const ConcentrationThreshold = 50.0

// Analyze computes an Insight from a snapshot. It is a pure function: no
// hidden state, no side effects, and an empty ledger yields an empty
// breakdown with no recommendation.
func Analyze(snap core.Snapshot) core.Insight {
	insight := core.Insight{Breakdown: map[core.Category]float64{}}
	if snap.TotalSpent.Cents <= 0 {
		return insight
	}

	var (
		topCat   core.Category
		topCents int64 = -1
		topPct   float64
	)
	// Walk the taxonomy, not the map, so exact ties resolve by taxonomy
	// order instead of map iteration order.
	for _, cat := range core.Taxonomy() {
		cents := snap.CategoryTotals[cat].Cents
		if cents == 0 {
			continue
		}
		pct := float64(cents) / float64(snap.TotalSpent.Cents) * 100
		insight.Breakdown[cat] = round1(pct)
		if cents > topCents {
			topCat, topCents, topPct = cat, cents, pct
		}
	}

	insight.TopCategory = topCat
	if topPct > ConcentrationThreshold {
		insight.Recommendation = fmt.Sprintf(
			"%s accounts for %.1f%% of your spending; consider reducing it by 10-15%%",
			topCat, round1(topPct))
	}
	return insight
}

// round1 rounds half-up to one decimal place.
func round1(x float64) float64 {
	return math.Floor(x*10+0.5) / 10
}
