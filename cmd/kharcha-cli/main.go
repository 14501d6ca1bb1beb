// kharcha-cli runs the expense pipeline interactively: one expense text per
// stdin line, a processing report per line, and a session summary at EOF.
package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"kharcha/internal/analyzer"
	"kharcha/internal/classifier"
	"kharcha/internal/config"
	"kharcha/internal/core"
	applog "kharcha/internal/log"
	"kharcha/internal/ledger"
	"kharcha/internal/parser"
	"kharcha/internal/pipeline"
)

func main() {
	_ = godotenv.Load()

	// Keep structured logs off stdout; it belongs to the report.
	logger := applog.New(applog.Config{
		Level:   slog.LevelWarn,
		Handler: slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}),
	})
	applog.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, "invalid configuration:", err)
		os.Exit(1)
	}

	cls := classifier.New()
	if cfg.ClassifierRulesFile != "" {
		loaded, err := classifier.NewFromFile(cfg.ClassifierRulesFile)
		if err != nil {
			fmt.Fprintln(os.Stderr, "classifier rules:", err)
			os.Exit(1)
		}
		cls = loaded
	}

	pipe := pipeline.New(parser.New(cfg.DefaultCurrency), cls, nil)
	led := ledger.New("cli")
	ctx := context.Background()

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		text := scanner.Text()
		if text == "" {
			continue
		}
		result, err := pipe.Process(ctx, led, text)
		if err != nil {
			fmt.Printf("✗ %s: %v\n", text, err)
			continue
		}
		tx := result.Transaction
		fmt.Printf("✓ %s %s — %s (%s)\n", tx.Currency, tx.Amount, tx.Description, tx.Category)
		if result.Insight.Recommendation != "" {
			fmt.Printf("  ! %s\n", result.Insight.Recommendation)
		}
	}
	if err := scanner.Err(); err != nil {
		fmt.Fprintln(os.Stderr, "read stdin:", err)
		os.Exit(1)
	}

	printSummary(led.Snapshot())
}

func printSummary(snap core.Snapshot) {
	if snap.Count() == 0 {
		return
	}
	fmt.Printf("\n%d expenses, total %s\n", snap.Count(), snap.TotalSpent)

	insight := analyzer.Analyze(snap)
	for _, cat := range core.Taxonomy() {
		pct, ok := insight.Breakdown[cat]
		if !ok {
			continue
		}
		fmt.Printf("  %-14s %8s  %5.1f%%\n", cat, snap.CategoryTotals[cat], pct)
	}
	if insight.Recommendation != "" {
		fmt.Println("  !", insight.Recommendation)
	}
}
