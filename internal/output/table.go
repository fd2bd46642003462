// Package output provides terminal output utilities for basketlift.
//
// Table rendering uses ASCII characters and ANSI color codes; colors are
// gated on stdout being a TTY and on NO_COLOR being unset, so piped output
// stays plain.
package output

import (
	"fmt"
	"os"
	"strings"

	humanize "github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"

	"github.com/blackwell-systems/basketlift/internal/miner"
	"github.com/blackwell-systems/basketlift/internal/store"
)

// ANSI color codes for association strength display
const (
	colorReset  = "\033[0m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorGray   = "\033[90m"
)

// IsColorEnabled returns true if ANSI color codes should be emitted.
// It checks that os.Stdout is a TTY and that the NO_COLOR env var is not set.
func IsColorEnabled() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return isatty.IsTerminal(os.Stdout.Fd())
}

// colorize wraps text in the given ANSI color code if color is enabled,
// otherwise returns the plain text.
func colorize(color, text string) string {
	if IsColorEnabled() {
		return color + text + colorReset
	}
	return text
}

// RenderRuleTable renders scored association rules. Rules are expected to
// be pre-filtered and pre-ranked by the miner; no sorting happens here.
// When both is true a second confidence column (product2 → product1) is
// shown.
func RenderRuleTable(rules []miner.ScoredRule, both bool) string {
	if len(rules) == 0 {
		return "No rules passed the thresholds.\n"
	}

	var sb strings.Builder

	if both {
		sb.WriteString(fmt.Sprintf("%-24s %-24s %9s %12s %12s %8s\n",
			"Product 1", "Product 2", "Support", "Conf (1→2)", "Conf (2→1)", "Lift"))
		sb.WriteString(strings.Repeat("─", 96))
	} else {
		sb.WriteString(fmt.Sprintf("%-24s %-24s %9s %12s %8s\n",
			"Product 1", "Product 2", "Support", "Confidence", "Lift"))
		sb.WriteString(strings.Repeat("─", 82))
	}
	sb.WriteString("\n")

	for _, rule := range rules {
		lift := fmt.Sprintf("%.2f", rule.Lift)
		if both {
			sb.WriteString(fmt.Sprintf("%-24s %-24s %9.3f %12.3f %12.3f %s\n",
				truncate(rule.Product1, 24),
				truncate(rule.Product2, 24),
				rule.Support,
				rule.Confidence,
				rule.ConfidenceReverse,
				colorize(liftColor(rule.Lift), lift)))
		} else {
			sb.WriteString(fmt.Sprintf("%-24s %-24s %9.3f %12.3f %s\n",
				truncate(rule.Product1, 24),
				truncate(rule.Product2, 24),
				rule.Support,
				rule.Confidence,
				colorize(liftColor(rule.Lift), lift)))
		}
	}

	return sb.String()
}

// RenderPairTable renders raw pair co-occurrence counts with the share of
// all orders each pair appears in. label names the pair columns ("Product"
// or "Category").
func RenderPairTable(pairs []miner.PairCount, totalOrders int, label string) string {
	if len(pairs) == 0 {
		return "No co-occurring pairs found.\n"
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%-24s %-24s %10s %8s\n",
		label+" 1", label+" 2", "Orders", "Share"))
	sb.WriteString(strings.Repeat("─", 70))
	sb.WriteString("\n")

	for _, pc := range pairs {
		share := "n/a"
		if totalOrders > 0 {
			share = fmt.Sprintf("%.1f%%", 100*float64(pc.Orders)/float64(totalOrders))
		}
		sb.WriteString(fmt.Sprintf("%-24s %-24s %10s %8s\n",
			truncate(pc.Pair.A, 24),
			truncate(pc.Pair.B, 24),
			humanize.Comma(int64(pc.Orders)),
			share))
	}

	return sb.String()
}

// RenderStats renders the dataset summary block.
func RenderStats(stats *miner.DatasetStats) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Orders:         %s\n", humanize.Comma(int64(stats.Orders))))
	sb.WriteString(fmt.Sprintf("Distinct items: %s\n", humanize.Comma(int64(stats.DistinctItems))))
	sb.WriteString(fmt.Sprintf("Rows:           %s\n", humanize.Comma(int64(stats.Rows))))

	if stats.Orders == 0 {
		return sb.String()
	}

	sb.WriteString(fmt.Sprintf("Basket size:    min %d / mean %.1f / max %d\n",
		stats.MinBasket, stats.MeanBasket, stats.MaxBasket))

	// Histogram, smallest basket first
	sb.WriteString("\nBasket size distribution:\n")
	maxOrders := 0
	for _, n := range stats.SizeHistogram {
		if n > maxOrders {
			maxOrders = n
		}
	}
	for size := stats.MinBasket; size <= stats.MaxBasket; size++ {
		n, ok := stats.SizeHistogram[size]
		if !ok {
			continue
		}
		bar := ""
		if maxOrders > 0 {
			bar = strings.Repeat("█", 1+n*30/maxOrders)
		}
		sb.WriteString(fmt.Sprintf("  %3d items  %7s  %s\n", size, humanize.Comma(int64(n)), bar))
	}

	return sb.String()
}

// RenderRunTable renders saved mining runs, newest first (the store already
// orders them).
func RenderRunTable(runs []*store.Run) string {
	if len(runs) == 0 {
		return "No saved runs.\n"
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%-36s %-20s %8s %8s %6s %7s %6s\n",
		"ID", "Created", "Support", "Conf", "Lift", "Basket", "Rules"))
	sb.WriteString(strings.Repeat("─", 98))
	sb.WriteString("\n")

	for _, run := range runs {
		window := fmt.Sprintf("%d–", run.MinBasket)
		if run.MaxBasket > 0 {
			window = fmt.Sprintf("%d–%d", run.MinBasket, run.MaxBasket)
		}
		sb.WriteString(fmt.Sprintf("%-36s %-20s %8.2f %8.2f %6.2f %7s %6d\n",
			run.ID,
			run.CreatedAt.Format("2006-01-02 15:04:05"),
			run.MinSupport,
			run.MinConfidence,
			run.MinLift,
			window,
			run.RuleCount))
	}

	return sb.String()
}

// liftColor picks a color by association strength: green for positive
// association, yellow for independence-adjacent values, gray for negative.
func liftColor(lift float64) string {
	switch {
	case lift > 1.1:
		return colorGreen
	case lift > 0.9:
		return colorYellow
	default:
		return colorGray
	}
}

// truncate truncates a string to maxLen, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
