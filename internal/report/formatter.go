package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"SniperScan/internal/model"
)

// FormatTelegram renders a ranked scan report as a Telegram HTML message.
func FormatTelegram(rep *model.ScanReport) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("🎯 <b>Sniper Scan</b> | %s\n", rep.StartedAt.Format("2006-01-02 15:04")))
	b.WriteString(fmt.Sprintf("run %s · %s\n\n", shortID(rep.RunID), rep.Elapsed.Round(10*time.Millisecond)))

	if len(rep.Results) == 0 {
		b.WriteString("No precise setups right now. The market is in wait mode.\n")
	} else {
		b.WriteString(fmt.Sprintf("🔥 <b>%d candidates:</b>\n", len(rep.Results)))
		for i, r := range rep.Results {
			b.WriteString(fmt.Sprintf("%d. <b>%s</b> [%s] — %.1f\n", i+1, r.Ticker, r.Sector, r.CompositeScore))
			b.WriteString(fmt.Sprintf("   $%.2f · tech %.0f · fund %.0f · stop $%.2f\n",
				r.Price, r.TechnicalScore, r.FundamentalScore, r.StopLoss))
			if len(r.TechnicalSignals) > 0 {
				b.WriteString(fmt.Sprintf("   %s\n", strings.Join(r.TechnicalSignals, " · ")))
			}
		}
	}

	c := rep.Counters
	b.WriteString(fmt.Sprintf("\nscanned %s · no data %d · short history %d · filtered %d · faults %d\n",
		humanize.Comma(int64(c.Scanned)), c.NoData, c.ShortHistory, c.Filtered, c.ScoringFaults))
	return b.String()
}

// FormatTable renders the report as a plain-text table for the CLI.
func FormatTable(rep *model.ScanReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%-6s %-24s %8s %6s %6s %9s %9s  %s\n",
		"TICKER", "SECTOR", "SCORE", "TECH", "FUND", "PRICE", "STOP", "SIGNALS")
	for _, r := range rep.Results {
		fmt.Fprintf(&b, "%-6s %-24s %8.1f %6.0f %6.0f %9.2f %9.2f  %s\n",
			r.Ticker, truncate(r.Sector, 24), r.CompositeScore, r.TechnicalScore,
			r.FundamentalScore, r.Price, r.StopLoss, strings.Join(r.TechnicalSignals, ", "))
	}

	c := rep.Counters
	fmt.Fprintf(&b, "\n%d scanned, %d returned (%d no data, %d short history, %d filtered, %d below floor, %d faults) in %s\n",
		c.Scanned, len(rep.Results), c.NoData, c.ShortHistory, c.Filtered, c.BelowScoreFloor, c.ScoringFaults,
		rep.Elapsed.Round(10*time.Millisecond))
	return b.String()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// truncate shortens s to n runes. Slicing on runes keeps multibyte sector
// names (emoji labels included) valid UTF-8.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}
