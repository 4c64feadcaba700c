package scanner

import (
	"log"

	"SniperScan/internal/model"
)

// fallbackFundamentalScore is the conservative default returned when the
// scorer hits an unexpected fault. The scan must not abort for one ticker's
// bad data.
const fallbackFundamentalScore = 20

// ScoreFundamentals maps a sparse fundamentals record to a 0-100 score with
// reason labels. Missing fields never reject a ticker; they award a smaller
// fallback contribution instead. Total function: it never returns an error.
func ScoreFundamentals(rec *model.FundamentalsRecord) (score float64, reasons []string) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[WARN] fundamental scoring fault: %v, using fallback score", r)
			score = fallbackFundamentalScore
			reasons = []string{"scoring fallback"}
		}
	}()

	if rec == nil {
		rec = &model.FundamentalsRecord{}
	}

	score = 0
	marketCap := rec.MarketCapValue()

	// Market cap tiers: every listed ticker gets a contribution.
	switch {
	case marketCap >= 10_000_000_000:
		score += 20
		reasons = append(reasons, "mega cap")
	case marketCap >= 1_000_000_000:
		score += 15
		reasons = append(reasons, "mid cap")
	case marketCap >= 200_000_000:
		score += 10
		reasons = append(reasons, "small cap")
	default:
		score += 5
		reasons = append(reasons, "micro/unknown cap")
	}

	// P/E, or a revenue-growth substitute when it is absent or negative.
	pe := rec.TrailingPE
	if pe == nil {
		pe = rec.ForwardPE
	}
	if pe != nil && *pe > 0 {
		switch {
		case *pe > 5 && *pe < 30:
			score += 20
			reasons = append(reasons, "healthy P/E")
		case *pe >= 30 && *pe < 50:
			score += 10
			reasons = append(reasons, "rich P/E")
		case *pe <= 5:
			score += 5
			reasons = append(reasons, "distressed P/E")
		}
	} else if rec.RevenueGrowth != nil {
		switch {
		case *rec.RevenueGrowth > 0.30:
			score += 20
			reasons = append(reasons, "no P/E, hyper growth")
		case *rec.RevenueGrowth > 0.15:
			score += 15
			reasons = append(reasons, "no P/E, strong growth")
		default:
			score += 5
			reasons = append(reasons, "no P/E")
		}
	} else {
		score += 5
		reasons = append(reasons, "no P/E")
	}

	// Debt/Equity: absence is "assume acceptable", not a penalty.
	if rec.DebtToEquity != nil {
		switch {
		case *rec.DebtToEquity < 50:
			score += 20
			reasons = append(reasons, "low debt")
		case *rec.DebtToEquity < 150:
			score += 10
			reasons = append(reasons, "moderate debt")
		case *rec.DebtToEquity < 300:
			score += 5
			reasons = append(reasons, "high debt")
		}
	} else {
		score += 10
	}

	// Revenue growth, checked independently of the P/E substitution.
	if rec.RevenueGrowth != nil {
		switch {
		case *rec.RevenueGrowth > 0.50:
			score += 20
			reasons = append(reasons, "revenue +50%")
		case *rec.RevenueGrowth > 0.20:
			score += 15
			reasons = append(reasons, "revenue +20%")
		case *rec.RevenueGrowth > 0.10:
			score += 10
			reasons = append(reasons, "revenue +10%")
		case *rec.RevenueGrowth > 0:
			score += 5
			reasons = append(reasons, "revenue growing")
		}
	}

	if rec.ProfitMargin != nil {
		switch {
		case *rec.ProfitMargin > 0.20:
			score += 15
			reasons = append(reasons, "fat margins")
		case *rec.ProfitMargin > 0.10:
			score += 10
			reasons = append(reasons, "solid margins")
		case *rec.ProfitMargin > 0:
			score += 5
			reasons = append(reasons, "profitable")
		}
	}

	// Every tradable, capitalized company clears a minimal bar.
	if score < 20 && marketCap > 0 {
		score = 20
	}
	if score > 100 {
		score = 100
	}
	return score, reasons
}
