package scanner

import (
	"sort"

	"SniperScan/internal/model"
)

// Composite weights. The signal-presence bonus rewards setups where at
// least one technical pattern actually fired.
const (
	weightTechnical   = 0.5
	weightFundamental = 0.3
	weightSignal      = 0.2
	signalBonus       = 20.0
)

// RankerConfig holds the user-facing ranking knobs.
type RankerConfig struct {
	MinComposite  float64
	RequireSignal bool
	MaxResults    int
	StopLossATR   float64 // ATR multiplier for the volatility-scaled stop
}

// CompositeScore blends the technical and fundamental sub-scores with the
// signal-presence bonus. Monotonically non-decreasing in both sub-scores.
func CompositeScore(technical, fundamental float64, hasSignal bool) float64 {
	bonus := 0.0
	if hasSignal {
		bonus = signalBonus
	}
	return technical*weightTechnical + fundamental*weightFundamental + bonus*weightSignal
}

// StopLoss computes the volatility-adjusted stop: close minus k ATRs.
func StopLoss(close, atr, multiplier float64) float64 {
	return close - multiplier*atr
}

// Rank applies the composite gates, sorts descending by composite score and
// truncates to the configured maximum. The sort is stable, so equal scores
// keep their input order. Returns the ranked slice and the count of entries
// dropped by the score/signal gates.
func (c RankerConfig) Rank(entries []model.ScoreResult) (ranked []model.ScoreResult, gated int) {
	ranked = make([]model.ScoreResult, 0, len(entries))
	for _, e := range entries {
		if e.CompositeScore < c.MinComposite {
			gated++
			continue
		}
		if c.RequireSignal && len(e.TechnicalSignals) == 0 {
			gated++
			continue
		}
		ranked = append(ranked, e)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].CompositeScore > ranked[j].CompositeScore
	})

	if c.MaxResults > 0 && len(ranked) > c.MaxResults {
		ranked = ranked[:c.MaxResults]
	}
	return ranked, gated
}
