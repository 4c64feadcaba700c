package model

import "time"

// ScoreResult is the final scored record for one admitted ticker.
type ScoreResult struct {
	Ticker             string
	Sector             string
	Price              float64
	TechnicalScore     float64
	TechnicalSignals   []string
	FundamentalScore   float64
	FundamentalReasons []string
	CompositeScore     float64
	StopLoss           float64
}

// ScanCounters aggregates the per-stage funnel outcomes of one scan pass.
// Individual rejection reasons are discardable; only the totals survive.
type ScanCounters struct {
	Scanned         int // tickers attempted
	NoData          int // provider returned nothing
	ShortHistory    int // rejected by the normalizer
	Filtered        int // dropped by the admission filter
	ScoringFaults   int // unexpected per-ticker scoring failures
	BelowScoreFloor int // admitted but under the composite minimum
	Admitted        int // reached the composite ranker
}

// ScanReport is the full output of one scan pass.
type ScanReport struct {
	RunID     string
	StartedAt time.Time
	Elapsed   time.Duration
	Counters  ScanCounters
	Results   []ScoreResult // ranked, highest composite first
}
