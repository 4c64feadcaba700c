package model

// FundamentalsRecord is a sparse snapshot of coarse fundamentals for one
// ticker. Any field may be nil: absence means "provider had no data", which
// is a first-class state distinct from zero.
type FundamentalsRecord struct {
	MarketCap     *float64 // USD
	TrailingPE    *float64
	ForwardPE     *float64
	DebtToEquity  *float64 // percentage, e.g. 45.0
	RevenueGrowth *float64 // fraction, e.g. 0.25 for 25%
	ProfitMargin  *float64 // fraction
}

// MarketCapValue returns the market cap or 0 when unknown.
func (r *FundamentalsRecord) MarketCapValue() float64 {
	if r == nil || r.MarketCap == nil {
		return 0
	}
	return *r.MarketCap
}

// Empty reports whether the record carries no data at all.
func (r *FundamentalsRecord) Empty() bool {
	return r == nil || (r.MarketCap == nil && r.TrailingPE == nil && r.ForwardPE == nil &&
		r.DebtToEquity == nil && r.RevenueGrowth == nil && r.ProfitMargin == nil)
}

// Float is a convenience for building sparse records in config and tests.
func Float(v float64) *float64 { return &v }
