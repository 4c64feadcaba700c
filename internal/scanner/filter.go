package scanner

import "SniperScan/internal/model"

// FilterConfig holds the admission gate floors.
type FilterConfig struct {
	PriceFloor     float64
	MarketCapFloor float64 // applied only when the market cap is known
	VolumeFloor    float64 // average 20-day volume
	MinHistory     int
	MinFundamental float64
}

// Admit runs the sequential admission funnel: the basic liquidity/price/
// market-cap/history gate, then the fundamental-score floor. All checks are
// conjunctive and stateless; tickers failing any stage are excluded from
// every downstream computation.
func (c FilterConfig) Admit(series *model.PriceSeries, avgVolume20, marketCap, fundamentalScore float64) bool {
	if series.Len() < c.MinHistory {
		return false
	}
	if series.Latest().Close < c.PriceFloor {
		return false
	}
	// Unknown market cap (0) means "no data available", not a reject.
	if marketCap > 0 && marketCap < c.MarketCapFloor {
		return false
	}
	if avgVolume20 < c.VolumeFloor {
		return false
	}
	return fundamentalScore >= c.MinFundamental
}
