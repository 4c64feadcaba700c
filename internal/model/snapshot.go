package model

// TechnicalSnapshot holds the point-in-time indicator values derived from a
// validated price series. Computed fresh each scan, never mutated.
type TechnicalSnapshot struct {
	Close       float64
	SMA50       float64
	SMA200      float64
	RSI14       float64
	ATR14       float64
	VolumeRatio float64 // current volume / SMA20(volume), 0 when average is 0
	Position52w float64 // 0.0 ~ 1.0 within the trailing 52-week range
	TrendDist   float64 // (close - SMA200) / SMA200 * 100
	SFPSignal   bool
}

// Bullish reports whether the close sits above the long moving average.
func (t *TechnicalSnapshot) Bullish() bool {
	return t.TrendDist > 0
}
