package calculator

import "SniperScan/internal/model"

// SFP detects a swing-failure pattern on the latest bar: price pierces the
// minimum low of the `lookback` bars preceding today intraday, then closes
// back above it. Equality never fires: the undercut must be strict.
// Requires lookback+1 bars.
func SFP(bars []model.PriceBar, lookback int) bool {
	if lookback <= 0 || len(bars) < lookback+1 {
		return false
	}
	today := bars[len(bars)-1]
	priorLow := bars[len(bars)-1-lookback].Low
	for i := len(bars) - lookback; i < len(bars)-1; i++ {
		if bars[i].Low < priorLow {
			priorLow = bars[i].Low
		}
	}
	return today.Low < priorLow && today.Close > priorLow
}
