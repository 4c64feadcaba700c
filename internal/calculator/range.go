package calculator

import (
	"math"

	"SniperScan/internal/model"
)

// YearRange scans the most recent 252 trading days and returns the high and low.
func YearRange(bars []model.PriceBar) (high, low float64) {
	n := len(bars)
	if n == 0 {
		return 0, 0
	}
	start := n - 252
	if start < 0 {
		start = 0
	}
	high = math.Inf(-1)
	low = math.Inf(1)
	for i := start; i < n; i++ {
		if bars[i].High > high {
			high = bars[i].High
		}
		if bars[i].Low < low {
			low = bars[i].Low
		}
	}
	return high, low
}

// RangePosition returns where the close sits within [low, high], clamped to
// 0.0~1.0. A degenerate range (high == low) yields 0.
func RangePosition(close, high, low float64) float64 {
	if high <= low {
		return 0
	}
	pos := (close - low) / (high - low)
	if pos < 0 {
		pos = 0
	}
	if pos > 1 {
		pos = 1
	}
	return pos
}
