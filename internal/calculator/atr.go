package calculator

import (
	"math"

	"SniperScan/internal/model"
)

// TrueRange computes the true range of a bar given the previous close.
func TrueRange(bar model.PriceBar, prevClose float64) float64 {
	hl := bar.High - bar.Low
	hc := math.Abs(bar.High - prevClose)
	lc := math.Abs(bar.Low - prevClose)
	tr := hl
	if hc > tr {
		tr = hc
	}
	if lc > tr {
		tr = lc
	}
	return tr
}

// ATR computes the average true range as a simple moving average of the
// trailing `period` true ranges. Requires period+1 bars; returns 0 when
// data is insufficient.
func ATR(bars []model.PriceBar, period int) float64 {
	if period <= 0 || len(bars) < period+1 {
		return 0
	}
	sum := 0.0
	for i := len(bars) - period; i < len(bars); i++ {
		sum += TrueRange(bars[i], bars[i-1].Close)
	}
	return sum / float64(period)
}
