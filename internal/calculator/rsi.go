package calculator

// RSI computes the relative strength index over the trailing `period`
// close-to-close changes, using simple averages of gains and losses.
// Returns 100 when there are no losses in the window, and 50 (neutral)
// when the window is completely flat. Requires period+1 closes; returns
// 50 when data is insufficient.
func RSI(closes []float64, period int) float64 {
	if period <= 0 || len(closes) < period+1 {
		return 50.0
	}

	var avgGain, avgLoss float64
	for i := len(closes) - period; i < len(closes); i++ {
		change := closes[i] - closes[i-1]
		if change > 0 {
			avgGain += change
		} else {
			avgLoss -= change
		}
	}
	avgGain /= float64(period)
	avgLoss /= float64(period)

	if avgLoss == 0 {
		if avgGain == 0 {
			return 50.0
		}
		return 100.0
	}
	rs := avgGain / avgLoss
	return 100.0 - 100.0/(1.0+rs)
}
