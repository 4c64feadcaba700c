package calculator

import "errors"

// ErrNotEnoughData is returned when a series is shorter than the requested window.
var ErrNotEnoughData = errors.New("not enough data")

// SMA computes the simple moving average of the trailing `period` values.
func SMA(values []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, errors.New("period must be positive")
	}
	if len(values) < period {
		return 0, ErrNotEnoughData
	}
	sum := 0.0
	for i := len(values) - period; i < len(values); i++ {
		sum += values[i]
	}
	return sum / float64(period), nil
}

// AdjustedWindow shrinks a moving-average window to the available bar count.
// Short histories run in a degraded-precision mode instead of failing.
func AdjustedWindow(window, available int) int {
	if available < window {
		return available
	}
	return window
}
