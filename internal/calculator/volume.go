package calculator

// VolumeRatio compares the latest volume to its trailing `period` simple
// average. Returns 0 when the average is 0 or data is insufficient.
func VolumeRatio(volumes []float64, period int) float64 {
	if len(volumes) == 0 {
		return 0
	}
	avg, err := SMA(volumes, AdjustedWindow(period, len(volumes)))
	if err != nil || avg == 0 {
		return 0
	}
	return volumes[len(volumes)-1] / avg
}
