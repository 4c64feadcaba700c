package calculator

import (
	"errors"
	"math"
	"testing"
	"time"

	"SniperScan/internal/model"
)

func barsFromCloses(closes []float64) []model.PriceBar {
	bars := make([]model.PriceBar, len(closes))
	for i, c := range closes {
		bars[i] = model.PriceBar{
			Date:   time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, i),
			Open:   c,
			High:   c * 1.01,
			Low:    c * 0.99,
			Close:  c,
			Volume: 1_000_000,
		}
	}
	return bars
}

func TestSMA(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5}
	got, err := SMA(values, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 4 {
		t.Errorf("expected trailing mean 4, got %v", got)
	}

	if _, err := SMA(values, 10); !errors.Is(err, ErrNotEnoughData) {
		t.Errorf("expected ErrNotEnoughData, got %v", err)
	}
	if _, err := SMA(values, 0); err == nil {
		t.Error("expected error for non-positive period")
	}
}

func TestAdjustedWindow(t *testing.T) {
	if got := AdjustedWindow(200, 120); got != 120 {
		t.Errorf("expected shrunk window 120, got %d", got)
	}
	if got := AdjustedWindow(50, 252); got != 50 {
		t.Errorf("expected full window 50, got %d", got)
	}
}

func TestRSI_AllGains(t *testing.T) {
	closes := make([]float64, 30)
	for i := range closes {
		closes[i] = 100 + float64(i)
	}
	if got := RSI(closes, 14); got != 100 {
		t.Errorf("expected RSI 100 for monotonically rising closes, got %v", got)
	}
}

func TestRSI_Flat(t *testing.T) {
	closes := make([]float64, 30)
	for i := range closes {
		closes[i] = 100
	}
	if got := RSI(closes, 14); got != 50 {
		t.Errorf("expected neutral RSI 50 for a flat series, got %v", got)
	}
}

func TestRSI_NeverNaN(t *testing.T) {
	series := [][]float64{
		{100},
		{100, 100},
		make([]float64, 30), // all zeros
	}
	for _, closes := range series {
		if got := RSI(closes, 14); math.IsNaN(got) {
			t.Errorf("RSI produced NaN for %v", closes)
		}
	}
}

func TestRSI_Mixed(t *testing.T) {
	closes := []float64{100, 102, 101, 103, 102, 104, 103, 105, 104, 106, 105, 107, 106, 108, 107}
	got := RSI(closes, 14)
	if got <= 0 || got >= 100 {
		t.Errorf("expected RSI strictly inside (0,100) for mixed series, got %v", got)
	}
}

func TestTrueRange_GapOpen(t *testing.T) {
	bar := model.PriceBar{High: 110, Low: 105, Close: 108}
	// Previous close far below the day's range: the gap dominates.
	if got := TrueRange(bar, 90); got != 20 {
		t.Errorf("expected true range 20 (high - prev close), got %v", got)
	}
	// Previous close inside the range: plain high - low.
	if got := TrueRange(bar, 107); got != 5 {
		t.Errorf("expected true range 5, got %v", got)
	}
}

func TestATR_InsufficientData(t *testing.T) {
	bars := barsFromCloses([]float64{100, 101})
	if got := ATR(bars, 14); got != 0 {
		t.Errorf("expected ATR 0 for short series, got %v", got)
	}
}

func TestATR_ConstantRange(t *testing.T) {
	// Identical bars: TR is always high-low.
	bars := make([]model.PriceBar, 20)
	for i := range bars {
		bars[i] = model.PriceBar{High: 102, Low: 98, Close: 100}
	}
	got := ATR(bars, 14)
	if math.Abs(got-4) > 1e-9 {
		t.Errorf("expected ATR 4, got %v", got)
	}
}

func TestRangePosition(t *testing.T) {
	tests := []struct {
		close, high, low float64
		want             float64
	}{
		{150, 200, 100, 0.5},
		{200, 200, 100, 1.0},
		{100, 200, 100, 0.0},
		{250, 200, 100, 1.0}, // clamped
		{50, 200, 100, 0.0},  // clamped
		{100, 100, 100, 0.0}, // degenerate range
	}
	for _, tt := range tests {
		if got := RangePosition(tt.close, tt.high, tt.low); got != tt.want {
			t.Errorf("RangePosition(%v, %v, %v) = %v, want %v", tt.close, tt.high, tt.low, got, tt.want)
		}
	}
}

func TestYearRange(t *testing.T) {
	bars := barsFromCloses([]float64{100, 150, 120})
	high, low := YearRange(bars)
	if high != 150*1.01 {
		t.Errorf("expected high %v, got %v", 150*1.01, high)
	}
	if low != 100*0.99 {
		t.Errorf("expected low %v, got %v", 100*0.99, low)
	}
}

func TestVolumeRatio(t *testing.T) {
	vols := make([]float64, 20)
	for i := range vols {
		vols[i] = 1000
	}
	if got := VolumeRatio(vols, 20); math.Abs(got-1.0) > 1e-9 {
		t.Errorf("expected ratio 1.0 for flat volume, got %v", got)
	}

	zero := make([]float64, 20)
	if got := VolumeRatio(zero, 20); got != 0 {
		t.Errorf("expected ratio 0 when the average is 0, got %v", got)
	}
	if got := VolumeRatio(nil, 20); got != 0 {
		t.Errorf("expected ratio 0 for empty volumes, got %v", got)
	}
}

func TestSFP_FiresOnUndercutAndReclaim(t *testing.T) {
	bars := barsFromCloses(make([]float64, 25))
	for i := range bars {
		bars[i].Low = 100
		bars[i].High = 110
		bars[i].Close = 105
	}
	// Today pierces the prior 20-bar low but closes back above it.
	today := &bars[len(bars)-1]
	today.Low = 99
	today.Close = 101
	if !SFP(bars, 20) {
		t.Error("expected SFP to fire on undercut-and-reclaim")
	}
}

func TestSFP_EqualityIsFalse(t *testing.T) {
	bars := barsFromCloses(make([]float64, 25))
	for i := range bars {
		bars[i].Low = 100
		bars[i].High = 110
		bars[i].Close = 105
	}
	// Today's low only touches the prior low: no strict undercut, no signal.
	if SFP(bars, 20) {
		t.Error("SFP must not fire when today's low equals the prior low")
	}
}

func TestSFP_CloseBelowPriorLow(t *testing.T) {
	bars := barsFromCloses(make([]float64, 25))
	for i := range bars {
		bars[i].Low = 100
		bars[i].High = 110
		bars[i].Close = 105
	}
	today := &bars[len(bars)-1]
	today.Low = 95
	today.Close = 98 // breakdown, not a trap
	if SFP(bars, 20) {
		t.Error("SFP must not fire when the close stays below the prior low")
	}
}

func TestSFP_InsufficientData(t *testing.T) {
	bars := barsFromCloses([]float64{100, 101, 102})
	if SFP(bars, 20) {
		t.Error("SFP must not fire with fewer than lookback+1 bars")
	}
}
