package scanner

import (
	"SniperScan/internal/calculator"
	"SniperScan/internal/model"
)

// Signal labels attached by the technical scorer.
const (
	SignalSFP         = "SFP Trap"
	SignalStrongDip   = "Strong Dip"
	SignalBreakout    = "Breakout"
	SignalGoldenCross = "Golden Cross"
	SignalVolumeSurge = "Volume Surge"
)

const sfpLookback = 20

// Snapshot computes all point-in-time indicators for a validated series.
// Pure and deterministic: same series, same snapshot.
func Snapshot(series *model.PriceSeries) *model.TechnicalSnapshot {
	closes := series.Closes()
	latest := series.Latest()

	snap := &model.TechnicalSnapshot{Close: latest.Close}

	// Short histories shrink the MA windows rather than erroring out.
	if sma, err := calculator.SMA(closes, calculator.AdjustedWindow(50, len(closes))); err == nil {
		snap.SMA50 = sma
	}
	if sma, err := calculator.SMA(closes, calculator.AdjustedWindow(200, len(closes))); err == nil {
		snap.SMA200 = sma
	}
	if snap.SMA200 > 0 {
		snap.TrendDist = (latest.Close - snap.SMA200) / snap.SMA200 * 100
	}

	snap.RSI14 = calculator.RSI(closes, 14)
	snap.ATR14 = calculator.ATR(series.Bars, 14)
	snap.VolumeRatio = calculator.VolumeRatio(series.Volumes(), 20)

	high, low := calculator.YearRange(series.Bars)
	snap.Position52w = calculator.RangePosition(latest.Close, high, low)

	snap.SFPSignal = calculator.SFP(series.Bars, sfpLookback)

	return snap
}

// ScoreTechnical maps a snapshot to an additive 0-100 score plus the
// human-readable labels of every signal that fired. Bonuses stack.
func ScoreTechnical(snap *model.TechnicalSnapshot) (float64, []string) {
	score := 0.0
	var signals []string

	// An SFP in freefall is not a reversal cue, so deeply oversold
	// setups (RSI < 25) don't earn the bonus.
	if snap.SFPSignal && snap.RSI14 >= 25 {
		score += 25
		signals = append(signals, SignalSFP)
	}
	if snap.RSI14 < 35 && snap.SMA200 > 0 && snap.Close > snap.SMA200*1.02 {
		score += 25
		signals = append(signals, SignalStrongDip)
	}
	if snap.Position52w > 0.95 && snap.VolumeRatio > 1.5 {
		score += 20
		signals = append(signals, SignalBreakout)
	}
	if snap.SMA50 > snap.SMA200 && snap.Close > snap.SMA50 {
		score += 15
		signals = append(signals, SignalGoldenCross)
	}
	if snap.VolumeRatio > 2.0 {
		score += 15
		signals = append(signals, SignalVolumeSurge)
	}

	if score > 100 {
		score = 100
	}
	return score, signals
}
