package scanner

import (
	"errors"
	"fmt"

	"SniperScan/internal/model"
)

// analysisWindow is one trading year of daily bars.
const analysisWindow = 252

// Normalizer rejection reasons. Callers treat any of them as "ticker
// excluded"; the distinction only feeds aggregate counters.
var (
	ErrNoData              = errors.New("no price data")
	ErrInsufficientHistory = errors.New("insufficient history")
	ErrPriceBelowFloor     = errors.New("price below floor")
)

// Normalize validates a raw price series and trims it to the analysis
// window. Series shorter than 200 bars but at least minBars long pass
// through in a degraded-precision mode: moving-average windows downstream
// shrink to the available bar count instead of failing.
func Normalize(series *model.PriceSeries, minBars int, priceFloor float64) (*model.PriceSeries, error) {
	if series.Len() == 0 {
		return nil, ErrNoData
	}
	if series.Len() < minBars {
		return nil, fmt.Errorf("%w: %d bars, need %d", ErrInsufficientHistory, series.Len(), minBars)
	}
	if series.Latest().Close < priceFloor {
		return nil, fmt.Errorf("%w: close %.2f < %.2f", ErrPriceBelowFloor, series.Latest().Close, priceFloor)
	}

	bars := series.Bars
	if len(bars) > analysisWindow {
		bars = bars[len(bars)-analysisWindow:]
	}
	return &model.PriceSeries{
		Ticker:    series.Ticker,
		Bars:      bars,
		FetchedAt: series.FetchedAt,
	}, nil
}
