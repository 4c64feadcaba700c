package model

import "time"

// PriceBar represents a single daily OHLCV bar.
type PriceBar struct {
	Date   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// PriceSeries holds the raw daily bars for one ticker, oldest first.
// Bars are strictly increasing by date, one per trading session.
type PriceSeries struct {
	Ticker    string
	Bars      []PriceBar
	FetchedAt time.Time
}

// Len returns the number of bars in the series.
func (s *PriceSeries) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Bars)
}

// Latest returns the most recent bar. The series must be non-empty.
func (s *PriceSeries) Latest() PriceBar {
	return s.Bars[len(s.Bars)-1]
}

// Closes extracts the close prices, oldest first.
func (s *PriceSeries) Closes() []float64 {
	closes := make([]float64, len(s.Bars))
	for i, b := range s.Bars {
		closes[i] = b.Close
	}
	return closes
}

// Volumes extracts the volumes, oldest first.
func (s *PriceSeries) Volumes() []float64 {
	vols := make([]float64, len(s.Bars))
	for i, b := range s.Bars {
		vols[i] = b.Volume
	}
	return vols
}
