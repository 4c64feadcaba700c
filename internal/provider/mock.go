package provider

import (
	"context"
	"time"

	"SniperScan/internal/model"
)

// MockProvider returns controllable fixed data for development and testing.
// Tickers without an entry yield empty results, mimicking an unknown symbol.
type MockProvider struct {
	Series       map[string]*model.PriceSeries
	Fundamentals map[string]*model.FundamentalsRecord
	SeriesErr    error
}

func (m *MockProvider) Name() string { return "mock" }

func (m *MockProvider) FetchSeries(_ context.Context, ticker string, _ int) (*model.PriceSeries, error) {
	if m.SeriesErr != nil {
		return nil, m.SeriesErr
	}
	if s, ok := m.Series[ticker]; ok {
		return s, nil
	}
	return &model.PriceSeries{Ticker: ticker, FetchedAt: time.Now()}, nil
}

func (m *MockProvider) FetchFundamentals(_ context.Context, ticker string) (*model.FundamentalsRecord, error) {
	if f, ok := m.Fundamentals[ticker]; ok {
		return f, nil
	}
	return &model.FundamentalsRecord{}, nil
}

// GenerateBars builds a synthetic drifting series around basePrice, one bar
// per day ending today.
func GenerateBars(basePrice float64, count int) []model.PriceBar {
	bars := make([]model.PriceBar, count)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i-count/2)*0.001)
		bars[i] = model.PriceBar{
			Date:   time.Now().AddDate(0, 0, -(count - i)),
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: 1_000_000,
		}
	}
	return bars
}
