package provider

import (
	"context"

	"SniperScan/internal/model"
)

// Provider fetches market data for a single ticker. Implementations must
// signal "no data" with an empty series or nil record rather than an error;
// the caller treats empty results as a silent skip. Errors are reserved for
// transport-level failures.
type Provider interface {
	FetchSeries(ctx context.Context, ticker string, lookbackDays int) (*model.PriceSeries, error)
	FetchFundamentals(ctx context.Context, ticker string) (*model.FundamentalsRecord, error)
	Name() string
}
