package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"time"

	"SniperScan/internal/model"
)

// YahooProvider fetches daily bars and coarse fundamentals from the Yahoo
// Finance public API.
type YahooProvider struct {
	Client *http.Client
}

// NewYahooProvider creates a Yahoo provider with optional proxy support.
func NewYahooProvider(proxyURL string) *YahooProvider {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &YahooProvider{
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

func (p *YahooProvider) Name() string { return "yahoo" }

// yahooChart is the response structure from the Yahoo Finance chart API.
type yahooChart struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []interface{} `json:"open"`
					High   []interface{} `json:"high"`
					Low    []interface{} `json:"low"`
					Close  []interface{} `json:"close"`
					Volume []interface{} `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

func toFloat(v interface{}) float64 {
	if v == nil {
		return 0
	}
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	default:
		return 0
	}
}

// FetchSeries downloads up to lookbackDays of daily bars, oldest first.
// An unknown ticker yields an empty series, not an error.
func (p *YahooProvider) FetchSeries(ctx context.Context, ticker string, lookbackDays int) (*model.PriceSeries, error) {
	rng := "2y"
	switch {
	case lookbackDays <= 30:
		rng = "1mo"
	case lookbackDays <= 90:
		rng = "3mo"
	case lookbackDays <= 180:
		rng = "6mo"
	case lookbackDays <= 365:
		rng = "1y"
	}

	u := fmt.Sprintf("https://query1.finance.yahoo.com/v8/finance/chart/%s?interval=1d&range=%s",
		url.PathEscape(ticker), rng)

	body, err := p.get(ctx, u)
	if err != nil {
		return nil, err
	}

	var chart yahooChart
	if err := json.Unmarshal(body, &chart); err != nil {
		return nil, fmt.Errorf("yahoo decode: %w", err)
	}
	if chart.Chart.Error != nil {
		// Unknown ticker: signal "no data", don't fail the scan.
		return &model.PriceSeries{Ticker: ticker, FetchedAt: time.Now()}, nil
	}
	if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Indicators.Quote) == 0 {
		return &model.PriceSeries{Ticker: ticker, FetchedAt: time.Now()}, nil
	}

	result := chart.Chart.Result[0]
	quote := result.Indicators.Quote[0]
	bars := make([]model.PriceBar, 0, len(result.Timestamp))

	for i, ts := range result.Timestamp {
		o := toFloat(quote.Open[i])
		h := toFloat(quote.High[i])
		l := toFloat(quote.Low[i])
		c := toFloat(quote.Close[i])
		if o == 0 && h == 0 && l == 0 && c == 0 {
			continue // skip null bars (holidays etc.)
		}
		bars = append(bars, model.PriceBar{
			Date:   time.Unix(ts, 0),
			Open:   o,
			High:   h,
			Low:    l,
			Close:  c,
			Volume: toFloat(quote.Volume[i]),
		})
	}

	sort.Slice(bars, func(i, j int) bool { return bars[i].Date.Before(bars[j].Date) })
	if len(bars) > lookbackDays {
		bars = bars[len(bars)-lookbackDays:]
	}
	return &model.PriceSeries{Ticker: ticker, Bars: bars, FetchedAt: time.Now()}, nil
}

// yahooSummary is the quoteSummary response, trimmed to the fields we read.
type yahooSummary struct {
	QuoteSummary struct {
		Result []struct {
			SummaryDetail struct {
				MarketCap  yahooValue `json:"marketCap"`
				TrailingPE yahooValue `json:"trailingPE"`
				ForwardPE  yahooValue `json:"forwardPE"`
			} `json:"summaryDetail"`
			FinancialData struct {
				DebtToEquity  yahooValue `json:"debtToEquity"`
				RevenueGrowth yahooValue `json:"revenueGrowth"`
				ProfitMargins yahooValue `json:"profitMargins"`
			} `json:"financialData"`
		} `json:"result"`
		Error *struct {
			Description string `json:"description"`
		} `json:"error"`
	} `json:"quoteSummary"`
}

// yahooValue is Yahoo's {raw, fmt} number wrapper. Raw stays nil when the
// field is absent, preserving "no data" as a distinct state.
type yahooValue struct {
	Raw *float64 `json:"raw"`
}

// FetchFundamentals downloads the sparse fundamentals record. Missing
// fields stay nil; an unknown ticker yields an empty record.
func (p *YahooProvider) FetchFundamentals(ctx context.Context, ticker string) (*model.FundamentalsRecord, error) {
	u := fmt.Sprintf("https://query1.finance.yahoo.com/v10/finance/quoteSummary/%s?modules=summaryDetail,financialData",
		url.PathEscape(ticker))

	body, err := p.get(ctx, u)
	if err != nil {
		return nil, err
	}

	var summary yahooSummary
	if err := json.Unmarshal(body, &summary); err != nil {
		return nil, fmt.Errorf("yahoo decode fundamentals: %w", err)
	}
	if summary.QuoteSummary.Error != nil || len(summary.QuoteSummary.Result) == 0 {
		return &model.FundamentalsRecord{}, nil
	}

	r := summary.QuoteSummary.Result[0]
	return &model.FundamentalsRecord{
		MarketCap:     r.SummaryDetail.MarketCap.Raw,
		TrailingPE:    r.SummaryDetail.TrailingPE.Raw,
		ForwardPE:     r.SummaryDetail.ForwardPE.Raw,
		DebtToEquity:  r.FinancialData.DebtToEquity.Raw,
		RevenueGrowth: r.FinancialData.RevenueGrowth.Raw,
		ProfitMargin:  r.FinancialData.ProfitMargins.Raw,
	}, nil
}

func (p *YahooProvider) get(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := p.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("yahoo fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("yahoo read body: %w", err)
	}
	if resp.StatusCode == http.StatusNotFound {
		return body, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("yahoo: status %d, body: %s", resp.StatusCode, string(body))
	}
	return body, nil
}
