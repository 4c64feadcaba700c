package scanner

import (
	"context"
	"errors"
	"sync"
	"testing"

	"SniperScan/internal/model"
	"SniperScan/internal/provider"
	"SniperScan/internal/universe"
)

func testConfig() Config {
	return Config{
		LookbackDays: 365,
		Filter: FilterConfig{
			PriceFloor:     1,
			MarketCapFloor: 200_000_000,
			VolumeFloor:    1_000,
			MinHistory:     50,
			MinFundamental: 20,
		},
		Ranker: RankerConfig{
			MinComposite: 30,
			MaxResults:   10,
			StopLossATR:  2,
		},
		Workers:    2,
		RatePerSec: 1_000, // tests shouldn't wait on the limiter
	}
}

func strongFundamentals() *model.FundamentalsRecord {
	return &model.FundamentalsRecord{
		MarketCap:     model.Float(5_000_000_000),
		TrailingPE:    model.Float(18),
		DebtToEquity:  model.Float(40),
		RevenueGrowth: model.Float(0.25),
	}
}

func singleSectorWatchlist(tickers ...string) *universe.Watchlist {
	return universe.New([]universe.SectorList{{Name: "Test Sector", Tickers: tickers}})
}

func TestScan_HappyPath(t *testing.T) {
	prov := &provider.MockProvider{
		Series: map[string]*model.PriceSeries{
			"UP": seriesOf("UP", risingCloses(100, 200, 252)),
		},
		Fundamentals: map[string]*model.FundamentalsRecord{
			"UP": strongFundamentals(),
		},
	}
	sc := New(prov, singleSectorWatchlist("UP"), testConfig(), nil)

	rep, err := sc.Scan(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rep.Results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(rep.Results))
	}

	r := rep.Results[0]
	if r.Ticker != "UP" {
		t.Errorf("expected ticker UP, got %s", r.Ticker)
	}
	if r.Sector != "Test Sector" {
		t.Errorf("expected sector resolved from the watchlist, got %q", r.Sector)
	}
	if r.FundamentalScore != 70 {
		t.Errorf("expected fundamental score 70, got %v", r.FundamentalScore)
	}
	if r.TechnicalScore < 15 {
		t.Errorf("expected golden-cross technical score >= 15, got %v", r.TechnicalScore)
	}
	if r.StopLoss >= r.Price {
		t.Errorf("stop loss %v must sit below the price %v", r.StopLoss, r.Price)
	}
	if rep.RunID == "" {
		t.Error("expected a run ID")
	}
	if rep.Counters.Scanned != 1 || rep.Counters.Admitted != 1 {
		t.Errorf("unexpected counters: %+v", rep.Counters)
	}
}

func TestScan_EmptySeriesSkippedButCounted(t *testing.T) {
	prov := &provider.MockProvider{
		Series: map[string]*model.PriceSeries{
			"UP": seriesOf("UP", risingCloses(100, 200, 252)),
			// GHOST has no entry: the provider yields an empty series.
		},
		Fundamentals: map[string]*model.FundamentalsRecord{
			"UP": strongFundamentals(),
		},
	}
	sc := New(prov, singleSectorWatchlist("GHOST", "UP"), testConfig(), nil)

	rep, err := sc.Scan(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rep.Counters.Scanned != 2 {
		t.Errorf("expected both tickers counted as scanned, got %d", rep.Counters.Scanned)
	}
	if rep.Counters.NoData != 1 {
		t.Errorf("expected 1 no-data skip, got %d", rep.Counters.NoData)
	}
	for _, r := range rep.Results {
		if r.Ticker == "GHOST" {
			t.Error("ticker without data must be absent from the output")
		}
	}
}

func TestScan_ShortHistoryCounted(t *testing.T) {
	prov := &provider.MockProvider{
		Series: map[string]*model.PriceSeries{
			"STUB": seriesOf("STUB", risingCloses(100, 110, 20)),
		},
	}
	sc := New(prov, singleSectorWatchlist("STUB"), testConfig(), nil)

	rep, err := sc.Scan(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rep.Counters.ShortHistory != 1 {
		t.Errorf("expected 1 short-history skip, got %+v", rep.Counters)
	}
	if len(rep.Results) != 0 {
		t.Errorf("expected no results, got %v", rep.Results)
	}
}

func TestScan_AllEmptySeriesIsNotUnreachable(t *testing.T) {
	// The provider answers every request but recognizes none of the
	// tickers. Empty responses are silent skips, not transport failures,
	// so the scan must complete with an empty report.
	prov := &provider.MockProvider{}
	sc := New(prov, singleSectorWatchlist("GONE1", "GONE2"), testConfig(), nil)

	rep, err := sc.Scan(context.Background())
	if err != nil {
		t.Fatalf("empty responses from a healthy provider must not fail the scan: %v", err)
	}
	if rep.Counters.NoData != 2 {
		t.Errorf("expected both tickers counted as no-data, got %+v", rep.Counters)
	}
	if len(rep.Results) != 0 {
		t.Errorf("expected no results, got %v", rep.Results)
	}
}

func TestScan_EmptyUniverse(t *testing.T) {
	sc := New(&provider.MockProvider{}, universe.New(nil), testConfig(), nil)
	_, err := sc.Scan(context.Background())
	if !errors.Is(err, ErrEmptyUniverse) {
		t.Errorf("expected ErrEmptyUniverse, got %v", err)
	}
}

func TestScan_ProviderUnreachable(t *testing.T) {
	prov := &provider.MockProvider{SeriesErr: errors.New("connection refused")}
	sc := New(prov, singleSectorWatchlist("AAA", "BBB", "CCC"), testConfig(), nil)

	_, err := sc.Scan(context.Background())
	if !errors.Is(err, ErrProviderUnreachable) {
		t.Errorf("expected ErrProviderUnreachable when every fetch fails, got %v", err)
	}
}

func TestScan_CancelledContext(t *testing.T) {
	prov := &provider.MockProvider{
		Series: map[string]*model.PriceSeries{
			"UP": seriesOf("UP", risingCloses(100, 200, 252)),
		},
	}
	sc := New(prov, singleSectorWatchlist("UP"), testConfig(), nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rep, err := sc.Scan(ctx)
	if err != nil {
		t.Fatalf("cancellation must not corrupt collected results: %v", err)
	}
	if rep == nil {
		t.Fatal("expected a (possibly empty) report after cancellation")
	}
}

type countingObserver struct {
	mu       sync.Mutex
	started  int
	ticks    int
	finished int
}

func (o *countingObserver) ScanStarted(int) {
	o.mu.Lock()
	o.started++
	o.mu.Unlock()
}

func (o *countingObserver) TickerDone(string, int, int) {
	o.mu.Lock()
	o.ticks++
	o.mu.Unlock()
}

func (o *countingObserver) ScanFinished(int) {
	o.mu.Lock()
	o.finished++
	o.mu.Unlock()
}

func TestScan_ObserverSeesEveryTicker(t *testing.T) {
	prov := &provider.MockProvider{
		Series: map[string]*model.PriceSeries{
			"UP": seriesOf("UP", risingCloses(100, 200, 252)),
		},
		Fundamentals: map[string]*model.FundamentalsRecord{
			"UP": strongFundamentals(),
		},
	}
	obs := &countingObserver{}
	sc := New(prov, singleSectorWatchlist("UP", "GHOST1", "GHOST2"), testConfig(), obs)

	if _, err := sc.Scan(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if obs.started != 1 || obs.finished != 1 {
		t.Errorf("expected one start/finish pair, got %d/%d", obs.started, obs.finished)
	}
	if obs.ticks != 3 {
		t.Errorf("expected a progress tick per ticker, got %d", obs.ticks)
	}
}
