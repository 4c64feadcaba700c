package scanner

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"SniperScan/internal/calculator"
	"SniperScan/internal/model"
	"SniperScan/internal/provider"
	"SniperScan/internal/universe"
)

// Scan-level failures. Everything below these is a per-ticker skip.
var (
	ErrEmptyUniverse       = errors.New("scan universe is empty")
	ErrProviderUnreachable = errors.New("data provider is unreachable")
)

// Config holds every knob the pipeline consumes.
type Config struct {
	LookbackDays int // bars requested from the provider
	Filter       FilterConfig
	Ranker       RankerConfig
	Workers      int     // bounded fetch concurrency
	RatePerSec   float64 // shared provider request rate limit
}

// Scanner runs the multi-stage scoring pipeline over the watchlist.
// Indicator computation and scoring are pure; only fetching touches the
// network, through a bounded worker pool with a shared rate limiter.
type Scanner struct {
	provider  provider.Provider
	watchlist *universe.Watchlist
	cfg       Config
	observer  ProgressObserver
	limiter   *rate.Limiter
}

// New creates a Scanner. A nil observer disables progress reporting.
func New(p provider.Provider, w *universe.Watchlist, cfg Config, obs ProgressObserver) *Scanner {
	if obs == nil {
		obs = NopObserver{}
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	perSec := cfg.RatePerSec
	if perSec <= 0 {
		perSec = 4
	}
	return &Scanner{
		provider:  p,
		watchlist: w,
		cfg:       cfg,
		observer:  obs,
		limiter:   rate.NewLimiter(rate.Limit(perSec), 1),
	}
}

// tickerOutcome is the typed per-ticker result: either a score or the stage
// that excluded the ticker. Failures feed counters, not control flow. An
// empty-but-successful response and a transport error are distinct states:
// only the latter counts toward provider-unreachable detection.
type tickerOutcome int

const (
	outcomeScored tickerOutcome = iota
	outcomeNoData
	outcomeFetchError
	outcomeShortHistory
	outcomeFiltered
	outcomeFault
)

// Scan evaluates every ticker in the universe and returns the ranked
// report. Cancelling the context abandons the remaining tickers; results
// collected so far are still ranked and returned.
func (s *Scanner) Scan(ctx context.Context) (*model.ScanReport, error) {
	tickers := s.watchlist.Tickers()
	if len(tickers) == 0 {
		return nil, ErrEmptyUniverse
	}

	report := &model.ScanReport{
		RunID:     uuid.NewString(),
		StartedAt: time.Now(),
	}
	s.observer.ScanStarted(len(tickers))

	// Candidates are collected per universe index so the ranker sees
	// them in stable input order regardless of worker interleaving.
	candidates := make([]*model.ScoreResult, len(tickers))

	var (
		mu        sync.Mutex
		wg        sync.WaitGroup
		done      int
		fetchErrs int
	)
	jobs := make(chan int)

	for n := 0; n < s.cfg.Workers; n++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				if err := s.limiter.Wait(ctx); err != nil {
					return
				}
				ticker := tickers[idx]
				result, outcome := s.evaluate(ctx, ticker)

				mu.Lock()
				report.Counters.Scanned++
				switch outcome {
				case outcomeScored:
					candidates[idx] = result
					report.Counters.Admitted++
				case outcomeNoData:
					report.Counters.NoData++
				case outcomeFetchError:
					report.Counters.NoData++
					fetchErrs++
				case outcomeShortHistory:
					report.Counters.ShortHistory++
				case outcomeFiltered:
					report.Counters.Filtered++
				case outcomeFault:
					report.Counters.ScoringFaults++
				}
				done++
				s.observer.TickerDone(ticker, done, len(tickers))
				mu.Unlock()
			}
		}()
	}

feed:
	for idx := range tickers {
		select {
		case <-ctx.Done():
			break feed
		case jobs <- idx:
		}
	}
	close(jobs)
	wg.Wait()

	if report.Counters.Scanned > 0 && fetchErrs == report.Counters.Scanned {
		return nil, ErrProviderUnreachable
	}

	admitted := make([]model.ScoreResult, 0, report.Counters.Admitted)
	for _, c := range candidates {
		if c != nil {
			admitted = append(admitted, *c)
		}
	}

	ranked, gated := s.cfg.Ranker.Rank(admitted)
	report.Counters.BelowScoreFloor = gated
	report.Results = ranked
	report.Elapsed = time.Since(report.StartedAt)

	s.observer.ScanFinished(len(ranked))
	return report, nil
}

// evaluate runs the full funnel for one ticker. Any panic inside scoring is
// contained here: the ticker is excluded and the scan continues.
func (s *Scanner) evaluate(ctx context.Context, ticker string) (result *model.ScoreResult, outcome tickerOutcome) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[WARN] %s: scoring fault: %v, ticker excluded", ticker, r)
			result, outcome = nil, outcomeFault
		}
	}()

	raw, err := s.provider.FetchSeries(ctx, ticker, s.cfg.LookbackDays)
	if err != nil {
		log.Printf("[WARN] %s: fetch series: %v", ticker, err)
		return nil, outcomeFetchError
	}
	// An empty series is a valid answer (unknown or delisted ticker):
	// skip silently, the provider is healthy.
	if raw.Len() == 0 {
		return nil, outcomeNoData
	}

	series, err := Normalize(raw, s.cfg.Filter.MinHistory, s.cfg.Filter.PriceFloor)
	if err != nil {
		if errors.Is(err, ErrInsufficientHistory) || errors.Is(err, ErrNoData) {
			return nil, outcomeShortHistory
		}
		return nil, outcomeFiltered
	}

	// Missing fundamentals are a first-class state, not a failure: the
	// fundamental engine has fallback rules for every absent field.
	fundamentals, err := s.provider.FetchFundamentals(ctx, ticker)
	if err != nil {
		log.Printf("[WARN] %s: fetch fundamentals: %v, scoring without them", ticker, err)
		fundamentals = nil
	}
	fundScore, fundReasons := ScoreFundamentals(fundamentals)

	avgVolume, _ := calculator.SMA(series.Volumes(), calculator.AdjustedWindow(20, series.Len()))
	if !s.cfg.Filter.Admit(series, avgVolume, fundamentals.MarketCapValue(), fundScore) {
		return nil, outcomeFiltered
	}

	snap := Snapshot(series)
	techScore, signals := ScoreTechnical(snap)

	return &model.ScoreResult{
		Ticker:             ticker,
		Sector:             s.watchlist.SectorOf(ticker),
		Price:              snap.Close,
		TechnicalScore:     techScore,
		TechnicalSignals:   signals,
		FundamentalScore:   fundScore,
		FundamentalReasons: fundReasons,
		CompositeScore:     CompositeScore(techScore, fundScore, len(signals) > 0),
		StopLoss:           StopLoss(snap.Close, snap.ATR14, s.cfg.Ranker.StopLossATR),
	}, outcomeScored
}
