package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"SniperScan/internal/config"
	"SniperScan/internal/notifier"
	"SniperScan/internal/provider"
	"SniperScan/internal/report"
	"SniperScan/internal/scanner"
	"SniperScan/internal/scheduler"
	"SniperScan/internal/universe"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	var (
		cfgPath = flag.String("config", "configs/config.yaml", "path to the YAML config file")
		once    = flag.Bool("once", false, "run a single scan and exit instead of starting the service")
		csvPath = flag.String("csv", "", "also export results to this CSV file (one-shot mode)")
		noCache = flag.Bool("no-cache", false, "bypass the SQLite provider cache")
	)
	flag.Parse()

	if v := os.Getenv("CONFIG_PATH"); v != "" {
		*cfgPath = v
	}
	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	watchlist := universe.New(cfg.Watchlist)
	log.Printf("[INFO] watchlist loaded: %d tickers across %d sectors", watchlist.Size(), len(cfg.Watchlist))

	var prov provider.Provider = provider.NewYahooProvider(cfg.Proxy)
	if !*noCache {
		cached, err := provider.NewCachedProvider(prov, cfg.Cache.SQLitePath, cfg.Cache.TTL)
		if err != nil {
			log.Printf("[WARN] init provider cache failed, continuing uncached: %v", err)
		} else {
			prov = cached
			defer cached.Close()
		}
	}
	log.Printf("[INFO] data source: %s", prov.Name())

	scanCfg := scanner.Config{
		LookbackDays: cfg.Scan.LookbackDays,
		Filter: scanner.FilterConfig{
			PriceFloor:     cfg.Scan.PriceFloor,
			MarketCapFloor: cfg.Scan.MarketCapFloor,
			VolumeFloor:    cfg.Scan.VolumeFloor,
			MinHistory:     cfg.Scan.MinHistory,
			MinFundamental: cfg.Scan.MinFundamental,
		},
		Ranker: scanner.RankerConfig{
			MinComposite:  cfg.Scan.MinComposite,
			RequireSignal: cfg.Scan.RequireSignal,
			MaxResults:    cfg.Scan.MaxResults,
			StopLossATR:   cfg.Scan.StopLossATR,
		},
		Workers:    cfg.Scan.Workers,
		RatePerSec: cfg.Scan.RequestsPerSec,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sc := scanner.New(prov, watchlist, scanCfg, scanner.LogObserver{})

	if *once {
		runOnce(ctx, sc, *csvPath)
		return
	}

	// Service mode: cron-scheduled scans + Telegram commands.
	if err := cfg.ValidateTelegram(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}
	tn := notifier.NewTelegram(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)
	tn.MaxRetries = cfg.Telegram.MaxRetries

	sched := scheduler.NewScheduler(ctx, sc, tn)
	if err := sched.Register(cfg.Schedule.ScanCron); err != nil {
		log.Fatalf("[FATAL] register cron task: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	go tn.StartPolling(ctx, sched.HandleCommand)
	log.Println("[INFO] Telegram polling started")

	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, executing scan now")
		go sched.RunScanNow()
	}

	log.Println("[INFO] SniperScan is running. Press Ctrl+C to stop.")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	log.Println("[INFO] SniperScan stopped")
}

// runOnce executes a single scan, prints the table and optionally writes CSV.
func runOnce(ctx context.Context, sc *scanner.Scanner, csvPath string) {
	rep, err := sc.Scan(ctx)
	if err != nil {
		log.Fatalf("[FATAL] scan: %v", err)
	}

	fmt.Print(report.FormatTable(rep))

	if csvPath != "" {
		f, err := os.Create(csvPath)
		if err != nil {
			log.Fatalf("[FATAL] create csv: %v", err)
		}
		defer f.Close()
		if err := report.WriteCSV(f, rep); err != nil {
			log.Fatalf("[FATAL] write csv: %v", err)
		}
		log.Printf("[INFO] results exported to %s", csvPath)
	}
}
