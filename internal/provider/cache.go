package provider

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"SniperScan/internal/model"
)

// CachedProvider wraps another Provider with a SQLite-backed TTL cache so
// repeated scans don't hammer the upstream API. The core pipeline stays
// correct whether or not this layer is present.
type CachedProvider struct {
	inner Provider
	db    *sql.DB
	ttl   time.Duration
	mu    sync.Mutex
}

// NewCachedProvider opens (or creates) the cache database and runs migrations.
func NewCachedProvider(inner Provider, dbPath string, ttl time.Duration) (*CachedProvider, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	c := &CachedProvider{inner: inner, db: db, ttl: ttl}
	if err := c.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] provider cache opened: %s (ttl %s)", dbPath, ttl)
	return c, nil
}

func (c *CachedProvider) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS series_cache (
			ticker     TEXT PRIMARY KEY,
			fetched_at INTEGER NOT NULL,
			payload    TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS fundamentals_cache (
			ticker     TEXT PRIMARY KEY,
			fetched_at INTEGER NOT NULL,
			payload    TEXT NOT NULL
		)`,
	}
	for _, s := range stmts {
		if _, err := c.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (c *CachedProvider) Name() string { return c.inner.Name() + "+cache" }

func (c *CachedProvider) FetchSeries(ctx context.Context, ticker string, lookbackDays int) (*model.PriceSeries, error) {
	var cached model.PriceSeries
	if c.lookup("series_cache", ticker, &cached) {
		return &cached, nil
	}

	series, err := c.inner.FetchSeries(ctx, ticker, lookbackDays)
	if err != nil {
		return nil, err
	}
	c.store("series_cache", ticker, series)
	return series, nil
}

func (c *CachedProvider) FetchFundamentals(ctx context.Context, ticker string) (*model.FundamentalsRecord, error) {
	var cached model.FundamentalsRecord
	if c.lookup("fundamentals_cache", ticker, &cached) {
		return &cached, nil
	}

	rec, err := c.inner.FetchFundamentals(ctx, ticker)
	if err != nil {
		return nil, err
	}
	c.store("fundamentals_cache", ticker, rec)
	return rec, nil
}

// lookup decodes a cache row into out and reports whether it was fresh.
func (c *CachedProvider) lookup(table, ticker string, out interface{}) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	var fetchedAt int64
	var payload string
	row := c.db.QueryRow("SELECT fetched_at, payload FROM "+table+" WHERE ticker = ?", ticker)
	if err := row.Scan(&fetchedAt, &payload); err != nil {
		return false
	}
	if time.Since(time.Unix(fetchedAt, 0)) > c.ttl {
		return false
	}
	if err := json.Unmarshal([]byte(payload), out); err != nil {
		log.Printf("[WARN] corrupt cache entry for %s, refetching: %v", ticker, err)
		return false
	}
	return true
}

func (c *CachedProvider) store(table, ticker string, v interface{}) {
	payload, err := json.Marshal(v)
	if err != nil {
		log.Printf("[WARN] encode cache entry for %s: %v", ticker, err)
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	_, err = c.db.Exec("INSERT OR REPLACE INTO "+table+" (ticker, fetched_at, payload) VALUES (?,?,?)",
		ticker, time.Now().Unix(), string(payload))
	if err != nil {
		log.Printf("[WARN] write cache entry for %s: %v", ticker, err)
	}
}

func (c *CachedProvider) Close() error {
	log.Println("[INFO] closing provider cache")
	return c.db.Close()
}
