package scanner

import "log"

// ProgressObserver receives scan progress at each ticker boundary. It is a
// side channel only: the pipeline never depends on it for scheduling, and a
// nil-safe no-op keeps the core testable without any presentation layer.
type ProgressObserver interface {
	ScanStarted(total int)
	TickerDone(ticker string, index, total int)
	ScanFinished(found int)
}

// NopObserver ignores all progress events.
type NopObserver struct{}

func (NopObserver) ScanStarted(int)             {}
func (NopObserver) TickerDone(string, int, int) {}
func (NopObserver) ScanFinished(int)            {}

// LogObserver writes progress to the standard logger.
type LogObserver struct{}

func (LogObserver) ScanStarted(total int) {
	log.Printf("[INFO] scan started: %d tickers", total)
}

func (LogObserver) TickerDone(ticker string, index, total int) {
	log.Printf("[INFO] scanned %s (%d/%d)", ticker, index, total)
}

func (LogObserver) ScanFinished(found int) {
	log.Printf("[INFO] scan finished: %d candidates", found)
}
