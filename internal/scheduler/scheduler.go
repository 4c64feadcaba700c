package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/robfig/cron/v3"

	"SniperScan/internal/model"
	"SniperScan/internal/notifier"
	"SniperScan/internal/report"
	"SniperScan/internal/scanner"
)

// Scheduler runs scans on a cron schedule and on Telegram command.
type Scheduler struct {
	Cron     *cron.Cron
	Scanner  *scanner.Scanner
	Notifier *notifier.Telegram
	Ctx      context.Context

	mu         sync.Mutex
	scanning   bool
	lastReport *model.ScanReport
}

// NewScheduler creates a Scheduler.
func NewScheduler(ctx context.Context, sc *scanner.Scanner, tn *notifier.Telegram) *Scheduler {
	return &Scheduler{
		Cron:     cron.New(cron.WithSeconds()),
		Scanner:  sc,
		Notifier: tn,
		Ctx:      ctx,
	}
}

// Register adds the periodic scan task.
func (s *Scheduler) Register(scanCron string) error {
	if _, err := s.Cron.AddFunc(scanCron, s.scanTask); err != nil {
		return fmt.Errorf("register scan task: %w", err)
	}
	return nil
}

// Start begins the cron loop.
func (s *Scheduler) Start() { s.Cron.Start() }

// Stop halts the cron loop.
func (s *Scheduler) Stop() { s.Cron.Stop() }

// RunScanNow triggers a scan outside the schedule.
func (s *Scheduler) RunScanNow() { s.scanTask() }

// scanTask runs one scan pass and pushes the report to Telegram. Overlapping
// runs are skipped: one scheduled scan may still be in flight when the next
// fires on a slow provider day.
func (s *Scheduler) scanTask() {
	s.mu.Lock()
	if s.scanning {
		s.mu.Unlock()
		log.Println("[WARN] scan already in progress, skipping trigger")
		return
	}
	s.scanning = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.scanning = false
		s.mu.Unlock()
	}()

	rep, err := s.Scanner.Scan(s.Ctx)
	if err != nil {
		log.Printf("[ERROR] scan failed: %v", err)
		if s.Notifier != nil {
			_ = s.Notifier.SendWithRetry(s.Ctx, fmt.Sprintf("⚠️ scan failed: %v", err))
		}
		return
	}

	s.mu.Lock()
	s.lastReport = rep
	s.mu.Unlock()

	if s.Notifier != nil {
		if err := s.Notifier.SendWithRetry(s.Ctx, report.FormatTelegram(rep)); err != nil {
			log.Printf("[ERROR] deliver scan report: %v", err)
		}
	}
}

// HandleCommand answers Telegram commands. Returning "" suppresses the reply.
func (s *Scheduler) HandleCommand(command string) string {
	switch command {
	case "/scan":
		go s.scanTask()
		return "🔍 Scan started, report follows."
	case "/status":
		s.mu.Lock()
		rep := s.lastReport
		scanning := s.scanning
		s.mu.Unlock()
		if scanning {
			return "⏳ A scan is in progress."
		}
		if rep == nil {
			return "No scan has run yet. Use /scan to start one."
		}
		return report.FormatTelegram(rep)
	case "/help", "/start":
		return "Commands:\n/scan — run a scan now\n/status — last scan report\n/help — this message"
	default:
		return ""
	}
}
