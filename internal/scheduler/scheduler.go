package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"CryptoAnalyst/internal/analyst"
	"CryptoAnalyst/internal/collector"
	"CryptoAnalyst/internal/model"
	"CryptoAnalyst/internal/notifier"
	"CryptoAnalyst/internal/recorder"

	"github.com/robfig/cron/v3"
)

// Analyzer produces reports, either from cache or freshly built.
type Analyzer interface {
	Analyze(ctx context.Context, symbol string) (*model.Report, error)
	Refresh(ctx context.Context, symbol string) (*model.Report, error)
}

// Notifier delivers alert messages.
type Notifier interface {
	SendWithRetry(ctx context.Context, text string, maxRetries int) error
}

// Scheduler refreshes the watchlist on a cron schedule and raises RSI alerts.
type Scheduler struct {
	Cron      *cron.Cron
	Analyst   Analyzer
	Notifier  Notifier
	Recorder  recorder.Recorder
	Watchlist []string
	Ctx       context.Context

	mu         sync.Mutex
	lastSignal map[string]string
}

// NewScheduler creates a new Scheduler. tn may be nil when Telegram is disabled.
func NewScheduler(ctx context.Context, svc Analyzer, tn Notifier, rec recorder.Recorder, watchlist []string) *Scheduler {
	if rec == nil {
		rec = recorder.NewNoopRecorder()
	}
	return &Scheduler{
		Cron:       cron.New(cron.WithSeconds()),
		Analyst:    svc,
		Notifier:   tn,
		Recorder:   rec,
		Watchlist:  watchlist,
		Ctx:        ctx,
		lastSignal: make(map[string]string),
	}
}

// Register adds the watchlist refresh job.
func (s *Scheduler) Register(refreshCron string) error {
	if _, err := s.Cron.AddFunc(refreshCron, s.refreshAll); err != nil {
		return fmt.Errorf("register refresh task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Printf("[INFO] scheduler started, watchlist: %s", strings.Join(s.Watchlist, ", "))
}

// Stop stops the cron scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	log.Println("[INFO] scheduler stopped")
}

// RunRefreshNow refreshes the watchlist immediately (for RUN_ON_START).
func (s *Scheduler) RunRefreshNow() {
	s.refreshAll()
}

func (s *Scheduler) refreshAll() {
	log.Printf("[INFO] refreshing %d watchlist symbols", len(s.Watchlist))
	for _, sym := range s.Watchlist {
		if s.Ctx.Err() != nil {
			return
		}
		report, err := s.Analyst.Refresh(s.Ctx, sym)
		if err != nil {
			log.Printf("[ERROR] refresh %s: %v", sym, err)
			continue
		}
		s.checkAlert(report)
	}
}

// checkAlert notifies when a symbol enters the overbought or oversold zone.
// A symbol seen for the first time is compared against its last recorded snapshot.
func (s *Scheduler) checkAlert(r *model.Report) {
	signal := r.MarketAnalysis.Indicators.RSI.Signal

	s.mu.Lock()
	prev, seen := s.lastSignal[r.Symbol]
	s.lastSignal[r.Symbol] = signal
	s.mu.Unlock()

	if !seen {
		prev = s.recordedSignal(r.Symbol)
	}
	if signal == prev || (signal != model.RSIOverbought && signal != model.RSIOversold) {
		return
	}

	log.Printf("[INFO] %s RSI zone changed: %q -> %q", r.Symbol, prev, signal)
	evt := &recorder.AlertEvent{
		Symbol: r.Symbol,
		Signal: signal,
		RSI:    r.MarketAnalysis.Indicators.RSI.Value,
		Price:  r.MarketAnalysis.Price,
	}
	if s.Notifier != nil {
		if err := s.Notifier.SendWithRetry(s.Ctx, notifier.FormatAlert(r, prev), 3); err != nil {
			log.Printf("[ERROR] send alert: %v", err)
		} else {
			evt.Delivered = true
		}
	}
	if err := s.Recorder.RecordAlert(evt); err != nil {
		log.Printf("[ERROR] record alert: %v", err)
	}
}

// recordedSignal returns the RSI signal of the snapshot before the latest one.
// The latest is the report that was just recorded by the refresh.
func (s *Scheduler) recordedSignal(symbol string) string {
	hist, err := s.Recorder.History(symbol, 2)
	if err != nil {
		log.Printf("[WARN] load history %s: %v", symbol, err)
		return ""
	}
	if len(hist) < 2 {
		return ""
	}
	return hist[1].RSISignal
}

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(ctx context.Context, command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return notifier.FormatHelp()
	}
	// "/analyze@MyBot BTC" in group chats
	name, _, _ := strings.Cut(strings.ToLower(fields[0]), "@")

	switch name {
	case "/analyze":
		if len(fields) < 2 {
			return "Usage: /analyze &lt;SYMBOL&gt;, e.g. /analyze BTC-USD"
		}
		report, err := s.Analyst.Analyze(ctx, fields[1])
		if err != nil {
			log.Printf("[WARN] command analyze %s: %v", fields[1], err)
			return fmt.Sprintf("❌ Could not analyze %s: %s", strings.ToUpper(fields[1]), userError(err))
		}
		return notifier.FormatReport(report)
	case "/watchlist":
		return notifier.FormatWatchlist(s.Watchlist)
	default:
		return notifier.FormatHelp()
	}
}

func userError(err error) string {
	switch {
	case errors.Is(err, collector.ErrInvalidSymbol):
		return "invalid symbol"
	case errors.Is(err, analyst.ErrMarketData):
		return "market data unavailable"
	default:
		return "internal error"
	}
}
