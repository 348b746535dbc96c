package scheduler

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"CryptoAnalyst/internal/analyst"
	"CryptoAnalyst/internal/collector"
	"CryptoAnalyst/internal/model"
	"CryptoAnalyst/internal/recorder"
)

type fakeAnalyzer struct {
	mu       sync.Mutex
	rsi      map[string]float64
	err      error
	refreshs int
}

func (f *fakeAnalyzer) report(symbol string) (*model.Report, error) {
	if f.err != nil {
		return nil, f.err
	}
	sym, err := collector.NormalizeSymbol(symbol)
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	rsi := f.rsi[sym]
	f.mu.Unlock()

	signal := model.RSINeutral
	switch {
	case rsi > 70:
		signal = model.RSIOverbought
	case rsi < 30:
		signal = model.RSIOversold
	}
	return &model.Report{
		Symbol: sym,
		MarketAnalysis: &model.MarketAnalysis{
			Price: 100,
			Trend: model.Trend{Status: model.TrendNeutral + model.TrendBelowSMA50},
			Indicators: model.Indicators{
				RSI: model.RSI{Value: rsi, Signal: signal},
			},
		},
	}, nil
}

func (f *fakeAnalyzer) Analyze(_ context.Context, symbol string) (*model.Report, error) {
	return f.report(symbol)
}

func (f *fakeAnalyzer) Refresh(_ context.Context, symbol string) (*model.Report, error) {
	f.mu.Lock()
	f.refreshs++
	f.mu.Unlock()
	return f.report(symbol)
}

func (f *fakeAnalyzer) setRSI(symbol string, v float64) {
	f.mu.Lock()
	f.rsi[symbol] = v
	f.mu.Unlock()
}

type fakeNotifier struct {
	mu   sync.Mutex
	sent []string
	err  error
}

func (f *fakeNotifier) SendWithRetry(_ context.Context, text string, _ int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, text)
	return nil
}

func TestRegister(t *testing.T) {
	s := NewScheduler(context.Background(), &fakeAnalyzer{}, nil, nil, nil)
	if err := s.Register("0 */15 * * * *"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if len(s.Cron.Entries()) != 1 {
		t.Errorf("entries = %d, want 1", len(s.Cron.Entries()))
	}
	if err := s.Register("not a cron"); err == nil {
		t.Error("expected error for invalid cron expression")
	}
}

func TestRefreshAlertsOnZoneChange(t *testing.T) {
	fa := &fakeAnalyzer{rsi: map[string]float64{"BTC-USD": 50, "ETH-USD": 50}}
	fn := &fakeNotifier{}
	s := NewScheduler(context.Background(), fa, fn, nil, []string{"BTC-USD", "ETH-USD"})

	s.RunRefreshNow()
	if len(fn.sent) != 0 {
		t.Fatalf("neutral refresh sent %d alerts", len(fn.sent))
	}
	if fa.refreshs != 2 {
		t.Errorf("refreshes = %d, want 2", fa.refreshs)
	}

	fa.setRSI("BTC-USD", 75)
	s.RunRefreshNow()
	if len(fn.sent) != 1 || !strings.Contains(fn.sent[0], "BTC-USD") {
		t.Fatalf("sent = %v, want one BTC-USD alert", fn.sent)
	}

	// staying in the zone does not repeat the alert
	s.RunRefreshNow()
	if len(fn.sent) != 1 {
		t.Errorf("sent = %d after unchanged zone, want 1", len(fn.sent))
	}

	fa.setRSI("BTC-USD", 20)
	s.RunRefreshNow()
	if len(fn.sent) != 2 || !strings.Contains(fn.sent[1], model.RSIOversold) {
		t.Errorf("sent = %v, want oversold alert", fn.sent)
	}

	// leaving the zone is silent
	fa.setRSI("BTC-USD", 50)
	s.RunRefreshNow()
	if len(fn.sent) != 2 {
		t.Errorf("sent = %d after return to neutral, want 2", len(fn.sent))
	}
}

func TestAlertSeededFromRecordedHistory(t *testing.T) {
	rec, err := recorder.NewSQLiteRecorder(filepath.Join(t.TempDir(), "sched.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer rec.Close()

	// previous run already saw the overbought zone; the latest row is the current refresh
	for _, sig := range []string{model.RSIOverbought, model.RSIOverbought} {
		if err := rec.RecordSnapshot(&recorder.Snapshot{Symbol: "BTC-USD", RSISignal: sig}); err != nil {
			t.Fatal(err)
		}
	}

	fa := &fakeAnalyzer{rsi: map[string]float64{"BTC-USD": 80}}
	fn := &fakeNotifier{}
	s := NewScheduler(context.Background(), fa, fn, rec, []string{"BTC-USD"})
	s.RunRefreshNow()
	if len(fn.sent) != 0 {
		t.Errorf("sent = %d, want 0 when zone unchanged across restarts", len(fn.sent))
	}
}

func TestAlertRecordedWithoutNotifier(t *testing.T) {
	rec, err := recorder.NewSQLiteRecorder(filepath.Join(t.TempDir(), "alerts.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer rec.Close()

	fa := &fakeAnalyzer{rsi: map[string]float64{"SOL-USD": 10}}
	s := NewScheduler(context.Background(), fa, nil, rec, []string{"SOL-USD"})
	s.RunRefreshNow()

	s.mu.Lock()
	got := s.lastSignal["SOL-USD"]
	s.mu.Unlock()
	if got != model.RSIOversold {
		t.Errorf("lastSignal = %q, want oversold", got)
	}
}

func TestRefreshContinuesAfterError(t *testing.T) {
	fa := &fakeAnalyzer{rsi: map[string]float64{"BTC-USD": 75}}
	fn := &fakeNotifier{}
	s := NewScheduler(context.Background(), fa, fn, nil, []string{"BAD SYMBOL", "BTC-USD"})
	s.RunRefreshNow()
	if len(fn.sent) != 1 {
		t.Errorf("sent = %d, want 1", len(fn.sent))
	}
}

func TestHandleCommand(t *testing.T) {
	fa := &fakeAnalyzer{rsi: map[string]float64{"BTC-USD": 55}}
	s := NewScheduler(context.Background(), fa, nil, nil, []string{"BTC-USD", "ETH-USD"})
	ctx := context.Background()

	tests := []struct {
		cmd  string
		want string
	}{
		{"/analyze btc-usd", "<b>BTC-USD</b>"},
		{"/analyze@CryptoBot BTC-USD", "<b>BTC-USD</b>"},
		{"/analyze", "Usage: /analyze"},
		{"/analyze ???", "invalid symbol"},
		{"/watchlist", "• ETH-USD"},
		{"/start", "Available commands"},
		{"hello", "Available commands"},
		{"", "Available commands"},
	}
	for _, tt := range tests {
		if got := s.HandleCommand(ctx, tt.cmd); !strings.Contains(got, tt.want) {
			t.Errorf("HandleCommand(%q) = %q, want substring %q", tt.cmd, got, tt.want)
		}
	}
}

func TestHandleCommand_MarketError(t *testing.T) {
	fa := &fakeAnalyzer{err: &analyst.MarketDataError{Symbol: "XYZ-USD", Err: errors.New("down")}}
	s := NewScheduler(context.Background(), fa, nil, nil, nil)
	got := s.HandleCommand(context.Background(), "/analyze xyz-usd")
	if !strings.Contains(got, "market data unavailable") || !strings.Contains(got, "XYZ-USD") {
		t.Errorf("reply = %q", got)
	}
}

func TestUserError(t *testing.T) {
	if got := userError(fmt.Errorf("x: %w", collector.ErrInvalidSymbol)); got != "invalid symbol" {
		t.Errorf("got %q", got)
	}
	if got := userError(errors.New("boom")); got != "internal error" {
		t.Errorf("got %q", got)
	}
}
