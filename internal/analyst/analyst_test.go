package analyst

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"CryptoAnalyst/internal/cache"
	"CryptoAnalyst/internal/collector"
	"CryptoAnalyst/internal/model"
	"CryptoAnalyst/internal/recorder"
)

type fakeNews struct {
	articles []model.Article
	err      error
	queries  []string
}

func (f *fakeNews) Fetch(_ context.Context, query string) ([]model.Article, error) {
	f.queries = append(f.queries, query)
	return f.articles, f.err
}

// gatedFetcher blocks every fetch until release is closed.
type gatedFetcher struct {
	started chan struct{}
	release chan struct{}
	once    sync.Once
	calls   atomic.Int32
}

func newGatedFetcher() *gatedFetcher {
	return &gatedFetcher{started: make(chan struct{}), release: make(chan struct{})}
}

func (g *gatedFetcher) Name() string { return "gated" }

func (g *gatedFetcher) FetchDailyBars(ctx context.Context, symbol string, days int) ([]model.OHLCV, error) {
	g.calls.Add(1)
	g.once.Do(func() { close(g.started) })
	select {
	case <-g.release:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	return (&collector.MockFetcher{Price: 100}).FetchDailyBars(ctx, symbol, days)
}

func waitStarted(t *testing.T, g *gatedFetcher) {
	t.Helper()
	select {
	case <-g.started:
	case <-time.After(2 * time.Second):
		t.Fatal("fetch never started")
	}
}

func newTestService(t *testing.T, fetcher collector.Fetcher, news NewsSource) (*Service, *recorder.SQLiteRecorder) {
	t.Helper()
	rec, err := recorder.NewSQLiteRecorder(filepath.Join(t.TempDir(), "analyst.db"))
	if err != nil {
		t.Fatalf("open recorder: %v", err)
	}
	t.Cleanup(func() { rec.Close() })
	svc := NewService(collector.NewCollector(fetcher, 365), news, cache.NewMemoryCache(time.Minute), rec)
	return svc, rec
}

func TestAnalyze(t *testing.T) {
	fetcher := &collector.MockFetcher{Price: 100}
	news := &fakeNews{articles: []model.Article{
		{Title: "Bitcoin rallies to record high", Link: "https://example.com/a", PubDate: "Mon, 01 Jan 2024 10:00:00 GMT"},
		{Title: "Exchange hack sparks crash fears", Link: "https://example.com/b"},
	}}
	svc, _ := newTestService(t, fetcher, news)

	report, err := svc.Analyze(context.Background(), " btc-usd ")
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if report.Symbol != "BTC-USD" {
		t.Errorf("Symbol = %q, want BTC-USD", report.Symbol)
	}
	if report.Source != "mock" {
		t.Errorf("Source = %q, want mock", report.Source)
	}
	if len(report.MarketAnalysis.History) != collector.HistoryDays {
		t.Errorf("history len = %d, want %d", len(report.MarketAnalysis.History), collector.HistoryDays)
	}
	if len(report.News) != 2 {
		t.Fatalf("news len = %d, want 2", len(report.News))
	}
	if report.News[0].Sentiment != model.SentimentPositive {
		t.Errorf("first headline sentiment = %q, want Positive", report.News[0].Sentiment)
	}
	if report.News[1].Sentiment != model.SentimentNegative {
		t.Errorf("second headline sentiment = %q, want Negative", report.News[1].Sentiment)
	}
	if len(news.queries) != 1 || news.queries[0] != "BTC" {
		t.Errorf("news queries = %v, want [BTC]", news.queries)
	}
}

func TestAnalyze_UsesCache(t *testing.T) {
	fetcher := &collector.MockFetcher{Price: 100}
	svc, _ := newTestService(t, fetcher, nil)
	ctx := context.Background()

	if _, err := svc.Analyze(ctx, "ETH-USD"); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Analyze(ctx, "eth-usd"); err != nil {
		t.Fatal(err)
	}
	if fetcher.Calls() != 1 {
		t.Errorf("fetch calls = %d, want 1 (second served from cache)", fetcher.Calls())
	}

	if _, err := svc.Refresh(ctx, "ETH-USD"); err != nil {
		t.Fatal(err)
	}
	if fetcher.Calls() != 2 {
		t.Errorf("fetch calls after refresh = %d, want 2", fetcher.Calls())
	}
}

func TestAnalyze_MarketDataError(t *testing.T) {
	cause := errors.New("exchange down")
	svc, _ := newTestService(t, &collector.MockFetcher{Err: cause}, nil)

	_, err := svc.Analyze(context.Background(), "BTC-USD")
	if !errors.Is(err, ErrMarketData) {
		t.Fatalf("expected ErrMarketData, got %v", err)
	}
	if !errors.Is(err, cause) {
		t.Errorf("expected cause to be wrapped, got %v", err)
	}
	var mde *MarketDataError
	if !errors.As(err, &mde) || mde.Symbol != "BTC-USD" {
		t.Errorf("expected MarketDataError for BTC-USD, got %v", err)
	}
}

func TestAnalyze_InvalidSymbol(t *testing.T) {
	fetcher := &collector.MockFetcher{Price: 100}
	svc, _ := newTestService(t, fetcher, nil)

	for _, sym := range []string{"", "   ", "BTC USD", "<script>"} {
		_, err := svc.Analyze(context.Background(), sym)
		if !errors.Is(err, collector.ErrInvalidSymbol) {
			t.Errorf("Analyze(%q) err = %v, want ErrInvalidSymbol", sym, err)
		}
	}
	if fetcher.Calls() != 0 {
		t.Errorf("fetcher called %d times for invalid input", fetcher.Calls())
	}
}

func TestAnalyze_NewsFailureIsGraceful(t *testing.T) {
	news := &fakeNews{err: errors.New("feed unavailable")}
	svc, _ := newTestService(t, &collector.MockFetcher{Price: 100}, news)

	report, err := svc.Analyze(context.Background(), "SOL-USD")
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if report.News == nil || len(report.News) != 0 {
		t.Errorf("News = %v, want empty slice", report.News)
	}
	if report.NewsError == "" {
		t.Error("expected NewsError to be set")
	}
}

func TestAnalyze_RecordsHistory(t *testing.T) {
	svc, _ := newTestService(t, &collector.MockFetcher{Price: 100}, nil)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if _, err := svc.Refresh(ctx, "BTC-USD"); err != nil {
			t.Fatal(err)
		}
	}
	hist, err := svc.History("btc-usd", 10)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(hist) != 2 {
		t.Errorf("history rows = %d, want 2", len(hist))
	}
}

func TestAnalyze_DeduplicatesConcurrentRequests(t *testing.T) {
	fetcher := newGatedFetcher()
	svc := NewService(collector.NewCollector(fetcher, 365), nil, nil, nil)

	const callers = 8
	var wg sync.WaitGroup
	errs := make(chan error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Analyze(context.Background(), "BTC-USD")
			errs <- err
		}()
	}

	waitStarted(t, fetcher)
	// let the remaining callers join the in-flight build
	time.Sleep(100 * time.Millisecond)
	close(fetcher.release)
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			t.Errorf("Analyze: %v", err)
		}
	}
	if got := fetcher.calls.Load(); got != 1 {
		t.Errorf("fetch calls = %d, want 1", got)
	}
}

func TestAnalyze_CancelledCallerDoesNotFailOthers(t *testing.T) {
	fetcher := newGatedFetcher()
	svc := NewService(collector.NewCollector(fetcher, 365), nil, nil, nil)

	ctx1, cancel1 := context.WithCancel(context.Background())
	defer cancel1()
	first := make(chan error, 1)
	go func() {
		_, err := svc.Analyze(ctx1, "BTC-USD")
		first <- err
	}()
	waitStarted(t, fetcher)

	type result struct {
		report *model.Report
		err    error
	}
	second := make(chan result, 1)
	go func() {
		r, err := svc.Analyze(context.Background(), "BTC-USD")
		second <- result{r, err}
	}()
	time.Sleep(100 * time.Millisecond)

	cancel1()
	select {
	case err := <-first:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("cancelled caller err = %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("cancelled caller did not return")
	}

	close(fetcher.release)
	select {
	case res := <-second:
		if res.err != nil {
			t.Fatalf("second caller err = %v, want success", res.err)
		}
		if res.report.Symbol != "BTC-USD" {
			t.Errorf("Symbol = %q, want BTC-USD", res.report.Symbol)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("second caller did not return")
	}
	if got := fetcher.calls.Load(); got != 1 {
		t.Errorf("fetch calls = %d, want 1", got)
	}
}
