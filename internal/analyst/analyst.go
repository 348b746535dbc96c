package analyst

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"CryptoAnalyst/internal/cache"
	"CryptoAnalyst/internal/collector"
	"CryptoAnalyst/internal/model"
	"CryptoAnalyst/internal/recorder"
	"CryptoAnalyst/internal/sentiment"

	"golang.org/x/sync/singleflight"
)

// buildTimeout bounds a shared build, which outlives any single caller.
const buildTimeout = 30 * time.Second

// ErrMarketData is matched by errors.Is for any failure loading price data.
var ErrMarketData = errors.New("market data error")

// MarketDataError wraps the underlying fetch failure.
type MarketDataError struct {
	Symbol string
	Err    error
}

func (e *MarketDataError) Error() string {
	return fmt.Sprintf("market data error for %s: %v", e.Symbol, e.Err)
}

func (e *MarketDataError) Unwrap() error { return e.Err }

func (e *MarketDataError) Is(target error) bool { return target == ErrMarketData }

// NewsSource returns recent headlines for an asset.
type NewsSource interface {
	Fetch(ctx context.Context, query string) ([]model.Article, error)
}

// Service produces analysis reports: market data, indicators and scored news.
type Service struct {
	collector *collector.Collector
	news      NewsSource
	cache     cache.Cache
	recorder  recorder.Recorder

	group singleflight.Group
	now   func() time.Time
}

// NewService wires the pipeline. news and c may be nil to disable headlines or caching.
func NewService(col *collector.Collector, news NewsSource, c cache.Cache, rec recorder.Recorder) *Service {
	if rec == nil {
		rec = recorder.NewNoopRecorder()
	}
	return &Service{
		collector: col,
		news:      news,
		cache:     c,
		recorder:  rec,
		now:       time.Now,
	}
}

// Analyze returns the report for a symbol, served from cache when fresh.
func (s *Service) Analyze(ctx context.Context, symbol string) (*model.Report, error) {
	sym, err := collector.NormalizeSymbol(symbol)
	if err != nil {
		return nil, fmt.Errorf("%q: %w", symbol, err)
	}

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, sym)
		if err != nil {
			log.Printf("[WARN] cache get %s: %v", sym, err)
		} else if cached != nil {
			return cached, nil
		}
	}

	return s.run(ctx, sym)
}

// Refresh rebuilds the report for a symbol, bypassing the cache.
func (s *Service) Refresh(ctx context.Context, symbol string) (*model.Report, error) {
	sym, err := collector.NormalizeSymbol(symbol)
	if err != nil {
		return nil, fmt.Errorf("%q: %w", symbol, err)
	}
	return s.run(ctx, sym)
}

// History returns recently recorded snapshots for a symbol, newest first.
func (s *Service) History(symbol string, limit int) ([]recorder.Snapshot, error) {
	sym, err := collector.NormalizeSymbol(symbol)
	if err != nil {
		return nil, fmt.Errorf("%q: %w", symbol, err)
	}
	return s.recorder.History(sym, limit)
}

// run deduplicates concurrent builds of the same symbol. The build runs
// detached from the caller so one cancelled request cannot fail the others
// waiting on it; each caller still stops waiting when its own ctx ends.
func (s *Service) run(ctx context.Context, sym string) (*model.Report, error) {
	ch := s.group.DoChan(sym, func() (interface{}, error) {
		bctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), buildTimeout)
		defer cancel()
		return s.build(bctx, sym)
	})

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("analyze %s: %w", sym, ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		if res.Shared {
			log.Printf("[INFO] %s: shared in-flight analysis", sym)
		}
		return res.Val.(*model.Report), nil
	}
}

func (s *Service) build(ctx context.Context, sym string) (*model.Report, error) {
	series, err := s.collector.FetchSeries(ctx, sym)
	if err != nil {
		return nil, &MarketDataError{Symbol: sym, Err: err}
	}

	report := &model.Report{
		Symbol:         sym,
		MarketAnalysis: collector.Analyze(series),
		News:           []model.NewsItem{},
		Source:         series.Source,
		GeneratedAt:    s.now().UTC(),
	}

	if s.news != nil {
		articles, err := s.news.Fetch(ctx, collector.BaseAsset(sym))
		if err != nil {
			log.Printf("[WARN] %s news fetch failed: %v", sym, err)
			report.NewsError = err.Error()
		} else {
			report.News = sentiment.Score(articles)
		}
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, sym, report); err != nil {
			log.Printf("[WARN] cache set %s: %v", sym, err)
		}
	}
	if err := s.recorder.RecordSnapshot(recorder.NewSnapshot(report)); err != nil {
		log.Printf("[WARN] record snapshot %s: %v", sym, err)
	}

	log.Printf("[INFO] %s analysed: price=%.2f rsi=%.1f news=%d source=%s",
		sym, report.MarketAnalysis.Price, report.MarketAnalysis.Indicators.RSI.Value, len(report.News), report.Source)
	return report, nil
}
