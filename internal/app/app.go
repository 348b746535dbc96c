package app

import (
	"log"

	"CryptoAnalyst/internal/analyst"
	"CryptoAnalyst/internal/cache"
	"CryptoAnalyst/internal/collector"
	"CryptoAnalyst/internal/config"
	"CryptoAnalyst/internal/news"
	"CryptoAnalyst/internal/recorder"
)

// mockBasePrice seeds the synthetic series of the mock provider.
const mockBasePrice = 100

// Options tunes which optional components are built.
type Options struct {
	// NoNews skips headline fetching.
	NoNews bool
	// Persist enables the report cache and the SQLite history.
	Persist bool
}

// App holds the wired analysis pipeline and what must be closed with it.
type App struct {
	Service  *analyst.Service
	Recorder recorder.Recorder
	Cache    cache.Cache
	Fetcher  collector.Fetcher
}

// New wires the pipeline from configuration. Failing optional backends
// (Redis, SQLite) degrade to in-memory or no-op implementations.
func New(cfg *config.Config, opts Options) *App {
	a := &App{
		Fetcher:  NewFetcher(cfg),
		Recorder: recorder.NewNoopRecorder(),
	}
	log.Printf("[INFO] data source: %s", a.Fetcher.Name())

	if opts.Persist {
		a.Cache = newCache(cfg)
		a.Recorder = newRecorder(cfg)
	}

	var ns analyst.NewsSource
	if !opts.NoNews && !cfg.News.Disabled {
		ns = news.NewClient(cfg.News.BaseURL, cfg.Proxy, cfg.News.Limit)
	}

	col := collector.NewCollector(a.Fetcher, cfg.DataSource.LookbackDays)
	a.Service = analyst.NewService(col, ns, a.Cache, a.Recorder)
	return a
}

// NewFetcher selects the market data provider.
func NewFetcher(cfg *config.Config) collector.Fetcher {
	ds := cfg.DataSource
	switch ds.Provider {
	case config.ProviderBinance:
		return collector.NewBinanceFetcher(ds.APIKey, ds.SecretKey, ds.BinanceBaseURL)
	case config.ProviderYahoo:
		return collector.NewYahooFetcher(ds.YahooBaseURL, cfg.Proxy)
	case config.ProviderMock:
		return &collector.MockFetcher{Price: mockBasePrice}
	default:
		return collector.NewFallbackFetcher(
			collector.NewBinanceFetcher(ds.APIKey, ds.SecretKey, ds.BinanceBaseURL),
			collector.NewYahooFetcher(ds.YahooBaseURL, cfg.Proxy),
		)
	}
}

func newCache(cfg *config.Config) cache.Cache {
	c := cfg.Cache
	if c.Disabled {
		log.Println("[INFO] report cache disabled")
		return nil
	}
	if c.RedisAddr == "" {
		log.Printf("[INFO] report cache: in-memory, ttl %v", c.TTL)
		return cache.NewMemoryCache(c.TTL)
	}
	rc, err := cache.NewRedisCache(c.RedisAddr, c.RedisPassword, c.RedisDB, c.TTL)
	if err != nil {
		log.Printf("[WARN] redis unavailable, using in-memory cache: %v", err)
		return cache.NewMemoryCache(c.TTL)
	}
	log.Printf("[INFO] report cache: redis %s, ttl %v", c.RedisAddr, c.TTL)
	return rc
}

func newRecorder(cfg *config.Config) recorder.Recorder {
	if cfg.Database.SQLitePath == "" {
		return recorder.NewNoopRecorder()
	}
	sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
	if err != nil {
		log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
		return recorder.NewNoopRecorder()
	}
	return sr
}

// Close releases the cache and recorder.
func (a *App) Close() {
	if a.Cache != nil {
		if err := a.Cache.Close(); err != nil {
			log.Printf("[WARN] close cache: %v", err)
		}
	}
	if err := a.Recorder.Close(); err != nil {
		log.Printf("[WARN] close recorder: %v", err)
	}
}
