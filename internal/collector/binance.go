package collector

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"net/http"
	"sort"
	"strconv"
	"time"

	"CryptoAnalyst/internal/model"

	"github.com/adshao/go-binance/v2"
	"github.com/adshao/go-binance/v2/common"
	"golang.org/x/time/rate"
)

const binanceMaxLimit = 1000

// BinanceFetcher implements Fetcher using Binance spot klines.
type BinanceFetcher struct {
	client      *binance.Client
	rateLimiter *rate.Limiter
	maxRetries  int
	backoff     time.Duration
}

// NewBinanceFetcher creates a fetcher. Public market data needs no API key.
// baseURL overrides the API endpoint when non-empty.
func NewBinanceFetcher(apiKey, secretKey, baseURL string) *BinanceFetcher {
	client := binance.NewClient(apiKey, secretKey)
	client.HTTPClient = &http.Client{
		Timeout: 10 * time.Second,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 100,
			IdleConnTimeout:     90 * time.Second,
		},
	}
	if baseURL != "" {
		client.BaseURL = baseURL
	}

	return &BinanceFetcher{
		client:      client,
		rateLimiter: rate.NewLimiter(rate.Limit(10), 20),
		maxRetries:  3,
		backoff:     100 * time.Millisecond,
	}
}

func (f *BinanceFetcher) Name() string { return "binance" }

func (f *BinanceFetcher) FetchDailyBars(ctx context.Context, symbol string, days int) ([]model.OHLCV, error) {
	pair := BinancePair(symbol)
	if days > binanceMaxLimit {
		days = binanceMaxLimit
	}

	klines, err := f.getKlines(ctx, pair, "1d", days)
	if err != nil {
		return nil, fmt.Errorf("binance klines %s: %w", pair, err)
	}
	if len(klines) == 0 {
		return nil, fmt.Errorf("binance %s: %w", pair, ErrNoData)
	}

	bars := make([]model.OHLCV, 0, len(klines))
	for _, k := range klines {
		bar, err := klineToBar(k)
		if err != nil {
			log.Printf("[WARN] skip malformed kline for %s: %v", pair, err)
			continue
		}
		bars = append(bars, bar)
	}
	if len(bars) == 0 {
		return nil, fmt.Errorf("binance %s: %w", pair, ErrNoData)
	}
	sort.Slice(bars, func(i, j int) bool { return bars[i].Time.Before(bars[j].Time) })
	return bars, nil
}

func (f *BinanceFetcher) getKlines(ctx context.Context, pair, interval string, limit int) ([]*binance.Kline, error) {
	var lastErr error
	for attempt := 0; attempt <= f.maxRetries; attempt++ {
		if err := f.rateLimiter.Wait(ctx); err != nil {
			return nil, err
		}

		klines, err := f.client.NewKlinesService().
			Symbol(pair).
			Interval(interval).
			Limit(limit).
			Do(ctx)
		if err == nil {
			return klines, nil
		}
		lastErr = err
		if !retryable(err) {
			return nil, err
		}
		if attempt == f.maxRetries {
			break
		}

		waitTime := time.Duration(math.Pow(2, float64(attempt))) * f.backoff
		log.Printf("[WARN] binance klines %s failed (attempt %d/%d): %v, retrying in %v",
			pair, attempt+1, f.maxRetries+1, err, waitTime)
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(waitTime):
		}
	}
	return nil, lastErr
}

// retryable reports whether a klines call may succeed when repeated.
// Binance codes -1000..-1099 are server or network faults; lower codes
// reject the request itself, e.g. -1121 for an unknown symbol.
func retryable(err error) bool {
	var apiErr *common.APIError
	if errors.As(err, &apiErr) && apiErr.IsValid() {
		return apiErr.Code > -1100
	}
	return true
}

func klineToBar(k *binance.Kline) (model.OHLCV, error) {
	fields := []string{k.Open, k.High, k.Low, k.Close, k.Volume}
	vals := make([]float64, len(fields))
	for i, s := range fields {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return model.OHLCV{}, fmt.Errorf("parse %q: %w", s, err)
		}
		vals[i] = v
	}
	return model.OHLCV{
		Time:   time.UnixMilli(k.OpenTime).UTC(),
		Open:   vals[0],
		High:   vals[1],
		Low:    vals[2],
		Close:  vals[3],
		Volume: vals[4],
	}, nil
}
