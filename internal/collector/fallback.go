package collector

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"CryptoAnalyst/internal/model"
)

// FallbackFetcher tries each fetcher in order and returns the first success.
type FallbackFetcher struct {
	fetchers []Fetcher
}

func NewFallbackFetcher(fetchers ...Fetcher) *FallbackFetcher {
	return &FallbackFetcher{fetchers: fetchers}
}

func (f *FallbackFetcher) Name() string {
	names := make([]string, len(f.fetchers))
	for i, ft := range f.fetchers {
		names[i] = ft.Name()
	}
	return strings.Join(names, ",")
}

func (f *FallbackFetcher) FetchDailyBars(ctx context.Context, symbol string, days int) ([]model.OHLCV, error) {
	var errs []error
	for _, ft := range f.fetchers {
		bars, err := ft.FetchDailyBars(ctx, symbol, days)
		if err == nil {
			return bars, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		log.Printf("[WARN] %s fetch for %s failed: %v", ft.Name(), symbol, err)
		errs = append(errs, fmt.Errorf("%s: %w", ft.Name(), err))
	}
	if len(errs) == 0 {
		return nil, ErrNoData
	}
	return nil, errors.Join(errs...)
}
