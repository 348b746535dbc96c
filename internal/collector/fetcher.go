package collector

import (
	"context"
	"errors"

	"CryptoAnalyst/internal/model"
)

// ErrNoData is returned when a source has no bars for the symbol.
var ErrNoData = errors.New("no market data")

// Fetcher defines the interface for fetching market data.
type Fetcher interface {
	FetchDailyBars(ctx context.Context, symbol string, days int) ([]model.OHLCV, error)
	Name() string
}
