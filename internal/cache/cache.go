package cache

import (
	"context"

	"CryptoAnalyst/internal/model"
)

// Cache stores recently produced reports keyed by symbol.
type Cache interface {
	// Get returns the cached report, or nil when absent or expired.
	Get(ctx context.Context, symbol string) (*model.Report, error)
	Set(ctx context.Context, symbol string, report *model.Report) error
	Close() error
}

func key(symbol string) string {
	return "analysis:" + symbol
}
