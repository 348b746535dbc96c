package cache

import (
	"context"
	"sync"
	"time"

	"CryptoAnalyst/internal/model"
)

type entry struct {
	report    *model.Report
	expiresAt time.Time
}

// MemoryCache is an in-process TTL cache used when Redis is not configured.
type MemoryCache struct {
	ttl     time.Duration
	now     func() time.Time
	mu      sync.RWMutex
	entries map[string]entry
}

func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]entry),
	}
}

func (m *MemoryCache) Get(_ context.Context, symbol string) (*model.Report, error) {
	m.mu.RLock()
	e, ok := m.entries[key(symbol)]
	m.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	if m.now().After(e.expiresAt) {
		m.mu.Lock()
		delete(m.entries, key(symbol))
		m.mu.Unlock()
		return nil, nil
	}
	return e.report, nil
}

func (m *MemoryCache) Set(_ context.Context, symbol string, report *model.Report) error {
	if m.ttl <= 0 {
		return nil
	}
	m.mu.Lock()
	m.entries[key(symbol)] = entry{report: report, expiresAt: m.now().Add(m.ttl)}
	m.mu.Unlock()
	return nil
}

func (m *MemoryCache) Close() error { return nil }
