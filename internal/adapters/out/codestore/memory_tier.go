package codestore

import (
	"context"
	"sync"
	"time"
)

// DefaultSweepInterval is the minimum gap between two full scans of the
// memory tier.
const DefaultSweepInterval = 5 * time.Minute

type memoryEntry struct {
	code      string
	expiresAt time.Time
}

// MemoryTier keeps codes in process memory. Expired entries are dropped
// lazily on read and by an occasional sweep piggybacked on writes.
type MemoryTier struct {
	mu            sync.Mutex
	entries       map[string]memoryEntry
	now           func() time.Time
	sweepInterval time.Duration
	lastSweep     time.Time
}

type MemoryOption func(*MemoryTier)

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) MemoryOption {
	return func(m *MemoryTier) { m.now = now }
}

func WithSweepInterval(d time.Duration) MemoryOption {
	return func(m *MemoryTier) {
		if d > 0 {
			m.sweepInterval = d
		}
	}
}

func NewMemoryTier(opts ...MemoryOption) *MemoryTier {
	m := &MemoryTier{
		entries:       make(map[string]memoryEntry),
		now:           time.Now,
		sweepInterval: DefaultSweepInterval,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.lastSweep = m.now()
	return m
}

func (m *MemoryTier) Set(_ context.Context, key, code string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	m.sweepLocked(now)
	m.entries[key] = memoryEntry{code: code, expiresAt: now.Add(ttl)}
	return nil
}

func (m *MemoryTier) Take(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[key]
	if !ok {
		return "", false, nil
	}
	delete(m.entries, key)
	if !m.now().Before(e.expiresAt) {
		return "", false, nil
	}
	return e.code, true, nil
}

func (m *MemoryTier) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
	return nil
}

// Len reports the number of stored entries, expired ones included.
func (m *MemoryTier) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

func (m *MemoryTier) sweepLocked(now time.Time) {
	if now.Sub(m.lastSweep) < m.sweepInterval {
		return
	}
	for k, e := range m.entries {
		if !now.Before(e.expiresAt) {
			delete(m.entries, k)
		}
	}
	m.lastSweep = now
}
