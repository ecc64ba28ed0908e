// Package codestore implements ports.CodeStore on two tiers: Redis while it
// answers, process memory when it does not.
package codestore

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"repair/internal/core/ports"

	"github.com/prometheus/client_golang/prometheus"
)

// Primary is the shared tier. RedisTier is the production one.
type Primary interface {
	ports.CodeStore
	Ping(ctx context.Context) error
	Close() error
}

// Store routes calls to the primary tier until it fails once, then to the
// memory tier until Probe sees the primary answer again.
type Store struct {
	primary     Primary
	memory      *MemoryTier
	primaryDown atomic.Bool
	log         *slog.Logger

	fallbacks prometheus.Counter
	up        prometheus.Gauge
}

var _ ports.CodeStore = (*Store)(nil)

type Option func(*Store)

// WithMetrics reports fallbacks and primary availability.
func WithMetrics(fallbacks prometheus.Counter, up prometheus.Gauge) Option {
	return func(s *Store) {
		s.fallbacks = fallbacks
		s.up = up
	}
}

// NewStore accepts a nil primary; the store then runs on memory alone.
func NewStore(primary Primary, memory *MemoryTier, log *slog.Logger, opts ...Option) *Store {
	if memory == nil {
		memory = NewMemoryTier()
	}
	s := &Store{
		primary: primary,
		memory:  memory,
		log:     log.With("component", "code_store"),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.primaryDown.Store(primary == nil)
	s.reportUp()
	return s
}

func (s *Store) Set(ctx context.Context, key, code string, ttl time.Duration) error {
	if s.usePrimary() {
		err := s.primary.Set(ctx, key, code, ttl)
		if err == nil {
			// an outage-era code must not outlive its replacement
			return s.memory.Delete(ctx, key)
		}
		s.markDown(ctx, "set", err)
	}
	return s.memory.Set(ctx, key, code, ttl)
}

func (s *Store) Take(ctx context.Context, key string) (string, bool, error) {
	if s.usePrimary() {
		code, ok, err := s.primary.Take(ctx, key)
		if err == nil && ok {
			return code, true, nil
		}
		if err != nil {
			s.markDown(ctx, "take", err)
		}
	}
	return s.memory.Take(ctx, key)
}

func (s *Store) Delete(ctx context.Context, key string) error {
	if s.usePrimary() {
		if err := s.primary.Delete(ctx, key); err != nil {
			s.markDown(ctx, "delete", err)
		}
	}
	return s.memory.Delete(ctx, key)
}

// Probe pings the primary and brings it back into rotation on success.
func (s *Store) Probe(ctx context.Context) error {
	if s.primary == nil {
		return nil
	}
	if err := s.primary.Ping(ctx); err != nil {
		s.markDown(ctx, "ping", err)
		return err
	}
	if s.primaryDown.CompareAndSwap(true, false) {
		s.log.InfoContext(ctx, "primary code store recovered")
		s.reportUp()
	}
	return nil
}

// PrimaryDown reports whether calls currently bypass the primary.
func (s *Store) PrimaryDown() bool {
	return s.primaryDown.Load()
}

func (s *Store) Close() error {
	if s.primary == nil {
		return nil
	}
	return s.primary.Close()
}

func (s *Store) usePrimary() bool {
	return s.primary != nil && !s.primaryDown.Load()
}

func (s *Store) markDown(ctx context.Context, op string, err error) {
	if s.primaryDown.CompareAndSwap(false, true) {
		s.log.WarnContext(ctx, "primary code store unavailable, using memory",
			slog.String("op", op), slog.Any("error", err))
		if s.fallbacks != nil {
			s.fallbacks.Inc()
		}
		s.reportUp()
	}
}

func (s *Store) reportUp() {
	if s.up == nil {
		return
	}
	if s.primaryDown.Load() {
		s.up.Set(0)
	} else {
		s.up.Set(1)
	}
}
