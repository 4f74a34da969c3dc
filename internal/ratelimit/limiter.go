// Package ratelimit provides per-caller fixed-window admission control.
package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Limiter admits or denies a request for the given caller key.
type Limiter interface {
	Admit(ctx context.Context, key string) (bool, error)
}

// Config holds fixed-window parameters.
type Config struct {
	MaxRequests int
	Window      time.Duration
}

type entry struct {
	count     int
	expiresAt time.Time
}

// FixedWindow is an in-memory fixed-window limiter. State is local to the
// process: multiple instances enforce independent limits. Stale entries are
// not swept, so memory grows with key cardinality; the Redis store is the
// answer when that matters.
type FixedWindow struct {
	cfg     Config
	now     func() time.Time
	mu      sync.Mutex
	entries map[string]*entry
}

// NewFixedWindow creates an in-memory fixed-window limiter.
func NewFixedWindow(cfg Config) *FixedWindow {
	return &FixedWindow{
		cfg:     cfg,
		now:     time.Now,
		entries: make(map[string]*entry),
	}
}

// WithClock replaces the time source. For tests.
func (l *FixedWindow) WithClock(now func() time.Time) *FixedWindow {
	l.now = now
	return l
}

// Admit implements Limiter. The check-and-increment is serialized under a
// single lock so two concurrent requests cannot both slip past the limit.
// A denied call does not mutate the window state.
func (l *FixedWindow) Admit(_ context.Context, key string) (bool, error) {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.entries[key]
	if !ok || now.After(e.expiresAt) {
		l.entries[key] = &entry{count: 1, expiresAt: now.Add(l.cfg.Window)}
		return true, nil
	}

	if e.count >= l.cfg.MaxRequests {
		return false, nil
	}

	e.count++
	return true, nil
}
