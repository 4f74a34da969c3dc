// Package redis provides a Redis-backed fixed-window limiter shared across
// service instances.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/rueidis"

	"github.com/kailas-cloud/scout/internal/ratelimit"
)

// Compile-time check: Limiter implements ratelimit.Limiter.
var _ ratelimit.Limiter = (*Limiter)(nil)

// Config holds connection and window parameters.
type Config struct {
	Addrs       []string
	Username    string
	Password    string
	KeyPrefix   string
	MaxRequests int
	Window      time.Duration
}

// Limiter counts requests per key in Redis. INCR starts or bumps the window
// counter; EXPIRE NX pins the window to the first request. Counter keys
// expire with the window, so there is no stale-entry growth.
type Limiter struct {
	client rueidis.Client
	cfg    Config
}

// New creates a Redis fixed-window limiter.
func New(cfg Config) (*Limiter, error) {
	if len(cfg.Addrs) == 0 {
		return nil, fmt.Errorf("addrs is required")
	}
	if cfg.KeyPrefix == "" {
		cfg.KeyPrefix = "scout:ratelimit:"
	}

	client, err := rueidis.NewClient(rueidis.ClientOption{
		InitAddress:  cfg.Addrs,
		Username:     cfg.Username,
		Password:     cfg.Password,
		DisableCache: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return &Limiter{client: client, cfg: cfg}, nil
}

// Admit implements ratelimit.Limiter.
func (l *Limiter) Admit(ctx context.Context, key string) (bool, error) {
	k := l.cfg.KeyPrefix + key

	count, err := l.client.Do(ctx, l.client.B().Incr().Key(k).Build()).AsInt64()
	if err != nil {
		return false, fmt.Errorf("incr %s: %w", k, err)
	}

	expire := l.client.B().Expire().Key(k).
		Seconds(int64(l.cfg.Window.Seconds())).Nx().Build()
	if err := l.client.Do(ctx, expire).Error(); err != nil {
		return false, fmt.Errorf("expire %s: %w", k, err)
	}

	return count <= int64(l.cfg.MaxRequests), nil
}

// Ping checks connectivity.
func (l *Limiter) Ping(ctx context.Context) error {
	if err := l.client.Do(ctx, l.client.B().Ping().Build()).Error(); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Close shuts down the client.
func (l *Limiter) Close() {
	l.client.Close()
}
