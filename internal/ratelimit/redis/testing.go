package redis

import "github.com/redis/rueidis"

// NewLimiterForTest creates a Limiter with the provided rueidis client (test-only).
func NewLimiterForTest(c rueidis.Client, cfg Config) *Limiter {
	if cfg.KeyPrefix == "" {
		cfg.KeyPrefix = "scout:ratelimit:"
	}
	return &Limiter{client: c, cfg: cfg}
}
