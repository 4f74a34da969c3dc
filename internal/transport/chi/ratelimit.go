package chi

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/kailas-cloud/scout/internal/metrics"
	"github.com/kailas-cloud/scout/internal/ratelimit"
)

// anonymousKey is the caller identity when no forwarding header is present.
const anonymousKey = "anonymous"

// ClientKey derives the caller identity from the first X-Forwarded-For value.
func ClientKey(r *http.Request) string {
	forwarded := r.Header.Get("X-Forwarded-For")
	if forwarded == "" {
		return anonymousKey
	}
	first, _, _ := strings.Cut(forwarded, ",")
	first = strings.TrimSpace(first)
	if first == "" {
		return anonymousKey
	}
	return first
}

// RateLimitMiddleware returns a middleware that gates requests per caller key.
// Health and metrics stay exempt. Limiter store failures admit the request:
// the limiter protects the model budget and must not take the search path
// down with it.
func RateLimitMiddleware(limiter ratelimit.Limiter, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := exemptPaths[r.URL.Path]; ok {
				next.ServeHTTP(w, r)
				return
			}

			key := ClientKey(r)
			admitted, err := limiter.Admit(r.Context(), key)
			if err != nil {
				logger.Warn("rate limit store unavailable, admitting request",
					zap.String("key", key),
					zap.Error(err),
				)
				admitted = true
			}

			if !admitted {
				metrics.RateLimitDeniedTotal.Inc()
				writeError(w, http.StatusTooManyRequests, codeRateLimited,
					"Too many requests. Please wait a moment before trying again.")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
