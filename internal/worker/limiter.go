package worker

import (
	"context"
	"net"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/ppiankov/gapdash/internal/cache"
)

// Limiter implements per-client rate limiting.
// Idle clients are forgotten after the store's TTL.
type Limiter struct {
	limiters     *cache.Store[*rate.Limiter]
	defaultRate  rate.Limit
	defaultBurst int
}

// NewLimiter creates a new rate limiter
func NewLimiter(requestsPerSecond float64, burst int, idleTTL time.Duration) *Limiter {
	if burst <= 0 {
		burst = 5
	}

	return &Limiter{
		limiters:     cache.NewStore[*rate.Limiter](idleTTL),
		defaultRate:  rate.Limit(requestsPerSecond),
		defaultBurst: burst,
	}
}

// Wait waits for rate limit clearance for the given client
func (l *Limiter) Wait(ctx context.Context, client string) error {
	return l.getLimiter(client).Wait(ctx)
}

// Allow checks if a request is allowed without waiting
func (l *Limiter) Allow(client string) bool {
	return l.getLimiter(client).Allow()
}

// getLimiter returns the rate limiter for a client
func (l *Limiter) getLimiter(client string) *rate.Limiter {
	return l.limiters.GetOrCreate(client, func() *rate.Limiter {
		return rate.NewLimiter(l.defaultRate, l.defaultBurst)
	})
}

// Clients returns the number of tracked clients
func (l *Limiter) Clients() int {
	return l.limiters.Len()
}

// ClientKey derives a limiter key from a request's remote address,
// preferring the first X-Forwarded-For hop when present
func ClientKey(remoteAddr, forwardedFor string) string {
	if forwardedFor != "" {
		first, _, _ := strings.Cut(forwardedFor, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		return remoteAddr
	}
	return host
}
