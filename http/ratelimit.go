package http

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	// LimiterCleanupInterval is how often idle clients are pruned.
	LimiterCleanupInterval = 3 * time.Minute

	// LimiterIdleTimeout is how long a client may stay quiet before its
	// bucket is dropped.
	LimiterIdleTimeout = 5 * time.Minute
)

type clientBucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// ClientLimiter rate limits each client independently using token buckets.
// Buckets of clients idle for longer than LimiterIdleTimeout are dropped by
// Run.
type ClientLimiter struct {
	mu      sync.Mutex
	buckets map[string]*clientBucket
	rps     float64
	burst   int
}

// NewClientLimiter creates a ClientLimiter allowing rps requests per second
// per client with the given burst.
func NewClientLimiter(rps float64, burst int) *ClientLimiter {
	if burst < 1 {
		burst = 1
	}
	return &ClientLimiter{
		buckets: make(map[string]*clientBucket),
		rps:     rps,
		burst:   burst,
	}
}

// Allow reports whether the client may make a request now.
func (l *ClientLimiter) Allow(client string) bool {
	now := time.Now()

	l.mu.Lock()
	b, ok := l.buckets[client]
	if !ok {
		b = &clientBucket{limiter: rate.NewLimiter(rate.Limit(l.rps), l.burst)}
		l.buckets[client] = b
	}
	b.lastSeen = now
	l.mu.Unlock()

	return b.limiter.AllowN(now, 1)
}

// Prune drops every client last seen before cutoff and returns how many
// were dropped.
func (l *ClientLimiter) Prune(cutoff time.Time) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	var n int
	for client, b := range l.buckets {
		if b.lastSeen.Before(cutoff) {
			delete(l.buckets, client)
			n++
		}
	}
	return n
}

// Run prunes clients idle for longer than idle every interval until ctx is
// canceled.
func (l *ClientLimiter) Run(ctx context.Context, interval, idle time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			l.Prune(now.Add(-idle))
		}
	}
}

// Len returns the number of clients currently tracked.
func (l *ClientLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}
