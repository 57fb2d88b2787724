package services

import (
	"log/slog"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type ipEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// IPRateLimiter hands out one token bucket per client IP. Entries idle for
// longer than maxIdle are evicted by the cleanup goroutine.
type IPRateLimiter struct {
	mu      sync.Mutex
	entries map[string]*ipEntry
	r       rate.Limit
	b       int
	maxIdle time.Duration
	logger  *slog.Logger
}

func NewIPRateLimiter(r rate.Limit, b int, logger *slog.Logger) *IPRateLimiter {
	return &IPRateLimiter{
		entries: make(map[string]*ipEntry),
		r:       r,
		b:       b,
		maxIdle: time.Hour,
		logger:  logger,
	}
}

// GetLimiter returns the bucket for the given IP, creating it on first sight.
func (l *IPRateLimiter) GetLimiter(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry, ok := l.entries[ip]
	if !ok {
		entry = &ipEntry{limiter: rate.NewLimiter(l.r, l.b)}
		l.entries[ip] = entry
	}
	entry.lastSeen = time.Now()
	return entry.limiter
}

// StartCleanup evicts idle entries on the given interval so the map does not
// grow without bound.
func (l *IPRateLimiter) StartCleanup(interval time.Duration) {
	go func() {
		for {
			time.Sleep(interval)
			l.evictIdle()
		}
	}()
}

func (l *IPRateLimiter) evictIdle() {
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := time.Now().Add(-l.maxIdle)
	evicted := 0
	for ip, entry := range l.entries {
		if entry.lastSeen.Before(cutoff) {
			delete(l.entries, ip)
			evicted++
		}
	}
	if evicted > 0 {
		l.logger.Info("Evicted idle rate limiter entries", "count", evicted, "remaining", len(l.entries))
	}
}
