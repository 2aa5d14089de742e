package middleware

import (
	"math"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vralchenko/ai-jurist/internal/shared/metrics"
)

// FixedWindowLimiter admits up to Limit requests per key within a fixed window.
// The zero value is not usable; construct with NewFixedWindowLimiter so the
// entry map and clock are owned explicitly rather than living in package state.
type FixedWindowLimiter struct {
	mu      sync.Mutex
	entries map[string]*windowEntry
	limit   int
	window  time.Duration
	now     func() time.Time
}

type windowEntry struct {
	count       int
	windowStart time.Time
}

// NewFixedWindowLimiter constructs a limiter. A nil now func defaults to time.Now.
func NewFixedWindowLimiter(limit int, window time.Duration, now func() time.Time) *FixedWindowLimiter {
	if now == nil {
		now = time.Now
	}
	return &FixedWindowLimiter{
		entries: make(map[string]*windowEntry),
		limit:   limit,
		window:  window,
		now:     now,
	}
}

// Admit reports whether a request for key is allowed. The check-then-increment
// is atomic per key: a denied request does not consume from the window. The
// second return value is how long the caller should wait before retrying.
func (l *FixedWindowLimiter) Admit(key string) (bool, time.Duration) {
	if l == nil || l.limit <= 0 || l.window <= 0 {
		return true, 0
	}
	now := l.now()
	l.mu.Lock()
	defer l.mu.Unlock()

	entry, ok := l.entries[key]
	if !ok || now.Sub(entry.windowStart) > l.window {
		l.entries[key] = &windowEntry{count: 1, windowStart: now}
		return true, 0
	}
	if entry.count < l.limit {
		entry.count++
		return true, 0
	}
	retryAfter := entry.windowStart.Add(l.window).Sub(now)
	if retryAfter < 0 {
		retryAfter = 0
	}
	return false, retryAfter
}

// RateLimitConfig wires a limiter into the middleware chain.
type RateLimitConfig struct {
	Limiter *FixedWindowLimiter
	// KeyFor derives the client identity for a request. Empty results fall
	// back to gin's ClientIP.
	KeyFor func(*gin.Context) string
}

// RateLimit rejects requests over the per-key budget with a 429 JSON body.
func RateLimit(cfg RateLimitConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := ""
		if cfg.KeyFor != nil {
			key = strings.TrimSpace(cfg.KeyFor(c))
		}
		if key == "" {
			key = strings.TrimSpace(c.ClientIP())
		}
		allowed, retryAfter := cfg.Limiter.Admit(key)
		if allowed {
			c.Next()
			return
		}
		metrics.IncRateLimited()
		retryAfterMs := int(retryAfter / time.Millisecond)
		if retryAfterMs <= 0 {
			retryAfterMs = 1000
		}
		retryAfterSeconds := int(math.Ceil(float64(retryAfterMs) / 1000.0))
		c.Header("Retry-After", strconv.Itoa(retryAfterSeconds))
		c.JSON(http.StatusTooManyRequests, gin.H{
			"error":        "rate_limited",
			"retryAfterMs": retryAfterMs,
		})
		c.Abort()
	}
}
