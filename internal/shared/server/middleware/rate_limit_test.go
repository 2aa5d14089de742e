package middleware

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func TestFixedWindowAdmitsUpToLimit(t *testing.T) {
	now := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	limiter := NewFixedWindowLimiter(5, time.Minute, func() time.Time { return now })

	for i := 0; i < 5; i++ {
		allowed, _ := limiter.Admit("10.0.0.1")
		if !allowed {
			t.Fatalf("request %d expected admitted", i+1)
		}
	}
	allowed, retryAfter := limiter.Admit("10.0.0.1")
	if allowed {
		t.Fatalf("request 6 expected denied")
	}
	if retryAfter <= 0 || retryAfter > time.Minute {
		t.Fatalf("unexpected retryAfter %v", retryAfter)
	}
}

func TestFixedWindowDenialDoesNotConsume(t *testing.T) {
	now := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	limiter := NewFixedWindowLimiter(2, time.Minute, func() time.Time { return now })

	limiter.Admit("k")
	limiter.Admit("k")
	for i := 0; i < 10; i++ {
		if allowed, _ := limiter.Admit("k"); allowed {
			t.Fatalf("denied request %d unexpectedly admitted", i+1)
		}
	}
	entry := limiter.entries["k"]
	if entry.count != 2 {
		t.Fatalf("expected count to stay at 2, got %d", entry.count)
	}
}

func TestFixedWindowResetsAfterWindow(t *testing.T) {
	now := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	limiter := NewFixedWindowLimiter(1, time.Minute, func() time.Time { return now })

	limiter.Admit("k")
	if allowed, _ := limiter.Admit("k"); allowed {
		t.Fatalf("expected denial within window")
	}

	now = now.Add(61 * time.Second)
	if allowed, _ := limiter.Admit("k"); !allowed {
		t.Fatalf("expected admission after window elapsed")
	}
}

func TestFixedWindowKeysAreIndependent(t *testing.T) {
	now := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	limiter := NewFixedWindowLimiter(1, time.Minute, func() time.Time { return now })

	limiter.Admit("a")
	if allowed, _ := limiter.Admit("b"); !allowed {
		t.Fatalf("key b should not be affected by key a")
	}
}

func TestFixedWindowConcurrentAdmitStaysWithinLimit(t *testing.T) {
	limiter := NewFixedWindowLimiter(5, time.Minute, nil)

	var wg sync.WaitGroup
	var mu sync.Mutex
	admitted := 0
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if allowed, _ := limiter.Admit("shared"); allowed {
				mu.Lock()
				admitted++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	if admitted != 5 {
		t.Fatalf("expected exactly 5 admissions, got %d", admitted)
	}
}

func TestRateLimitMiddleware429IncludesRetryAfter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	now := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	limiter := NewFixedWindowLimiter(1, time.Minute, func() time.Time { return now })

	r := gin.New()
	r.Use(RateLimit(RateLimitConfig{
		Limiter: limiter,
		KeyFor:  func(c *gin.Context) string { return "10.0.0.1" },
	}))
	r.POST("/analyze", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	req := httptest.NewRequest(http.MethodPost, "/analyze", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("first request expected 200, got %d", resp.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/analyze", nil)
	resp = httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	if resp.Code != http.StatusTooManyRequests {
		t.Fatalf("second request expected 429, got %d", resp.Code)
	}
	if resp.Header().Get("Retry-After") == "" {
		t.Fatalf("expected Retry-After header on 429")
	}
}
