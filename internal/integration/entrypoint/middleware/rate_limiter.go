package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lifescope/backend/internal/integration/entrypoint/dto"
)

// RateCounter counts hits on key inside a fixed window that starts with the
// first hit. It returns the count including this hit and the time left in
// the window.
type RateCounter interface {
	Hit(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error)
}

// KeyFunc picks the identity a request is counted against. An empty key
// skips limiting.
type KeyFunc func(c *gin.Context) string

// ByClientIP counts anonymous requests per address.
func ByClientIP(c *gin.Context) string {
	return c.ClientIP()
}

// ByUser counts authenticated requests per account.
func ByUser(c *gin.Context) string {
	id, ok := UserID(c)
	if !ok {
		return ""
	}
	return id.String()
}

// RateLimiter rejects clients that exceed limit requests per window.
type RateLimiter struct {
	scope   string
	code    string
	limit   int64
	window  time.Duration
	counter RateCounter
	keyOf   KeyFunc
}

// NewRateLimiter creates a limiter for one route family. scope namespaces the
// counters and code is reported to rejected clients.
func NewRateLimiter(scope, code string, limit int, window time.Duration, counter RateCounter, keyOf KeyFunc) *RateLimiter {
	return &RateLimiter{
		scope:   scope,
		code:    code,
		limit:   int64(limit),
		window:  window,
		counter: counter,
		keyOf:   keyOf,
	}
}

// Middleware returns a Gin handler enforcing the limit. Counter failures let
// the request through.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := rl.keyOf(c)
		if key == "" || rl.limit <= 0 {
			c.Next()
			return
		}

		count, remaining, err := rl.counter.Hit(c.Request.Context(), rl.scope+":"+key, rl.window)
		if err != nil {
			slog.Warn("rate limit counter unavailable", "scope", rl.scope, "error", err)
			c.Next()
			return
		}
		if count > rl.limit {
			retryAfter := int(remaining.Round(time.Second) / time.Second)
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("Retry-After", strconv.Itoa(retryAfter))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.ErrorResponse{
				Error:   "Too many requests. Please try again later.",
				Code:    rl.code,
				Details: map[string]any{"retry_after_seconds": retryAfter},
			})
			return
		}

		c.Next()
	}
}

type memoryWindow struct {
	count   int64
	resetAt time.Time
}

// MemoryCounter is a process-local RateCounter used when Redis is not
// configured.
type MemoryCounter struct {
	mu      sync.Mutex
	now     func() time.Time
	windows map[string]*memoryWindow
}

// NewMemoryCounter creates an in-process counter reading time from now.
func NewMemoryCounter(now func() time.Time) *MemoryCounter {
	return &MemoryCounter{
		now:     now,
		windows: make(map[string]*memoryWindow),
	}
}

// Hit implements RateCounter.
func (m *MemoryCounter) Hit(_ context.Context, key string, window time.Duration) (int64, time.Duration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	w, ok := m.windows[key]
	if !ok || !now.Before(w.resetAt) {
		w = &memoryWindow{resetAt: now.Add(window)}
		m.windows[key] = w
	}
	w.count++
	return w.count, w.resetAt.Sub(now), nil
}

// Sweep drops windows that have closed.
func (m *MemoryCounter) Sweep() {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	for key, w := range m.windows {
		if !now.Before(w.resetAt) {
			delete(m.windows, key)
		}
	}
}
