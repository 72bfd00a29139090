package middleware

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/paramreg/registry/internal/constants"
	"github.com/paramreg/registry/pkg/circuit"
	"github.com/paramreg/registry/pkg/logger"
)

// WindowCounter counts hits per key inside a fixed window. It returns the
// hits so far and the time left before the window resets.
type WindowCounter interface {
	Increment(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error)
}

type window struct {
	count   int64
	resetAt time.Time
}

// MemoryCounter is a process-local WindowCounter.
type MemoryCounter struct {
	windows map[string]*window
	now     func() time.Time
	mu      sync.Mutex
}

func NewMemoryCounter() *MemoryCounter {
	return &MemoryCounter{
		windows: make(map[string]*window),
		now:     time.Now,
	}
}

func (mc *MemoryCounter) cleanup(now time.Time) {
	for key, w := range mc.windows {
		if !now.Before(w.resetAt) {
			delete(mc.windows, key)
		}
	}
}

func (mc *MemoryCounter) Increment(_ context.Context, key string, d time.Duration) (int64, time.Duration, error) {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	now := mc.now()
	mc.cleanup(now)

	w, ok := mc.windows[key]
	if !ok {
		w = &window{resetAt: now.Add(d)}
		mc.windows[key] = w
	}
	w.count++

	return w.count, w.resetAt.Sub(now), nil
}

// FallbackCounter counts on primary and switches to fallback while the
// breaker guarding primary is open.
type FallbackCounter struct {
	primary  WindowCounter
	fallback WindowCounter
	breaker  *circuit.Breaker
}

func NewFallbackCounter(primary, fallback WindowCounter, breaker *circuit.Breaker) *FallbackCounter {
	return &FallbackCounter{primary: primary, fallback: fallback, breaker: breaker}
}

func (fc *FallbackCounter) Increment(ctx context.Context, key string, d time.Duration) (int64, time.Duration, error) {
	var (
		count int64
		ttl   time.Duration
	)
	err := fc.breaker.Execute(func() error {
		var err error
		count, ttl, err = fc.primary.Increment(ctx, key, d)
		return err
	})
	if err == nil {
		return count, ttl, nil
	}
	return fc.fallback.Increment(ctx, key, d)
}

// RateLimit allows maxRequest requests per client ip inside each window.
// Counter failures let the request through.
func RateLimit(counter WindowCounter, maxRequest int, d time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		ip := c.ClientIP()

		count, ttl, err := counter.Increment(ctx, constants.RedisKeyRateLimit+ip, d)
		if err != nil {
			logger.WarnWithContext(ctx, "Rate limiter unavailable").
				Path(c.Request.URL.Path).
				Err(err).
				Log()
			c.Next()
			return
		}

		remaining := max(int64(maxRequest)-count, 0)
		c.Header(constants.HeaderRateLimit, strconv.Itoa(maxRequest))
		c.Header(constants.HeaderRateLimitLeft, strconv.FormatInt(remaining, 10))

		if count > int64(maxRequest) {
			retryAfter := int(math.Ceil(ttl.Seconds()))
			logger.WarnWithContext(ctx, "Rate limit exceeded").
				Method(c.Request.Method).
				Path(c.Request.URL.Path).
				String("user_agent", c.GetHeader(constants.HeaderUserAgent)).
				Int64("current_requests", count).
				Int("max_requests", maxRequest).
				Int("retry_after", retryAfter).
				Log()

			c.Header(constants.HeaderRetryAfter, strconv.Itoa(retryAfter))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, constants.BuildErrorResponse(
				http.StatusTooManyRequests,
				constants.MsgTooManyRequests,
				nil,
				c.Request.URL.Path,
				time.Now(),
			))
			return
		}

		c.Next()
	}
}
