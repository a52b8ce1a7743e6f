package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"mock-interview-backend/internal/delivery/http/response"
	"mock-interview-backend/pkg/logger"
	"mock-interview-backend/pkg/redis"
	"mock-interview-backend/pkg/security"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
)

// RateLimitConfig describes a fixed-window limit per client key.
type RateLimitConfig struct {
	Limit  int
	Window time.Duration
	// KeyFunc identifies the client, by IP when nil
	KeyFunc   func(*gin.Context) string
	KeyPrefix string
	// FailClosed answers 503 instead of counting locally when Redis errors
	FailClosed bool
}

// UploadRateLimitConfig limits CV uploads per client IP
func UploadRateLimitConfig(perMinute int) RateLimitConfig {
	if perMinute <= 0 {
		perMinute = 10
	}
	return RateLimitConfig{
		Limit:     perMinute,
		Window:    time.Minute,
		KeyPrefix: "rl:upload:",
	}
}

// SignupRateLimitConfig is strict and fails closed.
func SignupRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		Limit:      10,
		Window:     time.Minute,
		KeyPrefix:  "rl:signup:",
		FailClosed: true,
	}
}

// counterStore counts hits for a key inside a fixed window.
type counterStore interface {
	hit(ctx context.Context, key string, window time.Duration) (int, time.Time, error)
}

// sharedCounter returns the cross-instance store, nil when Redis is not connected.
var sharedCounter = func() counterStore {
	if c := redis.Client(); c != nil {
		return redisCounter{client: c}
	}
	return nil
}

// RateLimitMiddleware counts in Redis when connected and in process memory otherwise.
func RateLimitMiddleware(config RateLimitConfig) gin.HandlerFunc {
	if config.KeyFunc == nil {
		config.KeyFunc = func(c *gin.Context) string { return c.ClientIP() }
	}
	local := newMemoryCounter()

	return func(c *gin.Context) {
		key := config.KeyPrefix + config.KeyFunc(c)

		count, resetAt, err := countHit(c.Request.Context(), local, key, config)
		if err != nil {
			msg := "Service temporarily unavailable. Please try again."
			response.Error(c, http.StatusServiceUnavailable, msg, msg)
			c.Abort()
			return
		}

		remaining := max(config.Limit-count, 0)
		c.Header("X-RateLimit-Limit", strconv.Itoa(config.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", resetAt.Format(time.RFC3339))

		if count > config.Limit {
			c.Header("Retry-After", strconv.Itoa(max(int(time.Until(resetAt).Seconds()), 1)))
			security.DefaultLogger().LogRateLimitTriggered(
				c.ClientIP(), c.Request.UserAgent(), c.GetString("RequestID"), c.FullPath())

			msg := "Rate limit exceeded. Please try again later."
			response.Error(c, http.StatusTooManyRequests, msg, msg)
			c.Abort()
			return
		}
		c.Next()
	}
}

func countHit(ctx context.Context, local *memoryCounter, key string, config RateLimitConfig) (int, time.Time, error) {
	if shared := sharedCounter(); shared != nil {
		count, resetAt, err := shared.hit(ctx, key, config.Window)
		if err == nil {
			return count, resetAt, nil
		}
		logger.Log.Warn("Rate limit store unavailable", "key_prefix", config.KeyPrefix, "error", err)
		if config.FailClosed {
			return 0, time.Time{}, err
		}
	}
	return local.hit(ctx, key, config.Window)
}

// redisCounter seeds the key with its TTL, then increments it, in one transaction.
type redisCounter struct {
	client *goredis.Client
}

func (r redisCounter) hit(ctx context.Context, key string, window time.Duration) (int, time.Time, error) {
	var incr *goredis.IntCmd
	var ttl *goredis.DurationCmd
	_, err := r.client.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		pipe.SetNX(ctx, key, 0, window)
		incr = pipe.Incr(ctx, key)
		ttl = pipe.TTL(ctx, key)
		return nil
	})
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("rate limit counter %s: %w", key, err)
	}

	left := ttl.Val()
	if left <= 0 {
		left = window
	}
	return int(incr.Val()), time.Now().Add(left), nil
}

const sweepInterval = 5 * time.Minute

type fixedWindow struct {
	count   int
	resetAt time.Time
}

// memoryCounter is the single-process fallback. Expired windows are swept
// lazily on hits.
type memoryCounter struct {
	mu        sync.Mutex
	windows   map[string]*fixedWindow
	lastSweep time.Time
	now       func() time.Time
}

func newMemoryCounter() *memoryCounter {
	return &memoryCounter{
		windows: make(map[string]*fixedWindow),
		now:     time.Now,
	}
}

func (m *memoryCounter) hit(_ context.Context, key string, window time.Duration) (int, time.Time, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	if now.Sub(m.lastSweep) > sweepInterval {
		for k, w := range m.windows {
			if now.After(w.resetAt) {
				delete(m.windows, k)
			}
		}
		m.lastSweep = now
	}

	w, ok := m.windows[key]
	if !ok || now.After(w.resetAt) {
		w = &fixedWindow{resetAt: now.Add(window)}
		m.windows[key] = w
	}
	w.count++
	return w.count, w.resetAt, nil
}
