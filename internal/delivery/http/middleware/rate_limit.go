package middleware

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"jobkit-backend/internal/delivery/http/response"
	"jobkit-backend/internal/domain"
	"jobkit-backend/pkg/metrics"
	"jobkit-backend/pkg/security"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

// RateLimitConfig holds configuration for rate limiting
type RateLimitConfig struct {
	// Requests per window
	Limit int
	// Time window duration
	Window time.Duration
	// Custom key extractor (default: IP-based)
	KeyFunc func(*gin.Context) string
	// Key prefix for Redis, also the metric bucket label
	KeyPrefix string
	// Whether to fail closed (reject) when Redis errors
	FailClosed bool
}

// KEYS[1] = counter key, ARGV[1] = TTL in seconds.
// Returns: [current_count, ttl_remaining]
const rateLimitLuaScript = `
local count = redis.call('INCR', KEYS[1])
if count == 1 then
    redis.call('EXPIRE', KEYS[1], ARGV[1])
end
local ttl = redis.call('TTL', KEYS[1])
return {count, ttl}
`

func clientIP(c *gin.Context) string {
	return c.ClientIP()
}

// GlobalRateLimitConfig covers every route.
func GlobalRateLimitConfig(limit int, window time.Duration) RateLimitConfig {
	return RateLimitConfig{
		Limit:      limit,
		Window:     window,
		KeyPrefix:  "rl:ip:",
		FailClosed: false, // Fail open by default for availability
		KeyFunc:    clientIP,
	}
}

// AuthRateLimitConfig is the stricter budget for registration, OTP and login.
func AuthRateLimitConfig(limit int, window time.Duration) RateLimitConfig {
	return RateLimitConfig{
		Limit:      limit,
		Window:     window,
		KeyPrefix:  "rl:auth:",
		FailClosed: true,
		KeyFunc:    clientIP,
	}
}

// RateLimiter counts requests in Redis when a client is given and falls back
// to per-key token buckets in process otherwise.
type RateLimiter struct {
	client *goredis.Client
	audit  *security.SecurityLogger

	mu      sync.Mutex
	buckets map[string]*bucket
}

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func NewRateLimiter(client *goredis.Client, audit *security.SecurityLogger) *RateLimiter {
	return &RateLimiter{
		client:  client,
		audit:   audit,
		buckets: make(map[string]*bucket),
	}
}

// Middleware enforces config. Each config gets its own key space via KeyPrefix.
func (rl *RateLimiter) Middleware(config RateLimitConfig) gin.HandlerFunc {
	if config.KeyFunc == nil {
		config.KeyFunc = clientIP
	}
	if config.Limit <= 0 || config.Window <= 0 {
		return func(c *gin.Context) { c.Next() }
	}

	return func(c *gin.Context) {
		key := config.KeyPrefix + config.KeyFunc(c)

		var (
			allowed   bool
			remaining int
			resetAt   time.Time
		)
		if rl.client != nil {
			count, reset, err := checkRateLimitRedis(c.Request.Context(), rl.client, key, config)
			if err != nil {
				if config.FailClosed {
					rl.logError(c, err)
					response.Error(c, http.StatusServiceUnavailable, "Service temporarily unavailable. Please try again.", nil)
					c.Abort()
					return
				}
				allowed, remaining, resetAt = rl.allowInMemory(key, config, time.Now())
			} else {
				allowed = count <= config.Limit
				remaining = config.Limit - count
				resetAt = reset
			}
		} else {
			allowed, remaining, resetAt = rl.allowInMemory(key, config, time.Now())
		}
		if remaining < 0 {
			remaining = 0
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(config.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", resetAt.Format(time.RFC3339))

		if !allowed {
			retryAfter := int(math.Ceil(time.Until(resetAt).Seconds()))
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("Retry-After", strconv.Itoa(retryAfter))

			metrics.RateLimitedTotal.WithLabelValues(config.KeyPrefix).Inc()
			rl.audit.LogRateLimitTriggered(c.Request.Context(), c.ClientIP(), c.Request.UserAgent(), c.GetString(string(domain.KeyRequestID)), c.FullPath())

			response.Error(c, http.StatusTooManyRequests, "Rate limit exceeded. Please try again later.", nil)
			c.Abort()
			return
		}

		c.Next()
	}
}

// checkRateLimitRedis checks rate limit using Redis with atomic Lua script
func checkRateLimitRedis(ctx context.Context, client *goredis.Client, key string, config RateLimitConfig) (int, time.Time, error) {
	ttlSeconds := int(config.Window.Seconds())
	if ttlSeconds < 1 {
		ttlSeconds = 1
	}

	result, err := client.Eval(ctx, rateLimitLuaScript, []string{key}, ttlSeconds).Result()
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("redis rate limit eval failed: %w", err)
	}

	arr, ok := result.([]interface{})
	if !ok || len(arr) < 2 {
		return 0, time.Time{}, fmt.Errorf("unexpected redis result format")
	}
	count, _ := arr[0].(int64)
	ttl, _ := arr[1].(int64)

	return int(count), time.Now().Add(time.Duration(ttl) * time.Second), nil
}

// allowInMemory refills Limit tokens per Window, with a burst of Limit.
func (rl *RateLimiter) allowInMemory(key string, config RateLimitConfig, now time.Time) (bool, int, time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	b, ok := rl.buckets[key]
	if !ok {
		every := config.Window / time.Duration(config.Limit)
		b = &bucket{limiter: rate.NewLimiter(rate.Every(every), config.Limit)}
		rl.buckets[key] = b
		rl.sweepLocked(now, config.Window)
	}
	b.lastSeen = now

	allowed := b.limiter.AllowN(now, 1)
	tokens := b.limiter.TokensAt(now)
	missing := float64(config.Limit) - tokens
	resetAt := now.Add(time.Duration(missing / float64(b.limiter.Limit()) * float64(time.Second)))
	return allowed, int(tokens), resetAt
}

// sweepLocked drops buckets idle for more than a few windows.
func (rl *RateLimiter) sweepLocked(now time.Time, window time.Duration) {
	idle := 5 * window
	for key, b := range rl.buckets {
		if now.Sub(b.lastSeen) > idle {
			delete(rl.buckets, key)
		}
	}
}

func (rl *RateLimiter) logError(c *gin.Context, err error) {
	rl.audit.Log(c.Request.Context(), security.SecurityEvent{
		Event:       security.EventRateLimitTriggered,
		SubjectType: "system",
		IP:          c.ClientIP(),
		RequestID:   c.GetString(string(domain.KeyRequestID)),
		Details: map[string]interface{}{
			"error_type": "redis_error",
			"error":      err.Error(),
		},
	})
}
