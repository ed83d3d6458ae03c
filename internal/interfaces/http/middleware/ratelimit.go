package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/isletme/backend/internal/interfaces/http/dto"
)

// Quota is the outcome of one counted request
type Quota struct {
	Allowed    bool
	Limit      int
	Remaining  int
	RetryAfter time.Duration
}

// Limiter counts requests per key in fixed windows
type Limiter interface {
	Allow(ctx context.Context, key string) (Quota, error)
}

// MemoryLimiter is a per-process fixed-window limiter
type MemoryLimiter struct {
	mu        sync.Mutex
	limit     int
	window    time.Duration
	windows   map[string]*window
	lastSweep time.Time
	now       func() time.Time
}

type window struct {
	start time.Time
	count int
}

// NewMemoryLimiter allows limit requests per key and window
func NewMemoryLimiter(limit int, every time.Duration) *MemoryLimiter {
	return &MemoryLimiter{
		limit:   limit,
		window:  every,
		windows: make(map[string]*window),
		now:     time.Now,
	}
}

// Allow counts one request for key
func (l *MemoryLimiter) Allow(_ context.Context, key string) (Quota, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.sweep(now)

	w, ok := l.windows[key]
	if !ok || now.Sub(w.start) >= l.window {
		w = &window{start: now}
		l.windows[key] = w
	}
	q := Quota{Limit: l.limit}
	if w.count >= l.limit {
		q.RetryAfter = w.start.Add(l.window).Sub(now)
		return q, nil
	}
	w.count++
	q.Allowed = true
	q.Remaining = l.limit - w.count
	return q, nil
}

// sweep drops expired windows at most once per window. Caller holds mu.
func (l *MemoryLimiter) sweep(now time.Time) {
	if now.Sub(l.lastSweep) < l.window {
		return
	}
	for key, w := range l.windows {
		if now.Sub(w.start) >= l.window {
			delete(l.windows, key)
		}
	}
	l.lastSweep = now
}

// RedisLimiter shares fixed windows between server instances
type RedisLimiter struct {
	client *redis.Client
	prefix string
	limit  int
	window time.Duration
}

// NewRedisLimiter allows limit requests per key and window across instances
func NewRedisLimiter(client *redis.Client, prefix string, limit int, every time.Duration) *RedisLimiter {
	return &RedisLimiter{client: client, prefix: prefix, limit: limit, window: every}
}

// Allow increments the key's counter; the first hit of a window sets its expiry
func (l *RedisLimiter) Allow(ctx context.Context, key string) (Quota, error) {
	redisKey := l.prefix + key
	var incr *redis.IntCmd
	var ttl *redis.DurationCmd
	_, err := l.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, redisKey)
		pipe.ExpireNX(ctx, redisKey, l.window)
		ttl = pipe.PTTL(ctx, redisKey)
		return nil
	})
	if err != nil {
		return Quota{}, fmt.Errorf("rate limit %s: %w", key, err)
	}

	count := int(incr.Val())
	q := Quota{Limit: l.limit, Allowed: count <= l.limit}
	if q.Allowed {
		q.Remaining = l.limit - count
	} else {
		q.RetryAfter = ttl.Val()
	}
	return q, nil
}

// ClientKey limits per client address, and per tenant once authenticated
func ClientKey(c *gin.Context) string {
	if tenantID := GetJWTTenantID(c); tenantID != "" {
		return tenantID + ":" + c.ClientIP()
	}
	return c.ClientIP()
}

// RateLimit rejects requests over the limiter's quota with 429. Limiter
// failures are logged and let the request through.
func RateLimit(l Limiter, key func(*gin.Context) string, log *zap.Logger) gin.HandlerFunc {
	return limit(l, key, log, "Çok fazla istek gönderildi, lütfen daha sonra tekrar deneyin")
}

// AuthRateLimit throttles credential endpoints per client address
func AuthRateLimit(l Limiter, log *zap.Logger) gin.HandlerFunc {
	key := func(c *gin.Context) string { return "auth:" + c.ClientIP() }
	return limit(l, key, log, "Çok fazla giriş denemesi, lütfen bir süre sonra tekrar deneyin")
}

func limit(l Limiter, key func(*gin.Context) string, log *zap.Logger, message string) gin.HandlerFunc {
	if log == nil {
		log = zap.NewNop()
	}
	return func(c *gin.Context) {
		q, err := l.Allow(c.Request.Context(), key(c))
		if err != nil {
			log.Warn("rate limiter unavailable", zap.Error(err))
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(q.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(q.Remaining))
		if !q.Allowed {
			retry := int(q.RetryAfter.Round(time.Second).Seconds())
			c.Header("Retry-After", strconv.Itoa(max(retry, 1)))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.NewErrorResponseWithRequestID(
				dto.ErrCodeRateLimited, message, c.GetString(RequestIDKey)))
			return
		}
		c.Next()
	}
}

var (
	_ Limiter = (*MemoryLimiter)(nil)
	_ Limiter = (*RedisLimiter)(nil)
)
