package httpkit

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"enquiry_backend/platform/logger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

const msgRateLimited = "Too many requests from this IP, please try again later."

// Limiter decides whether key may make another request.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// IPRateLimiter manages per-IP token buckets in process memory.
type IPRateLimiter struct {
	limiters sync.Map
	rate     rate.Limit
	burst    int
}

// NewIPRateLimiter creates a limiter allowing max requests per window per IP.
func NewIPRateLimiter(window time.Duration, max int) *IPRateLimiter {
	return &IPRateLimiter{
		rate:  rate.Limit(float64(max) / window.Seconds()),
		burst: max,
	}
}

func (i *IPRateLimiter) getLimiter(ip string) *rate.Limiter {
	limiter, exists := i.limiters.Load(ip)
	if !exists {
		limiter, _ = i.limiters.LoadOrStore(ip, rate.NewLimiter(i.rate, i.burst))
	}
	return limiter.(*rate.Limiter)
}

// Allow implements Limiter.
func (i *IPRateLimiter) Allow(_ context.Context, ip string) (bool, error) {
	return i.getLimiter(ip).Allow(), nil
}

// RedisRateLimiter is a fixed-window counter shared by every instance
// pointing at the same Redis.
type RedisRateLimiter struct {
	client *redis.Client
	window time.Duration
	max    int64
	prefix string
}

// NewRedisRateLimiter creates a shared limiter allowing max requests per window.
// Windows shorter than a millisecond are raised to one.
func NewRedisRateLimiter(client *redis.Client, window time.Duration, max int) *RedisRateLimiter {
	if window < time.Millisecond {
		window = time.Millisecond
	}
	return &RedisRateLimiter{
		client: client,
		window: window,
		max:    int64(max),
		prefix: "ratelimit:",
	}
}

// Allow implements Limiter.
func (r *RedisRateLimiter) Allow(ctx context.Context, ip string) (bool, error) {
	bucket := time.Now().UnixMilli() / r.window.Milliseconds()
	key := r.prefix + ip + ":" + strconv.FormatInt(bucket, 10)

	count, err := r.client.Incr(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("incr rate counter: %w", err)
	}
	if count == 1 {
		if err := r.client.PExpire(ctx, key, r.window).Err(); err != nil {
			return false, fmt.Errorf("expire rate counter: %w", err)
		}
	}
	return count <= r.max, nil
}

// RateLimit returns a middleware that rate limits by client IP.
// Limiter errors let the request through.
func RateLimit(limiter Limiter, log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()

		allowed, err := limiter.Allow(c.Request.Context(), ip)
		if err != nil {
			log.WithContext(c.Request.Context()).Warn("rate_limit_unavailable", "error", err.Error())
			c.Next()
			return
		}

		if !allowed {
			log.WithContext(c.Request.Context()).RateLimitExceeded(ip, c.Request.URL.Path)
			c.AbortWithStatusJSON(http.StatusTooManyRequests, ErrorResponse{
				Success: false,
				Message: msgRateLimited,
			})
			return
		}

		c.Next()
	}
}
