package httpkit

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"enquiry_backend/platform/logger"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIPRateLimiterEnforcesBurstPerIP(t *testing.T) {
	limiter := NewIPRateLimiter(15*time.Minute, 2)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		ok, err := limiter.Allow(ctx, "10.0.0.1")
		require.NoError(t, err)
		assert.True(t, ok)
	}
	ok, _ := limiter.Allow(ctx, "10.0.0.1")
	assert.False(t, ok, "third request inside the window must be refused")

	ok, _ = limiter.Allow(ctx, "10.0.0.2")
	assert.True(t, ok, "other clients keep their own budget")
}

func TestRedisRateLimiter(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	limiter := NewRedisRateLimiter(client, time.Minute, 3)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		ok, err := limiter.Allow(ctx, "10.0.0.1")
		require.NoError(t, err)
		assert.True(t, ok)
	}
	ok, err := limiter.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = limiter.Allow(ctx, "10.0.0.2")
	require.NoError(t, err)
	assert.True(t, ok)

	keys := mr.Keys()
	require.NotEmpty(t, keys)
	assert.Greater(t, mr.TTL(keys[0]), time.Duration(0), "counters must expire")
}

func TestRedisRateLimiterSubMillisecondWindow(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	limiter := NewRedisRateLimiter(client, 500*time.Microsecond, 1)
	assert.Equal(t, time.Millisecond, limiter.window)

	ok, err := limiter.Allow(context.Background(), "10.0.0.1")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRedisRateLimiterReportsStoreErrors(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })
	mr.Close()

	_, err := NewRedisRateLimiter(client, time.Minute, 3).Allow(context.Background(), "10.0.0.1")
	assert.Error(t, err)
}

type failingLimiter struct{}

func (failingLimiter) Allow(context.Context, string) (bool, error) {
	return false, assert.AnError
}

func TestRateLimitMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(RateLimit(NewIPRateLimiter(time.Minute, 1), logger.Discard()))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Contains(t, rec.Body.String(), `"success":false`)
}

func TestRateLimitMiddlewareFailsOpen(t *testing.T) {
	r := gin.New()
	r.Use(RateLimit(failingLimiter{}, logger.Discard()))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}
