package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/memettekkee/PT-SDA-BE-TEST-sub001/internal/config"
	redis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWriteLimiterDisabled(t *testing.T) {
	limiter, err := NewWriteLimiter(config.Config{}, nil)
	require.NoError(t, err)
	assert.Nil(t, limiter)
	assert.False(t, limiter.Enabled())

	res, err := limiter.AllowMerchant(context.Background(), "1")
	require.NoError(t, err)
	assert.True(t, res.Allowed)
}

func TestNewWriteLimiterRejectsBadLimits(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"})
	defer client.Close()

	cfg := config.Config{RateLimit: config.RateLimitConfig{Enabled: true, WriteRate: 0, WriteBurst: 5}}
	_, err := NewWriteLimiter(cfg, client)
	assert.Error(t, err)
}

func TestRetryAfterAndTTL(t *testing.T) {
	assert.Equal(t, time.Duration(0), retryAfter(true, 0, 1))
	assert.Equal(t, 500*time.Millisecond, retryAfter(false, 0, 2))
	assert.Equal(t, 10*time.Second, bucketTTL(1, 5))
	assert.Equal(t, time.Second, bucketTTL(100, 1))
}
