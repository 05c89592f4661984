package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/memettekkee/PT-SDA-BE-TEST-sub001/internal/config"
	redis "github.com/redis/go-redis/v9"
)

const keyCatalogWrite = "catalog:ratelimit:write:%s"

// WriteLimiter throttles catalog mutations per merchant.
type WriteLimiter struct {
	bucket *TokenBucket
	rate   float64
	burst  int
}

// NewWriteLimiter returns nil when rate limiting is disabled or redis is unavailable.
func NewWriteLimiter(cfg config.Config, client *redis.Client) (*WriteLimiter, error) {
	limitCfg := cfg.RateLimit
	if !limitCfg.Enabled || client == nil {
		return nil, nil
	}
	if err := validateLimits(limitCfg.WriteRate, limitCfg.WriteBurst); err != nil {
		return nil, fmt.Errorf("catalog write limit: %w", err)
	}

	return &WriteLimiter{
		bucket: NewTokenBucket(client),
		rate:   limitCfg.WriteRate,
		burst:  limitCfg.WriteBurst,
	}, nil
}

func (l *WriteLimiter) Enabled() bool {
	return l != nil && l.bucket != nil
}

// AllowMerchant consumes one token from the merchant's bucket.
func (l *WriteLimiter) AllowMerchant(ctx context.Context, merchantID string) (*Result, error) {
	if !l.Enabled() {
		return &Result{Allowed: true}, nil
	}
	merchantID = strings.TrimSpace(merchantID)
	if merchantID == "" {
		return nil, errors.New("merchant id is required")
	}
	return l.bucket.Allow(ctx, fmt.Sprintf(keyCatalogWrite, merchantID), l.rate, l.burst)
}
