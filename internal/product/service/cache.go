package service

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"

	"github.com/memettekkee/PT-SDA-BE-TEST-sub001/internal/cache"
	"github.com/memettekkee/PT-SDA-BE-TEST-sub001/pkg/db/pagination"
)

// listingKey derives the cache key for one listing page within a generation.
func listingKey(gen int64, kind, scope string, p pagination.Pagination) string {
	sum := md5.Sum([]byte(fmt.Sprintf("%d|%s|%s|%d|%d", gen, kind, scope, p.Page, p.Limit)))
	return cache.ProductListingPrefix + hex.EncodeToString(sum[:])
}

// lookup reads the generation before the listing query runs. An empty key means
// the page must not be cached.
func (s *QueryService) lookup(ctx context.Context, metric, kind, scope string, p pagination.Pagination, dest any) (string, bool) {
	gen, ok := s.cache.Generation(ctx, cache.ProductListingGeneration)
	if !ok {
		s.recordLookup(ctx, metric, false)
		return "", false
	}
	key := listingKey(gen, kind, scope, p)
	hit := s.cache.Get(ctx, key, dest)
	s.recordLookup(ctx, metric, hit)
	return key, hit
}

func (s *QueryService) recordLookup(ctx context.Context, metric string, hit bool) {
	if s.metrics != nil {
		s.metrics.RecordCacheLookup(ctx, metric, hit)
	}
}

func (s *QueryService) store(ctx context.Context, key string, value any) {
	ttl := s.cfg.Get().Cache.ListTTL
	if key == "" || ttl <= 0 {
		return
	}
	s.cache.Set(ctx, key, value, ttl)
}
