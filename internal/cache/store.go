package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	redis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const scanBatch = 200

// Store is a JSON value cache. Failures are logged and reported as misses so reads
// never fail because of the cache.
type Store interface {
	Get(ctx context.Context, key string, dest any) bool
	Set(ctx context.Context, key string, value any, ttl time.Duration)
	DeletePrefix(ctx context.Context, prefix string)
	// Generation reports the counter stored at key. ok is false when it cannot be read.
	Generation(ctx context.Context, key string) (gen int64, ok bool)
	Bump(ctx context.Context, key string)
}

func NewStore(client *redis.Client, log *zap.Logger) Store {
	if client == nil {
		return noopStore{}
	}
	return &redisStore{client: client, log: log.Named("cache")}
}

type redisStore struct {
	client *redis.Client
	log    *zap.Logger
}

func (s *redisStore) Get(ctx context.Context, key string, dest any) bool {
	raw, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.log.Warn("cache get failed", zap.String("key", key), zap.Error(err))
		}
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		s.log.Warn("cache decode failed", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

func (s *redisStore) Set(ctx context.Context, key string, value any, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		s.log.Warn("cache encode failed", zap.String("key", key), zap.Error(err))
		return
	}
	if err := s.client.Set(ctx, key, raw, ttl).Err(); err != nil {
		s.log.Warn("cache set failed", zap.String("key", key), zap.Error(err))
	}
}

func (s *redisStore) DeletePrefix(ctx context.Context, prefix string) {
	iter := s.client.Scan(ctx, 0, prefix+"*", scanBatch).Iterator()
	keys := make([]string, 0, scanBatch)
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
		if len(keys) == scanBatch {
			s.del(ctx, keys)
			keys = keys[:0]
		}
	}
	if err := iter.Err(); err != nil {
		s.log.Warn("cache scan failed", zap.String("prefix", prefix), zap.Error(err))
	}
	s.del(ctx, keys)
}

func (s *redisStore) Generation(ctx context.Context, key string) (int64, bool) {
	gen, err := s.client.Get(ctx, key).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, true
		}
		s.log.Warn("cache generation read failed", zap.String("key", key), zap.Error(err))
		return 0, false
	}
	return gen, true
}

func (s *redisStore) Bump(ctx context.Context, key string) {
	if err := s.client.Incr(ctx, key).Err(); err != nil {
		s.log.Warn("cache generation bump failed", zap.String("key", key), zap.Error(err))
	}
}

func (s *redisStore) del(ctx context.Context, keys []string) {
	if len(keys) == 0 {
		return
	}
	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		s.log.Warn("cache delete failed", zap.Int("keys", len(keys)), zap.Error(err))
	}
}

type noopStore struct{}

func (noopStore) Get(context.Context, string, any) bool { return false }

func (noopStore) Set(context.Context, string, any, time.Duration) {}

func (noopStore) DeletePrefix(context.Context, string) {}

func (noopStore) Generation(context.Context, string) (int64, bool) { return 0, false }

func (noopStore) Bump(context.Context, string) {}

const (
	// ProductListingPrefix namespaces every cached product listing page.
	ProductListingPrefix = "catalog:products:list:"
	// ProductListingGeneration is bumped on every catalog write and embedded in listing keys,
	// so a page computed before a write is never served after it.
	ProductListingGeneration = "catalog:products:gen"
)

// InvalidateProductListings moves listings to a new generation and drops the old pages.
func InvalidateProductListings(ctx context.Context, store Store) {
	store.Bump(ctx, ProductListingGeneration)
	store.DeletePrefix(ctx, ProductListingPrefix)
}
