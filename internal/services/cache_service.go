package services

import (
	"context"
	"time"

	"taxihail/pkg/cache"
	"taxihail/pkg/logger"
)

// CacheService fronts redis for display reads only: dashboard boards and
// similar eventually-consistent projections. Nothing read through the cache
// is ever the basis for a write decision — the protocol re-reads inside its
// own transaction.
type CacheService interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

type redisCacheService struct {
	cache  *cache.RedisCache
	logger *logger.Logger
}

func NewCacheService(redisCache *cache.RedisCache, log *logger.Logger) CacheService {
	return &redisCacheService{
		cache:  redisCache,
		logger: log,
	}
}

func (s *redisCacheService) Get(ctx context.Context, key string, dest interface{}) error {
	return s.cache.Get(ctx, key, dest)
}

func (s *redisCacheService) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	err := s.cache.Set(ctx, key, value, expiration)
	if err != nil {
		s.logger.WithError(err).WithField("key", key).Warn("Cache set failed")
	}
	return err
}

func (s *redisCacheService) Delete(ctx context.Context, keys ...string) error {
	return s.cache.Delete(ctx, keys...)
}

// noopCacheService stands in when redis is not configured; every lookup is
// a miss.
type noopCacheService struct{}

func NewNoopCacheService() CacheService {
	return noopCacheService{}
}

func (noopCacheService) Get(ctx context.Context, key string, dest interface{}) error {
	return cache.ErrCacheMiss
}

func (noopCacheService) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return nil
}

func (noopCacheService) Delete(ctx context.Context, keys ...string) error {
	return nil
}
