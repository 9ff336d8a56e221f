package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"tripmate/internal/models/db_models"
	"tripmate/internal/repositories"
	mem "tripmate/pkg/memcache"
	"tripmate/pkg/utils"
)

// SearchCache stores raw local-search responses. A miss is (nil, false, nil).
// Errors wrap utils.ErrCacheUnavailable and callers bypass the cache on error.
type SearchCache interface {
	Get(ctx context.Context, key string) ([]NaverLocalItem, bool, error)
	Set(ctx context.Context, key string, items []NaverLocalItem, ttl time.Duration) error
	Ping(ctx context.Context) error
	Name() string
}

// CachePurger is implemented by caches that need expired rows removed.
type CachePurger interface {
	Purge(ctx context.Context) (int64, error)
}

// ---------- memory ----------

type MemorySearchCache struct {
	store mem.Store[[]NaverLocalItem]
}

func NewMemorySearchCache(store mem.Store[[]NaverLocalItem]) *MemorySearchCache {
	return &MemorySearchCache{store: store}
}

func (m *MemorySearchCache) Get(_ context.Context, key string) ([]NaverLocalItem, bool, error) {
	items, ok := m.store.Get(key)
	return items, ok, nil
}

func (m *MemorySearchCache) Set(_ context.Context, key string, items []NaverLocalItem, ttl time.Duration) error {
	m.store.Set(key, items, ttl)
	return nil
}

func (m *MemorySearchCache) Ping(context.Context) error { return nil }

func (m *MemorySearchCache) Name() string { return "memory" }

func (m *MemorySearchCache) Purge(context.Context) (int64, error) {
	return int64(m.store.Purge()), nil
}

// ---------- redis ----------

const redisKeyPrefix = "tripmate:search:"

type RedisSearchCache struct {
	client *redis.Client
}

func NewRedisSearchCache(client *redis.Client) *RedisSearchCache {
	return &RedisSearchCache{client: client}
}

func (r *RedisSearchCache) Get(ctx context.Context, key string) ([]NaverLocalItem, bool, error) {
	raw, err := r.client.Get(ctx, redisKeyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("%w: redis get: %v", utils.ErrCacheUnavailable, err)
	}
	var items []NaverLocalItem
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, false, fmt.Errorf("%w: redis decode: %v", utils.ErrCacheUnavailable, err)
	}
	return items, true, nil
}

func (r *RedisSearchCache) Set(ctx context.Context, key string, items []NaverLocalItem, ttl time.Duration) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("%w: redis encode: %v", utils.ErrCacheUnavailable, err)
	}
	if err := r.client.Set(ctx, redisKeyPrefix+key, raw, ttl).Err(); err != nil {
		return fmt.Errorf("%w: redis set: %v", utils.ErrCacheUnavailable, err)
	}
	return nil
}

func (r *RedisSearchCache) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisSearchCache) Name() string { return "redis" }

// ---------- postgres ----------

type PostgresSearchCache struct {
	repo repositories.SearchCacheRepository
	now  func() int64
}

func NewPostgresSearchCache(repo repositories.SearchCacheRepository) *PostgresSearchCache {
	return &PostgresSearchCache{repo: repo, now: utils.NowUnixSeconds}
}

func (p *PostgresSearchCache) Get(ctx context.Context, key string) ([]NaverLocalItem, bool, error) {
	entry, err := p.repo.FindValid(ctx, key, p.now())
	if err != nil {
		return nil, false, fmt.Errorf("%w: %w", utils.ErrCacheUnavailable, err)
	}
	if entry == nil {
		return nil, false, nil
	}
	var items []NaverLocalItem
	if err := json.Unmarshal(entry.Payload, &items); err != nil {
		return nil, false, fmt.Errorf("%w: postgres decode: %v", utils.ErrCacheUnavailable, err)
	}
	return items, true, nil
}

func (p *PostgresSearchCache) Set(ctx context.Context, key string, items []NaverLocalItem, ttl time.Duration) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("%w: postgres encode: %v", utils.ErrCacheUnavailable, err)
	}
	query, display := splitCacheKey(key)
	entry := &db_models.SearchCacheEntry{
		CacheKey:  key,
		Query:     query,
		Display:   display,
		Payload:   datatypes.JSON(raw),
		ExpiresAt: p.now() + int64(ttl/time.Second),
	}
	if err := p.repo.Upsert(ctx, entry); err != nil {
		return fmt.Errorf("%w: %w", utils.ErrCacheUnavailable, err)
	}
	return nil
}

func (p *PostgresSearchCache) Ping(ctx context.Context) error {
	return p.repo.Ping(ctx)
}

func (p *PostgresSearchCache) Name() string { return "postgres" }

func (p *PostgresSearchCache) Purge(ctx context.Context) (int64, error) {
	return p.repo.DeleteExpired(ctx, p.now())
}

// ---------- none ----------

type NoopSearchCache struct{}

func (NoopSearchCache) Get(context.Context, string) ([]NaverLocalItem, bool, error) {
	return nil, false, nil
}

func (NoopSearchCache) Set(context.Context, string, []NaverLocalItem, time.Duration) error {
	return nil
}

func (NoopSearchCache) Ping(context.Context) error { return nil }

func (NoopSearchCache) Name() string { return "none" }

// RunCacheJanitor purges expired entries every interval until ctx is done.
func RunCacheJanitor(ctx context.Context, purger CachePurger, every time.Duration, log *zap.Logger) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := purger.Purge(ctx)
			if err != nil {
				log.Warn("Search cache purge failed", zap.Error(err))
				continue
			}
			if n > 0 {
				log.Debug("Search cache purged", zap.Int64("removed", n))
			}
		}
	}
}
