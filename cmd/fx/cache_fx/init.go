package cache_fx

import (
	"context"
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"tripmate/internal/config"
	"tripmate/internal/infra"
	"tripmate/internal/repositories"
	"tripmate/internal/services"
	mem "tripmate/pkg/memcache"
)

const (
	memoryCacheMaxEntries = 5000
	janitorInterval       = 10 * time.Minute
)

var Module = fx.Provide(provideSearchCache)

func provideSearchCache(lc fx.Lifecycle, cfg *config.Config, log *zap.Logger) (services.SearchCache, error) {
	log = log.With(zap.String("cache", cfg.SearchCacheBackend))

	switch cfg.SearchCacheBackend {
	case config.CacheRedis:
		client := infra.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		lc.Append(fx.Hook{
			OnStart: func(ctx context.Context) error {
				if err := infra.PingRedis(ctx, client); err != nil {
					log.Warn("Redis unreachable at startup, searches bypass the cache", zap.Error(err))
				}
				return nil
			},
			OnStop: func(context.Context) error {
				return client.Close()
			},
		})
		return services.NewRedisSearchCache(client), nil

	case config.CachePostgres:
		db, err := infra.InitPostgresql(cfg.PostgresURL, log)
		if err != nil {
			return nil, err
		}
		cache := services.NewPostgresSearchCache(repositories.NewSearchCacheRepository(db))
		startJanitor(lc, cache, log)
		lc.Append(fx.Hook{
			OnStop: func(context.Context) error {
				infra.ClosePostgresql(db, log)
				return nil
			},
		})
		return cache, nil

	case config.CacheNone:
		return services.NoopSearchCache{}, nil
	}

	cache := services.NewMemorySearchCache(mem.NewTTLStore[[]services.NaverLocalItem](memoryCacheMaxEntries))
	startJanitor(lc, cache, log)
	return cache, nil
}

func startJanitor(lc fx.Lifecycle, purger services.CachePurger, log *zap.Logger) {
	ctx, cancel := context.WithCancel(context.Background())
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go services.RunCacheJanitor(ctx, purger, janitorInterval, log)
			return nil
		},
		OnStop: func(context.Context) error {
			cancel()
			return nil
		},
	})
}
