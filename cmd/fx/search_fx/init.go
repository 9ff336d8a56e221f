package search_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"tripmate/internal/config"
	"tripmate/internal/services"
)

var Module = fx.Provide(provideLocalSearchClient)

func provideLocalSearchClient(cfg *config.Config, cache services.SearchCache, log *zap.Logger) services.LocalSearchClient {
	if cfg.NaverClientID == "" || cfg.NaverClientSecret == "" {
		log.Warn("Naver search credentials are not set, place search will fail")
	}
	return services.NewNaverLocalClient(
		cfg.NaverBaseURL,
		cfg.NaverClientID,
		cfg.NaverClientSecret,
		cfg.SearchTimeout,
		cache,
		cfg.SearchCacheTTL,
		log,
	)
}
