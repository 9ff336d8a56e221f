package llm_fx

import (
	"context"
	"fmt"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"tripmate/internal/config"
	"tripmate/pkg/utils"
)

var Module = fx.Provide(ProvideTripExtractor)

// ProvideTripExtractor picks the LLM client from LLM_PROVIDER.
func ProvideTripExtractor(lc fx.Lifecycle, cfg *config.Config, log *zap.Logger) (utils.TripExtractorInterface, error) {
	switch cfg.LLMProvider {
	case config.ProviderOpenAI:
		log.Info("Initializing trip extractor", zap.String("provider", cfg.LLMProvider), zap.String("model", cfg.OpenAIModel))
		extractor, err := utils.NewOpenAITripExtractor(cfg.OpenAIKey, cfg.OpenAIModel, cfg.OpenAIBaseURL, cfg.LLMTimeout)
		if err != nil {
			return nil, fmt.Errorf("init openai trip extractor: %w", err)
		}
		return extractor, nil

	case config.ProviderGemini:
		log.Info("Initializing trip extractor", zap.String("provider", cfg.LLMProvider), zap.String("model", cfg.GeminiModel))
		extractor, err := utils.NewGeminiTripExtractor(context.Background(), cfg.GeminiKey, cfg.GeminiModel, cfg.LLMTimeout)
		if err != nil {
			return nil, fmt.Errorf("init gemini trip extractor: %w", err)
		}
		lc.Append(fx.Hook{
			OnStop: func(context.Context) error {
				return extractor.Close()
			},
		})
		return extractor, nil
	}

	return nil, fmt.Errorf("unsupported LLM provider: %s. Use 'openai' or 'gemini'", cfg.LLMProvider)
}
