package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Search cache backends.
const (
	CacheMemory   = "memory"
	CacheRedis    = "redis"
	CachePostgres = "postgres"
	CacheNone     = "none"
)

// LLM providers.
const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

type Config struct {
	Port     string `envconfig:"PORT" default:"8080"`
	GinMode  string `envconfig:"GIN_MODE" default:"release"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
	LogEnc   string `envconfig:"LOG_ENCODING" default:"json"`

	CORSAllowedOrigins string `envconfig:"CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`

	NaverClientID     string        `envconfig:"NAVER_SEARCH_CLIENT_ID"`
	NaverClientSecret string        `envconfig:"NAVER_SEARCH_CLIENT_SECRET"`
	NaverBaseURL      string        `envconfig:"NAVER_SEARCH_BASE_URL" default:"https://openapi.naver.com"`
	SearchTimeout     time.Duration `envconfig:"SEARCH_TIMEOUT" default:"10s"`

	SearchCacheBackend string        `envconfig:"SEARCH_CACHE_BACKEND" default:"memory"`
	SearchCacheTTL     time.Duration `envconfig:"SEARCH_CACHE_TTL" default:"6h"`

	RedisAddr     string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	RedisPassword string `envconfig:"REDIS_PASSWORD"`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`

	PostgresURL string `envconfig:"POSTGRES_URL"`

	LLMProvider   string        `envconfig:"LLM_PROVIDER" default:"openai"`
	OpenAIKey     string        `envconfig:"OPENAI_API_KEY"`
	OpenAIModel   string        `envconfig:"OPENAI_MODEL" default:"gpt-4o-mini"`
	OpenAIBaseURL string        `envconfig:"OPENAI_BASE_URL"`
	GeminiKey     string        `envconfig:"GEMINI_API_KEY"`
	GeminiModel   string        `envconfig:"GEMINI_MODEL" default:"gemini-1.5-flash"`
	LLMTimeout    time.Duration `envconfig:"LLM_TIMEOUT" default:"30s"`
}

// GetAllowedOrigins splits CORSAllowedOrigins on commas.
func (c *Config) GetAllowedOrigins() []string {
	if strings.TrimSpace(c.CORSAllowedOrigins) == "" {
		return nil
	}
	return strings.Split(strings.ReplaceAll(c.CORSAllowedOrigins, " ", ""), ",")
}

func (c *Config) Validate() error {
	switch strings.ToLower(c.SearchCacheBackend) {
	case CacheMemory, CacheRedis, CacheNone:
	case CachePostgres:
		if c.PostgresURL == "" {
			return fmt.Errorf("POSTGRES_URL is required when SEARCH_CACHE_BACKEND=%s", CachePostgres)
		}
	default:
		return fmt.Errorf("unsupported SEARCH_CACHE_BACKEND: %s", c.SearchCacheBackend)
	}

	switch strings.ToLower(c.LLMProvider) {
	case ProviderOpenAI, ProviderGemini:
	default:
		return fmt.Errorf("unsupported LLM_PROVIDER: %s. Use 'openai' or 'gemini'", c.LLMProvider)
	}
	return nil
}

// Load reads envFilePath when it exists, then the process environment.
func Load(envFilePath string) (*Config, error) {
	if envFilePath != "" {
		if _, err := os.Stat(envFilePath); err == nil {
			if err := godotenv.Load(envFilePath); err != nil {
				log.Printf("Warning: Could not load %s file: %v", envFilePath, err)
			}
		} else if !os.IsNotExist(err) {
			log.Printf("Warning: Error checking %s file: %v", envFilePath, err)
		}
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("error processing env vars: %w", err)
	}
	cfg.SearchCacheBackend = strings.ToLower(strings.TrimSpace(cfg.SearchCacheBackend))
	cfg.LLMProvider = strings.ToLower(strings.TrimSpace(cfg.LLMProvider))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
