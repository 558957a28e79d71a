package llm

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/abhisek/unitutor/internal/store"
)

// NewProvider creates a Provider from configuration.
// The result is wrapped as caller → timeout → retry → logging → base.
func NewProvider(ctx context.Context, cfg Config, eventRepo store.EventRepo, logger *zap.Logger) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var base Provider
	var err error

	switch cfg.Provider {
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "openrouter":
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case "mock":
		return NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	logged := WithLogging(base, cfg.Provider, eventRepo, logger)
	retried := WithRetry(logged, cfg.Retry, logger)
	return WithTimeout(retried, cfg.Timeout), nil
}

// NewProviderFromEnv reads UNITUTOR_* variables and, when they do not name a
// usable provider, falls back to the vendors' standard key variables.
func NewProviderFromEnv(ctx context.Context, eventRepo store.EventRepo, logger *zap.Logger) (Provider, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	cfg, err := ConfigFromEnv()
	if err != nil {
		return nil, err
	}
	if verr := cfg.Validate(); verr != nil {
		discovered, ok := DiscoverConfig()
		if !ok {
			return nil, verr
		}
		discovered.Timeout = cfg.Timeout
		cfg = discovered
	}
	logger.Info("llm provider configured", zap.String("provider", cfg.Provider))
	return NewProvider(ctx, cfg, eventRepo, logger)
}
