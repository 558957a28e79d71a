package llm

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds all LLM provider configuration. Fields are filled from
// UNITUTOR_* environment variables by ConfigFromEnv.
type Config struct {
	// Provider selects which LLM provider to use.
	// Values: "gemini", "anthropic", "openai", "openrouter", "mock"
	Provider string `env:"UNITUTOR_LLM_PROVIDER" envDefault:"gemini"`

	Anthropic  AnthropicConfig
	OpenAI     OpenAIConfig
	Gemini     GeminiConfig
	OpenRouter OpenRouterConfig
	Retry      RetryConfig

	// Timeout bounds a single Generate call including retries. Reading a
	// whole exam paper is slow, so the default is generous.
	Timeout time.Duration `env:"UNITUTOR_LLM_TIMEOUT" envDefault:"90s"`
}

// AnthropicConfig holds Anthropic-specific configuration.
type AnthropicConfig struct {
	APIKey string `env:"UNITUTOR_ANTHROPIC_API_KEY"`
	Model  string `env:"UNITUTOR_ANTHROPIC_MODEL" envDefault:"claude-sonnet"`
}

// OpenAIConfig holds OpenAI-specific configuration.
type OpenAIConfig struct {
	APIKey  string `env:"UNITUTOR_OPENAI_API_KEY"`
	Model   string `env:"UNITUTOR_OPENAI_MODEL" envDefault:"gpt-4o-mini"`
	BaseURL string `env:"UNITUTOR_OPENAI_BASE_URL"`
}

// GeminiConfig holds Gemini-specific configuration.
type GeminiConfig struct {
	APIKey string `env:"UNITUTOR_GEMINI_API_KEY"`
	Model  string `env:"UNITUTOR_GEMINI_MODEL" envDefault:"gemini-pro"`
}

// OpenRouterConfig holds OpenRouter-specific configuration.
type OpenRouterConfig struct {
	APIKey  string `env:"UNITUTOR_OPENROUTER_API_KEY"`
	Model   string `env:"UNITUTOR_OPENROUTER_MODEL" envDefault:"google/gemini-2.5-flash"`
	BaseURL string `env:"UNITUTOR_OPENROUTER_BASE_URL"`
}

// RetryConfig configures retry behavior for transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

func defaultRetry() RetryConfig {
	return RetryConfig{
		MaxAttempts: 3,
		InitialWait: 1 * time.Second,
		MaxWait:     10 * time.Second,
		Multiplier:  2.0,
	}
}

// DefaultConfig returns the configuration used when no variables are set.
func DefaultConfig() Config {
	cfg, _ := configFrom(map[string]string{})
	return cfg
}

// ConfigFromEnv builds a Config from the process environment, falling back
// to defaults for unset values.
func ConfigFromEnv() (Config, error) {
	cfg := Config{Retry: defaultRetry()}
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse LLM env: %w", err)
	}
	return cfg, nil
}

func configFrom(environ map[string]string) (Config, error) {
	cfg := Config{Retry: defaultRetry()}
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: environ}); err != nil {
		return Config{}, fmt.Errorf("parse LLM env: %w", err)
	}
	return cfg, nil
}

// DiscoverConfig probes the vendors' standard API key variables in priority
// order (Gemini, Anthropic, OpenAI, OpenRouter) and returns a Config for the
// first provider whose key is found. Gemini comes first because it reads
// PDFs natively. Returns (Config{}, false) if none found.
func DiscoverConfig() (Config, bool) {
	cfg := DefaultConfig()

	if k := os.Getenv("GEMINI_API_KEY"); k != "" {
		cfg.Provider = "gemini"
		cfg.Gemini.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("ANTHROPIC_API_KEY"); k != "" {
		cfg.Provider = "anthropic"
		cfg.Anthropic.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("OPENAI_API_KEY"); k != "" {
		cfg.Provider = "openai"
		cfg.OpenAI.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("OPENROUTER_API_KEY"); k != "" {
		cfg.Provider = "openrouter"
		cfg.OpenRouter.APIKey = k
		return cfg, true
	}

	return Config{}, false
}

// Validate checks that the selected provider has its required API key set.
func (c Config) Validate() error {
	switch c.Provider {
	case "anthropic":
		if c.Anthropic.APIKey == "" {
			return fmt.Errorf("UNITUTOR_ANTHROPIC_API_KEY is required for the anthropic provider")
		}
	case "openai":
		if c.OpenAI.APIKey == "" {
			return fmt.Errorf("UNITUTOR_OPENAI_API_KEY is required for the openai provider")
		}
	case "gemini":
		if c.Gemini.APIKey == "" {
			return fmt.Errorf("UNITUTOR_GEMINI_API_KEY is required for the gemini provider")
		}
	case "openrouter":
		if c.OpenRouter.APIKey == "" {
			return fmt.Errorf("UNITUTOR_OPENROUTER_API_KEY is required for the openrouter provider")
		}
	case "mock":
		// No API key needed.
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	return nil
}
