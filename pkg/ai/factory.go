package ai

import (
	"context"
	"fmt"
	"log"
	"time"
)

// Config holds AI provider configuration
type Config struct {
	Provider    ProviderType // "openai", "gemini", "claude", "ollama" or "auto"
	Temperature float64
	Timeout     time.Duration

	// OpenAI-compatible config
	OpenAIAPIKey  string
	OpenAIBaseURL string
	OpenAIModel   string

	// Gemini config
	GeminiAPIKey string
	GeminiModel  string

	// Claude config
	AnthropicAPIKey string
	ClaudeModel     string

	// Ollama config
	OllamaBaseURL string // e.g., "http://localhost:11434"
	OllamaModel   string // e.g., "llama3", "mistral"
}

// DynamicConfig lets the runtime settings swap models without a restart.
// A nil getter falls back to the static value in Config.
type DynamicConfig struct {
	GetOpenAIModel   func() string
	GetGeminiModel   func() string
	GetClaudeModel   func() string
	GetOllamaModel   func() string
	GetOllamaBaseURL func() string
}

func staticOr(getter func() string, value string) func() string {
	if getter != nil {
		return getter
	}
	return func() string { return value }
}

// NewTextGenerator creates a TextGenerator based on the config.
// Switch AI provider by changing cfg.Provider; "auto" chains every
// configured provider behind a FallbackService.
func NewTextGenerator(ctx context.Context, cfg Config, dyn DynamicConfig) (TextGenerator, error) {
	switch cfg.Provider {
	case ProviderOpenAI:
		if cfg.OpenAIAPIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY is required for OpenAI provider")
		}
		return newOpenAI(cfg, dyn), nil

	case ProviderGemini:
		return NewGeminiService(ctx, cfg.GeminiAPIKey, staticOr(dyn.GetGeminiModel, cfg.GeminiModel), cfg.Temperature, cfg.Timeout)

	case ProviderClaude:
		return NewClaudeService(cfg.AnthropicAPIKey, staticOr(dyn.GetClaudeModel, cfg.ClaudeModel), cfg.Temperature, cfg.Timeout)

	case ProviderOllama:
		return newOllama(cfg, dyn), nil

	case ProviderAuto, "":
		return newAuto(ctx, cfg, dyn)

	default:
		return nil, fmt.Errorf("unknown AI provider %q", cfg.Provider)
	}
}

func newOpenAI(cfg Config, dyn DynamicConfig) *OpenAIService {
	model := cfg.OpenAIModel
	if model == "" {
		model = defaultOpenAIModel
	}
	return NewOpenAIServiceWithGetter(cfg.OpenAIBaseURL, cfg.OpenAIAPIKey, staticOr(dyn.GetOpenAIModel, model), cfg.Temperature, cfg.Timeout)
}

func newOllama(cfg Config, dyn DynamicConfig) *OllamaService {
	base := NewOllamaService(cfg.OllamaBaseURL, cfg.OllamaModel, cfg.Temperature, cfg.Timeout)
	if dyn.GetOllamaModel == nil && dyn.GetOllamaBaseURL == nil {
		return base
	}
	return NewOllamaServiceWithGetters(
		staticOr(dyn.GetOllamaBaseURL, base.getBaseURL()),
		staticOr(dyn.GetOllamaModel, base.getModel()),
		cfg.Temperature,
		cfg.Timeout,
	)
}

// newAuto orders hosted providers with keys first and keeps Ollama last
func newAuto(ctx context.Context, cfg Config, dyn DynamicConfig) (TextGenerator, error) {
	var providers []NamedGenerator

	if cfg.OpenAIAPIKey != "" {
		providers = append(providers, NamedGenerator{Name: string(ProviderOpenAI), Generator: newOpenAI(cfg, dyn)})
	}
	if cfg.GeminiAPIKey != "" {
		g, err := NewGeminiService(ctx, cfg.GeminiAPIKey, staticOr(dyn.GetGeminiModel, cfg.GeminiModel), cfg.Temperature, cfg.Timeout)
		if err != nil {
			log.Printf("[AI] Skipping Gemini: %v", err)
		} else {
			providers = append(providers, NamedGenerator{Name: string(ProviderGemini), Generator: g})
		}
	}
	if cfg.AnthropicAPIKey != "" {
		c, err := NewClaudeService(cfg.AnthropicAPIKey, staticOr(dyn.GetClaudeModel, cfg.ClaudeModel), cfg.Temperature, cfg.Timeout)
		if err != nil {
			log.Printf("[AI] Skipping Claude: %v", err)
		} else {
			providers = append(providers, NamedGenerator{Name: string(ProviderClaude), Generator: c})
		}
	}
	if cfg.OllamaBaseURL != "" || len(providers) == 0 {
		providers = append(providers, NamedGenerator{Name: string(ProviderOllama), Generator: newOllama(cfg, dyn)})
	}

	if len(providers) == 1 {
		return providers[0].Generator, nil
	}
	fb := NewFallbackService(providers...)
	log.Printf("[AI] Provider chain: %v", fb.Providers())
	return fb, nil
}
