package ai

import (
	"context"
	"time"
)

// TextGenerator generates text from a system prompt and user prompt.
// Implementations ask their provider for a JSON-formatted answer; the text
// returned is untrusted and must be validated by the caller.
// Implement this interface to add new AI providers (Gemini, Ollama, OpenAI, etc.)
type TextGenerator interface {
	GenerateText(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// ProviderType represents the AI provider type
type ProviderType string

const (
	ProviderOpenAI ProviderType = "openai"
	ProviderGemini ProviderType = "gemini"
	ProviderClaude ProviderType = "claude"
	ProviderOllama ProviderType = "ollama"
	ProviderAuto   ProviderType = "auto"
)

const (
	DefaultTemperature = 0.2
	DefaultTimeout     = 60 * time.Second
)
