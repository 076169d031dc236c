package ai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"
)

const defaultGeminiModel = "gemini-2.5-flash"

// GeminiService implements TextGenerator using the official genai client
type GeminiService struct {
	client      *genai.Client
	getModel    func() string
	temperature float32
	timeout     time.Duration
}

// NewGeminiService creates a Gemini API backed generator. Each call is
// bounded by timeout.
func NewGeminiService(ctx context.Context, apiKey string, getModel func() string, temperature float64, timeout time.Duration) (*GeminiService, error) {
	return newGeminiService(ctx, apiKey, "", getModel, temperature, timeout)
}

// newGeminiService allows overriding the API endpoint; empty keeps the default
func newGeminiService(ctx context.Context, apiKey, baseURL string, getModel func() string, temperature float64, timeout time.Duration) (*GeminiService, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is required for Gemini provider")
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{
			BaseURL: baseURL,
			Timeout: &timeout,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize genai client: %w", err)
	}
	return &GeminiService{
		client:      client,
		getModel:    getModel,
		temperature: float32(temperature),
		timeout:     timeout,
	}, nil
}

// GenerateText implements TextGenerator
func (g *GeminiService) GenerateText(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	model := g.getModel()
	if model == "" {
		model = defaultGeminiModel
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	config := &genai.GenerateContentConfig{
		Temperature:      genai.Ptr(g.temperature),
		ResponseMIMEType: "application/json",
	}
	if systemPrompt != "" {
		config.SystemInstruction = genai.NewContentFromText(systemPrompt, genai.RoleUser)
	}

	resp, err := g.client.Models.GenerateContent(ctx, model,
		[]*genai.Content{genai.NewContentFromText(userPrompt, genai.RoleUser)},
		config,
	)
	if err != nil {
		return "", fmt.Errorf("gemini generation failed: %w", err)
	}

	var out strings.Builder
	if resp != nil {
		for _, candidate := range resp.Candidates {
			if candidate.Content == nil {
				continue
			}
			for _, part := range candidate.Content.Parts {
				out.WriteString(part.Text)
			}
			if out.Len() > 0 {
				break
			}
		}
	}
	if out.Len() == 0 {
		return "", fmt.Errorf("gemini returned no candidates")
	}
	return out.String(), nil
}
