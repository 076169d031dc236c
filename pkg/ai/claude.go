package ai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const (
	defaultClaudeModel     = "claude-3-5-haiku-latest"
	defaultClaudeMaxTokens = 1024
)

// ClaudeService implements TextGenerator using the Anthropic Messages API.
// Claude has no JSON response mode, so the system prompt carries the
// JSON-only instruction and the response parser tolerates stray prose.
type ClaudeService struct {
	client      anthropic.Client
	getModel    func() string
	temperature float64
	timeout     time.Duration
}

// NewClaudeService creates a Claude backed generator. Each call is bounded
// by timeout and never retried by the SDK.
func NewClaudeService(apiKey string, getModel func() string, temperature float64, timeout time.Duration) (*ClaudeService, error) {
	return newClaudeService(apiKey, getModel, temperature, timeout)
}

func newClaudeService(apiKey string, getModel func() string, temperature float64, timeout time.Duration, extra ...option.RequestOption) (*ClaudeService, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("ANTHROPIC_API_KEY is required for Claude provider")
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	opts := append([]option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithRequestTimeout(timeout),
		// failover belongs to FallbackService
		option.WithMaxRetries(0),
	}, extra...)
	return &ClaudeService{
		client:      anthropic.NewClient(opts...),
		getModel:    getModel,
		temperature: temperature,
		timeout:     timeout,
	}, nil
}

// GenerateText implements TextGenerator
func (c *ClaudeService) GenerateText(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	model := c.getModel()
	if model == "" {
		model = defaultClaudeModel
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(model),
		MaxTokens: defaultClaudeMaxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(userPrompt)),
		},
		Temperature: anthropic.Float(c.temperature),
	}
	if systemPrompt != "" {
		params.System = []anthropic.TextBlockParam{{Text: systemPrompt}}
	}

	resp, err := c.client.Messages.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("claude API call failed: %w", err)
	}

	var out strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			out.WriteString(block.Text)
		}
	}
	if out.Len() == 0 {
		return "", fmt.Errorf("claude returned no text content")
	}
	return out.String(), nil
}
