package ai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"
)

const (
	defaultOpenAIBaseURL = "https://api.openai.com/v1"
	defaultOpenAIModel   = "gpt-4o-mini"
)

// OpenAIService calls any OpenAI-compatible /chat/completions endpoint
// (OpenAI, vLLM, LiteLLM, OpenRouter, ...) in JSON-object response mode.
type OpenAIService struct {
	client      openai.Client
	getModel    func() string
	temperature float64
}

// NewOpenAIService builds an OpenAI-compatible TextGenerator.
// baseURL should include the /v1 prefix, e.g. "http://localhost:8000/v1".
func NewOpenAIService(baseURL, apiKey, model string, temperature float64, timeout time.Duration) *OpenAIService {
	model = strings.TrimSpace(model)
	if model == "" {
		model = defaultOpenAIModel
	}
	return NewOpenAIServiceWithGetter(baseURL, apiKey, func() string { return model }, temperature, timeout)
}

// NewOpenAIServiceWithGetter creates the service with a dynamic model getter
func NewOpenAIServiceWithGetter(baseURL, apiKey string, getModel func() string, temperature float64, timeout time.Duration) *OpenAIService {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = defaultOpenAIBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	opts := []option.RequestOption{
		option.WithBaseURL(baseURL + "/"),
		option.WithRequestTimeout(timeout),
		// failover belongs to FallbackService
		option.WithMaxRetries(0),
	}
	if key := strings.TrimSpace(apiKey); key != "" {
		opts = append(opts, option.WithAPIKey(key))
	}

	return &OpenAIService{
		client:      openai.NewClient(opts...),
		getModel:    getModel,
		temperature: temperature,
	}
}

// GenerateText implements TextGenerator using the chat completions API
func (o *OpenAIService) GenerateText(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	model := o.getModel()
	if model == "" {
		return "", fmt.Errorf("openai generation model required")
	}

	messages := make([]openai.ChatCompletionMessageParamUnion, 0, 2)
	if strings.TrimSpace(systemPrompt) != "" {
		messages = append(messages, openai.SystemMessage(systemPrompt))
	}
	messages = append(messages, openai.UserMessage(userPrompt))

	resp, err := o.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(model),
		Messages:    messages,
		Temperature: openai.Float(o.temperature),
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &shared.ResponseFormatJSONObjectParam{},
		},
	})
	if err != nil {
		return "", fmt.Errorf("openai request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
