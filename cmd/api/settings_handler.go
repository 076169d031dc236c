package api

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"mailtriage-backend/pkg/ai"

	"github.com/gin-gonic/gin"
)

// RuntimeConfig holds runtime-configurable AI settings
type RuntimeConfig struct {
	Provider      string `json:"provider"`
	OpenAIModel   string `json:"openai_model"`
	GeminiModel   string `json:"gemini_model"`
	ClaudeModel   string `json:"claude_model"`
	OllamaBaseURL string `json:"ollama_base_url"`
	OllamaModel   string `json:"ollama_model"`
}

var (
	runtimeConfig     RuntimeConfig
	runtimeConfigLock sync.RWMutex
)

// InitRuntimeConfig initializes runtime config from static config
func InitRuntimeConfig(cfg RuntimeConfig) {
	if cfg.OllamaBaseURL == "" {
		cfg.OllamaBaseURL = "http://localhost:11434"
	}
	runtimeConfigLock.Lock()
	defer runtimeConfigLock.Unlock()
	runtimeConfig = cfg
}

func runtimeValue(pick func(RuntimeConfig) string) func() string {
	return func() string {
		runtimeConfigLock.RLock()
		defer runtimeConfigLock.RUnlock()
		return pick(runtimeConfig)
	}
}

// Dynamic getters handed to the AI factory
var (
	GetRuntimeOpenAIModel   = runtimeValue(func(c RuntimeConfig) string { return c.OpenAIModel })
	GetRuntimeGeminiModel   = runtimeValue(func(c RuntimeConfig) string { return c.GeminiModel })
	GetRuntimeClaudeModel   = runtimeValue(func(c RuntimeConfig) string { return c.ClaudeModel })
	GetRuntimeOllamaModel   = runtimeValue(func(c RuntimeConfig) string { return c.OllamaModel })
	GetRuntimeOllamaBaseURL = runtimeValue(func(c RuntimeConfig) string { return c.OllamaBaseURL })
)

// RuntimeDynamicConfig wires the runtime getters into the AI factory
func RuntimeDynamicConfig() ai.DynamicConfig {
	return ai.DynamicConfig{
		GetOpenAIModel:   GetRuntimeOpenAIModel,
		GetGeminiModel:   GetRuntimeGeminiModel,
		GetClaudeModel:   GetRuntimeClaudeModel,
		GetOllamaModel:   GetRuntimeOllamaModel,
		GetOllamaBaseURL: GetRuntimeOllamaBaseURL,
	}
}

// UpdateAISettingsRequest represents the request body for updating AI settings.
// Empty fields are left unchanged; the provider itself is fixed at startup.
type UpdateAISettingsRequest struct {
	OpenAIModel   string `json:"openai_model"`
	GeminiModel   string `json:"gemini_model"`
	ClaudeModel   string `json:"claude_model"`
	OllamaBaseURL string `json:"ollama_base_url" binding:"omitempty,url"`
	OllamaModel   string `json:"ollama_model"`
}

// GetAISettings returns current AI configuration
// GET /api/settings/ai
func GetAISettings(c *gin.Context) {
	runtimeConfigLock.RLock()
	current := runtimeConfig
	runtimeConfigLock.RUnlock()

	c.JSON(http.StatusOK, gin.H{"ok": true, "data": current})
}

// UpdateAISettings updates model names at runtime
// PUT /api/settings/ai
func UpdateAISettings(c *gin.Context) {
	var req UpdateAISettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
		return
	}

	runtimeConfigLock.Lock()
	setIfPresent(&runtimeConfig.OpenAIModel, req.OpenAIModel)
	setIfPresent(&runtimeConfig.GeminiModel, req.GeminiModel)
	setIfPresent(&runtimeConfig.ClaudeModel, req.ClaudeModel)
	setIfPresent(&runtimeConfig.OllamaModel, req.OllamaModel)
	setIfPresent(&runtimeConfig.OllamaBaseURL, strings.TrimRight(req.OllamaBaseURL, "/"))
	current := runtimeConfig
	runtimeConfigLock.Unlock()

	c.JSON(http.StatusOK, gin.H{"ok": true, "data": current})
}

func setIfPresent(dst *string, value string) {
	if value = strings.TrimSpace(value); value != "" {
		*dst = value
	}
}

// TestOllamaConnection tests if the configured Ollama server is reachable.
// The request body is ignored; only the runtime base URL is ever contacted.
// POST /api/settings/ai/ollama/test
func TestOllamaConnection(c *gin.Context) {
	baseURL := GetRuntimeOllamaBaseURL()

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	svc := ai.NewOllamaService(baseURL, "", 0, 5*time.Second)
	if err := svc.Ping(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"ok":        false,
			"connected": false,
			"error":     err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":              true,
		"connected":       true,
		"ollama_base_url": baseURL,
	})
}
