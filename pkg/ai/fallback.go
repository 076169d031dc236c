package ai

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"strings"
)

// NamedGenerator pairs a provider with the name used in logs
type NamedGenerator struct {
	Name      string
	Generator TextGenerator
}

// FallbackService tries each provider in order and returns the first success.
// Context cancellation stops the chain immediately.
type FallbackService struct {
	providers []NamedGenerator
}

// NewFallbackService creates a new fallback service over the given providers
func NewFallbackService(providers ...NamedGenerator) *FallbackService {
	filtered := make([]NamedGenerator, 0, len(providers))
	for _, p := range providers {
		if p.Generator != nil {
			filtered = append(filtered, p)
		}
	}
	return &FallbackService{providers: filtered}
}

// Providers returns the provider names in try order
func (f *FallbackService) Providers() []string {
	names := make([]string, 0, len(f.providers))
	for _, p := range f.providers {
		names = append(names, p.Name)
	}
	return names
}

// isConnectionError checks if the error is a network/connection error
func isConnectionError(err error) bool {
	if err == nil {
		return false
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	errStr := strings.ToLower(err.Error())
	connectionIndicators := []string{
		"connection refused",
		"no such host",
		"network is unreachable",
		"connection reset",
		"timeout",
		"dial tcp",
		"eof",
	}
	for _, indicator := range connectionIndicators {
		if strings.Contains(errStr, indicator) {
			return true
		}
	}
	return false
}

// isQuotaError checks if the error indicates API quota exhaustion (429)
func isQuotaError(err error) bool {
	if err == nil {
		return false
	}

	errStr := strings.ToLower(err.Error())
	quotaIndicators := []string{
		"429",
		"quota",
		"rate limit",
		"too many requests",
		"resource exhausted",
		"resource_exhausted",
	}
	for _, indicator := range quotaIndicators {
		if strings.Contains(errStr, indicator) {
			return true
		}
	}
	return false
}

// GenerateText implements TextGenerator
func (f *FallbackService) GenerateText(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	if len(f.providers) == 0 {
		return "", fmt.Errorf("no AI provider available")
	}

	var lastErr error
	for i, p := range f.providers {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		result, err := p.Generator.GenerateText(ctx, systemPrompt, userPrompt)
		if err == nil {
			if i > 0 {
				log.Printf("[AI] %s generation successful after fallback", p.Name)
			}
			return result, nil
		}
		lastErr = fmt.Errorf("%s: %w", p.Name, err)

		switch {
		case isQuotaError(err):
			log.Printf("[AI] %s quota exhausted: %v", p.Name, err)
		case isConnectionError(err):
			log.Printf("[AI] %s connection failed: %v", p.Name, err)
		default:
			log.Printf("[AI] %s error: %v", p.Name, err)
		}
	}

	return "", fmt.Errorf("all AI providers failed: %w", lastErr)
}
