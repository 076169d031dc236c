package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"PORT", "DATABASE_URL", "AI_PROVIDER", "AI_TIMEOUT", "AI_TEMPERATURE",
		"SUMMARIZE_CONCURRENCY", "RATE_LIMIT_PER_MINUTE", "IMAP_MAILBOX", "IMAP_FETCH_LIMIT",
		"OPENAI_MODEL", "GEMINI_MODEL", "REDIS_ADDR", "IMAP_ADDR", "IMAP_POLL_INTERVAL",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "auto", cfg.AIProvider)
	assert.Equal(t, 60*time.Second, cfg.AITimeout)
	assert.InDelta(t, 0.2, cfg.AITemperature, 1e-9)
	assert.Equal(t, 4, cfg.SummarizeConcurrency)
	assert.Equal(t, 30, cfg.RateLimitPerMinute)
	assert.Equal(t, "INBOX", cfg.IMAPMailbox)
	assert.Equal(t, 20, cfg.IMAPFetchLimit)
	assert.Equal(t, "gpt-4o-mini", cfg.OpenAIModel)
	assert.Equal(t, "gemini-2.5-flash", cfg.GeminiModel)
	assert.Empty(t, cfg.RedisAddr)
	assert.Empty(t, cfg.IMAPAddr)
	assert.Zero(t, cfg.IMAPPollInterval)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("AI_PROVIDER", "Claude")
	t.Setenv("AI_TIMEOUT", "15s")
	t.Setenv("AI_TEMPERATURE", "0.7")
	t.Setenv("SUMMARIZE_CONCURRENCY", "8")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "not-a-number")

	cfg := Load()
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "claude", cfg.AIProvider)
	assert.Equal(t, 15*time.Second, cfg.AITimeout)
	assert.InDelta(t, 0.7, cfg.AITemperature, 1e-9)
	assert.Equal(t, 8, cfg.SummarizeConcurrency)
	assert.Equal(t, 30, cfg.RateLimitPerMinute)
}

func TestDSN(t *testing.T) {
	cfg := &Config{DatabaseURL: "postgres://u:p@db:5432/mail"}
	assert.Equal(t, "postgres://u:p@db:5432/mail", cfg.DSN())

	cfg = &Config{DBHost: "db", DBPort: "5433", DBUser: "u", DBPassword: "p", DBName: "mail", DBSSLMode: "disable"}
	assert.Equal(t, "host=db port=5433 user=u password=p dbname=mail sslmode=disable", cfg.DSN())
}
