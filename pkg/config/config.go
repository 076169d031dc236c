package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string

	// Database
	DatabaseURL string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string
	DBSSLMode   string

	// AI provider
	AIProvider    string
	AITimeout     time.Duration
	AITemperature float64
	OpenAIAPIKey  string
	OpenAIBaseURL string
	OpenAIModel   string
	GeminiAPIKey  string
	GeminiModel   string
	AnthropicKey  string
	ClaudeModel   string
	OllamaBaseURL string
	OllamaModel   string

	SummarizeConcurrency int

	// Rate limiting (disabled when RedisAddr is empty)
	RedisAddr          string
	RedisPassword      string
	RateLimitPerMinute int

	// IMAP ingest source (disabled when IMAPAddr is empty)
	IMAPAddr       string
	IMAPUsername   string
	IMAPPassword   string
	IMAPMailbox    string
	IMAPFetchLimit int

	// Background mailbox polling, disabled when zero
	IMAPPollInterval time.Duration
}

func Load() *Config {
	// Load .env file if it exists
	_ = godotenv.Load()

	return &Config{
		Port: getEnv("PORT", "8080"),

		DatabaseURL: getEnv("DATABASE_URL", ""),
		DBHost:      getEnv("DB_HOST", "localhost"),
		DBPort:      getEnv("DB_PORT", "5432"),
		DBUser:      getEnv("DB_USER", "postgres"),
		DBPassword:  getEnv("DB_PASSWORD", "postgres"),
		DBName:      getEnv("DB_NAME", "mailtriage"),
		DBSSLMode:   getEnv("DB_SSLMODE", "disable"),

		AIProvider:    strings.ToLower(getEnv("AI_PROVIDER", "auto")),
		AITimeout:     getDuration("AI_TIMEOUT", 60*time.Second),
		AITemperature: getFloat("AI_TEMPERATURE", 0.2),
		OpenAIAPIKey:  getEnv("OPENAI_API_KEY", ""),
		OpenAIBaseURL: getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		OpenAIModel:   getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		GeminiAPIKey:  getEnv("GEMINI_API_KEY", ""),
		GeminiModel:   getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		AnthropicKey:  getEnv("ANTHROPIC_API_KEY", ""),
		ClaudeModel:   getEnv("CLAUDE_MODEL", "claude-3-5-haiku-latest"),
		OllamaBaseURL: getEnv("OLLAMA_BASE_URL", ""),
		OllamaModel:   getEnv("OLLAMA_MODEL", "llama3"),

		SummarizeConcurrency: getInt("SUMMARIZE_CONCURRENCY", 4),

		RedisAddr:          getEnv("REDIS_ADDR", ""),
		RedisPassword:      getEnv("REDIS_PASSWORD", ""),
		RateLimitPerMinute: getInt("RATE_LIMIT_PER_MINUTE", 30),

		IMAPAddr:       getEnv("IMAP_ADDR", ""),
		IMAPUsername:   getEnv("IMAP_USERNAME", ""),
		IMAPPassword:   getEnv("IMAP_PASSWORD", ""),
		IMAPMailbox:    getEnv("IMAP_MAILBOX", "INBOX"),
		IMAPFetchLimit: getInt("IMAP_FETCH_LIMIT", 20),

		IMAPPollInterval: getDuration("IMAP_POLL_INTERVAL", 0),
	}
}

// DSN returns DATABASE_URL, or a key/value DSN built from the DB_* settings
func (c *Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed <= 0 {
		log.Printf("[Config] Invalid %s=%q, using %d", key, value, defaultValue)
		return defaultValue
	}
	return parsed
}

func getFloat(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil || parsed < 0 {
		log.Printf("[Config] Invalid %s=%q, using %v", key, value, defaultValue)
		return defaultValue
	}
	return parsed
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if parsed, err := time.ParseDuration(value); err == nil && parsed > 0 {
		return parsed
	}
	log.Printf("[Config] Invalid %s=%q, using %s", key, value, defaultValue)
	return defaultValue
}
