package api

import (
	"context"
	"fmt"
	"log"
	"time"

	emailRepo "mailtriage-backend/internal/email/repository"
	"mailtriage-backend/internal/email/scheduler"
	emailUsecasePkg "mailtriage-backend/internal/email/usecase"
	"mailtriage-backend/pkg/ai"
	"mailtriage-backend/pkg/config"
	"mailtriage-backend/pkg/imap"
	"mailtriage-backend/pkg/ratelimit"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Handler struct {
	emailUsecase emailUsecasePkg.EmailUsecase
	limiter      *ratelimit.FixedWindowLimiter
	poller       *scheduler.MailboxPoller
}

func NewHandler(ctx context.Context, db *gorm.DB, cfg *config.Config) (*Handler, error) {
	// Initialize runtime config for settings API
	InitRuntimeConfig(RuntimeConfig{
		Provider:      cfg.AIProvider,
		OpenAIModel:   cfg.OpenAIModel,
		GeminiModel:   cfg.GeminiModel,
		ClaudeModel:   cfg.ClaudeModel,
		OllamaBaseURL: cfg.OllamaBaseURL,
		OllamaModel:   cfg.OllamaModel,
	})

	// Initialize AI service with dynamic config getters for runtime updates
	aiCfg := ai.Config{
		Provider:        ai.ProviderType(cfg.AIProvider),
		Temperature:     cfg.AITemperature,
		Timeout:         cfg.AITimeout,
		OpenAIAPIKey:    cfg.OpenAIAPIKey,
		OpenAIBaseURL:   cfg.OpenAIBaseURL,
		OpenAIModel:     cfg.OpenAIModel,
		GeminiAPIKey:    cfg.GeminiAPIKey,
		GeminiModel:     cfg.GeminiModel,
		AnthropicAPIKey: cfg.AnthropicKey,
		ClaudeModel:     cfg.ClaudeModel,
		OllamaBaseURL:   cfg.OllamaBaseURL,
		OllamaModel:     cfg.OllamaModel,
	}
	generator, err := ai.NewTextGenerator(ctx, aiCfg, RuntimeDynamicConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to initialize AI service: %w", err)
	}
	log.Printf("AI service initialized with provider: %s (dynamic config enabled)", cfg.AIProvider)

	// Optional IMAP source
	var mailbox emailUsecasePkg.CandidateSource
	imapCfg := imap.Config{
		Addr:       cfg.IMAPAddr,
		Username:   cfg.IMAPUsername,
		Password:   cfg.IMAPPassword,
		Mailbox:    cfg.IMAPMailbox,
		FetchLimit: cfg.IMAPFetchLimit,
	}
	if imapCfg.IsConfigured() {
		mailbox = imap.NewService(imapCfg)
		log.Printf("IMAP ingest enabled for %s/%s", cfg.IMAPAddr, cfg.IMAPMailbox)
	} else {
		log.Println("Warning: IMAP_ADDR not set. Mailbox ingest will not be available.")
	}

	// Optional Redis rate limiter for summarize endpoints
	var limiter *ratelimit.FixedWindowLimiter
	if cfg.RedisAddr != "" {
		limiter, err = ratelimit.NewRedisFixedWindowLimiter(cfg.RedisAddr, cfg.RedisPassword, "", cfg.RateLimitPerMinute, time.Minute)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize rate limiter: %w", err)
		}
		if err := limiter.Ping(ctx); err != nil {
			log.Printf("Warning: Redis not reachable at %s: %v", cfg.RedisAddr, err)
		}
	} else {
		log.Println("Warning: REDIS_ADDR not set. Summarize endpoints are not rate limited.")
	}

	// Initialize repositories and use cases (dependency injection)
	emailRepository := emailRepo.NewEmailRepository(db)
	summarizer := emailUsecasePkg.NewSummarizer(emailRepository, generator,
		emailUsecasePkg.WithConcurrency(cfg.SummarizeConcurrency))
	ingestor := emailUsecasePkg.NewIngestor(emailRepository, mailbox)
	emailUc := emailUsecasePkg.NewEmailUsecase(emailRepository, summarizer, ingestor)

	var poller *scheduler.MailboxPoller
	if mailbox != nil {
		poller = scheduler.NewMailboxPoller(emailUc, cfg.IMAPPollInterval, cfg.AITimeout)
	}

	return &Handler{
		emailUsecase: emailUc,
		limiter:      limiter,
		poller:       poller,
	}, nil
}

// Engine builds the gin engine with middleware and routes
func (h *Handler) Engine() *gin.Engine {
	r := gin.Default()

	// CORS middleware
	r.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		} else {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	SetupRoutes(r, h.emailUsecase, h.limiter)
	return r
}

func (h *Handler) Start(addr string) error {
	if h.poller != nil {
		h.poller.Start()
	}
	return h.Engine().Run(addr)
}

// Close stops background work and releases connections held by the handler
func (h *Handler) Close() error {
	if h.poller != nil {
		h.poller.Stop()
	}
	if h.limiter != nil {
		return h.limiter.Close()
	}
	return nil
}
