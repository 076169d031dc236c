package api

import (
	"net/http"

	emailDelivery "mailtriage-backend/internal/email/delivery"
	emailUsecase "mailtriage-backend/internal/email/usecase"
	"mailtriage-backend/pkg/ratelimit"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, emailUsecase emailUsecase.EmailUsecase, limiter *ratelimit.FixedWindowLimiter) {
	emailHandler := emailDelivery.NewEmailHandler(emailUsecase)
	summarizeLimit := ratelimit.Middleware(limiter)

	api := r.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		emails := api.Group("/emails")
		{
			emails.GET("", emailHandler.ListEmails)
			emails.GET("/:id", emailHandler.GetEmailByID)
			emails.DELETE("/:id", emailHandler.DeleteEmail)
			emails.POST("/summarize", summarizeLimit, emailHandler.SummarizeEmails)
			emails.POST("/:id/resummarize", summarizeLimit, emailHandler.ResummarizeEmail)
		}

		api.POST("/ingest", emailHandler.IngestMock)
		api.POST("/ingest/imap", emailHandler.IngestMailbox)
		api.POST("/summaries/export", emailHandler.ExportSummaries)

		// Settings routes - Runtime configuration
		settings := api.Group("/settings")
		{
			settings.GET("/ai", GetAISettings)
			settings.PUT("/ai", UpdateAISettings)
			settings.POST("/ai/ollama/test", TestOllamaConnection)
		}
	}
}
