package delivery

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	emaildomain "mailtriage-backend/internal/email/domain"
	emaildto "mailtriage-backend/internal/email/dto"
	"mailtriage-backend/internal/email/export"
	"mailtriage-backend/internal/email/repository"
	"mailtriage-backend/internal/email/usecase"

	"github.com/gin-gonic/gin"
)

type EmailHandler struct {
	emailUsecase usecase.EmailUsecase
}

func NewEmailHandler(emailUsecase usecase.EmailUsecase) *EmailHandler {
	return &EmailHandler{
		emailUsecase: emailUsecase,
	}
}

// respondError maps use case errors onto status codes
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	message := "Internal server error"
	switch {
	case errors.Is(err, emaildomain.ErrEmailNotFound):
		status, message = http.StatusNotFound, "Not found"
	case errors.Is(err, emaildomain.ErrInvalidInput):
		status, message = http.StatusBadRequest, err.Error()
	case errors.Is(err, emaildomain.ErrProviderCallFailed):
		status, message = http.StatusBadGateway, "Summarization failed"
	case errors.Is(err, emaildomain.ErrSummaryConflict):
		status, message = http.StatusConflict, "Email was summarized concurrently"
	case errors.Is(err, usecase.ErrSourceNotConfigured):
		status, message = http.StatusServiceUnavailable, "Mailbox ingest is not configured"
	default:
		log.Printf("[EmailHandler] %s %s: %v", c.Request.Method, c.FullPath(), err)
	}
	c.JSON(status, emaildto.ErrorResponse{OK: false, Error: message})
}

// ListEmails handles GET /emails
func (h *EmailHandler) ListEmails(c *gin.Context) {
	var q emaildto.ListEmailsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, emaildto.ErrorResponse{OK: false, Error: err.Error()})
		return
	}

	page, err := h.emailUsecase.ListEmails(c.Request.Context(), repository.ListQuery{
		Search:   q.Search,
		Category: q.Category,
		Sort:     q.Sort,
		Page:     q.Page,
		Limit:    q.Limit,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	emails := page.Emails
	if emails == nil {
		emails = []*emaildomain.Email{}
	}
	c.JSON(http.StatusOK, emaildto.EmailsResponse{
		OK:   true,
		Data: emails,
		Pagination: emaildto.Pagination{
			Page:       page.Page,
			Limit:      page.Limit,
			Total:      page.Total,
			TotalPages: page.TotalPages,
		},
	})
}

// GetEmailByID handles GET /emails/:id
func (h *EmailHandler) GetEmailByID(c *gin.Context) {
	email, err := h.emailUsecase.GetEmailByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, emaildto.EmailResponse{OK: true, Data: email})
}

// DeleteEmail handles DELETE /emails/:id
func (h *EmailHandler) DeleteEmail(c *gin.Context) {
	if err := h.emailUsecase.DeleteEmail(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// SummarizeEmails handles POST /emails/summarize
func (h *EmailHandler) SummarizeEmails(c *gin.Context) {
	var req emaildto.IDsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, emaildto.ErrorResponse{OK: false, Error: "ids must be a non-empty array"})
		return
	}

	results, err := h.emailUsecase.SummarizeEmails(c.Request.Context(), req.IDs)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, emaildto.SummarizeResponse{OK: true, Results: results})
}

// ResummarizeEmail handles POST /emails/:id/resummarize
func (h *EmailHandler) ResummarizeEmail(c *gin.Context) {
	email, err := h.emailUsecase.ResummarizeEmail(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, emaildto.EmailResponse{OK: true, Data: email})
}

// IngestMock handles POST /ingest
func (h *EmailHandler) IngestMock(c *gin.Context) {
	report, err := h.emailUsecase.IngestMock(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, emaildto.IngestResponse{OK: true, IngestReport: report})
}

// IngestMailbox handles POST /ingest/imap
func (h *EmailHandler) IngestMailbox(c *gin.Context) {
	report, err := h.emailUsecase.IngestMailbox(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, emaildto.IngestResponse{OK: true, IngestReport: report})
}

// ExportSummaries handles POST /summaries/export
func (h *EmailHandler) ExportSummaries(c *gin.Context) {
	var req emaildto.IDsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, emaildto.ErrorResponse{OK: false, Error: "ids must be a non-empty array"})
		return
	}

	emails, err := h.emailUsecase.ExportEmails(c.Request.Context(), req.IDs)
	if err != nil {
		respondError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := export.WriteCSV(&buf, emails); err != nil {
		respondError(c, err)
		return
	}

	filename := fmt.Sprintf("summaries-%s.csv", time.Now().UTC().Format("20060102-150405"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}
