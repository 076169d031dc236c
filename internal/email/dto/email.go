package dto

import (
	emaildomain "mailtriage-backend/internal/email/domain"
)

// ListEmailsQuery binds the query string of GET /emails
type ListEmailsQuery struct {
	Search   string `form:"search"`
	Category string `form:"category"`
	Sort     string `form:"sort"`
	Page     int    `form:"page"`
	Limit    int    `form:"limit"`
}

// IDsRequest is the body of the summarize and export endpoints.
// Element validation happens in the use case so both share one message.
type IDsRequest struct {
	IDs []string `json:"ids" binding:"required"`
}

type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

type EmailsResponse struct {
	OK         bool                 `json:"ok"`
	Data       []*emaildomain.Email `json:"data"`
	Pagination Pagination           `json:"pagination"`
}

type EmailResponse struct {
	OK   bool               `json:"ok"`
	Data *emaildomain.Email `json:"data"`
}

type SummarizeResponse struct {
	OK      bool                           `json:"ok"`
	Results []emaildomain.SummarizeOutcome `json:"results"`
}

type IngestResponse struct {
	OK bool `json:"ok"`
	emaildomain.IngestReport
}

type ErrorResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}
