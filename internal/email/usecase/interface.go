package usecase

import (
	"context"

	emaildomain "mailtriage-backend/internal/email/domain"
	"mailtriage-backend/internal/email/repository"
)

// EmailPage is one page of the email listing
type EmailPage struct {
	Emails     []*emaildomain.Email
	Page       int
	Limit      int
	Total      int64
	TotalPages int
}

// EmailUsecase defines the interface for email use cases
type EmailUsecase interface {
	ListEmails(ctx context.Context, q repository.ListQuery) (*EmailPage, error)
	GetEmailByID(ctx context.Context, id string) (*emaildomain.Email, error)
	DeleteEmail(ctx context.Context, id string) error
	// ExportEmails returns the existing emails among ids in request order
	ExportEmails(ctx context.Context, ids []string) ([]*emaildomain.Email, error)
	SummarizeEmails(ctx context.Context, ids []string) ([]emaildomain.SummarizeOutcome, error)
	ResummarizeEmail(ctx context.Context, id string) (*emaildomain.Email, error)
	IngestMock(ctx context.Context) (emaildomain.IngestReport, error)
	IngestMailbox(ctx context.Context) (emaildomain.IngestReport, error)
}
