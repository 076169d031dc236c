package usecase

import (
	"context"
	"fmt"

	emaildomain "mailtriage-backend/internal/email/domain"
	"mailtriage-backend/internal/email/repository"

	"github.com/go-playground/validator/v10"
)

// emailUsecase implements EmailUsecase
type emailUsecase struct {
	emailRepo  repository.EmailRepository
	summarizer *Summarizer
	ingestor   *Ingestor
	validate   *validator.Validate
}

// NewEmailUsecase creates a new instance of emailUsecase
func NewEmailUsecase(emailRepo repository.EmailRepository, summarizer *Summarizer, ingestor *Ingestor) EmailUsecase {
	return &emailUsecase{
		emailRepo:  emailRepo,
		summarizer: summarizer,
		ingestor:   ingestor,
		validate:   validator.New(),
	}
}

func (u *emailUsecase) ListEmails(ctx context.Context, q repository.ListQuery) (*EmailPage, error) {
	q = q.Normalize()
	emails, total, err := u.emailRepo.List(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to list emails: %w", err)
	}
	totalPages := int((total + int64(q.Limit) - 1) / int64(q.Limit))
	return &EmailPage{
		Emails:     emails,
		Page:       q.Page,
		Limit:      q.Limit,
		Total:      total,
		TotalPages: totalPages,
	}, nil
}

func (u *emailUsecase) GetEmailByID(ctx context.Context, id string) (*emaildomain.Email, error) {
	email, err := u.emailRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get email: %w", err)
	}
	if email == nil {
		return nil, emaildomain.ErrEmailNotFound
	}
	return email, nil
}

func (u *emailUsecase) DeleteEmail(ctx context.Context, id string) error {
	if err := u.emailRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete email: %w", err)
	}
	return nil
}

func (u *emailUsecase) ExportEmails(ctx context.Context, ids []string) ([]*emaildomain.Email, error) {
	if err := ValidateIDs(u.validate, ids); err != nil {
		return nil, err
	}
	ids = dedupe(ids)
	found, err := u.emailRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load emails: %w", err)
	}
	byID := make(map[string]*emaildomain.Email, len(found))
	for _, e := range found {
		byID[e.ID] = e
	}
	out := make([]*emaildomain.Email, 0, len(found))
	for _, id := range ids {
		if e, ok := byID[id]; ok {
			out = append(out, e)
		}
	}
	return out, nil
}

func (u *emailUsecase) SummarizeEmails(ctx context.Context, ids []string) ([]emaildomain.SummarizeOutcome, error) {
	return u.summarizer.SummarizeBatch(ctx, ids)
}

func (u *emailUsecase) ResummarizeEmail(ctx context.Context, id string) (*emaildomain.Email, error) {
	return u.summarizer.SummarizeByID(ctx, id)
}

func (u *emailUsecase) IngestMock(ctx context.Context) (emaildomain.IngestReport, error) {
	return u.ingestor.IngestMock(ctx)
}

func (u *emailUsecase) IngestMailbox(ctx context.Context) (emaildomain.IngestReport, error) {
	return u.ingestor.IngestMailbox(ctx)
}
