package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	emaildomain "mailtriage-backend/internal/email/domain"
	"mailtriage-backend/internal/email/parser"
	"mailtriage-backend/internal/email/prompt"
	"mailtriage-backend/internal/email/repository"
	"mailtriage-backend/pkg/ai"

	"github.com/go-playground/validator/v10"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency bounds the provider calls in flight for one batch
const DefaultConcurrency = 4

// Summarizer runs first-pass and repeat summarization against the
// text-generation provider and persists the result per email.
type Summarizer struct {
	repo        repository.EmailRepository
	generator   ai.TextGenerator
	validate    *validator.Validate
	now         func() time.Time
	concurrency int
}

// SummarizerOption customizes a Summarizer
type SummarizerOption func(*Summarizer)

// WithClock replaces time.Now, mostly for tests
func WithClock(now func() time.Time) SummarizerOption {
	return func(s *Summarizer) { s.now = now }
}

// WithConcurrency sets how many emails of a batch are summarized at once
func WithConcurrency(n int) SummarizerOption {
	return func(s *Summarizer) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

// NewSummarizer creates a new Summarizer
func NewSummarizer(repo repository.EmailRepository, generator ai.TextGenerator, opts ...SummarizerOption) *Summarizer {
	s := &Summarizer{
		repo:        repo,
		generator:   generator,
		validate:    validator.New(),
		now:         time.Now,
		concurrency: DefaultConcurrency,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SummarizeOne summarizes a loaded email, persists the outcome and returns
// the update that was written. A never-summarized email gets summary,
// category and keywords; a summarized one only gets a fresh summary.
// Nothing is written when the provider call fails.
func (s *Summarizer) SummarizeOne(ctx context.Context, email *emaildomain.Email) (*emaildomain.SummaryUpdate, error) {
	var payload prompt.Payload
	if email.State() == emaildomain.StateNeverSummarized {
		payload = prompt.FirstPass(email)
	} else {
		payload = prompt.Repeat(email)
	}

	raw, err := s.generator.GenerateText(ctx, payload.System, payload.User)
	if err != nil {
		return nil, &emaildomain.SummarizeError{
			EmailID: email.ID,
			Err:     fmt.Errorf("%w: %v", emaildomain.ErrProviderCallFailed, err),
		}
	}

	now := s.now()
	update := emaildomain.SummaryUpdate{
		SummaryCount:     email.SummaryCount + 1,
		LastSummarizedAt: now,
		UpdatedAt:        now,
	}
	if email.State() == emaildomain.StateNeverSummarized {
		result := parser.ParseFirstPass(raw)
		category := result.Category
		update.Summary = result.Summary
		update.Category = &category
		update.Keywords = result.Keywords
	} else {
		update.Summary = parser.ParseRepeat(raw).Summary
	}

	if err := s.repo.ApplySummary(ctx, email.ID, update); err != nil {
		return nil, &emaildomain.SummarizeError{
			EmailID: email.ID,
			Err:     fmt.Errorf("failed to save summary: %w", err),
		}
	}

	update.Apply(email)
	return &update, nil
}

// SummarizeByID loads one email and summarizes it. ErrEmailNotFound is
// returned when the id does not exist.
func (s *Summarizer) SummarizeByID(ctx context.Context, id string) (*emaildomain.Email, error) {
	if err := s.validate.Var(id, "required,uuid"); err != nil {
		return nil, emaildomain.ErrEmailNotFound
	}
	email, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load email: %w", err)
	}
	if email == nil {
		return nil, emaildomain.ErrEmailNotFound
	}
	if _, err := s.SummarizeOne(ctx, email); err != nil {
		return nil, err
	}
	return email, nil
}

// SummarizeBatch summarizes every existing email among ids. Ids that do not
// exist are left out of the result. One failing email never affects the
// others; results follow the order of ids with duplicates removed.
func (s *Summarizer) SummarizeBatch(ctx context.Context, ids []string) ([]emaildomain.SummarizeOutcome, error) {
	if err := ValidateIDs(s.validate, ids); err != nil {
		return nil, err
	}
	ids = dedupe(ids)

	found, err := s.repo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load emails: %w", err)
	}
	byID := make(map[string]*emaildomain.Email, len(found))
	for _, e := range found {
		byID[e.ID] = e
	}

	ordered := make([]*emaildomain.Email, 0, len(found))
	for _, id := range ids {
		if e, ok := byID[id]; ok {
			ordered = append(ordered, e)
		}
	}

	results := make([]emaildomain.SummarizeOutcome, len(ordered))
	g := new(errgroup.Group)
	g.SetLimit(s.concurrency)
	for i, email := range ordered {
		g.Go(func() error {
			results[i] = emaildomain.SummarizeOutcome{ID: email.ID, OK: true}
			if _, err := s.SummarizeOne(ctx, email); err != nil {
				log.Printf("[Summarizer] Email %s failed: %v", email.ID, err)
				results[i] = emaildomain.SummarizeOutcome{ID: email.ID, OK: false, Error: outcomeMessage(err)}
			}
			return nil
		})
	}
	_ = g.Wait()

	return results, nil
}

// ValidateIDs checks that ids is a non-empty list of UUIDs
func ValidateIDs(v *validator.Validate, ids []string) error {
	if err := v.Var(ids, "required,min=1,dive,uuid"); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return fmt.Errorf("%w: ids %s", emaildomain.ErrInvalidInput, describe(verrs[0]))
		}
		return fmt.Errorf("%w: %v", emaildomain.ErrInvalidInput, err)
	}
	return nil
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "min":
		return "must be a non-empty array"
	case "uuid":
		return fmt.Sprintf("must contain only UUIDs, got %q", fmt.Sprint(fe.Value()))
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}

func outcomeMessage(err error) string {
	switch {
	case errors.Is(err, emaildomain.ErrProviderCallFailed):
		return emaildomain.ErrProviderCallFailed.Error()
	case errors.Is(err, emaildomain.ErrSummaryConflict):
		return emaildomain.ErrSummaryConflict.Error()
	default:
		return "failed to save summary"
	}
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
