package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"

	emaildomain "mailtriage-backend/internal/email/domain"
	"mailtriage-backend/internal/email/repository"
	"mailtriage-backend/internal/email/seed"
	"mailtriage-backend/pkg/fingerprint"
)

// ErrSourceNotConfigured is returned when an optional candidate source is unset
var ErrSourceNotConfigured = errors.New("candidate source not configured")

// CandidateSource yields emails offered for ingestion (e.g. an IMAP mailbox)
type CandidateSource interface {
	FetchCandidates(ctx context.Context) ([]emaildomain.Candidate, error)
}

// Ingestor inserts candidates that are not stored yet, keyed by content hash
type Ingestor struct {
	repo    repository.EmailRepository
	mailbox CandidateSource
}

// NewIngestor creates a new Ingestor. mailbox may be nil.
func NewIngestor(repo repository.EmailRepository, mailbox CandidateSource) *Ingestor {
	return &Ingestor{repo: repo, mailbox: mailbox}
}

// Ingest stores each candidate whose fingerprint is unknown and skips the
// rest. Candidates are processed in order, so a repeat inside one call is
// skipped as well. Inserted + Skipped always equals Total.
func (i *Ingestor) Ingest(ctx context.Context, candidates []emaildomain.Candidate) (emaildomain.IngestReport, error) {
	report := emaildomain.IngestReport{Total: len(candidates)}

	for _, c := range candidates {
		hash := fingerprint.Compute(c.Sender, c.Subject, c.Body)

		existing, err := i.repo.FindByContentHash(ctx, hash)
		if err != nil {
			return report, fmt.Errorf("failed to check content hash: %w", err)
		}
		if existing != nil {
			report.Skipped++
			continue
		}

		email := &emaildomain.Email{
			Sender:      c.Sender,
			Subject:     c.Subject,
			Body:        c.Body,
			ContentHash: hash,
			Category:    emaildomain.CategoryGeneral,
			Keywords:    emaildomain.StringArray{},
		}
		if err := i.repo.Create(ctx, email); err != nil {
			// stored by a concurrent run since the lookup
			if errors.Is(err, emaildomain.ErrDuplicateContent) {
				report.Skipped++
				continue
			}
			return report, fmt.Errorf("failed to insert email: %w", err)
		}
		report.Inserted++
	}

	log.Printf("[Ingest] inserted=%d skipped=%d total=%d", report.Inserted, report.Skipped, report.Total)
	return report, nil
}

// IngestMock ingests the bundled sample emails
func (i *Ingestor) IngestMock(ctx context.Context) (emaildomain.IngestReport, error) {
	candidates, err := seed.Candidates()
	if err != nil {
		return emaildomain.IngestReport{}, err
	}
	return i.Ingest(ctx, candidates)
}

// IngestMailbox ingests the latest messages of the configured mailbox
func (i *Ingestor) IngestMailbox(ctx context.Context) (emaildomain.IngestReport, error) {
	if i.mailbox == nil {
		return emaildomain.IngestReport{}, ErrSourceNotConfigured
	}
	candidates, err := i.mailbox.FetchCandidates(ctx)
	if err != nil {
		return emaildomain.IngestReport{}, fmt.Errorf("failed to fetch mailbox: %w", err)
	}
	return i.Ingest(ctx, candidates)
}
