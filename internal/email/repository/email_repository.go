package repository

import (
	"context"

	emaildomain "mailtriage-backend/internal/email/domain"
)

// Sort keys accepted by List
const (
	SortNewest         = "newest"
	SortOldest         = "oldest"
	SortMostSummarized = "most-summarized"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// ListQuery filters, orders and pages the email listing
type ListQuery struct {
	Search   string
	Category string
	Sort     string
	Page     int
	Limit    int
}

// Normalize clamps paging values and resolves defaults
func (q ListQuery) Normalize() ListQuery {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = DefaultPageSize
	}
	if q.Limit > MaxPageSize {
		q.Limit = MaxPageSize
	}
	switch q.Sort {
	case SortOldest, SortMostSummarized:
	case "count":
		q.Sort = SortMostSummarized
	default:
		q.Sort = SortNewest
	}
	if q.Category == "All" {
		q.Category = ""
	}
	return q
}

// Offset returns the row offset for the current page
func (q ListQuery) Offset() int {
	return (q.Page - 1) * q.Limit
}

// EmailRepository defines the interface for email storage
type EmailRepository interface {
	// FindByID returns nil, nil when no email has the id
	FindByID(ctx context.Context, id string) (*emaildomain.Email, error)
	// FindByIDs returns the emails that exist among ids, in no particular order
	FindByIDs(ctx context.Context, ids []string) ([]*emaildomain.Email, error)
	// FindByContentHash returns nil, nil when no email has the hash
	FindByContentHash(ctx context.Context, hash string) (*emaildomain.Email, error)
	// Create inserts a new email, assigning ID and timestamps when unset.
	// A content hash that is already stored yields ErrDuplicateContent.
	Create(ctx context.Context, email *emaildomain.Email) error
	// ApplySummary persists a summarization result for one email. It returns
	// ErrSummaryConflict when the stored count moved since the email was read.
	ApplySummary(ctx context.Context, id string, update emaildomain.SummaryUpdate) error
	// Delete removes an email by id
	Delete(ctx context.Context, id string) error
	// List returns one page of emails and the total number of matches
	List(ctx context.Context, q ListQuery) ([]*emaildomain.Email, int64, error)
}
