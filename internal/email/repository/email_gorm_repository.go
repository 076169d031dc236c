package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	emaildomain "mailtriage-backend/internal/email/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// emailRepository implements EmailRepository using GORM
type emailRepository struct {
	db *gorm.DB
}

// NewEmailRepository creates a new GORM-based EmailRepository
func NewEmailRepository(db *gorm.DB) EmailRepository {
	return &emailRepository{db: db}
}

func (r *emailRepository) FindByID(ctx context.Context, id string) (*emaildomain.Email, error) {
	var email emaildomain.Email
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &email, nil
}

func (r *emailRepository) FindByIDs(ctx context.Context, ids []string) ([]*emaildomain.Email, error) {
	if len(ids) == 0 {
		return []*emaildomain.Email{}, nil
	}
	var emails []*emaildomain.Email
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&emails).Error
	if err != nil {
		return nil, err
	}
	return emails, nil
}

func (r *emailRepository) FindByContentHash(ctx context.Context, hash string) (*emaildomain.Email, error) {
	var email emaildomain.Email
	err := r.db.WithContext(ctx).Where("content_hash = ?", hash).First(&email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &email, nil
}

func (r *emailRepository) Create(ctx context.Context, email *emaildomain.Email) error {
	if email.ID == "" {
		email.ID = uuid.New().String()
	}
	now := time.Now()
	if email.CreatedAt.IsZero() {
		email.CreatedAt = now
	}
	if email.UpdatedAt.IsZero() {
		email.UpdatedAt = email.CreatedAt
	}
	if email.Category == "" {
		email.Category = emaildomain.CategoryGeneral
	}
	if email.Keywords == nil {
		email.Keywords = emaildomain.StringArray{}
	}
	if err := r.db.WithContext(ctx).Create(email).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return emaildomain.ErrDuplicateContent
		}
		return err
	}
	return nil
}

func (r *emailRepository) ApplySummary(ctx context.Context, id string, update emaildomain.SummaryUpdate) error {
	res := r.db.WithContext(ctx).Model(&emaildomain.Email{}).
		Where("id = ? AND summary_count = ?", id, update.SummaryCount-1).
		Updates(update.Columns())
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		return nil
	}

	var n int64
	if err := r.db.WithContext(ctx).Model(&emaildomain.Email{}).Where("id = ?", id).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return emaildomain.ErrEmailNotFound
	}
	return emaildomain.ErrSummaryConflict
}

func (r *emailRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&emaildomain.Email{}, "id = ?", id).Error
}

func (r *emailRepository) List(ctx context.Context, q ListQuery) ([]*emaildomain.Email, int64, error) {
	q = q.Normalize()

	query := r.db.WithContext(ctx).Model(&emaildomain.Email{})

	if q.Category != "" {
		query = query.Where("category = ?", q.Category)
	}

	if search := strings.TrimSpace(q.Search); search != "" {
		pattern := "%" + escapeLike(strings.ToLower(search)) + "%"
		query = query.Where(
			"LOWER(sender) LIKE ? ESCAPE '\\' OR LOWER(subject) LIKE ? ESCAPE '\\' OR LOWER(body) LIKE ? ESCAPE '\\' OR LOWER(COALESCE(summary, '')) LIKE ? ESCAPE '\\'",
			pattern, pattern, pattern, pattern,
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var emails []*emaildomain.Email
	err := query.Order(orderClause(q.Sort)).
		Limit(q.Limit).
		Offset(q.Offset()).
		Find(&emails).Error
	if err != nil {
		return nil, 0, err
	}

	return emails, total, nil
}

func orderClause(sort string) string {
	switch sort {
	case SortOldest:
		return "created_at ASC, id ASC"
	case SortMostSummarized:
		return "summary_count DESC, created_at DESC, id ASC"
	default:
		return "created_at DESC, id ASC"
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
