package usecase

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	emaildomain "mailtriage-backend/internal/email/domain"
	"mailtriage-backend/internal/email/repository"

	"github.com/google/uuid"
)

// memoryRepo is an in-memory EmailRepository for use case tests
type memoryRepo struct {
	mu          sync.Mutex
	emails      map[string]*emaildomain.Email
	failApplyID string
	findByIDs   int
	applied     int
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{emails: map[string]*emaildomain.Email{}}
}

func (r *memoryRepo) clone(e *emaildomain.Email) *emaildomain.Email {
	c := *e
	c.Keywords = append(emaildomain.StringArray{}, e.Keywords...)
	if e.Summary != nil {
		s := *e.Summary
		c.Summary = &s
	}
	return &c
}

func (r *memoryRepo) add(e *emaildomain.Email) *emaildomain.Email {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.Category == "" {
		e.Category = emaildomain.CategoryGeneral
	}
	if e.Keywords == nil {
		e.Keywords = emaildomain.StringArray{}
	}
	r.emails[e.ID] = r.clone(e)
	return e
}

func (r *memoryRepo) get(id string) *emaildomain.Email {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.emails[id]
	if !ok {
		return nil
	}
	return r.clone(e)
}

func (r *memoryRepo) FindByID(ctx context.Context, id string) (*emaildomain.Email, error) {
	return r.get(id), nil
}

func (r *memoryRepo) FindByIDs(ctx context.Context, ids []string) ([]*emaildomain.Email, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.findByIDs++
	var out []*emaildomain.Email
	for _, e := range r.emails {
		for _, id := range ids {
			if e.ID == id {
				out = append(out, r.clone(e))
				break
			}
		}
	}
	return out, nil
}

func (r *memoryRepo) FindByContentHash(ctx context.Context, hash string) (*emaildomain.Email, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.emails {
		if e.ContentHash == hash {
			return r.clone(e), nil
		}
	}
	return nil, nil
}

func (r *memoryRepo) Create(ctx context.Context, email *emaildomain.Email) error {
	if existing, _ := r.FindByContentHash(ctx, email.ContentHash); existing != nil {
		return emaildomain.ErrDuplicateContent
	}
	now := time.Now()
	email.CreatedAt, email.UpdatedAt = now, now
	r.add(email)
	return nil
}

func (r *memoryRepo) ApplySummary(ctx context.Context, id string, update emaildomain.SummaryUpdate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if id == r.failApplyID {
		return errors.New("disk full")
	}
	e, ok := r.emails[id]
	if !ok {
		return emaildomain.ErrEmailNotFound
	}
	if e.SummaryCount != update.SummaryCount-1 {
		return emaildomain.ErrSummaryConflict
	}
	update.Apply(e)
	r.applied++
	return nil
}

func (r *memoryRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.emails, id)
	return nil
}

func (r *memoryRepo) List(ctx context.Context, q repository.ListQuery) ([]*emaildomain.Email, int64, error) {
	q = q.Normalize()
	r.mu.Lock()
	var all []*emaildomain.Email
	for _, e := range r.emails {
		if q.Category != "" && string(e.Category) != q.Category {
			continue
		}
		if q.Search != "" && !strings.Contains(strings.ToLower(e.Subject), strings.ToLower(q.Search)) {
			continue
		}
		all = append(all, r.clone(e))
	}
	r.mu.Unlock()

	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	total := int64(len(all))
	start := q.Offset()
	if start > len(all) {
		start = len(all)
	}
	end := start + q.Limit
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total, nil
}

// scriptedGenerator answers per email subject; an error entry fails the call
type scriptedGenerator struct {
	mu       sync.Mutex
	replies  map[string]string
	failures map[string]error
	fallback string
	prompts  []string
	inFlight int
	maxSeen  int
	delay    time.Duration
}

func (g *scriptedGenerator) GenerateText(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	g.mu.Lock()
	g.prompts = append(g.prompts, userPrompt)
	g.inFlight++
	if g.inFlight > g.maxSeen {
		g.maxSeen = g.inFlight
	}
	g.mu.Unlock()

	if g.delay > 0 {
		time.Sleep(g.delay)
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	g.inFlight--
	for marker, err := range g.failures {
		if strings.Contains(userPrompt, marker) {
			return "", err
		}
	}
	for marker, reply := range g.replies {
		if strings.Contains(userPrompt, marker) {
			return reply, nil
		}
	}
	return g.fallback, nil
}

func (g *scriptedGenerator) calls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.prompts)
}
