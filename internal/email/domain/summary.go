package domain

import "time"

// SummaryUpdate is the set of fields persisted after a successful
// summarization call. Category and Keywords are nil on a repeat pass,
// which leaves the stored values untouched. SummaryCount is the new count;
// the write only lands while the stored count is still SummaryCount-1.
type SummaryUpdate struct {
	Summary          string
	Category         *Category
	Keywords         StringArray
	SummaryCount     int
	LastSummarizedAt time.Time
	UpdatedAt        time.Time
}

// Columns returns the update as a column map for a partial UPDATE
func (u SummaryUpdate) Columns() map[string]interface{} {
	cols := map[string]interface{}{
		"summary":            u.Summary,
		"summary_count":      u.SummaryCount,
		"last_summarized_at": u.LastSummarizedAt,
		"updated_at":         u.UpdatedAt,
	}
	if u.Category != nil {
		cols["category"] = string(*u.Category)
		keywords := u.Keywords
		if keywords == nil {
			keywords = StringArray{}
		}
		cols["keywords"] = keywords
	}
	return cols
}

// Apply copies the update onto an in-memory email
func (u SummaryUpdate) Apply(e *Email) {
	summary := u.Summary
	e.Summary = &summary
	if u.Category != nil {
		e.Category = *u.Category
		e.Keywords = append(StringArray{}, u.Keywords...)
	}
	e.SummaryCount = u.SummaryCount
	last := u.LastSummarizedAt
	e.LastSummarizedAt = &last
	e.UpdatedAt = u.UpdatedAt
}

// SummarizeOutcome is the per-email result of a batch summarization
type SummarizeOutcome struct {
	ID    string `json:"id"`
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}
