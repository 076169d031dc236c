package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Category is the AI-assigned triage bucket of an email
type Category string

const (
	CategoryMeeting        Category = "Meeting"
	CategoryInvoice        Category = "Invoice"
	CategorySupportRequest Category = "Support Request"
	CategoryHR             Category = "HR"
	CategoryGeneral        Category = "General"
)

// AllowedCategories is the closed set a stored category must belong to.
// Prompts enumerate it and the response parser validates against it.
var AllowedCategories = []Category{
	CategoryMeeting,
	CategoryInvoice,
	CategorySupportRequest,
	CategoryHR,
	CategoryGeneral,
}

// MaxKeywords caps the keyword list kept per email
const MaxKeywords = 10

// ParseCategory returns the matching category, or General for anything
// outside the allowed set. Matching is exact.
func ParseCategory(s string) Category {
	for _, c := range AllowedCategories {
		if string(c) == s {
			return c
		}
	}
	return CategoryGeneral
}

// StringArray is a custom type to handle JSON array in GORM
type StringArray []string

// Value implements driver.Valuer
func (a StringArray) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal([]string(a))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner
func (a *StringArray) Scan(value interface{}) error {
	if value == nil {
		*a = StringArray{}
		return nil
	}
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("unsupported keywords column type %T", value)
	}
	if len(bytes) == 0 {
		*a = StringArray{}
		return nil
	}
	return json.Unmarshal(bytes, a)
}

// SummaryState is the summarization variant encoded by SummaryCount
type SummaryState int

const (
	StateNeverSummarized SummaryState = iota
	StateSummarized
)

func (s SummaryState) String() string {
	if s == StateNeverSummarized {
		return "never_summarized"
	}
	return "summarized"
}

// Email is an ingested message together with its AI triage fields
type Email struct {
	ID               string      `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Sender           string      `json:"sender" gorm:"type:text;not null"`
	Subject          string      `json:"subject" gorm:"type:text;not null"`
	Body             string      `json:"body" gorm:"type:text;not null"`
	ContentHash      string      `json:"contentHash" gorm:"uniqueIndex;not null"`
	Summary          *string     `json:"summary" gorm:"type:text"`
	Category         Category    `json:"category" gorm:"type:varchar(32);not null;default:General;index"`
	Keywords         StringArray `json:"keywords" gorm:"type:text;not null;default:'[]'"`
	SummaryCount     int         `json:"summaryCount" gorm:"not null;default:0;index"`
	LastSummarizedAt *time.Time  `json:"lastSummarizedAt"`
	CreatedAt        time.Time   `json:"createdAt" gorm:"not null;index"`
	UpdatedAt        time.Time   `json:"updatedAt" gorm:"not null"`
}

// TableName specifies the table name for GORM
func (Email) TableName() string {
	return "emails"
}

// State reports whether the email still needs its first-pass summarization
func (e *Email) State() SummaryState {
	if e.SummaryCount == 0 {
		return StateNeverSummarized
	}
	return StateSummarized
}

// Candidate is an email offered for ingestion
type Candidate struct {
	Sender  string `json:"sender" yaml:"sender" validate:"required"`
	Subject string `json:"subject" yaml:"subject" validate:"required"`
	Body    string `json:"body" yaml:"body" validate:"required"`
}

// IngestReport counts the outcome of one ingestion run.
// Inserted + Skipped always equals Total.
type IngestReport struct {
	Inserted int `json:"inserted"`
	Skipped  int `json:"skipped"`
	Total    int `json:"total"`
}
