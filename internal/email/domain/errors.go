package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrEmailNotFound is returned when a single-record operation finds no email
	ErrEmailNotFound = errors.New("email not found")
	// ErrInvalidInput is returned when caller input fails validation
	ErrInvalidInput = errors.New("invalid input")
	// ErrProviderCallFailed is returned when the text-generation call fails
	ErrProviderCallFailed = errors.New("text generation failed")
	// ErrSummaryConflict is returned when another call summarized the email first
	ErrSummaryConflict = errors.New("email was summarized concurrently")
	// ErrDuplicateContent is returned when an email with the same content hash exists
	ErrDuplicateContent = errors.New("email content already stored")
)

// SummarizeError reports a failed summarization of one email
type SummarizeError struct {
	EmailID string
	Err     error
}

func (e *SummarizeError) Error() string {
	return fmt.Sprintf("summarize email %s: %v", e.EmailID, e.Err)
}

func (e *SummarizeError) Unwrap() error {
	return e.Err
}
