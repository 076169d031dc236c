// Package seed provides the bundled sample emails used by the mock ingest.
package seed

import (
	_ "embed"
	"fmt"

	emaildomain "mailtriage-backend/internal/email/domain"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

//go:embed mock_emails.yaml
var mockEmails []byte

// Candidates parses and validates the embedded sample emails
func Candidates() ([]emaildomain.Candidate, error) {
	return Parse(mockEmails)
}

// Parse decodes a YAML list of candidates. Every entry needs a sender,
// subject and body.
func Parse(data []byte) ([]emaildomain.Candidate, error) {
	var candidates []emaildomain.Candidate
	if err := yaml.Unmarshal(data, &candidates); err != nil {
		return nil, fmt.Errorf("failed to parse mock emails: %w", err)
	}

	validate := validator.New()
	for i, c := range candidates {
		if err := validate.Struct(c); err != nil {
			return nil, fmt.Errorf("mock email %d is invalid: %w", i, err)
		}
	}
	return candidates, nil
}
