// Package export renders stored emails for download.
package export

import (
	"encoding/csv"
	"io"
	"time"

	emaildomain "mailtriage-backend/internal/email/domain"
)

// Header is the CSV column order
var Header = []string{"sender", "subject", "email", "summary", "createdAt", "updatedAt"}

// WriteCSV writes one row per email, in the given order, after the header row
func WriteCSV(w io.Writer, emails []*emaildomain.Email) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}
	for _, e := range emails {
		summary := ""
		if e.Summary != nil {
			summary = *e.Summary
		}
		row := []string{
			e.Sender,
			e.Subject,
			e.Body,
			summary,
			e.CreatedAt.UTC().Format(time.RFC3339),
			e.UpdatedAt.UTC().Format(time.RFC3339),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
