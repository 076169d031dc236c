package export

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	emaildomain "mailtriage-backend/internal/email/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteCSV(t *testing.T) {
	created := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	updated := created.Add(90 * time.Minute)
	summary := `Pay "now", please`

	emails := []*emaildomain.Email{
		{
			Sender:    "billing@example.com",
			Subject:   "Invoice, March",
			Body:      "line one\nline two",
			Summary:   &summary,
			CreatedAt: created,
			UpdatedAt: updated,
		},
		{
			Sender:    "hr@example.com",
			Subject:   "Benefits",
			Body:      "Enroll",
			CreatedAt: created,
			UpdatedAt: created,
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, emails))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, []string{"sender", "subject", "email", "summary", "createdAt", "updatedAt"}, records[0])
	assert.Equal(t, []string{
		"billing@example.com",
		"Invoice, March",
		"line one\nline two",
		`Pay "now", please`,
		"2025-01-02T03:04:05Z",
		"2025-01-02T04:34:05Z",
	}, records[1])
	assert.Equal(t, "", records[2][3])
}

func TestWriteCSV_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil))
	assert.Equal(t, "sender,subject,email,summary,createdAt,updatedAt\n", buf.String())
}
