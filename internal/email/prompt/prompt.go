// Package prompt builds the text-generation instructions for email
// summarization.
package prompt

import (
	"fmt"
	"strings"

	emaildomain "mailtriage-backend/internal/email/domain"
)

// Payload is the provider input: a system instruction plus the user message
type Payload struct {
	System string
	User   string
}

const systemPrompt = "You are an email triage assistant. You always answer with a single JSON object and nothing else."

// CategoryList renders the allowed categories as a quoted, comma separated list
func CategoryList() string {
	quoted := make([]string, len(emaildomain.AllowedCategories))
	for i, c := range emaildomain.AllowedCategories {
		quoted[i] = fmt.Sprintf("%q", string(c))
	}
	return strings.Join(quoted, ", ")
}

// FirstPass asks for summary, category and keywords of an email that has
// never been summarized.
func FirstPass(e *emaildomain.Email) Payload {
	user := fmt.Sprintf(`Analyze the email below and return a JSON object with exactly these fields:
- "summary": a concise summary of the email in 1-3 sentences
- "category": exactly one of %s
- "keywords": an array of up to %d short keywords

EMAIL
From: %s
Subject: %s
Body:
%s`, CategoryList(), emaildomain.MaxKeywords, e.Sender, e.Subject, e.Body)

	return Payload{System: systemPrompt, User: user}
}

// Repeat asks for a fresh summary only. The previous summary is included so
// the provider can offer an alternative wording.
func Repeat(e *emaildomain.Email) Payload {
	var b strings.Builder
	b.WriteString(`Write a new summary of the email below and return a JSON object with exactly one field:
- "summary": a concise summary of the email in 1-3 sentences
`)
	if e.Summary != nil && strings.TrimSpace(*e.Summary) != "" {
		fmt.Fprintf(&b, "\nThe previous summary was:\n%s\nProduce a different, independent summary.\n", strings.TrimSpace(*e.Summary))
	}
	fmt.Fprintf(&b, `
EMAIL
From: %s
Subject: %s
Body:
%s`, e.Sender, e.Subject, e.Body)

	return Payload{System: systemPrompt, User: b.String()}
}
