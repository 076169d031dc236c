package parser

import (
	"testing"

	emaildomain "mailtriage-backend/internal/email/domain"

	"github.com/stretchr/testify/assert"
)

func TestParseFirstPassValid(t *testing.T) {
	got := ParseFirstPass(`{"summary":"  Team sync moved to 3pm.  ","category":"Meeting","keywords":["sync","schedule"]}`)

	assert.Equal(t, "Team sync moved to 3pm.", got.Summary)
	assert.Equal(t, emaildomain.CategoryMeeting, got.Category)
	assert.Equal(t, emaildomain.StringArray{"sync", "schedule"}, got.Keywords)
}

func TestParseFirstPassNotJSON(t *testing.T) {
	got := ParseFirstPass("not json")

	assert.Equal(t, "", got.Summary)
	assert.Equal(t, emaildomain.CategoryGeneral, got.Category)
	assert.Equal(t, emaildomain.StringArray{}, got.Keywords)
}

func TestParseFirstPassUnknownCategory(t *testing.T) {
	got := ParseFirstPass(`{"category":"Bogus"}`)

	assert.Equal(t, emaildomain.CategoryGeneral, got.Category)
	assert.Equal(t, "", got.Summary)
	assert.Empty(t, got.Keywords)
}

func TestParseFirstPassCategoryIsCaseSensitive(t *testing.T) {
	assert.Equal(t, emaildomain.CategoryGeneral, ParseFirstPass(`{"category":"invoice"}`).Category)
	assert.Equal(t, emaildomain.CategorySupportRequest, ParseFirstPass(`{"category":"Support Request"}`).Category)
}

func TestParseFirstPassKeywordFiltering(t *testing.T) {
	got := ParseFirstPass(`{"keywords":["a","",  "b ", 123]}`)

	assert.Equal(t, emaildomain.StringArray{"a", "b"}, got.Keywords)
}

func TestParseFirstPassKeywordTruncation(t *testing.T) {
	got := ParseFirstPass(`{"keywords":["k1","k2","k3","k4","k5","k6","k7","k8","k9","k10","k11"]}`)

	assert.Equal(t, emaildomain.StringArray{"k1", "k2", "k3", "k4", "k5", "k6", "k7", "k8", "k9", "k10"}, got.Keywords)
}

func TestParseFirstPassKeywordsNotArray(t *testing.T) {
	assert.Equal(t, emaildomain.StringArray{}, ParseFirstPass(`{"keywords":"a, b"}`).Keywords)
	assert.Equal(t, emaildomain.StringArray{}, ParseFirstPass(`{"keywords":null}`).Keywords)
}

func TestParseFirstPassNonStringSummary(t *testing.T) {
	assert.Equal(t, "", ParseFirstPass(`{"summary":42}`).Summary)
	assert.Equal(t, "", ParseFirstPass(`{"summary":null}`).Summary)
}

func TestParseFirstPassTruncatedJSON(t *testing.T) {
	got := ParseFirstPass(`{"summary":"cut off`)

	assert.Equal(t, "", got.Summary)
	assert.Equal(t, emaildomain.CategoryGeneral, got.Category)
}

func TestParseFirstPassCodeFence(t *testing.T) {
	raw := "```json\n{\"summary\":\"Pay invoice\",\"category\":\"Invoice\",\"keywords\":[\"pay\"]}\n```"
	got := ParseFirstPass(raw)

	assert.Equal(t, "Pay invoice", got.Summary)
	assert.Equal(t, emaildomain.CategoryInvoice, got.Category)
	assert.Equal(t, emaildomain.StringArray{"pay"}, got.Keywords)
}

func TestParseFirstPassTopLevelArray(t *testing.T) {
	got := ParseFirstPass(`["summary"]`)

	assert.Equal(t, "", got.Summary)
	assert.Equal(t, emaildomain.CategoryGeneral, got.Category)
}

func TestParseRepeat(t *testing.T) {
	assert.Equal(t, "Fresh take.", ParseRepeat(`{"summary":" Fresh take. ","category":"HR"}`).Summary)
	assert.Equal(t, "", ParseRepeat("").Summary)
	assert.Equal(t, "", ParseRepeat("{}").Summary)
}
