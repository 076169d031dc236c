package seed

import (
	"testing"

	"mailtriage-backend/pkg/fingerprint"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCandidates(t *testing.T) {
	candidates, err := Candidates()
	require.NoError(t, err)
	require.NotEmpty(t, candidates)

	for _, c := range candidates {
		assert.NotEmpty(t, c.Sender)
		assert.NotEmpty(t, c.Subject)
		assert.NotEmpty(t, c.Body)
	}

	// The sample set carries one exact duplicate so the mock ingest reports a skip.
	seen := map[string]int{}
	for _, c := range candidates {
		seen[fingerprint.Compute(c.Sender, c.Subject, c.Body)]++
	}
	assert.Len(t, seen, len(candidates)-1)
}

func TestParse(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		out, err := Parse([]byte("- sender: a@b.c\n  subject: hi\n  body: hello\n"))
		require.NoError(t, err)
		require.Len(t, out, 1)
		assert.Equal(t, "a@b.c", out[0].Sender)
		assert.Equal(t, "hi", out[0].Subject)
		assert.Equal(t, "hello", out[0].Body)
	})

	t.Run("missing body", func(t *testing.T) {
		_, err := Parse([]byte("- sender: a@b.c\n  subject: hi\n"))
		assert.Error(t, err)
	})

	t.Run("not yaml list", func(t *testing.T) {
		_, err := Parse([]byte("sender: [unclosed"))
		assert.Error(t, err)
	})
}
