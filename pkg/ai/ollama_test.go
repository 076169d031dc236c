package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOllamaService_GenerateText(t *testing.T) {
	var got map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/generate", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"response":"{\"summary\":\"local\"}","done":true}`))
	}))
	defer srv.Close()

	svc := NewOllamaService(srv.URL, "mistral", 0.2, time.Second)
	out, err := svc.GenerateText(context.Background(), "sys", "prompt")
	require.NoError(t, err)
	assert.Equal(t, `{"summary":"local"}`, out)

	assert.Equal(t, "mistral", got["model"])
	assert.Equal(t, "sys", got["system"])
	assert.Equal(t, "prompt", got["prompt"])
	assert.Equal(t, "json", got["format"])
	assert.Equal(t, false, got["stream"])
	opts, ok := got["options"].(map[string]interface{})
	require.True(t, ok)
	assert.InDelta(t, 0.2, opts["temperature"], 1e-9)
}

func TestOllamaService_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := NewOllamaService(srv.URL, "", 0, time.Second).GenerateText(context.Background(), "s", "u")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestOllamaService_Ping(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/tags" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(`{"models":[]}`))
	}))
	defer srv.Close()

	assert.NoError(t, NewOllamaService(srv.URL, "", 0, time.Second).Ping(context.Background()))
}
