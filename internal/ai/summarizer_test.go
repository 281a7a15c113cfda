package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoopSummarizerPassesThrough(t *testing.T) {
	out, err := NoopSummarizer{}.Summarize(context.Background(), "  raw report text\n")
	assert.NoError(t, err)
	assert.Equal(t, "raw report text", out)
}

type chatRequest struct {
	Model       string  `json:"model"`
	Temperature float32 `json:"temperature"`
	MaxTokens   int     `json:"max_tokens"`
	Messages    []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
}

func TestOpenAISummarizerRequestAndResponse(t *testing.T) {
	var got chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		fmt.Fprint(w, `{
			"id": "chatcmpl-1",
			"object": "chat.completion",
			"choices": [{"index": 0, "message": {"role": "assistant", "content": " [1]widget#7-rewrote the report \n"}}]
		}`)
	}))
	t.Cleanup(srv.Close)

	s := NewOpenAISummarizer("sk-test", srv.URL, "gpt-test", zerolog.Nop())
	out, err := s.Summarize(context.Background(), "raw report body")

	require.NoError(t, err)
	assert.Equal(t, "[1]widget#7-rewrote the report", out)

	assert.Equal(t, "gpt-test", got.Model)
	assert.Equal(t, float32(0.3), got.Temperature)
	assert.Equal(t, 1000, got.MaxTokens)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, "system", got.Messages[0].Role)
	assert.Equal(t, "user", got.Messages[1].Role)
	assert.Equal(t, "raw report body", got.Messages[1].Content)
}

func TestOpenAISummarizerEmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"id": "chatcmpl-2", "object": "chat.completion", "choices": []}`)
	}))
	t.Cleanup(srv.Close)

	s := NewOpenAISummarizer("sk-test", srv.URL, "gpt-test", zerolog.Nop())
	_, err := s.Summarize(context.Background(), "raw")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no choices")
}

func TestOpenAISummarizerAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		fmt.Fprint(w, `{"error": {"message": "rate limited", "type": "requests"}}`)
	}))
	t.Cleanup(srv.Close)

	s := NewOpenAISummarizer("sk-test", srv.URL, "gpt-test", zerolog.Nop())
	_, err := s.Summarize(context.Background(), "raw")
	assert.Error(t, err)
}
