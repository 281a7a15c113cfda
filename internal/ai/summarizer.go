// Package ai rewrites the deterministic report into the final standup text
// via an OpenAI-compatible chat-completion API. It is a pass-through
// collaborator: a failed rewrite never invalidates the computed report.
package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"
)

const systemPrompt = "You are a project management assistant that writes daily standup reports. " +
	"Follow the formatting instructions in the user's message exactly, base the report strictly " +
	"on the pull request data provided, and output nothing else."

// Summarizer rewrites a raw report into its delivered form.
type Summarizer interface {
	Summarize(ctx context.Context, rawReport string) (string, error)
}

// NoopSummarizer returns the raw report unchanged. Used when no AI backend is
// configured.
type NoopSummarizer struct{}

func (NoopSummarizer) Summarize(_ context.Context, rawReport string) (string, error) {
	return strings.TrimSpace(rawReport), nil
}

// OpenAISummarizer calls a chat-completion endpoint.
type OpenAISummarizer struct {
	client *openai.Client
	model  string
	logger zerolog.Logger
}

// NewOpenAISummarizer creates a summarizer against an OpenAI-compatible API.
func NewOpenAISummarizer(apiKey, baseURL, model string, logger zerolog.Logger) *OpenAISummarizer {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &OpenAISummarizer{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
		logger: logger.With().Str("component", "ai").Logger(),
	}
}

// Summarize sends the raw report for rewriting and returns the model's text.
func (s *OpenAISummarizer) Summarize(ctx context.Context, rawReport string) (string, error) {
	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: rawReport},
		},
		MaxTokens:   1000,
		Temperature: 0.3,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
