// Package genai talks to an OpenAI-compatible chat completions endpoint.
package genai

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/Alijeyrad/mindwell_backend/config"
)

var (
	ErrNotConfigured = errors.New("generative text service not configured")
	ErrEmptyResponse = errors.New("generative text service returned no content")
)

// Generator turns a prompt into text. Implementations never panic and never
// return a zero Result.
type Generator interface {
	Generate(ctx context.Context, prompt string) Result
}

type Client struct {
	client      *openai.Client
	model       string
	temperature float32
	maxTokens   int
}

// NewFromConfig returns a Client even without an API key; every call then
// reports ReasonNotConfigured so the chat falls back instead of failing boot.
func NewFromConfig(cfg config.GenAIConfig) *Client {
	c := &Client{
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
	}
	if strings.TrimSpace(cfg.APIKey) == "" {
		return c
	}

	oc := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		oc.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	}
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	oc.HTTPClient = &http.Client{Timeout: timeout}

	c.client = openai.NewClientWithConfig(oc)
	return c
}

// Generate makes a single attempt.
func (c *Client) Generate(ctx context.Context, prompt string) Result {
	if c.client == nil {
		return failure(ReasonNotConfigured, ErrNotConfigured)
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: c.temperature,
		MaxTokens:   c.maxTokens,
	})
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(ctx.Err(), context.Canceled) {
			return failure(ReasonCanceled, err)
		}
		return failure(ReasonUnavailable, err)
	}

	if len(resp.Choices) == 0 {
		return failure(ReasonEmptyResponse, ErrEmptyResponse)
	}
	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return failure(ReasonEmptyResponse, ErrEmptyResponse)
	}
	return success(text)
}
