package genai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alijeyrad/mindwell_backend/config"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewFromConfig(config.GenAIConfig{
		APIKey:         "test-key",
		BaseURL:        srv.URL + "/v1/",
		Model:          "gemini-1.5-flash",
		Temperature:    0.7,
		MaxTokens:      256,
		TimeoutSeconds: 5,
	})
}

func completion(content string) map[string]any {
	return map[string]any{
		"id":     "chatcmpl-1",
		"object": "chat.completion",
		"model":  "gemini-1.5-flash",
		"choices": []map[string]any{{
			"index":         0,
			"message":       map[string]any{"role": "assistant", "content": content},
			"finish_reason": "stop",
		}},
	}
}

func TestGenerate_Success(t *testing.T) {
	var gotReq struct {
		Model    string `json:"model"`
		Messages []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(completion("  It sounds like exams are weighing on you.  "))
	})

	res := c.Generate(context.Background(), "I feel anxious about my exam")
	require.True(t, res.OK(), "err: %v", res.Err)
	assert.Equal(t, "It sounds like exams are weighing on you.", res.Text)
	assert.Equal(t, "gemini-1.5-flash", gotReq.Model)
	require.Len(t, gotReq.Messages, 1)
	assert.Equal(t, "I feel anxious about my exam", gotReq.Messages[0].Content)
}

func TestGenerate_Failures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		want    Reason
	}{
		{"server error", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"error":{"message":"overloaded","type":"server_error"}}`))
		}, ReasonUnavailable},
		{"no choices", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"id":"x","object":"chat.completion","choices":[]}`))
		}, ReasonEmptyResponse},
		{"blank content", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(completion("   "))
		}, ReasonEmptyResponse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := newTestClient(t, tt.handler).Generate(context.Background(), "hello")
			assert.False(t, res.OK())
			assert.Equal(t, tt.want, res.Reason)
			assert.Error(t, res.Err)
		})
	}
}

func TestGenerate_Canceled(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(completion("late"))
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := c.Generate(ctx, "hello")
	assert.Equal(t, ReasonCanceled, res.Reason)
}

func TestGenerate_NotConfigured(t *testing.T) {
	c := NewFromConfig(config.GenAIConfig{Model: "m"})
	res := c.Generate(context.Background(), "hello")
	assert.Equal(t, ReasonNotConfigured, res.Reason)
	assert.ErrorIs(t, res.Err, ErrNotConfigured)
}

func TestFallbackReply_PerReason(t *testing.T) {
	unavailable := FallbackReply(ReasonUnavailable)
	empty := FallbackReply(ReasonEmptyResponse)
	other := FallbackReply(ReasonNotConfigured)

	assert.Contains(t, unavailable, "trouble connecting")
	assert.Contains(t, empty, "here to listen")
	assert.Contains(t, other, "technical difficulties")
	assert.Equal(t, other, FallbackReply(ReasonCanceled))

	assert.Equal(t, "AI service not configured", ErrorMessage(ReasonNotConfigured))
}
