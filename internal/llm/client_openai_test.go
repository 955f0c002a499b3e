package llm_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/nakamasato/xot/internal/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type chatRequest struct {
	Model    string `json:"model"`
	Messages []struct {
		Role    string          `json:"role"`
		Content json.RawMessage `json:"content"`
	} `json:"messages"`
}

// newChatServer serves a fixed chat completion body and records the last request.
func newChatServer(t *testing.T, body string, got *chatRequest) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || !strings.HasSuffix(r.URL.Path, "/chat/completions") {
			http.NotFound(w, r)
			return
		}
		assert.Equal(t, "Bearer ollama", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestOpenAIClientGenerateCompletionSimple(t *testing.T) {
	body := `{
		"id": "chatcmpl-1",
		"object": "chat.completion",
		"created": 1700000000,
		"model": "llama3.1:8b-instruct-q4_K_M",
		"choices": [{
			"index": 0,
			"finish_reason": "stop",
			"message": {"role": "assistant", "content": "Step 1: think (Neutral)\nFinal Answer: 42"}
		}]
	}`
	var got chatRequest
	srv := newChatServer(t, body, &got)

	client := llm.NewOpenAIClient("ollama",
		llm.WithChatModel("llama3.1:8b-instruct-q4_K_M"),
		llm.WithBaseURL(srv.URL+"/v1/"),
	)
	result, err := client.GenerateCompletionSimple(context.Background(), []llm.Message{
		{Role: llm.RoleSystem, Content: "Answer briefly."},
		{Role: llm.RoleUser, Content: "What is the answer?"},
	})

	require.NoError(t, err)
	assert.Equal(t, "Step 1: think (Neutral)\nFinal Answer: 42", result)

	assert.Equal(t, "llama3.1:8b-instruct-q4_K_M", got.Model)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, "system", got.Messages[0].Role)
	assert.Contains(t, string(got.Messages[0].Content), "Answer briefly.")
	assert.Equal(t, "user", got.Messages[1].Role)
	assert.Contains(t, string(got.Messages[1].Content), "What is the answer?")
}

func TestOpenAIClientNoChoices(t *testing.T) {
	body := `{"id": "chatcmpl-2", "object": "chat.completion", "created": 1700000000, "model": "m", "choices": []}`
	var got chatRequest
	srv := newChatServer(t, body, &got)

	client := llm.NewOpenAIClient("ollama", llm.WithBaseURL(srv.URL+"/v1/"))
	_, err := client.GenerateCompletionSimple(context.Background(), llm.UserMessages("q"))

	assert.ErrorIs(t, err, llm.ErrNoChoices)
	assert.Equal(t, "gpt-4o-mini", got.Model)
}
