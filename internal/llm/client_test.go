package llm_test

import (
	"context"
	"errors"
	"testing"

	"github.com/nakamasato/xot/internal/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockLLMClient is a mock implementation of the llm.Client interface
type MockLLMClient struct {
	mock.Mock
}

func (m *MockLLMClient) GenerateCompletionSimple(ctx context.Context, messages []llm.Message) (string, error) {
	args := m.Called(ctx, messages)
	return args.String(0), args.Error(1)
}

func TestGenerateCompletionSimple(t *testing.T) {
	client := llm.DummyClient{ReturnValue: "simple completion"}
	ctx := context.Background()
	messages := []llm.Message{}

	result, err := client.GenerateCompletionSimple(ctx, messages)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if result != "simple completion" {
		t.Errorf("expected 'simple completion', got %v", result)
	}
}

func TestGenerateCompletionSimpleDefault(t *testing.T) {
	result, err := llm.DummyClient{}.GenerateCompletionSimple(context.Background(), nil)
	assert.NoError(t, err)
	assert.Equal(t, "dummy simple result", result)
}

func TestGenerateCompletionSimpleError(t *testing.T) {
	boom := errors.New("boom")
	_, err := llm.DummyClient{Err: boom}.GenerateCompletionSimple(context.Background(), nil)
	assert.ErrorIs(t, err, boom)
}

func TestUserMessages(t *testing.T) {
	msgs := llm.UserMessages("a", "b")
	assert.Equal(t, []llm.Message{
		{Role: llm.RoleUser, Content: "a"},
		{Role: llm.RoleUser, Content: "b"},
	}, msgs)
}
