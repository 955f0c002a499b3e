package llm_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/nakamasato/xot/internal/llm"
	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestWithBreakerOpensAfterFailures(t *testing.T) {
	boom := errors.New("model unavailable")
	inner := new(MockLLMClient)
	inner.On("GenerateCompletionSimple", mock.Anything, mock.Anything).Return("", boom).Times(2)

	client := llm.WithBreaker(inner, llm.BreakerSettings{MaxFailures: 2, Timeout: time.Minute})
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, err := client.GenerateCompletionSimple(ctx, nil)
		assert.ErrorIs(t, err, boom)
	}

	_, err := client.GenerateCompletionSimple(ctx, nil)
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	inner.AssertNumberOfCalls(t, "GenerateCompletionSimple", 2)
}

func TestWithBreakerPassesThrough(t *testing.T) {
	inner := new(MockLLMClient)
	msgs := llm.UserMessages("hello")
	inner.On("GenerateCompletionSimple", mock.Anything, msgs).Return("world", nil)

	client := llm.WithBreaker(inner, llm.BreakerSettings{MaxFailures: 1, Timeout: time.Second})

	got, err := client.GenerateCompletionSimple(context.Background(), msgs)
	assert.NoError(t, err)
	assert.Equal(t, "world", got)
	inner.AssertExpectations(t)
}

func TestWithBreakerDisabled(t *testing.T) {
	inner := llm.DummyClient{ReturnValue: "x"}
	client := llm.WithBreaker(inner, llm.BreakerSettings{})
	assert.Equal(t, inner, client)
}
