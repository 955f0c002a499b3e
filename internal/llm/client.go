package llm

import (
	"context"
)

type Client interface {
	GenerateCompletionSimple(ctx context.Context, messages []Message) (string, error)
}

type Role string

const (
	RoleSystem Role = "system"
	RoleUser   Role = "user"
)

type Message struct {
	Role    Role   `json:"type"`
	Content string `json:"content"`
}

// UserMessages wraps each prompt into a user message.
func UserMessages(prompts ...string) []Message {
	msgs := make([]Message, len(prompts))
	for i, p := range prompts {
		msgs[i] = Message{Role: RoleUser, Content: p}
	}
	return msgs
}

type DummyClient struct {
	ReturnValue string
	Err         error
}

func (d DummyClient) GenerateCompletionSimple(ctx context.Context, messages []Message) (string, error) {
	if d.Err != nil {
		return "", d.Err
	}
	if d.ReturnValue != "" {
		return d.ReturnValue, nil
	}
	return "dummy simple result", nil
}
