package llm

import (
	"context"
	"errors"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

var (
	chatModel = openai.ChatModelGPT4oMini

	ErrNoChoices = errors.New("no response from model")
)

type openaiClient struct {
	openai    *openai.Client
	chatModel openai.ChatModel
}

type clientSettings struct {
	chatModel   openai.ChatModel
	requestOpts []option.RequestOption
}

type ClientOption func(*clientSettings)

func WithChatModel(model string) ClientOption {
	return func(s *clientSettings) {
		if model != "" {
			s.chatModel = openai.ChatModel(model)
		}
	}
}

// WithBaseURL points the client to an OpenAI compatible endpoint such as Ollama (http://localhost:11434/v1).
func WithBaseURL(url string) ClientOption {
	return func(s *clientSettings) {
		if url != "" {
			s.requestOpts = append(s.requestOpts, option.WithBaseURL(url))
		}
	}
}

func WithRequestTimeout(timeout time.Duration) ClientOption {
	return func(s *clientSettings) {
		if timeout > 0 {
			s.requestOpts = append(s.requestOpts, option.WithRequestTimeout(timeout))
		}
	}
}

func NewOpenAIClient(apiKey string, opts ...ClientOption) Client {
	settings := clientSettings{
		chatModel: chatModel, // default chat model
	}
	for _, opt := range opts {
		opt(&settings)
	}

	requestOpts := append([]option.RequestOption{option.WithAPIKey(apiKey)}, settings.requestOpts...)
	return openaiClient{
		openai:    openai.NewClient(requestOpts...),
		chatModel: settings.chatModel,
	}
}

func (c openaiClient) convertMessages(messages []Message) []openai.ChatCompletionMessageParamUnion {
	msgs := make([]openai.ChatCompletionMessageParamUnion, len(messages))
	for i, m := range messages {
		switch m.Role {
		case RoleSystem:
			msgs[i] = openai.SystemMessage(m.Content)
		default:
			msgs[i] = openai.UserMessage(m.Content)
		}
	}
	return msgs
}

func (c openaiClient) GenerateCompletionSimple(ctx context.Context, messages []Message) (string, error) {
	msgs := c.convertMessages(messages)
	chat, err := c.openai.Chat.Completions.New(ctx,
		openai.ChatCompletionNewParams{
			Model:    openai.F(c.chatModel),
			Messages: openai.F(msgs),
		})
	if err != nil {
		return "", err
	}
	if len(chat.Choices) == 0 {
		return "", ErrNoChoices
	}

	return chat.Choices[0].Message.Content, nil
}
