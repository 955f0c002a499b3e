package llm

import (
	"errors"

	"github.com/nakamasato/xot/config"
	"github.com/nakamasato/xot/internal/logging"
	"github.com/sirupsen/logrus"
)

var ErrMissingAPIKey = errors.New("OPENAI_API_KEY environment variable is not set")

// localAPIKey is sent to custom endpoints (e.g. Ollama) which ignore the key but the client requires one.
const localAPIKey = "ollama"

// NewClientFromConfig builds the OpenAI compatible client described by cfg, guarded by a circuit breaker.
func NewClientFromConfig(cfg config.XotConfig) (Client, error) {
	apiKey := cfg.OpenAIAPIKey
	if apiKey == "" {
		if !cfg.LLM.UsesLocalEndpoint() {
			return nil, ErrMissingAPIKey
		}
		apiKey = localAPIKey
	}

	logging.Logger.WithFields(logrus.Fields{
		"model":    cfg.LLM.Model,
		"base_url": cfg.LLM.BaseURL,
	}).Info("initializing llm client")

	client := NewOpenAIClient(apiKey,
		WithChatModel(cfg.LLM.Model),
		WithBaseURL(cfg.LLM.BaseURL),
		WithRequestTimeout(cfg.LLM.Timeout),
	)
	return WithBreaker(client, BreakerSettings{
		Name:        "llm",
		MaxFailures: cfg.LLM.Breaker.MaxFailures,
		Timeout:     cfg.LLM.Breaker.Timeout,
	}), nil
}
