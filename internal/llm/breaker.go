package llm

import (
	"context"
	"time"

	"github.com/nakamasato/xot/internal/logging"
	"github.com/sony/gobreaker"
)

type BreakerSettings struct {
	Name        string
	MaxFailures uint32        // consecutive failures before the breaker opens, 0 disables the breaker
	Timeout     time.Duration // how long the breaker stays open
}

type breakerClient struct {
	client Client
	cb     *gobreaker.CircuitBreaker
}

// WithBreaker wraps client so that repeated model failures fail fast with gobreaker.ErrOpenState.
func WithBreaker(client Client, settings BreakerSettings) Client {
	if settings.MaxFailures == 0 {
		return client
	}
	if settings.Name == "" {
		settings.Name = "llm"
	}
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        settings.Name,
		MaxRequests: 1,
		Timeout:     settings.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= settings.MaxFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Logger.Warnf("circuit breaker '%s' changed from '%s' to '%s'", name, from.String(), to.String())
		},
	})
	return breakerClient{client: client, cb: cb}
}

func (b breakerClient) GenerateCompletionSimple(ctx context.Context, messages []Message) (string, error) {
	res, err := b.cb.Execute(func() (interface{}, error) {
		return b.client.GenerateCompletionSimple(ctx, messages)
	})
	if err != nil {
		return "", err
	}
	return res.(string), nil
}
