package llm

import (
	"context"
	"sync"
)

// Lazy constructs its client on first use and reuses it afterwards.
// A failed construction is remembered as well.
type Lazy struct {
	build  func() (Client, error)
	once   sync.Once
	client Client
	err    error
}

func NewLazy(build func() (Client, error)) *Lazy {
	return &Lazy{build: build}
}

func (l *Lazy) Get() (Client, error) {
	l.once.Do(func() {
		l.client, l.err = l.build()
	})
	return l.client, l.err
}

func (l *Lazy) GenerateCompletionSimple(ctx context.Context, messages []Message) (string, error) {
	client, err := l.Get()
	if err != nil {
		return "", err
	}
	return client.GenerateCompletionSimple(ctx, messages)
}

var (
	sharedMu sync.Mutex
	shared   *Lazy
)

// Shared returns the process-wide model handle. build is only kept from the first call.
func Shared(build func() (Client, error)) *Lazy {
	sharedMu.Lock()
	defer sharedMu.Unlock()
	if shared == nil {
		shared = NewLazy(build)
	}
	return shared
}
