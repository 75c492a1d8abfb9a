package testutils

import (
	"context"
	"slices"
	"sync"

	"github.com/papercomputeco/neno/pkg/chat"
)

// MockBackend is a chat.Backend that replies from a script.
type MockBackend struct {
	mu    sync.Mutex
	calls [][]chat.Message

	// Replies are returned in order; the last one repeats.
	Replies []string

	// Err is returned by Complete when set.
	Err error
}

func (m *MockBackend) Name() string {
	return "mock"
}

func (m *MockBackend) Complete(_ context.Context, messages []chat.Message) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, slices.Clone(messages))
	if m.Err != nil {
		return "", m.Err
	}
	if len(m.Replies) == 0 {
		return "", nil
	}

	idx := min(len(m.calls)-1, len(m.Replies)-1)
	return m.Replies[idx], nil
}

// Calls returns the message lists Complete received.
func (m *MockBackend) Calls() [][]chat.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.calls)
}
