package mocks

import (
	"context"
	"sync"
)

// MockPublisher records published events
type MockPublisher struct {
	mu  sync.Mutex
	Err error

	PublishCalls []PublishCall
}

// PublishCall records parameters passed to Publish
type PublishCall struct {
	Key   string
	Event any
}

func NewMockPublisher() *MockPublisher {
	return &MockPublisher{}
}

func (m *MockPublisher) Publish(ctx context.Context, key string, event any) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.PublishCalls = append(m.PublishCalls, PublishCall{Key: key, Event: event})
	return m.Err
}

// Events returns the published events in order
func (m *MockPublisher) Events() []any {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]any, len(m.PublishCalls))
	for i, c := range m.PublishCalls {
		out[i] = c.Event
	}
	return out
}
