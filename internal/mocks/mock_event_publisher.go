package mocks

import (
	"context"
	"sync"

	"github.com/you/quezi/domain"
)

// MockEventPublisher records published events
type MockEventPublisher struct {
	PublishFunc func(ctx context.Context, event *domain.Event) error

	mu     sync.Mutex
	events []*domain.Event
}

func NewMockEventPublisher() *MockEventPublisher {
	return &MockEventPublisher{}
}

func (m *MockEventPublisher) Publish(ctx context.Context, event *domain.Event) error {
	m.mu.Lock()
	m.events = append(m.events, event)
	m.mu.Unlock()
	if m.PublishFunc != nil {
		return m.PublishFunc(ctx, event)
	}
	return nil
}

// Events returns everything passed to Publish, including failed publishes
func (m *MockEventPublisher) Events() []*domain.Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*domain.Event(nil), m.events...)
}

// Types returns the types of the recorded events in order
func (m *MockEventPublisher) Types() []domain.EventType {
	var types []domain.EventType
	for _, e := range m.Events() {
		types = append(types, e.Type)
	}
	return types
}

var _ domain.EventPublisher = (*MockEventPublisher)(nil)
