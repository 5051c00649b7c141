package mocks

import (
	"context"
	"sync"

	"github.com/hemolink/donation-service/internal/core/ports"
)

// MockStatusEventPublisher implements ports.StatusEventPublisher for testing
// the outbox relay without a real RabbitMQ connection.
type MockStatusEventPublisher struct {
	mu sync.RWMutex

	PublishedEvents  []ports.RequestStatusEvent
	PublishCallCount int

	// Error injection
	PublishError error
}

var _ ports.StatusEventPublisher = (*MockStatusEventPublisher)(nil)

func NewMockStatusEventPublisher() *MockStatusEventPublisher {
	return &MockStatusEventPublisher{
		PublishedEvents: make([]ports.RequestStatusEvent, 0),
	}
}

func (m *MockStatusEventPublisher) PublishStatusChanged(ctx context.Context, evt ports.RequestStatusEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.PublishCallCount++

	if m.PublishError != nil {
		return m.PublishError
	}

	m.PublishedEvents = append(m.PublishedEvents, evt)
	return nil
}

// Events returns a copy of everything published so far.
func (m *MockStatusEventPublisher) Events() []ports.RequestStatusEvent {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]ports.RequestStatusEvent(nil), m.PublishedEvents...)
}
