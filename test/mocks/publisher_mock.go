package mocks

import (
	"context"
	"sync"

	"github.com/AchilleasB/baby-kliniek/clinic-portal/internal/core/ports"
)

// MockAuditPublisher implements ports.AuditPublisher for testing without RabbitMQ.
type MockAuditPublisher struct {
	mu sync.RWMutex

	// Track published events for verification
	PublishedEvents []ports.AuditEvent

	// Error injection for testing error scenarios
	PublishError error

	PublishCallCount int
}

var _ ports.AuditPublisher = (*MockAuditPublisher)(nil)

func NewMockAuditPublisher() *MockAuditPublisher {
	return &MockAuditPublisher{
		PublishedEvents: make([]ports.AuditEvent, 0),
	}
}

func (m *MockAuditPublisher) Publish(ctx context.Context, evt ports.AuditEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.PublishCallCount++

	if m.PublishError != nil {
		return m.PublishError
	}

	m.PublishedEvents = append(m.PublishedEvents, evt)
	return nil
}

// GetPublishedEvents returns a copy of the events published so far.
func (m *MockAuditPublisher) GetPublishedEvents() []ports.AuditEvent {
	m.mu.RLock()
	defer m.mu.RUnlock()

	events := make([]ports.AuditEvent, len(m.PublishedEvents))
	copy(events, m.PublishedEvents)
	return events
}

// Actions lists the action names of published events in order.
func (m *MockAuditPublisher) Actions() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	actions := make([]string, 0, len(m.PublishedEvents))
	for _, e := range m.PublishedEvents {
		actions = append(actions, e.Action)
	}
	return actions
}

func (m *MockAuditPublisher) GetPublishCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.PublishCallCount
}

func (m *MockAuditPublisher) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.PublishedEvents = make([]ports.AuditEvent, 0)
	m.PublishError = nil
	m.PublishCallCount = 0
}
