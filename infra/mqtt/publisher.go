package mqtt

import (
	"fmt"
	"sync"

	coremqtt "github.com/kilianp07/offshore/core/mqtt"
)

// Publisher mirrors the core mqtt.Publisher interface.
type Publisher = coremqtt.Publisher

// Message is a publication captured by MockPublisher.
type Message struct {
	Class    string
	Topic    string
	Payload  []byte
	Retained bool
}

// MockPublisher is a simple publisher used in tests.
type MockPublisher struct {
	Messages     []Message
	FailTopics   map[string]bool
	Disconnected bool
	mu           sync.Mutex
}

// NewMockPublisher creates a new MockPublisher.
func NewMockPublisher() *MockPublisher {
	return &MockPublisher{FailTopics: make(map[string]bool)}
}

// Publish records the message or returns an error if configured to fail.
func (m *MockPublisher) Publish(class, topic string, payload []byte, retained bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailTopics[topic] {
		return fmt.Errorf("%w: %s", coremqtt.ErrPublishFailed, topic)
	}
	m.Messages = append(m.Messages, Message{Class: class, Topic: topic, Payload: payload, Retained: retained})
	return nil
}

// Disconnect records the call.
func (m *MockPublisher) Disconnect() {
	m.mu.Lock()
	m.Disconnected = true
	m.mu.Unlock()
}

// Topics returns the topics published so far, in order.
func (m *MockPublisher) Topics() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.Messages))
	for i, msg := range m.Messages {
		out[i] = msg.Topic
	}
	return out
}
