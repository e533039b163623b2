// Package events provides the generic event infrastructure for reward event
// emission. It defines the Envelope type for wrapping domain events with
// consistent metadata and the EventSink interface for event storage or
// transmission.
package events

import (
	"context"
	"encoding/json"
	"sync"
	"time"
)

// Envelope wraps domain events with consistent metadata for reliable event
// processing. It is a generic container for any domain-specific payload
// while maintaining standard fields for routing, idempotency, and
// observability.
type Envelope struct {
	// ID uniquely identifies this event instance.
	ID string `json:"id"`

	// Type identifies the event for routing and processing.
	// Examples: "reward.category_scored", "reward.computed".
	Type string `json:"type"`

	// Source identifies the component that emitted this event.
	Source string `json:"source"`

	// Version enables schema evolution and backward compatibility.
	Version string `json:"version"`

	// Timestamp records when the event was emitted.
	Timestamp time.Time `json:"timestamp"`

	// IdempotencyKey ensures exactly-once processing during retries.
	// Generated deterministically from workflow context and event content.
	IdempotencyKey string `json:"idempotency_key"`

	// WorkflowID identifies the workflow execution that triggered this event.
	WorkflowID string `json:"workflow_id"`

	// RunID identifies the specific workflow execution run.
	RunID string `json:"run_id"`

	// Payload contains the domain-specific event data as JSON.
	Payload json.RawMessage `json:"payload"`
}

// EventSink defines the interface for emitting events to downstream
// consumers. Implementations could include database outbox patterns, message
// queues, or simple log outputs.
//
// Implementations should handle idempotency (duplicate events are no-ops)
// and return quickly. Events matter for observability, not correctness:
// callers must not fail their primary operation on sink errors.
type EventSink interface {
	// Append adds an event to the sink with best-effort delivery.
	Append(ctx context.Context, envelope Envelope) error
}

// NoOpEventSink is a null implementation of EventSink for testing or when
// events are disabled. All Append calls succeed immediately.
type NoOpEventSink struct{}

// Append implements EventSink.Append with no-op behavior.
func (n *NoOpEventSink) Append(_ context.Context, _ Envelope) error { return nil }

// NewNoOpEventSink creates a new no-op event sink.
func NewNoOpEventSink() EventSink { return &NoOpEventSink{} }

// MemoryEventSink collects events in memory, deduplicating on idempotency
// key. Intended for tests and local development.
type MemoryEventSink struct {
	mu   sync.Mutex
	seen map[string]struct{}
	all  []Envelope
}

// NewMemoryEventSink creates an empty in-memory sink.
func NewMemoryEventSink() *MemoryEventSink {
	return &MemoryEventSink{seen: make(map[string]struct{})}
}

// Append stores the envelope, dropping duplicates by idempotency key.
func (m *MemoryEventSink) Append(_ context.Context, envelope Envelope) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if envelope.IdempotencyKey != "" {
		if _, dup := m.seen[envelope.IdempotencyKey]; dup {
			return nil
		}
		m.seen[envelope.IdempotencyKey] = struct{}{}
	}
	m.all = append(m.all, envelope)
	return nil
}

// Events returns a copy of the collected envelopes in emission order.
func (m *MemoryEventSink) Events() []Envelope {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]Envelope, len(m.all))
	copy(out, m.all)
	return out
}
