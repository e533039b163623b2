package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"
)

// EventType represents the type of event emitted by the reward system.
// Using typed constants provides compile-time safety and enables
// exhaustive switch statements for event handling.
type EventType string

const (
	// EventTypeCategoryScored is emitted when a single category evaluation
	// completes. One event per (candidate, category) pair.
	EventTypeCategoryScored EventType = "CategoryScored"

	// EventTypeRewardComputed is emitted when a full reward computation
	// completes. One event per scored candidate with the final reward.
	EventTypeRewardComputed EventType = "RewardComputed"
)

// EventEnvelope wraps reward events with consistent metadata for projection
// processing. Provides workflow context, idempotency, and versioning that
// enable reliable event-driven projections and analytics.
type EventEnvelope struct {
	// IdempotencyKey ensures events are processed exactly once during retries.
	// Generated deterministically from workflow context and event content.
	IdempotencyKey string `json:"idempotency_key" validate:"required"`

	// EventType identifies the specific type of event for routing and processing.
	EventType EventType `json:"event_type" validate:"required"`

	// Version enables event schema evolution and backward compatibility.
	Version int `json:"version" validate:"required,min=1"`

	// OccurredAt records when the event occurred in the system.
	OccurredAt time.Time `json:"occurred_at" validate:"required"`

	// WorkflowID identifies the workflow execution that generated this event.
	WorkflowID string `json:"workflow_id" validate:"required"`

	// RunID identifies the specific workflow execution run.
	RunID string `json:"run_id" validate:"required"`

	// Payload contains the event-specific data as JSON.
	Payload json.RawMessage `json:"payload" validate:"required"`

	// Producer identifies the component that emitted this event.
	Producer string `json:"producer" validate:"required"`
}

// Validate checks if the event envelope meets all requirements.
func (e *EventEnvelope) Validate() error { return validate.Struct(e) }

// CategoryScoredPayload contains the data for CategoryScored events.
type CategoryScoredPayload struct {
	// Domain names the evaluation domain.
	Domain string `json:"domain" validate:"required"`

	// Score is the full category score including match counts.
	Score CategoryScore `json:"score" validate:"required"`
}

// RewardComputedPayload contains the data for RewardComputed events.
type RewardComputedPayload struct {
	// Domain names the evaluation domain.
	Domain string `json:"domain" validate:"required"`

	// Reward is the final aggregate score in [0,1].
	Reward float64 `json:"reward" validate:"min=0,max=1"`

	// Rule records the aggregation rule that produced the reward.
	Rule AggregationRule `json:"rule" validate:"required"`

	// Categories counts the categories that contributed to the reward.
	Categories int `json:"categories" validate:"min=1"`
}

// NewCategoryScoredEvent builds a CategoryScored envelope with a
// deterministic idempotency key derived from the workflow context and the
// category identity, so retried activities emit identical events.
func NewCategoryScoredEvent(
	workflowID, runID string,
	occurredAt time.Time,
	payload CategoryScoredPayload,
) (EventEnvelope, error) {
	return newEnvelope(EventTypeCategoryScored, workflowID, runID, occurredAt,
		idempotencyKey(workflowID, runID, string(EventTypeCategoryScored), payload.Domain, payload.Score.Category),
		payload)
}

// NewRewardComputedEvent builds a RewardComputed envelope with a
// deterministic idempotency key derived from the workflow context and domain.
func NewRewardComputedEvent(
	workflowID, runID string,
	occurredAt time.Time,
	payload RewardComputedPayload,
) (EventEnvelope, error) {
	return newEnvelope(EventTypeRewardComputed, workflowID, runID, occurredAt,
		idempotencyKey(workflowID, runID, string(EventTypeRewardComputed), payload.Domain),
		payload)
}

func newEnvelope(
	eventType EventType,
	workflowID, runID string,
	occurredAt time.Time,
	key string,
	payload any,
) (EventEnvelope, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return EventEnvelope{}, fmt.Errorf("marshal %s payload: %w", eventType, err)
	}

	envelope := EventEnvelope{
		IdempotencyKey: key,
		EventType:      eventType,
		Version:        1,
		OccurredAt:     occurredAt,
		WorkflowID:     workflowID,
		RunID:          runID,
		Payload:        raw,
		Producer:       "worldreward-engine",
	}
	return envelope, envelope.Validate()
}

// idempotencyKey hashes the identifying parts into a stable hex key.
func idempotencyKey(parts ...string) string {
	h := sha256.New()
	for _, p := range parts {
		h.Write([]byte(p))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}
