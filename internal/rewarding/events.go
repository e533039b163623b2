package rewarding

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/ahrav/go-worldreward/internal/domain"
	"github.com/ahrav/go-worldreward/pkg/activity"
	"github.com/ahrav/go-worldreward/pkg/events"
)

// EventEmitter handles event emission for the rewarding domain. It
// encapsulates the logic for creating and emitting reward-specific events
// with proper metadata. Emission is best-effort; failures are logged without
// affecting the core operation.
type EventEmitter struct {
	base activity.BaseActivities
}

// NewEventEmitter creates an EventEmitter over the shared base activities.
func NewEventEmitter(base activity.BaseActivities) *EventEmitter {
	return &EventEmitter{base: base}
}

// EmitRewardEvents emits one CategoryScored event per category in the
// breakdown followed by a RewardComputed event for the final reward.
// Idempotency keys are deterministic in the workflow context, so retried
// activities emit duplicates that sinks can drop.
func (e *EventEmitter) EmitRewardEvents(
	ctx context.Context,
	result *domain.RewardResult,
	wfCtx activity.WorkflowContext,
) {
	now := time.Now()

	for _, cat := range sortedCategories(result.Breakdown) {
		score := result.Breakdown[cat]
		domainEvent, err := domain.NewCategoryScoredEvent(wfCtx.WorkflowID, wfCtx.RunID, now,
			domain.CategoryScoredPayload{Domain: result.Domain, Score: score})
		if err != nil {
			activity.SafeLogError(ctx, "Failed to create CategoryScored event",
				"category", cat,
				"error", err)
			continue
		}

		e.base.EmitEventSafe(ctx, toEnvelope(domainEvent), fmt.Sprintf("CategoryScored[%s/%s]", result.Domain, cat))
	}

	domainEvent, err := domain.NewRewardComputedEvent(wfCtx.WorkflowID, wfCtx.RunID, now,
		domain.RewardComputedPayload{
			Domain:     result.Domain,
			Reward:     result.Reward,
			Rule:       result.Rule,
			Categories: len(result.Breakdown),
		})
	if err != nil {
		activity.SafeLogError(ctx, "Failed to create RewardComputed event",
			"domain", result.Domain,
			"error", err)
		return
	}

	e.base.EmitEventSafe(ctx, toEnvelope(domainEvent), fmt.Sprintf("RewardComputed[%s]", result.Domain))
}

// toEnvelope converts a domain.EventEnvelope to the generic events.Envelope,
// bridging the domain event system with the base activity infrastructure.
func toEnvelope(domainEvent domain.EventEnvelope) events.Envelope {
	return events.Envelope{
		ID:             uuid.New().String(),
		Type:           eventTypeName(domainEvent.EventType),
		Source:         "rewarding-activity",
		Version:        fmt.Sprintf("%d.0.0", domainEvent.Version),
		Timestamp:      domainEvent.OccurredAt,
		IdempotencyKey: domainEvent.IdempotencyKey,
		WorkflowID:     domainEvent.WorkflowID,
		RunID:          domainEvent.RunID,
		Payload:        domainEvent.Payload,
	}
}

// eventTypeName maps domain event types to dotted wire names.
func eventTypeName(t domain.EventType) string {
	switch t {
	case domain.EventTypeCategoryScored:
		return "reward.category_scored"
	case domain.EventTypeRewardComputed:
		return "reward.computed"
	default:
		return string(t)
	}
}

// sortedCategories returns the breakdown's category names in stable order so
// event emission order is deterministic across retries.
func sortedCategories(breakdown map[string]domain.CategoryScore) []string {
	names := make([]string, 0, len(breakdown))
	for name := range breakdown {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
