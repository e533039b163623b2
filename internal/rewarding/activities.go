// Package rewarding implements Temporal activities for reward computation.
// It wraps the in-process reward engine with activity-level validation,
// error classification, and best-effort event emission so workflows can
// orchestrate config loading and candidate scoring.
package rewarding

import (
	"context"
	"errors"
	"time"

	"go.temporal.io/sdk/temporal"

	"github.com/ahrav/go-worldreward/internal/domain"
	"github.com/ahrav/go-worldreward/internal/reward"
	"github.com/ahrav/go-worldreward/pkg/activity"
)

// Activities handles reward-specific Temporal activities. It encapsulates
// config loading and candidate scoring on top of the shared base
// infrastructure for logging and event emission.
type Activities struct {
	activity.BaseActivities
	service *reward.Service
	events  *EventEmitter
}

// NewActivities creates reward activities with the provided dependencies.
// The base activities provide common infrastructure for logging and event
// emission; the service owns the config cache and evaluation pipeline.
func NewActivities(base activity.BaseActivities, service *reward.Service) *Activities {
	return &Activities{
		BaseActivities: base,
		service:        service,
		events:         NewEventEmitter(base),
	}
}

// ScoreCandidateInput is the input contract for the ScoreCandidate activity.
type ScoreCandidateInput struct {
	// Domain names the evaluation domain to score against.
	Domain string `json:"domain"`

	// Candidate holds the judgments under evaluation.
	Candidate domain.CandidateOutput `json:"candidate"`
}

// ScoreCandidate computes the reward for a candidate within a domain.
//
// Config, schema, and evaluation-input failures are deterministic: retrying
// on the same inputs would reproduce the same failure, so they surface as
// non-retryable application errors. Load timeouts are the one transient
// case and are left retryable for Temporal's retry policy.
func (a *Activities) ScoreCandidate(ctx context.Context, input ScoreCandidateInput) (*domain.RewardResult, error) {
	if input.Domain == "" {
		return nil, nonRetryable("ScoreCandidate", domain.ErrEvaluationInput, "missing domain name")
	}
	if err := input.Candidate.Validate(); err != nil {
		return nil, nonRetryable("ScoreCandidate", err, "invalid candidate")
	}

	wfCtx := a.GetWorkflowContext(ctx)
	activity.SafeLog(ctx, "Starting ScoreCandidate activity",
		"workflow_id", wfCtx.WorkflowID,
		"activity_id", wfCtx.ActivityID,
		"domain", input.Domain)

	started := time.Now()
	result, err := a.service.Score(ctx, input.Domain, &input.Candidate)
	if err != nil {
		if isTransient(err) {
			return nil, retryable("ScoreCandidate", err, "config load timed out")
		}
		return nil, nonRetryable("ScoreCandidate", err, "reward computation failed")
	}

	a.events.EmitRewardEvents(ctx, result, wfCtx)

	activity.SafeLog(ctx, "ScoreCandidate completed",
		"domain", result.Domain,
		"reward", result.Reward,
		"rule", result.Rule.String(),
		"categories", len(result.Breakdown),
		"processing_time_ms", time.Since(started).Milliseconds())

	return result, nil
}

// ReloadDomainInput is the input contract for the ReloadDomain activity.
type ReloadDomainInput struct {
	// Domain names the config to refresh from storage.
	Domain string `json:"domain"`
}

// ReloadDomain atomically refreshes a domain's cached config. A failed
// reload leaves the previous snapshot in effect; schema failures are
// non-retryable since the file content will not change between attempts.
func (a *Activities) ReloadDomain(ctx context.Context, input ReloadDomainInput) error {
	if input.Domain == "" {
		return nonRetryable("ReloadDomain", domain.ErrConfigNotFound, "missing domain name")
	}

	if err := a.service.Reload(ctx, input.Domain); err != nil {
		if isTransient(err) {
			return retryable("ReloadDomain", err, "config load timed out")
		}
		return nonRetryable("ReloadDomain", err, "reload failed")
	}

	activity.SafeLog(ctx, "ReloadDomain completed", "domain", input.Domain)
	return nil
}

// isTransient reports whether the failure could succeed on retry.
// Only storage timeouts qualify; everything else in the taxonomy is
// deterministic for fixed inputs.
func isTransient(err error) bool {
	return errors.Is(err, domain.ErrConfigLoadTimeout)
}

// nonRetryable wraps an error as a Temporal non-retryable application error.
// Used for validation failures and deterministic computation failures that
// should never trigger automatic retries.
func nonRetryable(tag string, cause error, msg string) error {
	return temporal.NewNonRetryableApplicationError(msg, tag, cause)
}

// retryable wraps an error as a retryable Temporal application error.
func retryable(tag string, cause error, msg string) error {
	return temporal.NewApplicationErrorWithCause(msg, tag, cause)
}
