package workflow

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	"github.com/ahrav/go-worldreward/internal/domain"
	"github.com/ahrav/go-worldreward/internal/rewarding"
)

// RewardRequest is the input contract for RewardWorkflow.
type RewardRequest struct {
	// Domain names the evaluation domain to score against.
	Domain string `json:"domain"`

	// Candidate holds the judgments under evaluation.
	Candidate domain.CandidateOutput `json:"candidate"`

	// ScoreTimeoutSecs bounds the ScoreCandidate activity. Zero selects the
	// default timeout.
	ScoreTimeoutSecs int64 `json:"score_timeout_secs,omitempty"`
}

// defaultScoreTimeout bounds a single scoring activity execution.
const defaultScoreTimeout = 30 * time.Second

// RewardWorkflow orchestrates reward computation for one candidate with
// deterministic execution. The heavy lifting (config load, category
// evaluation, aggregation) happens inside the ScoreCandidate activity;
// the workflow contributes validation, timeouts, and the retry policy.
//
// Deterministic failures (schema, evaluation input, incomplete score sets)
// arrive as non-retryable application errors and fail the workflow
// immediately; only transient config-load timeouts are retried.
func RewardWorkflow(ctx workflow.Context, req RewardRequest) (*domain.RewardResult, error) {
	// Version gate enables safe evolution and backward compatibility.
	const currentVersion = 1
	_ = workflow.GetVersion(ctx, "reward.v", workflow.DefaultVersion, currentVersion)

	if req.Domain == "" {
		return nil, temporal.NewNonRetryableApplicationError(
			"missing domain name",
			"Validation",
			domain.ErrConfigNotFound,
		)
	}
	if err := req.Candidate.Validate(); err != nil {
		return nil, temporal.NewNonRetryableApplicationError(
			"invalid candidate output",
			"Validation",
			err,
		)
	}

	timeout := defaultScoreTimeout
	if req.ScoreTimeoutSecs > 0 {
		timeout = time.Duration(req.ScoreTimeoutSecs) * time.Second
	}

	ao := workflow.ActivityOptions{
		StartToCloseTimeout: timeout,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    time.Minute,
			MaximumAttempts:    3,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, ao)

	var activities *rewarding.Activities
	var result domain.RewardResult
	err := workflow.ExecuteActivity(ctx, activities.ScoreCandidate, rewarding.ScoreCandidateInput{
		Domain:    req.Domain,
		Candidate: req.Candidate,
	}).Get(ctx, &result)
	if err != nil {
		return nil, err
	}

	return &result, nil
}
