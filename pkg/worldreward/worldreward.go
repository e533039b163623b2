// Package worldreward is the public entry point for the world-reward
// engine. It wires the config store, category evaluator, and aggregator
// into a single client for scoring candidate outputs against a directory of
// domain configuration files.
package worldreward

import (
	"context"
	"log/slog"

	"github.com/ahrav/go-worldreward/internal/config"
	"github.com/ahrav/go-worldreward/internal/domain"
	"github.com/ahrav/go-worldreward/internal/reward"
)

// Re-exported domain types forming the public data contract.
type (
	// CandidateOutput is the object under evaluation.
	CandidateOutput = domain.CandidateOutput

	// Judgment is a candidate's answer to an example input.
	Judgment = domain.Judgment

	// CategoryScore is the bounded per-category score.
	CategoryScore = domain.CategoryScore

	// RewardResult is the final reward with its per-category breakdown.
	RewardResult = domain.RewardResult

	// ComputationError wraps any failure surfaced by Score.
	ComputationError = domain.ComputationError
)

// Judgment vocabulary.
const (
	JudgmentYes          = domain.JudgmentYes
	JudgmentNo           = domain.JudgmentNo
	JudgmentUndetermined = domain.JudgmentUndetermined
)

// Sentinel errors callers can classify with errors.Is.
var (
	ErrConfigNotFound         = domain.ErrConfigNotFound
	ErrConfigSchema           = domain.ErrConfigSchema
	ErrDuplicateCategory      = domain.ErrDuplicateCategory
	ErrConfigLoadTimeout      = domain.ErrConfigLoadTimeout
	ErrUnknownAggregationRule = domain.ErrUnknownAggregationRule
	ErrEvaluationInput        = domain.ErrEvaluationInput
	ErrIncompleteScoreSet     = domain.ErrIncompleteScoreSet
)

// Client scores candidate outputs against the domain configs in one
// directory. Configs are cached for the client's lifetime; reads are
// lock-free and reloads are atomic.
type Client struct {
	store   *config.Store
	service *reward.Service
	watcher *config.Watcher
}

// Options configures a Client.
type Options struct {
	// Parallelism bounds concurrent category evaluations per Score call.
	// Zero selects the default.
	Parallelism int

	// Watch enables hot-reloading of changed config files.
	Watch bool

	// Logger receives watcher diagnostics. Nil uses slog.Default().
	Logger *slog.Logger
}

// New creates a client over the given config directory.
func New(configDir string, opts Options) (*Client, error) {
	store := config.NewStore(config.NewLoader(configDir))

	var serviceOpts []reward.Option
	if opts.Parallelism > 0 {
		serviceOpts = append(serviceOpts, reward.WithParallelism(opts.Parallelism))
	}

	c := &Client{
		store:   store,
		service: reward.NewService(store, serviceOpts...),
	}

	if opts.Watch {
		watcher, err := config.NewWatcher(store, opts.Logger)
		if err != nil {
			return nil, err
		}
		c.watcher = watcher
	}

	return c, nil
}

// Score computes the reward for a candidate within a domain. The call is
// all-or-nothing: any config or category failure fails the whole call with
// a *ComputationError and no partial reward.
func (c *Client) Score(ctx context.Context, domainName string, candidate *CandidateOutput) (*RewardResult, error) {
	return c.service.Score(ctx, domainName, candidate)
}

// Reload atomically refreshes a domain's cached config. On failure the
// previously cached config remains in effect.
func (c *Client) Reload(ctx context.Context, domainName string) error {
	return c.service.Reload(ctx, domainName)
}

// Domains lists the domain names with a config file available.
func (c *Client) Domains() ([]string, error) { return c.service.Domains() }

// Close releases the config watcher, if one was started.
func (c *Client) Close() error {
	if c.watcher == nil {
		return nil
	}
	return c.watcher.Close()
}
