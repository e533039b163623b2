// Package reward orchestrates the full scoring pipeline: load the domain
// config, evaluate every category, and aggregate the scores into a single
// reward. It is the one public entry point per (domain, candidate) pair.
package reward

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/ahrav/go-worldreward/internal/config"
	"github.com/ahrav/go-worldreward/internal/domain"
	"github.com/ahrav/go-worldreward/internal/evaluation"
)

// defaultParallelism bounds concurrent category evaluations per call.
// Evaluations are CPU-only and independent, so a small bound is enough.
const defaultParallelism = 4

// Service computes rewards for candidate outputs. Category evaluations
// within one Score call run in parallel; they are pure functions over
// disjoint read-only categories, so result independence is preserved.
type Service struct {
	store       *config.Store
	evaluator   *evaluation.Evaluator
	parallelism int
}

// Option configures a Service.
type Option func(*Service)

// WithParallelism sets the maximum concurrent category evaluations per call.
// Values below 1 force sequential evaluation.
func WithParallelism(n int) Option {
	return func(s *Service) {
		if n < 1 {
			n = 1
		}
		s.parallelism = n
	}
}

// NewService creates a reward service over the given config store.
func NewService(store *config.Store, opts ...Option) *Service {
	s := &Service{
		store:       store,
		evaluator:   evaluation.New(),
		parallelism: defaultParallelism,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Score computes the reward for a candidate within a domain.
//
// The call is all-or-nothing: if the config cannot be loaded or any category
// evaluation fails, the whole call fails with a *domain.ComputationError
// wrapping the originating error and naming the failing category where one
// exists. No partial or best-effort reward is ever returned.
func (s *Service) Score(ctx context.Context, domainName string, candidate *domain.CandidateOutput) (*domain.RewardResult, error) {
	cfg, err := s.store.Load(ctx, domainName)
	if err != nil {
		return nil, domain.NewComputationError(domainName, "", err)
	}

	breakdown, err := s.evaluateAll(ctx, cfg, candidate)
	if err != nil {
		return nil, err
	}

	result, err := domain.Aggregate(cfg, breakdown)
	if err != nil {
		return nil, domain.NewComputationError(domainName, "", err)
	}
	return result, nil
}

// Reload atomically refreshes a domain's cached config. On failure the
// previously cached config remains in effect.
func (s *Service) Reload(ctx context.Context, domainName string) error {
	_, err := s.store.Reload(ctx, domainName)
	return err
}

// Domains lists the domain names with a config available on disk.
func (s *Service) Domains() ([]string, error) { return s.store.Available() }

// evaluateAll scores the candidate against every category of the config.
// The first failing category aborts the remaining work and its identity is
// preserved in the returned error.
func (s *Service) evaluateAll(
	ctx context.Context,
	cfg *domain.DomainConfig,
	candidate *domain.CandidateOutput,
) (map[string]domain.CategoryScore, error) {
	var (
		mu        sync.Mutex
		breakdown = make(map[string]domain.CategoryScore, len(cfg.Categories))
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.parallelism)

	for i := range cfg.Categories {
		category := &cfg.Categories[i]
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return domain.NewComputationError(cfg.Domain, category.Name, err)
			}

			score, err := s.evaluator.Evaluate(category, candidate)
			if err != nil {
				return domain.NewComputationError(cfg.Domain, category.Name, err)
			}

			mu.Lock()
			breakdown[category.Name] = score
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return breakdown, nil
}
