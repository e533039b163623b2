package domain

import (
	"errors"
	"fmt"
)

// Error taxonomy for reward computation. Every failure surfaced to a caller
// wraps one of these sentinels so classification never requires string
// matching. None of them are downgraded to default scores: a failed
// computation is all-or-nothing.
var (
	// ErrConfigNotFound indicates no configuration exists for the requested domain.
	ErrConfigNotFound = errors.New("domain config not found")

	// ErrConfigSchema indicates a config violated a required-field or
	// cross-field invariant (missing fields, empty examples, bad weights).
	ErrConfigSchema = errors.New("domain config schema violation")

	// ErrDuplicateCategory indicates two categories in one domain share a name.
	ErrDuplicateCategory = errors.New("duplicate category name")

	// ErrConfigLoadTimeout indicates config loading exceeded the caller's deadline.
	ErrConfigLoadTimeout = errors.New("domain config load timed out")

	// ErrUnknownAggregationRule indicates the config declared a rule outside
	// the recognized set. Raised at load time, before any evaluation.
	ErrUnknownAggregationRule = errors.New("unknown aggregation rule")

	// ErrEvaluationInput indicates a candidate is missing or malformed for a
	// category: an absent judgment or one outside the judgment vocabulary.
	ErrEvaluationInput = errors.New("invalid evaluation input")

	// ErrIncompleteScoreSet indicates aggregation was attempted without a
	// score for every declared category. A missing score is a correctness
	// bug, never silently zero-filled.
	ErrIncompleteScoreSet = errors.New("incomplete category score set")
)

// ComputationError wraps any failure surfaced through the reward facade,
// preserving the domain and, when applicable, the failing category so
// callers can diagnose without inspecting engine internals.
type ComputationError struct {
	// Domain names the domain whose reward computation failed.
	Domain string

	// Category names the failing category, empty when the failure is not
	// category-scoped (e.g. config load errors).
	Category string

	// Err is the underlying error.
	Err error
}

// Error implements the error interface with full failure context.
func (e *ComputationError) Error() string {
	if e.Category != "" {
		return fmt.Sprintf("reward computation failed for domain %q, category %q: %v", e.Domain, e.Category, e.Err)
	}
	return fmt.Sprintf("reward computation failed for domain %q: %v", e.Domain, e.Err)
}

// Unwrap returns the underlying error for chain inspection.
func (e *ComputationError) Unwrap() error { return e.Err }

// NewComputationError wraps err with domain and category identity.
func NewComputationError(domain, category string, err error) *ComputationError {
	return &ComputationError{Domain: domain, Category: category, Err: err}
}
