// Package domain provides core types and business logic for world-reward
// evaluation. It defines domain configurations, grounded examples, candidate
// outputs, category scores, and the deterministic aggregation algorithms that
// combine them into a single reward value.
//
// Scoring Architecture:
//   - Domain configs loaded from external files, immutable after load.
//   - Category evaluation as a pure function over grounded examples.
//   - Closed aggregation rule set dispatched via a lookup table.
//   - Comprehensive validation with explicit error taxonomy.
//
// All types are designed so that identical inputs always produce identical
// results, enabling reproducible reward computation and safe caching.
package domain

import (
	"fmt"
)

// AggregationRule identifies the method used to combine category scores
// into a final reward. Using typed constants instead of raw strings provides
// compile-time safety and enables exhaustive dispatch via the rule table.
type AggregationRule string

const (
	// RuleWeightedMean combines scores as sum(weight*score)/sum(weight).
	RuleWeightedMean AggregationRule = "weighted_mean"

	// RuleMin selects the lowest category score. Used for "weakest link"
	// domains where any single physical-plausibility failure should dominate.
	RuleMin AggregationRule = "min"
)

// String returns the string representation of the aggregation rule.
func (r AggregationRule) String() string { return string(r) }

// Known reports whether the rule is a member of the recognized rule set.
// Unknown rules must be rejected at config load time, never at aggregation
// time, so misconfiguration surfaces before any evaluation work is done.
func (r AggregationRule) Known() bool {
	_, ok := aggregators[r]
	return ok
}

// AggregationPolicy declares how category scores are combined for a domain.
type AggregationPolicy struct {
	// Rule selects the aggregation algorithm.
	// Supported values: RuleWeightedMean, RuleMin.
	Rule AggregationRule `json:"rule" yaml:"rule" validate:"required,oneof=weighted_mean min"`
}

// Example is a grounded (input, expected-judgment) pair used as calibration
// and reference data for a category's scoring rule. Examples are immutable
// once loaded; the expected judgment is the physical ground truth.
type Example struct {
	// Input describes the scenario or question the candidate must judge.
	Input string `json:"input" yaml:"input" validate:"required,min=1"`

	// ExpectedJudgment is the ground-truth judgment for the input.
	// Must be a definitive judgment; "undetermined" ground truth would make
	// the example unscorable.
	ExpectedJudgment Judgment `json:"expected_judgment" yaml:"expected_judgment" validate:"required,oneof=yes no"`
}

// Category is a named scoring unit within a domain. It owns the grounded
// examples a candidate is judged against and the weight its score carries
// during aggregation.
type Category struct {
	// Name uniquely identifies the category within its domain.
	Name string `json:"name" yaml:"name" validate:"required,min=1"`

	// Description optionally documents the physical behavior the category covers.
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// Examples are the grounded reference pairs for this category.
	// Every category must carry at least one example.
	Examples []Example `json:"examples" yaml:"examples" validate:"required,min=1,dive"`

	// Weight is the non-negative aggregation weight for this category's score.
	Weight float64 `json:"weight" yaml:"weight" validate:"min=0"`
}

// DomainConfig is the validated configuration for one evaluation domain
// (e.g., "kitchen-physics"). It owns an ordered sequence of categories and
// the aggregation policy that combines their scores. Configs are loaded once
// and treated as read-only thereafter.
type DomainConfig struct {
	// Domain uniquely names this configuration.
	Domain string `json:"domain" yaml:"domain" validate:"required,min=1"`

	// Categories are the scoring units of the domain, in declared order.
	Categories []Category `json:"categories" yaml:"categories" validate:"required,min=1,dive"`

	// Aggregation declares how category scores combine into the reward.
	Aggregation AggregationPolicy `json:"aggregation" yaml:"aggregation" validate:"required"`
}

// CategoryNames returns the category names in declared order.
func (c *DomainConfig) CategoryNames() []string {
	names := make([]string, len(c.Categories))
	for i, cat := range c.Categories {
		names[i] = cat.Name
	}
	return names
}

// Category returns the named category and whether it exists in this domain.
func (c *DomainConfig) Category(name string) (*Category, bool) {
	for i := range c.Categories {
		if c.Categories[i].Name == name {
			return &c.Categories[i], true
		}
	}
	return nil, false
}

// TotalWeight returns the sum of all category weights.
func (c *DomainConfig) TotalWeight() float64 {
	var total float64
	for _, cat := range c.Categories {
		total += cat.Weight
	}
	return total
}

// Validate checks the config against all structural and cross-field
// invariants: required fields, per-category example minimums, weight
// non-negativity, category name uniqueness, a positive total weight, and
// membership of the aggregation rule in the recognized set.
//
// Returns nil if valid. Violations are reported with the sentinel they map
// to (ErrConfigSchema, ErrDuplicateCategory, ErrUnknownAggregationRule) so
// callers can classify failures without string matching.
func (c *DomainConfig) Validate() error {
	if err := validate.Struct(c); err != nil {
		// The oneof tag on Rule fires inside validate.Struct; report it under
		// the rule-specific sentinel so load-time classification is exact.
		if !c.Aggregation.Rule.Known() {
			return fmt.Errorf("%w: %q (domain %q)", ErrUnknownAggregationRule, c.Aggregation.Rule, c.Domain)
		}
		return fmt.Errorf("%w: domain %q: %w", ErrConfigSchema, c.Domain, err)
	}

	seen := make(map[string]struct{}, len(c.Categories))
	for _, cat := range c.Categories {
		if _, dup := seen[cat.Name]; dup {
			return fmt.Errorf("%w: %q (domain %q)", ErrDuplicateCategory, cat.Name, c.Domain)
		}
		seen[cat.Name] = struct{}{}
	}

	if c.TotalWeight() <= 0 {
		return fmt.Errorf("%w: domain %q: category weights must sum to a positive total", ErrConfigSchema, c.Domain)
	}

	return nil
}
