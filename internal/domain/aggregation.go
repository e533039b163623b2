package domain

import (
	"fmt"
)

// aggregator combines the scores for a domain's declared categories into a
// single reward value. Implementations receive the config and a breakdown
// already verified to contain one entry per declared category, and must be
// pure functions of their inputs.
type aggregator func(cfg *DomainConfig, breakdown map[string]CategoryScore) float64

// aggregators is the closed dispatch table for aggregation rules. Rule
// membership is checked against this table at config load time, so an
// unknown rule can never reach aggregation.
var aggregators = map[AggregationRule]aggregator{
	RuleWeightedMean: aggregateWeightedMean,
	RuleMin:          aggregateMin,
}

// Aggregate combines category scores into a RewardResult according to the
// domain's declared aggregation policy.
//
// The breakdown must contain an entry for every category declared in cfg;
// a missing entry fails with ErrIncompleteScoreSet rather than being
// zero-filled, since a missing score is a correctness bug, not a valid
// outcome. Entries for categories the config does not declare are ignored:
// aggregation is driven by the declared category list.
//
// The returned result carries the reward clamped to [0,1], the rule that was
// applied, and a breakdown holding exactly the declared categories.
func Aggregate(cfg *DomainConfig, breakdown map[string]CategoryScore) (*RewardResult, error) {
	combine, ok := aggregators[cfg.Aggregation.Rule]
	if !ok {
		// Unreachable for configs that passed Validate; kept for direct callers.
		return nil, fmt.Errorf("%w: %q (domain %q)", ErrUnknownAggregationRule, cfg.Aggregation.Rule, cfg.Domain)
	}

	declared := make(map[string]CategoryScore, len(cfg.Categories))
	for _, cat := range cfg.Categories {
		score, present := breakdown[cat.Name]
		if !present {
			return nil, fmt.Errorf("%w: missing score for category %q (domain %q)",
				ErrIncompleteScoreSet, cat.Name, cfg.Domain)
		}
		declared[cat.Name] = score
	}

	return &RewardResult{
		Domain:    cfg.Domain,
		Reward:    clamp01(combine(cfg, declared)),
		Rule:      cfg.Aggregation.Rule,
		Breakdown: declared,
	}, nil
}

// aggregateWeightedMean computes sum(weight*score)/sum(weight) over the
// declared categories. Config validation guarantees a positive total weight.
func aggregateWeightedMean(cfg *DomainConfig, breakdown map[string]CategoryScore) float64 {
	var weightedSum, totalWeight float64
	for _, cat := range cfg.Categories {
		weightedSum += cat.Weight * breakdown[cat.Name].Value
		totalWeight += cat.Weight
	}
	if totalWeight <= 0 {
		return 0
	}
	return weightedSum / totalWeight
}

// aggregateMin selects the lowest category score, so any single
// physical-plausibility failure dominates the reward. Weights are ignored.
func aggregateMin(cfg *DomainConfig, breakdown map[string]CategoryScore) float64 {
	lowest := 1.0
	for _, cat := range cfg.Categories {
		if v := breakdown[cat.Name].Value; v < lowest {
			lowest = v
		}
	}
	return lowest
}
