package domain

// clamp01 ensures a value is within the range [0, 1].
func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

// CategoryScore is the bounded score a candidate earned on one category.
// The match counts are carried alongside the value so callers can explain
// how the score was produced without re-running the evaluation.
type CategoryScore struct {
	// Category names the scoring unit this score belongs to.
	Category string `json:"category" validate:"required,min=1"`

	// Value is the normalized score between 0.0 (worst) and 1.0 (best).
	Value float64 `json:"value" validate:"min=0,max=1"`

	// Evaluated counts examples where the candidate gave a definitive
	// judgment. Undetermined judgments are excluded from this set.
	Evaluated int `json:"evaluated" validate:"min=0"`

	// Matched counts evaluated examples whose judgment agreed with the
	// expected judgment.
	Matched int `json:"matched" validate:"min=0"`

	// Undetermined counts examples the candidate could not decide.
	Undetermined int `json:"undetermined" validate:"min=0"`
}

// Validate checks the category score against its structural requirements.
func (s *CategoryScore) Validate() error { return validate.Struct(s) }

// MakeCategoryScore builds a CategoryScore from raw match counts.
// The value is matched/evaluated clamped to [0,1]; zero evaluable examples
// yield a value of 0 rather than a division error.
func MakeCategoryScore(category string, matched, evaluated, undetermined int) CategoryScore {
	var value float64
	if evaluated > 0 {
		value = clamp01(float64(matched) / float64(evaluated))
	}
	return CategoryScore{
		Category:     category,
		Value:        value,
		Evaluated:    evaluated,
		Matched:      matched,
		Undetermined: undetermined,
	}
}

// RewardResult is the final aggregate reward for one (domain, candidate)
// pair, with the full per-category breakdown retained for explainability.
// Results are transient: created per evaluation call and owned by the caller.
type RewardResult struct {
	// Domain names the evaluation domain the reward was computed for.
	Domain string `json:"domain" validate:"required,min=1"`

	// Reward is the final aggregate score in [0,1].
	Reward float64 `json:"reward" validate:"min=0,max=1"`

	// Rule records which aggregation rule actually produced the reward.
	Rule AggregationRule `json:"rule" validate:"required"`

	// Breakdown maps category name to its score for traceability.
	// Contains exactly one entry per category declared in the domain config.
	Breakdown map[string]CategoryScore `json:"breakdown" validate:"required,min=1"`
}

// Validate checks the reward result against its structural requirements.
func (r *RewardResult) Validate() error { return validate.Struct(r) }
