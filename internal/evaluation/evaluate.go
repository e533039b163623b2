// Package evaluation scores a candidate output against one category's
// grounded examples. Evaluation is a pure function of (category, candidate):
// no I/O, no shared state, identical inputs always produce identical scores.
package evaluation

import (
	"fmt"

	"github.com/ahrav/go-worldreward/internal/domain"
)

// Evaluator scores candidates against category examples by exact judgment
// comparison. The zero value is ready to use.
type Evaluator struct{}

// New returns an Evaluator.
func New() *Evaluator { return &Evaluator{} }

// Evaluate scores a candidate against one category.
//
// For every example in the category the candidate must supply a judgment for
// the example's input; a missing judgment or one outside the vocabulary
// fails with domain.ErrEvaluationInput naming the category and input, rather
// than silently defaulting to a score.
//
// Undetermined judgments carry no evidence either way and are excluded from
// the evaluable set instead of counting as mismatches. The score is
// matched/evaluable clamped to [0,1]; a category where every judgment is
// undetermined scores 0.
func (e *Evaluator) Evaluate(category *domain.Category, candidate *domain.CandidateOutput) (domain.CategoryScore, error) {
	if category == nil || len(category.Examples) == 0 {
		return domain.CategoryScore{}, fmt.Errorf("%w: category has no examples", domain.ErrEvaluationInput)
	}
	if candidate == nil || len(candidate.Judgments) == 0 {
		return domain.CategoryScore{}, fmt.Errorf("%w: candidate has no judgments (category %q)",
			domain.ErrEvaluationInput, category.Name)
	}

	var matched, evaluated, undetermined int
	for _, example := range category.Examples {
		raw, ok := candidate.JudgmentFor(example.Input)
		if !ok {
			return domain.CategoryScore{}, fmt.Errorf("%w: missing judgment for input %q (category %q)",
				domain.ErrEvaluationInput, example.Input, category.Name)
		}

		judgment, ok := domain.NormalizeJudgment(raw.String())
		if !ok {
			return domain.CategoryScore{}, fmt.Errorf("%w: judgment %q for input %q is not one of yes/no/undetermined (category %q)",
				domain.ErrEvaluationInput, raw, example.Input, category.Name)
		}

		if judgment == domain.JudgmentUndetermined {
			undetermined++
			continue
		}

		evaluated++
		if judgment == example.ExpectedJudgment {
			matched++
		}
	}

	return domain.MakeCategoryScore(category.Name, matched, evaluated, undetermined), nil
}
