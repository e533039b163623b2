package domain

import "strings"

// Judgment is a candidate's or ground-truth answer to an example input.
// Judgments form a closed vocabulary so comparisons stay exact.
type Judgment string

const (
	// JudgmentYes affirms the example's question.
	JudgmentYes Judgment = "yes"

	// JudgmentNo denies the example's question.
	JudgmentNo Judgment = "no"

	// JudgmentUndetermined indicates the candidate could not decide.
	// Valid only on the candidate side; excluded from the evaluable set
	// rather than counted as a mismatch.
	JudgmentUndetermined Judgment = "undetermined"
)

// String returns the string representation of the judgment.
func (j Judgment) String() string { return string(j) }

// NormalizeJudgment lowercases and trims a raw judgment string.
// Returns the normalized judgment and whether it belongs to the vocabulary.
func NormalizeJudgment(raw string) (Judgment, bool) {
	j := Judgment(strings.ToLower(strings.TrimSpace(raw)))
	switch j {
	case JudgmentYes, JudgmentNo, JudgmentUndetermined:
		return j, true
	default:
		return j, false
	}
}

// CandidateOutput is the object under evaluation: the judgments a candidate
// (world model, agent, or human baseline) produced for a domain's example
// inputs. The engine treats the payload as opaque beyond the inputs it must
// answer; judgments are keyed by example input.
type CandidateOutput struct {
	// Domain names the evaluation domain this candidate is scoped to.
	Domain string `json:"domain" validate:"required,min=1"`

	// Judgments maps example input to the candidate's judgment for it.
	// Every example of every category in the domain must have an entry.
	Judgments map[string]Judgment `json:"judgments" validate:"required,min=1"`
}

// Validate checks the candidate output against its structural requirements.
// Returns nil if valid, or a validation error describing the violation.
func (c *CandidateOutput) Validate() error { return validate.Struct(c) }

// JudgmentFor returns the candidate's judgment for an example input and
// whether one was supplied.
func (c *CandidateOutput) JudgmentFor(input string) (Judgment, bool) {
	j, ok := c.Judgments[input]
	return j, ok
}
