package worldreward

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const kitchenPhysicsYAML = `domain: kitchen-physics
categories:
  - name: object-stability
    weight: 2
    examples:
      - {input: "Does the stacked plate tower remain standing after the bump?", expected_judgment: "no"}
  - name: liquid-behavior
    weight: 1
    examples:
      - {input: "Does the spilled water spread across the counter?", expected_judgment: "yes"}
aggregation:
  rule: weighted_mean
`

func newTestClient(t *testing.T, opts Options) *Client {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "kitchen-physics.yaml"), []byte(kitchenPhysicsYAML), 0o644))

	client, err := New(dir, opts)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestClient_Score(t *testing.T) {
	client := newTestClient(t, Options{})

	candidate := &CandidateOutput{
		Domain: "kitchen-physics",
		Judgments: map[string]Judgment{
			"Does the stacked plate tower remain standing after the bump?": JudgmentNo,
			"Does the spilled water spread across the counter?":            JudgmentNo,
		},
	}

	result, err := client.Score(context.Background(), "kitchen-physics", candidate)
	require.NoError(t, err)

	// stability correct (weight 2), liquid wrong (weight 1): 2/3.
	assert.InDelta(t, 2.0/3.0, result.Reward, 1e-9)
	assert.Len(t, result.Breakdown, 2)
	for name, score := range result.Breakdown {
		assert.Equal(t, name, score.Category)
		assert.GreaterOrEqual(t, score.Value, 0.0)
		assert.LessOrEqual(t, score.Value, 1.0)
	}
}

func TestClient_ScoreUnknownDomain(t *testing.T) {
	client := newTestClient(t, Options{})

	candidate := &CandidateOutput{
		Domain:    "orbital-mechanics",
		Judgments: map[string]Judgment{"q": JudgmentYes},
	}

	_, err := client.Score(context.Background(), "orbital-mechanics", candidate)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConfigNotFound)

	var compErr *ComputationError
	require.True(t, errors.As(err, &compErr))
	assert.Equal(t, "orbital-mechanics", compErr.Domain)
}

func TestClient_Domains(t *testing.T) {
	client := newTestClient(t, Options{Parallelism: 2})

	names, err := client.Domains()
	require.NoError(t, err)
	assert.Equal(t, []string{"kitchen-physics"}, names)
}

func TestClient_WithWatcher(t *testing.T) {
	client := newTestClient(t, Options{Watch: true})
	require.NoError(t, client.Close())
	// Closing twice must not hang or panic.
	require.NoError(t, client.Close())
}
