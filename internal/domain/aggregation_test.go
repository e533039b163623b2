package domain //nolint:testpackage // Need access to unexported aggregators

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func breakdownFor(values map[string]float64) map[string]CategoryScore {
	breakdown := make(map[string]CategoryScore, len(values))
	for name, v := range values {
		breakdown[name] = CategoryScore{Category: name, Value: v, Evaluated: 1}
	}
	return breakdown
}

func TestAggregate_WeightedMean(t *testing.T) {
	cfg := validConfig()

	// object-stability weight 2, liquid-behavior weight 1:
	// (2*0.8 + 1*0.5) / 3 = 0.7
	result, err := Aggregate(cfg, breakdownFor(map[string]float64{
		"object-stability": 0.8,
		"liquid-behavior":  0.5,
	}))
	require.NoError(t, err)

	assert.InDelta(t, 0.7, result.Reward, 1e-9)
	assert.Equal(t, RuleWeightedMean, result.Rule)
	assert.Equal(t, "kitchen-physics", result.Domain)
	assert.Len(t, result.Breakdown, 2)
}

func TestAggregate_Min(t *testing.T) {
	cfg := validConfig()
	cfg.Aggregation.Rule = RuleMin

	result, err := Aggregate(cfg, breakdownFor(map[string]float64{
		"object-stability": 0.8,
		"liquid-behavior":  0.5,
	}))
	require.NoError(t, err)

	assert.InDelta(t, 0.5, result.Reward, 1e-9)
	assert.Equal(t, RuleMin, result.Rule)
}

func TestAggregate_Boundaries(t *testing.T) {
	for _, rule := range []AggregationRule{RuleWeightedMean, RuleMin} {
		t.Run(rule.String(), func(t *testing.T) {
			cfg := validConfig()
			cfg.Aggregation.Rule = rule

			allOnes, err := Aggregate(cfg, breakdownFor(map[string]float64{
				"object-stability": 1.0,
				"liquid-behavior":  1.0,
			}))
			require.NoError(t, err)
			assert.InDelta(t, 1.0, allOnes.Reward, 1e-9)

			allZeros, err := Aggregate(cfg, breakdownFor(map[string]float64{
				"object-stability": 0.0,
				"liquid-behavior":  0.0,
			}))
			require.NoError(t, err)
			assert.InDelta(t, 0.0, allZeros.Reward, 1e-9)
		})
	}
}

func TestAggregate_MissingCategoryScore(t *testing.T) {
	cfg := validConfig()

	result, err := Aggregate(cfg, breakdownFor(map[string]float64{
		"object-stability": 0.8,
	}))

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrIncompleteScoreSet)
	assert.Contains(t, err.Error(), "liquid-behavior")
	assert.Nil(t, result, "no default reward on incomplete score set")
}

func TestAggregate_IgnoresUndeclaredCategories(t *testing.T) {
	cfg := validConfig()

	result, err := Aggregate(cfg, breakdownFor(map[string]float64{
		"object-stability": 1.0,
		"liquid-behavior":  1.0,
		"thermal-behavior": 0.0, // not declared; must not affect the reward
	}))
	require.NoError(t, err)

	assert.InDelta(t, 1.0, result.Reward, 1e-9)
	assert.Len(t, result.Breakdown, 2)
	assert.NotContains(t, result.Breakdown, "thermal-behavior")
}

func TestAggregate_UnknownRule(t *testing.T) {
	cfg := validConfig()
	cfg.Aggregation.Rule = "median"

	result, err := Aggregate(cfg, breakdownFor(map[string]float64{
		"object-stability": 0.5,
		"liquid-behavior":  0.5,
	}))

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownAggregationRule)
	assert.Nil(t, result)
}

func TestAggregate_Deterministic(t *testing.T) {
	cfg := validConfig()
	breakdown := breakdownFor(map[string]float64{
		"object-stability": 0.37,
		"liquid-behavior":  0.91,
	})

	first, err := Aggregate(cfg, breakdown)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := Aggregate(cfg, breakdown)
		require.NoError(t, err)
		assert.Equal(t, first.Reward, again.Reward, "identical inputs must yield bit-identical rewards")
	}
}

func TestMakeCategoryScore(t *testing.T) {
	tests := []struct {
		name         string
		matched      int
		evaluated    int
		undetermined int
		want         float64
	}{
		{"all matched", 3, 3, 0, 1.0},
		{"none matched", 0, 3, 0, 0.0},
		{"partial", 2, 4, 1, 0.5},
		{"zero evaluable", 0, 0, 5, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score := MakeCategoryScore("object-stability", tt.matched, tt.evaluated, tt.undetermined)
			assert.InDelta(t, tt.want, score.Value, 1e-9)
			assert.GreaterOrEqual(t, score.Value, 0.0)
			assert.LessOrEqual(t, score.Value, 1.0)
			assert.Equal(t, tt.undetermined, score.Undetermined)
		})
	}
}

func TestClamp01(t *testing.T) {
	assert.Equal(t, 0.0, clamp01(-0.1))
	assert.Equal(t, 1.0, clamp01(1.1))
	assert.Equal(t, 0.5, clamp01(0.5))
}
