package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenovationROIUplift(t *testing.T) {
	estimator := newTestEstimator(t, testProfile())

	// Condition excellent cannot improve further, so the budget takes the
	// plain ROI path.
	base := HouseInput{City: "Utrecht", LivingArea: 80, Condition: ConditionExcellent}

	t.Run("uplift is budget times ROI below the cap", func(t *testing.T) {
		input := base
		input.Renovation = &RenovationPlan{Budget: 20000}
		result, err := estimator.Estimate(input)
		require.NoError(t, err)
		require.NotNil(t, result.Renovation)

		assert.InDelta(t, 20000*0.6, result.Renovation.Uplift, 1e-9)
		assert.False(t, result.Renovation.Capped)
		assert.Equal(t, ConditionExcellent, result.Renovation.ConditionAfter)
		assert.InDelta(t, result.PointEstimate+12000, result.Renovation.RenovatedValue, 1e-9)
	})

	t.Run("oversized budget clamps exactly to the cap", func(t *testing.T) {
		for _, budget := range []float64{1e6, 1e9, 1e15} {
			input := base
			input.Renovation = &RenovationPlan{Budget: budget}
			result, err := estimator.Estimate(input)
			require.NoError(t, err)
			require.NotNil(t, result.Renovation)

			assert.InDelta(t, 0.2*result.PointEstimate, result.Renovation.Uplift, 1e-6, "budget %g", budget)
			assert.True(t, result.Renovation.Capped, "budget %g", budget)
		}
	})

	t.Run("zero budget is a no-op", func(t *testing.T) {
		input := base
		input.Renovation = &RenovationPlan{}
		result, err := estimator.Estimate(input)
		require.NoError(t, err)
		require.NotNil(t, result.Renovation)
		assert.Zero(t, result.Renovation.Uplift)
		assert.Equal(t, result.PointEstimate, result.Renovation.RenovatedValue)
	})
}

// TestRenovationNoDoubleCount pins the core invariant: when the budget buys
// a condition-state improvement, the renovated value equals the estimate
// re-run with the improved condition, not that re-estimate plus an ROI
// uplift on top.
func TestRenovationNoDoubleCount(t *testing.T) {
	estimator := newTestEstimator(t, testProfile())

	input := HouseInput{
		City:       "Utrecht",
		LivingArea: 80,
		Condition:  ConditionFair,
		Renovation: &RenovationPlan{Budget: 30000}, // exactly the fair->good threshold
	}
	result, err := estimator.Estimate(input)
	require.NoError(t, err)
	require.NotNil(t, result.Renovation)
	assert.Equal(t, ConditionGood, result.Renovation.ConditionAfter)

	improved := input
	improved.Condition = ConditionGood
	improved.Renovation = nil
	improvedResult, err := estimator.Estimate(improved)
	require.NoError(t, err)

	assert.InDelta(t, improvedResult.PointEstimate, result.Renovation.RenovatedValue, 1e-9)
	assert.InDelta(t, improvedResult.PointEstimate-result.PointEstimate, result.Renovation.Uplift, 1e-9)
}

// TestRenovationUpgradeUpliftCapped pins the cap on the re-price path: even
// when the improved-condition re-estimate is far above the original, the
// uplift never exceeds RenovationCap times the original estimate.
func TestRenovationUpgradeUpliftCapped(t *testing.T) {
	profile := testProfile()
	profile.ConditionAdjustments = map[string]float64{
		"poor": -0.5, "fair": 0.5, "good": 0.6, "excellent": 0.7,
	}
	estimator := newTestEstimator(t, profile)

	input := HouseInput{
		City:       "Utrecht",
		LivingArea: 80,
		Condition:  ConditionPoor,
		Renovation: &RenovationPlan{Budget: 20000}, // clears the poor threshold
	}
	result, err := estimator.Estimate(input)
	require.NoError(t, err)
	require.NotNil(t, result.Renovation)
	require.Equal(t, ConditionFair, result.Renovation.ConditionAfter)

	ceiling := profile.RenovationCap * result.PointEstimate
	assert.InDelta(t, ceiling, result.Renovation.Uplift, 1e-9)
	assert.True(t, result.Renovation.Capped)
	assert.InDelta(t, result.PointEstimate+ceiling, result.Renovation.RenovatedValue, 1e-9)
}

func TestRenovationConditionUpgrade(t *testing.T) {
	estimator := newTestEstimator(t, testProfile())

	tests := []struct {
		name      string
		condition Condition
		budget    float64
		after     Condition
	}{
		{"below threshold stays put", ConditionPoor, 14999, ConditionPoor},
		{"at threshold moves one step", ConditionPoor, 15000, ConditionFair},
		{"big budget still moves only one step", ConditionPoor, 500000, ConditionFair},
		{"fair needs a bigger budget", ConditionFair, 15000, ConditionFair},
		{"fair upgrades at its own threshold", ConditionFair, 30000, ConditionGood},
		{"excellent is the ceiling", ConditionExcellent, 500000, ConditionExcellent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := estimator.Estimate(HouseInput{
				City:       "Utrecht",
				LivingArea: 80,
				Condition:  tt.condition,
				Renovation: &RenovationPlan{Budget: tt.budget},
			})
			require.NoError(t, err)
			require.NotNil(t, result.Renovation)
			assert.Equal(t, tt.after, result.Renovation.ConditionAfter)
		})
	}
}

func TestRenovationCategoryWeights(t *testing.T) {
	profile := testProfile()
	profile.RenovationCategoryWeights = map[string]float64{
		"kitchen":    0.7,
		"insulation": 1.2,
	}
	estimator := newTestEstimator(t, profile)

	base := HouseInput{City: "Utrecht", LivingArea: 80, Condition: ConditionExcellent}

	estimateWith := func(category string) *RenovationImpact {
		input := base
		input.Renovation = &RenovationPlan{Budget: 10000, Category: category}
		result, err := estimator.Estimate(input)
		require.NoError(t, err)
		require.NotNil(t, result.Renovation)
		return result.Renovation
	}

	assert.InDelta(t, 7000.0, estimateWith("kitchen").EffectiveBudget, 1e-9)
	assert.InDelta(t, 12000.0, estimateWith("insulation").EffectiveBudget, 1e-9)
	// Unknown categories are neutral, not an error.
	assert.InDelta(t, 10000.0, estimateWith("moat").EffectiveBudget, 1e-9)
}

func TestRenovationEnergyLabel(t *testing.T) {
	estimator := newTestEstimator(t, testProfile())
	base := HouseInput{City: "Utrecht", LivingArea: 80, Condition: ConditionExcellent, EnergyLabel: "D"}

	t.Run("flat uplift per label step", func(t *testing.T) {
		input := base
		input.Renovation = &RenovationPlan{TargetEnergyLabel: "B"}
		result, err := estimator.Estimate(input)
		require.NoError(t, err)
		require.NotNil(t, result.Renovation)

		assert.Equal(t, 2, result.Renovation.LabelSteps)
		assert.InDelta(t, 8000.0, result.Renovation.LabelUplift, 1e-9)
		assert.InDelta(t, result.PointEstimate+8000, result.Renovation.RenovatedValue, 1e-9)
	})

	t.Run("downgrade or unknown label counts zero steps", func(t *testing.T) {
		for _, target := range []string{"F", "D", "Z", ""} {
			input := base
			input.Renovation = &RenovationPlan{TargetEnergyLabel: target}
			result, err := estimator.Estimate(input)
			require.NoError(t, err)
			require.NotNil(t, result.Renovation)
			assert.Zero(t, result.Renovation.LabelSteps, "target %q", target)
		}
	})

	t.Run("label uplift is additive to budget uplift", func(t *testing.T) {
		input := base
		input.Renovation = &RenovationPlan{Budget: 10000, TargetEnergyLabel: "A"}
		result, err := estimator.Estimate(input)
		require.NoError(t, err)
		require.NotNil(t, result.Renovation)

		assert.InDelta(t, 10000*0.6, result.Renovation.Uplift, 1e-9)
		assert.InDelta(t, 3*4000.0, result.Renovation.LabelUplift, 1e-9)
		assert.InDelta(t, result.PointEstimate+6000+12000, result.Renovation.RenovatedValue, 1e-9)
	})
}

func TestConditionOrdering(t *testing.T) {
	assert.Equal(t, ConditionFair, ConditionPoor.Next())
	assert.Equal(t, ConditionGood, ConditionFair.Next())
	assert.Equal(t, ConditionExcellent, ConditionGood.Next())
	assert.Equal(t, ConditionExcellent, ConditionExcellent.Next())
	assert.Equal(t, Condition("derelict"), Condition("derelict").Next())
	assert.False(t, Condition("derelict").IsKnown())
}

func TestEnergyLabelRank(t *testing.T) {
	gRank, ok := EnergyLabelRank("G")
	require.True(t, ok)
	aRank, ok := EnergyLabelRank("a")
	require.True(t, ok)
	a4Rank, ok := EnergyLabelRank("A4")
	require.True(t, ok)
	assert.Less(t, gRank, aRank)
	assert.Less(t, aRank, a4Rank)

	_, ok = EnergyLabelRank("A+++++")
	assert.False(t, ok)
}
