package pricing

import "strings"

// renovationImpact models the value effect of a renovation plan on top of an
// already computed estimate.
//
// The budget either buys a discrete condition-state improvement or a plain
// ROI uplift, never both: when the effective budget clears the configured
// threshold for the current condition, the house is re-priced with the
// improved condition and the uplift is the re-price difference. Only when no
// state change occurs does the ROI formula apply. Both paths are clamped to
// the renovation cap, so the renovated value equals the improved-condition
// re-estimate only while the clamp does not bind. An energy-label improvement
// adds a flat amount per label step on top, independent of the budget-derived
// uplift.
func (e *Estimator) renovationImpact(input HouseInput, original float64) RenovationImpact {
	plan := *input.Renovation
	p := e.profile

	effective := plan.Budget * e.categoryWeight(plan.Category)

	impact := RenovationImpact{
		Budget:          plan.Budget,
		EffectiveBudget: effective,
		ConditionBefore: input.Condition,
		ConditionAfter:  input.Condition,
	}

	improved := e.upgradedCondition(input.Condition, effective)
	if improved != input.Condition {
		impact.ConditionAfter = improved

		repriced := input
		repriced.Condition = improved
		repriced.Renovation = nil
		improvedEstimate, _, _, _ := e.estimateValue(repriced)

		// Re-price with the improved condition; applying the raw adjustment
		// difference AND the ROI uplift would count the same work twice.
		uplift := improvedEstimate - original
		if uplift < 0 {
			uplift = 0
		}
		ceiling := p.RenovationCap * original
		if uplift > ceiling {
			uplift = ceiling
			impact.Capped = true
		}
		impact.Uplift = uplift
	} else if plan.Budget > 0 {
		ceiling := p.RenovationCap * original
		uplift := effective * p.RenovationROI
		if uplift > ceiling {
			uplift = ceiling
			impact.Capped = true
		}
		impact.Uplift = uplift
	}

	impact.LabelSteps = labelSteps(input.EnergyLabel, plan.TargetEnergyLabel)
	impact.LabelUplift = float64(impact.LabelSteps) * p.RenovationLabelStepUplift

	impact.RenovatedValue = original + impact.Uplift + impact.LabelUplift

	return impact
}

// categoryWeight returns the budget effectiveness multiplier for a work
// category. Unknown or empty categories are neutral.
func (e *Estimator) categoryWeight(category string) float64 {
	key := strings.ToLower(strings.TrimSpace(category))
	if key == "" {
		return 1
	}
	if w, ok := e.profile.RenovationCategoryWeights[key]; ok && w > 0 {
		return w
	}
	return 1
}

// upgradedCondition moves the condition one state up when the effective
// budget clears the threshold configured for the current state. The step is
// threshold-driven, not proportional to budget size, and caps at excellent.
func (e *Estimator) upgradedCondition(current Condition, effectiveBudget float64) Condition {
	if !current.IsKnown() || current == ConditionExcellent {
		return current
	}
	threshold, ok := e.profile.ConditionUpgradeThresholds[string(current)]
	if !ok || threshold <= 0 || effectiveBudget < threshold {
		return current
	}
	return current.Next()
}

// labelSteps counts the energy-label steps between two labels. Unknown
// labels or a downgrade count as zero.
func labelSteps(before, after string) int {
	beforeRank, okBefore := EnergyLabelRank(before)
	afterRank, okAfter := EnergyLabelRank(after)
	if !okBefore || !okAfter || afterRank <= beforeRank {
		return 0
	}
	return afterRank - beforeRank
}
