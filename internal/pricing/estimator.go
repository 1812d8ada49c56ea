package pricing

import (
	"fmt"
	"log/slog"
	"strings"
)

// Estimator produces price estimates against one validated MarketProfile.
// It is stateless beyond the profile reference and safe for concurrent use.
type Estimator struct {
	profile *MarketProfile
	logger  *slog.Logger
}

// NewEstimator validates the profile and returns an estimator bound to it.
// Validation is atomic: a profile that fails any constraint is rejected with
// a ConfigError and no estimator is constructed.
func NewEstimator(profile *MarketProfile, logger *slog.Logger) (*Estimator, error) {
	if profile == nil {
		return nil, &ConfigError{Message: "profile is required"}
	}
	if err := profile.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Estimator{profile: profile, logger: logger}, nil
}

// Profile returns the profile the estimator was constructed with.
func (e *Estimator) Profile() *MarketProfile {
	return e.profile
}

// Estimate computes the value of a single house. It is deterministic:
// identical input and profile always produce an identical result. Unknown
// optional categorical values never fail; they degrade to a neutral
// adjustment recorded in the breakdown. Structural problems (non-positive
// living area, a build year in the future, an unknown city with no default
// base price) fail with a ValidationError.
func (e *Estimator) Estimate(input HouseInput) (*EstimationResult, error) {
	if err := e.validateInput(input); err != nil {
		return nil, err
	}

	point, basePriceM2, base, breakdown := e.estimateValue(input)

	result := &EstimationResult{
		PointEstimate:    point,
		LowerBound:       point * (1 - e.profile.UncertaintyMargin),
		UpperBound:       point * (1 + e.profile.UncertaintyMargin),
		BasePriceM2:      basePriceM2,
		BaseValue:        base,
		MarketMultiplier: e.profile.MarketMultiplier(),
		Breakdown:        breakdown,
	}

	if input.Renovation != nil {
		impact := e.renovationImpact(input, point)
		result.Renovation = &impact
	}

	return result, nil
}

// estimateValue runs the estimation pipeline without renovation: base price
// resolution, area scaling, adjustment chain, trend projection.
func (e *Estimator) estimateValue(input HouseInput) (point, basePriceM2, base float64, breakdown []AdjustmentLine) {
	basePriceM2 = e.resolveBasePriceM2(input)
	base = baseValue(e.profile, basePriceM2, input)
	multiplier, breakdown := applyAdjustments(e.profile, input)
	point = e.profile.ProjectTrend(base * multiplier)
	return point, basePriceM2, base, breakdown
}

// resolveBasePriceM2 picks the city override when present, the default
// otherwise, and blends in an observed neighbourhood price when the caller
// supplied one.
func (e *Estimator) resolveBasePriceM2(input HouseInput) float64 {
	price := e.profile.BasePriceM2
	if override, ok := e.profile.CityBasePriceM2[strings.TrimSpace(input.City)]; ok {
		price = override
	}
	if input.NeighborhoodPriceM2 > 0 {
		w := e.profile.NeighborhoodPriceWeight
		price = w*input.NeighborhoodPriceM2 + (1-w)*price
	}
	return price
}

func (e *Estimator) validateInput(input HouseInput) error {
	if input.LivingArea <= 0 {
		return &ValidationError{Field: "living_area", Message: "must be positive", Value: input.LivingArea}
	}
	if input.BuildYear > e.profile.CurrentYear {
		return &ValidationError{Field: "build_year", Message: fmt.Sprintf("must not be after %d", e.profile.CurrentYear), Value: input.BuildYear}
	}
	if input.GardenArea < 0 {
		return &ValidationError{Field: "garden_area", Message: "must not be negative", Value: input.GardenArea}
	}
	if input.LotSize < 0 {
		return &ValidationError{Field: "lot_size", Message: "must not be negative", Value: input.LotSize}
	}
	if input.Renovation != nil && input.Renovation.Budget < 0 {
		return &ValidationError{Field: "renovation.budget", Message: "must not be negative", Value: input.Renovation.Budget}
	}
	city := strings.TrimSpace(input.City)
	if _, ok := e.profile.CityBasePriceM2[city]; !ok && e.profile.BasePriceM2 <= 0 {
		return &ValidationError{Field: "city", Message: fmt.Sprintf("no base price configured for %q and no default fallback", city), Value: city}
	}
	return nil
}
