package pricing

import (
	"fmt"
	"math"
)

// BuildYearBucket maps a build-year range to an adjustment fraction. A zero
// MinYear or MaxYear leaves that side of the range open.
type BuildYearBucket struct {
	MinYear    int     `json:"min_year,omitempty"`
	MaxYear    int     `json:"max_year,omitempty"`
	Adjustment float64 `json:"adjustment"`
}

// Contains reports whether the bucket covers the given build year.
func (b BuildYearBucket) Contains(year int) bool {
	if b.MinYear != 0 && year < b.MinYear {
		return false
	}
	if b.MaxYear != 0 && year > b.MaxYear {
		return false
	}
	return true
}

// MarketProfile is the full set of tunable pricing parameters. It is
// immutable once validated and safe to share across concurrent estimation
// calls; calibration replaces it wholesale, never mutates it in place.
//
// Growth rate and ROI fractions are plausible within [-1, 5]. Values outside
// that band are accepted; keeping them sane is the caller's responsibility.
type MarketProfile struct {
	ReferenceYear    int     `json:"reference_year"`
	CurrentYear      int     `json:"current_year"`
	AnnualGrowthRate float64 `json:"annual_growth_rate"`

	BasePriceM2     float64            `json:"base_price_m2"`
	CityBasePriceM2 map[string]float64 `json:"city_base_price_m2,omitempty"`

	// NeighborhoodPriceWeight blends an observed neighbourhood €/m² into the
	// resolved base price: w*neighbourhood + (1-w)*base.
	NeighborhoodPriceWeight float64 `json:"neighborhood_price_weight"`

	// Area scaling: every m² beyond AreaFullPriceM2 contributes
	// AreaExtraWeight of the marginal €/m².
	AreaFullPriceM2 float64 `json:"area_full_price_m2"`
	AreaExtraWeight float64 `json:"area_extra_weight"`

	// Garden valuation. Gardens smaller than MinGardenArea contribute
	// nothing; apartment gardens are valued at a lower per-m² rate.
	GardenPriceM2          float64            `json:"garden_price_m2"`
	ApartmentGardenPriceM2 float64            `json:"apartment_garden_price_m2"`
	MinGardenArea          float64            `json:"min_garden_area"`
	GardenAdjustments      map[string]float64 `json:"garden_adjustments,omitempty"`

	BuildYearBuckets []BuildYearBucket `json:"build_year_buckets,omitempty"`

	HouseTypeAdjustments   map[string]float64 `json:"house_type_adjustments,omitempty"`
	ConditionAdjustments   map[string]float64 `json:"condition_adjustments,omitempty"`
	EnergyLabelAdjustments map[string]float64 `json:"energy_label_adjustments,omitempty"`
	RoofAdjustments        map[string]float64 `json:"roof_adjustments,omitempty"`
	PositionAdjustments    map[string]float64 `json:"position_adjustments,omitempty"`
	ToiletAdjustments      map[string]float64 `json:"toilet_adjustments,omitempty"`
	FloorsAdjustments      map[string]float64 `json:"floors_adjustments,omitempty"`

	RoomAreaM2            float64 `json:"room_area_m2"`
	RoomAdjustmentPerRoom float64 `json:"room_adjustment_per_room"`

	LotSizeRatioMedian float64 `json:"lot_size_ratio_median"`
	LotSizeRatioWeight float64 `json:"lot_size_ratio_weight"`
	LotSizeRatioClamp  float64 `json:"lot_size_ratio_clamp"`

	RenovationROI             float64            `json:"renovation_roi"`
	RenovationCap             float64            `json:"renovation_cap"`
	RenovationLabelStepUplift float64            `json:"renovation_label_step_uplift"`
	ConditionUpgradeThresholds map[string]float64 `json:"condition_upgrade_thresholds,omitempty"`
	RenovationCategoryWeights  map[string]float64 `json:"renovation_category_weights,omitempty"`

	UncertaintyMargin float64 `json:"uncertainty_margin"`
}

// DefaultProfile returns a profile with the stock Dutch market parameters.
// Calibration overwrites the data-driven fields; the rest are policy values.
func DefaultProfile() *MarketProfile {
	return &MarketProfile{
		ReferenceYear:    2022,
		CurrentYear:      2026,
		AnnualGrowthRate: 0.04,

		BasePriceM2:             3500,
		NeighborhoodPriceWeight: 0.7,

		AreaFullPriceM2: 80,
		AreaExtraWeight: 0.85,

		GardenPriceM2:          90,
		ApartmentGardenPriceM2: 45,
		MinGardenArea:          10,

		RoomAreaM2:            30,
		RoomAdjustmentPerRoom: 0.02,

		LotSizeRatioWeight: 0.15,
		LotSizeRatioClamp:  0.06,

		RenovationROI:             0.6,
		RenovationCap:             0.2,
		RenovationLabelStepUplift: 4000,
		ConditionUpgradeThresholds: map[string]float64{
			string(ConditionPoor): 15000,
			string(ConditionFair): 30000,
			string(ConditionGood): 60000,
		},
		RenovationCategoryWeights: map[string]float64{
			"kitchen":      0.7,
			"bathroom":     0.8,
			"insulation":   1.2,
			"roof_windows": 1.1,
			"exterior":     0.6,
			"other":        1.0,
		},

		UncertaintyMargin: 0.07,
	}
}

// Validate checks the profile atomically: either every constraint holds or a
// ConfigError describes the first violation. No partially valid profile is
// ever handed to the estimator.
func (p *MarketProfile) Validate() error {
	if p.CurrentYear == 0 || p.ReferenceYear == 0 {
		return &ConfigError{Field: "current_year/reference_year", Message: "both years are required"}
	}
	if math.IsNaN(p.AnnualGrowthRate) || math.IsInf(p.AnnualGrowthRate, 0) {
		return &ConfigError{Field: "annual_growth_rate", Message: "must be a finite number"}
	}
	if p.BasePriceM2 <= 0 && len(p.CityBasePriceM2) == 0 {
		return &ConfigError{Field: "base_price_m2", Message: "a positive default or at least one city override is required"}
	}
	for city, price := range p.CityBasePriceM2 {
		if price <= 0 {
			return &ConfigError{Field: "city_base_price_m2", Message: fmt.Sprintf("override for %q must be positive, got %g", city, price)}
		}
	}
	if p.AreaFullPriceM2 < 0 {
		return &ConfigError{Field: "area_full_price_m2", Message: "must not be negative"}
	}
	if p.AreaExtraWeight < 0 || p.AreaExtraWeight > 1 {
		return &ConfigError{Field: "area_extra_weight", Message: "must lie in [0, 1]"}
	}
	if p.UncertaintyMargin < 0 {
		return &ConfigError{Field: "uncertainty_margin", Message: "must not be negative"}
	}
	if p.RenovationCap < 0 {
		return &ConfigError{Field: "renovation_cap", Message: "must not be negative"}
	}
	if err := validateBuckets(p.BuildYearBuckets); err != nil {
		return err
	}
	for _, table := range []map[string]float64{
		p.GardenAdjustments, p.HouseTypeAdjustments, p.ConditionAdjustments,
		p.EnergyLabelAdjustments, p.RoofAdjustments, p.PositionAdjustments,
		p.ToiletAdjustments, p.FloorsAdjustments,
	} {
		for key, frac := range table {
			if math.IsNaN(frac) || math.IsInf(frac, 0) {
				return &ConfigError{Field: "adjustments", Message: fmt.Sprintf("adjustment for %q must be finite", key)}
			}
		}
	}
	return nil
}

// validateBuckets rejects overlapping build-year ranges. Gaps are allowed:
// a year covered by no bucket falls back to a neutral adjustment.
func validateBuckets(buckets []BuildYearBucket) error {
	for i, a := range buckets {
		for _, b := range buckets[i+1:] {
			if bucketsOverlap(a, b) {
				return &ConfigError{
					Field:   "build_year_buckets",
					Message: fmt.Sprintf("ranges [%d, %d] and [%d, %d] overlap", a.MinYear, a.MaxYear, b.MinYear, b.MaxYear),
				}
			}
		}
	}
	return nil
}

func bucketsOverlap(a, b BuildYearBucket) bool {
	aMin, aMax := rangeBounds(a)
	bMin, bMax := rangeBounds(b)
	return aMin <= bMax && bMin <= aMax
}

func rangeBounds(b BuildYearBucket) (int, int) {
	min, max := b.MinYear, b.MaxYear
	if min == 0 {
		min = math.MinInt32
	}
	if max == 0 {
		max = math.MaxInt32
	}
	return min, max
}

// BuildYearAdjustment resolves the adjustment fraction for a build year.
// The second return value is false when the year is absent or no bucket
// covers it; the engine then falls back to a neutral adjustment.
func (p *MarketProfile) BuildYearAdjustment(year int) (float64, bool) {
	if year <= 0 {
		return 0, false
	}
	for _, bucket := range p.BuildYearBuckets {
		if bucket.Contains(year) {
			return bucket.Adjustment, true
		}
	}
	return 0, false
}
