package pricing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileValidate(t *testing.T) {
	t.Run("default profile is valid", func(t *testing.T) {
		require.NoError(t, DefaultProfile().Validate())
	})

	tests := []struct {
		name   string
		mutate func(*MarketProfile)
		field  string
	}{
		{
			"missing years",
			func(p *MarketProfile) { p.CurrentYear = 0 },
			"current_year/reference_year",
		},
		{
			"non-finite growth rate",
			func(p *MarketProfile) { p.AnnualGrowthRate = math.NaN() },
			"annual_growth_rate",
		},
		{
			"no base price at all",
			func(p *MarketProfile) { p.BasePriceM2 = 0; p.CityBasePriceM2 = nil },
			"base_price_m2",
		},
		{
			"non-positive city override",
			func(p *MarketProfile) { p.CityBasePriceM2 = map[string]float64{"Utrecht": -1} },
			"city_base_price_m2",
		},
		{
			"decay factor above one",
			func(p *MarketProfile) { p.AreaExtraWeight = 1.5 },
			"area_extra_weight",
		},
		{
			"negative uncertainty margin",
			func(p *MarketProfile) { p.UncertaintyMargin = -0.01 },
			"uncertainty_margin",
		},
		{
			"overlapping build year buckets",
			func(p *MarketProfile) {
				p.BuildYearBuckets = []BuildYearBucket{
					{MinYear: 1950, MaxYear: 1980, Adjustment: 0.01},
					{MinYear: 1975, MaxYear: 2000, Adjustment: 0.02},
				}
			},
			"build_year_buckets",
		},
		{
			"open-ended buckets overlapping",
			func(p *MarketProfile) {
				p.BuildYearBuckets = []BuildYearBucket{
					{MaxYear: 1980, Adjustment: 0.01},
					{MinYear: 1970, Adjustment: 0.02},
				}
			},
			"build_year_buckets",
		},
		{
			"non-finite category adjustment",
			func(p *MarketProfile) { p.HouseTypeAdjustments = map[string]float64{"Detached": math.Inf(1)} },
			"adjustments",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile := DefaultProfile()
			tt.mutate(profile)

			err := profile.Validate()
			var cerr *ConfigError
			require.ErrorAs(t, err, &cerr)
			assert.Equal(t, tt.field, cerr.Field)
		})
	}
}

func TestBuildYearAdjustment(t *testing.T) {
	profile := testProfile()

	tests := []struct {
		name     string
		year     int
		expected float64
		covered  bool
	}{
		{"pre-war bucket", 1930, -0.04, true},
		{"post-war bucket", 1960, -0.02, true},
		{"boundary year belongs to its bucket", 1980, 0.02, true},
		{"modern open-ended bucket", 2015, 0.05, true},
		{"absent year falls back to neutral", 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			adjustment, covered := profile.BuildYearAdjustment(tt.year)
			assert.Equal(t, tt.covered, covered)
			assert.InDelta(t, tt.expected, adjustment, 1e-12)
		})
	}

	t.Run("gap in coverage is neutral", func(t *testing.T) {
		gappy := &MarketProfile{BuildYearBuckets: []BuildYearBucket{
			{MinYear: 1900, MaxYear: 1950, Adjustment: -0.05},
			{MinYear: 2000, MaxYear: 2030, Adjustment: 0.05},
		}}
		adjustment, covered := gappy.BuildYearAdjustment(1975)
		assert.False(t, covered)
		assert.Zero(t, adjustment)
	})
}

func TestGardenTier(t *testing.T) {
	tests := []struct {
		area     float64
		expected string
	}{
		{0, GardenTierNone},
		{9.9, GardenTierNone},
		{10, GardenTierSmall},
		{50, GardenTierSmall},
		{51, GardenTierMedium},
		{150, GardenTierMedium},
		{151, GardenTierLarge},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, gardenTier(tt.area, 10), "area %.1f", tt.area)
	}
}
