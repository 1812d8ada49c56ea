package pricing

import (
	"strconv"
	"strings"
)

// Breakdown labels. The order of application is fixed (see applyAdjustments);
// later steps compound on the running price, so the sequence is part of the
// model, not an implementation detail.
const (
	LabelBuildYear     = "build_year"
	LabelHouseType     = "house_type"
	LabelCondition     = "condition"
	LabelGarden        = "garden"
	LabelRoof          = "roof"
	LabelPosition      = "position"
	LabelEnergyLabel   = "energy_label"
	LabelRooms         = "rooms"
	LabelToilet        = "toilet"
	LabelFloors        = "floors"
	LabelLotSize       = "lot_size"
	LabelMicroLocation = "micro_location"
)

// Garden size tiers, bucketed from garden area. The tier feeds the
// garden adjustment table; the absolute per-m² garden contribution is
// handled by the area scaling (see area.go).
const (
	GardenTierNone   = "none"
	GardenTierSmall  = "small"
	GardenTierMedium = "medium"
	GardenTierLarge  = "large"
)

// gardenTier buckets a garden area into a size tier. Areas below the profile
// minimum count as no garden.
func gardenTier(area, minArea float64) string {
	switch {
	case area <= 0 || area < minArea:
		return GardenTierNone
	case area <= 50:
		return GardenTierSmall
	case area <= 150:
		return GardenTierMedium
	default:
		return GardenTierLarge
	}
}

// sanitaryBucket folds bathroom and toilet counts into the calibrated bucket
// labels, e.g. "1 bath, 2+ toilet". Both counts unknown means no bucket.
func sanitaryBucket(bathrooms, toilets int) string {
	if bathrooms <= 0 && toilets <= 0 {
		return ""
	}
	bathLabel := "1 bath"
	if bathrooms >= 2 {
		bathLabel = "2+ bath"
	}
	toiletLabel := "0 toilet"
	switch {
	case toilets >= 2:
		toiletLabel = "2+ toilet"
	case toilets == 1:
		toiletLabel = "1 toilet"
	}
	return bathLabel + ", " + toiletLabel
}

// floorsBucket buckets a floor count, capping the top end at "4+".
func floorsBucket(floors int) string {
	switch {
	case floors <= 0:
		return ""
	case floors >= 4:
		return "4+"
	default:
		return strconv.Itoa(floors)
	}
}

// categoryAdjustment looks up a categorical value in an adjustment table.
// Unknown or empty values degrade to a neutral 0; the second return value
// lets the caller surface the degradation in the breakdown.
func categoryAdjustment(value string, table map[string]float64) (float64, bool) {
	key := strings.TrimSpace(value)
	if key == "" {
		return 0, false
	}
	frac, ok := table[key]
	if !ok {
		return 0, false
	}
	return frac, true
}

// roomAdjustment compares the actual room count with the count expected for
// the living area and converts the difference to a clamped fraction. Missing
// room data is neutral.
func roomAdjustment(p *MarketProfile, rooms int, livingArea float64) (float64, bool) {
	if rooms <= 0 || livingArea <= 0 || p.RoomAreaM2 <= 0 {
		return 0, false
	}
	expected := livingArea / p.RoomAreaM2
	if expected < 1 {
		expected = 1
	}
	adjustment := (float64(rooms) - expected) * p.RoomAdjustmentPerRoom
	return clamp(adjustment, -0.06, 0.06), true
}

// lotSizeAdjustment rewards lots that are large relative to the living area,
// measured against the calibrated median lot/living ratio. Neutral when lot
// size is absent or the profile carries no median.
func lotSizeAdjustment(p *MarketProfile, lotSize, livingArea float64) (float64, bool) {
	if lotSize <= 0 || livingArea <= 0 || p.LotSizeRatioMedian <= 0 {
		return 0, false
	}
	ratio := lotSize / livingArea
	delta := ratio/p.LotSizeRatioMedian - 1
	adjustment := delta * p.LotSizeRatioWeight
	return clamp(adjustment, -p.LotSizeRatioClamp, p.LotSizeRatioClamp), true
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// applyAdjustments runs the multiplicative adjustment chain and returns the
// compound multiplier plus the itemized breakdown. Each step scales the
// running price by (1 + fraction). The order is fixed: build year, house
// type, condition, garden tier, roof, position, energy label, rooms,
// sanitary, floors, lot size, micro-location.
func applyAdjustments(p *MarketProfile, input HouseInput) (float64, []AdjustmentLine) {
	price := 1.0
	breakdown := make([]AdjustmentLine, 0, 12)

	apply := func(label string, frac float64, applied bool) {
		price *= 1 + frac
		breakdown = append(breakdown, AdjustmentLine{Label: label, Fraction: frac, Applied: applied})
	}

	frac, ok := p.BuildYearAdjustment(input.BuildYear)
	apply(LabelBuildYear, frac, ok)

	frac, ok = categoryAdjustment(input.HouseType, p.HouseTypeAdjustments)
	apply(LabelHouseType, frac, ok)

	frac, ok = categoryAdjustment(string(input.Condition), p.ConditionAdjustments)
	apply(LabelCondition, frac, ok)

	frac, ok = categoryAdjustment(gardenTier(input.GardenArea, p.MinGardenArea), p.GardenAdjustments)
	apply(LabelGarden, frac, ok)

	frac, ok = categoryAdjustment(input.Roof, p.RoofAdjustments)
	apply(LabelRoof, frac, ok)

	frac, ok = categoryAdjustment(input.Position, p.PositionAdjustments)
	apply(LabelPosition, frac, ok)

	frac, ok = categoryAdjustment(strings.ToUpper(input.EnergyLabel), p.EnergyLabelAdjustments)
	apply(LabelEnergyLabel, frac, ok)

	frac, ok = roomAdjustment(p, input.Rooms, input.LivingArea)
	apply(LabelRooms, frac, ok)

	frac, ok = categoryAdjustment(sanitaryBucket(input.Bathrooms, input.Toilets), p.ToiletAdjustments)
	apply(LabelToilet, frac, ok)

	frac, ok = categoryAdjustment(floorsBucket(input.Floors), p.FloorsAdjustments)
	apply(LabelFloors, frac, ok)

	frac, ok = lotSizeAdjustment(p, input.LotSize, input.LivingArea)
	apply(LabelLotSize, frac, ok)

	apply(LabelMicroLocation, input.MicroLocation, input.MicroLocation != 0)

	return price, breakdown
}
