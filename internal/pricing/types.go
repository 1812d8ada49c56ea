package pricing

import "strings"

// Condition represents the maintenance state of a house. States are ordered:
// renovation can move a house one state up at a time, capped at excellent.
type Condition string

const (
	ConditionPoor      Condition = "poor"
	ConditionFair      Condition = "fair"
	ConditionGood      Condition = "good"
	ConditionExcellent Condition = "excellent"
)

// conditionOrder lists maintenance states from worst to best.
var conditionOrder = []Condition{ConditionPoor, ConditionFair, ConditionGood, ConditionExcellent}

// Next returns the next better condition state, or the receiver when the
// state is unknown or already at the top.
func (c Condition) Next() Condition {
	for i, state := range conditionOrder {
		if state == c && i < len(conditionOrder)-1 {
			return conditionOrder[i+1]
		}
	}
	return c
}

// IsKnown reports whether the condition is one of the ordered states.
func (c Condition) IsKnown() bool {
	for _, state := range conditionOrder {
		if state == c {
			return true
		}
	}
	return false
}

// energyLabelOrder ranks Dutch energy labels from worst to best. Plus-suffixed
// labels (A+, A++, ...) are expected in folded form: A1, A2, A3, A4.
var energyLabelOrder = map[string]int{
	"G": 1, "F": 2, "E": 3, "D": 4, "C": 5, "B": 6, "A": 7,
	"A1": 8, "A2": 9, "A3": 10, "A4": 11,
}

// EnergyLabelRank returns the rank of a label (higher is better) and whether
// the label is known. Input is normalized to upper case.
func EnergyLabelRank(label string) (int, bool) {
	rank, ok := energyLabelOrder[strings.ToUpper(strings.TrimSpace(label))]
	return rank, ok
}

// RenovationPlan describes an optional renovation scenario attached to an
// estimation request.
type RenovationPlan struct {
	// Budget is the renovation budget in euro.
	Budget float64 `json:"budget"`
	// Category is the kind of work (kitchen, bathroom, insulation, ...).
	// Unknown categories get a neutral effectiveness weight of 1.
	Category string `json:"category,omitempty"`
	// TargetEnergyLabel, when set, models an energy-label improvement.
	TargetEnergyLabel string `json:"target_energy_label,omitempty"`
}

// HouseInput carries the attributes of a single house to estimate. It is
// request-scoped: created by the caller, consumed by one Estimate call,
// then discarded.
type HouseInput struct {
	City       string    `json:"city"`
	LivingArea float64   `json:"living_area"` // m²
	BuildYear  int       `json:"build_year"`
	HouseType  string    `json:"house_type,omitempty"`
	Condition  Condition `json:"condition,omitempty"`
	GardenArea float64   `json:"garden_area,omitempty"` // m²

	// Roof and Position are categorical attributes looked up in the
	// calibrated adjustment tables. Unknown values are neutral.
	Roof     string `json:"roof,omitempty"`
	Position string `json:"position,omitempty"`

	EnergyLabel string `json:"energy_label,omitempty"`

	// NeighborhoodPriceM2 is an observed neighbourhood price per m², blended
	// into the base price when positive.
	NeighborhoodPriceM2 float64 `json:"neighborhood_price_m2,omitempty"`

	Rooms   int     `json:"rooms,omitempty"`
	LotSize float64 `json:"lot_size,omitempty"` // m²

	// Bathrooms and Toilets feed the sanitary adjustment table; Floors the
	// floor-count table. Zero values mean unknown and stay neutral.
	Bathrooms int `json:"bathrooms,omitempty"`
	Toilets   int `json:"toilets,omitempty"`
	Floors    int `json:"floors,omitempty"`

	// MicroLocation is a premium (positive) or discount (negative) fraction
	// for the specific spot within the city, supplied by the caller.
	MicroLocation float64 `json:"micro_location,omitempty"`

	Renovation *RenovationPlan `json:"renovation,omitempty"`
}

// AdjustmentLine is one entry of the explainability breakdown. Applied is
// false when the input value was absent or unknown and the neutral fallback
// of 0 was used.
type AdjustmentLine struct {
	Label    string  `json:"label"`
	Fraction float64 `json:"fraction"`
	Applied  bool    `json:"applied"`
}

// RenovationImpact reports the effect of a renovation plan on the estimate.
type RenovationImpact struct {
	Budget          float64   `json:"budget"`
	EffectiveBudget float64   `json:"effective_budget"`
	ConditionBefore Condition `json:"condition_before"`
	ConditionAfter  Condition `json:"condition_after"`
	// Uplift is the budget- or reprice-derived value gain in euro.
	Uplift float64 `json:"uplift"`
	// LabelUplift is the flat energy-label gain in euro, additive to Uplift.
	LabelUplift    float64 `json:"label_uplift"`
	LabelSteps     int     `json:"label_steps"`
	RenovatedValue float64 `json:"renovated_value"`
	// Capped reports whether the ROI-based uplift hit the renovation cap.
	Capped bool `json:"capped"`
}

// EstimationResult is the output of one estimation call.
type EstimationResult struct {
	PointEstimate float64 `json:"point_estimate"`
	LowerBound    float64 `json:"lower_bound"`
	UpperBound    float64 `json:"upper_bound"`

	// BasePriceM2 is the resolved €/m² before adjustments.
	BasePriceM2 float64 `json:"base_price_m2"`
	// BaseValue is the area-scaled value (living area plus garden
	// contribution) before the adjustment chain and trend projection.
	BaseValue        float64 `json:"base_value"`
	MarketMultiplier float64 `json:"market_multiplier"`

	Breakdown []AdjustmentLine `json:"breakdown"`

	Renovation *RenovationImpact `json:"renovation,omitempty"`
}
