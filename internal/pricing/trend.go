package pricing

import "math"

// MarketMultiplier returns the compound growth factor from the reference
// year to the current year: (1+g)^(current-reference). The exponent may be
// negative (discounting back to an earlier reference) or zero (identity).
// Growth compounds annually, not continuously; that is a deliberate modeling
// simplification.
func (p *MarketProfile) MarketMultiplier() float64 {
	years := p.CurrentYear - p.ReferenceYear
	return math.Pow(1+p.AnnualGrowthRate, float64(years))
}

// ProjectTrend moves a reference-year price to the current year.
func (p *MarketProfile) ProjectTrend(price float64) float64 {
	return price * p.MarketMultiplier()
}
