package pricing

import "strings"

// effectiveArea applies diminishing marginal value to living area. Up to the
// full-price threshold every m² counts fully; beyond it each m² contributes
// only AreaExtraWeight of the marginal €/m².
func effectiveArea(p *MarketProfile, area float64) float64 {
	threshold := p.AreaFullPriceM2
	if threshold <= 0 || area <= threshold {
		return area
	}
	return threshold + (area-threshold)*p.AreaExtraWeight
}

// gardenContribution values the garden in absolute euro. Gardens below the
// profile minimum are excluded entirely from any size-based bonus; apartment
// gardens are valued at the lower per-m² rate.
func gardenContribution(p *MarketProfile, gardenArea float64, houseType string) float64 {
	if gardenArea < p.MinGardenArea || gardenArea <= 0 {
		return 0
	}
	rate := p.GardenPriceM2
	if isApartment(houseType) {
		rate = p.ApartmentGardenPriceM2
	}
	return gardenArea * rate
}

func isApartment(houseType string) bool {
	return strings.EqualFold(strings.TrimSpace(houseType), "apartment")
}

// baseValue combines the area-scaled living space with the garden
// contribution at the resolved €/m².
func baseValue(p *MarketProfile, priceM2 float64, input HouseInput) float64 {
	return priceM2*effectiveArea(p, input.LivingArea) + gardenContribution(p, input.GardenArea, input.HouseType)
}
