// Package pricing implements the residential property valuation engine.
//
// The engine combines a base price per m² (default or per-city override,
// optionally blended with an observed neighbourhood price), diminishing-
// returns area scaling, a fixed multiplicative chain of feature adjustments,
// compound annual market-trend projection, and a renovation ROI model into a
// single deterministic point estimate with a symmetric uncertainty band.
//
// # Components
//
//   - profile.go: MarketProfile, the immutable parameter set, validated
//     atomically at construction
//   - area.go: diminishing marginal value for living area and garden
//     contribution rules
//   - adjustments.go: categorical lookups and the fixed adjustment order
//   - trend.go: compound annual growth projection
//   - renovation.go: budget-driven condition upgrades and ROI uplift with a
//     no-double-count rule
//   - estimator.go: orchestration into an EstimationResult
//   - calibration.go: derivation of a fresh profile from historical sales
//   - persist.go: atomic JSON profile artifact round-trip
//
// # Determinism
//
// Estimate is a pure function of (HouseInput, MarketProfile): no hidden
// state, no I/O, no randomness. Identical inputs produce bit-identical
// results, which the explainability breakdown and the tests rely on.
//
// # Adjustment order
//
// Adjustments compound multiplicatively in a fixed order (build year, house
// type, condition, garden tier, roof, position, energy label, rooms,
// sanitary, floors, lot size, micro-location). Later steps scale the
// already-compounded price, so the
// order is part of the model contract.
//
// # Usage
//
//	profile, err := pricing.LoadProfile("configs/market_profile.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	estimator, err := pricing.NewEstimator(profile, slog.Default())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := estimator.Estimate(pricing.HouseInput{
//	    City:       "Utrecht",
//	    LivingArea: 92,
//	    BuildYear:  1994,
//	    HouseType:  "Terraced",
//	    Condition:  pricing.ConditionGood,
//	})
package pricing
