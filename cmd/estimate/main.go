package main

import (
	"encoding/json"
	"flag"
	"log/slog"
	"os"

	"github.com/Mees070/woningprijs-calculater/internal/pricing"
)

func main() {
	profilePath := flag.String("profile", "data/market_profile.json", "path to the market profile")
	city := flag.String("city", "", "city of the house")
	area := flag.Float64("area", 0, "living area in m²")
	year := flag.Int("year", 0, "build year")
	houseType := flag.String("type", "", "house type (Apartment, Terraced, Corner, Semi-detached, Detached, Townhouse)")
	condition := flag.String("condition", "", "condition (poor, fair, good, excellent)")
	garden := flag.Float64("garden", 0, "garden area in m²")
	roof := flag.String("roof", "", "roof type (Flat, Gable, Hip, Mansard, Shed, Tent, Composite, Thatched)")
	position := flag.String("position", "", "position (Busy road, Center, Water, Forest, Park, View/Open, Quiet/Sheltered, Residential)")
	label := flag.String("label", "", "energy label (G through A4)")
	neighborhood := flag.Float64("neighborhood", 0, "estimated neighbourhood price per m²")
	rooms := flag.Int("rooms", 0, "number of rooms")
	bathrooms := flag.Int("bathrooms", 0, "number of bathrooms")
	toilets := flag.Int("toilets", 0, "number of separate toilets")
	floors := flag.Int("floors", 0, "number of floors")
	lot := flag.Float64("lot", 0, "lot size in m²")
	micro := flag.Float64("micro", 0, "micro location fraction, e.g. 0.05 for a 5% premium")
	renovationBudget := flag.Float64("renovation-budget", 0, "renovation budget in €")
	renovationCategory := flag.String("renovation-category", "", "renovation category (kitchen, bathroom, insulation, roof_windows, exterior, other)")
	renovationLabel := flag.String("renovation-label", "", "energy label targeted by the renovation")
	flag.Parse()

	logger := slog.Default()

	profile, err := pricing.LoadProfile(*profilePath)
	if err != nil {
		logger.Error("failed to load profile", slog.String("error", err.Error()))
		os.Exit(1)
	}

	estimator, err := pricing.NewEstimator(profile, logger)
	if err != nil {
		logger.Error("invalid profile", slog.String("error", err.Error()))
		os.Exit(1)
	}

	input := pricing.HouseInput{
		City:                *city,
		LivingArea:          *area,
		BuildYear:           *year,
		HouseType:           *houseType,
		Condition:           pricing.Condition(*condition),
		GardenArea:          *garden,
		Roof:                *roof,
		Position:            *position,
		EnergyLabel:         *label,
		NeighborhoodPriceM2: *neighborhood,
		Rooms:               *rooms,
		Bathrooms:           *bathrooms,
		Toilets:             *toilets,
		Floors:              *floors,
		LotSize:             *lot,
		MicroLocation:       *micro,
	}
	if *renovationBudget > 0 || *renovationLabel != "" {
		input.Renovation = &pricing.RenovationPlan{
			Budget:            *renovationBudget,
			Category:          *renovationCategory,
			TargetEnergyLabel: *renovationLabel,
		}
	}

	result, err := estimator.Estimate(input)
	if err != nil {
		logger.Error("estimation failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(result); err != nil {
		logger.Error("failed to encode result", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
