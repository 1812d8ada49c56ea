package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/Mees070/woningprijs-calculater/internal/dataset"
	"github.com/Mees070/woningprijs-calculater/internal/exporter"
	"github.com/Mees070/woningprijs-calculater/internal/pricing"
)

func main() {
	dataPath := flag.String("data", "", "path to the historical sales dataset (.csv or .xlsx)")
	outPath := flag.String("out", "data/market_profile.json", "output path for the calibrated market profile")
	minCount := flag.Int("min-count", 30, "minimum records before a city or category gets its own parameter")
	cityless := flag.Bool("cityless", false, "skip per-city base prices and calibrate the default only")
	reportPath := flag.String("report", "", "optional calibration report path (.csv or .xlsx)")
	flag.Parse()

	if *dataPath == "" {
		slog.Error("missing required flag", slog.String("flag", "-data"))
		flag.Usage()
		os.Exit(2)
	}

	ctx := context.Background()
	logger := slog.Default()

	records, stats, err := dataset.NewLoader(logger).Load(*dataPath)
	if err != nil {
		logger.Error("failed to load dataset", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("dataset ready",
		slog.Int("rows", stats.TotalRows),
		slog.Int("parsed", stats.Parsed),
		slog.Int("skipped", stats.Skipped),
	)

	opts := pricing.DefaultCalibrationOptions()
	opts.MinCount = *minCount
	opts.Cityless = *cityless

	profile, calStats, err := pricing.NewCalibrator(opts, logger).Calibrate(ctx, records)
	if err != nil {
		logger.Error("calibration failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := pricing.SaveProfile(profile, *outPath); err != nil {
		logger.Error("failed to write profile", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if *reportPath != "" {
		writer := exporter.NewReportWriter(logger)
		switch strings.ToLower(filepath.Ext(*reportPath)) {
		case ".xlsx":
			err = writer.WriteXLSX(*reportPath, profile, calStats)
		default:
			err = writer.WriteCSV(*reportPath, profile, calStats)
		}
		if err != nil {
			logger.Error("failed to write report", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	logger.Info("market profile written",
		slog.String("path", *outPath),
		slog.Int("usable_records", calStats.UsableRecords),
		slog.Int("cities_kept", calStats.CitiesKept),
		slog.Int("cities_omitted", calStats.CitiesOmitted),
		slog.Float64("base_price_m2", profile.BasePriceM2),
	)
}
