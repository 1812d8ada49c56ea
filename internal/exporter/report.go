package exporter

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/xuri/excelize/v2"

	"github.com/Mees070/woningprijs-calculater/internal/pricing"
)

// ReportWriter exports a calibrated market profile as a human-readable
// report for review before the profile goes live.
type ReportWriter struct {
	logger *slog.Logger
}

// NewReportWriter creates a report writer logging through the given logger.
func NewReportWriter(logger *slog.Logger) *ReportWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReportWriter{logger: logger}
}

// WriteCSV writes the calibration report as CSV.
func (w *ReportWriter) WriteCSV(path string, profile *pricing.MarketProfile, stats pricing.CalibrationStats) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	for _, row := range reportRows(profile, stats) {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write report row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush report: %w", err)
	}

	w.logger.Info("calibration report written",
		slog.String("path", path),
		slog.String("format", "csv"))
	return nil
}

// WriteXLSX writes the calibration report as an Excel workbook with a
// summary sheet and one sheet per parameter group.
func (w *ReportWriter) WriteXLSX(path string, profile *pricing.MarketProfile, stats pricing.CalibrationStats) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	summary := f.GetSheetName(0)
	if err := f.SetSheetName(summary, "Summary"); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}

	summaryRows := [][]interface{}{
		{"Calibrated at", stats.CalibratedAt.Format("2006-01-02 15:04:05")},
		{"Total records", stats.TotalRecords},
		{"Usable records", stats.UsableRecords},
		{"Skipped", stats.Skipped},
		{"Cities kept", stats.CitiesKept},
		{"Cities omitted", stats.CitiesOmitted},
		{"Base price per m2", profile.BasePriceM2},
		{"Annual growth rate", profile.AnnualGrowthRate},
	}
	for i, row := range summaryRows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow("Summary", cell, &row); err != nil {
			return fmt.Errorf("failed to write summary row: %w", err)
		}
	}

	if err := writeTableSheet(f, "Cities", "City", "Price per m2", profile.CityBasePriceM2); err != nil {
		return err
	}
	for _, table := range adjustmentTables(profile) {
		if len(table.values) == 0 {
			continue
		}
		if err := writeTableSheet(f, table.name, "Category", "Adjustment", table.values); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}

	w.logger.Info("calibration report written",
		slog.String("path", path),
		slog.String("format", "xlsx"))
	return nil
}

type adjustmentTable struct {
	name   string
	values map[string]float64
}

func adjustmentTables(profile *pricing.MarketProfile) []adjustmentTable {
	return []adjustmentTable{
		{name: "House types", values: profile.HouseTypeAdjustments},
		{name: "Conditions", values: profile.ConditionAdjustments},
		{name: "Energy labels", values: profile.EnergyLabelAdjustments},
		{name: "Gardens", values: profile.GardenAdjustments},
		{name: "Roofs", values: profile.RoofAdjustments},
		{name: "Positions", values: profile.PositionAdjustments},
		{name: "Toilets", values: profile.ToiletAdjustments},
		{name: "Floors", values: profile.FloorsAdjustments},
	}
}

// reportRows flattens the profile into CSV rows, tables sorted by key so
// repeated runs produce identical reports.
func reportRows(profile *pricing.MarketProfile, stats pricing.CalibrationStats) [][]string {
	rows := [][]string{
		{"section", "key", "value"},
		{"summary", "calibrated_at", stats.CalibratedAt.Format("2006-01-02 15:04:05")},
		{"summary", "total_records", formatInt(stats.TotalRecords)},
		{"summary", "usable_records", formatInt(stats.UsableRecords)},
		{"summary", "skipped", formatInt(stats.Skipped)},
		{"summary", "cities_kept", formatInt(stats.CitiesKept)},
		{"summary", "cities_omitted", formatInt(stats.CitiesOmitted)},
		{"summary", "base_price_m2", formatFloat(profile.BasePriceM2)},
		{"summary", "annual_growth_rate", formatFloat(profile.AnnualGrowthRate)},
	}

	for _, city := range sortedKeys(profile.CityBasePriceM2) {
		rows = append(rows, []string{"city_base_price_m2", city, formatFloat(profile.CityBasePriceM2[city])})
	}
	for _, table := range adjustmentTables(profile) {
		section := sectionName(table.name)
		for _, key := range sortedKeys(table.values) {
			rows = append(rows, []string{section, key, formatFloat(table.values[key])})
		}
	}
	return rows
}

func writeTableSheet(f *excelize.File, sheet, keyHeader, valueHeader string, values map[string]float64) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", sheet, err)
	}

	header := []interface{}{keyHeader, valueHeader}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for i, key := range sortedKeys(values) {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{key, values[key]}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	return nil
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
