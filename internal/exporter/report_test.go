package exporter

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/Mees070/woningprijs-calculater/internal/pricing"
)

func reportFixtures() (*pricing.MarketProfile, pricing.CalibrationStats) {
	profile := pricing.DefaultProfile()
	profile.BasePriceM2 = 3250
	profile.CityBasePriceM2 = map[string]float64{"Utrecht": 4000, "Zwolle": 3000}
	profile.HouseTypeAdjustments = map[string]float64{"Apartment": -0.05, "Detached": 0.12}
	profile.EnergyLabelAdjustments = map[string]float64{"A": 0.08, "G": -0.12}

	stats := pricing.CalibrationStats{
		TotalRecords:  120,
		UsableRecords: 115,
		Skipped:       5,
		CitiesKept:    2,
		CitiesOmitted: 1,
		CalibratedAt:  time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
	return profile, stats
}

func TestWriteCSV(t *testing.T) {
	profile, stats := reportFixtures()
	path := filepath.Join(t.TempDir(), "report.csv")

	require.NoError(t, NewReportWriter(nil).WriteCSV(path, profile, stats))

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)

	assert.Equal(t, []string{"section", "key", "value"}, rows[0])

	index := make(map[[2]string]string, len(rows))
	for _, row := range rows[1:] {
		index[[2]string{row[0], row[1]}] = row[2]
	}
	assert.Equal(t, "120", index[[2]string{"summary", "total_records"}])
	assert.Equal(t, "3250.0000", index[[2]string{"summary", "base_price_m2"}])
	assert.Equal(t, "4000.0000", index[[2]string{"city_base_price_m2", "Utrecht"}])
	assert.Equal(t, "0.1200", index[[2]string{"house_types", "Detached"}])
	assert.Equal(t, "-0.1200", index[[2]string{"energy_labels", "G"}])
}

func TestWriteCSVDeterministic(t *testing.T) {
	profile, stats := reportFixtures()
	dir := t.TempDir()
	first := filepath.Join(dir, "a.csv")
	second := filepath.Join(dir, "b.csv")

	writer := NewReportWriter(nil)
	require.NoError(t, writer.WriteCSV(first, profile, stats))
	require.NoError(t, writer.WriteCSV(second, profile, stats))

	a, err := os.ReadFile(first)
	require.NoError(t, err)
	b, err := os.ReadFile(second)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestWriteXLSX(t *testing.T) {
	profile, stats := reportFixtures()
	path := filepath.Join(t.TempDir(), "report.xlsx")

	require.NoError(t, NewReportWriter(nil).WriteXLSX(path, profile, stats))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	sheets := f.GetSheetList()
	assert.Contains(t, sheets, "Summary")
	assert.Contains(t, sheets, "Cities")
	assert.Contains(t, sheets, "House types")
	assert.Contains(t, sheets, "Energy labels")

	rows, err := f.GetRows("Cities")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Utrecht", rows[1][0])
	assert.Equal(t, "Zwolle", rows[2][0])
}
