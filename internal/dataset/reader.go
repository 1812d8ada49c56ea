package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/Mees070/woningprijs-calculater/internal/pricing"
)

// Canonical column keys used in the header map.
const (
	colPrice        = "price"
	colLivingArea   = "living_area"
	colLotSize      = "lot_size"
	colBuildYear    = "build_year"
	colCity         = "city"
	colHouseType    = "house_type"
	colCondition    = "condition"
	colEnergyLabel  = "energy_label"
	colGarden       = "garden"
	colRoof         = "roof"
	colPosition     = "position"
	colRooms        = "rooms"
	colToilet       = "toilet"
	colFloors       = "floors"
	colNeighborhood = "neighborhood_price_m2"
)

// LoadStats summarizes an ingestion run.
type LoadStats struct {
	TotalRows int
	Parsed    int
	Skipped   int
}

// Loader reads historical sales listings from CSV or Excel exports and
// produces calibration records with categorical fields in canonical form.
type Loader struct {
	logger *slog.Logger
}

// NewLoader returns a loader logging through the given logger.
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{logger: logger}
}

// Load reads records from path, dispatching on the file extension.
// Supported formats are .csv and .xlsx.
func (l *Loader) Load(path string) ([]pricing.SalesRecord, LoadStats, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		return l.LoadCSV(path)
	case ".xlsx":
		return l.LoadXLSX(path)
	default:
		return nil, LoadStats{}, fmt.Errorf("unsupported dataset format %q", ext)
	}
}

// LoadCSV reads sales records from a CSV export.
func (l *Loader) LoadCSV(path string) ([]pricing.SalesRecord, LoadStats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, LoadStats{}, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	var rows [][]string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, LoadStats{}, fmt.Errorf("failed to read dataset: %w", err)
		}
		rows = append(rows, row)
	}
	return l.fromRows(path, rows)
}

// LoadXLSX reads sales records from an Excel workbook. The sheet holding
// the listings is located by its header row.
func (l *Loader) LoadXLSX(path string) ([]pricing.SalesRecord, LoadStats, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, LoadStats{}, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer f.Close()

	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil || len(rows) == 0 {
			continue
		}
		if headerRow(rows) >= 0 {
			l.logger.Info("found listings sheet",
				slog.String("sheet", sheet),
				slog.Int("rows", len(rows)))
			return l.fromRows(path, rows)
		}
	}
	return nil, LoadStats{}, fmt.Errorf("no listings sheet found in %s", path)
}

// headerRow returns the index of the first row that looks like a listings
// header, or -1.
func headerRow(rows [][]string) int {
	for i, row := range rows {
		if i > 10 {
			break
		}
		text := strings.ToLower(strings.Join(row, " "))
		if strings.Contains(text, "price") && strings.Contains(text, "living space") {
			return i
		}
	}
	return -1
}

// mapColumns resolves header captions to canonical column keys. The
// neighbourhood price column is matched before the plain price column
// because both captions contain "price".
func mapColumns(header []string) map[string]int {
	columns := make(map[string]int, len(header))
	for i, caption := range header {
		text := strings.ToLower(strings.TrimSpace(caption))
		switch {
		case strings.Contains(text, "neighbourhood") || strings.Contains(text, "neighborhood"):
			columns[colNeighborhood] = i
		case strings.Contains(text, "living space"), strings.Contains(text, "living area"):
			columns[colLivingArea] = i
		case strings.Contains(text, "lot size"):
			columns[colLotSize] = i
		case strings.Contains(text, "build year"):
			columns[colBuildYear] = i
		case strings.Contains(text, "house type"):
			columns[colHouseType] = i
		case strings.Contains(text, "energy label"):
			columns[colEnergyLabel] = i
		case strings.Contains(text, "condition"):
			columns[colCondition] = i
		case strings.Contains(text, "garden"):
			columns[colGarden] = i
		case strings.Contains(text, "roof"):
			columns[colRoof] = i
		case strings.Contains(text, "position"):
			columns[colPosition] = i
		case strings.Contains(text, "toilet"), strings.Contains(text, "bathroom"):
			columns[colToilet] = i
		case strings.Contains(text, "floor"):
			columns[colFloors] = i
		case strings.Contains(text, "room"):
			columns[colRooms] = i
		case text == "city":
			columns[colCity] = i
		case strings.Contains(text, "price"):
			columns[colPrice] = i
		}
	}
	return columns
}

func (l *Loader) fromRows(path string, rows [][]string) ([]pricing.SalesRecord, LoadStats, error) {
	start := headerRow(rows)
	if start < 0 {
		return nil, LoadStats{}, fmt.Errorf("no header row found in %s", path)
	}
	columns := mapColumns(rows[start])
	for _, required := range []string{colPrice, colLivingArea} {
		if _, ok := columns[required]; !ok {
			return nil, LoadStats{}, fmt.Errorf("missing required column %q in %s", required, path)
		}
	}

	stats := LoadStats{TotalRows: len(rows) - start - 1}
	records := make([]pricing.SalesRecord, 0, stats.TotalRows)

	for _, row := range rows[start+1:] {
		cell := func(key string) string {
			idx, ok := columns[key]
			if !ok || idx >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[idx])
		}
		number := func(key string) float64 {
			n, _ := CoerceNumber(cell(key))
			return n
		}

		price, priceOK := CoerceNumber(cell(colPrice))
		area, areaOK := CoerceNumber(cell(colLivingArea))
		if !priceOK || !areaOK || price <= 0 || area <= 0 {
			stats.Skipped++
			continue
		}

		record := pricing.SalesRecord{
			City:        cell(colCity),
			Price:       price,
			LivingArea:  area,
			LotSize:     number(colLotSize),
			BuildYear:   int(number(colBuildYear)),
			HouseType:   NormalizeHouseType(cell(colHouseType)),
			Condition:   strings.ToLower(cell(colCondition)),
			EnergyLabel: NormalizeEnergyLabel(cell(colEnergyLabel)),
			Garden:      NormalizeGarden(cell(colGarden)),
			Roof:        NormalizeRoof(cell(colRoof)),
			Position:    NormalizePosition(cell(colPosition)),
		}
		// Normalizers for optional cells only run on data that is actually
		// present, so a missing column never calibrates a fallback bucket.
		if v := cell(colRooms); v != "" {
			if n, ok := ParseRooms(v); ok {
				record.Rooms = n
			}
		}
		if v := cell(colToilet); v != "" {
			record.Toilet = NormalizeToilet(v)
		}
		if v := cell(colFloors); v != "" {
			record.Floors = NormalizeFloors(v)
		}
		records = append(records, record)
		stats.Parsed++
	}

	l.logger.Info("dataset loaded",
		slog.String("path", path),
		slog.Int("total_rows", stats.TotalRows),
		slog.Int("parsed", stats.Parsed),
		slog.Int("skipped", stats.Skipped))

	return records, stats, nil
}
