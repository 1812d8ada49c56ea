package pricing

import (
	"context"
	"log/slog"
	"sort"
	"time"
)

// SalesRecord is one historical transaction used for calibration. Categorical
// fields are expected in canonical form (see the dataset package).
type SalesRecord struct {
	City        string
	Price       float64
	LivingArea  float64
	LotSize     float64
	BuildYear   int
	HouseType   string
	Condition   string
	EnergyLabel string
	Garden      string
	Roof        string
	Position    string
	Toilet      string
	Floors      string
	Rooms       int
}

// usable reports whether the record can enter calibration at all.
func (r SalesRecord) usable() bool {
	return r.Price > 0 && r.LivingArea > 0
}

func (r SalesRecord) pricePerM2() float64 {
	return r.Price / r.LivingArea
}

// CalibrationOptions tune the calibration run.
type CalibrationOptions struct {
	// MinCount is the minimum number of records required before a city or
	// category earns its own parameter. Groups below it are omitted and fall
	// back to the defaults at estimation time.
	MinCount int

	// Clamp bounds per dimension keep a single skewed category from
	// dominating the adjustment chain.
	Cityless       bool // skip per-city medians entirely
	EnergyClamp    float64
	HouseTypeClamp float64
	ConditionClamp float64
	GardenClamp    float64
	RoofClamp      float64
	PositionClamp  float64
	ToiletClamp    float64
	FloorsClamp    float64
}

// DefaultCalibrationOptions returns the stock calibration settings.
func DefaultCalibrationOptions() CalibrationOptions {
	return CalibrationOptions{
		MinCount:       30,
		EnergyClamp:    0.15,
		HouseTypeClamp: 0.20,
		ConditionClamp: 0.12,
		GardenClamp:    0.08,
		RoofClamp:      0.08,
		PositionClamp:  0.08,
		ToiletClamp:    0.05,
		FloorsClamp:    0.05,
	}
}

// CalibrationStats reports what the calibration consumed and dropped.
// Skipped rows are counted, never silently discarded.
type CalibrationStats struct {
	TotalRecords  int       `json:"total_records"`
	UsableRecords int       `json:"usable_records"`
	Skipped       int       `json:"skipped"`
	CitiesKept    int       `json:"cities_kept"`
	CitiesOmitted int       `json:"cities_omitted"`
	CalibratedAt  time.Time `json:"calibrated_at"`
}

// Calibrator derives a MarketProfile from historical sales records.
type Calibrator struct {
	opts   CalibrationOptions
	logger *slog.Logger
}

// NewCalibrator creates a calibrator. A zero MinCount falls back to the
// default.
func NewCalibrator(opts CalibrationOptions, logger *slog.Logger) *Calibrator {
	if opts.MinCount <= 0 {
		opts.MinCount = DefaultCalibrationOptions().MinCount
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Calibrator{opts: opts, logger: logger}
}

// Calibrate aggregates the dataset into a fresh MarketProfile. The base
// price per m² is the overall median (median over mean for outlier
// robustness); city overrides are per-city medians for cities with enough
// records; category adjustments are clamped relative deviations of the
// category median from the overall median.
//
// Calibration is all-or-nothing: it returns a fully formed, validated
// profile or fails with a CalibrationError. It never mutates an existing
// profile in place.
func (c *Calibrator) Calibrate(ctx context.Context, records []SalesRecord) (*MarketProfile, CalibrationStats, error) {
	start := time.Now()
	stats := CalibrationStats{TotalRecords: len(records), CalibratedAt: start}

	usable := make([]SalesRecord, 0, len(records))
	for _, r := range records {
		if r.usable() {
			usable = append(usable, r)
		}
	}
	stats.UsableRecords = len(usable)
	stats.Skipped = len(records) - len(usable)

	c.logger.InfoContext(ctx, "starting calibration",
		"total_records", stats.TotalRecords,
		"usable_records", stats.UsableRecords,
		"skipped", stats.Skipped,
		"min_count", c.opts.MinCount,
	)

	if len(usable) == 0 {
		return nil, stats, &CalibrationError{Message: "dataset has no usable records", Records: 0}
	}

	overall := medianPricePerM2(usable)
	if overall <= 0 {
		return nil, stats, &CalibrationError{Message: "overall median price per m² is not positive", Records: len(usable)}
	}

	profile := DefaultProfile()
	profile.BasePriceM2 = overall

	if err := ctx.Err(); err != nil {
		return nil, stats, err
	}

	if !c.opts.Cityless {
		profile.CityBasePriceM2, stats.CitiesKept, stats.CitiesOmitted = c.cityMedians(ctx, usable)
	}

	profile.EnergyLabelAdjustments = c.categoryAdjustments(usable, overall, c.opts.EnergyClamp,
		func(r SalesRecord) string { return r.EnergyLabel })
	profile.HouseTypeAdjustments = c.categoryAdjustments(usable, overall, c.opts.HouseTypeClamp,
		func(r SalesRecord) string { return r.HouseType })
	profile.ConditionAdjustments = c.categoryAdjustments(usable, overall, c.opts.ConditionClamp,
		func(r SalesRecord) string { return r.Condition })
	profile.GardenAdjustments = c.categoryAdjustments(usable, overall, c.opts.GardenClamp,
		func(r SalesRecord) string { return r.Garden })
	profile.RoofAdjustments = c.categoryAdjustments(usable, overall, c.opts.RoofClamp,
		func(r SalesRecord) string { return r.Roof })
	profile.PositionAdjustments = c.categoryAdjustments(usable, overall, c.opts.PositionClamp,
		func(r SalesRecord) string { return r.Position })
	profile.ToiletAdjustments = c.categoryAdjustments(usable, overall, c.opts.ToiletClamp,
		func(r SalesRecord) string { return r.Toilet })
	profile.FloorsAdjustments = c.categoryAdjustments(usable, overall, c.opts.FloorsClamp,
		func(r SalesRecord) string { return r.Floors })

	if err := ctx.Err(); err != nil {
		return nil, stats, err
	}

	profile.LotSizeRatioMedian = lotSizeRatioMedian(usable)
	if area := roomAreaMedian(usable); area > 0 {
		profile.RoomAreaM2 = area
	}

	if err := profile.Validate(); err != nil {
		return nil, stats, err
	}

	c.logger.InfoContext(ctx, "calibration completed",
		"duration", time.Since(start),
		"base_price_m2", profile.BasePriceM2,
		"cities_kept", stats.CitiesKept,
		"cities_omitted", stats.CitiesOmitted,
	)

	return profile, stats, nil
}

// cityMedians computes per-city median €/m² for cities with enough records.
// Cities below the threshold are omitted, not estimated: a handful of sales
// is not a market.
func (c *Calibrator) cityMedians(ctx context.Context, records []SalesRecord) (map[string]float64, int, int) {
	grouped := make(map[string][]float64)
	for _, r := range records {
		if r.City == "" {
			continue
		}
		grouped[r.City] = append(grouped[r.City], r.pricePerM2())
	}

	medians := make(map[string]float64, len(grouped))
	omitted := 0
	for city, values := range grouped {
		if len(values) < c.opts.MinCount {
			omitted++
			c.logger.DebugContext(ctx, "omitting city with too few records",
				"city", city,
				"records", len(values),
				"min_count", c.opts.MinCount,
			)
			continue
		}
		medians[city] = median(values)
	}
	return medians, len(medians), omitted
}

// categoryAdjustments converts per-category medians into clamped relative
// deviations from the overall median.
func (c *Calibrator) categoryAdjustments(records []SalesRecord, overall, clampBound float64, key func(SalesRecord) string) map[string]float64 {
	grouped := make(map[string][]float64)
	for _, r := range records {
		k := key(r)
		if k == "" {
			continue
		}
		grouped[k] = append(grouped[k], r.pricePerM2())
	}

	adjustments := make(map[string]float64)
	for category, values := range grouped {
		if len(values) < c.opts.MinCount {
			continue
		}
		ratio := median(values)/overall - 1
		adjustments[category] = clamp(ratio, -clampBound, clampBound)
	}
	if len(adjustments) == 0 {
		return nil
	}
	return adjustments
}

func medianPricePerM2(records []SalesRecord) float64 {
	values := make([]float64, 0, len(records))
	for _, r := range records {
		values = append(values, r.pricePerM2())
	}
	return median(values)
}

// roomAreaMedian derives the living area a single room represents, used by
// the room-count adjustment. Zero when no record carries a room count.
func roomAreaMedian(records []SalesRecord) float64 {
	var areas []float64
	for _, r := range records {
		if r.Rooms > 0 && r.LivingArea > 0 {
			areas = append(areas, r.LivingArea/float64(r.Rooms))
		}
	}
	if len(areas) == 0 {
		return 0
	}
	return median(areas)
}

func lotSizeRatioMedian(records []SalesRecord) float64 {
	var ratios []float64
	for _, r := range records {
		if r.LotSize > 0 && r.LivingArea > 0 {
			ratios = append(ratios, r.LotSize/r.LivingArea)
		}
	}
	if len(ratios) == 0 {
		return 0
	}
	return median(ratios)
}

// median returns the middle value (average of the two middle values for an
// even count). The input slice is not modified.
func median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}
