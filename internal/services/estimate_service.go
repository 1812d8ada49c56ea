package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/Mees070/woningprijs-calculater/internal/pricing"
)

// EstimateService serves price estimations against the currently loaded
// market profile. The profile can be swapped at runtime via Reload without
// interrupting in-flight estimations.
type EstimateService struct {
	mu          sync.RWMutex
	estimator   *pricing.Estimator
	profilePath string
	loadedAt    time.Time
	logger      *slog.Logger
}

// NewEstimateService loads the market profile at path and returns a ready
// service.
func NewEstimateService(profilePath string, logger *slog.Logger) (*EstimateService, error) {
	if logger == nil {
		logger = slog.Default()
	}
	s := &EstimateService{
		profilePath: profilePath,
		logger:      logger.With(slog.String("component", "estimate_service")),
	}
	if err := s.Reload(context.Background()); err != nil {
		return nil, err
	}
	return s, nil
}

// NewEstimateServiceWithProfile builds the service around an in-memory
// profile, used by tests and the CLI.
func NewEstimateServiceWithProfile(profile *pricing.MarketProfile, logger *slog.Logger) (*EstimateService, error) {
	if logger == nil {
		logger = slog.Default()
	}
	estimator, err := pricing.NewEstimator(profile, logger)
	if err != nil {
		return nil, err
	}
	return &EstimateService{
		estimator: estimator,
		loadedAt:  time.Now(),
		logger:    logger.With(slog.String("component", "estimate_service")),
	}, nil
}

// Estimate runs the pricing engine on input.
func (s *EstimateService) Estimate(ctx context.Context, input pricing.HouseInput) (*pricing.EstimationResult, error) {
	s.mu.RLock()
	estimator := s.estimator
	s.mu.RUnlock()

	start := time.Now()
	result, err := estimator.Estimate(input)
	estimateDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		var validationErr *pricing.ValidationError
		if errors.As(err, &validationErr) {
			estimateErrors.WithLabelValues("validation").Inc()
		} else {
			estimateErrors.WithLabelValues("internal").Inc()
		}
		s.logger.WarnContext(ctx, "estimation failed",
			slog.String("error", err.Error()),
			slog.String("city", input.City),
		)
		return nil, err
	}

	estimatesTotal.Inc()
	s.logger.InfoContext(ctx, "estimation served",
		slog.String("city", input.City),
		slog.Float64("living_area", input.LivingArea),
		slog.Float64("point_estimate", result.PointEstimate),
	)
	return result, nil
}

// Profile returns the currently loaded market profile.
func (s *EstimateService) Profile() *pricing.MarketProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.estimator.Profile()
}

// LoadedAt returns when the current profile was loaded.
func (s *EstimateService) LoadedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadedAt
}

// Reload re-reads the profile from disk and swaps it in atomically. A failed
// reload leaves the current profile serving.
func (s *EstimateService) Reload(ctx context.Context) error {
	if s.profilePath == "" {
		return fmt.Errorf("no profile path configured")
	}

	profile, err := pricing.LoadProfile(s.profilePath)
	if err != nil {
		return fmt.Errorf("failed to load profile: %w", err)
	}
	estimator, err := pricing.NewEstimator(profile, s.logger)
	if err != nil {
		return fmt.Errorf("failed to build estimator: %w", err)
	}

	s.mu.Lock()
	s.estimator = estimator
	s.loadedAt = time.Now()
	s.mu.Unlock()

	profileReloads.Inc()
	s.logger.InfoContext(ctx, "market profile loaded",
		slog.String("path", s.profilePath),
		slog.Int("cities", len(profile.CityBasePriceM2)),
	)
	return nil
}
