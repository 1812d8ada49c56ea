package services

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mees070/woningprijs-calculater/internal/pricing"
	"github.com/Mees070/woningprijs-calculater/internal/shared/testutil"
)

func testProfile() *pricing.MarketProfile {
	profile := pricing.DefaultProfile()
	profile.CityBasePriceM2 = map[string]float64{"Utrecht": 4000}
	profile.ConditionAdjustments = map[string]float64{"poor": -0.1, "fair": -0.05, "good": 0.03, "excellent": 0.08}
	return profile
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestEstimateServiceFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.json")
	require.NoError(t, pricing.SaveProfile(testProfile(), path))

	svc, err := NewEstimateService(path, testLogger())
	require.NoError(t, err)

	result, err := svc.Estimate(context.Background(), pricing.HouseInput{
		City:       "Utrecht",
		LivingArea: 80,
	})
	require.NoError(t, err)
	assert.Greater(t, result.PointEstimate, 0.0)
	assert.False(t, svc.LoadedAt().IsZero())
}

func TestEstimateServiceMissingProfile(t *testing.T) {
	_, err := NewEstimateService(filepath.Join(t.TempDir(), "absent.json"), testLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load profile")
}

func TestEstimateServiceValidationError(t *testing.T) {
	svc, err := NewEstimateServiceWithProfile(testProfile(), testLogger())
	require.NoError(t, err)

	_, err = svc.Estimate(context.Background(), pricing.HouseInput{City: "Utrecht"})
	require.Error(t, err)

	var validationErr *pricing.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "living_area", validationErr.Field)
}

func TestEstimateServiceReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.json")
	require.NoError(t, pricing.SaveProfile(testProfile(), path))

	svc, err := NewEstimateService(path, testLogger())
	require.NoError(t, err)

	input := pricing.HouseInput{City: "Utrecht", LivingArea: 80}
	before, err := svc.Estimate(context.Background(), input)
	require.NoError(t, err)

	// Persist a richer profile and reload.
	updated := testProfile()
	updated.CityBasePriceM2["Utrecht"] = 5000
	require.NoError(t, pricing.SaveProfile(updated, path))
	require.NoError(t, svc.Reload(context.Background()))

	after, err := svc.Estimate(context.Background(), input)
	require.NoError(t, err)
	assert.Greater(t, after.PointEstimate, before.PointEstimate)
}

func TestEstimateServiceReloadKeepsServingOnFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.json")
	require.NoError(t, pricing.SaveProfile(testProfile(), path))

	svc, err := NewEstimateService(path, testLogger())
	require.NoError(t, err)

	// Corrupt the file on disk; the loaded profile must keep serving.
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))
	require.Error(t, svc.Reload(context.Background()))

	_, err = svc.Estimate(context.Background(), pricing.HouseInput{City: "Utrecht", LivingArea: 80})
	assert.NoError(t, err)
}

func TestEstimateServiceConcurrent(t *testing.T) {
	svc, err := NewEstimateServiceWithProfile(testProfile(), testLogger())
	require.NoError(t, err)

	done := make(chan error, 16)
	for i := 0; i < 16; i++ {
		go func() {
			_, err := svc.Estimate(context.Background(), pricing.HouseInput{City: "Utrecht", LivingArea: 95})
			done <- err
		}()
	}
	for i := 0; i < 16; i++ {
		assert.NoError(t, <-done)
	}
}

func TestEstimateServiceLogging(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.json")
	require.NoError(t, pricing.SaveProfile(testProfile(), path))

	logger, records := testutil.NewCaptureLogger()
	svc, err := NewEstimateService(path, logger)
	require.NoError(t, err)

	_, err = svc.Estimate(context.Background(), pricing.HouseInput{City: "Utrecht", LivingArea: 80})
	require.NoError(t, err)
	_, err = svc.Estimate(context.Background(), pricing.HouseInput{City: "Utrecht"})
	require.Error(t, err)

	captured := records()
	assert.Contains(t, testutil.Messages(captured), "market profile loaded")
	assert.Contains(t, testutil.Messages(captured), "estimation served")
	assert.Contains(t, testutil.Messages(captured), "estimation failed")

	for _, r := range captured {
		if r.Message == "estimation served" {
			assert.Equal(t, slog.LevelInfo, r.Level)
			assert.Equal(t, "Utrecht", r.Attrs["city"])
			assert.Equal(t, "estimate_service", r.Attrs["component"])
		}
		if r.Message == "estimation failed" {
			assert.Equal(t, slog.LevelWarn, r.Level)
		}
	}
}

func TestHealthServiceCheck(t *testing.T) {
	svc, err := NewEstimateServiceWithProfile(testProfile(), testLogger())
	require.NoError(t, err)

	health := NewHealthService("1.2.3", svc)
	status := health.Check(context.Background())

	assert.Equal(t, "healthy", status.Status)
	assert.Equal(t, "1.2.3", status.Version)
	assert.False(t, status.ProfileLoadedAt.IsZero())
	assert.GreaterOrEqual(t, status.UptimeSeconds, 0.0)
}
