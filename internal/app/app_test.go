package app

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mees070/woningprijs-calculater/internal/config"
	"github.com/Mees070/woningprijs-calculater/internal/pricing"
	"github.com/Mees070/woningprijs-calculater/internal/services"
)

func newTestApplication(t *testing.T) *Application {
	t.Helper()

	profile := pricing.DefaultProfile()
	profile.CityBasePriceM2 = map[string]float64{"Utrecht": 4000}
	path := filepath.Join(t.TempDir(), "profile.json")
	require.NoError(t, pricing.SaveProfile(profile, path))

	cfg := config.Default()
	cfg.Paths.ProfileFile = path
	cfg.Security.RateLimit.Enabled = false

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	a, err := NewApplication(cfg, logger)
	require.NoError(t, err)
	return a
}

func TestApplicationEstimateRoute(t *testing.T) {
	a := newTestApplication(t)

	body := strings.NewReader(`{"city":"Utrecht","living_area":80}`)
	req := httptest.NewRequest(http.MethodPost, "/api/estimate", body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	a.Router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var result pricing.EstimationResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Greater(t, result.PointEstimate, 0.0)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestApplicationProfileRoute(t *testing.T) {
	a := newTestApplication(t)

	req := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
	rec := httptest.NewRecorder()
	a.Router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "city_base_price_m2")
}

func TestApplicationHealthRoute(t *testing.T) {
	a := newTestApplication(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	a.Router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var status services.HealthStatus
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.Equal(t, "healthy", status.Status)
}

func TestApplicationMetricsRoute(t *testing.T) {
	a := newTestApplication(t)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	a.Router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestApplicationValidationFailure(t *testing.T) {
	a := newTestApplication(t)

	body := strings.NewReader(`{"city":"Utrecht"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/estimate", body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	a.Router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "VALIDATION_FAILED")
}
