package services

import (
	"context"
	"time"
)

// HealthStatus is the health check payload.
type HealthStatus struct {
	Status          string    `json:"status"`
	Version         string    `json:"version"`
	UptimeSeconds   float64   `json:"uptime_seconds"`
	ProfileLoadedAt time.Time `json:"profile_loaded_at"`
	Timestamp       time.Time `json:"timestamp"`
}

// HealthService reports liveness of the estimation service.
type HealthService struct {
	version   string
	startTime time.Time
	estimates *EstimateService
}

// NewHealthService creates a health service for the given estimate service.
func NewHealthService(version string, estimates *EstimateService) *HealthService {
	return &HealthService{
		version:   version,
		startTime: time.Now(),
		estimates: estimates,
	}
}

// Check returns the current health status. The service is healthy whenever
// a profile is loaded; estimation itself is stateless.
func (s *HealthService) Check(ctx context.Context) HealthStatus {
	status := HealthStatus{
		Status:        "healthy",
		Version:       s.version,
		UptimeSeconds: time.Since(s.startTime).Seconds(),
		Timestamp:     time.Now().UTC(),
	}
	if s.estimates != nil {
		status.ProfileLoadedAt = s.estimates.LoadedAt()
	}
	return status
}
